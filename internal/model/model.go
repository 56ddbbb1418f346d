package model

import "time"

type Role string

const (
	RoleAdmin       Role = "admin"
	RoleInterviewer Role = "interviewer"
	RoleInterviewee Role = "interviewee"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleInterviewer, RoleInterviewee:
		return true
	}
	return false
}

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

var Statuses = []Status{StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled}

type Format string

const (
	FormatTechnical  Format = "technical"
	FormatBehavioral Format = "behavioral"
	FormatMixed      Format = "mixed"
)

var Formats = []Format{FormatTechnical, FormatBehavioral, FormatMixed}

type DemoRequest struct {
	ID              string    `json:"id,omitempty"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	WorkEmail       string    `json:"work_email"`
	PhoneNumber     string    `json:"phone_number,omitempty"`
	ServiceInterest string    `json:"service_interest,omitempty"`
	Message         string    `json:"message,omitempty"`
	AgreesToTerms   bool      `json:"agrees_to_terms"`
	CreatedAt       time.Time `json:"created_at,omitzero"`
}

// Interview mirrors the scheduling API's payload; the mixed key casing is
// what the API emits.
type Interview struct {
	ID                string    `json:"id" db:"id"`
	OrganizationID    string    `json:"organization_id,omitempty" db:"organization_id"`
	CandidateName     string    `json:"candidateName" db:"candidate_name"`
	IntervieweeID     string    `json:"interviewee_id,omitempty" db:"interviewee_id"`
	InterviewerID     string    `json:"interviewer" db:"interviewer_id"`
	JobRole           string    `json:"jobRole" db:"job_role"`
	ScheduledAt       time.Time `json:"scheduled_at" db:"scheduled_at"`
	Duration          int       `json:"duration" db:"duration"`
	Format            Format    `json:"format" db:"format"`
	Status            Status    `json:"status" db:"status"`
	Notes             string    `json:"notes,omitempty" db:"notes"`
	FeedbackSubmitted bool      `json:"feedback_submitted" db:"feedback_submitted"`
	QuestionBank      bool      `json:"questionBank" db:"question_bank"`
	ResumeURL         string    `json:"resume_url,omitempty" db:"resume_url"`
	CreatedAt         time.Time `json:"created_at,omitzero" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at,omitzero" db:"updated_at"`
}

type Organization struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"created_at,omitzero" db:"created_at"`
}

type Interviewer struct {
	ID             string    `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Email          string    `json:"email" db:"email"`
	OrganizationID *string   `json:"organization_id,omitempty" db:"organization_id"`
	CreatedAt      time.Time `json:"created_at,omitzero" db:"created_at"`
}

type Interviewee struct {
	ID             string    `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Email          string    `json:"email" db:"email"`
	OrganizationID *string   `json:"organization_id,omitempty" db:"organization_id"`
	CreatedAt      time.Time `json:"created_at,omitzero" db:"created_at"`
}

type OrganizationAdmin struct {
	ID             string    `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Email          string    `json:"email" db:"email"`
	OrganizationID *string   `json:"organization_id,omitempty" db:"organization_id"`
	CreatedAt      time.Time `json:"created_at,omitzero" db:"created_at"`
}

// User is what the API returns on register/login.
type User struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Roles          []Role `json:"roles"`
	OrganizationID string `json:"organization_id,omitempty"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
