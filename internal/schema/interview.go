package schema

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"interview-portal/internal/model"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// DurationOptions are the minute values offered by the scheduling form.
var DurationOptions = []any{"15", "30", "45", "60", "90", "120"}

type InterviewForm struct {
	CandidateName      string `json:"candidateName" form:"candidateName"`
	IntervieweeID      string `json:"interviewee_id,omitempty" form:"interviewee_id"`
	Interviewer        string `json:"interviewer" form:"interviewer"`
	OrganizationID     string `json:"organization_id,omitempty" form:"organization_id"`
	Date               string `json:"date" form:"date"`
	Time               string `json:"time" form:"time"`
	Duration           string `json:"duration" form:"duration"`
	Format             string `json:"format" form:"format"`
	JobRole            string `json:"jobRole" form:"jobRole"`
	EnableQuestionBank bool   `json:"enableQuestionBank" form:"enableQuestionBank"`
}

// Normalize trims the form values in place. Validate calls it.
func (f *InterviewForm) Normalize() {
	for _, v := range []*string{&f.CandidateName, &f.IntervieweeID, &f.Interviewer, &f.OrganizationID, &f.Date, &f.Time, &f.Duration, &f.Format, &f.JobRole} {
		*v = strings.TrimSpace(*v)
	}
}

func (f *InterviewForm) Validate() error {
	f.Normalize()
	err := validation.ValidateStruct(f,
		validation.Field(&f.CandidateName,
			validation.Required.Error("Candidate name must be at least 2 characters"),
			validation.RuneLength(2, 0).Error("Candidate name must be at least 2 characters"),
		),
		validation.Field(&f.Interviewer, validation.Required.Error("Please select an interviewer")),
		validation.Field(&f.Date,
			validation.Required.Error("Please select a date"),
			validation.Date(DateLayout).Error("Please select a valid date"),
		),
		validation.Field(&f.Time,
			validation.Required.Error("Please select a time"),
			validation.Date(TimeLayout).Error("Please select a valid time"),
		),
		validation.Field(&f.Duration,
			validation.Required.Error("Please select a duration"),
			validation.In(DurationOptions...).Error("Please select a valid duration"),
		),
		validation.Field(&f.Format,
			validation.Required.Error("Please select an interview format"),
			validation.In(formatValues()...).Error("Please select a valid interview format"),
		),
		validation.Field(&f.JobRole,
			validation.Required.Error("Job role must be at least 2 characters"),
			validation.RuneLength(2, 0).Error("Job role must be at least 2 characters"),
		),
	)
	return wrap(err)
}

// ScheduledAt combines Date and Time in loc. Call after Validate.
func (f *InterviewForm) ScheduledAt(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(DateLayout+" "+TimeLayout, f.Date+" "+f.Time, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("scheduled_at: %w", err)
	}
	return t, nil
}

func (f *InterviewForm) DurationMinutes() int {
	n, _ := strconv.Atoi(f.Duration)
	return n
}

// Fields returns the multipart form values in a stable order. Call after
// Validate.
func (f *InterviewForm) Fields(loc *time.Location) ([][2]string, error) {
	at, err := f.ScheduledAt(loc)
	if err != nil {
		return nil, err
	}
	out := [][2]string{
		{"candidateName", f.CandidateName},
		{"interviewer", f.Interviewer},
		{"date", f.Date},
		{"time", f.Time},
		{"scheduled_at", at.Format(time.RFC3339)},
		{"duration", f.Duration},
		{"format", f.Format},
		{"jobRole", f.JobRole},
		{"enableQuestionBank", strconv.FormatBool(f.EnableQuestionBank)},
	}
	if f.IntervieweeID != "" {
		out = append(out, [2]string{"interviewee_id", f.IntervieweeID})
	}
	if f.OrganizationID != "" {
		out = append(out, [2]string{"organization_id", f.OrganizationID})
	}
	return out, nil
}

// InterviewPatch is a partial update. Nil fields are left untouched.
type InterviewPatch struct {
	Status            *model.Status `json:"status,omitempty"`
	Notes             *string       `json:"notes,omitempty"`
	FeedbackSubmitted *bool         `json:"feedback_submitted,omitempty"`
}

func (p *InterviewPatch) Validate() error {
	if p.Status == nil && p.Notes == nil && p.FeedbackSubmitted == nil {
		return &ValidationError{Fields: FieldErrors{"status": "Nothing to update"}}
	}
	err := validation.ValidateStruct(p,
		validation.Field(&p.Status, validation.By(func(v any) error {
			s, ok := v.(*model.Status)
			if !ok || s == nil {
				return nil
			}
			for _, known := range model.Statuses {
				if *s == known {
					return nil
				}
			}
			return fmt.Errorf("Unknown status %q", string(*s))
		})),
		validation.Field(&p.Notes, validation.By(func(v any) error {
			s, ok := v.(*string)
			if !ok || s == nil {
				return nil
			}
			if len([]rune(*s)) > 2000 {
				return fmt.Errorf("Notes must be at most 2000 characters")
			}
			return nil
		})),
	)
	return wrap(err)
}

func formatValues() []any {
	out := make([]any, len(model.Formats))
	for i, f := range model.Formats {
		out[i] = string(f)
	}
	return out
}
