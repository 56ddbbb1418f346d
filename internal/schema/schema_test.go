package schema_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interview-portal/internal/model"
	"interview-portal/internal/schema"
)

func validDemo() schema.DemoRequestForm {
	return schema.DemoRequestForm{
		FirstName:     "Ada",
		LastName:      "Lovelace",
		WorkEmail:     "ada@analytical.io",
		AgreesToTerms: true,
	}
}

func fieldErrs(t *testing.T, err error) schema.FieldErrors {
	t.Helper()
	require.Error(t, err)
	ve, ok := schema.AsValidation(err)
	require.True(t, ok, "expected ValidationError, got %T", err)
	return ve.Fields
}

func TestDemoRequestValid(t *testing.T) {
	f := validDemo()
	f.PhoneNumber = "+1 (555) 010-2000"
	f.ServiceInterest = "technical-hiring"
	f.Message = "we hire a lot"
	assert.NoError(t, f.Validate())
}

func TestDemoRequestConsumerDomains(t *testing.T) {
	emails := []string{
		"someone@gmail.com",
		"someone@yahoo.com",
		"SOMEONE@GMAIL.COM",
		"x@mail.yahoo.com",
		// substring match is kept as-is: longer domains containing a
		// blocked one are rejected too
		"x@notgmail.com.example",
	}
	for _, e := range emails {
		t.Run(e, func(t *testing.T) {
			f := validDemo()
			f.WorkEmail = e
			fields := fieldErrs(t, f.Validate())
			assert.Equal(t, schema.ErrWorkEmailMsg, fields["work_email"])
		})
	}
}

func TestDemoRequestEmailFormat(t *testing.T) {
	for _, e := range []string{"", "not-an-email", "a@"} {
		f := validDemo()
		f.WorkEmail = e
		fields := fieldErrs(t, f.Validate())
		assert.Equal(t, schema.ErrEmailFormatMsg, fields["work_email"], "email %q", e)
	}
}

func TestDemoRequestNameLength(t *testing.T) {
	tests := []struct {
		name string
		val  string
		msg  string
	}{
		{"empty", "", "First name must be at least 2 characters"},
		{"one char", "A", "First name must be at least 2 characters"},
		{"whitespace only", "   ", "First name must be at least 2 characters"},
		{"padded one char", " A ", "First name must be at least 2 characters"},
		{"too long", strings.Repeat("a", 51), "First name must be at most 50 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validDemo()
			f.FirstName = tt.val
			fields := fieldErrs(t, f.Validate())
			assert.Equal(t, tt.msg, fields["first_name"])
		})
	}

	f := validDemo()
	f.LastName = strings.Repeat("é", 50)
	assert.NoError(t, f.Validate(), "50 runes is within bounds")

	f.LastName = "B"
	fields := fieldErrs(t, f.Validate())
	assert.Equal(t, "Last name must be at least 2 characters", fields["last_name"])

	f = validDemo()
	f.FirstName = "  Ada  "
	f.WorkEmail = " ada@analytical.io "
	require.NoError(t, f.Validate())
	p := f.Payload()
	assert.Equal(t, "Ada", p.FirstName)
	assert.Equal(t, "ada@analytical.io", p.WorkEmail)
}

func TestDemoRequestTermsAndOptionals(t *testing.T) {
	f := validDemo()
	f.AgreesToTerms = false
	f.PhoneNumber = "call me"
	f.ServiceInterest = "catering"
	f.Message = strings.Repeat("m", 1001)
	fields := fieldErrs(t, f.Validate())
	assert.Equal(t, schema.ErrTermsMsg, fields["agrees_to_terms"])
	assert.Equal(t, schema.ErrPhoneMsg, fields["phone_number"])
	assert.Equal(t, schema.ErrServiceMsg, fields["service_interest"])
	assert.Equal(t, schema.ErrMessageLenMsg, fields["message"])
}

func TestIsConsumerEmail(t *testing.T) {
	assert.True(t, schema.IsConsumerEmail("a@hotmail.com"))
	assert.False(t, schema.IsConsumerEmail("gmail.com@acme.io"), "only the domain part is checked")
	assert.False(t, schema.IsConsumerEmail("no-at-sign"))
}

func validInterview() schema.InterviewForm {
	return schema.InterviewForm{
		CandidateName: "Grace Hopper",
		Interviewer:   "iv-1",
		Date:          "2026-11-02",
		Time:          "14:30",
		Duration:      "60",
		Format:        "technical",
		JobRole:       "Backend Engineer",
	}
}

func TestInterviewFormValid(t *testing.T) {
	f := validInterview()
	require.NoError(t, f.Validate())
	assert.False(t, f.EnableQuestionBank)
	assert.Equal(t, 60, f.DurationMinutes())

	at, err := f.ScheduledAt(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 11, 2, 14, 30, 0, 0, time.UTC), at)
}

func TestInterviewFormRequired(t *testing.T) {
	fields := fieldErrs(t, (&schema.InterviewForm{}).Validate())
	assert.Equal(t, schema.FieldErrors{
		"candidateName": "Candidate name must be at least 2 characters",
		"interviewer":   "Please select an interviewer",
		"date":          "Please select a date",
		"time":          "Please select a time",
		"duration":      "Please select a duration",
		"format":        "Please select an interview format",
		"jobRole":       "Job role must be at least 2 characters",
	}, fields)

	f := validInterview()
	f.CandidateName = "   "
	f.JobRole = " X "
	f.Interviewer = "  "
	fields = fieldErrs(t, f.Validate())
	assert.Equal(t, "Candidate name must be at least 2 characters", fields["candidateName"])
	assert.Equal(t, "Job role must be at least 2 characters", fields["jobRole"])
	assert.Equal(t, "Please select an interviewer", fields["interviewer"])
}

func TestInterviewFormTrimsBeforeSending(t *testing.T) {
	f := validInterview()
	f.CandidateName = "  Grace Hopper "
	f.JobRole = " SRE "
	require.NoError(t, f.Validate())
	kv, err := f.Fields(time.UTC)
	require.NoError(t, err)

	got := map[string]string{}
	for _, p := range kv {
		got[p[0]] = p[1]
	}
	assert.Equal(t, "Grace Hopper", got["candidateName"])
	assert.Equal(t, "SRE", got["jobRole"])
}

func TestInterviewFormEnums(t *testing.T) {
	f := validInterview()
	f.Format = "pairing"
	f.Duration = "61"
	f.Date = "02/11/2026"
	f.Time = "2pm"
	f.CandidateName = "G"
	fields := fieldErrs(t, f.Validate())
	assert.Equal(t, "Please select a valid interview format", fields["format"])
	assert.Equal(t, "Please select a valid duration", fields["duration"])
	assert.Equal(t, "Please select a valid date", fields["date"])
	assert.Equal(t, "Please select a valid time", fields["time"])
	assert.Equal(t, "Candidate name must be at least 2 characters", fields["candidateName"])
}

func TestInterviewFormFields(t *testing.T) {
	f := validInterview()
	f.IntervieweeID = "ie-9"
	loc := time.FixedZone("IST", 5*3600+1800)
	kv, err := f.Fields(loc)
	require.NoError(t, err)

	got := map[string]string{}
	for _, p := range kv {
		got[p[0]] = p[1]
	}
	assert.Equal(t, "2026-11-02T14:30:00+05:30", got["scheduled_at"])
	assert.Equal(t, "false", got["enableQuestionBank"])
	assert.Equal(t, "ie-9", got["interviewee_id"])
	_, hasOrg := got["organization_id"]
	assert.False(t, hasOrg)
}

func TestInterviewPatch(t *testing.T) {
	fields := fieldErrs(t, (&schema.InterviewPatch{}).Validate())
	assert.Contains(t, fields, "status")

	bad := model.Status("archived")
	fields = fieldErrs(t, (&schema.InterviewPatch{Status: &bad}).Validate())
	assert.Contains(t, fields["status"], "Unknown status")

	long := strings.Repeat("n", 2001)
	fields = fieldErrs(t, (&schema.InterviewPatch{Notes: &long}).Validate())
	assert.Contains(t, fields, "notes")

	done := model.StatusCompleted
	notes := "strong hire"
	assert.NoError(t, (&schema.InterviewPatch{Status: &done, Notes: &notes}).Validate())
}

func TestRegisterAndLogin(t *testing.T) {
	r := schema.RegisterForm{Name: "Al", Email: "al@acme.io", Password: "short", Role: "owner"}
	fields := fieldErrs(t, r.Validate())
	assert.Equal(t, "Password must be at least 8 characters", fields["password"])
	assert.Equal(t, "Please select a valid role", fields["role"])

	r.Password, r.Role = "longenough", model.RoleInterviewer
	assert.NoError(t, r.Validate())

	l := schema.LoginForm{Email: "x"}
	fields = fieldErrs(t, l.Validate())
	assert.Len(t, fields, 2)
}

func TestRecordForm(t *testing.T) {
	f := schema.RecordForm{Name: "  Acme  ", Email: " HR@Acme.IO "}
	f.Normalize()
	require.NoError(t, f.Validate())
	assert.Equal(t, "hr@acme.io", f.Email)
	assert.Nil(t, f.OrgID())

	f.OrganizationID = "org-1"
	require.NotNil(t, f.OrgID())
	assert.Equal(t, "org-1", *f.OrgID())
}

func TestValidationErrorMessage(t *testing.T) {
	err := &schema.ValidationError{Fields: schema.FieldErrors{"b": "two", "a": "one"}}
	assert.Equal(t, "validation failed: a: one; b: two", err.Error())
}

func TestRecordPatch(t *testing.T) {
	var p schema.RecordPatch
	assert.Equal(t, "Nothing to update", fieldErrs(t, p.Validate())["name"])

	blank, shout := "  ", " BO@X.IO "
	p = schema.RecordPatch{Name: &blank, Email: &shout}
	fields := fieldErrs(t, p.Validate())
	assert.Equal(t, "Name must be at least 2 characters", fields["name"])
	assert.NotContains(t, fields, "email")
	assert.Equal(t, "bo@x.io", *p.Email)

	org := ""
	p = schema.RecordPatch{OrganizationID: &org}
	assert.NoError(t, p.Validate())
}
