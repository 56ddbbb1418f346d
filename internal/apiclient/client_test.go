package apiclient_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interview-portal/internal/apiclient"
	"interview-portal/internal/apitest"
	"interview-portal/internal/reqid"
	"interview-portal/internal/model"
	"interview-portal/internal/schema"
)

func setup(t *testing.T) (*apiclient.Client, *apitest.Server) {
	t.Helper()
	srv := apitest.New()
	t.Cleanup(srv.Close)
	return apiclient.New(srv.URL + "/"), srv
}

func interviewForm() schema.InterviewForm {
	return schema.InterviewForm{
		CandidateName: "Grace Hopper",
		Interviewer:   "iv-1",
		IntervieweeID: "ie-1",
		Date:          "2026-11-02",
		Time:          "09:00",
		Duration:      "45",
		Format:        "mixed",
		JobRole:       "SRE",
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`{"message":"X"}`, "X"},
		{`{"message":"X","error":"Y"}`, "X"},
		{`{"error":"Y"}`, "Y"},
		{`{"message":"","error":"Y"}`, "Y"},
		{`{"error":{"message":"Z","code":7}}`, "Z"},
		{`{"message":42}`, apiclient.GenericFailure},
		{`{}`, apiclient.GenericFailure},
		{`<html>bad gateway</html>`, apiclient.GenericFailure},
		{``, apiclient.GenericFailure},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, apiclient.ErrorMessage([]byte(tt.body)), "body %q", tt.body)
	}
}

func TestCreateInterviewMultipart(t *testing.T) {
	c, srv := setup(t)
	resume := &apiclient.Attachment{Filename: "cv.pdf", ContentType: "application/pdf", Body: strings.NewReader("%PDF-1.4")}

	res, err := c.CreateInterview(context.Background(), interviewForm(), resume)
	require.NoError(t, err)
	require.True(t, res.Success, res.Error)
	assert.Equal(t, http.StatusCreated, res.Status)
	assert.NotEmpty(t, res.Data.ID)
	assert.Equal(t, "Grace Hopper", res.Data.CandidateName)
	assert.Equal(t, model.StatusScheduled, res.Data.Status)
	assert.Equal(t, 45, res.Data.Duration)
	assert.Equal(t, time.Date(2026, 11, 2, 9, 0, 0, 0, time.UTC), res.Data.ScheduledAt.UTC())
	assert.Equal(t, "/uploads/"+res.Data.ID+"/cv.pdf", res.Data.ResumeURL)

	calls := srv.Calls()
	require.Len(t, calls, 1)
	assert.True(t, strings.HasPrefix(calls[0].ContentType, "multipart/form-data"))
	assert.NotEmpty(t, calls[0].RequestID)
}

func TestCreateInterviewWithoutResume(t *testing.T) {
	c, _ := setup(t)
	res, err := c.CreateInterview(context.Background(), interviewForm(), nil)
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Empty(t, res.Data.ResumeURL)
}

func TestCreateInterviewInvalidNeverSends(t *testing.T) {
	c, srv := setup(t)
	f := interviewForm()
	f.CandidateName = "G"

	res, err := c.CreateInterview(context.Background(), f, nil)
	ve, ok := schema.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "candidateName")
	assert.False(t, res.Success)
	assert.Zero(t, srv.CallCount(), "invalid payload must not reach the network")
}

func TestCreateInterviewFailureMessage(t *testing.T) {
	c, srv := setup(t)
	srv.FailNext(http.StatusConflict, `{"message":"X"}`)

	res, err := c.CreateInterview(context.Background(), interviewForm(), nil)
	require.NoError(t, err)
	assert.Equal(t, apiclient.Result[model.Interview]{Success: false, Error: "X", Status: http.StatusConflict}, res)
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := apiclient.New(url)
	res := c.ListDemoRequests(context.Background())
	assert.False(t, res.Success)
	assert.Equal(t, apiclient.GenericFailure, res.Error)
	assert.Zero(t, res.Status)
}

func TestUndecodableSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, "not json")
	}))
	defer srv.Close()

	res, err := apiclient.New(srv.URL).GetInterview(context.Background(), "x")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, apiclient.GenericFailure, res.Error)
}

func TestInterviewReadsAreIdempotent(t *testing.T) {
	c, srv := setup(t)
	iv := srv.PutInterview(model.Interview{
		CandidateName: "Alan",
		InterviewerID: "iv-1",
		ScheduledAt:   time.Date(2026, 11, 3, 12, 0, 0, 0, time.UTC),
		Duration:      30,
		Format:        model.FormatTechnical,
		Status:        model.StatusScheduled,
	})

	first, err := c.GetInterview(context.Background(), iv.ID)
	require.NoError(t, err)
	second, err := c.GetInterview(context.Background(), iv.ID)
	require.NoError(t, err)
	require.True(t, first.Success)
	assert.Equal(t, first, second)

	l1 := c.ListInterviews(context.Background(), apiclient.InterviewFilter{InterviewerID: "iv-1"})
	l2 := c.ListInterviews(context.Background(), apiclient.InterviewFilter{InterviewerID: "iv-1"})
	assert.Equal(t, l1, l2)
	require.Len(t, l1.Data, 1)
}

func TestGetInterviewNotFound(t *testing.T) {
	c, _ := setup(t)
	res, err := c.GetInterview(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "Interview not found", res.Error)
	assert.Equal(t, http.StatusNotFound, res.Status)

	_, err = c.GetInterview(context.Background(), "")
	_, ok := schema.AsValidation(err)
	assert.True(t, ok)
}

func TestListInterviewsFilter(t *testing.T) {
	c, srv := setup(t)
	srv.PutInterview(model.Interview{InterviewerID: "a", IntervieweeID: "x", Status: model.StatusScheduled})
	srv.PutInterview(model.Interview{InterviewerID: "a", IntervieweeID: "y", Status: model.StatusCompleted})
	srv.PutInterview(model.Interview{InterviewerID: "b", IntervieweeID: "x", Status: model.StatusScheduled})

	res := c.ListInterviews(context.Background(), apiclient.InterviewFilter{IntervieweeID: "x", Status: model.StatusScheduled})
	require.True(t, res.Success)
	assert.Len(t, res.Data, 2)

	calls := srv.Calls()
	assert.Equal(t, "interviewee=x&status=scheduled", calls[len(calls)-1].Query)
}

func TestUpdateAndDeleteInterview(t *testing.T) {
	c, srv := setup(t)
	iv := srv.PutInterview(model.Interview{Status: model.StatusScheduled})

	done := model.StatusCompleted
	notes := "solid"
	res, err := c.UpdateInterview(context.Background(), iv.ID, schema.InterviewPatch{Status: &done, Notes: &notes})
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, model.StatusCompleted, res.Data.Status)
	assert.Equal(t, "solid", res.Data.Notes)
	assert.Equal(t, "application/json", srv.Calls()[0].ContentType)

	_, err = c.UpdateInterview(context.Background(), iv.ID, schema.InterviewPatch{})
	assert.Error(t, err)
	assert.Equal(t, 1, srv.CallCount())

	del, err := c.DeleteInterview(context.Background(), iv.ID)
	require.NoError(t, err)
	assert.True(t, del.Success)
	assert.Equal(t, iv.ID, del.Data.ID)

	_, ok := srv.Interview(iv.ID)
	assert.False(t, ok)

	del, err = c.DeleteInterview(context.Background(), iv.ID)
	require.NoError(t, err)
	assert.False(t, del.Success)
}

func TestEmptySuccessBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	res, err := apiclient.New(srv.URL).DeleteInterview(context.Background(), "x")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, apiclient.Deleted{}, res.Data)
}

func TestDemoRequests(t *testing.T) {
	c, srv := setup(t)
	f := schema.DemoRequestForm{
		FirstName:     " Ada ",
		LastName:      "Lovelace",
		WorkEmail:     "ada@analytical.io",
		AgreesToTerms: true,
	}
	res, err := c.CreateDemoRequest(context.Background(), f)
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, "Ada", res.Data.FirstName)
	assert.NotEmpty(t, res.Data.ID)

	f.WorkEmail = "ada@gmail.com"
	_, err = c.CreateDemoRequest(context.Background(), f)
	ve, ok := schema.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, schema.ErrWorkEmailMsg, ve.Fields["work_email"])
	assert.Equal(t, 1, srv.CallCount())

	f.WorkEmail = "ada@analytical.io"
	f.FirstName, f.LastName = " A ", "   "
	_, err = c.CreateDemoRequest(context.Background(), f)
	ve, ok = schema.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "first_name")
	assert.Contains(t, ve.Fields, "last_name")
	assert.Equal(t, 1, srv.CallCount(), "padded short names never reach the API")

	list := c.ListDemoRequests(context.Background())
	require.True(t, list.Success)
	assert.Len(t, list.Data, 1)

	probe := c.TestDemoRequests(context.Background())
	require.True(t, probe.Success)
	assert.JSONEq(t, `{"ok":true,"count":1}`, string(probe.Data))
}

func TestLoginAndToken(t *testing.T) {
	c, srv := setup(t)
	srv.RequireToken = true
	srv.AddUser("Sam", "sam@acme.io", "correct-horse", "org-1", model.RoleInterviewer)

	bad, err := c.Login(context.Background(), schema.LoginForm{Email: "sam@acme.io", Password: "nope"})
	require.NoError(t, err)
	assert.False(t, bad.Success)
	assert.Equal(t, "Invalid credentials", bad.Error)

	ok, err := c.Login(context.Background(), schema.LoginForm{Email: "sam@acme.io", Password: "correct-horse"})
	require.NoError(t, err)
	require.True(t, ok.Success)
	assert.Equal(t, []model.Role{model.RoleInterviewer}, ok.Data.User.Roles)

	denied := c.ListInterviews(context.Background(), apiclient.InterviewFilter{})
	assert.False(t, denied.Success)
	assert.Equal(t, "Unauthorized", denied.Error)

	authed := c.WithToken(ok.Data.Token)
	allowed := authed.ListInterviews(context.Background(), apiclient.InterviewFilter{})
	assert.True(t, allowed.Success)

	calls := srv.Calls()
	assert.Equal(t, "Bearer "+ok.Data.Token, calls[len(calls)-1].Auth)
}

func TestRegister(t *testing.T) {
	c, _ := setup(t)
	f := schema.RegisterForm{Name: "Kim", Email: "kim@acme.io", Password: "longenough", Role: model.RoleAdmin}
	res, err := c.Register(context.Background(), f)
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.NotEmpty(t, res.Data.Token)

	dup, err := c.Register(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, "Email already registered", dup.Error)
}

func TestRequestIDPropagates(t *testing.T) {
	c, srv := setup(t)
	ctx := reqid.With(context.Background(), "rid-42")
	c.TestDemoRequests(ctx)
	assert.Equal(t, "rid-42", srv.Calls()[0].RequestID)
}
