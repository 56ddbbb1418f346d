package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"

	"interview-portal/internal/model"
	"interview-portal/internal/schema"
)

// Attachment is an optional resume uploaded with a new interview.
type Attachment struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// CreateInterview sends the form as multipart/form-data so a resume can ride
// along. The error is non-nil only when the form fails validation, in which
// case nothing is sent.
func (c *Client) CreateInterview(ctx context.Context, f schema.InterviewForm, resume *Attachment) (Result[model.Interview], error) {
	if err := f.Validate(); err != nil {
		return Result[model.Interview]{}, err
	}
	fields, err := f.Fields(c.loc)
	if err != nil {
		return Result[model.Interview]{}, err
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, kv := range fields {
		if err := mw.WriteField(kv[0], kv[1]); err != nil {
			return Result[model.Interview]{}, fmt.Errorf("create interview: %w", err)
		}
	}
	if resume != nil {
		if err := writeFile(mw, "resume", resume); err != nil {
			return Result[model.Interview]{}, fmt.Errorf("create interview: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return Result[model.Interview]{}, fmt.Errorf("create interview: %w", err)
	}

	return do[model.Interview](ctx, c, request{
		op:          "create_interview",
		method:      http.MethodPost,
		path:        "/api/interviews",
		body:        &buf,
		contentType: mw.FormDataContentType(),
	}), nil
}

func writeFile(mw *multipart.Writer, field string, a *Attachment) error {
	ct := a.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, a.Filename))
	h.Set("Content-Type", ct)
	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, a.Body)
	return err
}

func (c *Client) GetInterview(ctx context.Context, id string) (Result[model.Interview], error) {
	if id == "" {
		return Result[model.Interview]{}, &schema.ValidationError{Fields: schema.FieldErrors{"id": "Interview id is required"}}
	}
	return do[model.Interview](ctx, c, request{
		op:     "get_interview",
		method: http.MethodGet,
		path:   "/api/interviews/" + url.PathEscape(id),
	}), nil
}

// InterviewFilter narrows ListInterviews. Empty fields are not sent.
type InterviewFilter struct {
	InterviewerID string
	IntervieweeID string
	Status        model.Status
}

func (f InterviewFilter) query() string {
	q := url.Values{}
	if f.InterviewerID != "" {
		q.Set("interviewer", f.InterviewerID)
	}
	if f.IntervieweeID != "" {
		q.Set("interviewee", f.IntervieweeID)
	}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

func (c *Client) ListInterviews(ctx context.Context, f InterviewFilter) Result[[]model.Interview] {
	return do[[]model.Interview](ctx, c, request{
		op:     "list_interviews",
		method: http.MethodGet,
		path:   "/api/interviews" + f.query(),
	})
}

// UpdateInterview sends a partial JSON update (status, notes, feedback flag).
func (c *Client) UpdateInterview(ctx context.Context, id string, p schema.InterviewPatch) (Result[model.Interview], error) {
	if id == "" {
		return Result[model.Interview]{}, &schema.ValidationError{Fields: schema.FieldErrors{"id": "Interview id is required"}}
	}
	if err := p.Validate(); err != nil {
		return Result[model.Interview]{}, err
	}
	req, err := jsonRequest("update_interview", http.MethodPut, "/api/interviews/"+url.PathEscape(id), p)
	if err != nil {
		return Result[model.Interview]{}, err
	}
	return do[model.Interview](ctx, c, req), nil
}

// Deleted is the (possibly empty) body of a delete call.
type Deleted struct {
	ID      string `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
}

func (c *Client) DeleteInterview(ctx context.Context, id string) (Result[Deleted], error) {
	if id == "" {
		return Result[Deleted]{}, &schema.ValidationError{Fields: schema.FieldErrors{"id": "Interview id is required"}}
	}
	return do[Deleted](ctx, c, request{
		op:     "delete_interview",
		method: http.MethodDelete,
		path:   "/api/interviews/" + url.PathEscape(id),
	}), nil
}
