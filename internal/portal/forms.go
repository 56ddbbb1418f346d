package portal

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"interview-portal/internal/apiclient"
	"interview-portal/internal/middleware"
	"interview-portal/internal/schema"
	"interview-portal/internal/session"
	"interview-portal/internal/store"
)

const (
	StateSubmitted = "submitted"
	StateInvalid   = "invalid"
	StateFailed    = "failed"
)

type Banner struct {
	Message string `json:"message"`
	Retry   bool   `json:"retry"`
}

// FormState is the single response shape of every form submission.
// SubmitDisabled only holds while a submission is pending, which the
// browser tracks; responses always carry false.
type FormState struct {
	State          string             `json:"state"`
	Data           any                `json:"data,omitempty"`
	Fields         schema.FieldErrors `json:"fields,omitempty"`
	Banner         *Banner            `json:"banner,omitempty"`
	SubmitDisabled bool               `json:"submitDisabled"`
}

func submitted(c *gin.Context, status int, data any) {
	c.JSON(status, FormState{State: StateSubmitted, Data: data})
}

// invalid writes a 422 and reports true when err is a ValidationError.
func invalid(c *gin.Context, err error) bool {
	ve, ok := schema.AsValidation(err)
	if !ok {
		return false
	}
	c.JSON(http.StatusUnprocessableEntity, FormState{State: StateInvalid, Fields: ve.Fields})
	return true
}

// failed renders a RequestFailure banner. Upstream 4xx statuses pass
// through; anything else becomes 502.
func failed(c *gin.Context, status int, msg string) {
	if status < 400 || status > 499 {
		status = http.StatusBadGateway
	}
	c.JSON(status, FormState{State: StateFailed, Banner: &Banner{Message: msg, Retry: true}})
}

func failedResult[T any](c *gin.Context, r apiclient.Result[T]) {
	failed(c, r.Status, r.Error)
}

// formError handles the error half of an apiclient call: a ValidationError
// becomes 422, anything else is unexpected and becomes a generic banner.
func formError(c *gin.Context, err error) {
	if invalid(c, err) {
		return
	}
	_ = c.Error(err)
	failed(c, 0, apiclient.GenericFailure)
}

func badBody(c *gin.Context, err error) {
	middleware.Logger(c).Infof("bind %s: %v", c.FullPath(), err)
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
}

// storeError maps a table-store failure to 404 or 500.
func storeError(c *gin.Context, err error) {
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

// current returns the session put on the context by middleware.Auth.
func current(c *gin.Context) session.Session {
	s, err := session.FromContext(c.Request.Context())
	if err != nil {
		panic("portal: handler mounted without auth middleware")
	}
	return s
}
