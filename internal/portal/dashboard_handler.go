package portal

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"interview-portal/internal/lifecycle"
	"interview-portal/internal/model"
	"interview-portal/internal/session"
	"interview-portal/internal/store"
)

type DirectoryCounts struct {
	Interviewers int `json:"interviewers"`
	Interviewees int `json:"interviewees"`
	Admins       int `json:"admins"`
}

// Dashboard is one role's landing view. Organization and Counts are only
// filled for admins; an admin without an organization gets zero counts.
type Dashboard struct {
	Session      session.View        `json:"session"`
	Organization *model.Organization `json:"organization,omitempty"`
	Counts       *DirectoryCounts    `json:"counts,omitempty"`
	Interviews   lifecycle.Board     `json:"interviews"`
}

// dashboard renders the view for the active role only. Switching role is a
// separate call that re-issues the session.
func (s *Server) dashboard(c *gin.Context) {
	sess := current(c)
	ctx := c.Request.Context()
	out := Dashboard{Session: sess.View()}

	var f store.InterviewFilter
	switch sess.Role {
	case model.RoleAdmin:
		if sess.OrganizationID == "" {
			out.Counts = &DirectoryCounts{}
			out.Interviews = lifecycle.Arrange(s.now(), nil)
			c.JSON(http.StatusOK, out)
			return
		}
		f.OrganizationID = sess.OrganizationID
		if err := s.adminPanel(c, sess.OrganizationID, &out); err != nil {
			storeError(c, err)
			return
		}
	case model.RoleInterviewer:
		f.InterviewerID = sess.UserID
	case model.RoleInterviewee:
		f.IntervieweeID = sess.UserID
	default:
		c.JSON(http.StatusForbidden, gin.H{"error": "no dashboard for role " + string(sess.Role)})
		return
	}

	ivs, err := s.dir.ListInterviews(ctx, f)
	if err != nil {
		storeError(c, err)
		return
	}
	out.Interviews = lifecycle.Arrange(s.now(), ivs)
	c.JSON(http.StatusOK, out)
}

func (s *Server) adminPanel(c *gin.Context, orgID string, out *Dashboard) error {
	ctx := c.Request.Context()
	org, err := s.dir.GetOrganization(ctx, orgID)
	switch {
	case err == nil:
		out.Organization = &org
	case !errors.Is(err, store.ErrNotFound):
		return err
	}
	ivs, err := s.dir.ListInterviewers(ctx, orgID)
	if err != nil {
		return err
	}
	ees, err := s.dir.ListInterviewees(ctx, orgID)
	if err != nil {
		return err
	}
	admins, err := s.dir.ListOrganizationAdmins(ctx, orgID)
	if err != nil {
		return err
	}
	out.Counts = &DirectoryCounts{Interviewers: len(ivs), Interviewees: len(ees), Admins: len(admins)}
	return nil
}
