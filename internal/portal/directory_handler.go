package portal

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"interview-portal/internal/model"
	"interview-portal/internal/schema"
	"interview-portal/internal/store"
)

const errForeignOrg = "Organization must be your own"

// tenant is the organization an admin's directory is limited to. Admins
// without an organization have no directory; on false a 403 has been
// written.
func tenant(c *gin.Context) (string, bool) {
	org := current(c).OrganizationID
	if org == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "no organization for this admin"})
		return "", false
	}
	return org, true
}

// sameOrg reports whether a record's organization is org.
func sameOrg(p *string, org string) bool {
	return p != nil && *p == org
}

// foreignOrg is the 422 for a form naming an organization other than the
// session's.
func foreignOrg() error {
	return &schema.ValidationError{Fields: schema.FieldErrors{"organization_id": errForeignOrg}}
}

// bindRecord binds and validates a RecordForm for the admin's organization.
// On false the response has been written.
func bindRecord(c *gin.Context) (schema.RecordForm, bool) {
	org, ok := tenant(c)
	if !ok {
		return schema.RecordForm{}, false
	}
	var f schema.RecordForm
	if err := c.ShouldBind(&f); err != nil {
		badBody(c, err)
		return f, false
	}
	f.Normalize()
	if err := f.Validate(); invalid(c, err) {
		return f, false
	}
	switch f.OrganizationID {
	case "", org:
		f.OrganizationID = org
	default:
		invalid(c, foreignOrg())
		return f, false
	}
	return f, true
}

// scopedList runs fn for the admin's organization.
func scopedList[T any](c *gin.Context, fn func(ctx context.Context, org string) ([]T, error)) {
	org, ok := tenant(c)
	if !ok {
		return
	}
	list(c, func(ctx context.Context) ([]T, error) { return fn(ctx, org) })
}

func list[T any](c *gin.Context, fn func(ctx context.Context) ([]T, error)) {
	rows, err := fn(c.Request.Context())
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func create[T any](c *gin.Context, fn func(ctx context.Context, f schema.RecordForm) (T, error)) {
	f, ok := bindRecord(c)
	if !ok {
		return
	}
	rec, err := fn(c.Request.Context(), f)
	if err != nil {
		storeError(c, err)
		return
	}
	submitted(c, http.StatusCreated, rec)
}

// listOrganizations returns the admin's own organization, or nothing for an
// admin without one.
func (s *Server) listOrganizations(c *gin.Context) {
	org := current(c).OrganizationID
	list(c, func(ctx context.Context) ([]model.Organization, error) {
		if org == "" {
			return []model.Organization{}, nil
		}
		o, err := s.dir.GetOrganization(ctx, org)
		if errors.Is(err, store.ErrNotFound) {
			return []model.Organization{}, nil
		}
		if err != nil {
			return nil, err
		}
		return []model.Organization{o}, nil
	})
}

// createOrganization is open to admins not yet bound to an organization.
func (s *Server) createOrganization(c *gin.Context) {
	if current(c).OrganizationID != "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin already belongs to an organization"})
		return
	}
	var f schema.RecordForm
	if err := c.ShouldBind(&f); err != nil {
		badBody(c, err)
		return
	}
	f.Normalize()
	if err := f.Validate(); invalid(c, err) {
		return
	}
	rec, err := s.dir.CreateOrganization(c.Request.Context(), f.Name, f.Email)
	if err != nil {
		storeError(c, err)
		return
	}
	submitted(c, http.StatusCreated, rec)
}

func (s *Server) listInterviewers(c *gin.Context) {
	scopedList(c, s.dir.ListInterviewers)
}

func (s *Server) createInterviewer(c *gin.Context) {
	create(c, func(ctx context.Context, f schema.RecordForm) (model.Interviewer, error) {
		return s.dir.CreateInterviewer(ctx, f.Name, f.Email, f.OrgID())
	})
}

// ownInterviewer checks that :id names an interviewer in org. Records of
// other organizations answer 404. On false the response has been written.
func (s *Server) ownInterviewer(c *gin.Context, org string) bool {
	rec, err := s.dir.GetInterviewer(c.Request.Context(), c.Param("id"))
	if err != nil {
		storeError(c, err)
		return false
	}
	if !sameOrg(rec.OrganizationID, org) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return false
	}
	return true
}

func (s *Server) updateInterviewer(c *gin.Context) {
	org, ok := tenant(c)
	if !ok {
		return
	}
	var p schema.RecordPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		badBody(c, err)
		return
	}
	if err := p.Validate(); invalid(c, err) {
		return
	}
	if p.OrganizationID != nil && *p.OrganizationID != org {
		invalid(c, foreignOrg())
		return
	}
	if !s.ownInterviewer(c, org) {
		return
	}
	rec, err := s.dir.UpdateInterviewer(c.Request.Context(), c.Param("id"), store.InterviewerUpdate{
		Name:           p.Name,
		Email:          p.Email,
		OrganizationID: p.OrganizationID,
	})
	if err != nil {
		storeError(c, err)
		return
	}
	submitted(c, http.StatusOK, rec)
}

func (s *Server) deleteInterviewer(c *gin.Context) {
	org, ok := tenant(c)
	if !ok || !s.ownInterviewer(c, org) {
		return
	}
	if err := s.dir.DeleteInterviewer(c.Request.Context(), c.Param("id")); err != nil {
		storeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listInterviewees(c *gin.Context) {
	scopedList(c, s.dir.ListInterviewees)
}

func (s *Server) createInterviewee(c *gin.Context) {
	create(c, func(ctx context.Context, f schema.RecordForm) (model.Interviewee, error) {
		return s.dir.CreateInterviewee(ctx, f.Name, f.Email, f.OrgID())
	})
}

func (s *Server) listAdmins(c *gin.Context) {
	scopedList(c, s.dir.ListOrganizationAdmins)
}

func (s *Server) createAdmin(c *gin.Context) {
	create(c, func(ctx context.Context, f schema.RecordForm) (model.OrganizationAdmin, error) {
		return s.dir.CreateOrganizationAdmin(ctx, f.Name, f.Email, f.OrgID())
	})
}
