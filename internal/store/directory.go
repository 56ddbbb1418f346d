package store

import (
	"context"

	"github.com/google/uuid"

	"interview-portal/internal/model"
)

func (s *Store) CreateOrganization(ctx context.Context, name, email string) (model.Organization, error) {
	return Insert[model.Organization](ctx, s.From("organizations"), map[string]any{
		"id":    uuid.New().String(),
		"name":  name,
		"email": email,
	})
}

func (s *Store) ListOrganizations(ctx context.Context) ([]model.Organization, error) {
	return All[model.Organization](ctx, s.From("organizations").Order("name"))
}

func (s *Store) GetOrganization(ctx context.Context, id string) (model.Organization, error) {
	return Single[model.Organization](ctx, s.From("organizations").Eq("id", id))
}

// member builds the insert values shared by the three people tables.
func member(name, email string, orgID *string) map[string]any {
	return map[string]any{
		"id":              uuid.New().String(),
		"name":            name,
		"email":           email,
		"organization_id": orgID,
	}
}

// scoped filters by organization unless orgID is empty.
func scoped(q *Query, orgID string) *Query {
	if orgID != "" {
		q = q.Eq("organization_id", orgID)
	}
	return q.Order("name")
}

func (s *Store) CreateInterviewer(ctx context.Context, name, email string, orgID *string) (model.Interviewer, error) {
	return Insert[model.Interviewer](ctx, s.From("interviewers"), member(name, email, orgID))
}

func (s *Store) ListInterviewers(ctx context.Context, orgID string) ([]model.Interviewer, error) {
	return All[model.Interviewer](ctx, scoped(s.From("interviewers"), orgID))
}

func (s *Store) GetInterviewer(ctx context.Context, id string) (model.Interviewer, error) {
	return Single[model.Interviewer](ctx, s.From("interviewers").Eq("id", id))
}

// InterviewerUpdate carries the fields to change; nil fields are left alone.
type InterviewerUpdate struct {
	Name           *string
	Email          *string
	OrganizationID *string
}

func (u InterviewerUpdate) values() map[string]any {
	v := map[string]any{}
	if u.Name != nil {
		v["name"] = *u.Name
	}
	if u.Email != nil {
		v["email"] = *u.Email
	}
	if u.OrganizationID != nil {
		if *u.OrganizationID == "" {
			v["organization_id"] = nil
		} else {
			v["organization_id"] = *u.OrganizationID
		}
	}
	return v
}

func (s *Store) UpdateInterviewer(ctx context.Context, id string, u InterviewerUpdate) (model.Interviewer, error) {
	return Update[model.Interviewer](ctx, s.From("interviewers").Eq("id", id), u.values())
}

func (s *Store) DeleteInterviewer(ctx context.Context, id string) error {
	return s.From("interviewers").Eq("id", id).Delete(ctx)
}

func (s *Store) CreateInterviewee(ctx context.Context, name, email string, orgID *string) (model.Interviewee, error) {
	return Insert[model.Interviewee](ctx, s.From("interviewees"), member(name, email, orgID))
}

func (s *Store) ListInterviewees(ctx context.Context, orgID string) ([]model.Interviewee, error) {
	return All[model.Interviewee](ctx, scoped(s.From("interviewees"), orgID))
}

func (s *Store) GetInterviewee(ctx context.Context, id string) (model.Interviewee, error) {
	return Single[model.Interviewee](ctx, s.From("interviewees").Eq("id", id))
}

func (s *Store) CreateOrganizationAdmin(ctx context.Context, name, email string, orgID *string) (model.OrganizationAdmin, error) {
	return Insert[model.OrganizationAdmin](ctx, s.From("organization_admins"), member(name, email, orgID))
}

func (s *Store) ListOrganizationAdmins(ctx context.Context, orgID string) ([]model.OrganizationAdmin, error) {
	return All[model.OrganizationAdmin](ctx, scoped(s.From("organization_admins"), orgID))
}
