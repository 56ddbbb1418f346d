package store

import (
	"context"

	"interview-portal/internal/model"
)

// InterviewFilter scopes dashboard reads. Empty fields do not filter.
type InterviewFilter struct {
	OrganizationID string
	InterviewerID  string
	IntervieweeID  string
	Status         model.Status
}

func (s *Store) interviewQuery(f InterviewFilter) *Query {
	q := s.From("interviews")
	if f.OrganizationID != "" {
		q.Eq("organization_id", f.OrganizationID)
	}
	if f.InterviewerID != "" {
		q.Eq("interviewer_id", f.InterviewerID)
	}
	if f.IntervieweeID != "" {
		q.Eq("interviewee_id", f.IntervieweeID)
	}
	if f.Status != "" {
		q.Eq("status", string(f.Status))
	}
	return q.Order("scheduled_at")
}

func (s *Store) ListInterviews(ctx context.Context, f InterviewFilter) ([]model.Interview, error) {
	return All[model.Interview](ctx, s.interviewQuery(f))
}
