package session

import (
	"context"
	"errors"
	"slices"

	"interview-portal/internal/model"
)

var (
	ErrNoSession   = errors.New("no session")
	ErrRoleNotHeld = errors.New("role not held by session")
)

// Session is the signed-in user as the portal sees it. The active Role is
// carried explicitly and handed to every dashboard; nothing else holds role
// state.
type Session struct {
	UserID         string       `json:"uid"`
	Name           string       `json:"name"`
	Email          string       `json:"email"`
	Role           model.Role   `json:"role"`
	Roles          []model.Role `json:"roles"`
	OrganizationID string       `json:"org,omitempty"`
	APIToken       string       `json:"api_token,omitempty"`
}

// FromAuth builds a session from a login/register response. The first
// valid role becomes the active one.
func FromAuth(a model.AuthResponse) (Session, error) {
	s := Session{
		UserID:         a.User.ID,
		Name:           a.User.Name,
		Email:          a.User.Email,
		OrganizationID: a.User.OrganizationID,
		APIToken:       a.Token,
	}
	for _, r := range a.User.Roles {
		if r.Valid() && !slices.Contains(s.Roles, r) {
			s.Roles = append(s.Roles, r)
		}
	}
	if s.UserID == "" || len(s.Roles) == 0 {
		return Session{}, errors.New("session: user id and at least one role required")
	}
	s.Role = s.Roles[0]
	return s, nil
}

func (s Session) Has(r model.Role) bool {
	return slices.Contains(s.Roles, r)
}

// SwitchRole returns a copy with r active.
func (s Session) SwitchRole(r model.Role) (Session, error) {
	if !s.Has(r) {
		return s, ErrRoleNotHeld
	}
	cp := s
	cp.Roles = slices.Clone(s.Roles)
	cp.Role = r
	return cp, nil
}

// View is the session as returned to the browser, without the API token.
type View struct {
	UserID         string       `json:"uid"`
	Name           string       `json:"name"`
	Email          string       `json:"email"`
	Role           model.Role   `json:"role"`
	Roles          []model.Role `json:"roles"`
	OrganizationID string       `json:"organization_id,omitempty"`
}

func (s Session) View() View {
	return View{
		UserID:         s.UserID,
		Name:           s.Name,
		Email:          s.Email,
		Role:           s.Role,
		Roles:          s.Roles,
		OrganizationID: s.OrganizationID,
	}
}

type ctxKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (Session, error) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	if !ok {
		return Session{}, ErrNoSession
	}
	return s, nil
}
