package apiclient

import (
	"context"
	"net/http"

	"interview-portal/internal/model"
	"interview-portal/internal/schema"
)

func (c *Client) Register(ctx context.Context, f schema.RegisterForm) (Result[model.AuthResponse], error) {
	if err := f.Validate(); err != nil {
		return Result[model.AuthResponse]{}, err
	}
	req, err := jsonRequest("register", http.MethodPost, "/api/auth/register", f)
	if err != nil {
		return Result[model.AuthResponse]{}, err
	}
	return do[model.AuthResponse](ctx, c, req), nil
}

// Login checks credentials against the API; the portal never holds a
// credential list of its own.
func (c *Client) Login(ctx context.Context, f schema.LoginForm) (Result[model.AuthResponse], error) {
	if err := f.Validate(); err != nil {
		return Result[model.AuthResponse]{}, err
	}
	req, err := jsonRequest("login", http.MethodPost, "/api/auth/login", f)
	if err != nil {
		return Result[model.AuthResponse]{}, err
	}
	return do[model.AuthResponse](ctx, c, req), nil
}
