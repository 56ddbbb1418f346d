package apiclient

import (
	"context"
	"encoding/json"
	"net/http"

	"interview-portal/internal/model"
	"interview-portal/internal/schema"
)

func (c *Client) CreateDemoRequest(ctx context.Context, f schema.DemoRequestForm) (Result[model.DemoRequest], error) {
	if err := f.Validate(); err != nil {
		return Result[model.DemoRequest]{}, err
	}
	req, err := jsonRequest("create_demo_request", http.MethodPost, "/api/demo-requests", f.Payload())
	if err != nil {
		return Result[model.DemoRequest]{}, err
	}
	return do[model.DemoRequest](ctx, c, req), nil
}

func (c *Client) ListDemoRequests(ctx context.Context) Result[[]model.DemoRequest] {
	return do[[]model.DemoRequest](ctx, c, request{
		op:     "list_demo_requests",
		method: http.MethodGet,
		path:   "/api/demo-requests",
	})
}

// TestDemoRequests hits the API's demo-request probe endpoint. The body is
// returned as-is.
func (c *Client) TestDemoRequests(ctx context.Context) Result[json.RawMessage] {
	return do[json.RawMessage](ctx, c, request{
		op:     "test_demo_requests",
		method: http.MethodGet,
		path:   "/api/demo-requests/test",
	})
}
