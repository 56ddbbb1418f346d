// Package reqid carries the request id through a context.Context. It is
// shared by the inbound middleware and the outbound API client.
package reqid

import "context"

// Header is the HTTP header the id travels in, both ways.
const Header = "X-Request-ID"

type ctxKey struct{}

func With(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// From returns the id stored by With, or "".
func From(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
