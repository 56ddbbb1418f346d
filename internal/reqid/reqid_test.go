package reqid

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithAndFrom(t *testing.T) {
	assert.Empty(t, From(context.Background()))
	ctx := With(context.Background(), "rid-7")
	assert.Equal(t, "rid-7", From(ctx))
	assert.Equal(t, "rid-8", From(With(ctx, "rid-8")))
}
