package reqid

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextRoundTrip(t *testing.T) {
	ctx, id := NewContext(context.Background())
	got, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, id, got)

	_, err := uuid.Parse(id)
	assert.NoError(t, err)

	_, ok = FromContext(context.Background())
	assert.False(t, ok, "unexpected id in empty context")
}

func TestWithID(t *testing.T) {
	got, ok := FromContext(WithID(context.Background(), "exec-1"))
	require.True(t, ok)
	assert.Equal(t, "exec-1", got)

	_, ok = FromContext(WithID(context.Background(), ""))
	assert.False(t, ok)
}

func TestNewContext_Unique(t *testing.T) {
	_, a := NewContext(context.Background())
	_, b := NewContext(context.Background())
	assert.NotEqual(t, a, b)
}
