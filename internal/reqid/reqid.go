// Package reqid carries the execution id through a context.
package reqid

import (
	"context"

	"github.com/google/uuid"
)

// key is the context key for the execution ID.
type key struct{}

// NewContext returns a copy of parent with a new random execution ID stored.
// It also returns the generated ID.
func NewContext(parent context.Context) (context.Context, string) {
	id := uuid.NewString()
	return context.WithValue(parent, key{}, id), id
}

// WithID returns a copy of parent carrying id, for callers that propagate an
// ID they received from elsewhere.
func WithID(parent context.Context, id string) context.Context {
	return context.WithValue(parent, key{}, id)
}

// FromContext extracts the execution ID from ctx.
// It returns the ID and whether it was present.
func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(key{}).(string)
	return id, ok && id != ""
}
