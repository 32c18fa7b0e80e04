package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	language "github.com/hanpama/gqlcore/internal/language"
	schema "github.com/hanpama/gqlcore/internal/schema"
	"github.com/stretchr/testify/require"
)

// mustBuild builds a schema from sdl after applying the resolver hooks.
func mustBuild(t *testing.T, sdl string, hooks ...func(*schema.Builder)) *schema.Schema {
	t.Helper()
	b := schema.NewBuilder()
	require.NoError(t, b.AddSDL("test.graphql", sdl))
	for _, h := range hooks {
		h(b)
	}
	s, err := b.Build()
	require.NoError(t, err)
	return s
}

// mustParseQuery parses a GraphQL query and fails the test on error.
func mustParseQuery(t *testing.T, q string) *language.ExecutableDocument {
	t.Helper()
	d, err := language.ParseExecutableDocument(q)
	require.NoError(t, err)
	return d
}

func execute(t *testing.T, e *Executor, query string, variables map[string]any) *ExecutionResult {
	t.Helper()
	return e.ExecuteRequest(context.Background(), Request{
		Document:  mustParseQuery(t, query),
		Variables: variables,
	})
}

func newExecutor(t *testing.T, s *schema.Schema, opts ...Option) *Executor {
	t.Helper()
	e := New(DefaultRuntime{}, s, opts...)
	t.Cleanup(e.Close)
	return e
}

func dataJSON(t *testing.T, res *ExecutionResult) string {
	t.Helper()
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	require.NoError(t, enc.Encode(res.Data))
	return strings.TrimSuffix(buf.String(), "\n")
}

func errorMessages(res *ExecutionResult) []string {
	var out []string
	for _, e := range res.Errors {
		out = append(out, e.Message)
	}
	return out
}

func errorPaths(res *ExecutionResult) []Path {
	var out []Path
	for _, e := range res.Errors {
		out = append(out, e.Path)
	}
	return out
}

// returns is a resolver that always returns v.
func returns(v any) schema.ResolveFunc {
	return func(context.Context, schema.ResolveParams) (any, error) { return v, nil }
}

// fails is a resolver that always returns an error with msg.
func fails(msg string) schema.ResolveFunc {
	return func(context.Context, schema.ResolveParams) (any, error) { return nil, errors.New(msg) }
}

// Call records one ResolveField invocation.
type Call struct {
	ParentType string
	Field      string
	Path       string
	Source     any
	Args       map[string]any
}

// recordingRuntime wraps DefaultRuntime and logs every field resolution.
type recordingRuntime struct {
	DefaultRuntime
	mu    sync.Mutex
	calls []Call
}

func (r *recordingRuntime) ResolveField(ctx context.Context, field *schema.Field, p schema.ResolveParams) (any, error) {
	r.mu.Lock()
	r.calls = append(r.calls, Call{
		ParentType: p.Info.ParentType.Name,
		Field:      field.Name,
		Path:       Path(p.Info.Path).String(),
		Source:     p.Source,
		Args:       p.Args,
	})
	r.mu.Unlock()
	return r.DefaultRuntime.ResolveField(ctx, field, p)
}

func (r *recordingRuntime) GetCalls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}
