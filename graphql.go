// Package gqlcore parses, validates and executes GraphQL requests against a
// schema built from SDL and resolver hooks.
//
//	b := gqlcore.NewBuilder()
//	_ = b.AddSDL("schema.graphql", `type Query { hello: String }`)
//	b.Resolve("Query", "hello", func(ctx context.Context, p gqlcore.ResolveParams) (any, error) {
//		return "world", nil
//	})
//	s, _ := b.Build()
//	res := gqlcore.Do(ctx, gqlcore.Params{Schema: s, Query: "{ hello }"})
package gqlcore

import (
	"context"
	"errors"
	"iter"

	executor "github.com/hanpama/gqlcore/internal/executor"
	introspection "github.com/hanpama/gqlcore/internal/introspection"
	language "github.com/hanpama/gqlcore/internal/language"
	schema "github.com/hanpama/gqlcore/internal/schema"
)

type (
	Schema          = schema.Schema
	Builder         = schema.Builder
	ResolveParams   = schema.ResolveParams
	ResolveFunc     = schema.ResolveFunc
	SubscribeFunc   = schema.SubscribeFunc
	EventSink       = schema.EventSink
	Runtime         = executor.Runtime
	Option          = executor.Option
	ExecutionResult = executor.ExecutionResult
	Error           = executor.Error
)

var (
	WithMaxConcurrency     = executor.WithMaxConcurrency
	WithSubscriptionBuffer = executor.WithSubscriptionBuffer
	WithIntrospection      = executor.WithIntrospection
	WithLogger             = executor.WithLogger
)

func NewBuilder() *Builder { return schema.NewBuilder() }

// Params is one request.
type Params struct {
	Schema *Schema
	// Runtime resolves fields that have no resolver hook. Nil uses the
	// default runtime, which reads map keys and struct fields.
	Runtime       Runtime
	Query         string
	OperationName string
	Variables     map[string]any
	RootValue     any
	Options       []Option
}

// Do runs a query or mutation and returns its result. A subscription
// returns the result of its first event.
func Do(ctx context.Context, p Params) *ExecutionResult {
	for res := range Subscribe(ctx, p) {
		return res
	}
	return &ExecutionResult{}
}

// Subscribe runs p lazily and yields every result: one for queries and
// mutations, one per source event for subscriptions. Syntax errors yield a
// single result with null data.
func Subscribe(ctx context.Context, p Params) iter.Seq[*ExecutionResult] {
	return func(yield func(*ExecutionResult) bool) {
		doc, err := language.ParseExecutableSource(language.NewSource("GraphQL request", p.Query))
		if err != nil {
			yield(&ExecutionResult{Errors: []*Error{syntaxError(err)}})
			return
		}
		e := executor.New(runtimeFor(p.Runtime), p.Schema, p.Options...)
		defer e.Close()
		for res := range e.Execute(ctx, executor.Request{
			Document:      doc,
			OperationName: p.OperationName,
			Variables:     p.Variables,
			RootValue:     p.RootValue,
		}) {
			if !yield(res) {
				return
			}
		}
	}
}

func runtimeFor(rt Runtime) Runtime {
	if rt == nil {
		rt = executor.DefaultRuntime{}
	}
	return introspection.Wrap(rt)
}

func syntaxError(err error) *Error {
	var se *language.SyntaxError
	if errors.As(err, &se) {
		return &Error{
			Message:   "Syntax Error: " + se.Message,
			Locations: []language.SourceLocation{se.Location.SourceLocation()},
			Err:       err,
		}
	}
	return &Error{Message: err.Error(), Err: err}
}
