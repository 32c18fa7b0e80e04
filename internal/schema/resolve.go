package schema

import (
	"context"

	language "github.com/hanpama/gqlcore/internal/language"
)

// ResolveFunc produces the raw value of a field. The executor completes the
// returned value against the field's type.
type ResolveFunc func(ctx context.Context, p ResolveParams) (any, error)

// SubscribeFunc produces the event stream of a subscription root field. It
// runs as the producer task: every event is handed over with sink.Send and
// the function returns when the stream ends. A non-nil error ends the stream
// with an error result. ctx is cancelled when the consumer stops.
type SubscribeFunc func(ctx context.Context, p ResolveParams, sink EventSink) error

// EventSink receives subscription events from a SubscribeFunc.
type EventSink interface {
	// Send blocks until the event is accepted or ctx is done.
	Send(ctx context.Context, event any) error
}

// ResolveTypeFunc returns the concrete object type name of an abstract value.
type ResolveTypeFunc func(ctx context.Context, value any, info ResolveInfo) (string, error)

// IsTypeOfFunc reports whether value belongs to the object type.
type IsTypeOfFunc func(value any) bool

// SerializeFunc converts an internal scalar value into a result value.
type SerializeFunc func(value any) (any, error)

// ParseValueFunc converts an input (variable) value into an internal value.
type ParseValueFunc func(value any) (any, error)

// ParseLiteralFunc converts a literal into an internal value.
type ParseLiteralFunc func(value language.Value, variables map[string]any) (any, error)

// ResolveParams is the input of a ResolveFunc.
type ResolveParams struct {
	// Source is the parent object value (the root value for root fields).
	Source any
	// Args are the coerced field arguments.
	Args map[string]any
	Info ResolveInfo
}

// ResolveInfo describes the field being resolved.
type ResolveInfo struct {
	FieldName  string
	FieldNodes []*language.Field
	ReturnType *TypeRef
	ParentType *Type
	// Path is the response path of the field: string keys and int indexes.
	Path      []any
	Schema    *Schema
	Fragments map[string]*language.FragmentDefinition
	Operation *language.OperationDefinition
	RootValue any
	Variables map[string]any
}
