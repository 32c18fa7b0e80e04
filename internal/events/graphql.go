// Package events defines the execution lifecycle events published on the
// event bus.
package events

import "time"

// ExecutionStart is emitted before executing a GraphQL operation.
type ExecutionStart struct {
	ExecutionID   string
	OperationName string
	OperationType string
}

// ExecutionFinish is emitted after executing a GraphQL operation. For a
// subscription it is emitted when the event stream ends.
type ExecutionFinish struct {
	ExecutionID   string
	OperationName string
	OperationType string
	Errors        []error
	Duration      time.Duration
}

// ResolverStart is emitted before calling a resolver attached to a field.
// Fields read from their parent value do not emit resolver events.
type ResolverStart struct {
	ExecutionID string
	ParentType  string
	Field       string
	Path        string
}

// ResolverFinish is emitted after a resolver returns.
type ResolverFinish struct {
	ExecutionID string
	ParentType  string
	Field       string
	Path        string
	Err         error
	Duration    time.Duration
}

// SubscriptionEvent is emitted for every subscription result delivered.
type SubscriptionEvent struct {
	ExecutionID   string
	OperationName string
	Field         string
	Sequence      int
	Errors        []error
}
