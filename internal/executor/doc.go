// Package executor executes validated GraphQL operations against a linked
// schema, resolving fields through a Runtime.
//
// # Preparation
//
// Before execution, the executor:
//  1. Validates the document with the specified rules, unless WithoutValidation
//     is set. Any violation stops execution.
//  2. Chooses the operation by name, or the only operation when unnamed.
//  3. Coerces the request variables against the operation's variable
//     definitions. Errors here stop execution.
//
// Request errors produce a single ExecutionResult with null data.
//
// # Execution Model
//
// For each object the executor collects the grouped field set: selections
// whose @skip/@include conditions hold and whose fragment type conditions
// match the object type (by identity, interface implementation or union
// membership), grouped by response key in first-occurrence order.
//
// Each grouped field is resolved once with coerced arguments, then its value
// is completed against the field type:
//   - Non-Null: complete the inner type; a null result is a field error.
//   - List: complete every item in order, with index-aware paths.
//   - Leaf: Runtime.SerializeLeafValue.
//   - Interface/Union: Runtime.ResolveType picks the concrete object type,
//     which must be a possible type of the abstract type.
//   - Object: recurse into the merged sub-selections.
//
// Fields declared Async are dispatched to a bounded ants worker pool and
// resolve concurrently with their siblings; when the pool is saturated a
// field resolves inline. Root mutation fields always resolve one after
// another. Values and errors are assembled in grouped-field order, never in
// completion order.
//
// # Errors and Partial Success
//
// A failed nullable field becomes null and its error is recorded at its
// path. A failed Non-Null field nulls its parent instead, and so on up to
// the nearest nullable ancestor or the whole data. The error is recorded
// once, with the path where it happened.
//
// # Subscriptions
//
// The root field's event source runs on its own goroutine and hands events
// to the execution loop through a queue, a rendezvous by default. Every
// event is executed as the root value of the selection set and yields one
// result. When the source ends, fails, or the consumer stops, the sequence
// stops immediately: queued events are not drained, and the source's
// context is cancelled.
package executor
