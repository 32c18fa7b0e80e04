package executor

import (
	"context"
	"errors"
	"fmt"
	"sync"

	eventbus "github.com/hanpama/gqlcore/internal/eventbus"
	events "github.com/hanpama/gqlcore/internal/events"
	schema "github.com/hanpama/gqlcore/internal/schema"
)

// ErrSubscriptionClosed is returned by EventSink.Send once the consumer
// has stopped.
var ErrSubscriptionClosed = errors.New("subscription closed")

// eventQueue hands events from one producer to one consumer. A zero
// capacity makes every Send wait for the consumer.
type eventQueue struct {
	events  chan any
	done    chan struct{} // closed by the producer when the source ends
	stopped chan struct{} // closed by the consumer when it leaves
	finish  sync.Once
	stop    sync.Once
	failure error
}

func newEventQueue(buffer int) *eventQueue {
	return &eventQueue{
		events:  make(chan any, buffer),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// Send implements schema.EventSink.
func (q *eventQueue) Send(ctx context.Context, event any) error {
	select {
	case q.events <- event:
		return nil
	case <-q.stopped:
		return ErrSubscriptionClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *eventQueue) close(err error) {
	q.finish.Do(func() {
		q.failure = err
		close(q.done)
	})
}

func (q *eventQueue) leave() {
	q.stop.Do(func() { close(q.stopped) })
}

// next returns the next event. It reports false once the source has ended
// or ctx is done; events still queued at that point are dropped.
func (q *eventQueue) next(ctx context.Context) (any, bool) {
	select {
	case <-q.done:
		return nil, false
	case <-ctx.Done():
		return nil, false
	default:
	}
	select {
	case ev := <-q.events:
		return ev, true
	case <-q.done:
		return nil, false
	case <-ctx.Done():
		return nil, false
	}
}

// err returns the source error once the source has ended.
func (q *eventQueue) err() error {
	select {
	case <-q.done:
		return q.failure
	default:
		return nil
	}
}

// subscribe runs the event source of the single root field of a
// subscription and yields one result per event. Each event is executed as
// the root value of the operation's selection set.
func (x *execution) subscribe(ctx context.Context, yield func(*ExecutionResult) bool) {
	rootType := x.schema.SubscriptionType
	fields := x.collectFields(rootType, x.operation.SelectionSet).orderedFields()
	if len(fields) == 0 {
		yield(&ExecutionResult{Errors: []*Error{{Message: "Subscription operation must select one top level field."}}})
		return
	}
	cf := fields[0]
	name := cf.Fields[0].Name.Value
	path := Path{cf.ResponseName}
	def := x.schema.FieldFor(rootType, name)
	if def == nil {
		yield(&ExecutionResult{Errors: []*Error{locatedError(fmt.Errorf("The subscription field %q is not defined.", name), cf.Fields, path)}})
		return
	}
	args, err := coerceArgumentValues(def.Arguments, cf.Fields[0].Arguments, x.variables)
	if err != nil {
		yield(&ExecutionResult{Errors: []*Error{locatedError(err, cf.Fields, path)}})
		return
	}
	p := schema.ResolveParams{
		Source: x.rootValue,
		Args:   args,
		Info: schema.ResolveInfo{
			FieldName:  name,
			FieldNodes: cf.Fields,
			ReturnType: def.Type,
			ParentType: rootType,
			Path:       path,
			Schema:     x.schema,
			Fragments:  x.fragments,
			Operation:  x.operation,
			RootValue:  x.rootValue,
			Variables:  x.variables,
		},
	}

	ctx, cancel := context.WithCancel(ctx)
	q := newEventQueue(x.opts.subscriptionBuffer)
	defer func() {
		q.leave()
		cancel()
	}()
	go func() {
		q.close(x.runSource(ctx, def, p, q))
	}()

	seq := 0
	for {
		event, ok := q.next(ctx)
		if !ok {
			break
		}
		seq++
		res := x.executeEvent(ctx, event)
		errs := make([]error, len(res.Errors))
		for i, e := range res.Errors {
			errs[i] = e
		}
		eventbus.Publish(ctx, events.SubscriptionEvent{
			ExecutionID:   x.id,
			OperationName: x.operation.OperationName(),
			Field:         name,
			Sequence:      seq,
			Errors:        errs,
		})
		if !yield(res) {
			return
		}
	}
	if ctx.Err() != nil {
		return
	}
	if err := q.err(); err != nil {
		yield(&ExecutionResult{Errors: []*Error{locatedError(err, cf.Fields, path)}})
	}
}

func (x *execution) runSource(ctx context.Context, def *schema.Field, p schema.ResolveParams, sink schema.EventSink) (err error) {
	defer func() {
		if r := recover(); r != nil {
			x.opts.logger.Error("subscription source panic",
				"execution_id", x.id, "field", def.Name, "panic", r)
			err = fmt.Errorf("subscription source panic: %v", r)
		}
	}()
	return x.runtime.Subscribe(ctx, def, p, sink)
}

// executeEvent runs the operation's selection set with event as the root
// value.
func (x *execution) executeEvent(ctx context.Context, event any) *ExecutionResult {
	ex := *x
	ex.rootValue = event
	rootType := x.schema.SubscriptionType
	grouped := ex.collectFields(rootType, ex.operation.SelectionSet)
	var errs []*Error
	data, err := ex.executeFields(ctx, &errs, rootType, event, nil, grouped, false)
	if err != nil {
		errs = append(errs, err)
		data = nil
	}
	return &ExecutionResult{Data: data, Errors: errs}
}
