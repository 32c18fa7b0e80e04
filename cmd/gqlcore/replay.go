package main

import (
	"context"
	"fmt"
	"reflect"

	executor "github.com/hanpama/gqlcore/internal/executor"
	schema "github.com/hanpama/gqlcore/internal/schema"
)

// replayRuntime serves subscriptions from static data: the root value
// property named after the subscription field holds the list of events.
type replayRuntime struct {
	executor.DefaultRuntime
}

func (r replayRuntime) ResolveField(ctx context.Context, field *schema.Field, p schema.ResolveParams) (any, error) {
	if field.Resolve == nil && p.Info.ParentType == p.Info.Schema.SubscriptionType {
		return p.Source, nil
	}
	return r.DefaultRuntime.ResolveField(ctx, field, p)
}

func (r replayRuntime) Subscribe(ctx context.Context, field *schema.Field, p schema.ResolveParams, sink schema.EventSink) error {
	if field.Subscribe != nil {
		return r.DefaultRuntime.Subscribe(ctx, field, p, sink)
	}
	v := executor.PropertyValue(p.Source, field.Name)
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return fmt.Errorf("events of %s must be a list, got %T", field.Name, v)
	}
	for i := range rv.Len() {
		if err := sink.Send(ctx, rv.Index(i).Interface()); err != nil {
			return err
		}
	}
	return nil
}
