// Package otel exports execution traces over OTLP. Spans are built from
// the execution events published on the event bus.
package otel

import (
	"context"
	"time"

	syncmap "github.com/SaveTheRbtz/generic-sync-map-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	eventbus "github.com/hanpama/gqlcore/internal/eventbus"
	events "github.com/hanpama/gqlcore/internal/events"
)

const instrumentationName = "github.com/hanpama/gqlcore"

// Setup configures an OTLP trace exporter and attaches span builders to
// the global event bus, installing one if none is set. If endpoint is
// empty, no telemetry is configured.
func Setup(endpoint, service string) (func(context.Context) error, error) {
	if endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}
	exp, err := otlptracegrpc.New(context.Background(),
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(service),
		)),
	)
	otel.SetTracerProvider(tp)

	bus := eventbus.Default()
	if bus == nil {
		bus = eventbus.New()
		eventbus.Use(bus)
	}
	detach := Attach(bus, tp.Tracer(instrumentationName))

	return func(ctx context.Context) error {
		detach()
		return tp.Shutdown(ctx)
	}, nil
}

// Attach subscribes span builders for execution events on bus. Every
// execution becomes a "graphql.execute" span; every resolver call becomes
// a child span named after its field.
func Attach(bus *eventbus.Bus, tracer trace.Tracer) (detach func()) {
	s := &subscriber{tracer: tracer}
	unsubs := []func(){
		eventbus.On(bus, s.executionStart),
		eventbus.On(bus, s.executionFinish),
		eventbus.On(bus, s.resolverStart),
		eventbus.On(bus, s.resolverFinish),
		eventbus.On(bus, s.subscriptionEvent),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

type subscriber struct {
	tracer     trace.Tracer
	executions syncmap.MapOf[string, trace.Span] // execution id -> span
	resolvers  syncmap.MapOf[string, trace.Span] // execution id + path -> span
}

// take removes the span stored under key and returns it.
func take(m *syncmap.MapOf[string, trace.Span], key string) (trace.Span, bool) {
	span, ok := m.Load(key)
	if ok {
		m.Delete(key)
	}
	return span, ok
}

func resolverKey(executionID, path string) string { return executionID + "/" + path }

func (s *subscriber) executionStart(ctx context.Context, e events.ExecutionStart) {
	_, span := s.tracer.Start(ctx, "graphql.execute", trace.WithAttributes(
		attribute.String("graphql.execution.id", e.ExecutionID),
		attribute.String("graphql.operation.name", e.OperationName),
		attribute.String("graphql.operation.type", e.OperationType),
	))
	s.executions.Store(e.ExecutionID, span)
}

func (s *subscriber) executionFinish(_ context.Context, e events.ExecutionFinish) {
	span, ok := take(&s.executions, e.ExecutionID)
	if !ok {
		return
	}
	span.SetAttributes(attribute.Int("graphql.error_count", len(e.Errors)))
	if len(e.Errors) > 0 {
		span.SetStatus(codes.Error, e.Errors[0].Error())
	}
	span.End()
}

func (s *subscriber) resolverStart(ctx context.Context, e events.ResolverStart) {
	parent := ctx
	if span, ok := s.executions.Load(e.ExecutionID); ok {
		parent = trace.ContextWithSpan(ctx, span)
	}
	_, span := s.tracer.Start(parent, e.ParentType+"."+e.Field, trace.WithAttributes(
		attribute.String("graphql.field.path", e.Path),
		attribute.String("graphql.field.parent_type", e.ParentType),
	))
	s.resolvers.Store(resolverKey(e.ExecutionID, e.Path), span)
}

func (s *subscriber) resolverFinish(_ context.Context, e events.ResolverFinish) {
	span, ok := take(&s.resolvers, resolverKey(e.ExecutionID, e.Path))
	if !ok {
		return
	}
	if e.Err != nil {
		span.RecordError(e.Err)
		span.SetStatus(codes.Error, e.Err.Error())
	}
	span.End()
}

func (s *subscriber) subscriptionEvent(_ context.Context, e events.SubscriptionEvent) {
	span, ok := s.executions.Load(e.ExecutionID)
	if !ok {
		return
	}
	span.AddEvent("graphql.subscription.event",
		trace.WithTimestamp(time.Now()),
		trace.WithAttributes(
			attribute.Int("graphql.subscription.sequence", e.Sequence),
			attribute.Int("graphql.error_count", len(e.Errors)),
		))
}
