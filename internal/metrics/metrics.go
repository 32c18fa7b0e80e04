// Package metrics records Prometheus metrics from the execution events
// published on the event bus.
package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	eventbus "github.com/hanpama/gqlcore/internal/eventbus"
	events "github.com/hanpama/gqlcore/internal/events"
)

// Metrics holds the collectors of one registry.
type Metrics struct {
	// ExecutionsTotal counts finished executions by operation type and
	// outcome ("ok" or "error").
	ExecutionsTotal *prometheus.CounterVec
	// ExecutionDuration is the latency of executions in seconds.
	ExecutionDuration *prometheus.HistogramVec
	// ResolverDuration is the latency of attached resolvers in seconds.
	ResolverDuration *prometheus.HistogramVec
	// ResolverErrorsTotal counts resolver calls that returned an error.
	ResolverErrorsTotal *prometheus.CounterVec
	// SubscriptionEventsTotal counts subscription results delivered.
	SubscriptionEventsTotal *prometheus.CounterVec
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ExecutionsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gqlcore_executions_total",
				Help: "Total number of GraphQL executions",
			},
			[]string{"operation_type", "status"},
		),
		ExecutionDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gqlcore_execution_duration_seconds",
				Help:    "GraphQL execution latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation_type"},
		),
		ResolverDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gqlcore_resolver_duration_seconds",
				Help:    "Resolver latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"parent_type", "field"},
		),
		ResolverErrorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gqlcore_resolver_errors_total",
				Help: "Total number of resolver errors",
			},
			[]string{"parent_type", "field"},
		),
		SubscriptionEventsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gqlcore_subscription_events_total",
				Help: "Total number of subscription results delivered",
			},
			[]string{"field"},
		),
	}
}

// Attach records metrics for the events published on bus.
func (m *Metrics) Attach(bus *eventbus.Bus) (detach func()) {
	unsubs := []func(){
		eventbus.On(bus, func(_ context.Context, e events.ExecutionFinish) {
			status := "ok"
			if len(e.Errors) > 0 {
				status = "error"
			}
			m.ExecutionsTotal.WithLabelValues(e.OperationType, status).Inc()
			m.ExecutionDuration.WithLabelValues(e.OperationType).Observe(e.Duration.Seconds())
		}),
		eventbus.On(bus, func(_ context.Context, e events.ResolverFinish) {
			m.ResolverDuration.WithLabelValues(e.ParentType, e.Field).Observe(e.Duration.Seconds())
			if e.Err != nil {
				m.ResolverErrorsTotal.WithLabelValues(e.ParentType, e.Field).Inc()
			}
		}),
		eventbus.On(bus, func(_ context.Context, e events.SubscriptionEvent) {
			m.SubscriptionEventsTotal.WithLabelValues(e.Field).Inc()
		}),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

// Handler returns the Prometheus HTTP handler for /metrics.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
