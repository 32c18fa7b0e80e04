package executor

import (
	"log/slog"
)

type options struct {
	// maxConcurrency bounds the worker pool of Async fields. Zero runs every
	// field inline.
	maxConcurrency int
	// subscriptionBuffer is the capacity of the event queue between a
	// subscription source and the execution loop. Zero is a rendezvous.
	subscriptionBuffer int
	introspection      bool
	skipValidation     bool
	logger             *slog.Logger
}

func defaultOptions() options {
	return options{
		maxConcurrency: 256,
		introspection:  true,
		logger:         slog.Default(),
	}
}

type Option func(*options)

// WithMaxConcurrency bounds the number of Async fields resolving at once
// across all executions. Fields beyond the bound run inline. n <= 0 runs
// every field inline.
func WithMaxConcurrency(n int) Option { return func(o *options) { o.maxConcurrency = n } }

// WithSubscriptionBuffer sets how many subscription events may be queued
// ahead of the execution loop. Queued events are discarded when the source
// ends, so with n > 0 a finite source may yield fewer results than it sent
// events. The default of 0 hands each event over only when the loop is
// ready for it.
func WithSubscriptionBuffer(n int) Option {
	return func(o *options) {
		if n < 0 {
			n = 0
		}
		o.subscriptionBuffer = n
	}
}

// WithIntrospection enables or disables the __schema and __type fields.
func WithIntrospection(enabled bool) Option { return func(o *options) { o.introspection = enabled } }

// WithoutValidation skips document validation for callers that validate
// documents ahead of time.
func WithoutValidation() Option { return func(o *options) { o.skipValidation = true } }

func WithLogger(l *slog.Logger) Option { return func(o *options) { o.logger = l } }
