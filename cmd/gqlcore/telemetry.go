package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	config "github.com/hanpama/gqlcore/internal/config"
	eventbus "github.com/hanpama/gqlcore/internal/eventbus"
	metrics "github.com/hanpama/gqlcore/internal/metrics"
	otel "github.com/hanpama/gqlcore/internal/otel"
)

// startTelemetry installs the global event bus and attaches tracing and
// metrics as configured. The returned function flushes and detaches them.
func startTelemetry(cfg *config.Config, logger *slog.Logger) (stop func(), err error) {
	bus := eventbus.New()
	eventbus.Use(bus)
	var closers []func()
	stop = func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
		eventbus.Use(nil)
	}

	shutdown, err := otel.Setup(cfg.Tracing.Endpoint, cfg.Tracing.Service)
	if err != nil {
		stop()
		return nil, err
	}
	closers = append(closers, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(ctx); err != nil {
			logger.Warn("tracing shutdown failed", "error", err)
		}
	})

	if cfg.Metrics.Address != "" {
		reg := prometheus.NewRegistry()
		m := metrics.New(reg)
		closers = append(closers, m.Attach(bus))

		ln, err := net.Listen("tcp", cfg.Metrics.Address)
		if err != nil {
			stop()
			return nil, err
		}
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler(reg))
		srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", "error", err)
			}
		}()
		logger.Info("serving metrics", "address", ln.Addr().String())
		closers = append(closers, func() { _ = srv.Close() })
	}

	return stop, nil
}
