// Package command provides CLI command definitions for mapkit-bench.
package command

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/yndnr/mapkit-go/internal/telemetry/logger"
	"github.com/yndnr/mapkit-go/internal/telemetry/metric"
)

// serveMetrics starts an HTTP listener exposing reg on /metrics.
// The returned stop function shuts the listener down.
func serveMetrics(reg *metric.Registry, address string) (stop func(context.Context) error) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", reg.Handler())

	srv := &http.Server{
		Addr:              address,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("metrics listener started", "address", address)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics listener failed", "error", err)
		}
	}()

	return srv.Shutdown
}
