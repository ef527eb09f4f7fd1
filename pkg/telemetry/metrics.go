package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsHandler returns an HTTP handler that exposes the default
// Prometheus registry in the standard exposition format. All package
// collectors register there through promauto, so a single handler
// covers the whole process.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(
		prometheus.DefaultGatherer,
		promhttp.HandlerOpts{
			EnableOpenMetrics: true,
			ErrorHandling:     promhttp.ContinueOnError,
		},
	)
}

// MetricsServer is a standalone HTTP listener serving the metrics
// endpoint for scrapers.
type MetricsServer struct {
	srv    *http.Server
	logger *slog.Logger
}

// NewMetricsServer builds a metrics server listening on addr with the
// exposition handler mounted at path.
func NewMetricsServer(addr, path string) *MetricsServer {
	mux := http.NewServeMux()
	mux.Handle(path, MetricsHandler())

	return &MetricsServer{
		srv: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: slog.Default().With("component", "metrics"),
	}
}

// Start begins serving in a background goroutine. Listen errors other
// than a clean shutdown are logged.
func (m *MetricsServer) Start() {
	m.logger.Info("metrics server starting", "addr", m.srv.Addr)
	go func() {
		if err := m.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			m.logger.Error("metrics server failed", "error", err)
		}
	}()
}

// Stop shuts the listener down, waiting up to the context deadline for
// in-flight scrapes to finish.
func (m *MetricsServer) Stop(ctx context.Context) error {
	if err := m.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("stopping metrics server: %w", err)
	}
	return nil
}
