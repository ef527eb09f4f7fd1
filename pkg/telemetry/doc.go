// Package telemetry wires up structured logging and Prometheus metric
// exposition for the hydration service.
//
// # Logging
//
// SetupLogging builds a log/slog handler from the telemetry section of
// the configuration (level and format) and installs it as the process
// default. Every other package obtains its logger via
// slog.Default().With("component", ...), so installing the default is
// all that is needed to direct their output.
//
// # Metrics
//
// Individual packages register their collectors with the default
// Prometheus registry through promauto. MetricsHandler exposes that
// registry in the Prometheus exposition format; ServeMetrics mounts it
// on a standalone HTTP listener for scrapers.
package telemetry
