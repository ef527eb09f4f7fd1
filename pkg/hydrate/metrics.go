package hydrate

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains Prometheus metrics for hydration.
type Metrics struct {
	hydrations       *prometheus.CounterVec
	missingVariables *prometheus.CounterVec
	batchDrops       *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with Prometheus collectors
// registered on the default registerer.
func NewMetrics() *Metrics {
	return &Metrics{
		hydrations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "saturn_hydrations_total",
				Help: "Total number of hydration attempts",
			},
			[]string{"result"},
		),

		missingVariables: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "saturn_hydration_missing_variables_total",
				Help: "Total required variables left unresolved at hydration",
			},
			[]string{"template"},
		),

		batchDrops: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "saturn_batch_drops_total",
				Help: "Templates dropped from batch hydration by reason",
			},
			[]string{"reason"},
		),
	}
}

// ObserveHydration records one hydration attempt and its result.
func (m *Metrics) ObserveHydration(result string) {
	m.hydrations.WithLabelValues(result).Inc()
}

// ObserveMissing records unresolved required variables for a template.
func (m *Metrics) ObserveMissing(templateID string, count int) {
	m.missingVariables.WithLabelValues(templateID).Add(float64(count))
}

// ObserveBatchDrop records a dropped batch entry by reason.
func (m *Metrics) ObserveBatchDrop(reason string) {
	m.batchDrops.WithLabelValues(reason).Inc()
}
