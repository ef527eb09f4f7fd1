package budget

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains Prometheus metrics for budget enforcement.
type Metrics struct {
	checks    *prometheus.CounterVec
	spent     prometheus.Gauge
	remaining prometheus.Gauge
	usage     prometheus.Gauge
	requests  prometheus.Gauge
}

// NewMetrics creates a new Metrics instance with Prometheus collectors
// registered on the default registerer.
func NewMetrics() *Metrics {
	return &Metrics{
		checks: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "saturn_budget_checks_total",
				Help: "Total number of budget checks performed",
			},
			[]string{"result"},
		),

		spent: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "saturn_budget_spent_cents",
				Help: "Total recorded spend in minor currency units",
			},
		),

		remaining: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "saturn_budget_remaining_cents",
				Help: "Budget remaining before the ceiling in minor currency units",
			},
		),

		usage: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "saturn_budget_usage_ratio",
				Help: "Current budget usage as a fraction of the ceiling (0.0-1.0)",
			},
		),

		requests: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "saturn_budget_recorded_requests",
				Help: "Number of cost results recorded in the current run",
			},
		),
	}
}

// ObserveCheck records the outcome of a budget check or reservation.
func (m *Metrics) ObserveCheck(allowed bool) {
	result := "allowed"
	if !allowed {
		result = "rejected"
	}
	m.checks.WithLabelValues(result).Inc()
}

// ObserveUsage updates the usage gauges from a budget summary.
func (m *Metrics) ObserveUsage(s Summary) {
	m.spent.Set(float64(s.Spent))
	m.remaining.Set(float64(s.Remaining))
	m.requests.Set(float64(s.Requests))

	if s.Ceiling > 0 {
		m.usage.Set(float64(s.Spent) / float64(s.Ceiling))
	} else {
		m.usage.Set(0)
	}
}
