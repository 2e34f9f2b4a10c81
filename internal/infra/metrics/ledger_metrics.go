// Package metrics exposes prometheus metrics of the ledger sweeps.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/domain/entity"
)

const namespace = "property_ledger"

// Unit outcomes.
const (
	OutcomeSucceeded = "succeeded"
	OutcomeFailed    = "failed"
	OutcomeSkipped   = "skipped"
)

// LedgerMetrics captures sweep health signals.
type LedgerMetrics struct {
	jobRuns     *prometheus.CounterVec
	jobDuration *prometheus.HistogramVec
	units       *prometheus.CounterVec
	canceled    *prometheus.CounterVec
}

var _ adapter.BatchObserver = (*LedgerMetrics)(nil)

// NewLedgerMetrics creates the collectors and registers them on registerer.
// A nil registerer uses prometheus.DefaultRegisterer.
func NewLedgerMetrics(registerer prometheus.Registerer) *LedgerMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &LedgerMetrics{
		jobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweep_runs_total",
			Help:      "Sweep runs by job.",
		}, []string{"job"}),
		jobDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sweep_duration_seconds",
			Help:      "Sweep wall time by job.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
		}, []string{"job"}),
		units: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweep_units_total",
			Help:      "Units processed by job and outcome.",
		}, []string{"job", "outcome"}),
		canceled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweep_canceled_total",
			Help:      "Sweeps stopped before every unit was scheduled.",
		}, []string{"job"}),
	}

	registerer.MustRegister(m.jobRuns, m.jobDuration, m.units, m.canceled)
	return m
}

// ObserveBatch records the outcome of one sweep.
func (m *LedgerMetrics) ObserveBatch(result *entity.BatchResult) {
	if m == nil || result == nil {
		return
	}

	m.jobRuns.WithLabelValues(result.Job).Inc()
	if !result.FinishedAt.IsZero() && !result.StartedAt.IsZero() {
		m.jobDuration.WithLabelValues(result.Job).Observe(result.FinishedAt.Sub(result.StartedAt).Seconds())
	}
	m.units.WithLabelValues(result.Job, OutcomeSucceeded).Add(float64(len(result.Succeeded)))
	m.units.WithLabelValues(result.Job, OutcomeFailed).Add(float64(len(result.Failed)))
	m.units.WithLabelValues(result.Job, OutcomeSkipped).Add(float64(len(result.Skipped)))
	if result.Canceled {
		m.canceled.WithLabelValues(result.Job).Inc()
	}
}
