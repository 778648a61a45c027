// Package observability exposes prometheus instrumentation for the assistant:
// query counters by intent and outcome, and upstream latency histograms.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the assistant's prometheus collectors.
type Metrics struct {
	queries *prometheus.CounterVec
	latency *prometheus.HistogramVec
}

// NewMetrics creates and registers the collectors. Pass
// prometheus.DefaultRegisterer for the default registry, or a private
// registry in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		queries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "helios",
				Name:      "queries_total",
				Help:      "Processed queries by intent and outcome.",
			},
			[]string{"intent", "outcome"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "helios",
				Name:      "handler_duration_seconds",
				Help:      "Handler execution latency by intent.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"intent"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.queries, m.latency)
	}
	return m
}

// ObserveQuery records one processed query.
func (m *Metrics) ObserveQuery(intent string, ok bool, elapsed time.Duration) {
	if m == nil {
		return
	}
	outcome := "success"
	if !ok {
		outcome = "error"
	}
	m.queries.WithLabelValues(intent, outcome).Inc()
	m.latency.WithLabelValues(intent).Observe(elapsed.Seconds())
}
