// Package metrics defines the Prometheus collectors of the lookup service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Lookup outcomes used as the "result" label.
const (
	ResultFound    = "found"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

// Metrics groups the collectors. Each instance registers on its own
// Registerer so tests can build as many as they like.
type Metrics struct {
	Lookups          *prometheus.CounterVec
	LookupDuration   prometheus.Histogram
	RosterCandidates prometheus.Gauge
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Lookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "roster_lookups_total",
				Help: "Total number of candidate lookups by result",
			},
			[]string{"result"},
		),
		LookupDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "roster_lookup_duration_seconds",
				Help:    "Duration of candidate lookups in seconds",
				Buckets: prometheus.ExponentialBuckets(0.00005, 4, 8),
			},
		),
		RosterCandidates: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "roster_candidates",
				Help: "Number of candidates in the loaded roster",
			},
		),
	}
}
