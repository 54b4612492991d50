package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the load and
// query paths.
type Metrics struct {
	NEOsLoaded       prometheus.Counter
	ApproachesLoaded prometheus.Counter
	IngestErrors     prometheus.Counter
	DiameterDefaults prometheus.Counter
	OrphanApproaches prometheus.Counter

	QueryDuration   prometheus.Histogram
	ResultsReturned prometheus.Histogram
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		NEOsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "neoscout",
			Name:      "neos_loaded_total",
			Help:      "Total near-Earth objects constructed from the CSV source.",
		}),
		ApproachesLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "neoscout",
			Name:      "approaches_loaded_total",
			Help:      "Total close approaches constructed from the JSON source.",
		}),
		IngestErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "neoscout",
			Name:      "ingest_errors_total",
			Help:      "Total source files that failed to open or parse.",
		}),
		DiameterDefaults: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "neoscout",
			Name:      "diameter_defaults_total",
			Help:      "Total NEOs whose diameter degraded to NaN during construction.",
		}),
		OrphanApproaches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "neoscout",
			Name:      "orphan_approaches_total",
			Help:      "Total close approaches linked to a synthesized placeholder NEO.",
		}),
		QueryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "neoscout",
			Name:      "query_duration_seconds",
			Help:      "Duration of a full query scan including result consumption.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
		ResultsReturned: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "neoscout",
			Name:      "results_returned",
			Help:      "Number of close approaches returned per query.",
			Buckets:   []float64{0, 1, 10, 100, 1000, 10000, 100000},
		}),
	}

	prometheus.MustRegister(
		m.NEOsLoaded,
		m.ApproachesLoaded,
		m.IngestErrors,
		m.DiameterDefaults,
		m.OrphanApproaches,
		m.QueryDuration,
		m.ResultsReturned,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		NEOsLoaded:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "neoscout", Name: "neos_loaded_total"}),
		ApproachesLoaded: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "neoscout", Name: "approaches_loaded_total"}),
		IngestErrors:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "neoscout", Name: "ingest_errors_total"}),
		DiameterDefaults: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "neoscout", Name: "diameter_defaults_total"}),
		OrphanApproaches: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "neoscout", Name: "orphan_approaches_total"}),
		QueryDuration:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "neoscout", Name: "query_duration_seconds"}),
		ResultsReturned:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "neoscout", Name: "results_returned"}),
	}
}
