package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "codeshelf_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestsInFlight tracks requests currently being served.
	RequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "codeshelf_api_requests_in_flight",
			Help: "Number of API requests currently being served",
		},
	)

	// StoreMutations counts create/update/delete calls per entity and outcome (success|failure).
	StoreMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codeshelf_store_mutations_total",
			Help: "Total number of store mutations",
		},
		[]string{"entity", "operation", "result"},
	)

	// DuplicateSnippetsRemoved counts snippets deleted by the duplicate cleaner.
	DuplicateSnippetsRemoved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "codeshelf_duplicate_snippets_removed_total",
			Help: "Total number of duplicate snippets removed by maintenance",
		},
	)
)

// ObserveMutation records the outcome of a store mutation.
func ObserveMutation(entity, operation string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	StoreMutations.WithLabelValues(entity, operation, result).Inc()
}
