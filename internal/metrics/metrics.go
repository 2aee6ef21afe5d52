// Package metrics provides Prometheus metrics for the dedupe engine and
// contact ingestion.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PairsEvaluatedTotal tracks contact pairs scored by the engine
	PairsEvaluatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "dedupe",
			Subsystem: "engine",
			Name:      "pairs_total",
			Help:      "Total number of contact pairs scored",
		},
	)

	// MatchesTotal tracks accepted matches by precision tier
	MatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dedupe",
			Subsystem: "engine",
			Name:      "matches_total",
			Help:      "Total number of accepted matches by precision tier",
		},
		[]string{"tier"},
	)

	// RunDuration tracks how long a full scan takes in seconds
	RunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "dedupe",
			Subsystem: "engine",
			Name:      "run_duration_seconds",
			Help:      "Duration of full pairwise scans in seconds",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 30, 120},
		},
	)

	// RowsSkippedTotal tracks source rows dropped by the skip policy
	RowsSkippedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dedupe",
			Subsystem: "ingest",
			Name:      "rows_skipped_total",
			Help:      "Total number of source rows skipped as blank or incomplete",
		},
		[]string{"source"},
	)
)

// RecordRun records one engine scan
func RecordRun(pairs int, durationSeconds float64, matchesByTier map[string]int) {
	PairsEvaluatedTotal.Add(float64(pairs))
	RunDuration.Observe(durationSeconds)
	for tier, count := range matchesByTier {
		MatchesTotal.WithLabelValues(tier).Add(float64(count))
	}
}

// RecordRowSkipped records a dropped source row
func RecordRowSkipped(source string) {
	RowsSkippedTotal.WithLabelValues(source).Inc()
}
