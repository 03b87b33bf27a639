// Package metrics exposes Prometheus instrumentation for the fetch pipeline,
// the cache and the persistence sink. Collectors register against the default
// registry and are served by the API on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "qualcanal_fetch_total",
		Help: "Total number of schedule fetches by outcome",
	}, []string{"outcome"})

	FetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "qualcanal_fetch_duration_seconds",
		Help:    "Duration of schedule fetches including extraction",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
	})

	ExtractionPathTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "qualcanal_extraction_path_total",
		Help: "Extraction strategy that produced the final batch",
	}, []string{"path"})

	MatchesInSnapshot = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "qualcanal_matches_in_snapshot",
		Help: "Number of matches in the most recent snapshot",
	})

	PersistErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "qualcanal_persist_errors_total",
		Help: "Snapshot persistence failures by backend",
	}, []string{"backend"})

	CacheTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "qualcanal_cache_requests_total",
		Help: "Cache lookups by result (hit, miss, bypass)",
	}, []string{"result"})
)

// RecordFetch records a completed fetch. outcome is "ok", "network_error" or "error".
func RecordFetch(outcome string, elapsed time.Duration) {
	if outcome == "" {
		outcome = "unknown"
	}
	FetchTotal.WithLabelValues(outcome).Inc()
	FetchDuration.Observe(elapsed.Seconds())
}

// RecordExtraction records the extraction path and the batch size it produced.
func RecordExtraction(path string, matches int) {
	if path == "" {
		path = "none"
	}
	ExtractionPathTotal.WithLabelValues(path).Inc()
	MatchesInSnapshot.Set(float64(matches))
}

// IncPersistError counts a failed snapshot write.
func IncPersistError(backend string) {
	if backend == "" {
		backend = "unknown"
	}
	PersistErrorsTotal.WithLabelValues(backend).Inc()
}

// IncCache counts a cache lookup result.
func IncCache(result string) {
	CacheTotal.WithLabelValues(result).Inc()
}
