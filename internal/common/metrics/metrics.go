// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecordsNormalized = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analyzer_records_normalized_total",
			Help: "Total number of project records produced by the normalizer",
		},
		[]string{"format"},
	)

	ProjectsClassified = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analyzer_projects_classified_total",
			Help: "Total number of classified projects by category and verdict",
		},
		[]string{"category", "verdict"},
	)

	DescriptionFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analyzer_description_fetches_total",
			Help: "Total number of project page fetches by outcome",
		},
		[]string{"outcome"},
	)

	DescriptionFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "analyzer_description_fetch_duration_seconds",
			Help:    "Duration of project page fetches in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	DescriptionCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analyzer_description_cache_lookups_total",
			Help: "Description cache lookups by result",
		},
		[]string{"result"},
	)

	RunDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "analyzer_last_run_duration_seconds",
			Help: "Wall time of the last pipeline run",
		},
	)
)

// WriteTextfile dumps the default registry in the node-exporter textfile
// format. A batch run has no scrape window, so this is how its metrics leave
// the process.
func WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
