package stories

import "github.com/prometheus/client_golang/prometheus"

var (
	sweepRuns = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "story_sweep_runs_total", Help: "Completed expiration sweep runs"},
	)
	sweepReclaimed = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "story_sweep_reclaimed_total", Help: "Expired story records removed by the sweep"},
	)
	sweepCleanupFailures = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "story_sweep_cleanup_failures_total", Help: "Media deletions that failed during sweeps"},
	)
	sweepDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "story_sweep_duration_seconds",
			Help:    "Duration of expiration sweep runs",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// MustRegisterMetrics registers the sweep metrics with the default
// Prometheus registry. Call once at startup.
func MustRegisterMetrics() {
	prometheus.MustRegister(sweepRuns, sweepReclaimed, sweepCleanupFailures, sweepDuration)
}
