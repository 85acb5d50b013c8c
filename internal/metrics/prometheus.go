package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Session file load statuses used as the "status" label.
const (
	StatusLoaded  = "loaded"
	StatusSkipped = "skipped"
)

// Refresh records leaderboard refreshes in Prometheus.
type Refresh struct {
	refreshes    prometheus.Counter
	failures     prometheus.Counter
	sessionFiles *prometheus.GaugeVec
	duration     prometheus.Histogram
}

// NewRefresh creates the refresh collectors and registers them with reg.
// Pass prometheus.NewRegistry() in tests to avoid duplicate registration.
func NewRefresh(reg prometheus.Registerer) *Refresh {
	f := promauto.With(reg)
	return &Refresh{
		refreshes: f.NewCounter(prometheus.CounterOpts{
			Name: "judgeboard_refreshes_total",
			Help: "Number of leaderboard recomputations.",
		}),
		failures: f.NewCounter(prometheus.CounterOpts{
			Name: "judgeboard_refresh_failures_total",
			Help: "Number of leaderboard recomputations that returned an error.",
		}),
		sessionFiles: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "judgeboard_session_files",
			Help: "Session files seen by the last refresh, by load status.",
		}, []string{"status"}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "judgeboard_refresh_duration_seconds",
			Help:    "Time spent reading session files and aggregating scores.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// Observe records one successful refresh.
func (r *Refresh) Observe(loaded, skipped int, elapsed time.Duration) {
	r.refreshes.Inc()
	r.sessionFiles.WithLabelValues(StatusLoaded).Set(float64(loaded))
	r.sessionFiles.WithLabelValues(StatusSkipped).Set(float64(skipped))
	r.duration.Observe(elapsed.Seconds())
}

// ObserveFailure records a refresh that could not complete.
func (r *Refresh) ObserveFailure(elapsed time.Duration) {
	r.refreshes.Inc()
	r.failures.Inc()
	r.duration.Observe(elapsed.Seconds())
}
