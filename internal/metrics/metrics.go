package metrics

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is best-effort by contract: nothing in here may turn a
// successful run into a reported failure, so no method returns an error.
type Recorder struct {
	runsTotal       *prometheus.CounterVec
	reviewsInserted prometheus.Counter
	upstreamErrors  *prometheus.CounterVec
	runDuration     prometheus.Histogram

	logger *slog.Logger
}

func NewRecorder(reg prometheus.Registerer, logger *slog.Logger) *Recorder {
	factory := promauto.With(reg)

	return &Recorder{
		runsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "reviewsync_runs_total",
			Help: "Ingestion runs by terminal status.",
		}, []string{"status"}),
		reviewsInserted: factory.NewCounter(prometheus.CounterOpts{
			Name: "reviewsync_reviews_inserted_total",
			Help: "Reviews persisted across all runs.",
		}),
		upstreamErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "reviewsync_upstream_errors_total",
			Help: "Upstream fetch failures by error code.",
		}, []string{"code"}),
		runDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "reviewsync_run_duration_seconds",
			Help:    "Wall-clock duration of ingestion runs.",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		}),
		logger: logger.With("component", "metrics"),
	}
}

func (r *Recorder) RecordRun(status string, duration time.Duration, inserted int) {
	defer r.recover()

	r.runsTotal.WithLabelValues(status).Inc()
	r.runDuration.Observe(duration.Seconds())
	if inserted > 0 {
		r.reviewsInserted.Add(float64(inserted))
	}
}

func (r *Recorder) RecordUpstreamError(code string) {
	defer r.recover()

	r.upstreamErrors.WithLabelValues(code).Inc()
}

func (r *Recorder) recover() {
	if p := recover(); p != nil {
		r.logger.Error("metrics recording panicked", "panic", p)
	}
}

// Handler exposes the registry for scraping.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
