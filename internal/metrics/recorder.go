// Package metrics exposes matching pipeline measurements as Prometheus collectors.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/davidbz/matchwise/internal/domain"
)

const namespace = "matchwise"

// Config toggles the metrics endpoint.
type Config struct {
	Enabled bool   `env:"METRICS_ENABLED" envDefault:"true"`
	Path    string `env:"METRICS_PATH"    envDefault:"/metrics"`
}

// Recorder implements domain.Recorder with Prometheus collectors.
type Recorder struct {
	providerCalls    *prometheus.CounterVec
	providerDuration *prometheus.HistogramVec
	rerankOutcomes   *prometheus.CounterVec
	cacheLookups     *prometheus.CounterVec
	jobs             *prometheus.CounterVec
	jobDuration      prometheus.Histogram
}

var _ domain.Recorder = (*Recorder)(nil)

// NewRecorder registers the pipeline collectors with registerer.
func NewRecorder(registerer prometheus.Registerer) *Recorder {
	factory := promauto.With(registerer)

	return &Recorder{
		providerCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "provider_calls_total",
				Help:      "Provider calls by kind, provider and status",
			},
			[]string{"kind", "provider", "status"}, // status: ok, error, timeout
		),
		providerDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "provider_call_duration_seconds",
				Help:      "Duration of provider calls",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"kind", "provider"},
		),
		rerankOutcomes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rerank_items_total",
				Help:      "Re-ranked items by whether a fallback score was used",
			},
			[]string{"fallback"},
		),
		cacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_lookups_total",
				Help:      "Match cache lookups by kind and result",
			},
			[]string{"kind", "result"}, // result: hit, miss
		),
		jobs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "batch_jobs_total",
				Help:      "Batch jobs by final status",
			},
			[]string{"status"},
		),
		jobDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "batch_job_duration_seconds",
				Help:      "Duration of single jobs inside batch runs",
				Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
		),
	}
}

// ProviderCall records one provider call.
func (r *Recorder) ProviderCall(kind, provider, status string, elapsed time.Duration) {
	r.providerCalls.WithLabelValues(kind, provider, status).Inc()
	r.providerDuration.WithLabelValues(kind, provider).Observe(elapsed.Seconds())
}

// RerankOutcome records one scored item.
func (r *Recorder) RerankOutcome(fallback bool) {
	r.rerankOutcomes.WithLabelValues(strconv.FormatBool(fallback)).Inc()
}

// CacheLookup records one cache read.
func (r *Recorder) CacheLookup(kind string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheLookups.WithLabelValues(kind, result).Inc()
}

// JobFinished records the outcome of one batch job. Jobs that never ran are not
// observed in the duration histogram.
func (r *Recorder) JobFinished(status string, elapsed time.Duration) {
	r.jobs.WithLabelValues(status).Inc()
	if elapsed > 0 {
		r.jobDuration.Observe(elapsed.Seconds())
	}
}
