package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics contains the Prometheus metrics for the job matcher.
// Each instance owns its registry so tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	// Pipeline metrics
	PipelineRuns    *prometheus.CounterVec
	StageDuration   *prometheus.HistogramVec
	ExtractOutcomes *prometheus.CounterVec
	SearchFailures  prometheus.Counter
	CleanupFailures prometheus.Counter

	// HTTP API metrics
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		PipelineRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "jobmatch_pipeline_runs_total",
			Help: "Total number of pipeline runs by final state",
		}, []string{"state"}),
		StageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "jobmatch_stage_duration_seconds",
			Help:    "Time spent in each pipeline stage",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"stage"}),
		ExtractOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "jobmatch_extract_outcomes_total",
			Help: "Candidate extraction results by outcome",
		}, []string{"outcome"}),
		SearchFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "jobmatch_search_failures_total",
			Help: "Job searches that failed and were degraded to an empty response",
		}),
		CleanupFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "jobmatch_audio_cleanup_failures_total",
			Help: "Uploaded audio files that could not be deleted",
		}),

		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "jobmatch_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "jobmatch_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// Handler serves this instance's registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
