// Package monitoring exposes Prometheus metrics for discovery runs.
package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Extraction call outcomes.
const (
	OutcomeOK          = "ok"
	OutcomeEmpty       = "empty"
	OutcomeRateLimited = "rate_limited"
	OutcomeQuota       = "quota_exhausted"
	OutcomeError       = "error"
)

// Metrics holds the collectors for one server. A nil *Metrics is valid and
// records nothing, so the pipeline can run without a registry.
type Metrics struct {
	registry          *prometheus.Registry
	runs              *prometheus.CounterVec
	extractions       *prometheus.CounterVec
	completionRetries prometheus.Counter
	runDuration       prometheus.Histogram
}

// New creates Metrics on a dedicated registry. Go runtime and process
// collectors are registered alongside.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "faculty_pipeline_runs_total",
			Help: "Discovery runs by final status.",
		}, []string{"status"}),
		extractions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "faculty_extraction_calls_total",
			Help: "Extraction tasks by strategy and outcome.",
		}, []string{"strategy", "outcome"}),
		completionRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "faculty_completion_retries_total",
			Help: "Completion calls retried after a rate-limit response.",
		}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "faculty_pipeline_duration_seconds",
			Help:    "Wall-clock duration of discovery runs.",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		}),
	}
	reg.MustRegister(
		m.runs,
		m.extractions,
		m.completionRetries,
		m.runDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveRun records a finished run.
func (m *Metrics) ObserveRun(status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(status).Inc()
	m.runDuration.Observe(elapsed.Seconds())
}

// ObserveExtraction records one extraction task.
func (m *Metrics) ObserveExtraction(strategy, outcome string) {
	if m == nil {
		return
	}
	m.extractions.WithLabelValues(strategy, outcome).Inc()
}

// CompletionRetry is an OnRetry hook counting retried completion calls.
func (m *Metrics) CompletionRetry(int, error) {
	if m == nil {
		return
	}
	m.completionRetries.Inc()
}
