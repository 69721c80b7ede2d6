// Package metrics provides Prometheus instrumentation for the calculator.
// A Recorder owns its own registry so that tests and multiple instances do
// not collide on the global default registry.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder counts evaluations and failures and exposes them over HTTP in
// Prometheus exposition format.
type Recorder struct {
	registry    *prometheus.Registry
	evaluations *prometheus.CounterVec
	failures    *prometheus.CounterVec
	duration    prometheus.Histogram
}

// NewRecorder creates a Recorder with a private registry.
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()

	evaluations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "calcli",
		Name:      "evaluations_total",
		Help:      "Number of successful expression evaluations, by operator.",
	}, []string{"operator"})

	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "calcli",
		Name:      "errors_total",
		Help:      "Number of failed expression evaluations, by error code.",
	}, []string{"code"})

	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "calcli",
		Name:      "evaluation_duration_seconds",
		Help:      "Wall time spent parsing and evaluating one expression.",
		Buckets:   prometheus.ExponentialBuckets(1e-7, 10, 8),
	})

	registry.MustRegister(evaluations, failures, duration)

	return &Recorder{
		registry:    registry,
		evaluations: evaluations,
		failures:    failures,
		duration:    duration,
	}
}

// ObserveEvaluation records one successful evaluation of the given operator.
func (r *Recorder) ObserveEvaluation(operator byte, d time.Duration) {
	r.evaluations.WithLabelValues(string(operator)).Inc()
	r.duration.Observe(d.Seconds())
}

// ObserveError records one failed evaluation with the given error code.
func (r *Recorder) ObserveError(code string, d time.Duration) {
	r.failures.WithLabelValues(code).Inc()
	r.duration.Observe(d.Seconds())
}

// Handler returns the HTTP handler serving the exposition endpoint.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
