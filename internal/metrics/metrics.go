// Package metrics records generation and clipboard activity for Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "missiongen"

// Copy outcomes.
const (
	CopyOK          = "ok"
	CopyUnavailable = "unavailable"
	CopyFailed      = "error"
)

// Recorder owns a private registry so several instances can coexist in tests.
// A nil *Recorder discards every observation.
type Recorder struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	copies   *prometheus.CounterVec
}

func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)
	return &Recorder{
		registry: reg,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_requests_total",
			Help:      "Mission statement generations, partitioned by provider, model and outcome.",
		}, []string{"provider", "model", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Latency of mission statement generations.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 15, 30, 60},
		}, []string{"provider", "model", "outcome"}),
		copies: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "copies_total",
			Help:      "Clipboard copies of generated statements, partitioned by outcome.",
		}, []string{"outcome"}),
	}
}

// ObserveGeneration satisfies llm.Observer.
func (r *Recorder) ObserveGeneration(provider, model, outcome string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.requests.WithLabelValues(provider, model, outcome).Inc()
	r.duration.WithLabelValues(provider, model, outcome).Observe(elapsed.Seconds())
}

func (r *Recorder) ObserveCopy(outcome string) {
	if r == nil {
		return
	}
	r.copies.WithLabelValues(outcome).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}
