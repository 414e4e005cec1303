package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PipelineMetrics tracks forecast-to-order pipeline runs.
type PipelineMetrics struct {
	duration *prometheus.HistogramVec
	runs     *prometheus.CounterVec
	degraded prometheus.Counter
}

// NewPipelineMetrics registers pipeline metrics on the provided registerer.
func NewPipelineMetrics(reg prometheus.Registerer) *PipelineMetrics {
	if reg == nil {
		return &PipelineMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pipeline_run_duration_seconds",
		Help:    "Duration of recommendation pipeline runs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pipeline_runs_total",
		Help: "Recommendation pipeline runs by outcome.",
	}, []string{"outcome"})
	degraded := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pipeline_degraded_predictions_total",
		Help: "Pipeline runs that substituted fallback averages for a missing model.",
	})
	reg.MustRegister(duration, runs, degraded)
	return &PipelineMetrics{
		duration: duration,
		runs:     runs,
		degraded: degraded,
	}
}

// ObserveRun records one pipeline run with its outcome label.
func (p *PipelineMetrics) ObserveRun(outcome string, duration time.Duration) {
	if p == nil || p.duration == nil {
		return
	}
	p.duration.WithLabelValues(outcome).Observe(duration.Seconds())
	p.runs.WithLabelValues(outcome).Inc()
}

// IncDegraded counts a degraded-mode prediction.
func (p *PipelineMetrics) IncDegraded() {
	if p == nil || p.degraded == nil {
		return
	}
	p.degraded.Inc()
}
