package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the decision pipeline.
// All methods are safe on a nil receiver.
type Metrics struct {
	// Signal fetch latencies by source and status
	SignalLatency *prometheus.HistogramVec

	// Decisions by kind and tier
	DecisionOutcome *prometheus.CounterVec

	// Remediation actions by action and result
	ActionOutcome *prometheus.CounterVec

	// End-to-end pipeline latency by kind
	PipelineLatency *prometheus.HistogramVec
}

// New registers the pipeline metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		SignalLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "finsentinel_signal_duration_seconds",
			Help:    "Duration of telecom signal fetches by source",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"source", "status"}), // source: "sim_swap", "ownership"

		DecisionOutcome: f.NewCounterVec(prometheus.CounterOpts{
			Name: "finsentinel_decisions_total",
			Help: "Total decisions by kind and tier",
		}, []string{"kind", "tier"}),

		ActionOutcome: f.NewCounterVec(prometheus.CounterOpts{
			Name: "finsentinel_actions_total",
			Help: "Total remediation actions by action and result",
		}, []string{"action", "result"}), // result: "ok", "failed"

		PipelineLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "finsentinel_pipeline_duration_seconds",
			Help:    "Duration of a full pipeline run including signal collection and dispatch",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"kind"}),
	}
}

// ObserveSignalLatency records the duration of one signal fetch.
func (m *Metrics) ObserveSignalLatency(source, status string, d time.Duration) {
	if m != nil {
		m.SignalLatency.WithLabelValues(source, status).Observe(d.Seconds())
	}
}

// IncrementDecision records a decision outcome.
func (m *Metrics) IncrementDecision(kind, tier string) {
	if m != nil {
		m.DecisionOutcome.WithLabelValues(kind, tier).Inc()
	}
}

// IncrementAction records the result of one dispatched action.
func (m *Metrics) IncrementAction(action string, ok bool) {
	if m != nil {
		result := "ok"
		if !ok {
			result = "failed"
		}
		m.ActionOutcome.WithLabelValues(action, result).Inc()
	}
}

// ObservePipelineLatency records the total duration of a pipeline run.
func (m *Metrics) ObservePipelineLatency(kind string, d time.Duration) {
	if m != nil {
		m.PipelineLatency.WithLabelValues(kind).Observe(d.Seconds())
	}
}
