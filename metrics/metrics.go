package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Dispatch outcomes recorded per inbound message
const (
	OutcomeCreated        = "created"
	OutcomeFailed         = "failed"
	OutcomeIgnoredBot     = "ignored_bot"
	OutcomeIgnoredChannel = "ignored_channel"
)

type Recorder interface {
	RecordMessage(outcome string)
	ObserveCreateDuration(seconds float64)
}

type PrometheusRecorder struct {
	messages       *prometheus.CounterVec
	createDuration prometheus.Histogram
}

func NewPrometheusRecorder(registerer prometheus.Registerer) *PrometheusRecorder {
	r := &PrometheusRecorder{
		messages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "thread_master_messages_total",
				Help: "Inbound messages by dispatch outcome",
			},
			[]string{"outcome"},
		),
		createDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "thread_master_thread_create_seconds",
				Help:    "Latency of thread creation requests",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
	registerer.MustRegister(r.messages, r.createDuration)
	return r
}

func (r *PrometheusRecorder) RecordMessage(outcome string) {
	r.messages.WithLabelValues(outcome).Inc()
}

func (r *PrometheusRecorder) ObserveCreateDuration(seconds float64) {
	r.createDuration.Observe(seconds)
}

type NopRecorder struct{}

func (NopRecorder) RecordMessage(string)          {}
func (NopRecorder) ObserveCreateDuration(float64) {}
