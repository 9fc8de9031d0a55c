// Package prometheus implements pkg/metrics.RuntimeMetrics against
// prometheus/client_golang, registering its constructor with pkg/metrics
// during package init so pkg/metrics never imports this package directly
// (mirrors dittofs's pkg/metrics/prometheus).
package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/cmraaron/libvda5050pp-sub001/pkg/metrics"
	"github.com/cmraaron/libvda5050pp-sub001/pkg/urgency"
)

func init() {
	metrics.RegisterRuntimeMetricsConstructor(newRuntimeMetrics)
}

type runtimeMetrics struct {
	actionTransitions *prometheus.CounterVec
	emitLatency       *prometheus.HistogramVec
	requestsByUrgency *prometheus.CounterVec
	queueDepth        prometheus.Gauge
}

func newRuntimeMetrics() metrics.RuntimeMetrics {
	reg := metrics.GetRegistry()

	return &runtimeMetrics{
		actionTransitions: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "vda5050pp_action_transitions_total",
				Help: "Total number of action state transitions by action type and transition",
			},
			[]string{"action_type", "from", "to"},
		),
		emitLatency: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "vda5050pp_state_emit_latency_milliseconds",
				Help: "Duration of each state emission handed to the transport",
				Buckets: []float64{
					1, 5, 10, 50, 100, 500, 1000, 5000, 10000,
				},
			},
			[]string{},
		),
		requestsByUrgency: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "vda5050pp_state_update_requests_total",
				Help: "Total number of state update requests by urgency",
			},
			[]string{"urgency"},
		),
		queueDepth: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "vda5050pp_net_manager_queue_depth",
			Help: "Current depth of the net manager's task queue",
		}),
	}
}

func (m *runtimeMetrics) ObserveActionTransition(actionType string, from, to string) {
	m.actionTransitions.WithLabelValues(actionType, from, to).Inc()
}

// ObserveEmit satisfies urgency.Observer: d is the time taken to hand a
// freshly-assembled state message to the transport.
func (m *runtimeMetrics) ObserveEmit(d time.Duration) {
	m.emitLatency.WithLabelValues().Observe(float64(d.Milliseconds()))
}

// ObserveRequest satisfies urgency.Observer: u is the urgency of an
// incoming RequestUpdate call.
func (m *runtimeMetrics) ObserveRequest(u urgency.Urgency) {
	m.requestsByUrgency.WithLabelValues(u.String()).Inc()
}

func (m *runtimeMetrics) RecordQueueDepth(depth int) {
	m.queueDepth.Set(float64(depth))
}
