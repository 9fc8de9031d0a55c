// Package metrics exposes Prometheus-backed instrumentation behind a
// nil-when-disabled interface: every exported Observe/Record helper is a
// no-op when passed a nil RuntimeMetrics, so callers never need an
// IsEnabled() check of their own (mirrors dittofs's pkg/metrics).
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/cmraaron/libvda5050pp-sub001/pkg/urgency"
)

var (
	mu       sync.RWMutex
	enabled  bool
	registry *prometheus.Registry
)

// Init enables metrics collection and creates a fresh registry. Calling it
// more than once replaces the existing registry, discarding any metrics
// already registered against it.
func Init() {
	mu.Lock()
	defer mu.Unlock()
	enabled = true
	registry = prometheus.NewRegistry()
}

// IsEnabled reports whether Init has been called.
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// GetRegistry returns the active registry. Panics if Init has not been
// called; callers should always gate on IsEnabled first.
func GetRegistry() *prometheus.Registry {
	mu.RLock()
	defer mu.RUnlock()
	if registry == nil {
		panic("metrics: GetRegistry called before Init")
	}
	return registry
}

// RuntimeMetrics is the vehicle runtime's instrumentation surface: one
// gauge/counter family for action-state transitions and net-manager queue
// depth, plus urgency.Observer's emit-latency/request-rate pair, so a
// RuntimeMetrics can be handed directly to urgency.New as its Observer.
type RuntimeMetrics interface {
	urgency.Observer
	ObserveActionTransition(actionType string, from, to string)
	RecordQueueDepth(depth int)
}

// newPrometheusRuntimeMetrics is set by pkg/metrics/prometheus's init(),
// indirection that avoids metrics depending on prometheus depending on
// metrics.
var newPrometheusRuntimeMetrics func() RuntimeMetrics

// RegisterRuntimeMetricsConstructor registers the Prometheus-backed
// constructor. Called by pkg/metrics/prometheus during package init.
func RegisterRuntimeMetricsConstructor(constructor func() RuntimeMetrics) {
	newPrometheusRuntimeMetrics = constructor
}

// NewRuntimeMetrics returns a RuntimeMetrics backed by the active registry,
// or nil if metrics are disabled. Pass the result straight through to
// components that accept a RuntimeMetrics; every helper below treats nil
// as a no-op.
func NewRuntimeMetrics() RuntimeMetrics {
	if !IsEnabled() {
		return nil
	}
	return newPrometheusRuntimeMetrics()
}

// ObserveActionTransition records an action's status transition.
func ObserveActionTransition(m RuntimeMetrics, actionType string, from, to string) {
	if m != nil {
		m.ObserveActionTransition(actionType, from, to)
	}
}

// RecordQueueDepth records the net manager's task queue depth.
func RecordQueueDepth(m RuntimeMetrics, depth int) {
	if m != nil {
		m.RecordQueueDepth(depth)
	}
}
