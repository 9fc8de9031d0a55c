package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRuntimeMetricsNilWhenDisabled(t *testing.T) {
	mu.Lock()
	enabled = false
	registry = nil
	mu.Unlock()

	m := NewRuntimeMetrics()
	assert.Nil(t, m)
}

func TestObserveHelpersNoopOnNil(t *testing.T) {
	assert.NotPanics(t, func() {
		ObserveActionTransition(nil, "pick", "RUNNING", "FINISHED")
		RecordQueueDepth(nil, 3)
	})
}
