package urgency

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationFromUpdateUrgency(t *testing.T) {
	assert.Equal(t, 10*time.Second, Low.Duration())
	assert.Equal(t, 1500*time.Millisecond, Medium.Duration())
	assert.Equal(t, 10*time.Millisecond, High.Duration())
	assert.Equal(t, time.Duration(0), Immediate.Duration())
	assert.Greater(t, None.Duration(), 365*24*time.Hour)
}

func TestPeriodicHeartbeatFiresWithoutRequests(t *testing.T) {
	var emits atomic.Int32
	sut := New(20*time.Millisecond, func(ctx context.Context) error {
		emits.Add(1)
		return nil
	}, nil)
	sut.Start()
	defer sut.Close()

	require.Eventually(t, func() bool { return emits.Load() >= 2 }, time.Second, time.Millisecond)
}

func TestImmediateRequestBlocksUntilEmitted(t *testing.T) {
	var emits atomic.Int32
	sut := New(time.Hour, func(ctx context.Context) error {
		emits.Add(1)
		return nil
	}, nil)
	sut.Start()
	defer sut.Close()

	sut.RequestUpdate(Immediate)
	assert.Equal(t, int32(1), emits.Load(), "immediate must have emitted before returning")
}

func TestHighUrgencyRequestEmitsSoonerThanPeriod(t *testing.T) {
	var emits atomic.Int32
	sut := New(time.Hour, func(ctx context.Context) error {
		emits.Add(1)
		return nil
	}, nil)
	sut.Start()
	defer sut.Close()

	sut.RequestUpdate(High)
	require.Eventually(t, func() bool { return emits.Load() >= 1 }, 200*time.Millisecond, time.Millisecond)
}

// Invariant 7: emits at most one state per internal wake.
func TestNoDoubleEmitPerWake(t *testing.T) {
	var emits atomic.Int32
	sut := New(30*time.Millisecond, func(ctx context.Context) error {
		emits.Add(1)
		return nil
	}, nil)
	sut.Start()
	defer sut.Close()

	time.Sleep(100 * time.Millisecond)
	// Over ~100ms with a 30ms period we expect roughly 3 emissions, never
	// a burst indicating more than one emit reacted to a single wake.
	count := emits.Load()
	assert.GreaterOrEqual(t, count, int32(2))
	assert.LessOrEqual(t, count, int32(6))
}

type countingObserver struct {
	emits    atomic.Int32
	requests atomic.Int32
}

func (c *countingObserver) ObserveEmit(time.Duration) { c.emits.Add(1) }
func (c *countingObserver) ObserveRequest(Urgency)    { c.requests.Add(1) }

func TestObserverReceivesEvents(t *testing.T) {
	obs := &countingObserver{}
	sut := New(time.Hour, func(ctx context.Context) error { return nil }, obs)
	sut.Start()
	defer sut.Close()

	sut.RequestUpdate(High)
	require.Eventually(t, func() bool { return obs.emits.Load() >= 1 }, 200*time.Millisecond, time.Millisecond)
	assert.Equal(t, int32(1), obs.requests.Load())
}
