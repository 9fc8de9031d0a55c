package timer

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// S1 — uninterrupted sleep.
func TestUninterruptedSleep(t *testing.T) {
	tm := New()

	var returned bool
	var status Status
	done := make(chan struct{})
	go func() {
		status = tm.SleepFor(300 * time.Millisecond)
		returned = true
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	assert.False(t, returned, "after 10ms the sleeper should not have returned yet")

	<-done
	assert.True(t, returned)
	assert.Equal(t, StatusOk, status)
}

// S2 — interruptAll.
func TestInterruptAllWakesEverySleeper(t *testing.T) {
	tm := New()

	const n = 4
	statuses := make([]Status, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		i := i
		go func() {
			defer wg.Done()
			statuses[i] = tm.SleepFor(300 * time.Millisecond)
		}()
	}

	time.Sleep(100 * time.Millisecond)
	tm.InterruptAll()
	tm.WaitForClearance()

	wg.Wait()
	for i, s := range statuses {
		assert.Equalf(t, StatusInterrupted, s, "sleeper %d", i)
	}

	// a fresh sleep afterwards behaves normally again
	status := tm.SleepFor(50 * time.Millisecond)
	assert.Equal(t, StatusOk, status)
}

// S3 — disabled timer.
func TestDisabledTimerReturnsImmediately(t *testing.T) {
	tm := New()
	tm.Disable()

	start := time.Now()
	status := tm.SleepFor(10 * time.Millisecond)
	elapsed := time.Since(start)

	assert.Equal(t, StatusDisabled, status)
	assert.Less(t, elapsed, 5*time.Millisecond)
}

// Invariant 6: the sleeper count returns to zero within finite time after
// Disable().
func TestSleeperCountReturnsToZeroAfterDisable(t *testing.T) {
	tm := New()

	const n = 8
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			tm.SleepFor(time.Second)
		}()
	}

	time.Sleep(20 * time.Millisecond)
	tm.Disable()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sleepers did not unblock after Disable()")
	}

	tm.WaitForClearance() // must not block
}

func TestEnableAfterDisablePermitsNewSleeps(t *testing.T) {
	tm := New()
	tm.Disable()
	require.Equal(t, StatusDisabled, tm.SleepFor(time.Millisecond))

	tm.Enable()
	status := tm.SleepFor(5 * time.Millisecond)
	assert.Equal(t, StatusOk, status)
}

func TestCloseIsIdempotent(t *testing.T) {
	tm := New()
	tm.Close()
	tm.Close()
	assert.Equal(t, StatusDisabled, tm.SleepFor(time.Millisecond))
}
