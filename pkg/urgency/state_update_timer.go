package urgency

import (
	"context"
	"sync"
	"time"

	"github.com/cmraaron/libvda5050pp-sub001/internal/logger"
	"github.com/cmraaron/libvda5050pp-sub001/pkg/timer"
)

// Observer receives instrumentation events from a StateUpdateTimer. A nil
// Observer disables instrumentation with zero overhead — pkg/metrics wires
// a Prometheus-backed implementation only when metrics are enabled.
type Observer interface {
	ObserveEmit(d time.Duration)
	ObserveRequest(u Urgency)
}

// Emitter hands a freshly-assembled state message to the transport. It is
// invoked from the StateUpdateTimer's own goroutine for periodic/coalesced
// emissions, and synchronously on the caller's goroutine for Immediate
// requests.
type Emitter func(ctx context.Context) error

// StateUpdateTimer runs a single background loop that emits a state message
// at or before the nearest requested deadline, never starving the periodic
// heartbeat (period is always a ceiling on the gap between emissions).
type StateUpdateTimer struct {
	period time.Duration
	emit   Emitter
	obs    Observer
	clock  *timer.InterruptableTimer

	mu            sync.Mutex
	lastSent      time.Time
	nextScheduled *time.Time

	wg      sync.WaitGroup
	started bool
	done    chan struct{}
}

// New constructs a StateUpdateTimer with the given periodic heartbeat and
// emit callback. Call Start to begin the background loop.
func New(period time.Duration, emit Emitter, obs Observer) *StateUpdateTimer {
	return &StateUpdateTimer{
		period:   period,
		emit:     emit,
		obs:      obs,
		clock:    timer.New(),
		lastSent: time.Now(),
		done:     make(chan struct{}),
	}
}

// Start launches the background loop. Calling Start twice is a no-op.
func (s *StateUpdateTimer) Start() {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	s.wg.Add(1)
	go s.loop()
}

// Close stops the background loop and waits for it to exit.
func (s *StateUpdateTimer) Close() {
	s.clock.Disable()
	close(s.done)
	s.wg.Wait()
}

func (s *StateUpdateTimer) loop() {
	defer s.wg.Done()

	logger.Debug("StateUpdateTimer: starting")
	for {
		select {
		case <-s.done:
			logger.Debug("StateUpdateTimer: exiting")
			return
		default:
		}

		wakeup := s.wakeupTimePoint()
		status := s.clock.SleepUntil(wakeup)

		switch status {
		case timer.StatusOk:
			s.emitNow(context.Background())
		case timer.StatusInterrupted:
			// a new deadline was set (or an immediate request already
			// emitted); loop around and recompute.
		case timer.StatusDisabled:
			return
		}
	}
}

func (s *StateUpdateTimer) wakeupTimePoint() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	wakeup := s.lastSent.Add(s.period)
	if s.nextScheduled != nil && s.nextScheduled.Before(wakeup) {
		wakeup = *s.nextScheduled
	}
	return wakeup
}

// emitNow sends the state through the Emitter and records lastSent,
// clearing any pending scheduled update.
func (s *StateUpdateTimer) emitNow(ctx context.Context) {
	start := time.Now()
	if err := s.emit(ctx); err != nil {
		logger.Error("StateUpdateTimer: emit failed", "error", err)
	}

	s.mu.Lock()
	s.lastSent = time.Now()
	s.nextScheduled = nil
	s.mu.Unlock()

	if s.obs != nil {
		s.obs.ObserveEmit(time.Since(start))
	}
}

// RequestUpdate asks for a state update at the given urgency. Immediate
// emits synchronously on the caller's goroutine and blocks until the state
// has been handed to the Emitter; every other urgency sets (or tightens)
// the next scheduled deadline and interrupts the background loop so it can
// re-evaluate.
func (s *StateUpdateTimer) RequestUpdate(u Urgency) {
	if s.obs != nil {
		s.obs.ObserveRequest(u)
	}

	updateAt := time.Now().Add(u.Duration())

	s.mu.Lock()
	if s.nextScheduled != nil && s.nextScheduled.Before(updateAt) {
		updateAt = *s.nextScheduled
	}
	s.mu.Unlock()

	if u == Immediate {
		s.emitNow(context.Background())
		s.clock.InterruptAll()
		return
	}

	s.mu.Lock()
	s.nextScheduled = &updateAt
	s.mu.Unlock()
	s.clock.InterruptAll()
}
