package netmanager

import (
	"sync"

	"github.com/cmraaron/libvda5050pp-sub001/pkg/vdamodel"
)

// blockingBudget tracks the counts StartAction/StartTraversal guard on
// (§4.7): a HARD action excludes every other action and navigation; a SOFT
// action excludes navigation but not other NONE/SOFT actions; NONE excludes
// nothing. It is the Go-native stand-in for the "blocking-budget place"
// that holds a token iff the guard is satisfied.
type blockingBudget struct {
	mu          sync.Mutex
	runningHard int
	runningSoft int
	runningNone int
	navigating  bool
}

// tryAcquireAction reports whether an action of blocking type bt may start
// right now, and if so reserves its slot atomically.
func (b *blockingBudget) tryAcquireAction(bt vdamodel.BlockingType) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.runningHard > 0 {
		return false
	}
	switch bt {
	case vdamodel.BlockingHard:
		if b.runningSoft > 0 || b.runningNone > 0 || b.navigating {
			return false
		}
		b.runningHard++
	case vdamodel.BlockingSoft:
		if b.navigating {
			return false
		}
		b.runningSoft++
	default: // BlockingNone
		b.runningNone++
	}
	return true
}

// releaseAction returns a previously-acquired action slot.
func (b *blockingBudget) releaseAction(bt vdamodel.BlockingType) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch bt {
	case vdamodel.BlockingHard:
		b.runningHard--
	case vdamodel.BlockingSoft:
		b.runningSoft--
	default:
		b.runningNone--
	}
}

// tryAcquireNavigation reports whether navigation may start: no HARD or
// SOFT action may be running (NONE actions may run alongside navigation).
func (b *blockingBudget) tryAcquireNavigation() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.runningHard > 0 || b.runningSoft > 0 || b.navigating {
		return false
	}
	b.navigating = true
	return true
}

// releaseNavigation returns the navigation slot.
func (b *blockingBudget) releaseNavigation() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.navigating = false
}
