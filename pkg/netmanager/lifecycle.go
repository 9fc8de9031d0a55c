package netmanager

import (
	"context"

	"github.com/cmraaron/libvda5050pp-sub001/pkg/vdamodel"
)

// Pause removes the token from PauseClear: no new StartAction/StartTraversal
// fires until Resume. Every running action's handler is asked to pause, and
// an in-flight step-based navigation is cancelled (§4.7, §4.8).
func (n *NetManager) Pause() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pauseClear = false

	for _, ar := range n.runningActions() {
		handler, ok := n.actionHandlers[ar.action.ActionType]
		if !ok {
			continue
		}
		actionID := ar.action.ActionID
		n.dispatch(func() { _ = handler.Pause(context.Background(), actionID) })
	}
	if n.navHandler != nil && n.navigating() {
		n.dispatch(func() { _ = n.navHandler.Cancel(context.Background()) })
	}
}

// Resume restores PauseClear and re-ticks the net, re-evaluating every
// transition (reStartLogic in the original design).
func (n *NetManager) Resume() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pauseClear = true

	for _, ar := range n.pausedActions() {
		handler, ok := n.actionHandlers[ar.action.ActionType]
		if !ok {
			continue
		}
		actionID := ar.action.ActionID
		n.dispatch(func() { _ = handler.Resume(context.Background(), actionID) })
	}
	n.fireEligibleStarts()
}

func (n *NetManager) runningActions() []*actionRuntime {
	var out []*actionRuntime
	for _, ar := range n.allActionRuntimes() {
		if ar.status == vdamodel.ActionRunning || ar.status == vdamodel.ActionInitializing {
			out = append(out, ar)
		}
	}
	return out
}

func (n *NetManager) pausedActions() []*actionRuntime {
	var out []*actionRuntime
	for _, ar := range n.allActionRuntimes() {
		if ar.status == vdamodel.ActionPaused {
			out = append(out, ar)
		}
	}
	return out
}

func (n *NetManager) navigating() bool {
	for _, er := range n.edges {
		if er.started && !er.traversed {
			return true
		}
	}
	return false
}

// CancelAll marks the net cancelling: no new StartAction/StartTraversal
// fires, and every running activity receives a Cancel request. onAllExited
// is invoked exactly once, when the running-activity count reaches zero,
// then cleared (§4.7).
func (n *NetManager) CancelAll(onAllExited func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.cancelling = true
	n.onAllExit = onAllExited

	for _, ar := range n.runningActions() {
		handler, ok := n.actionHandlers[ar.action.ActionType]
		if !ok {
			continue
		}
		actionID := ar.action.ActionID
		n.dispatch(func() { _ = handler.Cancel(context.Background(), actionID) })
	}
	if n.navHandler != nil && n.navigating() {
		n.dispatch(func() { _ = n.navHandler.Cancel(context.Background()) })
	}
	if n.contNav != nil {
		n.dispatch(func() { _ = n.contNav.Cancel(context.Background()) })
	}

	n.maybeSignalAllExited()
}

// maybeSignalAllExited fires the registered onAllExited callback exactly
// once, when cancelling and the running-activity count has drained to
// zero. Must be called with n.mu held.
func (n *NetManager) maybeSignalAllExited() {
	if !n.cancelling || n.activeCount > 0 || n.onAllExit == nil {
		return
	}
	cb := n.onAllExit
	n.onAllExit = nil
	n.cancelling = false
	cb()
}

// InterceptWithAction creates a small sub-net — Allowed(a) -> Running(a) ->
// Done(a) — parallel to the main net, respecting the same blocking guards,
// for an instant action that is not one of the built-in control actions
// (§4.7, §4.9 default case).
func (n *NetManager) InterceptWithAction(action vdamodel.Action) {
	n.mu.Lock()
	defer n.mu.Unlock()

	ar := &actionRuntime{
		action:     action,
		status:     vdamodel.ActionWaiting,
		contextSeq: -1,
		declIndex:  len(n.instant),
		ready:      func() bool { return true },
	}
	n.instant = append(n.instant, ar)
	n.reportActionState(ar)
	n.fireEligibleStarts()
}
