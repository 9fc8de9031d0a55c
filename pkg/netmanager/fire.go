package netmanager

import (
	"context"
	"sort"

	"github.com/cmraaron/libvda5050pp-sub001/internal/logger"
	"github.com/cmraaron/libvda5050pp-sub001/pkg/urgency"
	"github.com/cmraaron/libvda5050pp-sub001/pkg/validation"
	"github.com/cmraaron/libvda5050pp-sub001/pkg/vdamodel"
)

// fireEligibleStarts scans the net for enabled StartAction/StartTraversal
// transitions and fires as many as the blocking budget allows, in priority
// order: NONE actions, then SOFT, then HARD, then at most one traversal
// (§4.7). Must be called with n.mu held. FinishAction/EndTraversal are not
// selected here: they fire immediately as the corresponding driver callback
// arrives, which already happens before fireEligibleStarts is invoked again.
func (n *NetManager) fireEligibleStarts() {
	if n.cancelling || !n.pauseClear {
		return
	}

	for _, bt := range []vdamodel.BlockingType{vdamodel.BlockingNone, vdamodel.BlockingSoft, vdamodel.BlockingHard} {
		for _, ar := range n.startableActionsOf(bt) {
			if !n.budget.tryAcquireAction(bt) {
				continue
			}
			n.startAction(ar)
		}
	}

	if er := n.nextStartableTraversal(); er != nil {
		if n.budget.tryAcquireNavigation() {
			n.startTraversal(er)
		}
	}
}

// allActionRuntimes returns every action runtime across nodes, edges, and
// active instant actions, ordered by (contextSeq, declIndex) as the
// tie-break rule requires.
func (n *NetManager) allActionRuntimes() []*actionRuntime {
	var out []*actionRuntime
	for _, nr := range n.nodes {
		out = append(out, nr.actions...)
	}
	for _, er := range n.edges {
		out = append(out, er.actions...)
	}
	out = append(out, n.instant...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].contextSeq != out[j].contextSeq {
			return out[i].contextSeq < out[j].contextSeq
		}
		return out[i].declIndex < out[j].declIndex
	})
	return out
}

func (n *NetManager) startableActionsOf(bt vdamodel.BlockingType) []*actionRuntime {
	var out []*actionRuntime
	for _, ar := range n.allActionRuntimes() {
		if ar.status != vdamodel.ActionWaiting {
			continue
		}
		if ar.action.BlockingType != bt {
			continue
		}
		if !ar.ready() {
			continue
		}
		out = append(out, ar)
	}
	return out
}

// nextStartableTraversal returns the lowest-sequenceId released edge whose
// start node has been reached and which has not yet started. Navigation is
// sequential: at most one traversal is ever in flight.
func (n *NetManager) nextStartableTraversal() *edgeRuntime {
	var candidates []*edgeRuntime
	for _, er := range n.edges {
		if er.started || er.startNode == nil || !er.startNode.reached {
			continue
		}
		candidates = append(candidates, er)
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].edge.SequenceID < candidates[j].edge.SequenceID })
	return candidates[0]
}

func (n *NetManager) startAction(ar *actionRuntime) {
	ar.status = vdamodel.ActionInitializing
	n.reportActionState(ar)
	n.activeCount++

	handler, ok := n.actionHandlers[ar.action.ActionType]
	if !ok {
		logger.Error("no action handler registered", logger.KeyActionType, ar.action.ActionType)
		n.budget.releaseAction(ar.action.BlockingType)
		n.activeCount--
		ar.status = vdamodel.ActionFailed
		n.reportActionStateWithResult(ar, "no action handler registered for this action type")
		n.store.AppendErrors(urgency.High, validationInternalError(ar.action.ActionID, "no ActionHandler registered"))
		return
	}

	callbacks := &actionCallbacks{n: n, ar: ar}
	action := ar.action
	n.dispatch(func() {
		if err := handler.Start(context.Background(), action, callbacks); err != nil {
			n.mu.Lock()
			n.finishActionLocked(ar, vdamodel.ActionFailed, "")
			n.mu.Unlock()
			n.store.AppendErrors(urgency.High, validationActionWarning(action.ActionID, validation.KindActionError, err.Error()))
		}
	})
}

func (n *NetManager) startTraversal(er *edgeRuntime) {
	er.started = true
	n.activeCount++

	if n.navHandler == nil {
		// No step-based navigation handler attached: traversal completes
		// immediately, matching a net with no navigation guard at all.
		n.completeTraversalLocked(er)
		return
	}

	endNode := vdamodel.Node{}
	if er.endNode != nil {
		endNode = er.endNode.node
	}
	edge := er.edge
	callbacks := &navigationCallbacks{n: n, er: er}
	n.dispatch(func() {
		if err := n.navHandler.NavigateToNode(context.Background(), endNode, edge, callbacks); err != nil {
			n.mu.Lock()
			n.abortTraversalLocked(er, err.Error())
			n.mu.Unlock()
		}
	})
}

func (n *NetManager) completeTraversalLocked(er *edgeRuntime) {
	er.traversed = true
	if er.endNode != nil {
		er.endNode.reached = true
	}
	n.budget.releaseNavigation()
	n.activeCount--
	n.maybeFinishOrder()
	n.fireEligibleStarts()
	n.maybeSignalAllExited()
}

func (n *NetManager) abortTraversalLocked(er *edgeRuntime, description string) {
	n.budget.releaseNavigation()
	n.activeCount--
	n.store.AppendErrors(urgency.High, validationInternalError(er.edge.EdgeID, description))
	n.fireEligibleStarts()
	n.maybeSignalAllExited()
}

func (n *NetManager) finishActionLocked(ar *actionRuntime, status vdamodel.ActionStatus, resultDescription string) {
	n.budget.releaseAction(ar.action.BlockingType)
	ar.status = status
	n.activeCount--
	n.reportActionStateWithResult(ar, resultDescription)
	n.maybeFinishOrder()
	n.fireEligibleStarts()
	n.maybeSignalAllExited()
}

// maybeFinishOrder marks the engine idle once every released action is
// terminal and every released edge traversed (invariant 10's round-trip
// postcondition).
func (n *NetManager) maybeFinishOrder() {
	for _, nr := range n.nodes {
		for _, ar := range nr.actions {
			if !ar.status.Terminal() {
				return
			}
		}
	}
	for _, er := range n.edges {
		if !er.traversed {
			return
		}
		for _, ar := range er.actions {
			if !ar.status.Terminal() {
				return
			}
		}
	}
	n.store.SetIdle(true)
}

func (n *NetManager) reportActionState(ar *actionRuntime) {
	n.store.SetActionState(vdamodel.ActionState{
		ActionID:     ar.action.ActionID,
		ActionType:   ar.action.ActionType,
		ActionStatus: ar.status,
	})
}

func (n *NetManager) reportActionStateWithResult(ar *actionRuntime, resultDescription string) {
	state := vdamodel.ActionState{
		ActionID:     ar.action.ActionID,
		ActionType:   ar.action.ActionType,
		ActionStatus: ar.status,
	}
	if resultDescription != "" {
		state.ResultDescription = &resultDescription
	}
	n.store.SetActionState(state)
}
