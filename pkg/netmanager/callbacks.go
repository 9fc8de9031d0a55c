package netmanager

import (
	"github.com/cmraaron/libvda5050pp-sub001/pkg/urgency"
	"github.com/cmraaron/libvda5050pp-sub001/pkg/vdamodel"
)

// actionCallbacks adapts one in-flight action's driver callbacks
// (interfaceagv.ActionCallbacks) back onto the engine. All methods take
// n.mu before touching engine state, so driver goroutines serialize
// through the same lock the event loop uses.
type actionCallbacks struct {
	n  *NetManager
	ar *actionRuntime
}

func (c *actionCallbacks) Started(actionID string) {
	c.n.mu.Lock()
	defer c.n.mu.Unlock()
	if c.ar.status.Terminal() {
		return
	}
	c.ar.status = vdamodel.ActionRunning
	c.n.reportActionState(c.ar)
}

func (c *actionCallbacks) Paused(actionID string) {
	c.n.mu.Lock()
	defer c.n.mu.Unlock()
	if c.ar.status.Terminal() {
		return
	}
	c.ar.status = vdamodel.ActionPaused
	c.n.reportActionState(c.ar)
}

func (c *actionCallbacks) Resumed(actionID string) {
	c.n.mu.Lock()
	defer c.n.mu.Unlock()
	if c.ar.status.Terminal() {
		return
	}
	c.ar.status = vdamodel.ActionRunning
	c.n.reportActionState(c.ar)
}

func (c *actionCallbacks) Finished(actionID string, resultDescription string) {
	c.n.mu.Lock()
	defer c.n.mu.Unlock()
	if c.ar.status.Terminal() {
		return
	}
	c.n.finishActionLocked(c.ar, vdamodel.ActionFinished, resultDescription)
}

func (c *actionCallbacks) Failed(actionID string, errorKind string, description string) {
	c.n.mu.Lock()
	defer c.n.mu.Unlock()
	if c.ar.status.Terminal() {
		return
	}
	c.n.finishActionLocked(c.ar, vdamodel.ActionFailed, description)
	c.n.store.AppendErrors(urgency.High, validationActionWarning(actionID, errorKind, description))
}

// navigationCallbacks adapts one in-flight edge traversal's driver
// callbacks (interfaceagv.NavigationCallbacks) back onto the engine.
type navigationCallbacks struct {
	n  *NetManager
	er *edgeRuntime
}

func (c *navigationCallbacks) Reached(nodeID string) {
	c.n.mu.Lock()
	defer c.n.mu.Unlock()
	c.n.store.SetLastNodeID(nodeID)
	c.n.completeTraversalLocked(c.er)
}

func (c *navigationCallbacks) Failed(nodeID string, errorKind string, description string) {
	c.n.mu.Lock()
	defer c.n.mu.Unlock()
	c.n.abortTraversalLocked(c.er, description)
	c.n.store.AppendErrors(urgency.High, validationActionWarning(nodeID, errorKind, description))
}

// continuousNavCallbacks adapts a ContinuousNavigationHandler's callbacks.
// positionAt events mark the corresponding node reached and the edge
// leading to it traversed, letting fireEligibleStarts pick up any
// newly-enabled node actions.
type continuousNavCallbacks struct {
	n *NetManager
}

func (c *continuousNavCallbacks) PositionAt(nodeID string) {
	c.n.mu.Lock()
	defer c.n.mu.Unlock()

	c.n.store.SetLastNodeID(nodeID)
	for _, nr := range c.n.nodes {
		if nr.node.NodeID == nodeID {
			nr.reached = true
		}
	}
	for _, er := range c.n.edges {
		if er.endNode != nil && er.endNode.node.NodeID == nodeID {
			er.started = true
			er.traversed = true
		}
	}
	c.n.maybeFinishOrder()
	c.n.fireEligibleStarts()
}

func (c *continuousNavCallbacks) Failed(errorKind string, description string) {
	c.n.mu.Lock()
	defer c.n.mu.Unlock()
	c.n.store.AppendErrors(urgency.High, validationActionWarning(c.n.order.OrderID, errorKind, description))
}
