// Package interfaceagv declares the driver-facing contracts a vehicle
// integrator implements: action execution, navigation, pause/resume, and
// odometry. NetManager, InstantActionsManager, and PauseResumeActionManager
// hold these as short-lived borrows, never as back-references into the
// handle (§4.12, §6).
package interfaceagv

import (
	"context"

	"github.com/cmraaron/libvda5050pp-sub001/pkg/vdamodel"
)

// ActionCallbacks are invoked by an ActionHandler, out-of-band, to report
// progress on one action. Every method is safe to call from any goroutine;
// the engine serializes the resulting state transitions.
type ActionCallbacks interface {
	Started(actionID string)
	Paused(actionID string)
	Resumed(actionID string)
	Finished(actionID string, resultDescription string)
	Failed(actionID string, errorKind string, description string)
}

// ActionHandler executes one declared action. Registered per action type.
type ActionHandler interface {
	Start(ctx context.Context, action vdamodel.Action, callbacks ActionCallbacks) error
	Pause(ctx context.Context, actionID string) error
	Resume(ctx context.Context, actionID string) error
	Cancel(ctx context.Context, actionID string) error
}

// NavigationCallbacks are invoked by a NavigationHandler to report the
// outcome of a step-based navigation request.
type NavigationCallbacks interface {
	Reached(nodeID string)
	Failed(nodeID string, errorKind string, description string)
}

// NavigationHandler drives the AGV to one node at a time.
type NavigationHandler interface {
	NavigateToNode(ctx context.Context, node vdamodel.Node, edge vdamodel.Edge, callbacks NavigationCallbacks) error
	Cancel(ctx context.Context) error
}

// ContinuousNavigationCallbacks are invoked by a ContinuousNavigationHandler
// as the AGV passes through the commanded horizon.
type ContinuousNavigationCallbacks interface {
	PositionAt(nodeID string)
	Failed(errorKind string, description string)
}

// ContinuousNavigationHandler drives the AGV along a continuously updated
// horizon of nodes and edges, rather than one node at a time.
type ContinuousNavigationHandler interface {
	HorizonUpdated(ctx context.Context, nodes []vdamodel.Node, edges []vdamodel.Edge, callbacks ContinuousNavigationCallbacks) error
	Cancel(ctx context.Context) error
}

// PauseResumeCallbacks are invoked by a PauseResumeHandler to report the
// outcome of a pause or resume request.
type PauseResumeCallbacks interface {
	Started()
	Finished()
	Failed(errorKind string, description string)
}

// PauseResumeHandler pauses and resumes whatever the AGV is currently
// doing, independent of which action or navigation step is in progress.
type PauseResumeHandler interface {
	DoPause(ctx context.Context, callbacks PauseResumeCallbacks) error
	DoResume(ctx context.Context, callbacks PauseResumeCallbacks) error
}

// ErrInitializePosition is returned by OdometryHandler.InitializePosition
// when the driver cannot honor the requested pose.
type ErrInitializePosition struct {
	Reason string
}

func (e *ErrInitializePosition) Error() string {
	return "initialize position: " + e.Reason
}

// OdometryHandler supplies the AGV's believed position and velocity, and
// optionally accepts a forced re-initialization of that pose (§4.10).
type OdometryHandler interface {
	InitializePosition(ctx context.Context, pos vdamodel.AGVPosition) error
}
