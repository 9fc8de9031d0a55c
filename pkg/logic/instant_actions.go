package logic

import (
	"context"
	"errors"
	"strconv"

	"github.com/cmraaron/libvda5050pp-sub001/pkg/interfaceagv"
	"github.com/cmraaron/libvda5050pp-sub001/pkg/statestore"
	"github.com/cmraaron/libvda5050pp-sub001/pkg/urgency"
	"github.com/cmraaron/libvda5050pp-sub001/pkg/validation"
	"github.com/cmraaron/libvda5050pp-sub001/pkg/vdamodel"
)

// Odometry is the slice of OdometryHandler InstantActionsManager needs for
// initPosition. Satisfied by *pkg/odometry.Handler.
type Odometry interface {
	Attached() bool
	InitializePosition(ctx context.Context, pos vdamodel.AGVPosition) error
}

// InstantActionsManager dispatches instant actions to the engine or to
// purpose-built sub-managers (§4.9).
type InstantActionsManager struct {
	engine   Engine
	store    *statestore.Store
	odometry Odometry

	pauseResumeHandler interfaceagv.PauseResumeHandler

	hasActiveOrder func() bool
}

// NewInstantActionsManager constructs a manager. hasActiveOrder reports
// whether cancelOrder has anything to cancel; pauseResumeHandler may be
// nil, meaning startPause/stopPause always fail (no handler attached).
func NewInstantActionsManager(engine Engine, store *statestore.Store, odometry Odometry, pauseResumeHandler interfaceagv.PauseResumeHandler, hasActiveOrder func() bool) *InstantActionsManager {
	return &InstantActionsManager{
		engine:             engine,
		store:              store,
		odometry:           odometry,
		pauseResumeHandler: pauseResumeHandler,
		hasActiveOrder:     hasActiveOrder,
	}
}

// Dispatch routes one instant action per the §4.9 dispatch table.
func (m *InstantActionsManager) Dispatch(ctx context.Context, action vdamodel.Action) {
	switch action.ActionType {
	case "startPause":
		m.dispatchPauseResume(ctx, action, false)
	case "stopPause":
		m.dispatchPauseResume(ctx, action, true)
	case "cancelOrder":
		m.dispatchCancelOrder(action)
	case "stateRequest":
		m.store.SetActionState(vdamodel.ActionState{ActionID: action.ActionID, ActionStatus: vdamodel.ActionFinished})
	case "initPosition":
		m.dispatchInitPosition(ctx, action)
	default:
		m.engine.InterceptWithAction(action)
	}
}

func (m *InstantActionsManager) dispatchPauseResume(ctx context.Context, action vdamodel.Action, resume bool) {
	if m.pauseResumeHandler == nil {
		m.store.SetActionState(vdamodel.ActionState{ActionID: action.ActionID, ActionStatus: vdamodel.ActionFailed})
		m.store.AppendErrors(urgency.High, validation.Error{
			ErrorType:        validation.KindActionError,
			ErrorDescription: "no PauseResumeHandler attached",
			ErrorReferences:  []validation.ErrorReference{{Key: "actionId", Value: action.ActionID}},
			ErrorLevel:       validation.LevelWarning,
		})
		return
	}
	mgr := NewPauseResumeActionManager(m.pauseResumeHandler, m.engine, m.store, action.ActionID, resume)
	mgr.Initialize(ctx)
}

func (m *InstantActionsManager) dispatchCancelOrder(action vdamodel.Action) {
	if !m.hasActiveOrder() {
		m.store.SetActionState(vdamodel.ActionState{ActionID: action.ActionID, ActionStatus: vdamodel.ActionFailed})
		m.store.AppendErrors(urgency.Low, validation.Error{
			ErrorType:        validation.KindNoOrderToCancel,
			ErrorDescription: "there is no active order to cancel",
			ErrorReferences:  []validation.ErrorReference{{Key: "actionId", Value: action.ActionID}},
			ErrorLevel:       validation.LevelWarning,
		})
		return
	}

	m.store.SetActionState(vdamodel.ActionState{ActionID: action.ActionID, ActionStatus: vdamodel.ActionRunning})
	m.engine.CancelAll(func() {
		m.store.SetActionState(vdamodel.ActionState{ActionID: action.ActionID, ActionStatus: vdamodel.ActionFinished})
		m.store.SetOrder("", 0)
		m.store.SetIdle(true)
		m.store.RequestUpdate(urgency.Immediate)
	})
}

// errInitializePosition matches interfaceagv.ErrInitializePosition by type,
// the Go-native stand-in for the original's InitializePositionError.
func errInitializePosition(err error) (*interfaceagv.ErrInitializePosition, bool) {
	var target *interfaceagv.ErrInitializePosition
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

func (m *InstantActionsManager) dispatchInitPosition(ctx context.Context, action vdamodel.Action) {
	if m.odometry == nil || !m.odometry.Attached() {
		m.store.SetActionState(vdamodel.ActionState{ActionID: action.ActionID, ActionStatus: vdamodel.ActionFailed})
		m.store.AppendErrors(urgency.High, validation.Error{
			ErrorType:        validation.KindActionError,
			ErrorDescription: "no OdometryHandler attached",
			ErrorReferences:  []validation.ErrorReference{{Key: "actionId", Value: action.ActionID}},
			ErrorLevel:       validation.LevelWarning,
		})
		return
	}

	pos, lastNodeID, err := parseInitPositionParameters(action)
	if err != nil {
		m.store.SetActionState(vdamodel.ActionState{ActionID: action.ActionID, ActionStatus: vdamodel.ActionFailed})
		m.store.AppendErrors(urgency.High, validation.Error{
			ErrorType:        validation.KindActionParameterValue,
			ErrorDescription: err.Error(),
			ErrorReferences:  []validation.ErrorReference{{Key: "actionId", Value: action.ActionID}},
			ErrorLevel:       validation.LevelWarning,
		})
		return
	}

	m.store.SetActionState(vdamodel.ActionState{ActionID: action.ActionID, ActionStatus: vdamodel.ActionRunning})

	// The driver call runs on the engine's task-queue worker, never inline
	// on the caller's goroutine (§5); only the parameter parsing above (no
	// driver code involved) runs synchronously.
	m.engine.Dispatch(func() {
		if err := m.odometry.InitializePosition(ctx, pos); err != nil {
			m.store.SetActionState(vdamodel.ActionState{ActionID: action.ActionID, ActionStatus: vdamodel.ActionFailed})
			if _, ok := errInitializePosition(err); ok {
				m.store.AppendErrors(urgency.High, validation.Error{
					ErrorType:        validation.KindActionError,
					ErrorDescription: err.Error(),
					ErrorReferences:  []validation.ErrorReference{{Key: "actionId", Value: action.ActionID}},
					ErrorLevel:       validation.LevelWarning,
				})
			}
			return
		}

		m.store.SetLastNodeID(lastNodeID)
		m.store.SetActionState(vdamodel.ActionState{ActionID: action.ActionID, ActionStatus: vdamodel.ActionFinished})
	})
}

func parseInitPositionParameters(action vdamodel.Action) (vdamodel.AGVPosition, string, error) {
	x, err := floatParam(action, "x")
	if err != nil {
		return vdamodel.AGVPosition{}, "", err
	}
	y, err := floatParam(action, "y")
	if err != nil {
		return vdamodel.AGVPosition{}, "", err
	}
	theta, err := floatParam(action, "theta")
	if err != nil {
		return vdamodel.AGVPosition{}, "", err
	}
	mapID, err := stringParam(action, "mapId")
	if err != nil {
		return vdamodel.AGVPosition{}, "", err
	}
	lastNodeID, err := stringParam(action, "lastNodeId")
	if err != nil {
		return vdamodel.AGVPosition{}, "", err
	}

	return vdamodel.AGVPosition{
		X: x, Y: y, Theta: theta, MapID: mapID, PositionInitialized: true,
	}, lastNodeID, nil
}

func floatParam(action vdamodel.Action, key string) (float64, error) {
	p, ok := action.Parameter(key)
	if !ok {
		return 0, errors.New("missing parameter " + strconv.Quote(key))
	}
	return p.Value.Float()
}

func stringParam(action vdamodel.Action, key string) (string, error) {
	p, ok := action.Parameter(key)
	if !ok {
		return "", errors.New("missing parameter " + strconv.Quote(key))
	}
	return p.Value.String()
}
