// Package logic implements the dispatch layer between the transport and
// the order engine: PauseResumeActionManager (§4.8), InstantActionsManager
// (§4.9), and the small Logic façade the messaging layer calls into.
package logic

import (
	"context"
	"sync"

	"github.com/cmraaron/libvda5050pp-sub001/pkg/interfaceagv"
	"github.com/cmraaron/libvda5050pp-sub001/pkg/statestore"
	"github.com/cmraaron/libvda5050pp-sub001/pkg/urgency"
	"github.com/cmraaron/libvda5050pp-sub001/pkg/validation"
	"github.com/cmraaron/libvda5050pp-sub001/pkg/vdamodel"
)

// Engine is the slice of NetManager the PauseResumeActionManager and
// InstantActionsManager need: pause/resume/cancel the running net,
// intercepting a non-built-in instant action, and the shared task-queue
// worker every driver callback invocation must route through (§5). Satisfied
// by *pkg/netmanager.NetManager.
type Engine interface {
	Pause()
	Resume()
	CancelAll(onAllExited func())
	InterceptWithAction(action vdamodel.Action)
	Dispatch(task func())
}

// PauseResumeActionManager owns a driver-supplied PauseResumeHandler for
// the duration of one startPause/stopPause instant action (§4.8).
type PauseResumeActionManager struct {
	handler interfaceagv.PauseResumeHandler
	engine  Engine
	store   *statestore.Store

	mu       sync.Mutex
	actionID string
	resume   bool
}

// NewPauseResumeActionManager constructs a manager bound to one instant
// action. resume selects doResume (stopPause) over doPause (startPause).
func NewPauseResumeActionManager(handler interfaceagv.PauseResumeHandler, engine Engine, store *statestore.Store, actionID string, resume bool) *PauseResumeActionManager {
	return &PauseResumeActionManager{handler: handler, engine: engine, store: store, actionID: actionID, resume: resume}
}

// Initialize schedules doPause()/doResume() on the engine's task-queue
// worker and sets the action RUNNING, requesting a medium-urgency update
// (§4.8). The driver call never runs inline on the caller's goroutine.
func (m *PauseResumeActionManager) Initialize(ctx context.Context) {
	m.setStatus(vdamodel.ActionRunning, "")

	m.engine.Dispatch(func() {
		var err error
		if m.resume {
			err = m.handler.DoResume(ctx, m)
		} else {
			err = m.handler.DoPause(ctx, m)
		}
		if err != nil {
			m.Failed("PauseResumeHandlerError", err.Error())
		}
	})
}

// Started satisfies interfaceagv.PauseResumeCallbacks.
func (m *PauseResumeActionManager) Started() {}

// Finished satisfies interfaceagv.PauseResumeCallbacks: marks the action
// FINISHED, writes the paused/resumed state, and — for resume —
// re-ticks the engine (§4.8).
func (m *PauseResumeActionManager) Finished() {
	m.setStatus(vdamodel.ActionFinished, "")
	if m.resume {
		m.store.SetPaused(false)
		m.engine.Resume()
	} else {
		m.store.SetPaused(true)
		m.engine.Pause()
	}
}

// Failed satisfies interfaceagv.PauseResumeCallbacks: exceptions in the
// handler are converted to structured errors and trigger abortOrder (here,
// CancelAll — the engine drains whatever is currently in flight).
func (m *PauseResumeActionManager) Failed(errorKind, description string) {
	m.setStatus(vdamodel.ActionFailed, description)
	m.store.AppendErrors(urgency.High, validation.Error{
		ErrorType:        errorKind,
		ErrorDescription: description,
		ErrorReferences:  []validation.ErrorReference{{Key: "actionId", Value: m.actionID}},
		ErrorLevel:       validation.LevelWarning,
	})
	m.engine.CancelAll(func() {})
}

func (m *PauseResumeActionManager) setStatus(status vdamodel.ActionStatus, resultDescription string) {
	m.mu.Lock()
	actionID := m.actionID
	m.mu.Unlock()

	state := vdamodel.ActionState{ActionID: actionID, ActionStatus: status}
	if resultDescription != "" {
		state.ResultDescription = &resultDescription
	}
	m.store.SetActionState(state)
}
