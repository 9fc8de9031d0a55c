// Package odometry wraps a driver-supplied position/velocity source,
// writing every report through the state store and optionally publishing
// periodic visualization messages over a Transport (§4.10).
package odometry

import (
	"context"
	"sync"
	"time"

	"github.com/cmraaron/libvda5050pp-sub001/pkg/interfaceagv"
	"github.com/cmraaron/libvda5050pp-sub001/pkg/statestore"
	"github.com/cmraaron/libvda5050pp-sub001/pkg/timer"
	"github.com/cmraaron/libvda5050pp-sub001/pkg/transport"
	"github.com/cmraaron/libvda5050pp-sub001/pkg/vdamodel"
)

// Handler wraps a driver's interfaceagv.OdometryHandler. It is attached to
// the Handle at registration time (§4.12); InstantActionsManager calls
// InitializePosition for the initPosition instant action.
type Handler struct {
	driver    interfaceagv.OdometryHandler
	store     *statestore.Store
	transport transport.Transport

	mu       sync.Mutex
	vizTimer *timer.InterruptableTimer
	vizDone  chan struct{}
	vizWg    sync.WaitGroup
	enabled  bool
}

// New constructs a Handler. driver may be nil, meaning no odometry source
// is attached (§4.9: InstantActionsManager FAILs initPosition in that
// case).
func New(driver interfaceagv.OdometryHandler, store *statestore.Store, tr transport.Transport) *Handler {
	return &Handler{driver: driver, store: store, transport: tr}
}

// Attached reports whether a driver odometry source is registered.
func (h *Handler) Attached() bool {
	return h.driver != nil
}

// InitializePosition forwards to the driver and, on success, does not
// itself touch the state store: InstantActionsManager sets lastNodeId and
// the action's terminal status once this returns (§4.9).
func (h *Handler) InitializePosition(ctx context.Context, pos vdamodel.AGVPosition) error {
	return h.driver.InitializePosition(ctx, pos)
}

// ReportPosition records a new position reading in the state store.
func (h *Handler) ReportPosition(pos vdamodel.AGVPosition) {
	h.store.SetAGVPosition(pos)
}

// ReportVelocity records a new velocity reading in the state store.
func (h *Handler) ReportVelocity(vel vdamodel.Velocity) {
	h.store.SetVelocity(vel)
}

// EnableAutomaticVisualizationMessages spawns a background loop publishing
// a visualization message, sourced from the store's current position and
// velocity, every period until Disable is called or the Handler is closed.
// Reentrant: calling it again while already enabled is a no-op.
func (h *Handler) EnableAutomaticVisualizationMessages(period time.Duration) {
	h.mu.Lock()
	if h.enabled {
		h.mu.Unlock()
		return
	}
	h.enabled = true
	h.vizTimer = timer.New()
	h.vizDone = make(chan struct{})
	h.mu.Unlock()

	h.vizWg.Add(1)
	go h.visualizationLoop(period)
}

func (h *Handler) visualizationLoop(period time.Duration) {
	defer h.vizWg.Done()

	for {
		select {
		case <-h.vizDone:
			return
		default:
		}

		status := h.vizTimer.SleepFor(period)
		if status == timer.StatusDisabled {
			return
		}
		if status == timer.StatusInterrupted {
			continue
		}

		pos, _ := h.store.AGVPosition()
		vel, _ := h.store.Velocity()
		_ = h.transport.PublishVisualization(context.Background(), pos, vel)
	}
}

// DisableAutomaticVisualizationMessages stops the visualization loop, if
// running, and waits for it to exit. A reentrant Disable after disable is a
// no-op.
func (h *Handler) DisableAutomaticVisualizationMessages() {
	h.mu.Lock()
	if !h.enabled {
		h.mu.Unlock()
		return
	}
	h.enabled = false
	vizTimer := h.vizTimer
	vizDone := h.vizDone
	h.mu.Unlock()

	close(vizDone)
	vizTimer.Disable()
	h.vizWg.Wait()
}

// Close disables the visualization loop if running. Safe to call even if
// EnableAutomaticVisualizationMessages was never called.
func (h *Handler) Close() {
	h.DisableAutomaticVisualizationMessages()
}
