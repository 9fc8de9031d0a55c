// Package handle assembles every subsystem into the single immutable bundle
// the messaging layer and the CLI hold for the lifetime of the process
// (§4.12, §9's handle-as-hub redesign). Sub-managers receive the services
// they need as constructor parameters; none of them stores a back-reference
// to the Handle itself.
package handle

import (
	"context"
	"time"

	"github.com/cmraaron/libvda5050pp-sub001/pkg/interfaceagv"
	"github.com/cmraaron/libvda5050pp-sub001/pkg/logic"
	"github.com/cmraaron/libvda5050pp-sub001/pkg/metrics"
	"github.com/cmraaron/libvda5050pp-sub001/pkg/netmanager"
	"github.com/cmraaron/libvda5050pp-sub001/pkg/odometry"
	"github.com/cmraaron/libvda5050pp-sub001/pkg/statestore"
	"github.com/cmraaron/libvda5050pp-sub001/pkg/transport"
	"github.com/cmraaron/libvda5050pp-sub001/pkg/urgency"
	"github.com/cmraaron/libvda5050pp-sub001/pkg/vdamodel"
)

// Drivers bundles every integrator-supplied implementation. ActionHandlers,
// NavHandler/ContinuousNav (at most one should be non-nil), PauseResume, and
// Odometry may all be nil or empty — each absent driver degrades its
// instant action or traversal path gracefully rather than panicking (§4.9,
// §4.10).
type Drivers struct {
	ActionHandlers map[string]interfaceagv.ActionHandler
	NavHandler     interfaceagv.NavigationHandler
	ContinuousNav  interfaceagv.ContinuousNavigationHandler
	PauseResume    interfaceagv.PauseResumeHandler
	Odometry       interfaceagv.OdometryHandler
}

// Handle is the immutable bundle of every subsystem, constructed once at
// startup from an AGVDescription and the driver's Drivers.
type Handle struct {
	Store          *statestore.Store
	NetManager     *netmanager.NetManager
	StateTimer     *urgency.StateUpdateTimer
	InstantActions *logic.InstantActionsManager
	Odometry       *odometry.Handler
	Logic          *logic.Logic

	transport transport.Transport
}

// New wires every subsystem together: the state store notifies the
// StateUpdateTimer, which emits Snapshots through tr; the NetManager and
// odometry.Handler write through the store; InstantActionsManager and Logic
// sit on top, giving the messaging layer its two entry points
// (Logic.InterpretOrder, Logic.DoInstantAction). The StateUpdateTimer is
// started before New returns; callers must Close the Handle on shutdown.
//
// m is the runtime's instrumentation sink (nil disables it with zero
// overhead): it doubles as the StateUpdateTimer's urgency.Observer and
// feeds the store's action-transition counters and the net manager's
// queue-depth gauge.
func New(description vdamodel.AGVDescription, drivers Drivers, tr transport.Transport, period time.Duration, m metrics.RuntimeMetrics) *Handle {
	// store and stateTimer are circularly dependent (the emitter reads the
	// store; the store notifies the timer), so store is assigned after both
	// are constructed.
	var store *statestore.Store
	emit := func(ctx context.Context) error {
		return tr.PublishState(ctx, store.Snapshot())
	}
	stateTimer := urgency.New(period, emit, m)
	store = statestore.New(description.AGVID, stateTimer)
	store.SetMetrics(m)

	h := &Handle{
		Store:      store,
		StateTimer: stateTimer,
		transport:  tr,
	}

	h.NetManager = netmanager.New(h.Store, drivers.ActionHandlers, drivers.NavHandler, drivers.ContinuousNav)
	h.NetManager.SetMetrics(m)
	h.Odometry = odometry.New(drivers.Odometry, h.Store, tr)

	hasActiveOrder := func() bool {
		orderID, _ := h.Store.Order()
		return orderID != ""
	}
	h.InstantActions = logic.NewInstantActionsManager(h.NetManager, h.Store, h.Odometry, drivers.PauseResume, hasActiveOrder)
	h.Logic = logic.New(h.Store, h.NetManager, h.InstantActions, description)

	h.StateTimer.Start()
	return h
}

// Close stops the NetManager's task-queue worker and the StateUpdateTimer's
// background loop, and disables automatic visualization if enabled. It does
// not publish a final disconnect message; callers that need one should call
// Transport.PublishConnection(ctx, false) before Close.
func (h *Handle) Close() {
	h.NetManager.Close()
	h.Odometry.Close()
	h.StateTimer.Close()
}
