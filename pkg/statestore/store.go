// Package statestore holds the single mutex-guarded copy of the AGV's
// current, reportable state: position, velocity, battery, safety,
// operating mode, action states, errors, and the last visited node. Every
// subsystem reads it; only the engine and the driver-callback adapters
// write it, through coarse-grained, whole-field setters (§4.11).
package statestore

import (
	"sync"

	"github.com/cmraaron/libvda5050pp-sub001/pkg/metrics"
	"github.com/cmraaron/libvda5050pp-sub001/pkg/urgency"
	"github.com/cmraaron/libvda5050pp-sub001/pkg/validation"
	"github.com/cmraaron/libvda5050pp-sub001/pkg/vdamodel"
)

// UpdateRequester is notified, at a given urgency, whenever a setter
// changes reportable state. Satisfied by *urgency.StateUpdateTimer; nil is
// accepted (notifications become no-ops) for tests that do not need a
// timer.
type UpdateRequester interface {
	RequestUpdate(u urgency.Urgency)
}

// Store is the single mutex-guarded copy of vehicle state.
type Store struct {
	mu sync.RWMutex

	agvID         string
	idle          bool
	orderID       string
	orderUpdateID int64
	lastNodeID    string

	position *vdamodel.AGVPosition
	velocity *vdamodel.Velocity
	battery  vdamodel.Battery
	safety   vdamodel.SafetyState
	mode     vdamodel.OperatingMode
	paused   bool
	driving  bool

	actionStates map[string]vdamodel.ActionState
	errors       []validation.Error

	requester UpdateRequester
	metrics   metrics.RuntimeMetrics
}

// SetMetrics attaches m as the destination for action-transition
// instrumentation. m may be nil (the default), disabling it with zero
// overhead.
func (s *Store) SetMetrics(m metrics.RuntimeMetrics) {
	s.mu.Lock()
	s.metrics = m
	s.mu.Unlock()
}

// New constructs an idle Store for agvID. requester may be nil.
func New(agvID string, requester UpdateRequester) *Store {
	return &Store{
		agvID:        agvID,
		idle:         true,
		mode:         vdamodel.OperatingAutomatic,
		actionStates: make(map[string]vdamodel.ActionState),
		requester:    requester,
	}
}

func (s *Store) notify(u urgency.Urgency) {
	if s.requester != nil {
		s.requester.RequestUpdate(u)
	}
}

// RequestUpdate requests a state emission at urgency u without changing any
// field — e.g. cancelOrder's onAllExited flushes the cleared order
// immediately even though clearing it is itself a no-op write (§4.9).
func (s *Store) RequestUpdate(u urgency.Urgency) {
	s.notify(u)
}

// AGVID returns the identifier this store was constructed with.
func (s *Store) AGVID() string {
	return s.agvID
}

// IsIdle reports whether the engine currently has no active order.
// Satisfies pkg/validation.VehicleState.
func (s *Store) IsIdle() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.idle
}

// SetIdle marks the engine idle or busy, requesting a low-urgency update.
func (s *Store) SetIdle(idle bool) {
	s.mu.Lock()
	s.idle = idle
	s.mu.Unlock()
	s.notify(urgency.Low)
}

// LastNodeID returns the last node the AGV is known to have reached.
// Satisfies pkg/validation.VehicleState.
func (s *Store) LastNodeID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastNodeID
}

// SetLastNodeID records a newly-reached node, requesting a high-urgency
// update (it gates order-reachability and round-trip observability).
func (s *Store) SetLastNodeID(nodeID string) {
	s.mu.Lock()
	s.lastNodeID = nodeID
	s.mu.Unlock()
	s.notify(urgency.High)
}

// Order returns the currently tracked orderId/orderUpdateId pair.
func (s *Store) Order() (orderID string, orderUpdateID int64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.orderID, s.orderUpdateID
}

// SetOrder records which order/update the engine is now executing.
func (s *Store) SetOrder(orderID string, orderUpdateID int64) {
	s.mu.Lock()
	s.orderID = orderID
	s.orderUpdateID = orderUpdateID
	s.mu.Unlock()
	s.notify(urgency.Low)
}

// AGVPosition returns the last reported position, if any.
// Satisfies pkg/validation.VehicleState.
func (s *Store) AGVPosition() (vdamodel.AGVPosition, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.position == nil {
		return vdamodel.AGVPosition{}, false
	}
	return *s.position, true
}

// SetAGVPosition reports a new position, requesting a medium-urgency update.
func (s *Store) SetAGVPosition(pos vdamodel.AGVPosition) {
	s.mu.Lock()
	s.position = &pos
	s.mu.Unlock()
	s.notify(urgency.Medium)
}

// Velocity returns the last reported velocity, if any.
func (s *Store) Velocity() (vdamodel.Velocity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.velocity == nil {
		return vdamodel.Velocity{}, false
	}
	return *s.velocity, true
}

// SetVelocity reports a new velocity, requesting a low-urgency update (it is
// high frequency and never, by itself, safety critical).
func (s *Store) SetVelocity(vel vdamodel.Velocity) {
	s.mu.Lock()
	s.velocity = &vel
	s.mu.Unlock()
	s.notify(urgency.Low)
}

// Battery returns the last reported battery state.
func (s *Store) Battery() vdamodel.Battery {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.battery
}

// SetBattery reports a new battery reading, requesting a low-urgency update.
func (s *Store) SetBattery(b vdamodel.Battery) {
	s.mu.Lock()
	s.battery = b
	s.mu.Unlock()
	s.notify(urgency.Low)
}

// Safety returns the last reported safety state.
func (s *Store) Safety() vdamodel.SafetyState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.safety
}

// SetSafety reports a new safety state, requesting a high-urgency update: a
// field violation or e-stop change must reach the controller quickly.
func (s *Store) SetSafety(safety vdamodel.SafetyState) {
	s.mu.Lock()
	s.safety = safety
	s.mu.Unlock()
	s.notify(urgency.High)
}

// OperatingMode returns the current operating mode.
func (s *Store) OperatingMode() vdamodel.OperatingMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// SetOperatingMode records a new operating mode, requesting a
// medium-urgency update.
func (s *Store) SetOperatingMode(mode vdamodel.OperatingMode) {
	s.mu.Lock()
	s.mode = mode
	s.mu.Unlock()
	s.notify(urgency.Medium)
}

// Paused reports whether the order engine is currently paused.
func (s *Store) Paused() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.paused
}

// SetPaused records the pause/resume state, requesting a high-urgency
// update per the PauseResumeActionManager's finished transition.
func (s *Store) SetPaused(paused bool) {
	s.mu.Lock()
	s.paused = paused
	s.mu.Unlock()
	s.notify(urgency.High)
}

// Driving reports whether the AGV is currently navigating.
func (s *Store) Driving() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.driving
}

// SetDriving records the navigation-in-progress flag.
func (s *Store) SetDriving(driving bool) {
	s.mu.Lock()
	s.driving = driving
	s.mu.Unlock()
	s.notify(urgency.Low)
}

// ActionStates returns a snapshot of every tracked action's state, released
// order actions and active instant actions alike.
func (s *Store) ActionStates() []vdamodel.ActionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]vdamodel.ActionState, 0, len(s.actionStates))
	for _, as := range s.actionStates {
		out = append(out, as)
	}
	return out
}

// ActionState returns one action's tracked state, if any.
func (s *Store) ActionState(actionID string) (vdamodel.ActionState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	as, ok := s.actionStates[actionID]
	return as, ok
}

// SetActionState records an action's state transition. Urgency follows the
// transition per §4.8/§4.9: FINISHED/FAILED transitions are high urgency,
// everything else medium.
func (s *Store) SetActionState(state vdamodel.ActionState) {
	s.mu.Lock()
	prev, had := s.actionStates[state.ActionID]
	s.actionStates[state.ActionID] = state
	m := s.metrics
	s.mu.Unlock()

	from := "none"
	if had {
		from = string(prev.ActionStatus)
	}
	metrics.ObserveActionTransition(m, state.ActionType, from, string(state.ActionStatus))

	if state.ActionStatus.Terminal() {
		s.notify(urgency.High)
	} else {
		s.notify(urgency.Medium)
	}
}

// ForgetActionState drops a terminal instant action's state once the
// controller has observed it at least once (§2 Lifecycle).
func (s *Store) ForgetActionState(actionID string) {
	s.mu.Lock()
	delete(s.actionStates, actionID)
	s.mu.Unlock()
}

// Errors returns a snapshot of the currently reported errors.
func (s *Store) Errors() []validation.Error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]validation.Error, len(s.errors))
	copy(out, s.errors)
	return out
}

// AppendErrors appends one or more structured errors to the outgoing state,
// requesting an update at the given urgency.
func (s *Store) AppendErrors(u urgency.Urgency, errs ...validation.Error) {
	if len(errs) == 0 {
		return
	}
	s.mu.Lock()
	s.errors = append(s.errors, errs...)
	s.mu.Unlock()
	s.notify(u)
}

// ClearErrors drops every currently reported error, e.g. once they have been
// superseded by a successful retry.
func (s *Store) ClearErrors() {
	s.mu.Lock()
	s.errors = nil
	s.mu.Unlock()
}

// Snapshot is an immutable point-in-time copy of the store, suitable for
// serialization into a VDA 5050 State message.
type Snapshot struct {
	AGVID         string
	Idle          bool
	OrderID       string
	OrderUpdateID int64
	LastNodeID    string
	Position      *vdamodel.AGVPosition
	Velocity      *vdamodel.Velocity
	Battery       vdamodel.Battery
	Safety        vdamodel.SafetyState
	OperatingMode vdamodel.OperatingMode
	Paused        bool
	Driving       bool
	ActionStates  []vdamodel.ActionState
	Errors        []validation.Error
}

// Snapshot takes a consistent, point-in-time copy of the entire store under
// a single read lock.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		AGVID:         s.agvID,
		Idle:          s.idle,
		OrderID:       s.orderID,
		OrderUpdateID: s.orderUpdateID,
		LastNodeID:    s.lastNodeID,
		Battery:       s.battery,
		Safety:        s.safety,
		OperatingMode: s.mode,
		Paused:        s.paused,
		Driving:       s.driving,
	}
	if s.position != nil {
		pos := *s.position
		snap.Position = &pos
	}
	if s.velocity != nil {
		vel := *s.velocity
		snap.Velocity = &vel
	}
	snap.ActionStates = make([]vdamodel.ActionState, 0, len(s.actionStates))
	for _, as := range s.actionStates {
		snap.ActionStates = append(snap.ActionStates, as)
	}
	snap.Errors = make([]validation.Error, len(s.errors))
	copy(snap.Errors, s.errors)
	return snap
}
