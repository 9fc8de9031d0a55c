package logic

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmraaron/libvda5050pp-sub001/pkg/interfaceagv"
	"github.com/cmraaron/libvda5050pp-sub001/pkg/statestore"
	"github.com/cmraaron/libvda5050pp-sub001/pkg/vdamodel"
)

func newTestStore() *statestore.Store {
	return statestore.New("agv-1", nil)
}

type fakeOdometry struct {
	attached bool
	err      error
	initialized []vdamodel.AGVPosition
}

func (o *fakeOdometry) Attached() bool { return o.attached }
func (o *fakeOdometry) InitializePosition(_ context.Context, pos vdamodel.AGVPosition) error {
	o.initialized = append(o.initialized, pos)
	return o.err
}

func TestStateRequestFinishesImmediately(t *testing.T) {
	store := newTestStore()
	m := NewInstantActionsManager(&fakeEngine{}, store, nil, nil, func() bool { return false })

	m.Dispatch(context.Background(), vdamodel.Action{ActionID: "a1", ActionType: "stateRequest"})

	state, ok := store.ActionState("a1")
	require.True(t, ok)
	assert.Equal(t, vdamodel.ActionFinished, state.ActionStatus)
}

func TestCancelOrderFailsWithoutActiveOrder(t *testing.T) {
	store := newTestStore()
	m := NewInstantActionsManager(&fakeEngine{}, store, nil, nil, func() bool { return false })

	m.Dispatch(context.Background(), vdamodel.Action{ActionID: "a1", ActionType: "cancelOrder"})

	state, ok := store.ActionState("a1")
	require.True(t, ok)
	assert.Equal(t, vdamodel.ActionFailed, state.ActionStatus)
}

func TestCancelOrderDrainsNetAndClearsOrder(t *testing.T) {
	store := newTestStore()
	store.SetOrder("order-1", 3)
	engine := &fakeEngine{}
	m := NewInstantActionsManager(engine, store, nil, nil, func() bool { return true })

	m.Dispatch(context.Background(), vdamodel.Action{ActionID: "a1", ActionType: "cancelOrder"})

	state, ok := store.ActionState("a1")
	require.True(t, ok)
	assert.Equal(t, vdamodel.ActionFinished, state.ActionStatus)
	assert.Equal(t, 1, engine.cancelled)

	orderID, _ := store.Order()
	assert.Equal(t, "", orderID)
	assert.True(t, store.IsIdle())
}

// S7: initPosition success.
func TestInitPositionSuccessScenarioS7(t *testing.T) {
	store := newTestStore()
	odo := &fakeOdometry{attached: true}
	m := NewInstantActionsManager(&fakeEngine{}, store, odo, nil, func() bool { return false })

	action := vdamodel.Action{
		ActionID:   "a1",
		ActionType: "initPosition",
		ActionParameters: []vdamodel.ActionParameter{
			{Key: "x", Value: vdamodel.NewFloatValue(1.0)},
			{Key: "y", Value: vdamodel.NewFloatValue(2.0)},
			{Key: "theta", Value: vdamodel.NewFloatValue(0.0)},
			{Key: "mapId", Value: vdamodel.NewStringValue("m")},
			{Key: "lastNodeId", Value: vdamodel.NewStringValue("N7")},
		},
	}
	m.Dispatch(context.Background(), action)

	state, ok := store.ActionState("a1")
	require.True(t, ok)
	assert.Equal(t, vdamodel.ActionFinished, state.ActionStatus)
	assert.Equal(t, "N7", store.LastNodeID())
	require.Len(t, odo.initialized, 1)
	assert.Equal(t, 1.0, odo.initialized[0].X)
}

func TestInitPositionFailsWithoutOdometryHandler(t *testing.T) {
	store := newTestStore()
	m := NewInstantActionsManager(&fakeEngine{}, store, nil, nil, func() bool { return false })

	m.Dispatch(context.Background(), vdamodel.Action{ActionID: "a1", ActionType: "initPosition"})

	state, ok := store.ActionState("a1")
	require.True(t, ok)
	assert.Equal(t, vdamodel.ActionFailed, state.ActionStatus)
}

func TestInitPositionFailsOnUnparsableParameters(t *testing.T) {
	store := newTestStore()
	odo := &fakeOdometry{attached: true}
	m := NewInstantActionsManager(&fakeEngine{}, store, odo, nil, func() bool { return false })

	m.Dispatch(context.Background(), vdamodel.Action{
		ActionID:   "a1",
		ActionType: "initPosition",
		ActionParameters: []vdamodel.ActionParameter{
			{Key: "x", Value: vdamodel.NewStringValue("not-a-float")},
		},
	})

	state, ok := store.ActionState("a1")
	require.True(t, ok)
	assert.Equal(t, vdamodel.ActionFailed, state.ActionStatus)
	assert.Empty(t, odo.initialized)
}

func TestInitPositionFailsWhenDriverRejectsPose(t *testing.T) {
	store := newTestStore()
	odo := &fakeOdometry{attached: true, err: &interfaceagv.ErrInitializePosition{Reason: "outside map bounds"}}
	m := NewInstantActionsManager(&fakeEngine{}, store, odo, nil, func() bool { return false })

	action := vdamodel.Action{
		ActionID:   "a1",
		ActionType: "initPosition",
		ActionParameters: []vdamodel.ActionParameter{
			{Key: "x", Value: vdamodel.NewFloatValue(1.0)},
			{Key: "y", Value: vdamodel.NewFloatValue(2.0)},
			{Key: "theta", Value: vdamodel.NewFloatValue(0.0)},
			{Key: "mapId", Value: vdamodel.NewStringValue("m")},
			{Key: "lastNodeId", Value: vdamodel.NewStringValue("N7")},
		},
	}
	m.Dispatch(context.Background(), action)

	state, ok := store.ActionState("a1")
	require.True(t, ok)
	assert.Equal(t, vdamodel.ActionFailed, state.ActionStatus)
	assert.Equal(t, "", store.LastNodeID())
}

func TestDefaultDispatchIntercepts(t *testing.T) {
	store := newTestStore()
	engine := &interceptTrackingEngine{}
	m := NewInstantActionsManager(engine, store, nil, nil, func() bool { return false })

	m.Dispatch(context.Background(), vdamodel.Action{ActionID: "a1", ActionType: "customAction"})

	require.Eventually(t, func() bool { return len(engine.intercepted) == 1 }, time.Second, time.Millisecond)
}

type interceptTrackingEngine struct {
	fakeEngine
	intercepted []string
}

func (e *interceptTrackingEngine) InterceptWithAction(action vdamodel.Action) {
	e.intercepted = append(e.intercepted, action.ActionID)
}
