package handle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmraaron/libvda5050pp-sub001/pkg/metrics"
	_ "github.com/cmraaron/libvda5050pp-sub001/pkg/metrics/prometheus"
	"github.com/cmraaron/libvda5050pp-sub001/pkg/transport/memtransport"
	"github.com/cmraaron/libvda5050pp-sub001/pkg/vdamodel"
)

func TestNewWiresStoreToTransportOnHighUrgencyUpdate(t *testing.T) {
	tr := memtransport.New()
	description := vdamodel.AGVDescription{AGVID: "agv-1"}

	h := New(description, Drivers{}, tr, time.Minute, nil)
	defer h.Close()

	h.Store.SetLastNodeID("N1")

	require.Eventually(t, func() bool {
		_, ok := tr.LastState()
		return ok
	}, time.Second, time.Millisecond)

	last, ok := tr.LastState()
	require.True(t, ok)
	assert.Equal(t, "N1", last.LastNodeID)
}

func TestDoInstantActionStateRequestRoundTrips(t *testing.T) {
	tr := memtransport.New()
	description := vdamodel.AGVDescription{AGVID: "agv-1"}

	h := New(description, Drivers{}, tr, time.Minute, nil)
	defer h.Close()

	errs := h.Logic.DoInstantAction(context.Background(), vdamodel.Action{ActionID: "a1", ActionType: "stateRequest"})
	assert.Empty(t, errs)

	state, ok := h.Store.ActionState("a1")
	require.True(t, ok)
	assert.Equal(t, vdamodel.ActionFinished, state.ActionStatus)
}

func TestNewWiresRuntimeMetricsThroughEveryComponent(t *testing.T) {
	metrics.Init()
	m := metrics.NewRuntimeMetrics()
	require.NotNil(t, m)

	tr := memtransport.New()
	description := vdamodel.AGVDescription{AGVID: "agv-1"}

	h := New(description, Drivers{}, tr, time.Minute, m)
	defer h.Close()

	assert.NotPanics(t, func() {
		h.Store.SetLastNodeID("N1")
		_ = h.Logic.DoInstantAction(context.Background(), vdamodel.Action{ActionID: "a1", ActionType: "stateRequest"})
	})
}
