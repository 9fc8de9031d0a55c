package memtransport

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmraaron/libvda5050pp-sub001/pkg/statestore"
	"github.com/cmraaron/libvda5050pp-sub001/pkg/vdamodel"
)

func TestPublishStateRecordsSnapshots(t *testing.T) {
	tr := New()
	ctx := context.Background()

	require.NoError(t, tr.PublishState(ctx, statestore.Snapshot{AGVID: "agv-1"}))
	require.NoError(t, tr.PublishState(ctx, statestore.Snapshot{AGVID: "agv-1", OrderID: "o1"}))

	last, ok := tr.LastState()
	require.True(t, ok)
	assert.Equal(t, "o1", last.OrderID)
	assert.Len(t, tr.States(), 2)
}

func TestPublishVisualizationAndConnection(t *testing.T) {
	tr := New()
	ctx := context.Background()

	require.NoError(t, tr.PublishVisualization(ctx, vdamodel.AGVPosition{X: 1}, vdamodel.Velocity{}))
	require.NoError(t, tr.PublishConnection(ctx, true))

	assert.Len(t, tr.Visualizations(), 1)
	assert.Equal(t, 1.0, tr.Visualizations()[0].Position.X)
}
