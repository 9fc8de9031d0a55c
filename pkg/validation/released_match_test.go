package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmraaron/libvda5050pp-sub001/pkg/vdamodel"
)

func TestValidateReleasedMatchAllowsIdenticalReleasedNodes(t *testing.T) {
	previous := vdamodel.Order{
		Nodes: []vdamodel.Node{{NodeID: "N1", SequenceID: 0, Released: true}},
	}
	next := vdamodel.Order{
		Nodes: []vdamodel.Node{
			{NodeID: "N1", SequenceID: 0, Released: true},
			{NodeID: "N2", SequenceID: 2, Released: false},
		},
	}

	assert.Empty(t, ValidateReleasedMatch(previous, next))
}

func TestValidateReleasedMatchRejectsMutatedReleasedNode(t *testing.T) {
	previous := vdamodel.Order{
		Nodes: []vdamodel.Node{{NodeID: "N1", SequenceID: 0, Released: true}},
	}
	next := vdamodel.Order{
		Nodes: []vdamodel.Node{
			{NodeID: "N1", SequenceID: 0, Released: true, NodePosition: &vdamodel.NodePosition{X: 1}},
		},
	}

	errs := ValidateReleasedMatch(previous, next)

	require.Len(t, errs, 1)
	assert.Equal(t, KindOrderUpdateError, errs[0].ErrorType)
	assert.Equal(t, LevelFatal, errs[0].ErrorLevel)
}

func TestValidateReleasedMatchRejectsMutatedReleasedEdge(t *testing.T) {
	previous := vdamodel.Order{
		Edges: []vdamodel.Edge{{EdgeID: "E1", SequenceID: 1, Released: true, StartNodeID: "N1", EndNodeID: "N2"}},
	}
	next := vdamodel.Order{
		Edges: []vdamodel.Edge{{EdgeID: "E1", SequenceID: 1, Released: true, StartNodeID: "N1", EndNodeID: "N3"}},
	}

	errs := ValidateReleasedMatch(previous, next)

	require.Len(t, errs, 1)
	assert.Equal(t, KindOrderUpdateError, errs[0].ErrorType)
}

func TestValidateReleasedMatchIgnoresUnreleasedHorizonChanges(t *testing.T) {
	previous := vdamodel.Order{
		Nodes: []vdamodel.Node{{NodeID: "N2", SequenceID: 2, Released: false}},
	}
	next := vdamodel.Order{
		Nodes: []vdamodel.Node{{NodeID: "N2", SequenceID: 2, Released: false, NodePosition: &vdamodel.NodePosition{X: 99}}},
	}

	assert.Empty(t, ValidateReleasedMatch(previous, next))
}
