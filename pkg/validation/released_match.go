package validation

import (
	"reflect"
	"strconv"

	"github.com/cmraaron/libvda5050pp-sub001/pkg/vdamodel"
)

// ValidateReleasedMatch enforces §4.7's order-update constraint: an update
// may append to the released tail or replace the horizon wholesale, but any
// node/edge that was already released by a prior update for the same order
// must come back byte-for-byte identical. A released element that reappears
// with a different body is a fatal rejection; the engine assumes this has
// already been checked and does not re-validate it itself.
func ValidateReleasedMatch(previous, next vdamodel.Order) []Error {
	var errs []Error

	prevNodes := make(map[string]vdamodel.Node, len(previous.Nodes))
	for _, n := range previous.ReleasedNodes() {
		prevNodes[n.NodeID] = n
	}
	for _, n := range next.ReleasedNodes() {
		prev, ok := prevNodes[n.NodeID]
		if !ok || reflect.DeepEqual(prev, n) {
			continue
		}
		errs = append(errs, Error{
			ErrorType:        KindOrderUpdateError,
			ErrorDescription: "released node " + n.NodeID + " does not match the order currently in progress",
			ErrorReferences:  refs("node.nodeId", n.NodeID, "node.sequenceId", strconv.FormatInt(n.SequenceID, 10)),
			ErrorLevel:       LevelFatal,
		})
	}

	prevEdges := make(map[string]vdamodel.Edge, len(previous.Edges))
	for _, e := range previous.ReleasedEdges() {
		prevEdges[e.EdgeID] = e
	}
	for _, e := range next.ReleasedEdges() {
		prev, ok := prevEdges[e.EdgeID]
		if !ok || reflect.DeepEqual(prev, e) {
			continue
		}
		errs = append(errs, Error{
			ErrorType:        KindOrderUpdateError,
			ErrorDescription: "released edge " + e.EdgeID + " does not match the order currently in progress",
			ErrorReferences:  refs("edge.edgeId", e.EdgeID, "edge.sequenceId", strconv.FormatInt(e.SequenceID, 10)),
			ErrorLevel:       LevelFatal,
		})
	}

	return errs
}
