package validation

import (
	"github.com/cmraaron/libvda5050pp-sub001/pkg/geometry"
	"github.com/cmraaron/libvda5050pp-sub001/pkg/vdamodel"
)

// VehicleState is the slice of the engine's current state the reachability
// check needs: whether the vehicle is idle, its last visited node (if the
// engine tracks one), and its last reported position. Satisfied by
// pkg/statestore.Store.
type VehicleState interface {
	IsIdle() bool
	LastNodeID() string
	AGVPosition() (vdamodel.AGVPosition, bool)
}

// NewOrderReachableValidator builds a validator that rejects a brand-new
// order (first node at sequenceId 0, vehicle idle) whose first node is not
// trivially reachable from the vehicle's current last-node or position, per
// §4.5. Orders that are not new (vehicle not idle, or first node is not
// sequenceId 0) are none of this validator's responsibility and pass
// unconditionally, matching the original's early-return behavior.
func NewOrderReachableValidator(state VehicleState) Validator[vdamodel.Order] {
	return Validator[vdamodel.Order]{
		Name: "First Node of new Order is trivially reachable",
		Func: func(order vdamodel.Order) []Error {
			first, ok := order.FirstNode()
			if !ok {
				return nil
			}

			if !(state.IsIdle() && first.SequenceID == 0) {
				return nil
			}

			if lastNodeID := state.LastNodeID(); lastNodeID != "" {
				if lastNodeID == first.NodeID {
					return nil
				}
			} else if reachableByPosition(state, first) {
				return nil
			}

			return []Error{{
				ErrorType:        KindOrderError,
				ErrorDescription: "First Node of the Order is not trivially reachable",
				ErrorReferences:  refs("node.nodeId", first.NodeID, "node.sequenceId", "0"),
				ErrorLevel:       LevelWarning,
			}}
		},
	}
}

func reachableByPosition(state VehicleState, first vdamodel.Node) bool {
	position, ok := state.AGVPosition()
	if !ok || !position.PositionInitialized || first.NodePosition == nil {
		return false
	}

	agv := geometry.Vector2{X: position.X, Y: position.Y}
	node := geometry.Vector2{X: first.NodePosition.X, Y: first.NodePosition.Y}

	agvPossiblePositions := geometry.Circle{Origin: agv, Radius: orZero(position.DeviationRange)}
	nodeDeviation := geometry.Circle{Origin: node, Radius: orZero(first.NodePosition.AllowedDeviationXY)}

	if !geometry.CircleEnclosureOf(nodeDeviation, agvPossiblePositions) {
		return false
	}

	if first.NodePosition.Theta == nil {
		return true
	}

	angleDiff := geometry.AngleDifference(*first.NodePosition.Theta, position.Theta)
	return angleDiff <= orZero(first.NodePosition.AllowedDeviationTheta)
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
