package validation

import "github.com/cmraaron/libvda5050pp-sub001/pkg/vdamodel"

// ControlActionDeclarations returns the built-in catalogue of control
// actions every AGV supports regardless of its AGVDescription — they must
// never be declared by the integrator (§6, §4.4).
func ControlActionDeclarations() []vdamodel.ActionDeclaration {
	hard := map[vdamodel.BlockingType]struct{}{vdamodel.BlockingHard: {}}
	none := map[vdamodel.BlockingType]struct{}{vdamodel.BlockingNone: {}}

	return []vdamodel.ActionDeclaration{
		{ActionType: "startPause", BlockingTypes: hard, Instant: true},
		{ActionType: "stopPause", BlockingTypes: hard, Instant: true},
		{ActionType: "stateRequest", BlockingTypes: none, Instant: true},
		{
			ActionType:    "logReport",
			BlockingTypes: none,
			Instant:       true,
			MandatoryParameter: map[string]vdamodel.ParameterRange{
				"reason": {Key: "reason"},
			},
		},
		{ActionType: "cancelOrder", BlockingTypes: hard, Instant: true},
		{
			ActionType:    "initPosition",
			BlockingTypes: hard,
			Instant:       true,
			MandatoryParameter: map[string]vdamodel.ParameterRange{
				"x":          {Key: "x"},
				"y":          {Key: "y"},
				"theta":      {Key: "theta"},
				"mapId":      {Key: "mapId"},
				"lastNodeId": {Key: "lastNodeId"},
			},
		},
	}
}

// FindDeclaration looks up a declaration by action type among decls.
func FindDeclaration(decls []vdamodel.ActionDeclaration, actionType string) (vdamodel.ActionDeclaration, bool) {
	for _, d := range decls {
		if d.ActionType == actionType {
			return d, true
		}
	}
	return vdamodel.ActionDeclaration{}, false
}
