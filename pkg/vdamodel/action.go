package vdamodel

// ActionParameter is a single (key, value) pair attached to an Action.
type ActionParameter struct {
	Key   string          `json:"key"`
	Value SerializedValue `json:"value"`
}

// Action is a discrete, named operation attached to a node, an edge, or
// dispatched as an instant action. Equality ignores Description per the
// protocol's definition of action identity.
type Action struct {
	ActionType        string            `json:"actionType"`
	ActionID          string            `json:"actionId"`
	BlockingType      BlockingType      `json:"blockingType"`
	ActionParameters  []ActionParameter `json:"actionParameters,omitempty"`
	ActionDescription *string           `json:"actionDescription,omitempty"`
}

// Equal compares two actions ignoring ActionDescription.
func (a Action) Equal(other Action) bool {
	if a.ActionType != other.ActionType || a.ActionID != other.ActionID || a.BlockingType != other.BlockingType {
		return false
	}
	if len(a.ActionParameters) != len(other.ActionParameters) {
		return false
	}
	for i, p := range a.ActionParameters {
		op := other.ActionParameters[i]
		if p.Key != op.Key || p.Value.Type != op.Value.Type || p.Value.Raw != op.Value.Raw {
			return false
		}
	}
	return true
}

// Parameter looks up a parameter by key.
func (a Action) Parameter(key string) (ActionParameter, bool) {
	for _, p := range a.ActionParameters {
		if p.Key == key {
			return p, true
		}
	}
	return ActionParameter{}, false
}

// ActionState is the reportable, observable status of one action: either a
// released order action or an active instant action.
type ActionState struct {
	ActionID          string       `json:"actionId"`
	ActionType        string       `json:"actionType,omitempty"`
	ActionDescription string       `json:"actionDescription,omitempty"`
	ActionStatus      ActionStatus `json:"actionStatus"`
	ResultDescription *string      `json:"resultDescription,omitempty"`
}
