package validation

import (
	"strings"

	"github.com/cmraaron/libvda5050pp-sub001/pkg/vdamodel"
)

// ActionContext says where an action was found: attached to a node, an
// edge, or dispatched as an instant action. Exactly one is true.
type ActionContext struct {
	Node    bool
	Edge    bool
	Instant bool
}

// NewActionDeclaredValidator builds a validator checking action against the
// AGV's declared actions (plus the always-present control actions) per
// §4.4. If description.ActionValidationEnabled() is false ("do not validate
// actions"), the returned validator always reports no errors.
func NewActionDeclaredValidator(description vdamodel.AGVDescription, ctx ActionContext) Validator[vdamodel.Action] {
	return Validator[vdamodel.Action]{
		Name: "Check if the Action was declared in the AGV description",
		Func: func(action vdamodel.Action) []Error {
			if !description.ActionValidationEnabled() {
				return nil
			}

			decl, ok := FindDeclaration(*description.SupportedActions, action.ActionType)
			if !ok {
				decl, ok = FindDeclaration(ControlActionDeclarations(), action.ActionType)
			}
			if !ok {
				return []Error{{
					ErrorType:        KindUnknownAction,
					ErrorDescription: "Action Type not supported",
					ErrorReferences:  refs("actionId", action.ActionID, "actionType", action.ActionType),
					ErrorLevel:       LevelWarning,
				}}
			}

			if ctx.Edge && !decl.Edge {
				return []Error{contextError(action, "Action cannot be executed on Edges")}
			}
			if ctx.Node && !decl.Node {
				return []Error{contextError(action, "Action cannot be executed on Nodes")}
			}
			if ctx.Instant && !decl.Instant {
				return []Error{contextError(action, "Action cannot be executed instantaneously")}
			}

			if !decl.AllowsBlocking(action.BlockingType) {
				return []Error{{
					ErrorType:        KindActionBlockingType,
					ErrorDescription: "Action BlockingType not supported",
					ErrorReferences:  refs("actionId", action.ActionID, "actionType", action.ActionType),
					ErrorLevel:       LevelWarning,
				}}
			}

			return parameterErrors(action, decl)
		},
	}
}

func contextError(action vdamodel.Action, desc string) Error {
	return Error{
		ErrorType:        KindActionContext,
		ErrorDescription: desc,
		ErrorReferences:  refs("actionId", action.ActionID, "actionType", action.ActionType),
		ErrorLevel:       LevelWarning,
	}
}

func parameterErrors(action vdamodel.Action, decl vdamodel.ActionDeclaration) []Error {
	var errs []Error

	seen := make(map[string]struct{}, len(decl.MandatoryParameter))
	for _, param := range action.ActionParameters {
		pr, mandatory, found := decl.ParameterDeclaration(param.Key)
		if !found {
			errs = append(errs, Error{
				ErrorType:        KindActionParameter,
				ErrorDescription: "Action Parameter not supported",
				ErrorReferences:  refs("actionId", action.ActionID, "actionType", action.ActionType, "actionParameter.key", param.Key),
				ErrorLevel:       LevelWarning,
			})
			continue
		}
		if mandatory {
			seen[param.Key] = struct{}{}
		}
		errs = append(errs, parameterValueErrors(action, pr, param)...)
	}

	var missing []string
	for key := range decl.MandatoryParameter {
		if _, ok := seen[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		errs = append(errs, Error{
			ErrorType:        KindActionParameterMissing,
			ErrorDescription: "Required ActionParameters missing",
			ErrorReferences:  refs("actionId", action.ActionID, "actionType", action.ActionType, "actionParameter.key", strings.Join(missing, " ")),
			ErrorLevel:       LevelWarning,
		})
	}

	return errs
}

func parameterValueErrors(action vdamodel.Action, pr vdamodel.ParameterRange, param vdamodel.ActionParameter) []Error {
	// An unconstrained declaration (no value set, no ordinal bounds)
	// accepts any value of any type.
	if pr.ValueSet == nil && pr.OrdinalMin == nil && pr.OrdinalMax == nil {
		return nil
	}

	if pr.ValueSet != nil {
		if _, ok := pr.ValueSet[param.Value.Raw]; !ok {
			return []Error{{
				ErrorType:        KindActionParameterValue,
				ErrorDescription: "Invalid ActionParameter Value",
				ErrorReferences:  refs("actionId", action.ActionID, "actionType", action.ActionType, "actionParameter.key", param.Key, "actionParameter.value", param.Value.Raw),
				ErrorLevel:       LevelWarning,
			}}
		}
		return nil
	}

	// Ordinal bounds: a cast mismatch against the declared bound's type
	// becomes ActionParameter type, not a bounds failure.
	bound := pr.OrdinalMin
	if bound == nil {
		bound = pr.OrdinalMax
	}
	if bound != nil && param.Value.Type != bound.Type {
		return []Error{{
			ErrorType:        KindActionParameterType,
			ErrorDescription: "Action Parameter value does not match the declared ordinal type",
			ErrorReferences:  refs("actionId", action.ActionID, "actionType", action.ActionType, "actionParameter.key", param.Key, "actionParameter.value", param.Value.Raw),
			ErrorLevel:       LevelWarning,
		}}
	}

	if !pr.Satisfies(param.Value) {
		return []Error{{
			ErrorType:        KindActionParameterValueOutOfBounds,
			ErrorDescription: "Action Parameter value out of bounds",
			ErrorReferences:  refs("actionId", action.ActionID, "actionType", action.ActionType, "actionParameter.key", param.Key, "actionParameter.value", param.Value.Raw),
			ErrorLevel:       LevelWarning,
		}}
	}
	return nil
}
