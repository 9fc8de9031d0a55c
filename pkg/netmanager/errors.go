package netmanager

import "github.com/cmraaron/libvda5050pp-sub001/pkg/validation"

// validationInternalError builds the FATAL structured error the engine
// appends when an invariant is violated internally (impossible transition,
// missing handler) rather than rejected as a validator failure (§5).
func validationInternalError(reference, description string) validation.Error {
	return validation.Error{
		ErrorType:        validation.KindActionError,
		ErrorDescription: description,
		ErrorReferences:  []validation.ErrorReference{{Key: "reference", Value: reference}},
		ErrorLevel:       validation.LevelFatal,
	}
}

// validationActionWarning builds a WARNING structured error for a driver
// exception/failure that does not indicate an internal invariant violation
// (§4.7: "a driver exception during any handler call is captured as an
// ErrorLevel::WARNING or ERROR").
func validationActionWarning(actionID, errorKind, description string) validation.Error {
	return validation.Error{
		ErrorType:        errorKind,
		ErrorDescription: description,
		ErrorReferences:  []validation.ErrorReference{{Key: "actionId", Value: actionID}},
		ErrorLevel:       validation.LevelWarning,
	}
}
