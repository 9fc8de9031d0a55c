package vdamodel

import (
	"errors"
	"fmt"
	"strconv"
)

// SerializedType is the type tag of a SerializedValue.
type SerializedType string

const (
	TypeUnspecified SerializedType = "UNSPECIFIED"
	TypeBoolean     SerializedType = "BOOLEAN"
	TypeInteger     SerializedType = "INTEGER"
	TypeFloat       SerializedType = "FLOAT"
	TypeString      SerializedType = "STRING"
)

// ErrBadSerializedValueCast is returned when a SerializedValue is compared,
// parsed, or cast against a type it was not constructed with.
var ErrBadSerializedValueCast = errors.New("BadSerializedValueCast")

// SerializedValue is a typed-string value used for action parameters and
// ParameterRange bounds. Ordering and equality are defined only between
// values of equal Type; comparing across types fails with
// ErrBadSerializedValueCast.
type SerializedValue struct {
	Type SerializedType
	Raw  string
}

// NewBoolValue constructs a BOOLEAN SerializedValue.
func NewBoolValue(b bool) SerializedValue {
	return SerializedValue{Type: TypeBoolean, Raw: strconv.FormatBool(b)}
}

// NewIntValue constructs an INTEGER SerializedValue.
func NewIntValue(i int64) SerializedValue {
	return SerializedValue{Type: TypeInteger, Raw: strconv.FormatInt(i, 10)}
}

// NewFloatValue constructs a FLOAT SerializedValue.
func NewFloatValue(f float64) SerializedValue {
	return SerializedValue{Type: TypeFloat, Raw: strconv.FormatFloat(f, 'g', -1, 64)}
}

// NewStringValue constructs a STRING SerializedValue.
func NewStringValue(s string) SerializedValue {
	return SerializedValue{Type: TypeString, Raw: s}
}

// Bool casts the value to bool.
func (v SerializedValue) Bool() (bool, error) {
	if v.Type != TypeBoolean {
		return false, ErrBadSerializedValueCast
	}
	b, err := strconv.ParseBool(v.Raw)
	if err != nil {
		return false, fmt.Errorf("parse bool %q: %w", v.Raw, err)
	}
	return b, nil
}

// Int casts the value to int64.
func (v SerializedValue) Int() (int64, error) {
	if v.Type != TypeInteger {
		return 0, ErrBadSerializedValueCast
	}
	i, err := strconv.ParseInt(v.Raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse int %q: %w", v.Raw, err)
	}
	return i, nil
}

// Float casts the value to float64.
func (v SerializedValue) Float() (float64, error) {
	if v.Type != TypeFloat {
		return 0, ErrBadSerializedValueCast
	}
	f, err := strconv.ParseFloat(v.Raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parse float %q: %w", v.Raw, err)
	}
	return f, nil
}

// String casts the value to string.
func (v SerializedValue) String() (string, error) {
	if v.Type != TypeString {
		return "", ErrBadSerializedValueCast
	}
	return v.Raw, nil
}

// Compare returns -1, 0, or 1 when v is less than, equal to, or greater than
// other. Both values must share a Type; BOOLEAN orders true > false per the
// well-definedness decision recorded in DESIGN.md (the original's asymmetric
// "other == true" comparator is not reproduced).
func (v SerializedValue) Compare(other SerializedValue) (int, error) {
	if v.Type != other.Type {
		return 0, ErrBadSerializedValueCast
	}
	switch v.Type {
	case TypeInteger:
		a, err := v.Int()
		if err != nil {
			return 0, err
		}
		b, err := other.Int()
		if err != nil {
			return 0, err
		}
		return compareOrdered(a, b), nil
	case TypeFloat:
		a, err := v.Float()
		if err != nil {
			return 0, err
		}
		b, err := other.Float()
		if err != nil {
			return 0, err
		}
		return compareOrdered(a, b), nil
	case TypeBoolean:
		a, err := v.Bool()
		if err != nil {
			return 0, err
		}
		b, err := other.Bool()
		if err != nil {
			return 0, err
		}
		return compareOrdered(boolRank(a), boolRank(b)), nil
	default: // TypeString, TypeUnspecified
		return compareOrdered(v.Raw, other.Raw), nil
	}
}

// Equal reports whether v and other compare equal. Mixed types are never
// equal and do not error — equality is a total predicate, unlike Compare.
func (v SerializedValue) Equal(other SerializedValue) bool {
	if v.Type != other.Type {
		return false
	}
	cmp, err := v.Compare(other)
	return err == nil && cmp == 0
}

// Less reports whether v < other. Panics translate to false on a type
// mismatch is avoided deliberately: callers that need to distinguish
// "unorderable" from "false" should use Compare directly.
func (v SerializedValue) Less(other SerializedValue) bool {
	cmp, err := v.Compare(other)
	return err == nil && cmp < 0
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

func compareOrdered[T int | int64 | float64 | string](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
