package vdamodel

// ParameterRange is a declarative range/enum constraint for one action
// parameter key. Either OrdinalMin/OrdinalMax (numeric bounds) or ValueSet
// (enumeration) may be set; both may be nil to declare an unconstrained
// parameter of a given key.
type ParameterRange struct {
	Key        string
	OrdinalMin *SerializedValue
	OrdinalMax *SerializedValue
	ValueSet   map[string]struct{}
}

// Satisfies reports whether value meets this range's constraints. A
// ValueSet match is checked against the raw string representation; ordinal
// bounds are checked via SerializedValue.Compare and therefore require value
// to share a type with the bound.
func (pr ParameterRange) Satisfies(value SerializedValue) bool {
	if pr.ValueSet != nil {
		_, ok := pr.ValueSet[value.Raw]
		return ok
	}
	if pr.OrdinalMin != nil {
		cmp, err := value.Compare(*pr.OrdinalMin)
		if err != nil || cmp < 0 {
			return false
		}
	}
	if pr.OrdinalMax != nil {
		cmp, err := value.Compare(*pr.OrdinalMax)
		if err != nil || cmp > 0 {
			return false
		}
	}
	return true
}

// ActionDeclaration declares one action type an AGV supports, used by
// pkg/validation's ActionDeclaredValidator to admission-control incoming
// actions before they ever reach the order engine.
type ActionDeclaration struct {
	ActionType         string
	MandatoryParameter map[string]ParameterRange
	OptionalParameter  map[string]ParameterRange
	BlockingTypes      map[BlockingType]struct{}
	Instant            bool
	Node               bool
	Edge               bool
}

// AllowsBlocking reports whether bt is among the declared allowed blocking
// types.
func (d ActionDeclaration) AllowsBlocking(bt BlockingType) bool {
	_, ok := d.BlockingTypes[bt]
	return ok
}

// ParameterDeclaration looks up a parameter's range among mandatory and
// optional declarations, reporting whether it was found and whether it was
// mandatory.
func (d ActionDeclaration) ParameterDeclaration(key string) (pr ParameterRange, mandatory, found bool) {
	if pr, ok := d.MandatoryParameter[key]; ok {
		return pr, true, true
	}
	if pr, ok := d.OptionalParameter[key]; ok {
		return pr, false, true
	}
	return ParameterRange{}, false, false
}
