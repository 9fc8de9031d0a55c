package validation

// Validator is a named callable mapping an input (an Order or an Action) to
// a list of structured errors. Composition is list-concatenation: Pipeline
// runs every validator and appends their results in order.
type Validator[T any] struct {
	Name string
	Func func(T) []Error
}

// Run invokes the validator's function.
func (v Validator[T]) Run(input T) []Error {
	return v.Func(input)
}

// Pipeline is an ordered set of validators over the same input type. Errors
// from every validator are concatenated; a non-empty result means the
// input should be rejected and the offending order/action left unchanged
// in the engine.
type Pipeline[T any] struct {
	validators []Validator[T]
}

// NewPipeline constructs a Pipeline running validators in the given order.
func NewPipeline[T any](validators ...Validator[T]) Pipeline[T] {
	return Pipeline[T]{validators: validators}
}

// Validate runs every validator in order and concatenates their errors.
func (p Pipeline[T]) Validate(input T) []Error {
	var errs []Error
	for _, v := range p.validators {
		errs = append(errs, v.Run(input)...)
	}
	return errs
}
