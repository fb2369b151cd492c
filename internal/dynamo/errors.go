package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for integration and lookup.
var (
	// ErrNotFound indicates a vector field name that was never registered.
	ErrNotFound = errors.New("dynamo: vector field not found")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrDiverged indicates the state left the finite numbers.
	ErrDiverged = errors.New("dynamo: state diverged (NaN or Inf detected)")

	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between parameters and field")

	// ErrInvalidConfig covers non-positive steps, sample counts and capacities.
	ErrInvalidConfig = errors.New("dynamo: invalid configuration")
)

type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unknown vector field: %s", e.Name)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// InvalidParameterError is returned at the control boundary for a value
// outside [Min, Max].
type InvalidParameterError struct {
	Field string
	Param string
	Value float64
	Min   float64
	Max   float64
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("%s: parameter %s=%g outside [%g, %g]", e.Field, e.Param, e.Value, e.Min, e.Max)
}

func (e *InvalidParameterError) Unwrap() error { return ErrParameterBounds }

// DivergenceError records where a trajectory stopped being finite.
type DivergenceError struct {
	Field string
	Step  int
	State State
}

func (e *DivergenceError) Error() string {
	return fmt.Sprintf("%s diverged at step %d: %v", e.Field, e.Step, e.State)
}

func (e *DivergenceError) Unwrap() error { return ErrDiverged }
