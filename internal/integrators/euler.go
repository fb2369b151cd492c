package integrators

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/vladimirovertheworld/attractors/internal/dynamo"
)

// Euler is the explicit forward Euler method: x' = x + dt*f(x, p).
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

// Step advances s by one step of size dt. Neither s nor p is modified and
// the result is not clamped; a non-finite result is returned as is.
func (e *Euler) Step(field dynamo.VectorField, s dynamo.State, p dynamo.Params, dt float64) dynamo.State {
	d := field.Derive(s, p)
	var next dynamo.State
	floats.AddScaledTo(next[:], s[:], dt, d[:])
	return next
}

// StepN takes k steps from s, calling fn with every new state, and returns
// the last one. fn may be nil.
func (e *Euler) StepN(field dynamo.VectorField, s dynamo.State, p dynamo.Params, dt float64, k int, fn func(i int, s dynamo.State)) dynamo.State {
	for i := 0; i < k; i++ {
		s = e.Step(field, s, p, dt)
		if fn != nil {
			fn(i, s)
		}
	}
	return s
}

// Batch integrates n states over [t0, tMax] with dt = (tMax-t0)/n. The
// first state is x0 itself.
func (e *Euler) Batch(field dynamo.VectorField, p dynamo.Params, x0 dynamo.State, n int, t0, tMax float64) ([]dynamo.State, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: sample count %d", dynamo.ErrInvalidConfig, n)
	}
	if !(tMax > t0) {
		return nil, fmt.Errorf("%w: empty time span [%g, %g]", dynamo.ErrInvalidConfig, t0, tMax)
	}
	dt := (tMax - t0) / float64(n)

	states := make([]dynamo.State, n)
	states[0] = x0
	for i := 1; i < n; i++ {
		states[i] = e.Step(field, states[i-1], p, dt)
	}
	return states, nil
}

// Times returns the sample times matching a Batch call with the same
// arguments.
func Times(n int, t0, tMax float64) []float64 {
	if n < 1 {
		return nil
	}
	dt := (tMax - t0) / float64(n)
	ts := make([]float64, n)
	for i := range ts {
		ts[i] = t0 + float64(i)*dt
	}
	return ts
}

// FirstNonFinite returns the index of the first state holding NaN or Inf,
// or -1.
func FirstNonFinite(states []dynamo.State) int {
	for i, s := range states {
		if !s.IsFinite() {
			return i
		}
	}
	return -1
}
