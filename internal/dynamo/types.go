package dynamo

import (
	"fmt"
	"math"
)

// State is a point in phase space.
type State [3]float64

func (s State) IsFinite() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	return math.Sqrt(s[0]*s[0] + s[1]*s[1] + s[2]*s[2])
}

func (s State) Add(other State) State {
	return State{s[0] + other[0], s[1] + other[1], s[2] + other[2]}
}

func (s State) Scale(factor float64) State {
	return State{s[0] * factor, s[1] * factor, s[2] * factor}
}

func (s State) String() string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", s[0], s[1], s[2])
}

// Params holds parameter values in the order of a field's ParamSpec list.
type Params []float64

func (p Params) Clone() Params {
	c := make(Params, len(p))
	copy(c, p)
	return c
}

// Derivative maps a state and parameters to dX/dt. It must not retain or
// modify p.
type Derivative func(s State, p Params) State

// ParamSpec describes one tunable parameter of a vector field.
type ParamSpec struct {
	Name    string  `yaml:"name" json:"name"`
	Default float64 `yaml:"default" json:"default"`
	Min     float64 `yaml:"min" json:"min"`
	Max     float64 `yaml:"max" json:"max"`
}

func (ps ParamSpec) Contains(v float64) bool {
	return v >= ps.Min && v <= ps.Max
}

func (ps ParamSpec) Clamp(v float64) float64 {
	return math.Max(ps.Min, math.Min(ps.Max, v))
}

// VectorField is an immutable, named dynamical system.
type VectorField struct {
	Name        string
	Title       string
	Derive      Derivative
	Params      []ParamSpec
	Initial     State
	Description string
	Link        string
}

// Defaults returns a fresh parameter vector holding every default value.
func (f VectorField) Defaults() Params {
	p := make(Params, len(f.Params))
	for i, spec := range f.Params {
		p[i] = spec.Default
	}
	return p
}

func (f VectorField) ParamIndex(name string) (int, bool) {
	for i, spec := range f.Params {
		if spec.Name == name {
			return i, true
		}
	}
	return -1, false
}

// Validate checks arity and that every value lies in its declared range.
func (f VectorField) Validate(p Params) error {
	if len(p) != len(f.Params) {
		return fmt.Errorf("%w: %s expects %d parameters, got %d", ErrDimensionMismatch, f.Name, len(f.Params), len(p))
	}
	for i, spec := range f.Params {
		if !spec.Contains(p[i]) {
			return &InvalidParameterError{Field: f.Name, Param: spec.Name, Value: p[i], Min: spec.Min, Max: spec.Max}
		}
	}
	return nil
}

// WithOverrides returns the defaults with named values replaced. Unknown
// names and out-of-range values are rejected.
func (f VectorField) WithOverrides(overrides map[string]float64) (Params, error) {
	p := f.Defaults()
	for name, v := range overrides {
		i, ok := f.ParamIndex(name)
		if !ok {
			return nil, fmt.Errorf("%s: unknown parameter %q", f.Name, name)
		}
		p[i] = v
	}
	if err := f.Validate(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (f VectorField) ParamMap(p Params) map[string]float64 {
	m := make(map[string]float64, len(f.Params))
	for i, spec := range f.Params {
		if i < len(p) {
			m[spec.Name] = p[i]
		}
	}
	return m
}
