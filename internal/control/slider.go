package control

import (
	"fmt"
	"math"

	"github.com/vladimirovertheworld/attractors/internal/dynamo"
)

// Slider maps positions 0..Positions onto parameter values.
type Slider struct {
	Field     string
	Spec      dynamo.ParamSpec
	Positions int
	Divisor   float64
	Offset    float64
}

// PercentSlider maps positions 0..100 onto 0..2 in steps of 0.02.
func PercentSlider(field string, spec dynamo.ParamSpec) Slider {
	return Slider{Field: field, Spec: spec, Positions: 100, Divisor: 50}
}

// FitSlider spreads positions evenly over [Min, Max].
func FitSlider(field string, spec dynamo.ParamSpec, positions int) Slider {
	s := Slider{Field: field, Spec: spec, Positions: positions, Offset: spec.Min, Divisor: 1}
	if span := spec.Max - spec.Min; span > 0 && positions > 0 {
		s.Divisor = float64(positions) / span
	}
	return s
}

// Value maps a position to a parameter value. Positions outside
// 0..Positions, and values outside the parameter's range, are rejected.
func (s Slider) Value(pos int) (float64, error) {
	if pos < 0 || pos > s.Positions {
		return 0, fmt.Errorf("%w: slider %s position %d outside [0, %d]", dynamo.ErrParameterBounds, s.Spec.Name, pos, s.Positions)
	}
	if s.Divisor == 0 {
		return 0, fmt.Errorf("%w: slider %s has zero divisor", dynamo.ErrInvalidConfig, s.Spec.Name)
	}
	v := s.Offset + float64(pos)/s.Divisor
	if !s.Spec.Contains(v) {
		return 0, &dynamo.InvalidParameterError{Field: s.Field, Param: s.Spec.Name, Value: v, Min: s.Spec.Min, Max: s.Spec.Max}
	}
	return v, nil
}

// Position returns the nearest position for v, clamped to the slider.
func (s Slider) Position(v float64) int {
	pos := int(math.Round((v - s.Offset) * s.Divisor))
	if pos < 0 {
		return 0
	}
	if pos > s.Positions {
		return s.Positions
	}
	return pos
}
