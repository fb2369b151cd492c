package control

import (
	"fmt"

	"github.com/vladimirovertheworld/attractors/internal/dynamo"
)

// Panel holds the current value of every parameter of one field.
type Panel struct {
	field  dynamo.VectorField
	values dynamo.Params
}

// NewPanel starts every control at its default.
func NewPanel(field dynamo.VectorField) *Panel {
	return &Panel{field: field, values: field.Defaults()}
}

func (p *Panel) Field() dynamo.VectorField { return p.field }

func (p *Panel) Len() int { return len(p.values) }

// Spec returns the spec of the i-th parameter.
func (p *Panel) Spec(i int) dynamo.ParamSpec { return p.field.Params[i] }

// Get returns the current value of a parameter.
func (p *Panel) Get(name string) (float64, error) {
	i, ok := p.field.ParamIndex(name)
	if !ok {
		return 0, fmt.Errorf("%s: unknown parameter %q", p.field.Name, name)
	}
	return p.values[i], nil
}

// Set stores v if it lies in the parameter's range.
func (p *Panel) Set(name string, v float64) error {
	i, ok := p.field.ParamIndex(name)
	if !ok {
		return fmt.Errorf("%s: unknown parameter %q", p.field.Name, name)
	}
	spec := p.field.Params[i]
	if !spec.Contains(v) {
		return &dynamo.InvalidParameterError{Field: p.field.Name, Param: name, Value: v, Min: spec.Min, Max: spec.Max}
	}
	p.values[i] = v
	return nil
}

// SetPosition moves a parameter through a slider.
func (p *Panel) SetPosition(s Slider, pos int) error {
	v, err := s.Value(pos)
	if err != nil {
		return err
	}
	return p.Set(s.Spec.Name, v)
}

// Nudge moves the i-th parameter by fraction of its range, clamped to
// [Min, Max], and returns the new value.
func (p *Panel) Nudge(i int, fraction float64) float64 {
	spec := p.field.Params[i]
	p.values[i] = spec.Clamp(p.values[i] + fraction*(spec.Max-spec.Min))
	return p.values[i]
}

// Apply sets several values at once. Nothing changes if any is invalid.
func (p *Panel) Apply(values map[string]float64) error {
	next := p.values.Clone()
	for name, v := range values {
		i, ok := p.field.ParamIndex(name)
		if !ok {
			return fmt.Errorf("%s: unknown parameter %q", p.field.Name, name)
		}
		next[i] = v
	}
	if err := p.field.Validate(next); err != nil {
		return err
	}
	p.values = next
	return nil
}

func (p *Panel) Reset() {
	p.values = p.field.Defaults()
}

// Values returns a copy of the current parameters.
func (p *Panel) Values() dynamo.Params {
	return p.values.Clone()
}
