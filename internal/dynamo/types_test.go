package dynamo

import (
	"errors"
	"math"
	"testing"
)

func TestState_IsFinite(t *testing.T) {
	tests := []struct {
		name  string
		state State
		valid bool
	}{
		{"zeros", State{}, true},
		{"normal", State{1.0, 2.0, 3.0}, true},
		{"with NaN", State{1.0, math.NaN(), 0}, false},
		{"with +Inf", State{1.0, 0, math.Inf(1)}, false},
		{"with -Inf", State{math.Inf(-1), 0, 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsFinite(); got != tt.valid {
				t.Errorf("IsFinite() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestState_Arithmetic(t *testing.T) {
	a := State{1, 2, 3}
	b := State{4, 5, 6}

	if sum := a.Add(b); sum != (State{5, 7, 9}) {
		t.Errorf("Add failed: got %v", sum)
	}
	if scaled := a.Scale(2); scaled != (State{2, 4, 6}) {
		t.Errorf("Scale failed: got %v", scaled)
	}
	if n := (State{2, 3, 6}).Norm(); math.Abs(n-7) > 1e-12 {
		t.Errorf("Norm = %v, want 7", n)
	}
}

func testField() VectorField {
	return VectorField{
		Name:   "test",
		Derive: func(s State, p Params) State { return State{-p[0] * s[0], 0, 0} },
		Params: []ParamSpec{
			{Name: "k", Default: 1, Min: 0, Max: 2},
			{Name: "m", Default: 0.5, Min: -1, Max: 1},
		},
	}
}

func TestVectorField_Defaults(t *testing.T) {
	f := testField()
	p := f.Defaults()
	if len(p) != 2 || p[0] != 1 || p[1] != 0.5 {
		t.Fatalf("Defaults() = %v", p)
	}

	p[0] = 99
	if f.Defaults()[0] != 1 {
		t.Error("Defaults() shares storage between calls")
	}
}

func TestVectorField_Validate(t *testing.T) {
	f := testField()

	if err := f.Validate(Params{2, -1}); err != nil {
		t.Errorf("boundary values rejected: %v", err)
	}

	err := f.Validate(Params{2.5, 0})
	var ipe *InvalidParameterError
	if !errors.As(err, &ipe) {
		t.Fatalf("expected InvalidParameterError, got %v", err)
	}
	if ipe.Param != "k" || ipe.Max != 2 {
		t.Errorf("unexpected error detail: %+v", ipe)
	}
	if !errors.Is(err, ErrParameterBounds) {
		t.Error("InvalidParameterError should unwrap to ErrParameterBounds")
	}

	if err := f.Validate(Params{1}); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected dimension mismatch, got %v", err)
	}
}

func TestVectorField_WithOverrides(t *testing.T) {
	f := testField()

	p, err := f.WithOverrides(map[string]float64{"m": -0.25})
	if err != nil {
		t.Fatalf("overrides failed: %v", err)
	}
	if p[0] != 1 || p[1] != -0.25 {
		t.Errorf("got %v", p)
	}

	if _, err := f.WithOverrides(map[string]float64{"nope": 1}); err == nil {
		t.Error("expected error for unknown parameter")
	}
	if _, err := f.WithOverrides(map[string]float64{"k": 3}); !errors.Is(err, ErrParameterBounds) {
		t.Errorf("expected bounds error, got %v", err)
	}
}

func TestParamSpec_Clamp(t *testing.T) {
	ps := ParamSpec{Name: "a", Min: -1, Max: 1}
	tests := []struct{ in, want float64 }{
		{-5, -1}, {0.3, 0.3}, {7, 1},
	}
	for _, tt := range tests {
		if got := ps.Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNotFoundError(t *testing.T) {
	err := error(&NotFoundError{Name: "nonexistent"})
	if err.Error() != "unknown vector field: nonexistent" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, ErrNotFound) {
		t.Error("NotFoundError should unwrap to ErrNotFound")
	}
}
