package physics

import (
	"strings"
	"testing"

	"github.com/vladimirovertheworld/attractors/internal/dynamo"
)

func TestCatalogNamesUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, f := range Catalog() {
		if f.Name == "" || f.Title == "" {
			t.Errorf("field %+v missing name or title", f.Name)
		}
		if f.Name != strings.ToLower(f.Name) {
			t.Errorf("%s: name should be a lowercase slug", f.Name)
		}
		if seen[f.Name] {
			t.Errorf("duplicate field %s", f.Name)
		}
		seen[f.Name] = true
	}
	if len(seen) != 20 {
		t.Errorf("catalog size = %d, want 20", len(seen))
	}
}

func TestDefaultsWithinBounds(t *testing.T) {
	for _, f := range Catalog() {
		if err := f.Validate(f.Defaults()); err != nil {
			t.Errorf("%s: %v", f.Name, err)
		}
		for _, spec := range f.Params {
			if spec.Min > spec.Max {
				t.Errorf("%s.%s: min %g > max %g", f.Name, spec.Name, spec.Min, spec.Max)
			}
		}
	}
}

func TestFieldsStayFinite(t *testing.T) {
	const (
		dt    = 0.01
		steps = 1000
	)
	for _, f := range Catalog() {
		t.Run(f.Name, func(t *testing.T) {
			p := f.Defaults()
			s := f.Initial
			for i := 0; i < steps; i++ {
				d := f.Derive(s, p)
				s = dynamo.State{s[0] + dt*d[0], s[1] + dt*d[1], s[2] + dt*d[2]}
				if !s.IsFinite() {
					t.Fatalf("diverged at step %d", i+1)
				}
			}
		})
	}
}

func TestLorenzDerivative(t *testing.T) {
	f := Lorenz()
	d := f.Derive(dynamo.State{1, 1, 1}, f.Defaults())
	// sigma(y-x)=0, x(rho-z)-y=26, xy-beta*z=1-8/3
	want := dynamo.State{0, 26, 1 - 8.0/3.0}
	for i := range want {
		if diff := d[i] - want[i]; diff > 1e-12 || diff < -1e-12 {
			t.Errorf("d[%d] = %v, want %v", i, d[i], want[i])
		}
	}
}

func TestDeriveDoesNotModifyParams(t *testing.T) {
	for _, f := range Catalog() {
		p := f.Defaults()
		before := p.Clone()
		f.Derive(f.Initial, p)
		for i := range p {
			if p[i] != before[i] {
				t.Errorf("%s: params mutated", f.Name)
			}
		}
	}
}
