package experiment

import (
	"errors"
	"testing"

	"github.com/vladimirovertheworld/attractors/internal/dynamo"
)

func constant(s dynamo.State, p dynamo.Params) dynamo.State {
	return dynamo.State{1, 0, 0}
}

func TestRegisterAndLookup(t *testing.T) {
	r := NewRegistry()
	specs := []dynamo.ParamSpec{{Name: "k", Default: 1, Min: 0, Max: 2}}
	if err := r.Register("Drift", constant, specs, WithInitial(dynamo.State{1, 2, 3}), WithDescription("moves along x")); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"drift", "DRIFT", " Drift "} {
		f, err := r.Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", name, err)
		}
		if f.Initial != (dynamo.State{1, 2, 3}) {
			t.Errorf("initial = %v", f.Initial)
		}
		if f.Description != "moves along x" {
			t.Errorf("description = %q", f.Description)
		}
	}

	specs[0].Default = 5
	f, _ := r.Lookup("drift")
	if f.Params[0].Default != 1 {
		t.Error("registry aliases caller's spec slice")
	}
}

func TestRegisterRejects(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("a", constant, nil); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		derive dynamo.Derivative
		specs  []dynamo.ParamSpec
	}{
		{"", constant, nil},
		{"A", constant, nil},
		{"nil-derive", nil, nil},
		{"bad-default", constant, []dynamo.ParamSpec{{Name: "k", Default: 3, Min: 0, Max: 2}}},
	}
	for _, tt := range tests {
		if err := r.Register(tt.name, tt.derive, tt.specs); err == nil {
			t.Errorf("Register(%q) succeeded, want error", tt.name)
		}
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Len())
	}
}

func TestLookupNotFound(t *testing.T) {
	_, err := Default().Lookup("nonexistent")
	var nf *dynamo.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("err = %v, want *NotFoundError", err)
	}
	if nf.Name != "nonexistent" {
		t.Errorf("Name = %q", nf.Name)
	}
	if !errors.Is(err, dynamo.ErrNotFound) {
		t.Error("error does not wrap ErrNotFound")
	}
}

func TestNamesKeepRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	want := []string{"zeta", "alpha", "mid"}
	for _, n := range want {
		if err := r.Register(n, constant, nil); err != nil {
			t.Fatal(err)
		}
	}
	got := r.Names()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Names = %v, want %v", got, want)
		}
	}
	got[0] = "mutated"
	if r.Names()[0] != "zeta" {
		t.Error("Names exposes internal slice")
	}
}

func TestDefaultRegistry(t *testing.T) {
	names := Default().Names()
	if len(names) != 20 {
		t.Fatalf("default registry has %d fields, want 20", len(names))
	}
	if names[0] != "lorenz" {
		t.Errorf("first field = %s, want lorenz", names[0])
	}
	if Default() != Default() {
		t.Error("Default returned different registries")
	}
	for _, name := range names {
		f, err := Default().Lookup(name)
		if err != nil {
			t.Errorf("Lookup(%s): %v", name, err)
			continue
		}
		if f.Name != name {
			t.Errorf("Lookup(%s).Name = %s", name, f.Name)
		}
	}
}
