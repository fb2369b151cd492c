package sim

import (
	"errors"
	"testing"

	"github.com/vladimirovertheworld/attractors/internal/dynamo"
	"github.com/vladimirovertheworld/attractors/internal/trajectory"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		valid bool
	}{
		{"default", DefaultConfig(), true},
		{"scatter", ScatterConfig(), true},
		{"zero dt", Config{Dt: 0, StepsPerTick: 1}, false},
		{"negative dt", Config{Dt: -0.01, StepsPerTick: 1}, false},
		{"no steps", Config{Dt: 0.01}, false},
		{"zero capacity", Config{Dt: 0.01, StepsPerTick: 1, Policy: trajectory.Capped(0)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.valid && err != nil {
				t.Errorf("Validate() = %v", err)
			}
			if !tt.valid && !errors.Is(err, dynamo.ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestParseDivergencePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    DivergencePolicy
		wantErr bool
	}{
		{"", SkipDiverged, false},
		{"skip", SkipDiverged, false},
		{"HALT", Halt, false},
		{"explode", SkipDiverged, true},
	}
	for _, tt := range tests {
		got, err := ParseDivergencePolicy(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseDivergencePolicy(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestStatusString(t *testing.T) {
	if Idle.String() != "idle" || Running.String() != "running" {
		t.Error("unexpected status names")
	}
}
