package main

import (
	"testing"

	"github.com/spf13/cobra"

	"github.com/vladimirovertheworld/attractors/internal/config"
)

func TestParseParams(t *testing.T) {
	got, err := parseParams([]string{"rho=99.96", " sigma = 10 "})
	if err != nil {
		t.Fatal(err)
	}
	if got["rho"] != 99.96 || got["sigma"] != 10 {
		t.Errorf("got %v", got)
	}

	for _, bad := range []string{"rho", "rho=abc"} {
		if _, err := parseParams([]string{bad}); err == nil {
			t.Errorf("%q accepted", bad)
		}
	}
}

func newStreamCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	preset = ""
	configFile = ""
	cmd := &cobra.Command{Use: "test"}
	addStreamFlags(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatal(err)
	}
	return cmd
}

func TestLoadConfigPresetThenFlags(t *testing.T) {
	cmd := newStreamCmd(t, "--preset", "periodic", "--steps", "25", "--param", "beta=2")
	cfg, err := loadConfig(cmd, "Lorenz")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Field != "lorenz" {
		t.Errorf("field = %s", cfg.Field)
	}
	if cfg.Dt != 0.005 {
		t.Errorf("dt = %g, want preset 0.005", cfg.Dt)
	}
	if cfg.StepsPerTick != 25 {
		t.Errorf("steps = %d, want flag 25", cfg.StepsPerTick)
	}
	if cfg.Params["rho"] != 99.96 || cfg.Params["beta"] != 2 {
		t.Errorf("params = %v", cfg.Params)
	}
}

func TestLoadConfigUnknownPreset(t *testing.T) {
	cmd := newStreamCmd(t, "--preset", "nope")
	if _, err := loadConfig(cmd, "lorenz"); err == nil {
		t.Error("unknown preset accepted")
	}
}

func TestNewSessionAppliesOverrides(t *testing.T) {
	cmd := newStreamCmd(t, "--param", "rho=14", "--mode", "scatter", "--capacity", "50")
	cfg, err := loadConfig(cmd, "lorenz")
	if err != nil {
		t.Fatal(err)
	}
	cfg.LogLevel = "none"
	s, err := newSession(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Params()[1]; got != 14 {
		t.Errorf("rho = %g", got)
	}
	if p := s.Config().Policy; !p.IsCapped() || p.Capacity() != 50 {
		t.Errorf("policy = %v", p)
	}

	cmd = newStreamCmd(t, "--param", "rho=1000")
	cfg, _ = loadConfig(cmd, "lorenz")
	if _, err := newSession(cfg); err == nil {
		t.Error("out-of-range parameter accepted")
	}
}

func TestLoadConfigBatchFlags(t *testing.T) {
	preset = ""
	configFile = ""
	tests := []struct {
		name    string
		args    []string
		samples int
		t0      float64
		tMax    float64
	}{
		{"defaults", nil, config.DefaultSamples, 0, config.DefaultTMax},
		{"set", []string{"--samples", "42", "--t0", "1", "--span", "7"}, 42, 1, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{Use: "run"}
			addBatchFlags(cmd)
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatal(err)
			}
			cfg, err := loadConfig(cmd, "lorenz")
			if err != nil {
				t.Fatal(err)
			}
			if cfg.Samples != tt.samples || cfg.T0 != tt.t0 || cfg.TMax != tt.tMax {
				t.Errorf("samples %d t0 %g tmax %g", cfg.Samples, cfg.T0, cfg.TMax)
			}
		})
	}
}

func TestLoadConfigRejectsBadEnv(t *testing.T) {
	t.Setenv("ATTRACTORS_DT", "fast")
	cmd := newStreamCmd(t)
	if _, err := loadConfig(cmd, "lorenz"); err == nil {
		t.Error("unparseable ATTRACTORS_DT accepted")
	}
}
