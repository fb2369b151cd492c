package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/vladimirovertheworld/attractors/internal/control"
	"github.com/vladimirovertheworld/attractors/internal/dynamo"
	"github.com/vladimirovertheworld/attractors/internal/experiment"
	"github.com/vladimirovertheworld/attractors/internal/sim"
	"github.com/vladimirovertheworld/attractors/internal/trajectory"
)

const (
	DefaultField        = "lorenz"
	DefaultDt           = 0.01
	DefaultStepsPerTick = 10
	DefaultCapacity     = 1000
	DefaultTickMillis   = 50
	DefaultSamples      = 10000
	DefaultTMax         = 50.0
	DefaultDataDir      = "data"
)

const (
	ModePolyline = "polyline"
	ModeScatter  = "scatter"
)

// EnvPrefix is prepended to every environment override, e.g.
// ATTRACTORS_FIELD or ATTRACTORS_STEPS_PER_TICK.
const EnvPrefix = "ATTRACTORS"

type Config struct {
	Field        string             `yaml:"field"`
	Mode         string             `yaml:"mode"`
	Dt           float64            `yaml:"dt"`
	StepsPerTick int                `yaml:"steps_per_tick"`
	Capacity     int                `yaml:"capacity"`
	OnDivergence string             `yaml:"on_divergence"`
	TickMillis   int                `yaml:"tick_ms"`
	Samples      int                `yaml:"samples"`
	T0           float64            `yaml:"t0"`
	TMax         float64            `yaml:"t_max"`
	Params       map[string]float64 `yaml:"params,omitempty"`
	Initial      []float64          `yaml:"initial,omitempty"`
	Slider       SliderConfig       `yaml:"slider"`
	Theme        string             `yaml:"theme"`
	LogLevel     string             `yaml:"log_level"`
	DataDir      string             `yaml:"data_dir"`
}

// SliderConfig is the linear position-to-value mapping of parameter
// controls. A zero Divisor spreads Positions over each parameter's range.
type SliderConfig struct {
	Positions int     `yaml:"positions"`
	Divisor   float64 `yaml:"divisor"`
	Offset    float64 `yaml:"offset"`
}

func DefaultConfig() *Config {
	return &Config{
		Field:        DefaultField,
		Mode:         ModePolyline,
		Dt:           DefaultDt,
		StepsPerTick: DefaultStepsPerTick,
		Capacity:     DefaultCapacity,
		OnDivergence: "skip",
		TickMillis:   DefaultTickMillis,
		Samples:      DefaultSamples,
		TMax:         DefaultTMax,
		Slider:       SliderConfig{Positions: 100},
		Theme:        "neon",
		LogLevel:     "info",
		DataDir:      DefaultDataDir,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides fields from ATTRACTORS_* environment variables.
// Numeric variables that do not parse are reported and leave c unchanged.
func (c *Config) ApplyEnv() error {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range []string{"field", "mode", "dt", "steps_per_tick", "capacity", "on_divergence", "tick_ms", "samples", "theme", "log_level", "data_dir"} {
		if err := v.BindEnv(key); err != nil {
			return err
		}
	}

	next := *c
	if v.IsSet("field") {
		next.Field = v.GetString("field")
	}
	if v.IsSet("mode") {
		next.Mode = v.GetString("mode")
	}
	if v.IsSet("dt") {
		dt, err := cast.ToFloat64E(v.Get("dt"))
		if err != nil {
			return envError("dt", err)
		}
		next.Dt = dt
	}
	ints := []struct {
		key string
		dst *int
	}{
		{"steps_per_tick", &next.StepsPerTick},
		{"capacity", &next.Capacity},
		{"tick_ms", &next.TickMillis},
		{"samples", &next.Samples},
	}
	for _, in := range ints {
		if !v.IsSet(in.key) {
			continue
		}
		n, err := cast.ToIntE(v.Get(in.key))
		if err != nil {
			return envError(in.key, err)
		}
		*in.dst = n
	}
	if v.IsSet("on_divergence") {
		next.OnDivergence = v.GetString("on_divergence")
	}
	if v.IsSet("theme") {
		next.Theme = v.GetString("theme")
	}
	if v.IsSet("log_level") {
		next.LogLevel = v.GetString("log_level")
	}
	if v.IsSet("data_dir") {
		next.DataDir = v.GetString("data_dir")
	}
	*c = next
	return nil
}

func envError(key string, err error) error {
	return fmt.Errorf("%w: %s_%s: %v", dynamo.ErrInvalidConfig, EnvPrefix, strings.ToUpper(key), err)
}

// SessionConfig translates the streaming settings.
func (c *Config) SessionConfig() (sim.Config, error) {
	onDiv, err := sim.ParseDivergencePolicy(c.OnDivergence)
	if err != nil {
		return sim.Config{}, err
	}
	cfg := sim.Config{Dt: c.Dt, StepsPerTick: c.StepsPerTick, OnDivergence: onDiv}
	switch strings.ToLower(c.Mode) {
	case "", ModePolyline:
		cfg.Policy = trajectory.Unbounded()
	case ModeScatter:
		cfg.Policy = trajectory.Capped(c.Capacity)
	default:
		return sim.Config{}, fmt.Errorf("%w: mode %q", dynamo.ErrInvalidConfig, c.Mode)
	}
	return cfg, cfg.Validate()
}

// ExperimentConfig translates the batch settings.
func (c *Config) ExperimentConfig() (experiment.Config, error) {
	cfg := experiment.Config{
		Field:   c.Field,
		Params:  c.Params,
		Samples: c.Samples,
		T0:      c.T0,
		TMax:    c.TMax,
	}
	x0, err := c.InitialState()
	if err != nil {
		return experiment.Config{}, err
	}
	cfg.Initial = x0
	return cfg, nil
}

// InitialState returns the configured starting point, or nil to use the
// field's own.
func (c *Config) InitialState() (*dynamo.State, error) {
	if len(c.Initial) == 0 {
		return nil, nil
	}
	if len(c.Initial) != 3 {
		return nil, fmt.Errorf("%w: initial condition needs 3 values, got %d", dynamo.ErrDimensionMismatch, len(c.Initial))
	}
	s := dynamo.State{c.Initial[0], c.Initial[1], c.Initial[2]}
	return &s, nil
}

// SliderFor builds the control for one parameter of field.
func (c *Config) SliderFor(field string, spec dynamo.ParamSpec) control.Slider {
	positions := c.Slider.Positions
	if positions < 1 {
		positions = 100
	}
	if c.Slider.Divisor == 0 {
		return control.FitSlider(field, spec, positions)
	}
	return control.Slider{Field: field, Spec: spec, Positions: positions, Divisor: c.Slider.Divisor, Offset: c.Slider.Offset}
}
