package experiment

import (
	"context"
	"fmt"
	"time"

	"github.com/vladimirovertheworld/attractors/internal/dynamo"
	"github.com/vladimirovertheworld/attractors/internal/integrators"
)

// Config describes one batch integration.
type Config struct {
	Field   string
	Params  map[string]float64
	Samples int
	T0      float64
	TMax    float64
	Initial *dynamo.State
}

// DefaultConfig returns the standard batch sampling:
// 10,000 samples over [0, 50].
func DefaultConfig(field string) Config {
	return Config{
		Field:   field,
		Samples: 10000,
		T0:      0,
		TMax:    50,
	}
}

// Result holds the sampled trajectory of a batch run.
type Result struct {
	Field    string
	Params   map[string]float64
	Initial  dynamo.State
	Dt       float64
	States   []dynamo.State
	Times    []float64
	Diverged int // index of the first non-finite state, -1 if none
	Elapsed  time.Duration
}

type Experiment struct {
	cfg        Config
	registry   *Registry
	integrator *integrators.Euler
}

// New binds a config to a registry. A nil registry means Default().
func New(cfg Config, registry *Registry) *Experiment {
	if registry == nil {
		registry = Default()
	}
	return &Experiment{
		cfg:        cfg,
		registry:   registry,
		integrator: integrators.NewEuler(),
	}
}

func (e *Experiment) Config() Config {
	return e.cfg
}

// Run resolves the field, validates parameters and integrates.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	field, err := e.registry.Lookup(e.cfg.Field)
	if err != nil {
		return nil, err
	}
	p, err := field.WithOverrides(e.cfg.Params)
	if err != nil {
		return nil, err
	}
	x0 := field.Initial
	if e.cfg.Initial != nil {
		x0 = *e.cfg.Initial
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	states, err := e.integrator.Batch(field, p, x0, e.cfg.Samples, e.cfg.T0, e.cfg.TMax)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field.Name, err)
	}

	return &Result{
		Field:    field.Name,
		Params:   field.ParamMap(p),
		Initial:  x0,
		Dt:       (e.cfg.TMax - e.cfg.T0) / float64(e.cfg.Samples),
		States:   states,
		Times:    integrators.Times(e.cfg.Samples, e.cfg.T0, e.cfg.TMax),
		Diverged: integrators.FirstNonFinite(states),
		Elapsed:  time.Since(start),
	}, nil
}

// Err reports divergence as a *dynamo.DivergenceError.
func (r *Result) Err() error {
	if r.Diverged < 0 {
		return nil
	}
	return &dynamo.DivergenceError{Field: r.Field, Step: r.Diverged, State: r.States[r.Diverged]}
}

// Finite returns the states up to the first non-finite one.
func (r *Result) Finite() []dynamo.State {
	if r.Diverged < 0 {
		return r.States
	}
	return r.States[:r.Diverged]
}
