// Package automation runs scripted batches: YAML scenarios, parameter
// sweeps and perturbed-start trials.
package automation

import (
	"context"
	"fmt"
	"math/rand"
	"os"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"gopkg.in/yaml.v3"

	"github.com/vladimirovertheworld/attractors/internal/dynamo"
	"github.com/vladimirovertheworld/attractors/internal/experiment"
	"github.com/vladimirovertheworld/attractors/internal/metrics"
	"github.com/vladimirovertheworld/attractors/internal/sim"
)

// Scenario is a scripted sequence of batch runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

type ScenarioStep struct {
	Field   string             `yaml:"field"`
	Params  map[string]float64 `yaml:"params"`
	Samples int                `yaml:"samples"`
	T0      float64            `yaml:"t0"`
	TMax    float64            `yaml:"t_max"`
	Initial []float64          `yaml:"initial"`
	SaveAs  string             `yaml:"save_as"`
}

// Config fills unset sampling from the defaults of a batch run.
func (s ScenarioStep) Config() (experiment.Config, error) {
	cfg := experiment.DefaultConfig(s.Field)
	cfg.Params = s.Params
	if s.Samples != 0 {
		cfg.Samples = s.Samples
	}
	if s.TMax != 0 {
		cfg.T0, cfg.TMax = s.T0, s.TMax
	}
	switch len(s.Initial) {
	case 0:
	case 3:
		x0 := dynamo.State{s.Initial[0], s.Initial[1], s.Initial[2]}
		cfg.Initial = &x0
	default:
		return cfg, fmt.Errorf("%w: initial needs 3 values, got %d", dynamo.ErrDimensionMismatch, len(s.Initial))
	}
	return cfg, nil
}

type StepResult struct {
	Step   ScenarioStep
	Result *experiment.Result
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("%w: scenario %q has no steps", dynamo.ErrInvalidConfig, scenario.Name)
	}
	return &scenario, nil
}

// RunScenario executes the steps in order and stops at the first error,
// returning the results so far.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, logger kitlog.Logger) ([]StepResult, error) {
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		level.Info(logger).Log("msg", "scenario step", "step", i+1, "of", len(scenario.Steps), "field", step.Field)

		cfg, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		res, err := experiment.New(cfg, registry).Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		if res.Diverged >= 0 {
			level.Warn(logger).Log("msg", "step diverged", "step", i+1, "at", res.Diverged)
		}
		results = append(results, StepResult{Step: step, Result: res})
	}
	return results, nil
}

// ParameterSweep varies one parameter evenly over [Min, Max].
type ParameterSweep struct {
	Field   string
	Param   string
	Min     float64
	Max     float64
	Count   int
	Samples int
	TMax    float64
	Radius  float64
}

type SweepResult struct {
	ParamValue  float64
	FinalState  dynamo.State
	Diverged    int
	Boundedness float64
	Extent      metrics.Extent
	Err         error
}

// RunSweep runs one batch per parameter value on the ensemble's workers.
func RunSweep(ctx context.Context, sweep *ParameterSweep, registry *experiment.Registry) ([]SweepResult, error) {
	if sweep.Count < 2 {
		return nil, fmt.Errorf("%w: sweep needs at least 2 values", dynamo.ErrInvalidConfig)
	}
	field, err := lookup(registry, sweep.Field)
	if err != nil {
		return nil, err
	}
	if _, ok := field.ParamIndex(sweep.Param); !ok {
		return nil, fmt.Errorf("%s: unknown parameter %q", field.Name, sweep.Param)
	}

	stepSize := (sweep.Max - sweep.Min) / float64(sweep.Count-1)
	cfgs := make([]experiment.Config, sweep.Count)
	for i := range cfgs {
		cfg := experiment.DefaultConfig(sweep.Field)
		if sweep.Samples > 0 {
			cfg.Samples = sweep.Samples
		}
		if sweep.TMax > 0 {
			cfg.TMax = sweep.TMax
		}
		cfg.Params = map[string]float64{sweep.Param: sweep.Min + float64(i)*stepSize}
		cfgs[i] = cfg
	}

	outcomes, err := sim.NewEnsemble(registry, 0).Run(ctx, cfgs)
	if err != nil {
		return nil, err
	}

	radius := sweep.Radius
	if radius <= 0 {
		radius = 1e3
	}
	results := make([]SweepResult, len(outcomes))
	for i, o := range outcomes {
		results[i] = SweepResult{ParamValue: cfgs[i].Params[sweep.Param], Err: o.Err, Diverged: -1}
		if o.Err != nil {
			continue
		}
		summarize(&results[i], o.Result, radius)
	}
	return results, nil
}

func summarize(r *SweepResult, res *experiment.Result, radius float64) {
	finite := res.Finite()
	r.Diverged = res.Diverged
	r.Boundedness = metrics.Evaluate(res.States, metrics.NewBoundedness(radius))["boundedness"]
	if len(finite) > 0 {
		r.FinalState = finite[len(finite)-1]
	}
	r.Extent, _ = metrics.ExtentOf(finite)
}

// MonteCarloConfig perturbs the initial condition of a field at random.
type MonteCarloConfig struct {
	Field        string
	Perturbation float64
	NumTrials    int
	Samples      int
	TMax         float64
	Radius       float64
	Seed         int64
}

type MonteCarloResult struct {
	TrialID    int
	InitState  dynamo.State
	FinalState dynamo.State
	Stable     bool // stayed finite and within Radius
}

func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, registry *experiment.Registry) ([]MonteCarloResult, error) {
	field, err := lookup(registry, cfg.Field)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	cfgs := make([]experiment.Config, cfg.NumTrials)
	for trial := range cfgs {
		var x0 dynamo.State
		for i, v := range field.Initial {
			x0[i] = v + (rng.Float64()-0.5)*2*cfg.Perturbation
		}
		c := experiment.DefaultConfig(cfg.Field)
		if cfg.Samples > 0 {
			c.Samples = cfg.Samples
		}
		if cfg.TMax > 0 {
			c.TMax = cfg.TMax
		}
		c.Initial = &x0
		cfgs[trial] = c
	}

	outcomes, err := sim.NewEnsemble(registry, 0).Run(ctx, cfgs)
	if err != nil {
		return nil, err
	}

	radius := cfg.Radius
	if radius <= 0 {
		radius = 1e6
	}
	results := make([]MonteCarloResult, 0, len(outcomes))
	for trial, o := range outcomes {
		if o.Err != nil {
			return nil, fmt.Errorf("trial %d: %w", trial, o.Err)
		}
		states := o.Result.States
		final := states[len(states)-1]
		results = append(results, MonteCarloResult{
			TrialID:    trial,
			InitState:  *cfgs[trial].Initial,
			FinalState: final,
			Stable:     o.Result.Diverged < 0 && final.Norm() <= radius,
		})
	}
	return results, nil
}

// MonteCarloStats counts stable and unstable trials.
func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}

func lookup(registry *experiment.Registry, name string) (dynamo.VectorField, error) {
	if registry == nil {
		registry = experiment.Default()
	}
	return registry.Lookup(name)
}
