package automation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vladimirovertheworld/attractors/internal/dynamo"
	"github.com/vladimirovertheworld/attractors/internal/experiment"
)

const scenarioYAML = `
name: tour
description: two fields back to back
steps:
  - field: lorenz
    samples: 500
    t_max: 5
    save_as: lorenz-short
  - field: rossler
    params:
      c: 4
    samples: 200
    t_max: 2
    initial: [1, 0, 0]
`

func TestLoadAndRunScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tour.yaml")
	if err := os.WriteFile(path, []byte(scenarioYAML), 0644); err != nil {
		t.Fatal(err)
	}
	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatal(err)
	}
	if sc.Name != "tour" || len(sc.Steps) != 2 {
		t.Fatalf("scenario = %+v", sc)
	}

	results, err := RunScenario(context.Background(), sc, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results", len(results))
	}
	if results[0].Step.SaveAs != "lorenz-short" || len(results[0].Result.States) != 500 {
		t.Errorf("step 1 = %+v", results[0].Step)
	}
	r := results[1].Result
	if r.Params["c"] != 4 || r.States[0] != (dynamo.State{1, 0, 0}) {
		t.Errorf("step 2 params=%v first=%v", r.Params, r.States[0])
	}
}

func TestRunScenarioStopsAtError(t *testing.T) {
	sc := &Scenario{Steps: []ScenarioStep{
		{Field: "lorenz", Samples: 10, TMax: 0.1},
		{Field: "nonexistent"},
		{Field: "lorenz", Samples: 10, TMax: 0.1},
	}}
	results, err := RunScenario(context.Background(), sc, nil, nil)
	if !errors.Is(err, dynamo.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if len(results) != 1 {
		t.Errorf("got %d partial results, want 1", len(results))
	}
}

func TestParseScenarioRejectsEmpty(t *testing.T) {
	if _, err := ParseScenario([]byte("name: empty\n")); !errors.Is(err, dynamo.ErrInvalidConfig) {
		t.Errorf("err = %v", err)
	}
}

func TestStepConfigDefaults(t *testing.T) {
	cfg, err := ScenarioStep{Field: "thomas"}.Config()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Samples != 10000 || cfg.TMax != 50 || cfg.Initial != nil {
		t.Errorf("cfg = %+v", cfg)
	}
	if _, err := (ScenarioStep{Field: "thomas", Initial: []float64{1}}).Config(); !errors.Is(err, dynamo.ErrDimensionMismatch) {
		t.Errorf("err = %v", err)
	}
}

func TestRunSweep(t *testing.T) {
	sweep := &ParameterSweep{Field: "lorenz", Param: "rho", Min: 10, Max: 30, Count: 5, Samples: 1000, TMax: 10}
	results, err := RunSweep(context.Background(), sweep, experiment.Default())
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 5 {
		t.Fatalf("got %d results", len(results))
	}
	for i, want := range []float64{10, 15, 20, 25, 30} {
		if results[i].ParamValue != want {
			t.Errorf("value %d = %v, want %v", i, results[i].ParamValue, want)
		}
		if results[i].Err != nil || results[i].Diverged != -1 || results[i].Boundedness != 1 {
			t.Errorf("rho=%v: %+v", want, results[i])
		}
	}
}

func TestRunSweepErrors(t *testing.T) {
	ctx := context.Background()
	if _, err := RunSweep(ctx, &ParameterSweep{Field: "lorenz", Param: "rho", Count: 1}, nil); !errors.Is(err, dynamo.ErrInvalidConfig) {
		t.Errorf("err = %v", err)
	}
	if _, err := RunSweep(ctx, &ParameterSweep{Field: "lorenz", Param: "omega", Count: 3}, nil); err == nil {
		t.Error("expected unknown parameter error")
	}
	results, err := RunSweep(ctx, &ParameterSweep{Field: "lorenz", Param: "rho", Min: 50, Max: 150, Count: 3, Samples: 10, TMax: 0.1}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !errors.Is(results[2].Err, dynamo.ErrParameterBounds) {
		t.Errorf("rho=150 err = %v", results[2].Err)
	}
}

func TestRunMonteCarloDeterministic(t *testing.T) {
	cfg := &MonteCarloConfig{Field: "thomas", Perturbation: 0.1, NumTrials: 8, Samples: 500, TMax: 5, Seed: 7}
	a, err := RunMonteCarlo(context.Background(), cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := RunMonteCarlo(context.Background(), cfg, nil)
	for i := range a {
		if a[i].InitState != b[i].InitState || a[i].FinalState != b[i].FinalState {
			t.Fatalf("trial %d differs between runs with the same seed", i)
		}
	}
	stable, unstable := MonteCarloStats(a)
	if stable != 8 || unstable != 0 {
		t.Errorf("stable=%d unstable=%d", stable, unstable)
	}
}
