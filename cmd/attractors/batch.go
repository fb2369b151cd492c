package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/go-kit/log/level"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/vladimirovertheworld/attractors/internal/automation"
	"github.com/vladimirovertheworld/attractors/internal/dynamo"
	"github.com/vladimirovertheworld/attractors/internal/experiment"
	"github.com/vladimirovertheworld/attractors/internal/logging"
	"github.com/vladimirovertheworld/attractors/internal/metrics"
	"github.com/vladimirovertheworld/attractors/internal/optim"
	"github.com/vladimirovertheworld/attractors/internal/sim"
	"github.com/vladimirovertheworld/attractors/internal/storage"
)

var (
	sweepMin    float64
	sweepMax    float64
	sweepCount  int
	trials      int
	perturb     float64
	seed        int64
	saveResults bool
	axes        []string
	metricName  string
	minimize    bool
)

func batchCommands() []*cobra.Command {
	sweepCmd := &cobra.Command{
		Use:   "sweep [field] [param]",
		Short: "run one batch per parameter value",
		Args:  cobra.ExactArgs(2),
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 1, "last value")
	sweepCmd.Flags().IntVar(&sweepCount, "count", 10, "number of values")
	sweepCmd.Flags().Int("samples", 5000, "samples per run")
	sweepCmd.Flags().Float64("span", 50, "end time")
	sweepCmd.Flags().Float64("radius", 1e3, "boundedness radius")

	mcCmd := &cobra.Command{
		Use:   "montecarlo [field]",
		Short: "perturb the initial condition and count bounded runs",
		Args:  cobra.ExactArgs(1),
		RunE:  runMonteCarlo,
	}
	mcCmd.Flags().IntVar(&trials, "trials", 50, "number of trials")
	mcCmd.Flags().Float64Var(&perturb, "perturb", 0.1, "maximum perturbation per coordinate")
	mcCmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	mcCmd.Flags().Int("samples", 5000, "samples per run")
	mcCmd.Flags().Float64("span", 50, "end time")
	mcCmd.Flags().Float64("radius", 1e3, "boundedness radius")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run the batch steps of a YAML scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().BoolVar(&saveResults, "save", true, "store steps that name save_as")

	searchCmd := &cobra.Command{
		Use:   "search [field]",
		Short: "grid search parameters for the best scoring bounded trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  runSearch,
	}
	searchCmd.Flags().StringArrayVar(&axes, "axis", nil, "searched parameter name=min:max:count (repeatable)")
	searchCmd.Flags().StringVar(&metricName, "metric", "path_length", "path_length or boundedness")
	searchCmd.Flags().BoolVar(&minimize, "minimize", false, "prefer the lowest score")
	searchCmd.Flags().Int("samples", 5000, "samples per run")
	searchCmd.Flags().Float64("span", 50, "end time")
	searchCmd.Flags().Float64("radius", 1e3, "boundedness radius")

	return []*cobra.Command{sweepCmd, mcCmd, scenarioCmd, searchCmd}
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args[0])
	if err != nil {
		return err
	}
	logger := logging.Stderr(cfg.LogLevel)
	ecfg, err := cfg.ExperimentConfig()
	if err != nil {
		return err
	}

	level.Info(logger).Log("msg", "running batch", "field", ecfg.Field, "samples", ecfg.Samples, "t0", ecfg.T0, "t_max", ecfg.TMax)
	res, err := experiment.New(ecfg, experiment.Default()).Run(context.Background())
	if err != nil {
		return err
	}

	finite := res.Finite()
	ms := metrics.Evaluate(finite, metrics.NewBoundedness(1e3), metrics.NewPathLength())
	if res.Diverged >= 0 {
		level.Warn(logger).Log("msg", "trajectory diverged", "err", res.Err())
	}

	fmt.Printf("field: %s\n", res.Field)
	fmt.Printf("dt: %g\n", res.Dt)
	fmt.Printf("samples: %d (%d finite)\n", len(res.States), len(finite))
	if len(finite) > 0 {
		fmt.Printf("final: %s\n", finite[len(finite)-1])
	}
	fmt.Printf("completed in %v\n", res.Elapsed)
	if ext, ok := metrics.ExtentOf(finite); ok {
		fmt.Printf("extent: %s .. %s\n", ext.Min, ext.Max)
	}
	fmt.Println("\nmetrics:")
	for _, name := range []string{"boundedness", "path_length"} {
		fmt.Printf("  %s: %.6f\n", name, ms[name])
	}

	if save {
		st := storage.New(cfg.DataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(runName, res, ms)
		if err != nil {
			return err
		}
		fmt.Printf("\nrun id: %s\n", runID)
	}
	if plot {
		fmt.Println()
		plotStates(finite)
	}
	return nil
}

func plotStates(states []dynamo.State) {
	for axis, name := range []string{"x", "y", "z"} {
		data := make([]float64, len(states))
		for i, s := range states {
			data[i] = s[axis]
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name+" vs time"),
		)
		fmt.Println(graph)
		fmt.Println()
	}
}

func checkFields(cmd *cobra.Command, args []string) error {
	samples, _ := cmd.Flags().GetInt("samples")
	tMax, _ := cmd.Flags().GetFloat64("span")
	reg := experiment.Default()
	cfgs := make([]experiment.Config, 0, reg.Len())
	for _, name := range reg.Names() {
		c := experiment.DefaultConfig(name)
		c.Samples = samples
		c.TMax = tMax
		cfgs = append(cfgs, c)
	}

	outcomes, err := sim.NewEnsemble(reg, 0).Run(context.Background(), cfgs)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FIELD\tDT\tSTATUS\tFINAL")
	var failed []string
	for _, o := range outcomes {
		switch {
		case o.Err != nil:
			failed = append(failed, o.Config.Field)
			fmt.Fprintf(w, "%s\t-\terror: %v\t-\n", o.Config.Field, o.Err)
		case o.Result.Diverged >= 0:
			failed = append(failed, o.Config.Field)
			fmt.Fprintf(w, "%s\t%g\tdiverged at %d\t-\n", o.Config.Field, o.Result.Dt, o.Result.Diverged)
		default:
			final := o.Result.States[len(o.Result.States)-1]
			fmt.Fprintf(w, "%s\t%g\tok\t%s\n", o.Config.Field, o.Result.Dt, final)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if len(failed) > 0 {
		return fmt.Errorf("%d fields failed: %s", len(failed), strings.Join(failed, ", "))
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	samples, tMax, radius := batchSize(cmd)
	sweep := &automation.ParameterSweep{
		Field:   args[0],
		Param:   args[1],
		Min:     sweepMin,
		Max:     sweepMax,
		Count:   sweepCount,
		Samples: samples,
		TMax:    tMax,
		Radius:  radius,
	}
	results, err := automation.RunSweep(context.Background(), sweep, experiment.Default())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tBOUNDED\tDIVERGED\tFINAL\n", strings.ToUpper(args[1]))
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(w, "%g\t-\t-\terror: %v\n", r.ParamValue, r.Err)
			continue
		}
		div := "-"
		if r.Diverged >= 0 {
			div = fmt.Sprint(r.Diverged)
		}
		fmt.Fprintf(w, "%g\t%.3f\t%s\t%s\n", r.ParamValue, r.Boundedness, div, r.FinalState)
	}
	return w.Flush()
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	samples, tMax, radius := batchSize(cmd)
	results, err := automation.RunMonteCarlo(context.Background(), &automation.MonteCarloConfig{
		Field:        args[0],
		Perturbation: perturb,
		NumTrials:    trials,
		Samples:      samples,
		TMax:         tMax,
		Radius:       radius,
		Seed:         seed,
	}, experiment.Default())
	if err != nil {
		return err
	}
	stable, unstable := automation.MonteCarloStats(results)
	fmt.Printf("trials: %d\n", len(results))
	fmt.Printf("bounded: %d\n", stable)
	fmt.Printf("escaped: %d\n", unstable)
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "")
	if err != nil {
		return err
	}
	logger := logging.Stderr(cfg.LogLevel)

	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	results, err := automation.RunScenario(context.Background(), scenario, experiment.Default(), logger)
	if err != nil {
		return err
	}

	st := storage.New(cfg.DataDir)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tFIELD\tSAMPLES\tDIVERGED\tRUN")
	for i, r := range results {
		runID := "-"
		if saveResults && r.Step.SaveAs != "" {
			if err := st.Init(); err != nil {
				return err
			}
			ms := metrics.Evaluate(r.Result.Finite(), metrics.NewBoundedness(1e3), metrics.NewPathLength())
			if runID, err = st.Save(r.Step.SaveAs, r.Result, ms); err != nil {
				return err
			}
		}
		div := "-"
		if r.Result.Diverged >= 0 {
			div = fmt.Sprint(r.Result.Diverged)
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n", i+1, r.Result.Field, len(r.Result.States), div, runID)
	}
	return w.Flush()
}

func runSearch(cmd *cobra.Command, args []string) error {
	samples, tMax, radius := batchSize(cmd)
	var obj optim.Objective
	switch metricName {
	case "path_length":
		obj.Metric = func() metrics.Metric { return metrics.NewPathLength() }
	case "boundedness":
		obj.Metric = func() metrics.Metric { return metrics.NewBoundedness(radius) }
	default:
		return fmt.Errorf("unknown metric: %s", metricName)
	}
	obj.Maximize = !minimize

	parsed := make([]optim.Axis, 0, len(axes))
	for _, a := range axes {
		axis, err := optim.ParseAxis(a)
		if err != nil {
			return err
		}
		parsed = append(parsed, axis)
	}
	g := optim.NewGridSearch(args[0], parsed...)
	g.Samples = samples
	g.TMax = tMax

	best, all, err := g.Search(context.Background(), experiment.Default(), obj)
	if err != nil {
		return err
	}
	finite := 0
	for _, c := range all {
		if c.Err == nil && c.Diverged < 0 {
			finite++
		}
	}
	fmt.Printf("grid points: %d (%d finite)\n", len(all), finite)
	fmt.Printf("best %s: %.6f\n", metricName, best.Score)
	for _, a := range parsed {
		fmt.Printf("  %s = %g\n", a.Param, best.Params[a.Param])
	}
	return nil
}

// batchSize reads the per-run size flags shared by the ensemble commands.
func batchSize(cmd *cobra.Command) (samples int, tMax, radius float64) {
	samples, _ = cmd.Flags().GetInt("samples")
	tMax, _ = cmd.Flags().GetFloat64("span")
	radius, _ = cmd.Flags().GetFloat64("radius")
	return samples, tMax, radius
}
