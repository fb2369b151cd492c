package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/vladimirovertheworld/attractors/internal/config"
	"github.com/vladimirovertheworld/attractors/internal/dynamo"
	"github.com/vladimirovertheworld/attractors/internal/experiment"
	"github.com/vladimirovertheworld/attractors/internal/logging"
	"github.com/vladimirovertheworld/attractors/internal/sim"
	"github.com/vladimirovertheworld/attractors/internal/viz"
)

var (
	// Global
	configFile string
	dataDir    string
	logLevel   string
	preset     string

	// Streaming
	theme string
	ticks int
	every int

	// Batch
	save    bool
	runName string
	plot    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "attractors",
		Short:         "strange attractor explorer",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          runLive,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error, none")
	addStreamFlags(rootCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list registered vector fields",
		Args:  cobra.NoArgs,
		RunE:  listFields,
	}

	infoCmd := &cobra.Command{
		Use:   "info [field]",
		Short: "describe a vector field",
		Args:  cobra.ExactArgs(1),
		RunE:  fieldInfo,
	}

	liveCmd := &cobra.Command{
		Use:   "live [field]",
		Short: "stream a field into the terminal view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addStreamFlags(liveCmd)

	streamCmd := &cobra.Command{
		Use:   "stream [field]",
		Short: "stream a field headlessly and print each tick",
		Args:  cobra.ExactArgs(1),
		RunE:  runStream,
	}
	addStreamFlags(streamCmd)
	streamCmd.Flags().IntVar(&ticks, "ticks", 100, "number of ticks")
	streamCmd.Flags().IntVar(&every, "every", 10, "print every n-th tick")

	runCmd := &cobra.Command{
		Use:   "run [field]",
		Short: "integrate a batch trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	addBatchFlags(runCmd)
	runCmd.Flags().BoolVar(&save, "save", false, "store the run in the data directory")
	runCmd.Flags().StringVar(&runName, "name", "", "run id for --save (default: field_<nanos>)")
	runCmd.Flags().BoolVar(&plot, "plot", false, "plot x, y and z against time")

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "integrate every field in parallel and report divergence",
		Args:  cobra.NoArgs,
		RunE:  checkFields,
	}
	checkCmd.Flags().Int("samples", 1000, "samples per field")
	checkCmd.Flags().Float64("span", 10, "end time")

	presetsCmd := &cobra.Command{
		Use:   "presets [field]",
		Short: "list available presets for a field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			field := strings.ToLower(args[0])
			presets := config.ListPresets(field)
			if len(presets) == 0 {
				fmt.Printf("no presets for field: %s\n", field)
				return nil
			}
			fmt.Printf("presets for %s:\n", field)
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	initConfigCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the default configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(args[0], config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(listCmd, infoCmd, liveCmd, streamCmd, runCmd, checkCmd, presetsCmd, initConfigCmd)
	rootCmd.AddCommand(batchCommands()...)
	rootCmd.AddCommand(runCommands()...)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addStreamFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Float64("dt", config.DefaultDt, "timestep")
	cmd.Flags().Int("steps", config.DefaultStepsPerTick, "steps per tick")
	cmd.Flags().String("mode", config.ModePolyline, "polyline (keep all points) or scatter (keep newest)")
	cmd.Flags().Int("capacity", config.DefaultCapacity, "scatter buffer capacity")
	cmd.Flags().String("on-divergence", "skip", "skip or halt")
	cmd.Flags().Int("tick", config.DefaultTickMillis, "tick interval in milliseconds")
	cmd.Flags().StringVar(&theme, "theme", "neon", "color theme")
	cmd.Flags().StringSlice("param", nil, "parameter override name=value (repeatable)")
}

func addBatchFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Int("samples", config.DefaultSamples, "number of samples")
	cmd.Flags().Float64("t0", 0, "start time")
	cmd.Flags().Float64("span", config.DefaultTMax, "end time")
	cmd.Flags().StringSlice("param", nil, "parameter override name=value (repeatable)")
	cmd.Flags().Float64Slice("initial", nil, "initial condition x,y,z")
}

// loadConfig layers defaults, the config file, ATTRACTORS_* variables,
// the preset and finally any flags set on the command line.
func loadConfig(cmd *cobra.Command, field string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if field != "" {
		cfg.Field = strings.ToLower(field)
	}
	if preset != "" {
		p, ok := config.Presets[cfg.Field][preset]
		if !ok {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(cfg.Field))
		}
		cfg = config.Merge(cfg, p)
	}

	// Flags shared by several commands are read from this command's own
	// flag set; only explicitly set ones override the layers above.
	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataDir, _ = flags.GetString("data")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("dt") {
		cfg.Dt, _ = flags.GetFloat64("dt")
	}
	if flags.Changed("steps") {
		cfg.StepsPerTick, _ = flags.GetInt("steps")
	}
	if flags.Changed("mode") {
		cfg.Mode, _ = flags.GetString("mode")
	}
	if flags.Changed("capacity") {
		cfg.Capacity, _ = flags.GetInt("capacity")
	}
	if flags.Changed("on-divergence") {
		cfg.OnDivergence, _ = flags.GetString("on-divergence")
	}
	if flags.Changed("tick") {
		cfg.TickMillis, _ = flags.GetInt("tick")
	}
	if flags.Changed("theme") {
		cfg.Theme, _ = flags.GetString("theme")
	}
	if flags.Changed("samples") {
		cfg.Samples, _ = flags.GetInt("samples")
	}
	if flags.Changed("t0") {
		cfg.T0, _ = flags.GetFloat64("t0")
	}
	if flags.Changed("span") {
		cfg.TMax, _ = flags.GetFloat64("span")
	}
	if flags.Changed("initial") {
		cfg.Initial, _ = flags.GetFloat64Slice("initial")
	}
	if flags.Changed("param") {
		pairs, _ := flags.GetStringSlice("param")
		overrides, err := parseParams(pairs)
		if err != nil {
			return nil, err
		}
		if cfg.Params == nil {
			cfg.Params = make(map[string]float64, len(overrides))
		}
		for k, v := range overrides {
			cfg.Params[k] = v
		}
	}
	return cfg, nil
}

func parseParams(pairs []string) (map[string]float64, error) {
	out := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("bad --param %q, want name=value", pair)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("bad --param %q: %w", pair, err)
		}
		out[strings.TrimSpace(name)] = v
	}
	return out, nil
}

// newSession builds a session for cfg.Field with its parameter overrides
// and initial condition applied.
func newSession(cfg *config.Config) (*sim.Session, error) {
	field, err := experiment.Default().Lookup(cfg.Field)
	if err != nil {
		return nil, err
	}
	scfg, err := cfg.SessionConfig()
	if err != nil {
		return nil, err
	}
	logger := logging.Stderr(cfg.LogLevel)
	s, err := sim.NewSession(field, scfg, sim.WithLogger(logger), sim.WithGradient(viz.GetTheme(cfg.Theme).Gradient))
	if err != nil {
		return nil, err
	}
	if len(cfg.Params) > 0 {
		p, err := field.WithOverrides(cfg.Params)
		if err != nil {
			return nil, err
		}
		if err := s.SetParams(p); err != nil {
			return nil, err
		}
	}
	x0, err := cfg.InitialState()
	if err != nil {
		return nil, err
	}
	if x0 != nil {
		if err := s.SetInitial(*x0); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	field := ""
	if len(args) > 0 {
		field = args[0]
	}
	cfg, err := loadConfig(cmd, field)
	if err != nil {
		return err
	}
	// The TUI owns the terminal; only errors reach stderr.
	if !cmd.Flags().Changed("log-level") {
		cfg.LogLevel = "error"
	}
	s, err := newSession(cfg)
	if err != nil {
		return err
	}
	s.Start()

	opts := viz.DefaultOptions()
	opts.TickInterval = time.Duration(cfg.TickMillis) * time.Millisecond
	opts.Theme = cfg.Theme
	opts.Slider = cfg.SliderFor
	opts.BatchSamples = cfg.Samples
	opts.BatchSpan = cfg.TMax

	p := tea.NewProgram(viz.NewModel(experiment.Default(), s, opts), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func runStream(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args[0])
	if err != nil {
		return err
	}
	if ticks < 1 {
		return fmt.Errorf("%w: --ticks must be at least 1", dynamo.ErrInvalidConfig)
	}
	if every < 1 {
		every = 1
	}
	s, err := newSession(cfg)
	if err != nil {
		return err
	}
	logger := logging.Stderr(cfg.LogLevel)
	level.Info(logger).Log("msg", "streaming", "field", cfg.Field, "ticks", ticks, "policy", s.Config().Policy)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TICK\tSTEPS\tPOINTS\tSTATE\tSTATUS")
	sink := sim.SinkFunc(func(snap sim.Snapshot) {
		if snap.Ticks%every != 0 && !snap.Diverged {
			return
		}
		status := snap.Status.String()
		if snap.Diverged {
			status = "diverged: " + snap.Divergence.Error()
		}
		fmt.Fprintf(w, "%d\t%d\t%d\t%s\t%s\n", snap.Ticks, snap.Steps, len(snap.Points), snap.State, status)
	})

	s.Start()
	last := sim.Run(s, sink, ticks)
	if err := w.Flush(); err != nil {
		return err
	}
	level.Info(logger).Log("msg", "stream done", "steps", last.Steps, "status", last.Status)
	return nil
}

func listFields(cmd *cobra.Command, args []string) error {
	reg := experiment.Default()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTITLE\tPARAMS\tINITIAL")
	for _, f := range reg.Fields() {
		names := make([]string, len(f.Params))
		for i, p := range f.Params {
			names[i] = p.Name
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", f.Name, f.Title, strings.Join(names, ","), f.Initial)
	}
	return w.Flush()
}

func fieldInfo(cmd *cobra.Command, args []string) error {
	f, err := experiment.Default().Lookup(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s (%s)\n", f.Title, f.Name)
	if f.Description != "" {
		fmt.Printf("\n%s\n", f.Description)
	}
	if f.Link != "" {
		fmt.Printf("\n%s\n", f.Link)
	}
	fmt.Printf("\ninitial: %s\n\n", f.Initial)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PARAM\tDEFAULT\tMIN\tMAX")
	for _, p := range f.Params {
		fmt.Fprintf(w, "%s\t%g\t%g\t%g\n", p.Name, p.Default, p.Min, p.Max)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if presets := config.ListPresets(f.Name); len(presets) > 0 {
		fmt.Printf("\npresets: %s\n", strings.Join(presets, ", "))
	}
	return nil
}
