package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vladimirovertheworld/attractors/internal/analysis"
	"github.com/vladimirovertheworld/attractors/internal/export"
	"github.com/vladimirovertheworld/attractors/internal/storage"
	"github.com/vladimirovertheworld/attractors/internal/trajectory"
	"github.com/vladimirovertheworld/attractors/internal/viz"
)

var (
	outPath   string
	planeName string
	imgWidth  int
	imgHeight int
	cols      int
	rows      int
)

func runCommands() []*cobra.Command {
	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [run_id]",
		Short: "delete a stored run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			return st.Delete(args[0])
		},
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOutput(func(w io.Writer) error {
				st, err := openStore(cmd)
				if err != nil {
					return err
				}
				return st.ExportCSV(w, args[0])
			})
		},
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOutput(func(w io.Writer) error {
				st, err := openStore(cmd)
				if err != nil {
					return err
				}
				return st.ExportJSON(w, args[0])
			})
		},
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a stored run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&imgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&imgHeight, "height", 600, "image height")

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase space density portrait of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().StringVar(&planeName, "plane", "xz", "projection plane: xy, xz or yz")
	phaseCmd.Flags().IntVar(&cols, "cols", 100, "columns")
	phaseCmd.Flags().IntVar(&rows, "rows", 35, "rows")

	exportPNGCmd := &cobra.Command{
		Use:   "export-png [run_id]",
		Short: "render a stored run as PNG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportPNG,
	}

	for _, c := range []*cobra.Command{exportCSVCmd, exportJSONCmd, exportSVGCmd, exportPNGCmd} {
		c.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	}
	for _, c := range []*cobra.Command{exportSVGCmd, exportPNGCmd} {
		c.Flags().StringVar(&planeName, "plane", "xz", "projection plane: xy, xz or yz")
		c.Flags().StringVar(&theme, "theme", "neon", "color theme")
	}

	return []*cobra.Command{runsCmd, plotCmd, phaseCmd, deleteCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, exportPNGCmd}
}

func openStore(cmd *cobra.Command) (*storage.Store, error) {
	cfg, err := loadConfig(cmd, "")
	if err != nil {
		return nil, err
	}
	return storage.New(cfg.DataDir), nil
}

// withOutput runs fn against --out, or stdout when unset.
func withOutput(fn func(w io.Writer) error) error {
	if outPath == "" {
		return fn(os.Stdout)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "exported to %s\n", outPath)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFIELD\tTIME\tSAMPLES\tSPAN\tDT\tDIVERGED")
	for _, run := range runs {
		div := "-"
		if run.Diverged >= 0 {
			div = fmt.Sprint(run.Diverged)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t[%g, %g]\t%g\t%s\n",
			run.ID,
			run.Field,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Samples,
			run.T0, run.TMax,
			run.Dt,
			div,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	states, _, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("field: %s\n", meta.Field)
	fmt.Printf("samples: %d\n\n", len(states))
	plotStates(states)
	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	plane, err := export.ParsePlane(planeName)
	if err != nil {
		return err
	}
	states, _, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	portrait := analysis.NewPhasePortrait(states, plane, cols, rows)
	if portrait == nil {
		return fmt.Errorf("no data to plot")
	}
	h, v := plane.Axes()
	fmt.Printf("%s vs %s  [%.3g, %.3g] x [%.3g, %.3g]\n\n", v, h, portrait.MinX, portrait.MaxX, portrait.MinY, portrait.MaxY)
	fmt.Print(portrait.String())
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	plane, err := export.ParsePlane(planeName)
	if err != nil {
		return err
	}
	states, _, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}

	buf, err := trajectory.New(trajectory.Unbounded())
	if err != nil {
		return err
	}
	buf.SetGradient(viz.GetTheme(theme).Gradient)
	for _, s := range states {
		buf.Append(s)
	}
	svg := export.TrajectoryToSVG(buf.Snapshot(), plane, imgWidth, imgHeight)
	return withOutput(func(w io.Writer) error {
		_, err := io.WriteString(w, svg)
		return err
	})
}

func exportPNG(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	plane, err := export.ParsePlane(planeName)
	if err != nil {
		return err
	}
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	states, _, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}

	opts := export.DefaultPNGOptions(fmt.Sprintf("%s (%s)", meta.Field, meta.ID))
	opts.Plane = plane
	opts.Gradient = viz.GetTheme(theme).Gradient
	if outPath == "" {
		outPath = meta.ID + ".png"
	}
	if err := export.TrajectoryToPNG(outPath, states, opts); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "exported to %s\n", outPath)
	return nil
}
