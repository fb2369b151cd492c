package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/vladimirovertheworld/attractors/internal/dynamo"
	"github.com/vladimirovertheworld/attractors/internal/trajectory"
)

type PNGOptions struct {
	Title    string
	Plane    Plane
	WidthIn  float64
	HeightIn float64
	DPI      int
	// Segments is how many color bands the line is split into.
	Segments int
	Gradient trajectory.Gradient
}

func DefaultPNGOptions(title string) PNGOptions {
	return PNGOptions{
		Title:    title,
		WidthIn:  8,
		HeightIn: 6,
		DPI:      150,
		Segments: 64,
		Gradient: trajectory.DefaultGradient(),
	}
}

// WritePNG plots states on the chosen plane, colored from oldest to
// newest, and encodes the image to w.
func WritePNG(w io.Writer, states []dynamo.State, opts PNGOptions) error {
	p, err := newTrajectoryPlot(states, opts)
	if err != nil {
		return err
	}

	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(opts.WidthIn)*vg.Inch, vg.Length(opts.HeightIn)*vg.Inch),
		vgimg.UseDPI(opts.DPI),
	)
	p.Draw(draw.New(c))

	bw := bufio.NewWriter(w)
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(bw); err != nil {
		return fmt.Errorf("cannot write png: %w", err)
	}
	return bw.Flush()
}

// TrajectoryToPNG writes the image to path, creating parent directories.
func TrajectoryToPNG(path string, states []dynamo.State, opts PNGOptions) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create png: %w", err)
	}
	defer f.Close()
	if err := WritePNG(f, states, opts); err != nil {
		return err
	}
	return f.Close()
}

func newTrajectoryPlot(states []dynamo.State, opts PNGOptions) (*plot.Plot, error) {
	pts := make(plotter.XYs, 0, len(states))
	for _, s := range states {
		if !s.IsFinite() {
			break
		}
		x, y := opts.Plane.Project(s)
		pts = append(pts, plotter.XY{X: x, Y: y})
	}
	if len(pts) < 2 {
		return nil, fmt.Errorf("plot needs at least 2 finite states, got %d", len(pts))
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text, p.Y.Label.Text = opts.Plane.Axes()
	p.Title.Padding = vg.Points(8)

	segments := opts.Segments
	if segments < 1 {
		segments = 1
	}
	if segments > len(pts)-1 {
		segments = len(pts) - 1
	}
	for k := 0; k < segments; k++ {
		lo := k * (len(pts) - 1) / segments
		hi := (k + 1) * (len(pts) - 1) / segments
		line, err := plotter.NewLine(pts[lo : hi+1])
		if err != nil {
			return nil, err
		}
		line.LineStyle.Width = vg.Points(0.6)
		line.LineStyle.Color = opts.Gradient.At(trajectory.Age(k, segments))
		p.Add(line)
	}
	return p, nil
}
