package analysis

import (
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/vladimirovertheworld/attractors/internal/dynamo"
	"github.com/vladimirovertheworld/attractors/internal/export"
)

// densityRamp goes from one hit to the busiest cell.
var densityRamp = []rune(".:-=+*#%@")

// PhasePortrait2D is a trajectory projected onto a coordinate plane and
// binned into a width x height grid.
type PhasePortrait2D struct {
	Plane         export.Plane
	Width, Height int
	MinX, MaxX    float64
	MinY, MaxY    float64
	Counts        [][]int
	Max           int
}

// NewPhasePortrait bins the finite states. It returns nil when there is
// nothing to bin.
func NewPhasePortrait(states []dynamo.State, plane export.Plane, width, height int) *PhasePortrait2D {
	if width < 1 || height < 1 {
		return nil
	}
	xs := make([]float64, 0, len(states))
	ys := make([]float64, 0, len(states))
	for _, s := range states {
		if !s.IsFinite() {
			continue
		}
		x, y := plane.Project(s)
		xs = append(xs, x)
		ys = append(ys, y)
	}
	if len(xs) == 0 {
		return nil
	}

	p := &PhasePortrait2D{
		Plane: plane, Width: width, Height: height,
		MinX: floats.Min(xs), MaxX: floats.Max(xs),
		MinY: floats.Min(ys), MaxY: floats.Max(ys),
		Counts: make([][]int, height),
	}
	// Add padding
	padX := 0.05 * nonZero(p.MaxX-p.MinX)
	padY := 0.05 * nonZero(p.MaxY-p.MinY)
	p.MinX, p.MaxX = p.MinX-padX, p.MaxX+padX
	p.MinY, p.MaxY = p.MinY-padY, p.MaxY+padY

	for i := range p.Counts {
		p.Counts[i] = make([]int, width)
	}
	for i := range xs {
		row, col := p.cell(xs[i], ys[i])
		p.Counts[row][col]++
		if p.Counts[row][col] > p.Max {
			p.Max = p.Counts[row][col]
		}
	}
	return p
}

func nonZero(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}

func (p *PhasePortrait2D) cell(x, y float64) (row, col int) {
	col = int((x - p.MinX) / (p.MaxX - p.MinX) * float64(p.Width-1))
	row = p.Height - 1 - int((y-p.MinY)/(p.MaxY-p.MinY)*float64(p.Height-1))
	return row, col
}

// String renders visit density as ASCII art, with the axes drawn where
// they cross the visible area.
func (p *PhasePortrait2D) String() string {
	if p == nil {
		return ""
	}
	canvas := make([][]rune, p.Height)
	for i := range canvas {
		canvas[i] = make([]rune, p.Width)
		for j, n := range p.Counts[i] {
			canvas[i][j] = ' '
			if n > 0 {
				canvas[i][j] = densityRamp[(n-1)*(len(densityRamp)-1)/max(p.Max-1, 1)]
			}
		}
	}

	if p.MinX <= 0 && p.MaxX >= 0 {
		_, col := p.cell(0, p.MinY)
		for row := 0; row < p.Height; row++ {
			if canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if p.MinY <= 0 && p.MaxY >= 0 {
		row, _ := p.cell(p.MinX, 0)
		for col := 0; col < p.Width; col++ {
			if canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
