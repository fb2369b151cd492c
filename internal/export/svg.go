package export

import (
	"fmt"
	"strings"

	"github.com/vladimirovertheworld/attractors/internal/trajectory"
)

// TrajectoryToSVG draws the points as a polyline on plane, one segment per
// consecutive pair, stroked with the color of the newer point. Non-finite
// points break the line.
func TrajectoryToSVG(points []trajectory.Point, plane Plane, width, height int) string {
	type xy struct{ X, Y float64 }
	proj := make([]xy, 0, len(points))
	keep := make([]int, 0, len(points))
	for i, p := range points {
		if !p.State.IsFinite() {
			continue
		}
		x, y := plane.Project(p.State)
		proj = append(proj, xy{x, y})
		keep = append(keep, i)
	}
	if len(proj) < 2 {
		return ""
	}

	minX, maxX := proj[0].X, proj[0].X
	minY, maxY := proj[0].Y, proj[0].Y
	for _, p := range proj {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	toPx := func(p xy) (float64, float64) {
		return (p.X - minX) / rangeX * float64(width), float64(height) - (p.Y-minY)/rangeY*float64(height)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="none" stroke-width="1.2" stroke-linecap="round">
`, width, height, width, height)

	for i := 1; i < len(proj); i++ {
		if keep[i] != keep[i-1]+1 {
			continue
		}
		x1, y1 := toPx(proj[i-1])
		x2, y2 := toPx(proj[i])
		fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s"/>
`, x1, y1, x2, y2, points[keep[i]].Color.Hex())
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
