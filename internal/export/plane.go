// Package export renders trajectories to static SVG and PNG images.
package export

import (
	"fmt"
	"strings"

	"github.com/vladimirovertheworld/attractors/internal/dynamo"
)

// Plane selects the two coordinates a flat image shows.
type Plane int

const (
	XY Plane = iota
	XZ
	YZ
)

func ParsePlane(s string) (Plane, error) {
	switch strings.ToLower(s) {
	case "", "xy":
		return XY, nil
	case "xz":
		return XZ, nil
	case "yz":
		return YZ, nil
	}
	return XY, fmt.Errorf("unknown plane %q (want xy, xz or yz)", s)
}

func (p Plane) String() string {
	return [...]string{"xy", "xz", "yz"}[p]
}

// Axes returns the horizontal and vertical axis names.
func (p Plane) Axes() (string, string) {
	s := p.String()
	return s[:1], s[1:]
}

// Project drops the third coordinate.
func (p Plane) Project(s dynamo.State) (float64, float64) {
	switch p {
	case XZ:
		return s[0], s[2]
	case YZ:
		return s[1], s[2]
	default:
		return s[0], s[1]
	}
}
