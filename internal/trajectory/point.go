package trajectory

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/vladimirovertheworld/attractors/internal/dynamo"
)

// Point is a buffered state with its relative age: 0 for the oldest point
// in the snapshot, 1 for the newest.
type Point struct {
	State dynamo.State
	Age   float64
	Color colorful.Color
}

// Age maps index i of n to [0, 1]. A lone point counts as newest.
func Age(i, n int) float64 {
	if n <= 1 {
		return 1
	}
	return float64(i) / float64(n-1)
}

// Gradient is a hue sweep in HSV space.
type Gradient struct {
	StartHue   float64
	EndHue     float64
	Saturation float64
	Value      float64
}

// DefaultGradient runs from red through the spectrum to magenta.
func DefaultGradient() Gradient {
	return Gradient{StartHue: 0, EndHue: 300, Saturation: 1, Value: 1}
}

// At returns the color for an age in [0, 1]; ages outside are clamped.
func (g Gradient) At(age float64) colorful.Color {
	if age < 0 {
		age = 0
	} else if age > 1 {
		age = 1
	}
	h := g.StartHue + (g.EndHue-g.StartHue)*age
	return colorful.Hsv(h, g.Saturation, g.Value).Clamped()
}

// Fade dims a color toward black by the given age, used by renderers that
// want old points to recede.
func Fade(c colorful.Color, age float64) colorful.Color {
	return colorful.Color{}.BlendRgb(c, 0.25+0.75*age).Clamped()
}
