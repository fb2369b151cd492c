package metrics

import (
	"gonum.org/v1/gonum/floats"

	"github.com/vladimirovertheworld/attractors/internal/dynamo"
)

// Extent is the axis-aligned bounding box of a set of states.
type Extent struct {
	Min dynamo.State
	Max dynamo.State
}

// ExtentOf returns the bounding box of the finite states. ok is false when
// there are none.
func ExtentOf(states []dynamo.State) (ext Extent, ok bool) {
	cols := [3][]float64{}
	for _, s := range states {
		if !s.IsFinite() {
			continue
		}
		for i := range cols {
			cols[i] = append(cols[i], s[i])
		}
	}
	if len(cols[0]) == 0 {
		return Extent{}, false
	}
	for i, c := range cols {
		ext.Min[i] = floats.Min(c)
		ext.Max[i] = floats.Max(c)
	}
	return ext, true
}

func (e Extent) Center() dynamo.State {
	return e.Min.Add(e.Max).Scale(0.5)
}

func (e Extent) Span() dynamo.State {
	return e.Max.Add(e.Min.Scale(-1))
}

// Radius is the largest half-span, the scale a view needs to fit the box.
func (e Extent) Radius() float64 {
	span := e.Span()
	return 0.5 * floats.Max(span[:])
}
