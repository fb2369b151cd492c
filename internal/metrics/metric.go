// Package metrics computes observables over trajectories: bounding boxes
// for framing views, and scalar checks used by the regression guard.
package metrics

import "github.com/vladimirovertheworld/attractors/internal/dynamo"

// Metric accumulates a scalar over a stream of states.
type Metric interface {
	Name() string
	Observe(s dynamo.State)
	Value() float64
	Reset()
}

// Evaluate resets each metric, feeds it every state and collects the
// values by name.
func Evaluate(states []dynamo.State, ms ...Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		m.Reset()
		for _, s := range states {
			m.Observe(s)
		}
		out[m.Name()] = m.Value()
	}
	return out
}
