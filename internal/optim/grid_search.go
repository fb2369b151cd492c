package optim

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vladimirovertheworld/attractors/internal/dynamo"
	"github.com/vladimirovertheworld/attractors/internal/experiment"
	"github.com/vladimirovertheworld/attractors/internal/metrics"
	"github.com/vladimirovertheworld/attractors/internal/sim"
)

// Axis is one searched parameter and the values it takes.
type Axis struct {
	Param  string
	Values []float64
}

// Linspace returns n evenly spaced values from min to max inclusive.
func Linspace(min, max float64, n int) []float64 {
	if n == 1 {
		return []float64{min}
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = min + (max-min)*float64(i)/float64(n-1)
	}
	return out
}

// ParseAxis reads "name=min:max:count".
func ParseAxis(s string) (Axis, error) {
	name, spec, ok := strings.Cut(s, "=")
	parts := strings.Split(spec, ":")
	if !ok || len(parts) != 3 {
		return Axis{}, fmt.Errorf("%w: axis %q, want name=min:max:count", dynamo.ErrInvalidConfig, s)
	}
	lo, err1 := strconv.ParseFloat(parts[0], 64)
	hi, err2 := strconv.ParseFloat(parts[1], 64)
	n, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil || n < 1 {
		return Axis{}, fmt.Errorf("%w: axis %q, want name=min:max:count", dynamo.ErrInvalidConfig, s)
	}
	return Axis{Param: strings.TrimSpace(name), Values: Linspace(lo, hi, n)}, nil
}

// Objective scores a finite trajectory with a fresh metric.
type Objective struct {
	Metric   func() metrics.Metric
	Maximize bool
}

// Candidate is one grid point and its score.
type Candidate struct {
	Params   map[string]float64
	Score    float64
	Diverged int
	Err      error
}

func (c Candidate) ok() bool { return c.Err == nil && c.Diverged < 0 }

type GridSearch struct {
	field   string
	axes    []Axis
	Samples int
	TMax    float64
}

func NewGridSearch(field string, axes ...Axis) *GridSearch {
	return &GridSearch{field: field, axes: axes, Samples: 5000, TMax: 50}
}

// Search runs every grid point on the ensemble and returns the best
// finite candidate along with all of them in grid order.
func (g *GridSearch) Search(ctx context.Context, reg *experiment.Registry, obj Objective) (Candidate, []Candidate, error) {
	if len(g.axes) == 0 {
		return Candidate{}, nil, fmt.Errorf("%w: grid search needs at least one axis", dynamo.ErrInvalidConfig)
	}

	var points []map[string]float64
	g.searchRecursive(0, make(map[string]float64), &points)

	cfgs := make([]experiment.Config, len(points))
	for i, p := range points {
		c := experiment.DefaultConfig(g.field)
		c.Params = p
		c.Samples = g.Samples
		c.TMax = g.TMax
		cfgs[i] = c
	}
	outcomes, err := sim.NewEnsemble(reg, 0).Run(ctx, cfgs)
	if err != nil {
		return Candidate{}, nil, err
	}

	all := make([]Candidate, len(outcomes))
	best := -1
	for i, o := range outcomes {
		c := Candidate{Params: points[i], Diverged: -1, Err: o.Err, Score: math.NaN()}
		if o.Err == nil {
			c.Diverged = o.Result.Diverged
			if c.Diverged < 0 {
				m := obj.Metric()
				c.Score = metrics.Evaluate(o.Result.States, m)[m.Name()]
			}
		}
		all[i] = c
		if !c.ok() {
			continue
		}
		if best < 0 || (obj.Maximize && c.Score > all[best].Score) || (!obj.Maximize && c.Score < all[best].Score) {
			best = i
		}
	}
	if best < 0 {
		return Candidate{}, all, fmt.Errorf("%w: no grid point of %s stayed finite", dynamo.ErrDiverged, g.field)
	}
	return all[best], all, nil
}

func (g *GridSearch) searchRecursive(depth int, current map[string]float64, out *[]map[string]float64) {
	if depth == len(g.axes) {
		p := make(map[string]float64, len(current))
		for k, v := range current {
			p[k] = v
		}
		*out = append(*out, p)
		return
	}

	axis := g.axes[depth]
	for _, val := range axis.Values {
		current[axis.Param] = val
		g.searchRecursive(depth+1, current, out)
	}
	delete(current, axis.Param)
}
