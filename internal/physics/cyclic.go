package physics

import (
	"math"

	"github.com/vladimirovertheworld/attractors/internal/dynamo"
)

// Cyclically symmetric systems: each equation is the previous one with
// (x, y, z) rotated.

func Halvorsen() dynamo.VectorField {
	return dynamo.VectorField{
		Name:  "halvorsen",
		Title: "Halvorsen",
		Derive: func(s dynamo.State, p dynamo.Params) dynamo.State {
			a := p[0]
			x, y, z := s[0], s[1], s[2]
			return dynamo.State{
				-a*x - 4*y - 4*z - y*y,
				-a*y - 4*z - 4*x - z*z,
				-a*z - 4*x - 4*y - x*x,
			}
		},
		Params:      []dynamo.ParamSpec{{Name: "a", Default: 1.4, Min: 0.5, Max: 3}},
		Initial:     dynamo.State{0.1, 0.1, 0.1},
		Description: "The Halvorsen attractor is known for its symmetrical, pretzel-like shape and was discovered by Norwegian mathematician Ingemar Halvorsen.",
		Link:        "https://arxiv.org/abs/1007.1057",
	}
}

func Thomas() dynamo.VectorField {
	return dynamo.VectorField{
		Name:  "thomas",
		Title: "Thomas",
		Derive: func(s dynamo.State, p dynamo.Params) dynamo.State {
			b := p[0]
			return dynamo.State{-b*s[0] + math.Sin(s[1]), -b*s[1] + math.Sin(s[2]), -b*s[2] + math.Sin(s[0])}
		},
		Params:      []dynamo.ParamSpec{{Name: "b", Default: 0.208186, Min: 0, Max: 1}},
		Initial:     dynamo.State{1, 1, 1},
		Description: "The Thomas' cyclically symmetric attractor was discovered by René Thomas. It's known for its highly symmetric structure.",
		Link:        "https://arxiv.org/abs/nlin/0107044",
	}
}

// Rikitake is the two-disc dynamo model of geomagnetic reversals.
func Rikitake() dynamo.VectorField {
	return dynamo.VectorField{
		Name:  "rikitake",
		Title: "Rikitake",
		Derive: func(s dynamo.State, p dynamo.Params) dynamo.State {
			mu, nu := p[0], p[1]
			return dynamo.State{mu*s[0] - nu*s[1]*s[2], mu*s[1] - nu*s[0]*s[2], -s[2] + s[0]*s[1]}
		},
		Params: []dynamo.ParamSpec{
			{Name: "mu", Default: 2, Min: 0, Max: 5},
			{Name: "nu", Default: 0.1, Min: 0, Max: 1},
		},
		Initial:     dynamo.State{0.1, 0.1, 0.1},
		Description: "The Rikitake system models the reversals of the Earth's magnetic field with two coupled disc dynamos.",
	}
}
