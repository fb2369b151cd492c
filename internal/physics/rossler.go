package physics

import "github.com/vladimirovertheworld/attractors/internal/dynamo"

func Rossler() dynamo.VectorField {
	return dynamo.VectorField{
		Name:  "rossler",
		Title: "Rössler",
		Derive: func(s dynamo.State, p dynamo.Params) dynamo.State {
			return dynamo.State{-s[1] - s[2], s[0] + p[0]*s[1], p[1] + s[2]*(s[0]-p[2])}
		},
		Params: []dynamo.ParamSpec{
			{Name: "a", Default: 0.2, Min: 0, Max: 1},
			{Name: "b", Default: 0.2, Min: 0, Max: 2},
			{Name: "c", Default: 5.7, Min: 0, Max: 20},
		},
		Initial:     dynamo.State{1, 1, 1},
		Description: "The Rössler attractor was discovered by Otto Rössler in 1976. It's known for its simple equations but complex behavior.",
		Link:        "https://arxiv.org/abs/nlin/0502028",
	}
}

// Aizawa has a spherical body with a tube along the z axis.
func Aizawa() dynamo.VectorField {
	return dynamo.VectorField{
		Name:  "aizawa",
		Title: "Aizawa",
		Derive: func(s dynamo.State, p dynamo.Params) dynamo.State {
			a, b, c, d, e, f := p[0], p[1], p[2], p[3], p[4], p[5]
			x, y, z := s[0], s[1], s[2]
			return dynamo.State{
				(z-b)*x - d*y,
				d*x + (z-b)*y,
				c + a*z - z*z*z/3 - (x*x+y*y)*(1+e*z) + f*z*x*x*x,
			}
		},
		Params: []dynamo.ParamSpec{
			{Name: "a", Default: 0.95, Min: 0, Max: 2},
			{Name: "b", Default: 0.7, Min: 0, Max: 2},
			{Name: "c", Default: 0.6, Min: 0, Max: 2},
			{Name: "d", Default: 3.5, Min: 0, Max: 5},
			{Name: "e", Default: 0.25, Min: 0, Max: 1},
			{Name: "f", Default: 0.1, Min: 0, Max: 1},
		},
		Initial:     dynamo.State{0.1, 0, 0},
		Description: "The Aizawa attractor is a lesser-known but visually striking attractor with a unique spiral structure.",
		Link:        "https://arxiv.org/abs/1101.2124",
	}
}

// Chen starts on the attractor: from the origin's neighbourhood an Euler
// step of 0.01 overshoots and escapes.
func Chen() dynamo.VectorField {
	return dynamo.VectorField{
		Name:  "chen",
		Title: "Chen",
		Derive: func(s dynamo.State, p dynamo.Params) dynamo.State {
			a, b, c := p[0], p[1], p[2]
			return dynamo.State{a * (s[1] - s[0]), (c-a)*s[0] - s[0]*s[2] + c*s[1], s[0]*s[1] - b*s[2]}
		},
		Params: []dynamo.ParamSpec{
			{Name: "a", Default: 35, Min: 20, Max: 50},
			{Name: "b", Default: 3, Min: 0, Max: 10},
			{Name: "c", Default: 28, Min: 10, Max: 35},
		},
		Initial:     dynamo.State{5, 2, 26},
		Description: "The Chen system is a three-dimensional flow that exhibits chaotic behavior. It was discovered by Guanrong Chen and Tetsushi Ueta in 1999.",
		Link:        "https://arxiv.org/abs/nlin/0307009",
	}
}
