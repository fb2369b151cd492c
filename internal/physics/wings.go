package physics

import "github.com/vladimirovertheworld/attractors/internal/dynamo"

func Dadras() dynamo.VectorField {
	return dynamo.VectorField{
		Name:  "dadras",
		Title: "Dadras",
		Derive: func(s dynamo.State, p dynamo.Params) dynamo.State {
			a, b, c, d, e := p[0], p[1], p[2], p[3], p[4]
			x, y, z := s[0], s[1], s[2]
			return dynamo.State{y - a*x + b*y*z, c*y - x*z + z, d*x*y - e*z}
		},
		Params: []dynamo.ParamSpec{
			{Name: "a", Default: 3, Min: 0, Max: 10},
			{Name: "b", Default: 2.7, Min: 0, Max: 5},
			{Name: "c", Default: 1.7, Min: 0, Max: 5},
			{Name: "d", Default: 2, Min: 0, Max: 5},
			{Name: "e", Default: 9, Min: 0, Max: 20},
		},
		Initial:     dynamo.State{1, 1, 0},
		Description: "The Dadras system is a relatively new chaotic system with a unique butterfly-like structure.",
		Link:        "https://arxiv.org/abs/1008.4044",
	}
}

func FourWing() dynamo.VectorField {
	return dynamo.VectorField{
		Name:  "four-wing",
		Title: "Four-Wing",
		Derive: func(s dynamo.State, p dynamo.Params) dynamo.State {
			a, b, c := p[0], p[1], p[2]
			x, y, z := s[0], s[1], s[2]
			return dynamo.State{a*x + y*z, b*x + c*y - x*z, -z - x*y}
		},
		Params: []dynamo.ParamSpec{
			{Name: "a", Default: 0.2, Min: -1, Max: 1},
			{Name: "b", Default: 0.01, Min: -1, Max: 1},
			{Name: "c", Default: -0.4, Min: -1, Max: 1},
		},
		Initial:     dynamo.State{0.1, 0.1, 0.1},
		Description: "The Four-Wing attractor is a chaotic system that exhibits a unique four-wing butterfly shape.",
		Link:        "https://arxiv.org/abs/1301.0538",
	}
}

func BurkeShaw() dynamo.VectorField {
	return dynamo.VectorField{
		Name:  "burke-shaw",
		Title: "Burke-Shaw",
		Derive: func(s dynamo.State, p dynamo.Params) dynamo.State {
			sc, v := p[0], p[1]
			x, y, z := s[0], s[1], s[2]
			return dynamo.State{-sc * (x + y), -y - sc*x*z, sc*x*y + v}
		},
		Params: []dynamo.ParamSpec{
			{Name: "s", Default: 10, Min: 0, Max: 20},
			{Name: "v", Default: 4.272, Min: 0, Max: 10},
		},
		Initial:     dynamo.State{0.1, 0.1, 0.1},
		Description: "The Burke-Shaw attractor is a three-dimensional chaotic attractor discovered by Bill Burke and Robert Shaw in 1981.",
		Link:        "https://arxiv.org/abs/nlin/0301023",
	}
}
