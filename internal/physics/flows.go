package physics

import "github.com/vladimirovertheworld/attractors/internal/dynamo"

func RabinovichFabrikant() dynamo.VectorField {
	return dynamo.VectorField{
		Name:  "rabinovich-fabrikant",
		Title: "Rabinovich-Fabrikant",
		Derive: func(s dynamo.State, p dynamo.Params) dynamo.State {
			alpha, gamma := p[0], p[1]
			x, y, z := s[0], s[1], s[2]
			return dynamo.State{
				y*(z-1+x*x) + gamma*x,
				x*(3*z+1-x*x) + gamma*y,
				-2 * z * (alpha + x*y),
			}
		},
		Params: []dynamo.ParamSpec{
			{Name: "alpha", Default: 0.14, Min: 0, Max: 1},
			{Name: "gamma", Default: 0.10, Min: 0, Max: 1},
		},
		Initial:     dynamo.State{0.1, 0.1, 0.1},
		Description: "The Rabinovich-Fabrikant equations model the stochasticity in a plasma.",
		Link:        "https://arxiv.org/abs/1604.02081",
	}
}

func Tamari() dynamo.VectorField {
	return dynamo.VectorField{
		Name:  "tamari",
		Title: "Tamari",
		Derive: func(s dynamo.State, p dynamo.Params) dynamo.State {
			a, b, c := p[0], p[1], p[2]
			x, y, z := s[0], s[1], s[2]
			return dynamo.State{y - a*x, b*x - y*y - z*z, x*y - c*z}
		},
		Params: []dynamo.ParamSpec{
			{Name: "a", Default: 1.5, Min: 0, Max: 3},
			{Name: "b", Default: 0.8, Min: 0, Max: 2},
			{Name: "c", Default: 2.5, Min: 0, Max: 5},
		},
		Initial:     dynamo.State{0.1, 0.1, 0.1},
		Description: "The Tamari attractor is a lesser-known chaotic system with interesting properties.",
		Link:        "https://arxiv.org/abs/1706.05364",
	}
}

func Bouali() dynamo.VectorField {
	return dynamo.VectorField{
		Name:  "bouali",
		Title: "Bouali",
		Derive: func(s dynamo.State, p dynamo.Params) dynamo.State {
			alpha, beta := p[0], p[1]
			x, y, z := s[0], s[1], s[2]
			return dynamo.State{x*(4-y) + alpha*z, -y * (1 - x*x), -x * (beta + z)}
		},
		Params: []dynamo.ParamSpec{
			{Name: "alpha", Default: 0.3, Min: 0, Max: 1},
			{Name: "beta", Default: 0.7, Min: 0, Max: 2},
		},
		Initial:     dynamo.State{0.1, 0.1, 0.1},
		Description: "The Bouali system couples a predator-prey style oscillator with a third damping variable.",
	}
}

// LotkaVolterra extends the predator-prey pair with a third species fed by
// their encounters.
func LotkaVolterra() dynamo.VectorField {
	return dynamo.VectorField{
		Name:  "lotka-volterra",
		Title: "Lotka-Volterra",
		Derive: func(s dynamo.State, p dynamo.Params) dynamo.State {
			alpha, beta, delta, gamma := p[0], p[1], p[2], p[3]
			x, y, z := s[0], s[1], s[2]
			return dynamo.State{alpha*x - beta*x*y, -gamma*y + delta*x*y, -z + x*y}
		},
		Params: []dynamo.ParamSpec{
			{Name: "alpha", Default: 1.5, Min: 0, Max: 3},
			{Name: "beta", Default: 1, Min: 0, Max: 3},
			{Name: "delta", Default: 1, Min: 0, Max: 3},
			{Name: "gamma", Default: 3, Min: 0, Max: 5},
		},
		Initial:     dynamo.State{0.1, 0.1, 0.1},
		Description: "A three-species Lotka-Volterra food chain.",
	}
}
