package physics

import "github.com/vladimirovertheworld/attractors/internal/dynamo"

func Sprott() dynamo.VectorField {
	return dynamo.VectorField{
		Name:  "sprott",
		Title: "Sprott",
		Derive: func(s dynamo.State, p dynamo.Params) dynamo.State {
			a := p[0]
			x, y, z := s[0], s[1], s[2]
			return dynamo.State{y + a*x*y + x*z, 1 - a*x*x + y*z, x - x*x - y*y}
		},
		Params:      []dynamo.ParamSpec{{Name: "a", Default: 2.07, Min: 0, Max: 3}},
		Initial:     dynamo.State{0.1, 0.1, 0.1},
		Description: "The Sprott attractor is one of many chaotic systems discovered by Julien C. Sprott through a systematic search of simple chaotic flows.",
		Link:        "https://arxiv.org/abs/nlin/0507037",
	}
}

func NoseHoover() dynamo.VectorField {
	return dynamo.VectorField{
		Name:  "nose-hoover",
		Title: "Nose-Hoover",
		Derive: func(s dynamo.State, p dynamo.Params) dynamo.State {
			return dynamo.State{s[1], -s[0] + s[1]*s[2], p[0] - s[1]*s[1]}
		},
		Params:      []dynamo.ParamSpec{{Name: "a", Default: 1.5, Min: 0, Max: 5}},
		Initial:     dynamo.State{0.1, 0.1, 0.1},
		Description: "The Nose-Hoover oscillator is used in molecular dynamics simulations.",
		Link:        "https://arxiv.org/abs/1609.00767",
	}
}

// GenesioTesi is a jerk system: x''' depends on x, x', x''.
func GenesioTesi() dynamo.VectorField {
	return dynamo.VectorField{
		Name:  "genesio-tesi",
		Title: "Genesio-Tesi",
		Derive: func(s dynamo.State, p dynamo.Params) dynamo.State {
			a, b, c := p[0], p[1], p[2]
			return dynamo.State{s[1], s[2], -a*s[0] - b*s[1] - c*s[2] + s[0]*s[0]}
		},
		Params: []dynamo.ParamSpec{
			{Name: "a", Default: 1.2, Min: 0, Max: 3},
			{Name: "b", Default: 2.92, Min: 0, Max: 5},
			{Name: "c", Default: 5, Min: 0, Max: 10},
		},
		Initial:     dynamo.State{0.1, 0.1, 0.1},
		Description: "The Genesio-Tesi system is a third-order jerk equation with a single quadratic nonlinearity.",
	}
}

// MooreSpiegel is also a jerk system.
func MooreSpiegel() dynamo.VectorField {
	return dynamo.VectorField{
		Name:  "moore-spiegel",
		Title: "Moore-Spiegel",
		Derive: func(s dynamo.State, p dynamo.Params) dynamo.State {
			a, c := p[0], p[1]
			x := s[0]
			return dynamo.State{s[1], s[2], -s[2] - (a-c*x*x)*s[1] - c*x}
		},
		Params: []dynamo.ParamSpec{
			{Name: "a", Default: 100, Min: 0, Max: 200},
			{Name: "c", Default: 0.5, Min: 0, Max: 2},
		},
		Initial:     dynamo.State{0.1, 0.1, 0.1},
		Description: "The Moore-Spiegel oscillator is a model for the dynamo of a star.",
		Link:        "https://arxiv.org/abs/1409.3554",
	}
}
