package physics

import "github.com/vladimirovertheworld/attractors/internal/dynamo"

// Lorenz returns the 1963 convection model with sigma, rho, beta.
func Lorenz() dynamo.VectorField {
	return dynamo.VectorField{
		Name:  "lorenz",
		Title: "Lorenz",
		Derive: func(s dynamo.State, p dynamo.Params) dynamo.State {
			return dynamo.State{p[0] * (s[1] - s[0]), s[0]*(p[1]-s[2]) - s[1], s[0]*s[1] - p[2]*s[2]}
		},
		Params: []dynamo.ParamSpec{
			{Name: "sigma", Default: 10, Min: 0, Max: 50},
			{Name: "rho", Default: 28, Min: 0, Max: 100},
			{Name: "beta", Default: 8.0 / 3.0, Min: 0, Max: 10},
		},
		Initial:     dynamo.State{1, 1, 1},
		Description: "The Lorenz attractor is a classic example of a chaotic system. It was first studied by Edward Lorenz in 1963 and is known for its butterfly-like shape.",
		Link:        "https://arxiv.org/abs/nlin/0501023",
	}
}

// Lorenz83 is the simplified general circulation model, also known as the
// Hadley circulation attractor.
func Lorenz83() dynamo.VectorField {
	return dynamo.VectorField{
		Name:  "lorenz83",
		Title: "Lorenz83",
		Derive: func(s dynamo.State, p dynamo.Params) dynamo.State {
			a, b, f, g := p[0], p[1], p[2], p[3]
			return dynamo.State{
				-a*s[0] - s[1]*s[1] - s[2]*s[2] + a*f,
				-s[1] + s[0]*s[1] - b*s[0]*s[2] + g,
				-s[2] + b*s[0]*s[1] + s[0]*s[2],
			}
		},
		Params: []dynamo.ParamSpec{
			{Name: "a", Default: 0.95, Min: 0, Max: 2},
			{Name: "b", Default: 7.91, Min: 0, Max: 10},
			{Name: "f", Default: 4.83, Min: 0, Max: 10},
			{Name: "g", Default: 4.66, Min: 0, Max: 10},
		},
		Initial:     dynamo.State{0.1, 0.1, 0.1},
		Description: "The Lorenz-83 model is a simplified model of the general atmospheric circulation.",
		Link:        "https://arxiv.org/abs/nlin/0110046",
	}
}

// Rucklidge models double convection in a rotating fluid layer.
func Rucklidge() dynamo.VectorField {
	return dynamo.VectorField{
		Name:  "rucklidge",
		Title: "Rucklidge",
		Derive: func(s dynamo.State, p dynamo.Params) dynamo.State {
			return dynamo.State{-p[0]*s[0] + p[1]*s[1] - s[1]*s[2], s[0], -s[2] + s[1]*s[1]}
		},
		Params: []dynamo.ParamSpec{
			{Name: "a", Default: 2, Min: 0, Max: 5},
			{Name: "k", Default: 6.7, Min: 0, Max: 10},
		},
		Initial:     dynamo.State{0.1, 0.1, 0.1},
		Description: "The Rucklidge attractor models thermal convection in fluids.",
		Link:        "https://arxiv.org/abs/nlin/0508021",
	}
}
