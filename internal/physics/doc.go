// Package physics provides the built-in strange attractors.
//
// Each constructor returns a [dynamo.VectorField] carrying its derivative,
// parameter ranges and a starting point:
//
//   - [Lorenz]: the butterfly attractor
//   - [Rossler]: single-band spiral
//   - [Aizawa]: sphere pierced by a tube
//   - [Thomas]: cyclically symmetric, frictionally damped
//
// [Catalog] lists all of them in display order.
//
// # Starting points
//
// Every field is integrated with a fixed Euler step, so the initial
// conditions are chosen to stay finite at dt = 0.01 with default
// parameters. Chen, for example, starts on its attractor because the
// neighbourhood of the origin overshoots at that step size.
package physics
