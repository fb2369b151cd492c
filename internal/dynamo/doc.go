// Package dynamo provides the core value types for strange attractor
// integration.
//
// The package defines the data shared by every other package:
//
//   - [State]: a point (x, y, z) in phase space
//   - [VectorField]: a named, parameterized derivative dX/dt = f(X, p)
//   - [ParamSpec]: name, default and valid range of one parameter
//   - [Params]: parameter values ordered like the field's specs
//
// # Example
//
//	field, _ := experiment.Default().Lookup("lorenz")
//	next := integrators.NewEuler().Step(field, field.Initial, field.Defaults(), 0.01)
//
// # Numerics
//
// Nothing in this package clamps or repairs values. A [State] that is no
// longer finite is a legitimate result; callers test it with
// [State.IsFinite] and decide what to show.
package dynamo
