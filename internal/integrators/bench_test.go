package integrators

import (
	"testing"

	"github.com/vladimirovertheworld/attractors/internal/physics"
)

func BenchmarkEuler(b *testing.B) {
	integrator := NewEuler()
	field := physics.Lorenz()
	p := field.Defaults()
	x := field.Initial

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(field, x, p, 0.01)
	}
}

func BenchmarkEuler_Aizawa(b *testing.B) {
	integrator := NewEuler()
	field := physics.Aizawa()
	p := field.Defaults()
	x := field.Initial

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(field, x, p, 0.01)
	}
}

func BenchmarkBatch10k(b *testing.B) {
	integrator := NewEuler()
	field := physics.Lorenz()
	p := field.Defaults()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := integrator.Batch(field, p, field.Initial, 10000, 0, 50); err != nil {
			b.Fatal(err)
		}
	}
}
