package integrators

import (
	"testing"

	"github.com/san-kum/rigidsim/internal/dynamo"
	"github.com/san-kum/rigidsim/internal/vecmath"
)

func benchBody() *dynamo.Particle[float64] {
	p := dynamo.NewParticle("bench", 1.0, vecmath.New(0.0, 0.0, 0.0), vecmath.New(1.0, 0.0, 0.0))
	p.SetAcceleration(vecmath.New(0.0, -9.8, 0.0))
	return p
}

func benchmarkIntegrator(b *testing.B, integrator Integrator[float64]) {
	p := benchBody()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := integrator.Step(p, 0.01); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEuler(b *testing.B) {
	benchmarkIntegrator(b, NewEuler[float64]())
}

func BenchmarkSemiImplicitEuler(b *testing.B) {
	benchmarkIntegrator(b, NewSemiImplicitEuler[float64]())
}

func BenchmarkVerlet(b *testing.B) {
	benchmarkIntegrator(b, NewVerlet[float64]())
}

func BenchmarkVerletInt(b *testing.B) {
	integrator := NewVerlet[int64]()
	p := dynamo.NewParticle("bench", int64(1), vecmath.New[int64](0, 0), vecmath.New[int64](1, 0))
	p.SetAcceleration(vecmath.New[int64](0, -2))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := integrator.Step(p, 1); err != nil {
			b.Fatal(err)
		}
	}
}
