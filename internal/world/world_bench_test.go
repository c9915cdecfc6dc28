package world_test

import (
	"testing"

	"github.com/san-kum/rigidsim/internal/dynamo"
	"github.com/san-kum/rigidsim/internal/vecmath"
	"github.com/san-kum/rigidsim/internal/world"
)

func BenchmarkTick(b *testing.B) {
	w := world.New(vecmath.New(0.0, -9.8, 0.0))
	for i := 0; i < 256; i++ {
		p := dynamo.NewParticle("p", 1.0+float64(i%4), vecmath.New(0.0, 0.0, 0.0), vecmath.New(0.0, 0.0, 0.0))
		p.AddForce(dynamo.Continuous(vecmath.New(1.0, 2.0, 3.0)))
		p.AddForce(dynamo.Uniform(vecmath.New(0.5, 0.0, 0.0), 10))
		if err := w.AddObject(p); err != nil {
			b.Fatal(err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := w.Tick(); err != nil {
			b.Fatal(err)
		}
	}
}
