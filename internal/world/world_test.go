package world_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/rigidsim/internal/dynamo"
	"github.com/san-kum/rigidsim/internal/vecmath"
	"github.com/san-kum/rigidsim/internal/world"
)

func particle(name string, mass float64) *dynamo.Particle[float64] {
	return dynamo.NewParticle(name, mass, vecmath.New(0.0, 0.0), vecmath.New(0.0, 0.0))
}

var _ = Describe("World", func() {
	var (
		w       *world.World[float64]
		gravity vecmath.Vector[float64]
	)

	BeforeEach(func() {
		gravity = vecmath.New(0.0, -9.8)
		w = world.New(gravity)
	})

	Describe("AddObject", func() {
		It("assigns sequential ids starting at zero", func() {
			bodies := []*dynamo.Particle[float64]{particle("a", 1), particle("b", 1), particle("c", 1)}
			for _, b := range bodies {
				Expect(w.AddObject(b)).To(Succeed())
			}

			for i, b := range bodies {
				Expect(b.ID()).To(Equal(int64(i)))
			}
			Expect(w.Len()).To(Equal(3))
			Expect(w.NextID()).To(Equal(int64(3)))
		})

		It("never reuses an id after removal", func() {
			a, b := particle("a", 1), particle("b", 1)
			Expect(w.AddObject(a)).To(Succeed())
			Expect(w.RemoveObject(a)).To(Succeed())
			Expect(w.AddObject(b)).To(Succeed())

			Expect(b.ID()).To(Equal(int64(1)))
		})

		It("rejects a body it already holds", func() {
			a := particle("a", 1)
			Expect(w.AddObject(a)).To(Succeed())

			err := w.AddObject(a)
			Expect(err).To(MatchError(dynamo.ErrAlreadyAdded))

			Expect(w.Len()).To(Equal(1))
			Expect(w.NextID()).To(Equal(int64(1)))
			Expect(a.ID()).To(Equal(int64(0)))
			got, err := w.Get(0)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.ID()).To(Equal(int64(0)))
		})

		It("accepts the same body again after it was removed", func() {
			a := particle("a", 1)
			Expect(w.AddObject(a)).To(Succeed())
			Expect(w.RemoveObject(a)).To(Succeed())
			Expect(w.AddObject(a)).To(Succeed())

			Expect(a.ID()).To(Equal(int64(1)))
			Expect(w.Len()).To(Equal(1))
		})
	})

	Describe("RemoveObject", func() {
		It("removes by id and keeps lookups consistent", func() {
			a, b, c := particle("a", 1), particle("b", 1), particle("c", 1)
			Expect(w.AddObject(a)).To(Succeed())
			Expect(w.AddObject(b)).To(Succeed())
			Expect(w.AddObject(c)).To(Succeed())

			Expect(w.RemoveObject(a)).To(Succeed())
			Expect(w.Len()).To(Equal(2))

			got, err := w.Get(c.ID())
			Expect(err).NotTo(HaveOccurred())
			Expect(got.ID()).To(Equal(c.ID()))

			_, err = w.Get(a.ID())
			Expect(err).To(MatchError(dynamo.ErrNotFound))
		})

		It("matches a body whose state differs from the stored one", func() {
			a := particle("a", 1)
			Expect(w.AddObject(a)).To(Succeed())

			probe := particle("probe", 99)
			probe.SetID(a.ID())
			probe.AddForce(dynamo.Impulse(vecmath.New(1.0, 1.0)))

			Expect(w.RemoveObject(probe)).To(Succeed())
			Expect(w.Len()).To(BeZero())
		})

		It("reports NotFound instead of panicking", func() {
			stranger := particle("x", 1)
			stranger.SetID(42)

			err := w.RemoveObject(stranger)
			Expect(err).To(MatchError(dynamo.ErrNotFound))

			var be *dynamo.BodyError
			Expect(errors.As(err, &be)).To(BeTrue())
			Expect(be.ID).To(Equal(int64(42)))
		})
	})

	Describe("Tick", func() {
		It("divides forces plus gravity by mass", func() {
			b := particle("ball", 2.0)
			b.AddForce(dynamo.Impulse(vecmath.New(4.0, 0.0)))
			Expect(w.AddObject(b)).To(Succeed())

			Expect(w.Tick()).To(Succeed())
			Expect(b.Acceleration()).To(Equal(vecmath.New(2.0, -4.9)))
		})

		It("matches (f1 + f2 + g) / m exactly", func() {
			f1, f2 := vecmath.New(1.25, 3.5), vecmath.New(-0.75, 0.125)
			b := particle("ball", 4.0)
			b.AddForce(dynamo.Uniform(f1, 10))
			b.AddForce(dynamo.Continuous(f2))
			Expect(w.AddObject(b)).To(Succeed())

			s, _ := f1.Add(f2)
			s, _ = s.Add(gravity)
			want, _ := s.DivScalar(4.0)

			Expect(w.Tick()).To(Succeed())
			Expect(b.Acceleration()).To(Equal(want))
		})

		It("applies gravity alone to a body without forces", func() {
			b := particle("rock", 1.0)
			Expect(w.AddObject(b)).To(Succeed())

			Expect(w.Tick()).To(Succeed())
			Expect(b.Acceleration()).To(Equal(vecmath.New(0.0, -9.8)))
		})

		It("is idempotent and leaves forces and velocity alone", func() {
			b := particle("ball", 2.0)
			b.SetVelocity(vecmath.New(1.0, 1.0))
			b.AddForce(dynamo.Impulse(vecmath.New(4.0, 0.0)))
			Expect(w.AddObject(b)).To(Succeed())

			Expect(w.Tick()).To(Succeed())
			first := b.Acceleration()
			Expect(w.Tick()).To(Succeed())

			Expect(b.Acceleration()).To(Equal(first))
			Expect(b.Forces()).To(HaveLen(1))
			Expect(b.Forces()[0].Ticks).To(Equal(uint64(1)))
			Expect(b.Velocity()).To(Equal(vecmath.New(1.0, 1.0)))
		})

		It("reports zero mass and still updates the other bodies", func() {
			massless := particle("ghost", 0)
			massless.SetAcceleration(vecmath.New(7.0, 7.0))
			ok := particle("ball", 1.0)
			Expect(w.AddObject(massless)).To(Succeed())
			Expect(w.AddObject(ok)).To(Succeed())

			err := w.Tick()
			Expect(err).To(MatchError(dynamo.ErrZeroMass))

			var be *dynamo.BodyError
			Expect(errors.As(err, &be)).To(BeTrue())
			Expect(be.ID).To(Equal(massless.ID()))

			Expect(massless.Acceleration()).To(Equal(vecmath.New(7.0, 7.0)))
			Expect(ok.Acceleration()).To(Equal(vecmath.New(0.0, -9.8)))
		})

		It("rejects forces of the wrong dimensionality", func() {
			b := particle("ball", 1.0)
			b.AddForce(dynamo.Impulse(vecmath.New(1.0, 2.0, 3.0)))
			Expect(w.AddObject(b)).To(Succeed())

			Expect(w.Tick()).To(MatchError(vecmath.ErrLengthMismatch))
		})
	})

	Describe("integer scalars", func() {
		It("uses integer division for acceleration", func() {
			iw := world.New(vecmath.New[int64](0, -10))
			b := dynamo.NewParticle[int64]("block", 2, vecmath.New[int64](0, 0), vecmath.New[int64](0, 0))
			b.AddForce(dynamo.Impulse(vecmath.New[int64](5, 0)))
			Expect(iw.AddObject(b)).To(Succeed())

			Expect(iw.Tick()).To(Succeed())
			Expect(b.Acceleration()).To(Equal(vecmath.New[int64](2, -5)))
		})
	})
})
