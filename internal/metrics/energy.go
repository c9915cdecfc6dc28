package metrics

import (
	"math"

	"github.com/san-kum/rigidsim/internal/dynamo"
	"github.com/san-kum/rigidsim/internal/vecmath"
)

// KineticEnergy is the mean over observed ticks of Σ ½·m·|v|².
type KineticEnergy[N vecmath.Scalar] struct {
	name        string
	samples     int
	totalEnergy float64
}

func NewKineticEnergy[N vecmath.Scalar]() *KineticEnergy[N] {
	return &KineticEnergy[N]{name: "kinetic_energy"}
}

func (e *KineticEnergy[N]) Name() string { return e.name }

func (e *KineticEnergy[N]) Observe(tick int, frames []dynamo.Frame[N]) {
	e.totalEnergy += TotalKinetic(frames)
	e.samples++
}

func (e *KineticEnergy[N]) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *KineticEnergy[N]) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// TotalKinetic sums ½·m·|v|² over frames, in float64.
func TotalKinetic[N vecmath.Scalar](frames []dynamo.Frame[N]) float64 {
	ke := 0.0
	for _, f := range frames {
		speed := f.Velocity.Norm()
		ke += 0.5 * float64(f.Mass) * speed * speed
	}
	return ke
}

// Momentum is |Σ m·v| at the most recent tick.
type Momentum[N vecmath.Scalar] struct {
	name    string
	current float64
}

func NewMomentum[N vecmath.Scalar]() *Momentum[N] {
	return &Momentum[N]{name: "momentum"}
}

func (m *Momentum[N]) Name() string { return m.name }

// Observe records NaN when the frames disagree on dimensionality.
func (m *Momentum[N]) Observe(tick int, frames []dynamo.Frame[N]) {
	moments := make([]vecmath.Vector[float64], 0, len(frames))
	for _, f := range frames {
		moments = append(moments, vecmath.Convert[float64](f.Velocity).Scale(float64(f.Mass)))
	}
	total, err := vecmath.Sum(moments...)
	if err != nil {
		m.current = math.NaN()
		return
	}
	m.current = total.Norm()
}

func (m *Momentum[N]) Value() float64 { return m.current }
func (m *Momentum[N]) Reset()         { m.current = 0 }
