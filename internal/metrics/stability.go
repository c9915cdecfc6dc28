package metrics

import (
	"github.com/san-kum/rigidsim/internal/dynamo"
	"github.com/san-kum/rigidsim/internal/vecmath"
)

// Stability is the fraction of ticks in which every body stayed finite and
// below the speed threshold.
type Stability[N vecmath.Scalar] struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability[N vecmath.Scalar](threshold float64) *Stability[N] {
	return &Stability[N]{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability[N]) Name() string {
	return s.name
}

func (s *Stability[N]) Observe(tick int, frames []dynamo.Frame[N]) {
	s.samples++
	for _, f := range frames {
		if !f.Velocity.IsFinite() || !f.Position.IsFinite() || f.Velocity.Norm() > s.threshold {
			s.violations++
			break
		}
	}
}

func (s *Stability[N]) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability[N]) Reset() {
	s.violations = 0
	s.samples = 0
}
