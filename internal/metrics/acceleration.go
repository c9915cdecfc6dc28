package metrics

import (
	"github.com/san-kum/rigidsim/internal/dynamo"
	"github.com/san-kum/rigidsim/internal/vecmath"
)

// PeakAcceleration is the largest |a| of any body over the run.
type PeakAcceleration[N vecmath.Scalar] struct {
	name string
	peak float64
}

func NewPeakAcceleration[N vecmath.Scalar]() *PeakAcceleration[N] {
	return &PeakAcceleration[N]{name: "peak_acceleration"}
}

func (p *PeakAcceleration[N]) Name() string { return p.name }

func (p *PeakAcceleration[N]) Observe(tick int, frames []dynamo.Frame[N]) {
	for _, f := range frames {
		if a := f.Acceleration.Norm(); a > p.peak {
			p.peak = a
		}
	}
}

func (p *PeakAcceleration[N]) Value() float64 { return p.peak }
func (p *PeakAcceleration[N]) Reset()         { p.peak = 0 }
