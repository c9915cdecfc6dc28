package dynamo

import "github.com/san-kum/rigidsim/internal/vecmath"

// Force is a vector acting on a body for a number of ticks. An enabled
// force is continuous: it keeps acting regardless of Ticks until disabled.
type Force[N vecmath.Scalar] struct {
	Vector  vecmath.Vector[N]
	Ticks   uint64
	Enabled bool
}

// Impulse acts for exactly one tick.
func Impulse[N vecmath.Scalar](v vecmath.Vector[N]) Force[N] {
	return Force[N]{Vector: v, Ticks: 1}
}

// Uniform acts for the given number of ticks.
func Uniform[N vecmath.Scalar](v vecmath.Vector[N], ticks uint64) Force[N] {
	return Force[N]{Vector: v, Ticks: ticks}
}

// Continuous acts every tick until Enabled is cleared.
func Continuous[N vecmath.Scalar](v vecmath.Vector[N]) Force[N] {
	return Force[N]{Vector: v, Enabled: true}
}

func (f Force[N]) Active() bool {
	return f.Enabled || f.Ticks > 0
}

func (f Force[N]) Clone() Force[N] {
	f.Vector = f.Vector.Clone()
	return f
}

// Age advances force lifetimes by one tick. Enabled forces are kept as is;
// the rest lose one tick and are dropped once they reach zero. The input
// slice is not modified.
func Age[N vecmath.Scalar](forces []Force[N]) []Force[N] {
	kept := make([]Force[N], 0, len(forces))
	for _, f := range forces {
		if f.Enabled {
			kept = append(kept, f)
			continue
		}
		if f.Ticks <= 1 {
			continue
		}
		f.Ticks--
		kept = append(kept, f)
	}
	return kept
}
