package integrators

import (
	"github.com/san-kum/rigidsim/internal/dynamo"
	"github.com/san-kum/rigidsim/internal/vecmath"
)

// Integrator advances a body's velocity and position over dt using the
// acceleration the last world tick assigned to it.
type Integrator[N vecmath.Scalar] interface {
	Name() string
	Step(b dynamo.Movable[N], dt N) error
}

func state[N vecmath.Scalar](b dynamo.Movable[N]) (x, v, a vecmath.Vector[N]) {
	return b.Position(), b.Velocity(), b.Acceleration()
}
