package integrators

import (
	"fmt"

	"github.com/san-kum/rigidsim/internal/dynamo"
	"github.com/san-kum/rigidsim/internal/vecmath"
)

// Verlet is velocity Verlet with the acceleration held constant over the
// step, which is exact for forces that do not change within a tick.
//
//	x' = x + v*dt + a*dt²/2
//	v' = v + a*dt
type Verlet[N vecmath.Scalar] struct{}

func NewVerlet[N vecmath.Scalar]() *Verlet[N] {
	return &Verlet[N]{}
}

func (vl *Verlet[N]) Name() string { return "verlet" }

func (vl *Verlet[N]) Step(b dynamo.Movable[N], dt N) error {
	x, v, a := state(b)

	half, err := a.Scale(dt * dt).DivScalar(2)
	if err != nil {
		return err
	}
	nx, err := x.Add(v.Scale(dt))
	if err == nil {
		nx, err = nx.Add(half)
	}
	if err != nil {
		return fmt.Errorf("verlet position: %w", err)
	}

	nv, err := v.Add(a.Scale(dt))
	if err != nil {
		return fmt.Errorf("verlet velocity: %w", err)
	}

	b.SetPosition(nx)
	b.SetVelocity(nv)
	return nil
}
