package integrators

import (
	"fmt"

	"github.com/san-kum/rigidsim/internal/dynamo"
	"github.com/san-kum/rigidsim/internal/vecmath"
)

// Euler is the explicit scheme: position moves with the old velocity.
type Euler[N vecmath.Scalar] struct{}

func NewEuler[N vecmath.Scalar]() *Euler[N] {
	return &Euler[N]{}
}

func (e *Euler[N]) Name() string { return "euler" }

func (e *Euler[N]) Step(b dynamo.Movable[N], dt N) error {
	x, v, a := state(b)

	nx, err := x.Add(v.Scale(dt))
	if err != nil {
		return fmt.Errorf("euler position: %w", err)
	}
	nv, err := v.Add(a.Scale(dt))
	if err != nil {
		return fmt.Errorf("euler velocity: %w", err)
	}

	b.SetPosition(nx)
	b.SetVelocity(nv)
	return nil
}

// SemiImplicitEuler updates velocity first and moves with the new one.
// It is symplectic, so orbits and oscillators do not gain energy.
type SemiImplicitEuler[N vecmath.Scalar] struct{}

func NewSemiImplicitEuler[N vecmath.Scalar]() *SemiImplicitEuler[N] {
	return &SemiImplicitEuler[N]{}
}

func (s *SemiImplicitEuler[N]) Name() string { return "symplectic" }

func (s *SemiImplicitEuler[N]) Step(b dynamo.Movable[N], dt N) error {
	x, v, a := state(b)

	nv, err := v.Add(a.Scale(dt))
	if err != nil {
		return fmt.Errorf("symplectic velocity: %w", err)
	}
	nx, err := x.Add(nv.Scale(dt))
	if err != nil {
		return fmt.Errorf("symplectic position: %w", err)
	}

	b.SetPosition(nx)
	b.SetVelocity(nv)
	return nil
}
