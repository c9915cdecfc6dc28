package dynamo

import (
	"fmt"

	"github.com/san-kum/rigidsim/internal/vecmath"
)

// Body is what a world needs from a simulated entity. The id is assigned by
// the world when the body is added and is not changed afterwards.
type Body[N vecmath.Scalar] interface {
	ID() int64
	SetID(id int64)

	Mass() N
	SetMass(m N)

	Velocity() vecmath.Vector[N]
	SetVelocity(v vecmath.Vector[N])

	Acceleration() vecmath.Vector[N]
	SetAcceleration(a vecmath.Vector[N])

	Forces() []Force[N]
	AddForce(f Force[N])
	RemoveForce(i int) error
	SetForces(forces []Force[N])
}

// Movable is a body with a position, which integrators can advance.
type Movable[N vecmath.Scalar] interface {
	Body[N]
	Position() vecmath.Vector[N]
	SetPosition(p vecmath.Vector[N])
}

// Particle is a point mass. Getters hand out copies so callers cannot
// change its state behind the setters.
type Particle[N vecmath.Scalar] struct {
	Name string

	id           int64
	mass         N
	position     vecmath.Vector[N]
	velocity     vecmath.Vector[N]
	acceleration vecmath.Vector[N]
	forces       []Force[N]
}

var _ Movable[float64] = (*Particle[float64])(nil)

func NewParticle[N vecmath.Scalar](name string, mass N, position, velocity vecmath.Vector[N]) *Particle[N] {
	return &Particle[N]{
		Name:         name,
		id:           -1,
		mass:         mass,
		position:     position.Clone(),
		velocity:     velocity.Clone(),
		acceleration: vecmath.Zero[N](len(velocity)),
	}
}

func (p *Particle[N]) ID() int64      { return p.id }
func (p *Particle[N]) SetID(id int64) { p.id = id }
func (p *Particle[N]) Mass() N        { return p.mass }
func (p *Particle[N]) SetMass(m N)    { p.mass = m }

func (p *Particle[N]) Position() vecmath.Vector[N]         { return p.position.Clone() }
func (p *Particle[N]) SetPosition(v vecmath.Vector[N])     { p.position = v.Clone() }
func (p *Particle[N]) Velocity() vecmath.Vector[N]         { return p.velocity.Clone() }
func (p *Particle[N]) SetVelocity(v vecmath.Vector[N])     { p.velocity = v.Clone() }
func (p *Particle[N]) Acceleration() vecmath.Vector[N]     { return p.acceleration.Clone() }
func (p *Particle[N]) SetAcceleration(a vecmath.Vector[N]) { p.acceleration = a.Clone() }

func (p *Particle[N]) Forces() []Force[N] {
	out := make([]Force[N], len(p.forces))
	for i, f := range p.forces {
		out[i] = f.Clone()
	}
	return out
}

func (p *Particle[N]) AddForce(f Force[N]) {
	p.forces = append(p.forces, f.Clone())
}

func (p *Particle[N]) RemoveForce(i int) error {
	if i < 0 || i >= len(p.forces) {
		return fmt.Errorf("%w: force %d of %d", ErrIndexOutOfRange, i, len(p.forces))
	}
	p.forces = append(p.forces[:i], p.forces[i+1:]...)
	return nil
}

func (p *Particle[N]) SetForces(forces []Force[N]) {
	p.forces = make([]Force[N], len(forces))
	for i, f := range forces {
		p.forces[i] = f.Clone()
	}
}

func (p *Particle[N]) String() string {
	return fmt.Sprintf("%s#%d(m=%v x=%v v=%v a=%v)", p.Name, p.id, p.mass, p.position, p.velocity, p.acceleration)
}
