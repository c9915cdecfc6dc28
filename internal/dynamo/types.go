package dynamo

import "github.com/san-kum/rigidsim/internal/vecmath"

// Frame is a snapshot of one body after a tick and its integration step.
type Frame[N vecmath.Scalar] struct {
	Tick         int
	ID           int64
	Mass         N
	Position     vecmath.Vector[N]
	Velocity     vecmath.Vector[N]
	Acceleration vecmath.Vector[N]
}

// Capture snapshots b. Position is left nil for bodies that are not Movable.
func Capture[N vecmath.Scalar](tick int, b Body[N]) Frame[N] {
	f := Frame[N]{
		Tick:         tick,
		ID:           b.ID(),
		Mass:         b.Mass(),
		Velocity:     b.Velocity(),
		Acceleration: b.Acceleration(),
	}
	if m, ok := b.(Movable[N]); ok {
		f.Position = m.Position()
	}
	return f
}

type Metric[N vecmath.Scalar] interface {
	Name() string
	Observe(tick int, frames []Frame[N])
	Value() float64
	Reset()
}

type Observer[N vecmath.Scalar] interface {
	OnTick(tick int, frames []Frame[N])
}
