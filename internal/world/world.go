package world

import (
	"errors"
	"fmt"

	"github.com/kamstrup/intmap"

	"github.com/san-kum/rigidsim/internal/dynamo"
	"github.com/san-kum/rigidsim/internal/vecmath"
)

// World owns a set of bodies and a global force field (gravity) applied to
// every one of them each tick. A World is not safe for concurrent use.
type World[N vecmath.Scalar] struct {
	objects []dynamo.Body[N]
	slots   *intmap.Map[int64, int]
	nextID  int64
	gravity vecmath.Vector[N]
}

func New[N vecmath.Scalar](gravity vecmath.Vector[N]) *World[N] {
	return &World[N]{
		objects: make([]dynamo.Body[N], 0),
		slots:   intmap.New[int64, int](64),
		gravity: gravity.Clone(),
	}
}

func (w *World[N]) Gravity() vecmath.Vector[N] { return w.gravity.Clone() }
func (w *World[N]) Len() int                   { return len(w.objects) }

// NextID is the id the next added body will receive.
func (w *World[N]) NextID() int64 { return w.nextID }

// Objects returns the bodies in storage order. The slice is a copy; the
// bodies are not.
func (w *World[N]) Objects() []dynamo.Body[N] {
	out := make([]dynamo.Body[N], len(w.objects))
	copy(out, w.objects)
	return out
}

// AddObject assigns the next sequential id to b and takes ownership of it.
// Adding a body the world already holds fails with dynamo.ErrAlreadyAdded
// and leaves both the world and the body's id untouched.
func (w *World[N]) AddObject(b dynamo.Body[N]) error {
	if slot, ok := w.slots.Get(b.ID()); ok && w.objects[slot] == b {
		return &dynamo.BodyError{ID: b.ID(), Wrapped: dynamo.ErrAlreadyAdded}
	}
	b.SetID(w.nextID)
	w.slots.Put(w.nextID, len(w.objects))
	w.objects = append(w.objects, b)
	w.nextID++
	return nil
}

// Get looks a body up by id.
func (w *World[N]) Get(id int64) (dynamo.Body[N], error) {
	slot, ok := w.slots.Get(id)
	if !ok {
		return nil, &dynamo.BodyError{ID: id, Wrapped: dynamo.ErrNotFound}
	}
	return w.objects[slot], nil
}

// RemoveObject removes the body with b's id. Bodies are matched by id only,
// so transient differences in forces or velocity do not matter.
func (w *World[N]) RemoveObject(b dynamo.Body[N]) error {
	id := b.ID()
	slot, ok := w.slots.Get(id)
	if !ok {
		return &dynamo.BodyError{ID: id, Wrapped: dynamo.ErrNotFound}
	}

	w.objects = append(w.objects[:slot], w.objects[slot+1:]...)
	w.slots.Del(id)
	for i := slot; i < len(w.objects); i++ {
		w.slots.Put(w.objects[i].ID(), i)
	}
	return nil
}

// NetForce sums b's attached forces and gravity, in force-list order.
func (w *World[N]) NetForce(b dynamo.Body[N]) (vecmath.Vector[N], error) {
	sum := vecmath.Zero[N](len(w.gravity))
	for i, f := range b.Forces() {
		next, err := sum.Add(f.Vector)
		if err != nil {
			return nil, fmt.Errorf("force %d: %w", i, err)
		}
		sum = next
	}
	sum, err := sum.Add(w.gravity)
	if err != nil {
		return nil, fmt.Errorf("gravity: %w", err)
	}
	return sum, nil
}

// Tick recomputes every body's acceleration as (Σ forces + gravity) / mass.
// Velocity, position and the force lists are left alone, so calling Tick
// twice without other changes gives the same result.
//
// A body that fails (zero mass, mismatched dimensions) keeps its previous
// acceleration and the remaining bodies are still processed. The failures
// are returned joined, each as a *dynamo.BodyError.
func (w *World[N]) Tick() error {
	var errs []error
	for _, obj := range w.objects {
		if err := w.update(obj); err != nil {
			errs = append(errs, &dynamo.BodyError{ID: obj.ID(), Wrapped: err})
		}
	}
	return errors.Join(errs...)
}

func (w *World[N]) update(obj dynamo.Body[N]) error {
	mass := obj.Mass()
	if mass == 0 {
		return dynamo.ErrZeroMass
	}

	net, err := w.NetForce(obj)
	if err != nil {
		return err
	}

	acc, err := net.DivScalar(mass)
	if err != nil {
		return err
	}
	obj.SetAcceleration(acc)
	return nil
}
