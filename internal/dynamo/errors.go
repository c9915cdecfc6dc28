package dynamo

import (
	"errors"
	"fmt"

	"github.com/san-kum/rigidsim/internal/vecmath"
)

// Domain errors for body and world operations.
var (
	// ErrZeroMass indicates a body whose mass cannot divide its net force.
	ErrZeroMass = errors.New("dynamo: body has zero mass")

	// ErrNotFound indicates a body that is not part of the world.
	ErrNotFound = errors.New("dynamo: body not found")

	// ErrAlreadyAdded indicates a body that is already stored in the world.
	ErrAlreadyAdded = errors.New("dynamo: body already in world")

	// ErrIndexOutOfRange indicates a force index outside the body's force list.
	ErrIndexOutOfRange = vecmath.ErrIndexOutOfRange
)

// BodyError wraps an error with the id of the body it concerns.
type BodyError struct {
	ID      int64
	Wrapped error
}

func (e *BodyError) Error() string {
	return fmt.Sprintf("body %d: %v", e.ID, e.Wrapped)
}

func (e *BodyError) Unwrap() error {
	return e.Wrapped
}
