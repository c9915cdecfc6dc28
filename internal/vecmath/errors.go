package vecmath

import "errors"

// Domain errors for vector operations.
var (
	// ErrLengthMismatch indicates a binary operation on vectors of different dimensionality.
	ErrLengthMismatch = errors.New("vecmath: vector length mismatch")

	// ErrIndexOutOfRange indicates a component index outside [0, Len()).
	ErrIndexOutOfRange = errors.New("vecmath: component index out of range")

	// ErrDivisionByZero indicates a zero divisor, scalar or component-wise.
	ErrDivisionByZero = errors.New("vecmath: division by zero")

	// ErrDegenerateVector indicates a zero-magnitude vector where a direction is required.
	ErrDegenerateVector = errors.New("vecmath: degenerate (zero magnitude) vector")
)
