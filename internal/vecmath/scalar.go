package vecmath

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Scalar is the component type of a Vector. Integer vectors keep exact
// arithmetic; transcendental operations go through float64 and back.
type Scalar interface {
	constraints.Integer | constraints.Float
}

// IsFloat reports whether N is a floating-point type.
func IsFloat[N Scalar]() bool {
	one, two := N(1), N(2)
	return one/two != 0
}

// fromFloat converts back into the scalar domain. Integer targets truncate
// toward zero, so sqrt(8) becomes 2.
func fromFloat[N Scalar](f float64) N {
	return N(f)
}

func isFinite[N Scalar](x N) bool {
	f := float64(x)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
