package vecmath

import (
	"fmt"
	"math"
)

// Vector is an ordered list of components. Its dimensionality belongs to
// the instance and can change at runtime.
//
// Binary operations never modify their operands; they allocate the result.
// A Vector is a slice, so plain assignment aliases. Use Clone for an
// independent copy.
type Vector[N Scalar] []N

// New returns a vector holding a copy of the given components.
func New[N Scalar](components ...N) Vector[N] {
	v := make(Vector[N], len(components))
	copy(v, components)
	return v
}

// Zero returns a zero vector of the given dimensionality.
func Zero[N Scalar](dim int) Vector[N] {
	return make(Vector[N], dim)
}

func (v Vector[N]) Len() int { return len(v) }

func (v Vector[N]) Clone() Vector[N] {
	c := make(Vector[N], len(v))
	copy(c, v)
	return c
}

// Equal compares exactly, component by component. Vectors of different
// length are never equal.
func (v Vector[N]) Equal(o Vector[N]) bool {
	if len(v) != len(o) {
		return false
	}
	for i := range v {
		if v[i] != o[i] {
			return false
		}
	}
	return true
}

func (v Vector[N]) String() string {
	return fmt.Sprintf("%v", []N(v))
}

func (v Vector[N]) At(i int) (N, error) {
	if i < 0 || i >= len(v) {
		var zero N
		return zero, fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, i, len(v))
	}
	return v[i], nil
}

func (v Vector[N]) Set(i int, x N) error {
	if i < 0 || i >= len(v) {
		return fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, i, len(v))
	}
	v[i] = x
	return nil
}

// AddComponent appends x as a new trailing dimension.
func (v *Vector[N]) AddComponent(x N) {
	*v = append(*v, x)
}

// RemoveComponent drops the component at index i, shifting the rest down.
func (v *Vector[N]) RemoveComponent(i int) error {
	if i < 0 || i >= len(*v) {
		return fmt.Errorf("%w: remove index %d, length %d", ErrIndexOutOfRange, i, len(*v))
	}
	*v = append((*v)[:i], (*v)[i+1:]...)
	return nil
}

func (v Vector[N]) Add(o Vector[N]) (Vector[N], error) {
	if err := sameLen("add", v, o); err != nil {
		return nil, err
	}
	result := make(Vector[N], len(v))
	for i := range v {
		result[i] = v[i] + o[i]
	}
	return result, nil
}

func (v Vector[N]) Sub(o Vector[N]) (Vector[N], error) {
	if err := sameLen("sub", v, o); err != nil {
		return nil, err
	}
	result := make(Vector[N], len(v))
	for i := range v {
		result[i] = v[i] - o[i]
	}
	return result, nil
}

// Dot returns the sum of component-wise products.
func (v Vector[N]) Dot(o Vector[N]) (N, error) {
	if err := sameLen("dot", v, o); err != nil {
		return 0, err
	}
	var sum N
	for i := range v {
		sum += v[i] * o[i]
	}
	return sum, nil
}

func (v Vector[N]) Scale(factor N) Vector[N] {
	result := make(Vector[N], len(v))
	for i := range v {
		result[i] = v[i] * factor
	}
	return result
}

// Div divides component-wise. Any zero component in o fails the whole
// operation.
func (v Vector[N]) Div(o Vector[N]) (Vector[N], error) {
	if err := sameLen("div", v, o); err != nil {
		return nil, err
	}
	result := make(Vector[N], len(v))
	for i := range v {
		if o[i] == 0 {
			return nil, fmt.Errorf("%w: divisor component %d", ErrDivisionByZero, i)
		}
		result[i] = v[i] / o[i]
	}
	return result, nil
}

// DivScalar divides every component by s. Integer vectors use integer
// division.
func (v Vector[N]) DivScalar(s N) (Vector[N], error) {
	if s == 0 {
		return nil, ErrDivisionByZero
	}
	result := make(Vector[N], len(v))
	for i := range v {
		result[i] = v[i] / s
	}
	return result, nil
}

// Norm is the Euclidean length as float64, without any rounding back into N.
func (v Vector[N]) Norm() float64 {
	sum := 0.0
	for _, x := range v {
		f := float64(x)
		sum += f * f
	}
	return math.Sqrt(sum)
}

// Magnitude is the Euclidean length in the scalar domain. For integer
// vectors the square root is taken in float64 and truncated, so
// Magnitude([1 1]) == 1.
func (v Vector[N]) Magnitude() N {
	return fromFloat[N](v.Norm())
}

// Normalized divides v by its Magnitude. Integer vectors lose almost all
// precision here: [3 4] normalizes to [0 0].
func (v Vector[N]) Normalized() (Vector[N], error) {
	m := v.Magnitude()
	if m == 0 {
		return nil, ErrDegenerateVector
	}
	return v.DivScalar(m)
}

// DistanceSquared is the exact sum of squared component differences, taken
// in N. Narrow integer types wrap on overflow; use Distance when the squared
// sum may not fit.
func (v Vector[N]) DistanceSquared(o Vector[N]) (N, error) {
	if err := sameLen("distance", v, o); err != nil {
		return 0, err
	}
	var sum N
	for i := range v {
		d := v[i] - o[i]
		sum += d * d
	}
	return sum, nil
}

// Distance is the Euclidean distance. Differences and squares are summed in
// float64, like Norm, and the result is truncated for integer vectors.
func (v Vector[N]) Distance(o Vector[N]) (N, error) {
	if err := sameLen("distance", v, o); err != nil {
		return 0, err
	}
	sum := 0.0
	for i := range v {
		d := float64(v[i]) - float64(o[i])
		sum += d * d
	}
	return fromFloat[N](math.Sqrt(sum)), nil
}

// Angle returns the angle between v and o in radians, in [0, π]. The cosine
// is clamped to [-1, 1] before arccos so round-off cannot produce NaN.
func (v Vector[N]) Angle(o Vector[N]) (float64, error) {
	if err := sameLen("angle", v, o); err != nil {
		return 0, err
	}
	nv, no := v.Norm(), o.Norm()
	if nv == 0 || no == 0 {
		return 0, ErrDegenerateVector
	}
	dot := 0.0
	for i := range v {
		dot += float64(v[i]) * float64(o[i])
	}
	cos := dot / (nv * no)
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos), nil
}

// IsFinite reports whether every component is neither NaN nor infinite.
func (v Vector[N]) IsFinite() bool {
	for _, x := range v {
		if !isFinite(x) {
			return false
		}
	}
	return true
}

// Float64s returns the components widened to float64.
func (v Vector[N]) Float64s() []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}

// Convert changes the scalar type. Float to integer truncates toward zero.
func Convert[M, N Scalar](v Vector[N]) Vector[M] {
	out := make(Vector[M], len(v))
	for i, x := range v {
		out[i] = M(x)
	}
	return out
}

func sameLen[N Scalar](op string, a, b Vector[N]) error {
	if len(a) != len(b) {
		return fmt.Errorf("%w: %s of %d and %d components", ErrLengthMismatch, op, len(a), len(b))
	}
	return nil
}
