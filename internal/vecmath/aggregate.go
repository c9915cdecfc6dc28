package vecmath

import "fmt"

// MaxComponents returns the per-index maximum across vs. No input yields a
// zero-length vector; inputs of differing length fail with ErrLengthMismatch.
func MaxComponents[N Scalar](vs ...Vector[N]) (Vector[N], error) {
	return fold(vs, func(cur, x N) bool { return x > cur })
}

// MinComponents returns the per-index minimum across vs.
func MinComponents[N Scalar](vs ...Vector[N]) (Vector[N], error) {
	return fold(vs, func(cur, x N) bool { return x < cur })
}

// Sum adds all vectors together. No input yields a zero-length vector.
func Sum[N Scalar](vs ...Vector[N]) (Vector[N], error) {
	if len(vs) == 0 {
		return Vector[N]{}, nil
	}
	acc := vs[0].Clone()
	for i, v := range vs[1:] {
		if len(v) != len(acc) {
			return nil, fmt.Errorf("%w: sum operand %d has %d components, want %d", ErrLengthMismatch, i+1, len(v), len(acc))
		}
		for j := range acc {
			acc[j] += v[j]
		}
	}
	return acc, nil
}

func fold[N Scalar](vs []Vector[N], replace func(cur, x N) bool) (Vector[N], error) {
	if len(vs) == 0 {
		return Vector[N]{}, nil
	}
	acc := vs[0].Clone()
	for i, v := range vs[1:] {
		if len(v) != len(acc) {
			return nil, fmt.Errorf("%w: operand %d has %d components, want %d", ErrLengthMismatch, i+1, len(v), len(acc))
		}
		for j, x := range v {
			if replace(acc[j], x) {
				acc[j] = x
			}
		}
	}
	return acc, nil
}
