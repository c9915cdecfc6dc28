package sim

import (
	"errors"
	"fmt"

	"github.com/san-kum/rigidsim/internal/dynamo"
	"github.com/san-kum/rigidsim/internal/vecmath"
)

var ErrInvalidConfig = errors.New("sim: invalid config")

type Config[N vecmath.Scalar] struct {
	Dt    N
	Ticks int
	// AgeForces expires impulses and uniform forces after each tick.
	AgeForces bool
	// StopOnError halts the run at the first tick that reports a body error.
	StopOnError bool
	// ValidateState halts the run once any body turns NaN or infinite.
	ValidateState bool
}

func DefaultConfig[N vecmath.Scalar]() Config[N] {
	dt := N(1)
	if vecmath.IsFloat[N]() {
		dt = N(1) / N(100)
	}
	return Config[N]{
		Dt:            dt,
		Ticks:         1000,
		AgeForces:     true,
		ValidateState: true,
	}
}

type Result[N vecmath.Scalar] struct {
	// Frames[0] is the state before the first tick.
	Frames     [][]dynamo.Frame[N]
	Metrics    map[string]float64
	TicksTaken int
	Errors     []error
}

// Series extracts one component of one vector of one body across frames.
// pick selects the vector (position, velocity, acceleration).
func (r *Result[N]) Series(id int64, pick func(dynamo.Frame[N]) vecmath.Vector[N], component int) []float64 {
	out := make([]float64, 0, len(r.Frames))
	for _, tick := range r.Frames {
		for _, f := range tick {
			if f.ID != id {
				continue
			}
			v := pick(f)
			if component < len(v) {
				out = append(out, float64(v[component]))
			}
		}
	}
	return out
}

type SimError struct {
	Tick int
	Err  error
}

func (e SimError) Error() string {
	return fmt.Sprintf("tick %d: %v", e.Tick, e.Err)
}

func (e SimError) Unwrap() error {
	return e.Err
}
