package sim

import (
	"errors"
	"testing"

	"github.com/san-kum/rigidsim/internal/dynamo"
	"github.com/san-kum/rigidsim/internal/vecmath"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig[float64]()

	if cfg.Dt <= 0 || cfg.Dt >= 1 {
		t.Errorf("DefaultConfig[float64] has Dt %v", cfg.Dt)
	}
	if cfg.Ticks <= 0 {
		t.Error("DefaultConfig has invalid Ticks")
	}

	if icfg := DefaultConfig[int64](); icfg.Dt != 1 {
		t.Errorf("DefaultConfig[int64] Dt = %d, want 1", icfg.Dt)
	}
}

func TestSimError(t *testing.T) {
	err := SimError{Tick: 150, Err: dynamo.ErrZeroMass}
	expected := "tick 150: dynamo: body has zero mass"
	if err.Error() != expected {
		t.Errorf("SimError.Error() = %q, want %q", err.Error(), expected)
	}
	if !errors.Is(err, dynamo.ErrZeroMass) {
		t.Error("SimError should unwrap to its cause")
	}
}

func TestResultSeries(t *testing.T) {
	r := &Result[float64]{
		Frames: [][]dynamo.Frame[float64]{
			{{ID: 0, Velocity: vecmath.New(1.0, 2.0)}, {ID: 1, Velocity: vecmath.New(9.0, 9.0)}},
			{{ID: 0, Velocity: vecmath.New(3.0, 4.0)}, {ID: 1, Velocity: vecmath.New(9.0, 9.0)}},
		},
	}

	got := r.Series(0, func(f dynamo.Frame[float64]) vecmath.Vector[float64] { return f.Velocity }, 1)
	if len(got) != 2 || got[0] != 2 || got[1] != 4 {
		t.Errorf("Series = %v, want [2 4]", got)
	}

	if out := r.Series(0, func(f dynamo.Frame[float64]) vecmath.Vector[float64] { return f.Velocity }, 5); len(out) != 0 {
		t.Errorf("out-of-range component should give empty series, got %v", out)
	}
}
