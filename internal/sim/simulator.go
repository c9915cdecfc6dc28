package sim

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/san-kum/rigidsim/internal/dynamo"
	"github.com/san-kum/rigidsim/internal/integrators"
	"github.com/san-kum/rigidsim/internal/vecmath"
	"github.com/san-kum/rigidsim/internal/world"
)

// Simulator drives a world: it ticks it, integrates the resulting
// accelerations into velocity and position, and ages forces.
type Simulator[N vecmath.Scalar] struct {
	world      *world.World[N]
	integrator integrators.Integrator[N]
	metrics    []dynamo.Metric[N]
	observers  []dynamo.Observer[N]
	log        *zap.Logger
	tick       int
}

func New[N vecmath.Scalar](w *world.World[N], integrator integrators.Integrator[N]) *Simulator[N] {
	return &Simulator[N]{
		world:      w,
		integrator: integrator,
		metrics:    make([]dynamo.Metric[N], 0),
		observers:  make([]dynamo.Observer[N], 0),
		log:        zap.NewNop(),
	}
}

func (s *Simulator[N]) AddMetric(m dynamo.Metric[N])     { s.metrics = append(s.metrics, m) }
func (s *Simulator[N]) AddObserver(o dynamo.Observer[N]) { s.observers = append(s.observers, o) }
func (s *Simulator[N]) World() *world.World[N]           { return s.world }
func (s *Simulator[N]) Tick() int                        { return s.tick }

func (s *Simulator[N]) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	s.log = l
}

func (s *Simulator[N]) Run(ctx context.Context, cfg Config[N]) (*Result[N], error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result[N]{
		Frames:  make([][]dynamo.Frame[N], 0, cfg.Ticks+1),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	result.Frames = append(result.Frames, s.capture())
	s.log.Info("run started",
		zap.Int("bodies", s.world.Len()),
		zap.Int("ticks", cfg.Ticks),
		zap.String("integrator", s.integrator.Name()))

	for i := 0; i < cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		frames, err := s.Step(cfg)
		result.Frames = append(result.Frames, frames)
		result.TicksTaken++

		if err != nil {
			result.Errors = append(result.Errors, err)
			s.log.Warn("tick reported errors", zap.Int("tick", s.tick), zap.Error(err))
			if cfg.StopOnError {
				break
			}
		}

		if cfg.ValidateState && !finite(frames) {
			err := SimError{Tick: s.tick, Err: errors.New("invalid state (NaN/Inf)")}
			result.Errors = append(result.Errors, err)
			s.log.Error("state diverged", zap.Int("tick", s.tick))
			break
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	s.log.Info("run finished",
		zap.Int("ticks_taken", result.TicksTaken),
		zap.Int("errors", len(result.Errors)))

	return result, nil
}

// Step advances the world by one tick and returns the resulting frames.
// Bodies whose acceleration could not be computed are not integrated this
// tick. The returned error, if any, is a SimError.
func (s *Simulator[N]) Step(cfg Config[N]) ([]dynamo.Frame[N], error) {
	s.tick++

	var errs []error
	tickErr := s.world.Tick()
	if tickErr != nil {
		errs = append(errs, tickErr)
	}
	failed := failedBodies(tickErr)

	for _, b := range s.world.Objects() {
		if m, ok := b.(dynamo.Movable[N]); ok && !failed[b.ID()] {
			if err := s.integrator.Step(m, cfg.Dt); err != nil {
				errs = append(errs, &dynamo.BodyError{ID: b.ID(), Wrapped: err})
			}
		}
		if cfg.AgeForces {
			b.SetForces(dynamo.Age(b.Forces()))
		}
	}

	frames := s.capture()
	for _, m := range s.metrics {
		m.Observe(s.tick, frames)
	}
	for _, o := range s.observers {
		o.OnTick(s.tick, frames)
	}

	s.log.Debug("tick", zap.Int("tick", s.tick), zap.Int("bodies", len(frames)))

	if len(errs) > 0 {
		return frames, SimError{Tick: s.tick, Err: errors.Join(errs...)}
	}
	return frames, nil
}

func (s *Simulator[N]) capture() []dynamo.Frame[N] {
	objects := s.world.Objects()
	frames := make([]dynamo.Frame[N], len(objects))
	for i, b := range objects {
		frames[i] = dynamo.Capture(s.tick, b)
	}
	return frames
}

func validateConfig[N vecmath.Scalar](cfg Config[N]) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %v", ErrInvalidConfig, cfg.Dt)
	}
	if cfg.Ticks <= 0 {
		return fmt.Errorf("%w: ticks must be positive, got %d", ErrInvalidConfig, cfg.Ticks)
	}
	return nil
}

// failedBodies collects the ids carried by BodyErrors inside err.
func failedBodies(err error) map[int64]bool {
	failed := make(map[int64]bool)
	var walk func(error)
	walk = func(err error) {
		if err == nil {
			return
		}
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			for _, e := range joined.Unwrap() {
				walk(e)
			}
			return
		}
		var be *dynamo.BodyError
		if errors.As(err, &be) {
			failed[be.ID] = true
		}
	}
	walk(err)
	return failed
}

func finite[N vecmath.Scalar](frames []dynamo.Frame[N]) bool {
	for _, f := range frames {
		if !f.Position.IsFinite() || !f.Velocity.IsFinite() || !f.Acceleration.IsFinite() {
			return false
		}
	}
	return true
}
