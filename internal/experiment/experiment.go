package experiment

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/san-kum/rigidsim/internal/config"
	"github.com/san-kum/rigidsim/internal/dynamo"
	"github.com/san-kum/rigidsim/internal/sim"
	"github.com/san-kum/rigidsim/internal/storage"
	"github.com/san-kum/rigidsim/internal/vecmath"
)

// Experiment is a scene wired to a simulator with the default metrics.
type Experiment[N vecmath.Scalar] struct {
	scene     *config.Scene
	simulator *sim.Simulator[N]
	particles []*dynamo.Particle[N]
}

func New[N vecmath.Scalar](scene *config.Scene, log *zap.Logger) (*Experiment[N], error) {
	w, particles, err := config.BuildWorld[N](scene)
	if err != nil {
		return nil, err
	}

	registry := NewRegistry[N]()
	integrator, err := registry.GetIntegrator(scene.Integrator)
	if err != nil {
		return nil, err
	}

	if log == nil {
		log = zap.NewNop()
	}
	s := sim.New(w, integrator)
	s.SetLogger(log.With(zap.String("scene", scene.Name)))
	for _, m := range registry.DefaultMetrics() {
		s.AddMetric(m)
	}

	return &Experiment[N]{scene: scene, simulator: s, particles: particles}, nil
}

func (e *Experiment[N]) Simulator() *sim.Simulator[N]     { return e.simulator }
func (e *Experiment[N]) Particles() []*dynamo.Particle[N] { return e.particles }
func (e *Experiment[N]) Scene() *config.Scene             { return e.scene }

func (e *Experiment[N]) Config() sim.Config[N] {
	return sim.Config[N]{
		Dt:            N(e.scene.Dt),
		Ticks:         e.scene.Ticks,
		AgeForces:     e.scene.AgeForces,
		ValidateState: true,
	}
}

func (e *Experiment[N]) Run(ctx context.Context) (*sim.Result[N], error) {
	return e.simulator.Run(ctx, e.Config())
}

// Metadata describes a finished run for storage.
func (e *Experiment[N]) Metadata(result *sim.Result[N]) storage.RunMetadata {
	names := make([]string, len(e.particles))
	for i, p := range e.particles {
		names[i] = p.Name
	}
	return storage.RunMetadata{
		Scene:      e.scene.Name,
		Scalar:     e.scene.Scalar,
		Dt:         e.scene.Dt,
		Ticks:      e.scene.Ticks,
		TicksTaken: result.TicksTaken,
		Integrator: e.scene.Integrator,
		Bodies:     names,
		Errors:     len(result.Errors),
		Metrics:    result.Metrics,
	}
}

// Outcome is a finished run in scalar-independent form.
type Outcome struct {
	Meta    storage.RunMetadata
	Records []storage.Record
	Errors  []error
}

// Run builds and runs a scene with the scalar type it names.
func Run(ctx context.Context, scene *config.Scene, log *zap.Logger) (*Outcome, error) {
	switch scene.Scalar {
	case config.ScalarInt:
		return run[int64](ctx, scene, log)
	case config.ScalarFloat:
		return run[float64](ctx, scene, log)
	default:
		return nil, fmt.Errorf("%w: scalar %q", config.ErrInvalidScene, scene.Scalar)
	}
}

func run[N vecmath.Scalar](ctx context.Context, scene *config.Scene, log *zap.Logger) (*Outcome, error) {
	exp, err := New[N](scene, log)
	if err != nil {
		return nil, err
	}
	result, err := exp.Run(ctx)
	if err != nil {
		return nil, err
	}
	return exp.outcome(result), nil
}

func (e *Experiment[N]) outcome(result *sim.Result[N]) *Outcome {
	return &Outcome{
		Meta:    e.Metadata(result),
		Records: storage.Records(result.Frames),
		Errors:  result.Errors,
	}
}
