package experiment

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/rigidsim/internal/dynamo"
	"github.com/san-kum/rigidsim/internal/integrators"
	"github.com/san-kum/rigidsim/internal/metrics"
	"github.com/san-kum/rigidsim/internal/vecmath"
)

var ErrUnknownIntegrator = errors.New("experiment: unknown integrator")

// StabilityThreshold is the speed above which a tick counts as unstable.
const StabilityThreshold = 1e6

type Registry[N vecmath.Scalar] struct {
	integrators map[string]func() integrators.Integrator[N]
}

func NewRegistry[N vecmath.Scalar]() *Registry[N] {
	r := &Registry[N]{
		integrators: make(map[string]func() integrators.Integrator[N]),
	}

	r.integrators["euler"] = func() integrators.Integrator[N] { return integrators.NewEuler[N]() }
	r.integrators["symplectic"] = func() integrators.Integrator[N] { return integrators.NewSemiImplicitEuler[N]() }
	r.integrators["verlet"] = func() integrators.Integrator[N] { return integrators.NewVerlet[N]() }

	return r
}

func (r *Registry[N]) Register(name string, fn func() integrators.Integrator[N]) {
	r.integrators[name] = fn
}

func (r *Registry[N]) GetIntegrator(name string) (integrators.Integrator[N], error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownIntegrator, name)
	}
	return fn(), nil
}

func (r *Registry[N]) ListIntegrators() []string {
	names := make([]string, 0, len(r.integrators))
	for name := range r.integrators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry[N]) DefaultMetrics() []dynamo.Metric[N] {
	return []dynamo.Metric[N]{
		metrics.NewKineticEnergy[N](),
		metrics.NewMomentum[N](),
		metrics.NewPeakAcceleration[N](),
		metrics.NewStability[N](StabilityThreshold),
	}
}
