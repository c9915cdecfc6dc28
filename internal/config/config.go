package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/rigidsim/internal/dynamo"
	"github.com/san-kum/rigidsim/internal/vecmath"
	"github.com/san-kum/rigidsim/internal/world"
)

const (
	DefaultDt         = 0.01
	DefaultTicks      = 500
	DefaultIntegrator = "symplectic"
	DefaultGravity    = -9.8

	ScalarFloat = "float"
	ScalarInt   = "int"

	ForceImpulse    = "impulse"
	ForceUniform    = "uniform"
	ForceContinuous = "continuous"
)

var (
	ErrInvalidScene  = errors.New("config: invalid scene")
	ErrUnknownPreset = errors.New("config: unknown preset")
)

// Scene describes a world and how to run it.
type Scene struct {
	Name       string       `yaml:"name"`
	Scalar     string       `yaml:"scalar"`
	Integrator string       `yaml:"integrator"`
	Dt         float64      `yaml:"dt"`
	Ticks      int          `yaml:"ticks"`
	AgeForces  bool         `yaml:"age_forces"`
	Gravity    []float64    `yaml:"gravity"`
	Bodies     []BodyConfig `yaml:"bodies"`
}

type BodyConfig struct {
	Name     string        `yaml:"name"`
	Mass     float64       `yaml:"mass"`
	Position []float64     `yaml:"position"`
	Velocity []float64     `yaml:"velocity"`
	Forces   []ForceConfig `yaml:"forces,omitempty"`
}

type ForceConfig struct {
	Kind   string    `yaml:"kind"`
	Vector []float64 `yaml:"vector"`
	Ticks  uint64    `yaml:"ticks,omitempty"`
}

func DefaultScene() *Scene {
	return &Scene{
		Name:       "drop",
		Scalar:     ScalarFloat,
		Integrator: DefaultIntegrator,
		Dt:         DefaultDt,
		Ticks:      DefaultTicks,
		AgeForces:  true,
		Gravity:    []float64{0, DefaultGravity},
		Bodies: []BodyConfig{
			{Name: "ball", Mass: 1, Position: []float64{0, 10}, Velocity: []float64{0, 0}},
		},
	}
}

func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	// Scalars fall back to the defaults; bodies never do.
	scene := DefaultScene()
	scene.Bodies = nil
	if err := yaml.Unmarshal(data, scene); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := scene.Validate(); err != nil {
		return nil, err
	}
	return scene, nil
}

func Save(path string, scene *Scene) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return Encode(file, scene)
}

// Encode writes scene as YAML.
func Encode(w io.Writer, scene *Scene) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(scene); err != nil {
		return err
	}
	return enc.Close()
}

// Validate checks the structure of a scene. Zero masses are not rejected
// here; the world reports them when it ticks. Integer scenes must use whole
// numbers throughout, since BuildWorld would otherwise truncate them.
func (s *Scene) Validate() error {
	if s.Scalar != ScalarFloat && s.Scalar != ScalarInt {
		return fmt.Errorf("%w: scalar must be %q or %q, got %q", ErrInvalidScene, ScalarFloat, ScalarInt, s.Scalar)
	}
	if s.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidScene, s.Dt)
	}
	if s.Scalar == ScalarInt && !whole(s.Dt) {
		return fmt.Errorf("%w: integer scenes need a whole dt, got %f", ErrInvalidScene, s.Dt)
	}
	if s.Ticks <= 0 {
		return fmt.Errorf("%w: ticks must be positive, got %d", ErrInvalidScene, s.Ticks)
	}
	dim := len(s.Gravity)
	if dim == 0 {
		return fmt.Errorf("%w: gravity needs at least one component", ErrInvalidScene)
	}
	if len(s.Bodies) == 0 {
		return fmt.Errorf("%w: scene %q has no bodies", ErrInvalidScene, s.Name)
	}
	intScene := s.Scalar == ScalarInt
	if intScene && !whole(s.Gravity...) {
		return fmt.Errorf("%w: integer scenes need whole gravity, got %v", ErrInvalidScene, s.Gravity)
	}
	for _, b := range s.Bodies {
		if len(b.Position) != dim || len(b.Velocity) != dim {
			return fmt.Errorf("%w: body %q must have %d-dimensional position and velocity", ErrInvalidScene, b.Name, dim)
		}
		if intScene && !whole(b.Mass) {
			return fmt.Errorf("%w: body %q needs a whole mass in an integer scene, got %g", ErrInvalidScene, b.Name, b.Mass)
		}
		if intScene && (!whole(b.Position...) || !whole(b.Velocity...)) {
			return fmt.Errorf("%w: body %q needs whole position and velocity in an integer scene", ErrInvalidScene, b.Name)
		}
		for _, f := range b.Forces {
			if len(f.Vector) != dim {
				return fmt.Errorf("%w: body %q has a %d-dimensional force, want %d", ErrInvalidScene, b.Name, len(f.Vector), dim)
			}
			if intScene && !whole(f.Vector...) {
				return fmt.Errorf("%w: body %q needs whole forces in an integer scene, got %v", ErrInvalidScene, b.Name, f.Vector)
			}
			switch f.Kind {
			case ForceImpulse, ForceContinuous:
			case ForceUniform:
				if f.Ticks == 0 {
					return fmt.Errorf("%w: body %q has a uniform force without ticks", ErrInvalidScene, b.Name)
				}
			default:
				return fmt.Errorf("%w: body %q has unknown force kind %q", ErrInvalidScene, b.Name, f.Kind)
			}
		}
	}
	return nil
}

// whole reports whether every x is an integer value.
func whole(xs ...float64) bool {
	for _, x := range xs {
		if x != math.Trunc(x) {
			return false
		}
	}
	return true
}

// BuildWorld creates a world from the scene, converting every value to N.
// The particles are returned in scene order with ids 0, 1, 2, ...
func BuildWorld[N vecmath.Scalar](s *Scene) (*world.World[N], []*dynamo.Particle[N], error) {
	if err := s.Validate(); err != nil {
		return nil, nil, err
	}

	w := world.New(vec[N](s.Gravity))
	particles := make([]*dynamo.Particle[N], 0, len(s.Bodies))
	for _, bc := range s.Bodies {
		p := dynamo.NewParticle(bc.Name, N(bc.Mass), vec[N](bc.Position), vec[N](bc.Velocity))
		for _, fc := range bc.Forces {
			p.AddForce(buildForce[N](fc))
		}
		if err := w.AddObject(p); err != nil {
			return nil, nil, err
		}
		particles = append(particles, p)
	}
	return w, particles, nil
}

func buildForce[N vecmath.Scalar](fc ForceConfig) dynamo.Force[N] {
	v := vec[N](fc.Vector)
	switch fc.Kind {
	case ForceImpulse:
		return dynamo.Impulse(v)
	case ForceUniform:
		return dynamo.Uniform(v, fc.Ticks)
	default:
		return dynamo.Continuous(v)
	}
}

func vec[N vecmath.Scalar](xs []float64) vecmath.Vector[N] {
	return vecmath.Convert[N](vecmath.New(xs...))
}

func (s *Scene) Clone() *Scene {
	c := *s
	c.Gravity = append([]float64(nil), s.Gravity...)
	c.Bodies = make([]BodyConfig, len(s.Bodies))
	for i, b := range s.Bodies {
		b.Position = append([]float64(nil), b.Position...)
		b.Velocity = append([]float64(nil), b.Velocity...)
		if b.Forces != nil {
			forces := make([]ForceConfig, len(b.Forces))
			for j, f := range b.Forces {
				f.Vector = append([]float64(nil), f.Vector...)
				forces[j] = f
			}
			b.Forces = forces
		}
		c.Bodies[i] = b
	}
	return &c
}
