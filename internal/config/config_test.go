package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/rigidsim/internal/vecmath"
)

func TestDefaultScene(t *testing.T) {
	scene := DefaultScene()

	assert.Equal(t, "drop", scene.Name)
	assert.Equal(t, ScalarFloat, scene.Scalar)
	assert.Positive(t, scene.Dt)
	assert.Positive(t, scene.Ticks)
	require.NoError(t, scene.Validate())
}

func TestPresetsBuild(t *testing.T) {
	for _, name := range ListPresets() {
		t.Run(name, func(t *testing.T) {
			scene, err := GetPreset(name)
			require.NoError(t, err)
			require.NoError(t, scene.Validate())

			var n int
			if scene.Scalar == ScalarInt {
				w, particles, err := BuildWorld[int64](scene)
				require.NoError(t, err)
				n = w.Len()
				assert.Len(t, particles, n)
			} else {
				w, particles, err := BuildWorld[float64](scene)
				require.NoError(t, err)
				n = w.Len()
				assert.Len(t, particles, n)
			}
			assert.Equal(t, len(scene.Bodies), n)
		})
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	scene, err := GetPreset("nonexistent")
	assert.Nil(t, scene)
	assert.ErrorIs(t, err, ErrUnknownPreset)
}

func TestGetPreset_ReturnsCopy(t *testing.T) {
	scene, err := GetPreset("cannon")
	require.NoError(t, err)

	scene.Gravity[1] = 0
	scene.Bodies[0].Velocity[0] = 99

	again, err := GetPreset("cannon")
	require.NoError(t, err)
	assert.Equal(t, DefaultGravity, again.Gravity[1])
	assert.Equal(t, 20.0, again.Bodies[0].Velocity[0])
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	assert.IsNonDecreasing(t, names)
	assert.Contains(t, names, "drop")
	assert.Contains(t, names, "grid")
	assert.Len(t, names, len(Presets))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Scene)
	}{
		{"scalar", func(s *Scene) { s.Scalar = "complex" }},
		{"dt", func(s *Scene) { s.Dt = 0 }},
		{"fractional int dt", func(s *Scene) { s.Scalar = ScalarInt; s.Dt = 0.5 }},
		{"ticks", func(s *Scene) { s.Ticks = -1 }},
		{"gravity", func(s *Scene) { s.Gravity = nil }},
		{"position", func(s *Scene) { s.Bodies[0].Position = []float64{1, 2, 3} }},
		{"force length", func(s *Scene) {
			s.Bodies[0].Forces = []ForceConfig{{Kind: ForceImpulse, Vector: []float64{1}}}
		}},
		{"force kind", func(s *Scene) {
			s.Bodies[0].Forces = []ForceConfig{{Kind: "spring", Vector: []float64{1, 1}}}
		}},
		{"uniform ticks", func(s *Scene) {
			s.Bodies[0].Forces = []ForceConfig{{Kind: ForceUniform, Vector: []float64{1, 1}}}
		}},
		{"no bodies", func(s *Scene) { s.Bodies = nil }},
		{"fractional int gravity", func(s *Scene) { integral(s); s.Gravity = []float64{0, -9.8} }},
		{"fractional int mass", func(s *Scene) { integral(s); s.Bodies[0].Mass = 0.5 }},
		{"fractional int position", func(s *Scene) { integral(s); s.Bodies[0].Position[0] = 0.25 }},
		{"fractional int velocity", func(s *Scene) { integral(s); s.Bodies[0].Velocity[1] = -1.5 }},
		{"fractional int force", func(s *Scene) {
			integral(s)
			s.Bodies[0].Forces = []ForceConfig{{Kind: ForceImpulse, Vector: []float64{0.5, 0}}}
		}},
		{"nan int mass", func(s *Scene) { integral(s); s.Bodies[0].Mass = math.NaN() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene := DefaultScene()
			tt.mutate(scene)
			assert.ErrorIs(t, scene.Validate(), ErrInvalidScene)

			_, _, err := BuildWorld[float64](scene)
			assert.ErrorIs(t, err, ErrInvalidScene)
		})
	}
}

// integral turns the default scene into a valid integer scene.
func integral(s *Scene) {
	s.Scalar = ScalarInt
	s.Dt = 1
	s.Gravity = []float64{0, -10}
}

func TestValidate_IntegerScene(t *testing.T) {
	scene := DefaultScene()
	integral(scene)
	scene.Bodies[0].Forces = []ForceConfig{{Kind: ForceContinuous, Vector: []float64{2, 0}}}
	require.NoError(t, scene.Validate())

	_, particles, err := BuildWorld[int64](scene)
	require.NoError(t, err)
	assert.Equal(t, int64(1), particles[0].Mass())
	assert.Equal(t, vecmath.New[int64](0, 10), particles[0].Position())

	scene.Bodies[0].Mass = 0.5
	scene.Gravity = []float64{0, -9.8}
	_, _, err = BuildWorld[int64](scene)
	assert.ErrorIs(t, err, ErrInvalidScene)
}

func TestValidate_AllowsZeroMass(t *testing.T) {
	scene := DefaultScene()
	scene.Bodies[0].Mass = 0
	assert.NoError(t, scene.Validate())
}

func TestSaveLoad(t *testing.T) {
	scene, err := GetPreset("rocket")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "rocket.yaml")
	require.NoError(t, Save(path, scene))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, scene, loaded)
}

func TestLoad_Partial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	data := []byte(`name: lift
ticks: 10
gravity: [0, -1]
bodies:
  - name: crate
    mass: 2
    position: [0, 0]
    velocity: [0, 0]
    forces:
      - kind: continuous
        vector: [0, 4]
`)
	require.NoError(t, os.WriteFile(path, data, 0644))

	scene, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "lift", scene.Name)
	assert.Equal(t, 10, scene.Ticks)
	assert.Equal(t, DefaultDt, scene.Dt)
	assert.Equal(t, DefaultIntegrator, scene.Integrator)
	require.Len(t, scene.Bodies, 1)

	w, particles, err := BuildWorld[float64](scene)
	require.NoError(t, err)
	require.NoError(t, w.Tick())
	assert.Equal(t, vecmath.New(0.0, 1.5), particles[0].Acceleration())
}

func TestLoad_DoesNotInheritDefaultBodies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: void\ngravity: [0, -1]\n"), 0644))

	scene, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidScene)
	assert.Nil(t, scene)
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scalar: quaternion\n"), 0644))
	_, err = Load(path)
	assert.ErrorIs(t, err, ErrInvalidScene)

	require.NoError(t, os.WriteFile(path, []byte("ticks: [1\n"), 0644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestBuildWorld_Int(t *testing.T) {
	scene, err := GetPreset("grid")
	require.NoError(t, err)

	w, particles, err := BuildWorld[int64](scene)
	require.NoError(t, err)
	assert.Equal(t, vecmath.New[int64](0, -2), w.Gravity())

	for i, p := range particles {
		assert.Equal(t, int64(i), p.ID())
		assert.Equal(t, scene.Bodies[i].Name, p.Name)
	}

	require.NoError(t, w.Tick())
	// c: ([8 16] + [0 -2]) / 4 with integer division
	assert.Equal(t, vecmath.New[int64](2, 3), particles[2].Acceleration())
	assert.Equal(t, vecmath.New[int64](0, -2), particles[0].Acceleration())
	assert.Equal(t, vecmath.New[int64](0, -1), particles[1].Acceleration())
}

func TestBuildWorld_Forces(t *testing.T) {
	scene, err := GetPreset("rocket")
	require.NoError(t, err)

	_, particles, err := BuildWorld[float64](scene)
	require.NoError(t, err)

	forces := particles[0].Forces()
	require.Len(t, forces, 2)
	assert.Equal(t, uint64(200), forces[0].Ticks)
	assert.False(t, forces[0].Enabled)
	assert.Equal(t, uint64(1), forces[1].Ticks)
	assert.Empty(t, particles[1].Forces())
}
