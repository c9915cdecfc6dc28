package config

import (
	"fmt"
	"sort"
)

var Presets = map[string]*Scene{
	"drop": DefaultScene(),
	"cannon": {
		Name: "cannon", Scalar: ScalarFloat, Integrator: "verlet", Dt: 0.01, Ticks: 420, AgeForces: true,
		Gravity: []float64{0, DefaultGravity},
		Bodies: []BodyConfig{
			{Name: "shell", Mass: 5, Position: []float64{0, 0}, Velocity: []float64{20, 20}},
		},
	},
	"rocket": {
		Name: "rocket", Scalar: ScalarFloat, Integrator: "symplectic", Dt: 0.01, Ticks: 600, AgeForces: true,
		Gravity: []float64{0, DefaultGravity},
		Bodies: []BodyConfig{
			{
				Name: "rocket", Mass: 2, Position: []float64{0, 0}, Velocity: []float64{0, 0},
				Forces: []ForceConfig{
					{Kind: ForceUniform, Vector: []float64{0, 40}, Ticks: 200},
					{Kind: ForceImpulse, Vector: []float64{300, 0}},
				},
			},
			{Name: "debris", Mass: 0.5, Position: []float64{0, 0}, Velocity: []float64{-1, 3}},
		},
	},
	"drift": {
		Name: "drift", Scalar: ScalarFloat, Integrator: "euler", Dt: 0.05, Ticks: 200, AgeForces: true,
		Gravity: []float64{0, 0, 0},
		Bodies: []BodyConfig{
			{
				Name: "probe", Mass: 10, Position: []float64{0, 0, 0}, Velocity: []float64{1, 0, 0},
				Forces: []ForceConfig{{Kind: ForceContinuous, Vector: []float64{0, 0.5, 0.1}}},
			},
			{
				Name: "tug", Mass: 4, Position: []float64{5, 5, 0}, Velocity: []float64{0, 0, 0},
				Forces: []ForceConfig{{Kind: ForceUniform, Vector: []float64{-2, 0, 0}, Ticks: 50}},
			},
		},
	},
	"grid": {
		Name: "grid", Scalar: ScalarInt, Integrator: "symplectic", Dt: 1, Ticks: 20, AgeForces: true,
		Gravity: []float64{0, -2},
		Bodies: []BodyConfig{
			{Name: "a", Mass: 1, Position: []float64{0, 400}, Velocity: []float64{3, 0}},
			{Name: "b", Mass: 2, Position: []float64{10, 400}, Velocity: []float64{0, 10}},
			{
				Name: "c", Mass: 4, Position: []float64{20, 400}, Velocity: []float64{0, 0},
				Forces: []ForceConfig{{Kind: ForceUniform, Vector: []float64{8, 16}, Ticks: 5}},
			},
		},
	},
}

// GetPreset returns a copy of the named preset.
func GetPreset(name string) (*Scene, error) {
	scene, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return scene.Clone(), nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
