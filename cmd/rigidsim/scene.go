package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/san-kum/rigidsim/internal/config"
)

// loadScene treats arg as a YAML file if it has a YAML extension and as a
// preset name otherwise.
func loadScene(arg string) (*config.Scene, error) {
	switch filepath.Ext(arg) {
	case ".yaml", ".yml":
		return config.Load(arg)
	default:
		return config.GetPreset(arg)
	}
}

// resolveScene applies, lowest to highest precedence: the preset or file
// named by args (default "drop"), the --config file, then explicit flags.
func resolveScene(cmd *cobra.Command, args []string) (*config.Scene, error) {
	name := config.DefaultScene().Name
	if len(args) > 0 {
		name = args[0]
	}

	scene, err := loadScene(name)
	if err != nil {
		return nil, err
	}

	if configFile != "" {
		scene, err = config.Load(configFile)
		if err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		scene.Dt = dt
	}
	if flags.Changed("ticks") {
		scene.Ticks = ticks
	}
	if flags.Changed("integrator") {
		scene.Integrator = integrator
	}
	if flags.Changed("no-age") {
		scene.AgeForces = !noAge
	}

	if err := scene.Validate(); err != nil {
		return nil, err
	}
	return scene, nil
}
