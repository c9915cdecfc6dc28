package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/rigidsim/internal/storage"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--log-level", "off"))
	err := root.Execute()
	return out.String(), err
}

func TestPresetsCommand(t *testing.T) {
	out, err := execute(t, "presets")
	require.NoError(t, err)
	for _, name := range []string{"drop", "cannon", "rocket", "drift", "grid"} {
		assert.Contains(t, out, name)
	}
}

func TestRunListPlotExportVerify(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "run", "grid", "--data", dir, "--ticks", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "GRID")

	runs, err := storage.New(dir).List()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	runID := runs[0].ID
	assert.True(t, strings.HasPrefix(runID, "grid_"))
	assert.Equal(t, 5, runs[0].TicksTaken)
	assert.Contains(t, out, runID)

	out, err = execute(t, "list", "--data", dir)
	require.NoError(t, err)
	assert.Contains(t, out, runID)

	out, err = execute(t, "plot", runID, "--data", dir, "--body", "a", "--quantity", "velocity")
	require.NoError(t, err)
	assert.Contains(t, out, "a velocity[1]")

	out, err = execute(t, "plot", runID, "--data", dir, "--overlay")
	require.NoError(t, err)
	assert.Contains(t, out, "position[1]: a, b, c")

	_, err = execute(t, "plot", runID, "--data", dir, "--body", "zeta")
	assert.Error(t, err)

	out, err = execute(t, "export", runID, "--data", dir)
	require.NoError(t, err)
	assert.Contains(t, out, `"frames"`)

	exported := filepath.Join(dir, "out.json")
	svg := filepath.Join(dir, "paths.svg")
	_, err = execute(t, "export", runID, "--data", dir, "-o", exported, "--svg", svg)
	require.NoError(t, err)
	assert.FileExists(t, exported)
	assert.FileExists(t, svg)

	out, err = execute(t, "verify", runID, "--data", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "ok")
}

func TestRunNoSave(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, "run", "drop", "--data", dir, "--ticks", "3", "--no-save")
	require.NoError(t, err)

	runs, err := storage.New(dir).List()
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestRunUnknownScene(t *testing.T) {
	_, err := execute(t, "run", "nope", "--data", t.TempDir())
	assert.Error(t, err)

	_, err = execute(t, "run", "drop", "--integrator", "rk4", "--no-save")
	assert.Error(t, err)
}

func TestScenePrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")

	_, err := execute(t, "scene", "rocket", "--ticks", "42", "-o", path)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: rocket")
	assert.Contains(t, string(data), "ticks: 42")

	// config overrides the preset, flags override the config
	out, err := execute(t, "scene", "cannon", "--config", path, "--integrator", "euler")
	require.NoError(t, err)
	assert.Contains(t, out, "name: rocket")
	assert.Contains(t, out, "ticks: 42")
	assert.Contains(t, out, "integrator: euler")

	out, err = execute(t, "scene", path)
	require.NoError(t, err)
	assert.Contains(t, out, "integrator: symplectic")
}

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "short.yaml")
	_, err := execute(t, "scene", "drift", "--ticks", "10", "-o", path)
	require.NoError(t, err)

	out, err := execute(t, "batch", "grid", path, "--data", dir, "--parallel", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "GRID")
	assert.Contains(t, out, "DRIFT")

	runs, err := storage.New(dir).List()
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}
