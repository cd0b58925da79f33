package cfg

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zucenko/maize/model"
)

func TestDefaultsAreValid(t *testing.T) {
	require.NoError(t, Defaults().Validate())
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), c)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maize.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
grid:
  cols: 31
  rows: 25
  goal: {x: 26, y: 20}
speeds:
  pursuer: 3.5
shot_cooldown: 0
seed: 7
level: debug
`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 31, c.Grid.Cols)
	assert.Equal(t, 25, c.Grid.Rows)
	assert.Equal(t, Cell{X: 3, Y: 3}, c.Grid.Start)
	assert.Equal(t, Cell{X: 26, Y: 20}, c.Grid.Goal)
	assert.Equal(t, 3.5, c.Speeds.Pursuer)
	assert.Equal(t, 8.0, c.Speeds.Player)
	assert.Equal(t, 0.0, c.ShotCooldown)
	assert.Equal(t, int64(7), c.Seed)

	opts := c.Session(model.Advanced, nil)
	assert.Equal(t, model.Advanced, opts.Ruleset)
	assert.Equal(t, model.Cell{X: 26, Y: 20}, opts.Goal)
	assert.Equal(t, 3.5, opts.PursuerSpeed)
}

func TestLoadRejects(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"even grid":  "grid: {cols: 20, rows: 21}",
		"tiny grid":  "grid: {cols: 3, rows: 3, start: {x: 1, y: 1}, goal: {x: 1, y: 1}}",
		"goal wall":  "grid: {goal: {x: 20, y: 20}}",
		"same cells": "grid: {goal: {x: 3, y: 3}}",
		"speed":      "speeds: {player: 0}",
		"level":      "level: loud",
		"volume":     "audio: {volume: 2}",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
			_, err := Load(path)
			assert.True(t, errors.Is(err, ErrInvalid), "got %v", err)
		})
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("grid: [1, 2"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalid))
}

func TestPathFromEnv(t *testing.T) {
	t.Setenv(ENV_CONFIG, "/tmp/other.yaml")
	assert.Equal(t, "/tmp/other.yaml", Path())
	t.Setenv(ENV_CONFIG, "")
	assert.Equal(t, DEFAULT_PATH, Path())
}
