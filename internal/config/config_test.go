package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/gridmaze/internal/maze"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestEmbeddedDefaultsMatchBuiltIn(t *testing.T) {
	cfg, err := parse(DefaultYAML())
	require.NoError(t, err)
	assert.Equal(t, DefaultMazeConfig(), cfg)
}

func TestDefaultGameConfig(t *testing.T) {
	gc, err := DefaultMazeConfig().GameConfig()
	require.NoError(t, err)

	want := maze.DefaultConfig()
	assert.Equal(t, want, gc)
}

func TestLoadCustomPathKeepsMissingDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "maze.yaml", `
grid:
  size: 10
timing:
  tick_period_ms: 250
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Grid.Size)
	assert.Equal(t, 40, cfg.Grid.CellPixelSize)
	assert.Equal(t, 250*time.Millisecond, cfg.Timing.TickPeriod())
	assert.Equal(t, time.Second, cfg.Timing.ResetDelay())
	assert.Equal(t, "seeded", cfg.Obstacles.Policy)
}

func TestLoadCustomPathErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := writeFile(t, t.TempDir(), "bad.yaml", "grid: [unclosed")
	_, err = Load(bad)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadPrefersUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeFile(t, home, ".gridmaze/configs/maze.yaml", "grid:\n  size: 12\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Grid.Size)
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Grid.Size)
}

func TestGameConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*MazeConfig)
	}{
		{name: "tiny grid", mutate: func(c *MazeConfig) { c.Grid.Size = 2 }},
		{name: "unknown policy", mutate: func(c *MazeConfig) { c.Obstacles.Policy = "chaos" }},
		{name: "zero tick", mutate: func(c *MazeConfig) { c.Timing.TickPeriodMS = 0 }},
		{name: "negative reset delay", mutate: func(c *MazeConfig) { c.Timing.ResetDelayMS = -1 }},
		{name: "fixed obstacle on border", mutate: func(c *MazeConfig) {
			c.Obstacles.Policy = "fixed"
			c.Obstacles.Fixed = []maze.Position{{Row: 0, Col: 3}}
		}},
		{name: "fixed obstacle outside shrunk grid", mutate: func(c *MazeConfig) {
			c.Obstacles.Policy = "fixed"
			c.Grid.Size = 5
		}},
		{name: "zero pixel size", mutate: func(c *MazeConfig) { c.Grid.CellPixelSize = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultMazeConfig()
			tc.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestFixedPolicyWithoutListUsesDefaults(t *testing.T) {
	cfg := DefaultMazeConfig()
	cfg.Obstacles.Policy = "fixed"
	cfg.Obstacles.Fixed = nil

	gc, err := cfg.GameConfig()
	require.NoError(t, err)
	assert.Equal(t, maze.PolicyFixedList, gc.Policy)
	assert.Equal(t, maze.DefaultFixedObstacles(), gc.FixedObstacles)
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset  DifficultyPreset
		tickMS  int
		initial int
		policy  string
	}{
		{preset: DifficultyEasy, tickMS: 1500, initial: 0, policy: "seeded"},
		{preset: DifficultyNormal, tickMS: 1000, initial: 0, policy: "seeded"},
		{preset: DifficultyHard, tickMS: 600, initial: 2, policy: "seeded"},
		{preset: DifficultyFixed, tickMS: 1000, initial: 0, policy: "fixed"},
		{preset: "", tickMS: 1000, initial: 0, policy: "seeded"},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultMazeConfig()
			ApplyPreset(&cfg, tc.preset)
			assert.Equal(t, tc.tickMS, cfg.Timing.TickPeriodMS)
			assert.Equal(t, tc.initial, cfg.Obstacles.InitialCount)
			assert.Equal(t, tc.policy, cfg.Obstacles.Policy)
			assert.NoError(t, cfg.Validate())
		})
	}
}

func TestParsePreset(t *testing.T) {
	p, err := ParsePreset(" Hard ")
	require.NoError(t, err)
	assert.Equal(t, DifficultyHard, p)

	p, err = ParsePreset("")
	require.NoError(t, err)
	assert.Equal(t, DifficultyPreset(""), p)

	_, err = ParsePreset("nightmare")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestApplyEnv(t *testing.T) {
	vars := map[string]string{
		EnvGridSize:         "9",
		EnvPolicy:           "fixed",
		EnvTickPeriodMS:     "300",
		EnvInitialObstacles: "",
	}
	lookup := func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}

	cfg := DefaultMazeConfig()
	require.NoError(t, ApplyEnv(&cfg, lookup))
	assert.Equal(t, 9, cfg.Grid.Size)
	assert.Equal(t, "fixed", cfg.Obstacles.Policy)
	assert.Equal(t, 300, cfg.Timing.TickPeriodMS)
	assert.Equal(t, 0, cfg.Obstacles.InitialCount)

	vars[EnvResetDelayMS] = "soon"
	assert.ErrorIs(t, ApplyEnv(&cfg, lookup), ErrInvalidConfig)
}

func TestEnvLookupReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := writeFile(t, dir, ".env", "GRIDMAZE_GRID_SIZE=11\nGRIDMAZE_RESET_DELAY_MS=400\n")
	t.Setenv(EnvResetDelayMS, "900")

	lookup, err := EnvLookup(envFile)
	require.NoError(t, err)

	v, ok := lookup(EnvGridSize)
	assert.True(t, ok)
	assert.Equal(t, "11", v)

	// Process environment wins over the file.
	v, _ = lookup(EnvResetDelayMS)
	assert.Equal(t, "900", v)

	_, err = EnvLookup(filepath.Join(dir, "missing.env"))
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "maze.yaml", "grid:\n  size: 6\n")
	envFile := writeFile(t, dir, "game.env", "GRIDMAZE_INITIAL_OBSTACLES=3\n")

	cfg, err := Resolve(Options{Path: path, Preset: DifficultyHard, EnvFile: envFile})
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Grid.Size)
	assert.Equal(t, 600, cfg.Timing.TickPeriodMS)
	assert.Equal(t, 3, cfg.Obstacles.InitialCount)
}

func TestMarshalRoundTripsThroughParse(t *testing.T) {
	cfg := DefaultMazeConfig()
	cfg.Obstacles.Policy = "fixed"

	data, err := Marshal(cfg)
	require.NoError(t, err)

	back, err := parse(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}
