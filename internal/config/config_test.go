package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"topomap/internal/layout"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ":3000", cfg.Server.Addr)
	assert.Equal(t, 16*time.Millisecond, cfg.Simulation.TickInterval)
	assert.Equal(t, 100.0, cfg.Simulation.LinkDistance)
	assert.Equal(t, -300.0, cfg.Simulation.ChargeStrength)
	assert.Equal(t, 960.0, cfg.Canvas.Width)
	assert.Equal(t, 0.5, cfg.Viewport.MinScale)
	assert.Equal(t, 5.0, cfg.Viewport.MaxScale)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLayoutMatchesDefaults(t *testing.T) {
	assert.Equal(t, layout.DefaultConfig(), DefaultConfig().Layout())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "topomap.yaml")
	content := `
server:
  addr: ":8080"
topology:
  source: ./network.yaml
  watch: true
simulation:
  charge_strength: -500
  tick_interval: 33ms
  seed: 42
viewport:
  max_scale: 8
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, used, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, used)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "./network.yaml", cfg.Topology.Source)
	assert.True(t, cfg.Topology.Watch)
	assert.Equal(t, -500.0, cfg.Simulation.ChargeStrength)
	assert.Equal(t, 33*time.Millisecond, cfg.Simulation.TickInterval)
	assert.Equal(t, uint32(42), cfg.Simulation.Seed)
	assert.Equal(t, 8.0, cfg.Viewport.MaxScale)

	// untouched keys keep their defaults
	assert.Equal(t, 100.0, cfg.Simulation.LinkDistance)
	assert.Equal(t, 0.5, cfg.Viewport.MinScale)

	opts := cfg.EngineOptions()
	assert.Equal(t, -500.0, opts.Layout.ChargeStrength)
	assert.Equal(t, 8.0, opts.MaxScale)
	assert.Equal(t, 33*time.Millisecond, cfg.EngineConfig().TickInterval)
}

func TestLoadMissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("TOPOMAP_SERVER_ADDR", ":9999")
	t.Setenv("TOPOMAP_SIMULATION_LINK_DISTANCE", "150")

	v := New()
	cfg, err := LoadWithViper(v)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, 150.0, cfg.Simulation.LinkDistance)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"tick interval", func(c *Config) { c.Simulation.TickInterval = 0 }},
		{"link distance", func(c *Config) { c.Simulation.LinkDistance = 0 }},
		{"alpha", func(c *Config) { c.Simulation.Alpha = 1.5 }},
		{"alpha min", func(c *Config) { c.Simulation.AlphaMin = 2 }},
		{"alpha decay", func(c *Config) { c.Simulation.AlphaDecay = 1 }},
		{"velocity decay", func(c *Config) { c.Simulation.VelocityDecay = 0 }},
		{"reheat alpha", func(c *Config) { c.Simulation.ReheatAlpha = 0 }},
		{"canvas", func(c *Config) { c.Canvas.Width = -1 }},
		{"scale bounds", func(c *Config) { c.Viewport.MinScale, c.Viewport.MaxScale = 4, 2 }},
		{"max fps", func(c *Config) { c.Stream.MaxFPS = 0 }},
	}

	require.NoError(t, DefaultConfig().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Server.Addr = ":4000"
	cfg.Simulation.Seed = 7
	require.NoError(t, cfg.Save(path))

	loaded, _, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":4000", loaded.Server.Addr)
	assert.Equal(t, uint32(7), loaded.Simulation.Seed)
	assert.Equal(t, cfg.Simulation.TickInterval, loaded.Simulation.TickInterval)
}

func TestFindConfigPath(t *testing.T) {
	dir := t.TempDir()
	explicit := filepath.Join(dir, "explicit.yaml")
	require.NoError(t, os.WriteFile(explicit, []byte("server:\n  addr: \":1\"\n"), 0644))

	t.Setenv(EnvConfigPath, explicit)
	assert.Equal(t, explicit, FindConfigPath())

	paths := SearchPaths()
	require.NotEmpty(t, paths)
	assert.Equal(t, explicit, paths[0])
	assert.Equal(t, filepath.Join("/etc", ConfigDirName, "config.yaml"), paths[len(paths)-1])
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, "/tmp/xdg/topomap/config.yaml", DefaultConfigPath())
}
