// Package config provides configuration management for topomap.
//
// Values come from, in increasing precedence: built-in defaults, a YAML
// config file and TOPOMAP_* environment variables (TOPOMAP_SERVER_ADDR,
// TOPOMAP_SIMULATION_CHARGE_STRENGTH, ...).
//
// Config file locations (priority order):
//  1. $TOPOMAP_CONFIG
//  2. ./topomap.yaml
//  3. ~/.config/topomap/config.yaml
//  4. /etc/topomap/config.yaml
package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"topomap/internal/engine"
	"topomap/internal/errors"
	"topomap/internal/layout"
)

// New returns a viper instance with defaults and environment binding
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file at path, or the first file found by
// FindConfigPath when path is empty. Without any file the defaults are
// used. It returns the path actually read.
func Load(path string) (*Config, string, error) {
	if path == "" {
		path = FindConfigPath()
	}

	v := New()
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, path, errors.Wrapf(err, "read config %s", path)
		}
	}

	cfg, err := LoadWithViper(v)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// LoadWithViper unmarshals and validates configuration from v
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	cfg, err := LoadWithViper(New())
	if err != nil {
		// defaults always validate
		panic(err)
	}
	return cfg
}

// Save writes config to the specified path as YAML
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return errors.Wrap(err, "create config dir")
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	s := c.Simulation
	if s.TickInterval <= 0 {
		return errors.Newf("simulation.tick_interval must be > 0, got %s", s.TickInterval)
	}
	if s.LinkDistance <= 0 {
		return errors.Newf("simulation.link_distance must be > 0, got %g", s.LinkDistance)
	}
	if s.LinkStrength < 0 {
		return errors.Newf("simulation.link_strength must be >= 0, got %g", s.LinkStrength)
	}
	if s.ChargeDistanceMax < 0 {
		return errors.Newf("simulation.charge_distance_max must be >= 0, got %g", s.ChargeDistanceMax)
	}
	if s.CollideRadius < 0 {
		return errors.Newf("simulation.collide_radius must be >= 0, got %g", s.CollideRadius)
	}
	if s.Alpha <= 0 || s.Alpha > 1 {
		return errors.Newf("simulation.alpha must be in (0, 1], got %g", s.Alpha)
	}
	if s.AlphaMin <= 0 || s.AlphaMin >= s.Alpha {
		return errors.Newf("simulation.alpha_min must be in (0, alpha), got %g", s.AlphaMin)
	}
	if s.AlphaDecay <= 0 || s.AlphaDecay >= 1 {
		return errors.Newf("simulation.alpha_decay must be in (0, 1), got %g", s.AlphaDecay)
	}
	if s.VelocityDecay <= 0 || s.VelocityDecay >= 1 {
		return errors.Newf("simulation.velocity_decay must be in (0, 1), got %g", s.VelocityDecay)
	}
	if s.ReheatAlpha <= s.AlphaMin || s.ReheatAlpha > 1 {
		return errors.Newf("simulation.reheat_alpha must be in (alpha_min, 1], got %g", s.ReheatAlpha)
	}

	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return errors.Newf("canvas must have positive size, got %gx%g", c.Canvas.Width, c.Canvas.Height)
	}
	if c.Viewport.MinScale <= 0 || c.Viewport.MaxScale < c.Viewport.MinScale {
		return errors.Newf("viewport scale bounds invalid: min %g, max %g", c.Viewport.MinScale, c.Viewport.MaxScale)
	}
	if c.Stream.MaxFPS <= 0 {
		return errors.Newf("stream.max_fps must be > 0, got %g", c.Stream.MaxFPS)
	}
	if c.Topology.Timeout < 0 {
		return errors.Newf("topology.timeout must be >= 0, got %s", c.Topology.Timeout)
	}
	return nil
}

// Layout returns the simulation parameters for the layout package
func (c *Config) Layout() layout.Config {
	s := c.Simulation
	return layout.Config{
		Width:             c.Canvas.Width,
		Height:            c.Canvas.Height,
		LinkDistance:      s.LinkDistance,
		LinkStrength:      s.LinkStrength,
		ChargeStrength:    s.ChargeStrength,
		ChargeDistanceMin: s.ChargeDistanceMin,
		ChargeDistanceMax: s.ChargeDistanceMax,
		CenterStrength:    s.CenterStrength,
		CollideRadius:     s.CollideRadius,
		CollideStrength:   s.CollideStrength,
		CollideIterations: s.CollideIterations,
		Alpha:             s.Alpha,
		AlphaMin:          s.AlphaMin,
		AlphaDecay:        s.AlphaDecay,
		VelocityDecay:     s.VelocityDecay,
		ReheatAlpha:       s.ReheatAlpha,
		Seed:              s.Seed,
	}
}

// EngineOptions returns the options for a new engine state
func (c *Config) EngineOptions() engine.Options {
	return engine.Options{
		Layout:   c.Layout(),
		MinScale: c.Viewport.MinScale,
		MaxScale: c.Viewport.MaxScale,
	}
}

// EngineConfig returns the runtime loop settings
func (c *Config) EngineConfig() engine.Config {
	return engine.Config{TickInterval: c.Simulation.TickInterval}
}
