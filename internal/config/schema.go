package config

import (
	"time"
)

// Config is the root configuration structure
type Config struct {
	Server     ServerConfig     `mapstructure:"server" yaml:"server"`
	Database   DatabaseConfig   `mapstructure:"database" yaml:"database"`
	Topology   TopologyConfig   `mapstructure:"topology" yaml:"topology"`
	Simulation SimulationConfig `mapstructure:"simulation" yaml:"simulation"`
	Canvas     CanvasConfig     `mapstructure:"canvas" yaml:"canvas"`
	Viewport   ViewportConfig   `mapstructure:"viewport" yaml:"viewport"`
	Stream     StreamConfig     `mapstructure:"stream" yaml:"stream"`
	Log        LogConfig        `mapstructure:"log" yaml:"log"`
}

// ServerConfig configures the HTTP listener
type ServerConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// DatabaseConfig configures layout persistence. An empty path disables it.
type DatabaseConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// TopologyConfig configures where the topology comes from
type TopologyConfig struct {
	// Source is a file path or an http(s) URL. Empty uses the fallback
	// dataset.
	Source  string        `mapstructure:"source" yaml:"source"`
	Watch   bool          `mapstructure:"watch" yaml:"watch"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// SimulationConfig holds the force simulation parameters
type SimulationConfig struct {
	TickInterval time.Duration `mapstructure:"tick_interval" yaml:"tick_interval"`

	LinkDistance      float64 `mapstructure:"link_distance" yaml:"link_distance"`
	LinkStrength      float64 `mapstructure:"link_strength" yaml:"link_strength"`
	ChargeStrength    float64 `mapstructure:"charge_strength" yaml:"charge_strength"`
	ChargeDistanceMin float64 `mapstructure:"charge_distance_min" yaml:"charge_distance_min"`
	ChargeDistanceMax float64 `mapstructure:"charge_distance_max" yaml:"charge_distance_max"`
	CenterStrength    float64 `mapstructure:"center_strength" yaml:"center_strength"`
	CollideRadius     float64 `mapstructure:"collide_radius" yaml:"collide_radius"`
	CollideStrength   float64 `mapstructure:"collide_strength" yaml:"collide_strength"`
	CollideIterations int     `mapstructure:"collide_iterations" yaml:"collide_iterations"`

	Alpha         float64 `mapstructure:"alpha" yaml:"alpha"`
	AlphaMin      float64 `mapstructure:"alpha_min" yaml:"alpha_min"`
	AlphaDecay    float64 `mapstructure:"alpha_decay" yaml:"alpha_decay"`
	VelocityDecay float64 `mapstructure:"velocity_decay" yaml:"velocity_decay"`
	ReheatAlpha   float64 `mapstructure:"reheat_alpha" yaml:"reheat_alpha"`
	Seed          uint32  `mapstructure:"seed" yaml:"seed"`
}

// CanvasConfig is the size of the drawing area in world units
type CanvasConfig struct {
	Width  float64 `mapstructure:"width" yaml:"width"`
	Height float64 `mapstructure:"height" yaml:"height"`
}

// ViewportConfig bounds the zoom scale
type ViewportConfig struct {
	MinScale float64 `mapstructure:"min_scale" yaml:"min_scale"`
	MaxScale float64 `mapstructure:"max_scale" yaml:"max_scale"`
}

// StreamConfig configures the frame stream to clients
type StreamConfig struct {
	MaxFPS float64 `mapstructure:"max_fps" yaml:"max_fps"`
}

// LogConfig configures the global logger
type LogConfig struct {
	JSON  bool   `mapstructure:"json" yaml:"json"`
	Level string `mapstructure:"level" yaml:"level"`
}
