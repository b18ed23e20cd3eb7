package config

import (
	"github.com/spf13/viper"

	"topomap/internal/engine"
	"topomap/internal/hub"
	"topomap/internal/layout"
	"topomap/internal/loader"
	"topomap/internal/viewport"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":3000")
	v.SetDefault("database.path", "./topomap.db")

	v.SetDefault("topology.source", "")
	v.SetDefault("topology.watch", false)
	v.SetDefault("topology.timeout", loader.DefaultTimeout)

	sim := layout.DefaultConfig()
	v.SetDefault("simulation.tick_interval", engine.DefaultTickInterval)
	v.SetDefault("simulation.link_distance", sim.LinkDistance)
	v.SetDefault("simulation.link_strength", sim.LinkStrength) // 0 = degree based
	v.SetDefault("simulation.charge_strength", sim.ChargeStrength)
	v.SetDefault("simulation.charge_distance_min", sim.ChargeDistanceMin)
	v.SetDefault("simulation.charge_distance_max", sim.ChargeDistanceMax) // 0 = unbounded
	v.SetDefault("simulation.center_strength", sim.CenterStrength)
	v.SetDefault("simulation.collide_radius", sim.CollideRadius)
	v.SetDefault("simulation.collide_strength", sim.CollideStrength)
	v.SetDefault("simulation.collide_iterations", sim.CollideIterations)
	v.SetDefault("simulation.alpha", sim.Alpha)
	v.SetDefault("simulation.alpha_min", sim.AlphaMin)
	v.SetDefault("simulation.alpha_decay", sim.AlphaDecay)
	v.SetDefault("simulation.velocity_decay", sim.VelocityDecay)
	v.SetDefault("simulation.reheat_alpha", sim.ReheatAlpha)
	v.SetDefault("simulation.seed", sim.Seed)

	v.SetDefault("canvas.width", sim.Width)
	v.SetDefault("canvas.height", sim.Height)

	v.SetDefault("viewport.min_scale", viewport.DefaultMinScale)
	v.SetDefault("viewport.max_scale", viewport.DefaultMaxScale)

	v.SetDefault("stream.max_fps", hub.DefaultMaxFPS)

	v.SetDefault("log.json", false)
	v.SetDefault("log.level", "info")
}
