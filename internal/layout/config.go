package layout

import "math"

// Config holds the physics parameters of a simulation
type Config struct {
	// Canvas size; the centering force targets its midpoint
	Width  float64 `mapstructure:"width" json:"width"`
	Height float64 `mapstructure:"height" json:"height"`

	LinkDistance float64 `mapstructure:"link_distance" json:"link_distance"`
	// LinkStrength of 0 uses 1/min(degree(source), degree(target))
	LinkStrength float64 `mapstructure:"link_strength" json:"link_strength"`

	// ChargeStrength is negative for repulsion
	ChargeStrength    float64 `mapstructure:"charge_strength" json:"charge_strength"`
	ChargeDistanceMin float64 `mapstructure:"charge_distance_min" json:"charge_distance_min"`
	// ChargeDistanceMax of 0 means unbounded
	ChargeDistanceMax float64 `mapstructure:"charge_distance_max" json:"charge_distance_max"`

	CenterStrength float64 `mapstructure:"center_strength" json:"center_strength"`

	CollideRadius     float64 `mapstructure:"collide_radius" json:"collide_radius"`
	CollideStrength   float64 `mapstructure:"collide_strength" json:"collide_strength"`
	CollideIterations int     `mapstructure:"collide_iterations" json:"collide_iterations"`

	Alpha         float64 `mapstructure:"alpha" json:"alpha"`
	AlphaMin      float64 `mapstructure:"alpha_min" json:"alpha_min"`
	AlphaDecay    float64 `mapstructure:"alpha_decay" json:"alpha_decay"`
	VelocityDecay float64 `mapstructure:"velocity_decay" json:"velocity_decay"`
	ReheatAlpha   float64 `mapstructure:"reheat_alpha" json:"reheat_alpha"`

	Seed uint32 `mapstructure:"seed" json:"seed"`
}

// DefaultAlphaDecay settles a fresh simulation in 300 ticks
var DefaultAlphaDecay = 1 - math.Pow(0.001, 1.0/300)

// DefaultConfig returns the parameters of the standard topology diagram
func DefaultConfig() Config {
	return Config{
		Width:             960,
		Height:            600,
		LinkDistance:      100,
		ChargeStrength:    -300,
		ChargeDistanceMin: 1,
		CenterStrength:    1,
		CollideRadius:     20,
		CollideStrength:   1,
		CollideIterations: 1,
		Alpha:             1,
		AlphaMin:          0.001,
		AlphaDecay:        DefaultAlphaDecay,
		VelocityDecay:     0.4,
		ReheatAlpha:       0.3,
		Seed:              1,
	}
}

// WithDefaults fills zero fields from DefaultConfig. ChargeStrength,
// LinkStrength and ChargeDistanceMax keep zero since zero is meaningful.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.Width == 0 {
		c.Width = d.Width
	}
	if c.Height == 0 {
		c.Height = d.Height
	}
	if c.LinkDistance == 0 {
		c.LinkDistance = d.LinkDistance
	}
	if c.ChargeDistanceMin == 0 {
		c.ChargeDistanceMin = d.ChargeDistanceMin
	}
	if c.CenterStrength == 0 {
		c.CenterStrength = d.CenterStrength
	}
	if c.CollideRadius == 0 {
		c.CollideRadius = d.CollideRadius
	}
	if c.CollideStrength == 0 {
		c.CollideStrength = d.CollideStrength
	}
	if c.CollideIterations == 0 {
		c.CollideIterations = d.CollideIterations
	}
	if c.Alpha == 0 {
		c.Alpha = d.Alpha
	}
	if c.AlphaMin == 0 {
		c.AlphaMin = d.AlphaMin
	}
	if c.AlphaDecay == 0 {
		c.AlphaDecay = d.AlphaDecay
	}
	if c.VelocityDecay == 0 {
		c.VelocityDecay = d.VelocityDecay
	}
	if c.ReheatAlpha == 0 {
		c.ReheatAlpha = d.ReheatAlpha
	}
	if c.Seed == 0 {
		c.Seed = d.Seed
	}
	return c
}
