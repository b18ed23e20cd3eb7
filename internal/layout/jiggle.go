package layout

// Jiggler is a deterministic linear congruential generator used to break
// coincident positions. The zero value is usable.
type Jiggler struct {
	state uint32
}

// NewJiggler seeds a jiggler
func NewJiggler(seed uint32) Jiggler {
	return Jiggler{state: seed}
}

// Float returns the next value in [0, 1)
func (j *Jiggler) Float() float64 {
	// Numerical Recipes constants; arithmetic wraps mod 2^32
	j.state = 1664525*j.state + 1013904223
	return float64(j.state) / 4294967296.0
}

// Jiggle returns a tiny non-zero offset in (-5e-7, 5e-7)
func (j *Jiggler) Jiggle() float64 {
	v := (j.Float() - 0.5) * 1e-6
	if v == 0 {
		return 1e-7
	}
	return v
}
