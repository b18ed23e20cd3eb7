package layout

import (
	"math"

	"topomap/internal/domain"
	"topomap/internal/graph"
)

const (
	initialRadius = 10
)

var initialAngle = math.Pi * (3 - math.Sqrt(5))

// State is the simulation state that travels alongside a graph.Model.
// Forces and constraints are immutable once built and may be shared
// between copies of a State.
type State struct {
	Alpha         float64
	AlphaMin      float64
	AlphaDecay    float64
	AlphaTarget   float64
	VelocityDecay float64
	ReheatAlpha   float64

	Forces      []Force
	Constraints []Constraint

	// Ticks counts applied (non no-op) ticks since the state was created
	Ticks int

	jiggler Jiggler
}

// NewState builds the standard force set for m. Nodes that have not been
// placed yet are laid out on a phyllotaxis spiral around the canvas center.
func NewState(m *graph.Model, cfg Config) State {
	cfg = cfg.WithDefaults()
	center := domain.Vec{X: cfg.Width / 2, Y: cfg.Height / 2}

	Place(m.Nodes(), center)

	return State{
		Alpha:         cfg.Alpha,
		AlphaMin:      cfg.AlphaMin,
		AlphaDecay:    cfg.AlphaDecay,
		VelocityDecay: cfg.VelocityDecay,
		ReheatAlpha:   cfg.ReheatAlpha,
		Forces: []Force{
			NewLinkForce(m, cfg.LinkDistance, cfg.LinkStrength),
			&ManyBodyForce{
				Strength:    cfg.ChargeStrength,
				DistanceMin: cfg.ChargeDistanceMin,
				DistanceMax: cfg.ChargeDistanceMax,
			},
			&CenterForce{Center: center, Strength: cfg.CenterStrength},
		},
		Constraints: []Constraint{
			&CollideConstraint{
				Radius:     cfg.CollideRadius,
				Strength:   cfg.CollideStrength,
				Iterations: cfg.CollideIterations,
			},
		},
		jiggler: NewJiggler(cfg.Seed),
	}
}

// Place positions every unplaced node on a phyllotaxis spiral around
// center. Pinned nodes are moved onto their pin.
func Place(nodes []domain.Node, center domain.Vec) {
	for i := range nodes {
		n := &nodes[i]
		if n.Pinned != nil {
			n.Position = *n.Pinned
			n.Placed = true
			continue
		}
		if n.Placed {
			continue
		}
		r := initialRadius * math.Sqrt(0.5+float64(i))
		a := float64(i) * initialAngle
		n.Position = domain.Vec{X: center.X + r*math.Cos(a), Y: center.Y + r*math.Sin(a)}
		n.Velocity = domain.Vec{}
		n.Placed = true
	}
}

// Settled reports whether alpha has dropped below AlphaMin
func (s State) Settled() bool {
	return s.Alpha < s.AlphaMin
}

// Reheat raises alpha to at least the reheat level and holds it there
// until Cool is called.
func (s State) Reheat() State {
	s.Alpha = math.Max(s.Alpha, s.ReheatAlpha)
	s.AlphaTarget = s.ReheatAlpha
	return s
}

// Cool lets alpha decay toward zero again
func (s State) Cool() State {
	s.AlphaTarget = 0
	return s
}

// Restart sets alpha back to a given value, clamped to [0, 1]
func (s State) Restart(alpha float64) State {
	s.Alpha = math.Max(0, math.Min(1, alpha))
	return s
}

// Step advances a copy of the simulation by one tick and returns the new
// state and graph. The inputs are left untouched.
func Step(s State, m *graph.Model) (State, *graph.Model) {
	next := m.Clone()
	s.Tick(next.Nodes())
	return s, next
}

// Tick advances the simulation one tick in place. It reports false when
// the simulation is settled and nothing was done.
func (s *State) Tick(nodes []domain.Node) bool {
	if s.Settled() {
		return false
	}

	for _, f := range s.Forces {
		f.Apply(nodes, s.Alpha, &s.jiggler)
	}

	keep := 1 - s.VelocityDecay
	for i := range nodes {
		n := &nodes[i]
		if n.Pinned != nil {
			n.Position = *n.Pinned
			n.Velocity = domain.Vec{}
			continue
		}
		n.Velocity = n.Velocity.Scale(keep)
		n.Position = n.Position.Add(n.Velocity)
	}

	for _, c := range s.Constraints {
		c.Resolve(nodes, &s.jiggler)
	}
	for i := range nodes {
		if p := nodes[i].Pinned; p != nil {
			nodes[i].Position = *p
		}
	}

	s.Alpha += (s.AlphaTarget - s.Alpha) * s.AlphaDecay
	s.Ticks++
	return true
}

// Run ticks until the simulation settles or maxTicks is reached and
// returns the number of ticks applied.
func (s *State) Run(nodes []domain.Node, maxTicks int) int {
	n := 0
	for n < maxTicks && s.Tick(nodes) {
		n++
	}
	return n
}
