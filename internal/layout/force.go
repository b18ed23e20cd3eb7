package layout

import (
	"math"

	"topomap/internal/domain"
	"topomap/internal/graph"
)

// Force adds its contribution to node velocities for one tick
type Force interface {
	Name() string
	Apply(nodes []domain.Node, alpha float64, j *Jiggler)
}

// Constraint corrects positions after integration
type Constraint interface {
	Name() string
	Resolve(nodes []domain.Node, j *Jiggler)
}

// LinkForce pulls linked nodes toward a rest distance.
// Links are resolved to arena indices when the force is built, so a
// LinkForce must be rebuilt when the graph is replaced.
type LinkForce struct {
	Distance float64
	pairs    []linkPair
}

type linkPair struct {
	source, target int
	strength       float64
	bias           float64
}

// NewLinkForce builds the spring force for every link of m. A strength of 0
// uses the degree-based default.
func NewLinkForce(m *graph.Model, distance, strength float64) *LinkForce {
	degree := m.Degree()
	links := m.Links()
	f := &LinkForce{Distance: distance, pairs: make([]linkPair, 0, len(links))}
	for _, l := range links {
		s, _ := m.IndexOf(l.Source)
		t, _ := m.IndexOf(l.Target)
		ds, dt := float64(degree[s]), float64(degree[t])
		p := linkPair{source: s, target: t, bias: ds / (ds + dt)}
		if strength != 0 {
			p.strength = strength
		} else {
			p.strength = 1 / math.Min(ds, dt)
		}
		f.pairs = append(f.pairs, p)
	}
	return f
}

func (f *LinkForce) Name() string { return "link" }

func (f *LinkForce) Apply(nodes []domain.Node, alpha float64, j *Jiggler) {
	for _, p := range f.pairs {
		src, tgt := &nodes[p.source], &nodes[p.target]
		x := tgt.Position.X + tgt.Velocity.X - src.Position.X - src.Velocity.X
		y := tgt.Position.Y + tgt.Velocity.Y - src.Position.Y - src.Velocity.Y
		if x == 0 {
			x = j.Jiggle()
		}
		if y == 0 {
			y = j.Jiggle()
		}
		l := math.Sqrt(x*x + y*y)
		l = (l - f.Distance) / l * alpha * p.strength
		x *= l
		y *= l
		tgt.Velocity.X -= x * p.bias
		tgt.Velocity.Y -= y * p.bias
		src.Velocity.X += x * (1 - p.bias)
		src.Velocity.Y += y * (1 - p.bias)
	}
}

// ManyBodyForce makes every node repel (or attract, for positive strength)
// every other node, falling off with the square of distance.
type ManyBodyForce struct {
	Strength    float64
	DistanceMin float64
	// DistanceMax of 0 means unbounded
	DistanceMax float64
}

func (f *ManyBodyForce) Name() string { return "charge" }

func (f *ManyBodyForce) Apply(nodes []domain.Node, alpha float64, j *Jiggler) {
	min2 := f.DistanceMin * f.DistanceMin
	max2 := math.Inf(1)
	if f.DistanceMax > 0 {
		max2 = f.DistanceMax * f.DistanceMax
	}

	for i := range nodes {
		ni := &nodes[i]
		for k := range nodes {
			if k == i {
				continue
			}
			x := nodes[k].Position.X - ni.Position.X
			y := nodes[k].Position.Y - ni.Position.Y
			l := x*x + y*y
			if x == 0 {
				x = j.Jiggle()
				l += x * x
			}
			if y == 0 {
				y = j.Jiggle()
				l += y * y
			}
			if l >= max2 {
				continue
			}
			if l < min2 {
				l = math.Sqrt(min2 * l)
			}
			w := f.Strength * alpha / l
			ni.Velocity.X += x * w
			ni.Velocity.Y += y * w
		}
	}
}

// CenterForce translates free nodes so that the centroid of all nodes
// moves toward Center. It acts on positions, not velocities.
type CenterForce struct {
	Center   domain.Vec
	Strength float64
}

func (f *CenterForce) Name() string { return "center" }

func (f *CenterForce) Apply(nodes []domain.Node, _ float64, _ *Jiggler) {
	if len(nodes) == 0 {
		return
	}
	var sx, sy float64
	for i := range nodes {
		sx += nodes[i].Position.X
		sy += nodes[i].Position.Y
	}
	n := float64(len(nodes))
	dx := (f.Center.X - sx/n) * f.Strength
	dy := (f.Center.Y - sy/n) * f.Strength
	for i := range nodes {
		if nodes[i].Pinned != nil {
			continue
		}
		nodes[i].Position.X += dx
		nodes[i].Position.Y += dy
	}
}

// CollideConstraint keeps node centers at least 2*Radius apart.
// Free nodes share the correction; a pinned node never moves.
type CollideConstraint struct {
	Radius     float64
	Strength   float64
	Iterations int
}

func (c *CollideConstraint) Name() string { return "collide" }

func (c *CollideConstraint) Resolve(nodes []domain.Node, j *Jiggler) {
	minDist := 2 * c.Radius
	min2 := minDist * minDist
	for iter := 0; iter < c.Iterations; iter++ {
		for a := range nodes {
			na := &nodes[a]
			for b := a + 1; b < len(nodes); b++ {
				nb := &nodes[b]
				wa, wb := collideWeights(na.Pinned != nil, nb.Pinned != nil)
				if wa == 0 && wb == 0 {
					continue
				}
				x := nb.Position.X - na.Position.X
				y := nb.Position.Y - na.Position.Y
				l2 := x*x + y*y
				if l2 >= min2 {
					continue
				}
				if x == 0 {
					x = j.Jiggle()
				}
				if y == 0 {
					y = j.Jiggle()
				}
				l := math.Sqrt(x*x + y*y)
				k := (minDist - l) / l * c.Strength
				x *= k
				y *= k
				na.Position.X -= x * wa
				na.Position.Y -= y * wa
				nb.Position.X += x * wb
				nb.Position.Y += y * wb
			}
		}
	}
}

func collideWeights(aPinned, bPinned bool) (float64, float64) {
	switch {
	case aPinned && bPinned:
		return 0, 0
	case aPinned:
		return 0, 1
	case bPinned:
		return 1, 0
	default:
		return 0.5, 0.5
	}
}
