package engine

import (
	"math"

	"topomap/internal/domain"
	"topomap/internal/errors"
	"topomap/internal/graph"
	"topomap/internal/interaction"
	"topomap/internal/layout"
	"topomap/internal/overlay"
	"topomap/internal/viewport"
)

// Options configures a State
type Options struct {
	Layout   layout.Config
	MinScale float64
	MaxScale float64
}

// State is everything the diagram needs between two ticks. Treat it as a
// value: Step and Apply return a new State and never modify their input.
type State struct {
	Graph *graph.Model
	Sim   layout.State
	Drag  interaction.Controller
	View  viewport.Controller

	// Generation increments each time the topology is replaced
	Generation uint64

	opts Options
}

// New loads topo into a fresh State
func New(topo *domain.Topology, opts Options) (State, error) {
	m, err := graph.Load(topo)
	if err != nil {
		return State{}, err
	}
	return NewState(m, opts), nil
}

// NewState wraps an already loaded model. The model is owned by the
// returned State from now on.
func NewState(m *graph.Model, opts Options) State {
	opts.Layout = opts.Layout.WithDefaults()
	return State{
		Graph:      m,
		Sim:        layout.NewState(m, opts.Layout),
		View:       viewport.New(opts.MinScale, opts.MaxScale),
		Generation: 1,
		opts:       opts,
	}
}

// Settled reports whether the layout has come to rest
func (s State) Settled() bool {
	return s.Sim.Settled()
}

// Step advances the layout by one tick
func Step(s State) State {
	s.Sim, s.Graph = layout.Step(s.Sim, s.Graph)
	return s
}

// Update applies ev and returns the new state. Events that cannot be
// applied (an invalid topology) leave the state unchanged; use Apply to
// see the error.
func Update(s State, ev Event) State {
	next, err := Apply(s, ev)
	if err != nil {
		return s
	}
	return next
}

// Apply applies ev to a copy of s
func Apply(s State, ev Event) (State, error) {
	if _, ok := ev.(LoadTopology); !ok {
		s.Graph = s.Graph.Clone()
	}
	if err := s.apply(ev); err != nil {
		return State{}, err
	}
	return s, nil
}

// tick advances s in place. Only the owner of s may call it.
func (s *State) tick() bool {
	return s.Sim.Tick(s.Graph.Nodes())
}

// apply mutates s in place. Only the owner of s may call it.
func (s *State) apply(ev Event) error {
	switch e := ev.(type) {
	case DragStart:
		s.Drag.DragStart(s.Graph, &s.Sim, e.NodeID, s.world(e.Pos, e.Screen))
	case DragMove:
		s.Drag.DragMove(s.Graph, e.NodeID, s.world(e.Pos, e.Screen))
	case DragEnd:
		s.Drag.DragEnd(s.Graph, &s.Sim, e.NodeID)
	case Zoom:
		s.View.Zoom(e.Scale, e.X, e.Y)
	case ZoomAt:
		s.View.ZoomAt(e.Factor, e.X, e.Y)
	case Pan:
		s.View.Pan(e.DX, e.DY)
	case ResetViewport:
		s.View.Reset()
	case SetNodeStatus:
		overlay.SetNodeStatus(s.Graph, e.NodeID, e.Status)
	case SetLinkStatus:
		overlay.SetLinkStatus(s.Graph, e.Source, e.Target, e.Status)
	case HighlightPath:
		overlay.HighlightPath(s.Graph, e.NodeIDs)
	case LoadTopology:
		return s.load(e)
	case Reheat:
		s.Sim = s.Sim.Restart(math.Max(s.Sim.Alpha, s.Sim.ReheatAlpha))
	case nil:
		return errors.NewInvalidRequestError("nil event")
	default:
		return errors.NewInvalidRequestError("unknown event %T", ev)
	}
	return nil
}

func (s *State) world(p domain.Vec, screen bool) domain.Vec {
	if screen {
		return s.View.Unproject(p)
	}
	return p
}

// load replaces the graph and simulation. The viewport survives.
func (s *State) load(e LoadTopology) error {
	m, err := graph.Load(e.Topology)
	if err != nil {
		return err
	}

	seed := e.Positions
	if seed == nil && s.Graph != nil {
		seed = make(map[string]domain.Vec, s.Graph.Len())
		for _, n := range s.Graph.Nodes() {
			if n.Placed {
				seed[n.ID] = n.Position
			}
		}
	}
	nodes := m.Nodes()
	for i := range nodes {
		if p, ok := seed[nodes[i].ID]; ok {
			nodes[i].Position = p
			nodes[i].Placed = true
		}
	}

	s.Graph = m
	s.Sim = layout.NewState(m, s.opts.Layout)
	s.Drag.Reset()
	s.Generation++
	return nil
}

// Positions returns the current node positions by id
func (s State) Positions() map[string]domain.Vec {
	out := make(map[string]domain.Vec, s.Graph.Len())
	for _, n := range s.Graph.Nodes() {
		out[n.ID] = n.Position
	}
	return out
}
