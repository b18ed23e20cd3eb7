// Package interaction turns pointer drag gestures into node pins and
// simulation reheats.
package interaction

import (
	"topomap/internal/domain"
	"topomap/internal/graph"
	"topomap/internal/layout"
)

// Phase of the drag state machine
type Phase int

const (
	Idle Phase = iota
	Dragging
)

func (p Phase) String() string {
	if p == Dragging {
		return "dragging"
	}
	return "idle"
}

// Controller is the single-pointer drag state machine. The zero value is
// Idle. It holds no references to the graph; every operation receives the
// model and simulation state it acts on.
type Controller struct {
	Phase  Phase  `json:"phase"`
	NodeID string `json:"node_id,omitempty"`
}

// Active reports whether id is the node currently being dragged
func (c Controller) Active(id string) bool {
	return c.Phase == Dragging && c.NodeID == id
}

// DragStart pins id at pos and reheats the simulation. It is a no-op when
// the node is unknown or another drag is in progress.
func (c *Controller) DragStart(m *graph.Model, sim *layout.State, id string, pos domain.Vec) bool {
	if c.Phase == Dragging {
		return false
	}
	node, err := m.FindNode(id)
	if err != nil {
		return false
	}

	node.Pin(pos)
	node.Position = pos
	node.Velocity = domain.Vec{}
	*sim = sim.Reheat()

	c.Phase = Dragging
	c.NodeID = id
	return true
}

// DragMove moves the pin of the node being dragged
func (c *Controller) DragMove(m *graph.Model, id string, pos domain.Vec) bool {
	if !c.Active(id) {
		return false
	}
	node, err := m.FindNode(id)
	if err != nil {
		return false
	}
	node.Pin(pos)
	node.Position = pos
	return true
}

// DragEnd releases the dragged node and lets the simulation cool. The
// controller returns to Idle even if the node vanished mid-gesture.
func (c *Controller) DragEnd(m *graph.Model, sim *layout.State, id string) bool {
	if !c.Active(id) {
		return false
	}
	if node, err := m.FindNode(id); err == nil {
		node.Unpin()
	}
	*sim = sim.Cool()
	c.Reset()
	return true
}

// Reset abandons any drag in progress without touching the graph. Used when
// the topology is replaced.
func (c *Controller) Reset() {
	c.Phase = Idle
	c.NodeID = ""
}
