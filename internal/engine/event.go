package engine

import (
	"topomap/internal/domain"
)

// Event is an input to Update. Event types are plain values.
type Event interface {
	// Kind names the event for logs and wire messages
	Kind() string
}

// DragStart pins a node under the pointer. Pos is in world coordinates
// unless Screen is set.
type DragStart struct {
	NodeID string     `json:"node_id"`
	Pos    domain.Vec `json:"pos"`
	Screen bool       `json:"screen,omitempty"`
}

// DragMove moves the pin of the node being dragged
type DragMove struct {
	NodeID string     `json:"node_id"`
	Pos    domain.Vec `json:"pos"`
	Screen bool       `json:"screen,omitempty"`
}

// DragEnd releases the dragged node
type DragEnd struct {
	NodeID string `json:"node_id"`
}

// Zoom sets the absolute viewport transform
type Zoom struct {
	Scale float64 `json:"k"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// ZoomAt scales the viewport by Factor around the screen point (X, Y)
type ZoomAt struct {
	Factor float64 `json:"factor"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// Pan translates the viewport
type Pan struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

// ResetViewport restores the identity transform
type ResetViewport struct{}

// SetNodeStatus is a status push for one node
type SetNodeStatus struct {
	NodeID string `json:"node_id"`
	Status string `json:"status"`
}

// SetLinkStatus is a status push for the link joining two nodes
type SetLinkStatus struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Status string `json:"status"`
}

// HighlightPath replaces the highlighted path
type HighlightPath struct {
	NodeIDs []string `json:"node_ids"`
}

// LoadTopology replaces the graph. Positions, when set, seed the layout
// for matching node ids; otherwise positions of nodes that survive the
// reload are kept.
type LoadTopology struct {
	Topology  *domain.Topology
	Positions map[string]domain.Vec
}

// Reheat restarts a settled layout without a drag
type Reheat struct{}

func (DragStart) Kind() string     { return "drag_start" }
func (DragMove) Kind() string      { return "drag_move" }
func (DragEnd) Kind() string       { return "drag_end" }
func (Zoom) Kind() string          { return "zoom" }
func (ZoomAt) Kind() string        { return "zoom_at" }
func (Pan) Kind() string           { return "pan" }
func (ResetViewport) Kind() string { return "reset_viewport" }
func (SetNodeStatus) Kind() string { return "node_status" }
func (SetLinkStatus) Kind() string { return "link_status" }
func (HighlightPath) Kind() string { return "highlight" }
func (LoadTopology) Kind() string  { return "load_topology" }
func (Reheat) Kind() string        { return "reheat" }
