package engine

import (
	"topomap/internal/domain"
	"topomap/internal/interaction"
	"topomap/internal/viewport"
)

// Frame is the rendering output of one tick. Frames are immutable once
// built and may be shared between goroutines.
type Frame struct {
	Generation uint64                 `json:"generation"`
	Tick       int                    `json:"tick"`
	Alpha      float64                `json:"alpha"`
	Settled    bool                   `json:"settled"`
	Transform  viewport.Transform     `json:"transform"`
	Drag       interaction.Controller `json:"drag"`
	Nodes      []FrameNode            `json:"nodes"`
	Links      []FrameLink            `json:"links"`
}

// FrameNode is a node as drawn: world position, screen position and style
type FrameNode struct {
	ID          string               `json:"id"`
	Label       string               `json:"label"`
	Type        domain.NodeType      `json:"type"`
	Domain      domain.NetworkDomain `json:"domain"`
	Status      domain.Status        `json:"status"`
	X           float64              `json:"x"`
	Y           float64              `json:"y"`
	ScreenX     float64              `json:"sx"`
	ScreenY     float64              `json:"sy"`
	Pinned      bool                 `json:"pinned"`
	Highlighted bool                 `json:"highlighted"`
	Color       string               `json:"color"`
	Icon        string               `json:"icon"`
	Class       string               `json:"class"`
}

// FrameLink is a link segment between its endpoints' world positions
type FrameLink struct {
	ID          string        `json:"id"`
	Source      string        `json:"source"`
	Target      string        `json:"target"`
	Status      domain.Status `json:"status"`
	Highlighted bool          `json:"highlighted"`
	X1          float64       `json:"x1"`
	Y1          float64       `json:"y1"`
	X2          float64       `json:"x2"`
	Y2          float64       `json:"y2"`
	Class       string        `json:"class"`
}

// Project renders s. The frame shares no memory with s.
func Project(s State) Frame {
	nodes := s.Graph.Nodes()
	links := s.Graph.Links()

	f := Frame{
		Generation: s.Generation,
		Tick:       s.Sim.Ticks,
		Alpha:      s.Sim.Alpha,
		Settled:    s.Sim.Settled(),
		Transform:  s.View.Transform,
		Drag:       s.Drag,
		Nodes:      make([]FrameNode, len(nodes)),
		Links:      make([]FrameLink, len(links)),
	}

	for i := range nodes {
		n := &nodes[i]
		screen := s.View.Project(n.Position)
		f.Nodes[i] = FrameNode{
			ID:          n.ID,
			Label:       n.Label(),
			Type:        n.Type,
			Domain:      n.Domain,
			Status:      n.Status,
			X:           n.Position.X,
			Y:           n.Position.Y,
			ScreenX:     screen.X,
			ScreenY:     screen.Y,
			Pinned:      n.IsPinned(),
			Highlighted: n.Highlighted,
			Color:       n.Type.Color(),
			Icon:        n.Type.Icon(),
			Class:       n.Status.NodeClass(),
		}
	}

	for i := range links {
		l := &links[i]
		fl := FrameLink{
			ID:          l.ID(),
			Source:      l.Source,
			Target:      l.Target,
			Status:      l.Status,
			Highlighted: l.Highlighted,
			Class:       l.Status.LinkClass(),
		}
		if si, ok := s.Graph.IndexOf(l.Source); ok {
			fl.X1, fl.Y1 = nodes[si].Position.X, nodes[si].Position.Y
		}
		if ti, ok := s.Graph.IndexOf(l.Target); ok {
			fl.X2, fl.Y2 = nodes[ti].Position.X, nodes[ti].Position.Y
		}
		f.Links[i] = fl
	}
	return f
}

// Node returns the frame node with the given id
func (f *Frame) Node(id string) (FrameNode, bool) {
	for _, n := range f.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return FrameNode{}, false
}
