package domain

import "strings"

// NodeType represents the kind of network element
type NodeType string

const (
	NodeTypeCellTower NodeType = "cell_tower"
	NodeTypeRouter    NodeType = "router"
	NodeTypeSwitch    NodeType = "switch"
	NodeTypeServer    NodeType = "server"
	NodeTypeGateway   NodeType = "gateway"
)

// Valid reports whether t is one of the known node types
func (t NodeType) Valid() bool {
	switch t {
	case NodeTypeCellTower, NodeTypeRouter, NodeTypeSwitch, NodeTypeServer, NodeTypeGateway:
		return true
	}
	return false
}

// NetworkDomain is the network segment a node belongs to
type NetworkDomain string

const (
	DomainRAN       NetworkDomain = "ran"
	DomainTransport NetworkDomain = "transport"
	DomainCore      NetworkDomain = "core"
	DomainInternet  NetworkDomain = "internet"
)

// DomainOrder is the end-to-end order of network domains, radio side first
var DomainOrder = []NetworkDomain{DomainRAN, DomainTransport, DomainCore, DomainInternet}

// Rank returns the position of d in DomainOrder, or len(DomainOrder) for
// unknown domains so they sort last
func (d NetworkDomain) Rank() int {
	for i, known := range DomainOrder {
		if d == known {
			return i
		}
	}
	return len(DomainOrder)
}

// Status is the operational state shown on nodes and links
type Status string

const (
	StatusHealthy  Status = "healthy"
	StatusWarning  Status = "warning"
	StatusCritical Status = "critical"
)

// Valid reports whether s is one of the three display statuses
func (s Status) Valid() bool {
	return s == StatusHealthy || s == StatusWarning || s == StatusCritical
}

// ParseStatus maps a status string from a loader or event source onto a
// display status. Element states used by the inventory ("active", "down",
// "degraded") are accepted as aliases. An empty string means healthy.
func ParseStatus(s string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "healthy", "active", "ok", "up":
		return StatusHealthy, true
	case "warning", "degraded", "warn":
		return StatusWarning, true
	case "critical", "down", "failed", "error":
		return StatusCritical, true
	}
	return "", false
}

// Node is a network element on the diagram
type Node struct {
	ID     string        `json:"id"`
	Name   string        `json:"name"`
	Type   NodeType      `json:"type"`
	Domain NetworkDomain `json:"domain"`
	Status Status        `json:"status"`

	// Physics state, owned by the layout
	Position Vec  `json:"position"`
	Velocity Vec  `json:"velocity"`
	Pinned   *Vec `json:"pinned,omitempty"`

	// Placed is false until the layout assigns an initial position
	Placed bool `json:"-"`

	Highlighted bool `json:"highlighted"`
}

// NewNode creates a healthy, unplaced node
func NewNode(id, name string, nodeType NodeType, domain NetworkDomain) *Node {
	return &Node{
		ID:     id,
		Name:   name,
		Type:   nodeType,
		Domain: domain,
		Status: StatusHealthy,
	}
}

// IsPinned reports whether the node position is held externally
func (n *Node) IsPinned() bool {
	return n.Pinned != nil
}

// Pin fixes the node at p
func (n *Node) Pin(p Vec) {
	n.Pinned = &Vec{X: p.X, Y: p.Y}
}

// Unpin returns the node to free simulation
func (n *Node) Unpin() {
	n.Pinned = nil
}

// Label returns the display label, falling back to the id
func (n *Node) Label() string {
	if n.Name != "" {
		return n.Name
	}
	return n.ID
}
