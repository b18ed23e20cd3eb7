package graph

import (
	"topomap/internal/domain"
	"topomap/internal/errors"
)

// Model is the Graph Model for one loaded topology
type Model struct {
	nodes []domain.Node
	links []domain.Link
	index map[string]int
}

// New creates an empty model
func New() *Model {
	return &Model{
		nodes: make([]domain.Node, 0),
		links: make([]domain.Link, 0),
		index: make(map[string]int),
	}
}

// Load builds a model from a topology, or returns a *ValidationError
func Load(topo *domain.Topology) (*Model, error) {
	m := New()
	if err := m.Load(topo); err != nil {
		return nil, err
	}
	return m, nil
}

// Load validates topo and, on success, replaces the model contents. On
// failure the model is left untouched.
func (m *Model) Load(topo *domain.Topology) error {
	if topo == nil {
		topo = domain.NewTopology()
	}

	nodes := make([]domain.Node, 0, len(topo.Nodes))
	index := make(map[string]int, len(topo.Nodes))

	for i, rec := range topo.Nodes {
		if rec.ID == "" {
			return &ValidationError{Kind: KindEmptyID, Index: i}
		}
		if _, dup := index[rec.ID]; dup {
			return &ValidationError{Kind: KindDuplicateID, NodeID: rec.ID, Index: i}
		}
		status, ok := domain.ParseStatus(rec.Status)
		if !ok {
			return &ValidationError{Kind: KindInvalidStatus, NodeID: rec.ID, Index: i, Value: rec.Status}
		}

		node := domain.NewNode(rec.ID, rec.Name, domain.NodeType(rec.Type), domain.NetworkDomain(rec.Domain))
		node.Status = status
		index[rec.ID] = len(nodes)
		nodes = append(nodes, *node)
	}

	links := make([]domain.Link, 0, len(topo.Links))
	for i, rec := range topo.Links {
		ref := &LinkRef{Source: rec.Source, Target: rec.Target}
		if _, ok := index[rec.Source]; !ok {
			return &ValidationError{Kind: KindDanglingLink, NodeID: rec.Source, Link: ref, Index: i}
		}
		if _, ok := index[rec.Target]; !ok {
			return &ValidationError{Kind: KindDanglingLink, NodeID: rec.Target, Link: ref, Index: i}
		}
		status, ok := domain.ParseStatus(rec.Status)
		if !ok {
			return &ValidationError{Kind: KindInvalidStatus, Link: ref, Index: i, Value: rec.Status}
		}

		link := domain.NewLink(rec.Source, rec.Target)
		link.Status = status
		links = append(links, *link)
	}

	m.nodes = nodes
	m.links = links
	m.index = index
	return nil
}

// Len returns the number of nodes
func (m *Model) Len() int {
	return len(m.nodes)
}

// Nodes returns the node arena. Callers may mutate elements in place but
// must not append or reorder.
func (m *Model) Nodes() []domain.Node {
	return m.nodes
}

// Links returns the link list. Same mutation rules as Nodes.
func (m *Model) Links() []domain.Link {
	return m.links
}

// IndexOf returns the arena index of a node id
func (m *Model) IndexOf(id string) (int, bool) {
	i, ok := m.index[id]
	return i, ok
}

// FindNode returns the node with the given id
func (m *Model) FindNode(id string) (*domain.Node, error) {
	i, ok := m.index[id]
	if !ok {
		return nil, errors.NewNotFoundError("node %q", id)
	}
	return &m.nodes[i], nil
}

// FindLink returns the first link joining a and b, in either orientation
func (m *Model) FindLink(a, b string) (*domain.Link, error) {
	for i := range m.links {
		if m.links[i].Connects(a, b) {
			return &m.links[i], nil
		}
	}
	return nil, errors.NewNotFoundError("link %q <-> %q", a, b)
}

// Degree returns the number of links touching each node, by arena index
func (m *Model) Degree() []int {
	degree := make([]int, len(m.nodes))
	for _, l := range m.links {
		degree[m.index[l.Source]]++
		degree[m.index[l.Target]]++
	}
	return degree
}

// Neighbors returns the ids adjacent to id, in link order
func (m *Model) Neighbors(id string) []string {
	var out []string
	for _, l := range m.links {
		switch id {
		case l.Source:
			out = append(out, l.Target)
		case l.Target:
			out = append(out, l.Source)
		}
	}
	return out
}

// Topology exports the model as loader records
func (m *Model) Topology() *domain.Topology {
	topo := domain.NewTopology()
	for _, n := range m.nodes {
		topo.AddNode(domain.NodeRecord{
			ID:     n.ID,
			Name:   n.Name,
			Type:   string(n.Type),
			Domain: string(n.Domain),
			Status: string(n.Status),
		})
	}
	for _, l := range m.links {
		topo.AddLink(domain.LinkRecord{
			Source: l.Source,
			Target: l.Target,
			Status: string(l.Status),
		})
	}
	return topo
}

// Clone returns a deep copy. The index map is shared: it is never mutated
// after Load, and Load on a clone installs a fresh map.
func (m *Model) Clone() *Model {
	nodes := make([]domain.Node, len(m.nodes))
	copy(nodes, m.nodes)
	for i := range nodes {
		if p := nodes[i].Pinned; p != nil {
			pinned := *p
			nodes[i].Pinned = &pinned
		}
	}

	links := make([]domain.Link, len(m.links))
	copy(links, m.links)

	return &Model{nodes: nodes, links: links, index: m.index}
}
