package domain

// Topology is the loader wire format: node and link records without physics
// state. It is what external collaborators hand to the engine.
type Topology struct {
	Nodes []NodeRecord `json:"nodes" yaml:"nodes" toml:"nodes"`
	Links []LinkRecord `json:"links" yaml:"links" toml:"links"`
}

// NodeRecord describes one network element in a Topology
type NodeRecord struct {
	ID     string `json:"id" yaml:"id" toml:"id"`
	Name   string `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Type   string `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty"`
	Domain string `json:"domain,omitempty" yaml:"domain,omitempty" toml:"domain,omitempty"`
	Status string `json:"status,omitempty" yaml:"status,omitempty" toml:"status,omitempty"`
}

// LinkRecord describes one connection in a Topology
type LinkRecord struct {
	Source string `json:"source" yaml:"source" toml:"source"`
	Target string `json:"target" yaml:"target" toml:"target"`
	Status string `json:"status,omitempty" yaml:"status,omitempty" toml:"status,omitempty"`
}

// NewTopology creates an empty topology
func NewTopology() *Topology {
	return &Topology{
		Nodes: make([]NodeRecord, 0),
		Links: make([]LinkRecord, 0),
	}
}

// AddNode appends a node record
func (t *Topology) AddNode(node NodeRecord) {
	t.Nodes = append(t.Nodes, node)
}

// AddLink appends a link record
func (t *Topology) AddLink(link LinkRecord) {
	t.Links = append(t.Links, link)
}

// NodeIDs returns the node ids in record order
func (t *Topology) NodeIDs() []string {
	ids := make([]string, 0, len(t.Nodes))
	for _, n := range t.Nodes {
		ids = append(ids, n.ID)
	}
	return ids
}
