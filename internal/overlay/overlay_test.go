package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"topomap/internal/domain"
	"topomap/internal/graph"
)

func load(t *testing.T, topo *domain.Topology) *graph.Model {
	t.Helper()
	m, err := graph.Load(topo)
	require.NoError(t, err)
	return m
}

func TestSetNodeStatus(t *testing.T) {
	m := load(t, domain.FallbackTopology())

	assert.True(t, SetNodeStatus(m, "s1", "critical"))
	n, _ := m.FindNode("s1")
	assert.Equal(t, domain.StatusCritical, n.Status)

	// aliases are accepted
	assert.True(t, SetNodeStatus(m, "s1", "degraded"))
	assert.Equal(t, domain.StatusWarning, n.Status)

	// idempotent
	assert.True(t, SetNodeStatus(m, "s1", "degraded"))
	assert.Equal(t, domain.StatusWarning, n.Status)
}

func TestSetNodeStatusIgnored(t *testing.T) {
	m := load(t, domain.FallbackTopology())
	before := m.Clone()

	assert.False(t, SetNodeStatus(m, "nonexistent", "critical"))
	assert.False(t, SetNodeStatus(m, "s1", "purple"))
	assert.False(t, SetNodeStatus(m, "s1", ""))
	assert.Equal(t, before.Nodes(), m.Nodes())
}

func TestSetLinkStatusEitherOrientation(t *testing.T) {
	m := load(t, domain.FallbackTopology())

	assert.True(t, SetLinkStatus(m, "s1", "r2", "critical"))
	link, err := m.FindLink("r2", "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCritical, link.Status)

	assert.False(t, SetLinkStatus(m, "s1", "gw1", "critical"))
	assert.False(t, SetLinkStatus(m, "r2", "s1", "bogus"))
	assert.Equal(t, domain.StatusCritical, link.Status)
}

func TestHighlightPath(t *testing.T) {
	m := load(t, domain.FallbackTopology())

	nodes, links := HighlightPath(m, []string{"ct1", "r1", "sw1", "r2", "s1"})
	assert.Equal(t, 5, nodes)
	assert.Equal(t, 4, links)

	nodeIDs, linkIDs := Highlighted(m)
	assert.ElementsMatch(t, []string{"ct1", "r1", "sw1", "r2", "s1"}, nodeIDs)
	assert.Len(t, linkIDs, 4)

	// a new query replaces the previous one
	nodes, links = HighlightPath(m, []string{"gw1"})
	assert.Equal(t, 1, nodes)
	assert.Zero(t, links)
	nodeIDs, linkIDs = Highlighted(m)
	assert.Equal(t, []string{"gw1"}, nodeIDs)
	assert.Empty(t, linkIDs)
}

func TestHighlightSymmetry(t *testing.T) {
	forward := &domain.Topology{
		Nodes: []domain.NodeRecord{{ID: "a"}, {ID: "b"}},
		Links: []domain.LinkRecord{{Source: "a", Target: "b"}},
	}
	backward := &domain.Topology{
		Nodes: []domain.NodeRecord{{ID: "a"}, {ID: "b"}},
		Links: []domain.LinkRecord{{Source: "b", Target: "a"}},
	}

	for _, topo := range []*domain.Topology{forward, backward} {
		m := load(t, topo)
		_, links := HighlightPath(m, []string{"a", "b"})
		assert.Equal(t, 1, links)
		assert.True(t, m.Links()[0].Highlighted)
	}
}

func TestHighlightUnknownIDs(t *testing.T) {
	m := load(t, domain.FallbackTopology())

	nodes, links := HighlightPath(m, []string{"nonexistent"})
	assert.Zero(t, nodes)
	assert.Zero(t, links)

	// unknown ids in the middle are skipped; the pair around them is not
	// treated as adjacent
	nodes, links = HighlightPath(m, []string{"r2", "ghost", "s1", "r2"})
	assert.Equal(t, 2, nodes)
	assert.Equal(t, 1, links)
}

func TestHighlightEmptyClears(t *testing.T) {
	m := load(t, domain.FallbackTopology())
	HighlightPath(m, []string{"ct1", "r1"})

	nodes, links := HighlightPath(m, nil)
	assert.Zero(t, nodes)
	assert.Zero(t, links)
	nodeIDs, linkIDs := Highlighted(m)
	assert.Empty(t, nodeIDs)
	assert.Empty(t, linkIDs)
}
