package codec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"topomap/internal/domain"
	"topomap/internal/errors"
)

func TestRoundTripAllFormats(t *testing.T) {
	for _, format := range []string{"json", "yaml", "toml"} {
		t.Run(format, func(t *testing.T) {
			c, err := ForFormat(format)
			require.NoError(t, err)
			assert.Equal(t, format, c.Format())

			var buf bytes.Buffer
			require.NoError(t, c.Export(domain.FallbackTopology(), &buf))

			got, err := c.Parse(&buf)
			require.NoError(t, err)
			assert.Equal(t, domain.FallbackTopology(), got)
		})
	}
}

func TestParseJSON(t *testing.T) {
	input := `{"nodes":[{"id":"a","type":"router"},{"id":"b"}],"links":[{"source":"a","target":"b","status":"warning"}]}`
	topo, err := NewJSONCodec().Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, topo.NodeIDs())
	require.Len(t, topo.Links, 1)
	assert.Equal(t, "warning", topo.Links[0].Status)
}

func TestParseYAML(t *testing.T) {
	input := `
nodes:
  - id: ct1
    name: Cell Tower A1
    type: cell_tower
    domain: ran
  - id: r1
    type: router
links:
  - source: ct1
    target: r1
`
	topo, err := NewYAMLCodec().Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, "Cell Tower A1", topo.Nodes[0].Name)
	assert.Len(t, topo.Links, 1)

	empty, err := NewYAMLCodec().Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, empty.Nodes)
}

func TestParseTOML(t *testing.T) {
	input := `
[[nodes]]
id = "r1"
type = "router"

[[nodes]]
id = "sw1"
type = "switch"
status = "warning"

[[links]]
source = "r1"
target = "sw1"
`
	topo, err := NewTOMLCodec().Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"r1", "sw1"}, topo.NodeIDs())
	assert.Equal(t, "warning", topo.Nodes[1].Status)
	assert.Len(t, topo.Links, 1)
}

func TestParseElementsChains(t *testing.T) {
	input := `{"elements":[
		{"id":"ct1","domain":"ran"},
		{"id":"ct2","domain":"ran"},
		{"id":"r1","domain":"transport"}
	]}`
	topo, err := NewJSONCodec().Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, topo.Nodes, 3)
	assert.Len(t, topo.Links, 2)
}

func TestParseErrors(t *testing.T) {
	_, err := NewJSONCodec().Parse(strings.NewReader("{"))
	assert.Error(t, err)
	_, err = NewYAMLCodec().Parse(strings.NewReader("nodes: [unclosed"))
	assert.Error(t, err)
	_, err = NewTOMLCodec().Parse(strings.NewReader("[[nodes]\n"))
	assert.Error(t, err)
}

func TestForPath(t *testing.T) {
	tests := []struct {
		path   string
		format string
	}{
		{"topology.json", "json"},
		{"topology.yaml", "yaml"},
		{"/etc/topomap/net.yml", "yaml"},
		{"net.TOML", "toml"},
		{"noext", "json"},
	}
	for _, tt := range tests {
		c, err := ForPath(tt.path)
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.format, c.Format(), tt.path)
	}

	_, err := ForPath("topology.xml")
	assert.True(t, errors.IsInvalidRequestError(err))
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/json", ContentType("json"))
	assert.Equal(t, "application/yaml", ContentType("yaml"))
	assert.Equal(t, "application/toml", ContentType("toml"))
}

func TestForMediaType(t *testing.T) {
	c, ok := ForMediaType("application/x-yaml; charset=utf-8")
	require.True(t, ok)
	assert.Equal(t, "yaml", c.Format())

	c, ok = ForMediaType("application/toml")
	require.True(t, ok)
	assert.Equal(t, "toml", c.Format())

	_, ok = ForMediaType("text/plain")
	assert.False(t, ok)
}
