package codec

import (
	"io"
	"mime"
	"path/filepath"
	"strings"

	"topomap/internal/domain"
	"topomap/internal/errors"
)

// Importer interface for importing topology data from various formats
type Importer interface {
	Parse(r io.Reader) (*domain.Topology, error)
	Format() string
}

// Exporter interface for exporting topology data to various formats
type Exporter interface {
	Export(topo *domain.Topology, w io.Writer) error
	Format() string
}

// Codec both imports and exports
type Codec interface {
	Importer
	Exporter
}

// document is the on-disk shape shared by every format. Inventories that
// list elements without links are chained by domain.
type document struct {
	Nodes    []domain.NodeRecord `json:"nodes" yaml:"nodes" toml:"nodes"`
	Links    []domain.LinkRecord `json:"links" yaml:"links" toml:"links"`
	Elements []domain.NodeRecord `json:"elements,omitempty" yaml:"elements,omitempty" toml:"elements,omitempty"`
}

func (d *document) topology() *domain.Topology {
	if len(d.Nodes) == 0 && len(d.Elements) > 0 {
		return domain.ChainTopology(d.Elements)
	}
	topo := domain.NewTopology()
	topo.Nodes = append(topo.Nodes, d.Nodes...)
	topo.Links = append(topo.Links, d.Links...)
	return topo
}

func newDocument(topo *domain.Topology) *document {
	d := &document{
		Nodes: make([]domain.NodeRecord, 0),
		Links: make([]domain.LinkRecord, 0),
	}
	if topo != nil {
		d.Nodes = append(d.Nodes, topo.Nodes...)
		d.Links = append(d.Links, topo.Links...)
	}
	return d
}

// ForFormat returns the codec for a format name: json, yaml/yml or toml
func ForFormat(format string) (Codec, error) {
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "", "json":
		return NewJSONCodec(), nil
	case "yaml", "yml":
		return NewYAMLCodec(), nil
	case "toml":
		return NewTOMLCodec(), nil
	}
	return nil, errors.NewInvalidRequestError("unsupported format %q", format)
}

// ForPath picks a codec from a file extension
func ForPath(path string) (Codec, error) {
	return ForFormat(filepath.Ext(path))
}

// ContentType returns the MIME type for a codec format
func ContentType(format string) string {
	switch format {
	case "yaml":
		return "application/yaml"
	case "toml":
		return "application/toml"
	default:
		return "application/json"
	}
}

// ForMediaType picks a codec from a Content-Type header value. It returns
// false for media types it does not recognize.
func ForMediaType(contentType string) (Codec, bool) {
	mediaType, _, _ := mime.ParseMediaType(contentType)
	switch mediaType {
	case "application/yaml", "application/x-yaml", "text/yaml":
		return NewYAMLCodec(), true
	case "application/toml":
		return NewTOMLCodec(), true
	case "application/json":
		return NewJSONCodec(), true
	}
	return nil, false
}
