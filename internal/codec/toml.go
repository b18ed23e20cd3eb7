package codec

import (
	"io"

	"github.com/BurntSushi/toml"

	"topomap/internal/domain"
	"topomap/internal/errors"
)

// TOMLCodec handles TOML import/export. Nodes and links are arrays of
// tables:
//
//	[[nodes]]
//	id = "r1"
//	type = "router"
//
//	[[links]]
//	source = "ct1"
//	target = "r1"
type TOMLCodec struct{}

// NewTOMLCodec creates a new TOML codec
func NewTOMLCodec() *TOMLCodec {
	return &TOMLCodec{}
}

// Format returns the codec format identifier
func (c *TOMLCodec) Format() string {
	return "toml"
}

// Parse imports topology data from TOML
func (c *TOMLCodec) Parse(r io.Reader) (*domain.Topology, error) {
	var doc document
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "failed to parse TOML")
	}

	return doc.topology(), nil
}

// Export exports topology data to TOML
func (c *TOMLCodec) Export(topo *domain.Topology, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(newDocument(topo)); err != nil {
		return errors.Wrap(err, "failed to encode TOML")
	}

	return nil
}
