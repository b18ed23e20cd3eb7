package codec

import (
	"encoding/json"
	"io"

	"topomap/internal/domain"
	"topomap/internal/errors"
)

// JSONCodec handles JSON import/export
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// Parse imports topology data from JSON
func (c *JSONCodec) Parse(r io.Reader) (*domain.Topology, error) {
	var doc document
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "failed to parse JSON")
	}

	return doc.topology(), nil
}

// Export exports topology data to JSON
func (c *JSONCodec) Export(topo *domain.Topology, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(newDocument(topo)); err != nil {
		return errors.Wrap(err, "failed to encode JSON")
	}

	return nil
}
