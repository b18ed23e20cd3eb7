package codec

import (
	"io"

	"gopkg.in/yaml.v3"

	"topomap/internal/domain"
	"topomap/internal/errors"
)

// YAMLCodec handles YAML import/export
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// Parse imports topology data from YAML
func (c *YAMLCodec) Parse(r io.Reader) (*domain.Topology, error) {
	var doc document
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&doc); err != nil {
		if err == io.EOF {
			return domain.NewTopology(), nil
		}
		return nil, errors.Wrap(err, "failed to parse YAML")
	}

	return doc.topology(), nil
}

// Export exports topology data to YAML
func (c *YAMLCodec) Export(topo *domain.Topology, w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(newDocument(topo)); err != nil {
		return errors.Wrap(err, "failed to encode YAML")
	}

	return nil
}
