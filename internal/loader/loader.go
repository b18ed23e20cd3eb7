// Package loader obtains topology documents for the engine from a file or
// an HTTP endpoint and substitutes the fallback dataset when the initial
// load fails.
package loader

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"topomap/internal/codec"
	"topomap/internal/domain"
	"topomap/internal/errors"
	"topomap/internal/logger"
)

// DefaultTimeout bounds an HTTP fetch
const DefaultTimeout = 10 * time.Second

// Source produces a topology
type Source interface {
	Load(ctx context.Context) (*domain.Topology, error)
	String() string
}

// New returns an HTTP source for http(s) URLs and a file source otherwise
func New(location string, timeout time.Duration) Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return NewHTTPSource(location, timeout)
	}
	return NewFileSource(location)
}

// FileSource reads a topology document from disk. The codec is chosen by
// file extension.
type FileSource struct {
	Path string
}

// NewFileSource creates a file source
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) String() string { return s.Path }

// Load reads and parses the file
func (s *FileSource) Load(ctx context.Context) (*domain.Topology, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c, err := codec.ForPath(s.Path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "open topology %s", s.Path)
	}
	defer f.Close()

	topo, err := c.Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "parse topology %s", s.Path)
	}
	return topo, nil
}

// HTTPSource fetches a topology document from a URL. The codec is chosen by
// response Content-Type, falling back to the URL extension.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

// NewHTTPSource creates an HTTP source with a request timeout
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPSource{URL: url, Client: &http.Client{Timeout: timeout}}
}

func (s *HTTPSource) String() string { return s.URL }

// Load fetches and parses the document
func (s *HTTPSource) Load(ctx context.Context) (*domain.Topology, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build topology request")
	}
	req.Header.Set("Accept", "application/json, application/yaml, application/toml")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch topology %s", s.URL)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf("fetch topology %s: unexpected status %d", s.URL, resp.StatusCode)
	}

	c, err := codecFor(resp.Header.Get("Content-Type"), s.URL)
	if err != nil {
		return nil, err
	}
	topo, err := c.Parse(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "parse topology %s", s.URL)
	}
	return topo, nil
}

func codecFor(contentType, url string) (codec.Codec, error) {
	if c, ok := codec.ForMediaType(contentType); ok {
		return c, nil
	}
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		url = url[:i]
	}
	return codec.ForPath(url)
}

// Fallback wraps a source and returns the built-in fallback topology when
// the source fails. The source error is logged, not returned.
type Fallback struct {
	Source Source
	log    *zap.SugaredLogger
}

// WithFallback wraps src
func WithFallback(src Source) *Fallback {
	return &Fallback{Source: src, log: logger.Named("loader")}
}

func (f *Fallback) String() string { return f.Source.String() }

// Load never fails
func (f *Fallback) Load(ctx context.Context) (*domain.Topology, error) {
	topo, err := f.Source.Load(ctx)
	if err != nil {
		f.log.Warnw("Topology load failed, using fallback dataset",
			logger.FieldSource, f.Source.String(),
			logger.FieldError, err)
		return domain.FallbackTopology(), nil
	}
	f.log.Infow("Topology loaded",
		logger.FieldSource, f.Source.String(),
		logger.FieldNodeCount, len(topo.Nodes),
		logger.FieldLinkCount, len(topo.Links))
	return topo, nil
}
