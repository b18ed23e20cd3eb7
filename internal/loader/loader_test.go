package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"topomap/internal/domain"
)

const sampleYAML = `nodes:
  - id: a
    type: router
  - id: b
    type: switch
links:
  - source: a
    target: b
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFileSource(t *testing.T) {
	path := writeFile(t, "net.yaml", sampleYAML)

	topo, err := NewFileSource(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, topo.NodeIDs())
	assert.Len(t, topo.Links, 1)
}

func TestFileSourceErrors(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "missing.json")).Load(context.Background())
	assert.Error(t, err)

	bad := writeFile(t, "bad.json", "{not json")
	_, err = NewFileSource(bad).Load(context.Background())
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewFileSource(writeFile(t, "ok.yaml", sampleYAML)).Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/topology":
			w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
			_, _ = w.Write([]byte(sampleYAML))
		case "/net.toml":
			_, _ = w.Write([]byte("[[nodes]]\nid = \"x\"\n"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	topo, err := NewHTTPSource(srv.URL+"/topology", time.Second).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, topo.Nodes, 2)

	topo, err = NewHTTPSource(srv.URL+"/net.toml?v=1", time.Second).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, topo.NodeIDs())

	_, err = NewHTTPSource(srv.URL+"/missing", time.Second).Load(context.Background())
	assert.Error(t, err)
}

func TestNewPicksSource(t *testing.T) {
	assert.IsType(t, &HTTPSource{}, New("https://example.com/topology", 0))
	assert.IsType(t, &FileSource{}, New("/tmp/topology.json", 0))

	h := NewHTTPSource("http://x", 0)
	assert.Equal(t, DefaultTimeout, h.Client.Timeout)
}

func TestFallback(t *testing.T) {
	src := WithFallback(NewFileSource(filepath.Join(t.TempDir(), "missing.json")))
	topo, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.FallbackTopology(), topo)

	ok := WithFallback(NewFileSource(writeFile(t, "net.yaml", sampleYAML)))
	topo, err = ok.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, topo.Nodes, 2)
}
