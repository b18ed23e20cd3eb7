package hub

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runHub(t *testing.T, fps float64) (*Hub, context.CancelFunc) {
	t.Helper()
	h := New(fps)
	ctx, cancel := context.WithCancel(context.Background())
	go h.Run(ctx)
	t.Cleanup(cancel)
	return h, cancel
}

func receive(t *testing.T, c *Client) string {
	t.Helper()
	select {
	case msg, ok := <-c.Events():
		require.True(t, ok, "client channel closed")
		return string(msg)
	case <-time.After(2 * time.Second):
		t.Fatal("no message received")
		return ""
	}
}

func TestBroadcast(t *testing.T) {
	h, _ := runHub(t, 30)
	a, b := h.Attach(), h.Attach()
	require.NotNil(t, a)
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, 2, h.ClientCount())

	h.Broadcast(map[string]string{"type": "topology_loaded"})
	assert.JSONEq(t, `{"type":"topology_loaded"}`, receive(t, a))
	assert.JSONEq(t, `{"type":"topology_loaded"}`, receive(t, b))

	h.Detach(a)
	_, ok := <-a.Events()
	assert.False(t, ok)
	assert.Equal(t, 1, h.ClientCount())
}

func TestFramesAreRateLimited(t *testing.T) {
	h, _ := runHub(t, 5)
	c := h.Attach()

	for i := 0; i < 50; i++ {
		h.BroadcastFrame(map[string]int{"tick": i})
	}

	// intermediate frames are skipped; the newest one is eventually flushed
	received := 0
	assert.Eventually(t, func() bool {
		for {
			select {
			case msg := <-c.Events():
				received++
				if strings.Contains(string(msg), `"tick":49`) {
					return true
				}
			default:
				return false
			}
		}
	}, 3*time.Second, 20*time.Millisecond)
	assert.Less(t, received, 50)
}

func TestStopClosesClients(t *testing.T) {
	h, cancel := runHub(t, 30)
	c := h.Attach()
	cancel()

	select {
	case _, ok := <-c.Events():
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("client not closed")
	}
	<-h.done
	assert.Nil(t, h.Attach())
}

func TestServeSSE(t *testing.T) {
	h, _ := runHub(t, 30)
	srv := httptest.NewServer(h)
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(line, ": connected"))

	require.Eventually(t, func() bool { return h.ClientCount() == 1 }, time.Second, 10*time.Millisecond)
	h.Broadcast(map[string]string{"type": "layout_settled"})

	for {
		line, err = reader.ReadString('\n')
		require.NoError(t, err)
		if strings.HasPrefix(line, "data: ") {
			break
		}
	}
	assert.JSONEq(t, `{"type":"layout_settled"}`, strings.TrimPrefix(strings.TrimSpace(line), "data: "))
}
