// Package hub fans engine frames and notices out to connected SSE and
// WebSocket clients.
package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"topomap/internal/logger"
)

const (
	// DefaultMaxFPS caps the frame stream sent to clients
	DefaultMaxFPS = 30

	clientBuffer      = 64
	keepAliveInterval = 30 * time.Second
)

// Client is one connected stream consumer. Messages are JSON documents;
// the transport decides the framing.
type Client struct {
	id     string
	events chan []byte
}

// ID returns the client id
func (c *Client) ID() string { return c.id }

// Events returns the message channel. It is closed when the client is
// removed or the hub stops.
func (c *Client) Events() <-chan []byte { return c.events }

// Hub manages client connections
type Hub struct {
	mu         sync.RWMutex
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan interface{}
	frames     chan interface{}
	done       chan struct{}

	limiter *rate.Limiter
	flush   time.Duration
	log     *zap.SugaredLogger
}

// New creates a new Hub that sends at most maxFPS frames per second. Other
// messages are never rate limited.
func New(maxFPS float64) *Hub {
	if maxFPS <= 0 {
		maxFPS = DefaultMaxFPS
	}
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan interface{}, 256),
		frames:     make(chan interface{}, 1),
		done:       make(chan struct{}),
		limiter:    rate.NewLimiter(rate.Limit(maxFPS), 1),
		flush:      time.Duration(float64(time.Second) / maxFPS),
		log:        logger.Named("hub"),
	}
}

// Run starts the hub's event loop. It returns when ctx is done, closing
// every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	flush := time.NewTicker(h.flush)
	defer flush.Stop()

	var pending interface{}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = struct{}{}
			count := len(h.clients)
			h.mu.Unlock()
			h.log.Infow("Client connected", logger.FieldClientID, client.id, logger.FieldCount, count)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.events)
			}
			count := len(h.clients)
			h.mu.Unlock()
			h.log.Infow("Client disconnected", logger.FieldClientID, client.id, logger.FieldCount, count)

		case event := <-h.broadcast:
			h.send(event)

		case frame := <-h.frames:
			if h.limiter.Allow() {
				h.send(frame)
				pending = nil
			} else {
				pending = frame
			}

		case <-flush.C:
			if pending != nil && h.limiter.Allow() {
				h.send(pending)
				pending = nil
			}

		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.events)
			}
			h.mu.Unlock()
			return
		}
	}
}

func (h *Hub) send(event interface{}) {
	data, err := json.Marshal(event)
	if err != nil {
		h.log.Errorw("Failed to marshal event", logger.FieldError, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client.events <- data:
		default:
			// Client is slow, skip this message
			h.log.Debugw("Client is slow, skipping message", logger.FieldClientID, client.id)
		}
	}
}

// Broadcast sends an event to all connected clients
func (h *Hub) Broadcast(event interface{}) {
	select {
	case h.broadcast <- event:
	default:
		h.log.Warn("Broadcast channel full, dropping event")
	}
}

// BroadcastFrame queues a frame. Only the newest queued frame is kept, so a
// slow hub skips intermediate frames rather than falling behind.
func (h *Hub) BroadcastFrame(frame interface{}) {
	for {
		select {
		case h.frames <- frame:
			return
		default:
		}
		select {
		case <-h.frames:
		default:
		}
	}
}

// Attach registers a new client. It returns nil once the hub has stopped.
func (h *Hub) Attach() *Client {
	client := &Client{
		id:     uuid.NewString(),
		events: make(chan []byte, clientBuffer),
	}
	select {
	case h.register <- client:
		return client
	case <-h.done:
		return nil
	}
}

// Detach removes a client
func (h *Hub) Detach(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeHTTP handles SSE connections
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	client := h.Attach()
	if client == nil {
		http.Error(w, "server shutting down", http.StatusServiceUnavailable)
		return
	}
	defer h.Detach(client)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	fmt.Fprintf(w, ": connected %s\n\n", client.id)
	flusher.Flush()

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-client.events:
			if !ok {
				return
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", msg); err != nil {
				return
			}
			flusher.Flush()

		case <-ticker.C:
			if _, err := fmt.Fprintf(w, ": keepalive\n\n"); err != nil {
				return
			}
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
