package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"topomap/internal/engine"
	"topomap/internal/hub"
	"topomap/internal/logger"
	"topomap/internal/service"
)

// WebSocket timeouts, following the gorilla chat example
const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 64 * 1024

	// Queued replies per connection before they are dropped
	replyBuffer = 16
)

// Reply is sent back on the socket when a message fails or is accepted
type Reply struct {
	Type  string `json:"type"`
	Ref   string `json:"ref,omitempty"`
	Error string `json:"error,omitempty"`
}

// WSHandler serves the interaction WebSocket. Clients send Message values
// and receive the same event stream as SSE clients.
type WSHandler struct {
	svc      *service.TopologyService
	hub      *hub.Hub
	upgrader websocket.Upgrader
	log      *zap.SugaredLogger
}

// NewWSHandler creates a WebSocket handler. allowedOrigins are origin
// prefixes; an empty list allows localhost only. Requests without an Origin
// header are always accepted.
func NewWSHandler(svc *service.TopologyService, h *hub.Hub, allowedOrigins ...string) *WSHandler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost", "https://localhost", "http://127.0.0.1"}
	}
	return &WSHandler{
		svc: svc,
		hub: h,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  2048,
			WriteBufferSize: 2048,
			CheckOrigin:     checkOrigin(allowedOrigins),
		},
		log: logger.Named("ws"),
	}
}

func checkOrigin(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, prefix := range allowed {
			if prefix == "*" || strings.HasPrefix(origin, prefix) {
				return true
			}
		}
		return false
	}
}

// wsConn is one WebSocket client
type wsConn struct {
	handler   *WSHandler
	conn      *websocket.Conn
	client    *hub.Client
	replies   chan []byte
	closeOnce sync.Once
}

// ServeHTTP upgrades the connection and runs its pumps
func (h *WSHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied
		h.log.Debugw("WebSocket upgrade failed", logger.FieldError, err)
		return
	}

	client := h.hub.Attach()
	if client == nil {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		conn.Close()
		return
	}

	c := &wsConn{
		handler: h,
		conn:    conn,
		client:  client,
		replies: make(chan []byte, replyBuffer),
	}
	h.log.Debugw("WebSocket connected", logger.FieldClientID, client.ID())

	if frame := h.svc.Frame(); frame != nil {
		c.queue(service.Event{Type: service.EventFrame, Payload: frame})
	}

	go c.writePump()
	c.readPump()
}

func (c *wsConn) close() {
	c.closeOnce.Do(func() {
		c.handler.hub.Detach(c.client)
		c.conn.Close()
	})
}

// readPump reads messages until the peer goes away
func (c *wsConn) readPump() {
	defer c.close()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNoStatusReceived,
			) {
				c.handler.log.Warnw("WebSocket read error",
					logger.FieldClientID, c.client.ID(),
					logger.FieldError, err)
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.queue(Reply{Type: "error", Error: "invalid message: " + err.Error()})
			continue
		}
		c.route(msg)
	}
}

// route applies one message. Status pushes are fire-and-forget; other
// messages wait for the engine so failures can be reported.
func (c *wsConn) route(msg Message) {
	ev, err := msg.Event()
	if err != nil {
		c.queue(Reply{Type: "error", Ref: msg.Type, Error: err.Error()})
		return
	}

	switch e := ev.(type) {
	case engine.SetNodeStatus:
		err = c.handler.svc.UpdateNodeStatus(e.NodeID, e.Status)
	case engine.SetLinkStatus:
		err = c.handler.svc.UpdateLinkStatus(e.Source, e.Target, e.Status)
	default:
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		err = c.handler.svc.Dispatch(ctx, ev)
		cancel()
	}

	if err != nil {
		c.handler.log.Debugw("Message rejected",
			logger.FieldClientID, c.client.ID(),
			logger.FieldEventType, msg.Type,
			logger.FieldError, err)
		c.queue(Reply{Type: "error", Ref: msg.Type, Error: err.Error()})
	}
}

func (c *wsConn) queue(v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		c.handler.log.Warnw("Failed to marshal reply", logger.FieldError, err)
		return
	}
	select {
	case c.replies <- data:
	default:
		c.handler.log.Debugw("Reply queue full, dropping reply", logger.FieldClientID, c.client.ID())
	}
}

// writePump is the only writer on the connection
func (c *wsConn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	events := c.client.Events()
	for {
		select {
		case msg, ok := <-events:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.handler.log.Debugw("WebSocket write error",
					logger.FieldClientID, c.client.ID(),
					logger.FieldError, err)
				return
			}

		case reply := <-c.replies:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, reply); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
