package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"topomap/internal/codec"
	"topomap/internal/domain"
	"topomap/internal/engine"
	"topomap/internal/errors"
	"topomap/internal/logger"
	"topomap/internal/service"
)

const (
	// requestTimeout bounds how long a request waits for the engine
	requestTimeout = 5 * time.Second

	// maxBodySize limits uploaded topology documents
	maxBodySize = 8 << 20
)

// TopologyHandler handles topology API requests
type TopologyHandler struct {
	svc *service.TopologyService
	log *zap.SugaredLogger
}

// NewTopologyHandler creates a new topology handler
func NewTopologyHandler(svc *service.TopologyService) *TopologyHandler {
	return &TopologyHandler{svc: svc, log: logger.Named("handler")}
}

// Register adds the API routes to mux
func (h *TopologyHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/frame", h.GetFrame)
	mux.HandleFunc("GET /api/legend", h.GetLegend)

	mux.HandleFunc("GET /api/topology", h.ExportTopology)
	mux.HandleFunc("POST /api/topology", h.ImportTopology)
	mux.HandleFunc("POST /api/reload", h.Reload)

	mux.HandleFunc("GET /api/nodes/{id}", h.GetNode)
	mux.HandleFunc("GET /api/links/{source}/{target}", h.GetLink)

	mux.HandleFunc("POST /api/status/node", h.UpdateNodeStatus)
	mux.HandleFunc("POST /api/status/link", h.UpdateLinkStatus)
	mux.HandleFunc("POST /api/highlight", h.HighlightPath)

	mux.HandleFunc("POST /api/drag", h.Drag)
	mux.HandleFunc("POST /api/viewport", h.Viewport)
}

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// GetFrame returns the latest rendered frame
func (h *TopologyHandler) GetFrame(w http.ResponseWriter, r *http.Request) {
	frame := h.svc.Frame()
	if frame == nil {
		h.writeError(w, "No frame yet", "", http.StatusServiceUnavailable)
		return
	}
	h.writeJSON(w, frame, http.StatusOK)
}

// GetLegend returns the node type and domain color legend
func (h *TopologyHandler) GetLegend(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, domain.NewLegend(), http.StatusOK)
}

// ExportTopology writes the current topology in the format named by the
// format query parameter (json by default)
func (h *TopologyHandler) ExportTopology(w http.ResponseWriter, r *http.Request) {
	c, err := codec.ForFormat(r.URL.Query().Get("format"))
	if err != nil {
		h.writeServiceError(w, "Unsupported format", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	topo, err := h.svc.Topology(ctx)
	if err != nil {
		h.writeServiceError(w, "Failed to export topology", err)
		return
	}

	w.Header().Set("Content-Type", codec.ContentType(c.Format()))
	if err := c.Export(topo, w); err != nil {
		// Headers are already sent
		h.log.Warnw("Failed to export topology", logger.FieldError, err)
	}
}

// ImportTopology replaces the topology with the request body. The format
// comes from the format query parameter, then the Content-Type.
func (h *TopologyHandler) ImportTopology(w http.ResponseWriter, r *http.Request) {
	c, err := requestCodec(r)
	if err != nil {
		h.writeServiceError(w, "Unsupported format", err)
		return
	}

	topo, err := c.Parse(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		h.writeError(w, "Invalid topology document", err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := h.svc.Load(ctx, topo); err != nil {
		h.writeServiceError(w, "Topology rejected", err)
		return
	}

	h.log.Infow("Topology imported",
		logger.FieldNodeCount, len(topo.Nodes),
		logger.FieldLinkCount, len(topo.Links))
	h.writeJSON(w, map[string]int{"nodes": len(topo.Nodes), "links": len(topo.Links)}, http.StatusOK)
}

// Reload fetches the topology again from the configured source
func (h *TopologyHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Reload(r.Context()); err != nil {
		h.writeServiceError(w, "Reload failed", err)
		return
	}
	h.writeJSON(w, map[string]string{"status": "reloaded"}, http.StatusOK)
}

// GetNode returns a single node
func (h *TopologyHandler) GetNode(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, "Invalid node ID", "Node ID is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	node, err := h.svc.GetNode(ctx, id)
	if err != nil {
		h.writeServiceError(w, "Failed to get node", err)
		return
	}
	h.writeJSON(w, node, http.StatusOK)
}

// GetLink returns the link joining two nodes in either orientation
func (h *TopologyHandler) GetLink(w http.ResponseWriter, r *http.Request) {
	source, target := r.PathValue("source"), r.PathValue("target")

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	link, err := h.svc.GetLink(ctx, source, target)
	if err != nil {
		h.writeServiceError(w, "Failed to get link", err)
		return
	}
	h.writeJSON(w, link, http.StatusOK)
}

// NodeStatusRequest is the body of POST /api/status/node
type NodeStatusRequest struct {
	NodeID string `json:"node_id"`
	Status string `json:"status"`
}

// UpdateNodeStatus queues a node status push. Unknown nodes are accepted
// and ignored.
func (h *TopologyHandler) UpdateNodeStatus(w http.ResponseWriter, r *http.Request) {
	var req NodeStatusRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.svc.UpdateNodeStatus(req.NodeID, req.Status); err != nil {
		h.writeServiceError(w, "Failed to update status", err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// LinkStatusRequest is the body of POST /api/status/link
type LinkStatusRequest struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Status string `json:"status"`
}

// UpdateLinkStatus queues a link status push
func (h *TopologyHandler) UpdateLinkStatus(w http.ResponseWriter, r *http.Request) {
	var req LinkStatusRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.svc.UpdateLinkStatus(req.Source, req.Target, req.Status); err != nil {
		h.writeServiceError(w, "Failed to update status", err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// HighlightRequest is the body of POST /api/highlight
type HighlightRequest struct {
	NodeIDs []string `json:"node_ids"`
}

// HighlightPath replaces the highlighted path. An empty list clears it.
func (h *TopologyHandler) HighlightPath(w http.ResponseWriter, r *http.Request) {
	var req HighlightRequest
	if !h.decode(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := h.svc.HighlightPath(ctx, req.NodeIDs); err != nil {
		h.writeServiceError(w, "Failed to highlight path", err)
		return
	}
	h.writeFrame(w)
}

// Drag applies a drag_start, drag_move or drag_end message
func (h *TopologyHandler) Drag(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, isDrag)
}

// Viewport applies a zoom, zoom_at, pan or reset_viewport message
func (h *TopologyHandler) Viewport(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, isViewport)
}

func (h *TopologyHandler) dispatch(w http.ResponseWriter, r *http.Request, allowed func(ev engine.Event) bool) {
	var msg Message
	if !h.decode(w, r, &msg) {
		return
	}
	ev, err := msg.Event()
	if err != nil {
		h.writeServiceError(w, "Invalid message", err)
		return
	}
	if !allowed(ev) {
		h.writeError(w, "Invalid message", "message type "+msg.Type+" not accepted here", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := h.svc.Dispatch(ctx, ev); err != nil {
		h.writeServiceError(w, "Failed to apply "+msg.Type, err)
		return
	}
	h.writeFrame(w)
}

// Helper methods

func requestCodec(r *http.Request) (codec.Codec, error) {
	if format := r.URL.Query().Get("format"); format != "" {
		return codec.ForFormat(format)
	}
	if c, ok := codec.ForMediaType(r.Header.Get("Content-Type")); ok {
		return c, nil
	}
	return codec.NewJSONCodec(), nil
}

func (h *TopologyHandler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(v); err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func (h *TopologyHandler) writeFrame(w http.ResponseWriter) {
	if frame := h.svc.Frame(); frame != nil {
		h.writeJSON(w, frame, http.StatusOK)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TopologyHandler) writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	writeJSON(w, data, statusCode, h.log)
}

func (h *TopologyHandler) writeError(w http.ResponseWriter, error, details string, statusCode int) {
	writeJSON(w, ErrorResponse{Error: error, Details: details}, statusCode, h.log)
}

func (h *TopologyHandler) writeServiceError(w http.ResponseWriter, msg string, err error) {
	code := statusCode(err)
	if code >= http.StatusInternalServerError {
		h.log.Errorw(msg, logger.FieldError, err)
	}
	h.writeError(w, msg, err.Error(), code)
}

func writeJSON(w http.ResponseWriter, data interface{}, statusCode int, log *zap.SugaredLogger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Warnw("Failed to encode JSON", logger.FieldError, err)
	}
}

// statusCode maps service errors to HTTP status codes
func statusCode(err error) int {
	switch {
	case errors.IsInvalidRequestError(err):
		return http.StatusBadRequest
	case errors.IsNotFoundError(err):
		return http.StatusNotFound
	case errors.IsValidationError(err):
		return http.StatusUnprocessableEntity
	case errors.IsAny(err, errors.ErrEngineBusy, errors.ErrEngineStopped):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}
