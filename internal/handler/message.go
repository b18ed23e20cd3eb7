package handler

import (
	"topomap/internal/domain"
	"topomap/internal/engine"
	"topomap/internal/errors"
)

// Message types. They match engine.Event.Kind for the event they carry.
const (
	MsgDragStart     = "drag_start"
	MsgDragMove      = "drag_move"
	MsgDragEnd       = "drag_end"
	MsgZoom          = "zoom"
	MsgZoomAt        = "zoom_at"
	MsgPan           = "pan"
	MsgResetViewport = "reset_viewport"
	MsgNodeStatus    = "node_status"
	MsgLinkStatus    = "link_status"
	MsgHighlight     = "highlight"
	MsgReheat        = "reheat"
)

// Message is an interaction or status message from a client
type Message struct {
	Type string `json:"type"`

	NodeID  string   `json:"node_id,omitempty"`
	NodeIDs []string `json:"node_ids,omitempty"`
	Source  string   `json:"source,omitempty"`
	Target  string   `json:"target,omitempty"`
	Status  string   `json:"status,omitempty"`

	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	K      float64 `json:"k,omitempty"`
	Factor float64 `json:"factor,omitempty"`
	DX     float64 `json:"dx,omitempty"`
	DY     float64 `json:"dy,omitempty"`
	// Screen marks drag coordinates as screen space
	Screen bool `json:"screen,omitempty"`
}

// Event converts the message to the engine event it describes
func (m Message) Event() (engine.Event, error) {
	pos := domain.Vec{X: m.X, Y: m.Y}
	switch m.Type {
	case MsgDragStart, MsgDragMove, MsgDragEnd:
		if m.NodeID == "" {
			return nil, errors.NewInvalidRequestError("%s requires node_id", m.Type)
		}
		switch m.Type {
		case MsgDragStart:
			return engine.DragStart{NodeID: m.NodeID, Pos: pos, Screen: m.Screen}, nil
		case MsgDragMove:
			return engine.DragMove{NodeID: m.NodeID, Pos: pos, Screen: m.Screen}, nil
		}
		return engine.DragEnd{NodeID: m.NodeID}, nil
	case MsgZoom:
		if m.K <= 0 {
			return nil, errors.NewInvalidRequestError("zoom requires k > 0")
		}
		return engine.Zoom{Scale: m.K, X: m.X, Y: m.Y}, nil
	case MsgZoomAt:
		if m.Factor <= 0 {
			return nil, errors.NewInvalidRequestError("zoom_at requires factor > 0")
		}
		return engine.ZoomAt{Factor: m.Factor, X: m.X, Y: m.Y}, nil
	case MsgPan:
		return engine.Pan{DX: m.DX, DY: m.DY}, nil
	case MsgResetViewport:
		return engine.ResetViewport{}, nil
	case MsgNodeStatus:
		return engine.SetNodeStatus{NodeID: m.NodeID, Status: m.Status}, nil
	case MsgLinkStatus:
		return engine.SetLinkStatus{Source: m.Source, Target: m.Target, Status: m.Status}, nil
	case MsgHighlight:
		return engine.HighlightPath{NodeIDs: m.NodeIDs}, nil
	case MsgReheat:
		return engine.Reheat{}, nil
	}
	return nil, errors.NewInvalidRequestError("unknown message type %q", m.Type)
}

func isDrag(ev engine.Event) bool {
	switch ev.(type) {
	case engine.DragStart, engine.DragMove, engine.DragEnd:
		return true
	}
	return false
}

func isViewport(ev engine.Event) bool {
	switch ev.(type) {
	case engine.Zoom, engine.ZoomAt, engine.Pan, engine.ResetViewport:
		return true
	}
	return false
}
