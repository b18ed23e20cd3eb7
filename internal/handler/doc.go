// Package handler implements the HTTP surface of topomap.
//
// TopologyHandler serves the REST API: the current frame, topology import
// and export, node and link lookups, status pushes, path highlighting and
// the drag and viewport interactions. WebSocket carries the same
// interaction and status messages on a single connection and streams
// frames back; SSE at /events is served by the hub package.
//
// # Response Format
//
// Success responses return JSON. Error responses return {error, details}
// with a status code derived from the error: 400 for malformed requests,
// 404 for unknown nodes or links, 422 for a topology that failed
// validation and 503 when the engine cannot take more events.
//
// # Messages
//
// Interaction messages share one shape over REST and WebSocket:
//
//	{"type": "drag_start", "node_id": "r1", "x": 120, "y": 80}
//	{"type": "zoom_at", "factor": 1.2, "x": 400, "y": 300}
//	{"type": "node_status", "node_id": "r1", "status": "degraded"}
//	{"type": "highlight", "node_ids": ["ct1", "r1", "sw1"]}
package handler
