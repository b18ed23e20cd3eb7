package logger

// Standard field names for structured logging. Use these instead of raw
// strings so log queries work across components.
const (
	FieldComponent = "component"
	FieldError     = "error"
	FieldCount     = "count"
	FieldPath      = "path"
	FieldMethod    = "method"
	FieldStatus    = "status"
	FieldAddress   = "address"
	FieldClientID  = "client_id"

	// Engine
	FieldNodeID     = "node_id"
	FieldSourceID   = "source_id"
	FieldTargetID   = "target_id"
	FieldTick       = "tick"
	FieldAlpha      = "alpha"
	FieldNodeCount  = "nodes"
	FieldLinkCount  = "links"
	FieldEventType  = "event"
	FieldDurationMS = "duration_ms"
	FieldSource     = "source"
)
