package graph

import (
	"fmt"

	"topomap/internal/errors"
)

// ValidationKind classifies a rejected topology
type ValidationKind string

const (
	KindEmptyID       ValidationKind = "empty_id"
	KindDuplicateID   ValidationKind = "duplicate_id"
	KindDanglingLink  ValidationKind = "dangling_link"
	KindInvalidStatus ValidationKind = "invalid_status"
)

// ValidationError reports the node or link that caused a load to be rejected
type ValidationError struct {
	Kind   ValidationKind
	NodeID string
	// Link is set for link failures; Index is the record position
	Link  *LinkRef
	Index int
	Value string
}

// LinkRef identifies a link record by its endpoints
type LinkRef struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case KindEmptyID:
		return fmt.Sprintf("node record %d has an empty id", e.Index)
	case KindDuplicateID:
		return fmt.Sprintf("duplicate node id %q (record %d)", e.NodeID, e.Index)
	case KindDanglingLink:
		return fmt.Sprintf("link %d %q -> %q references unknown node %q",
			e.Index, e.Link.Source, e.Link.Target, e.NodeID)
	case KindInvalidStatus:
		if e.Link != nil {
			return fmt.Sprintf("link %d %q -> %q has invalid status %q",
				e.Index, e.Link.Source, e.Link.Target, e.Value)
		}
		return fmt.Sprintf("node %q has invalid status %q", e.NodeID, e.Value)
	}
	return "invalid topology"
}

// Is lets errors.Is(err, errors.ErrValidation) match
func (e *ValidationError) Is(target error) bool {
	return target == errors.ErrValidation
}
