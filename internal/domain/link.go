package domain

import (
	"crypto/sha256"
	"fmt"
)

// Link is a connection between two nodes, referenced by id
type Link struct {
	Source      string `json:"source"`
	Target      string `json:"target"`
	Status      Status `json:"status"`
	Highlighted bool   `json:"highlighted"`
}

// NewLink creates a healthy link from source to target
func NewLink(source, target string) *Link {
	return &Link{
		Source: source,
		Target: target,
		Status: StatusHealthy,
	}
}

// Connects reports whether the link joins a and b in either orientation
func (l *Link) Connects(a, b string) bool {
	return (l.Source == a && l.Target == b) || (l.Source == b && l.Target == a)
}

// Touches reports whether id is one of the link endpoints
func (l *Link) Touches(id string) bool {
	return l.Source == id || l.Target == id
}

// ID returns a deterministic identifier for the link. Both orientations of the
// same node pair produce the same id.
func (l *Link) ID() string {
	return LinkID(l.Source, l.Target)
}

// LinkID creates a deterministic id for the unordered pair (a, b)
func LinkID(a, b string) string {
	if a > b {
		a, b = b, a
	}
	hash := sha256.Sum256([]byte(a + "\x00" + b))
	return fmt.Sprintf("%x", hash[:8])
}
