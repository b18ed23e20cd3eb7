package repository

import (
	"context"

	"topomap/internal/domain"
	"topomap/internal/viewport"
)

// Repository defines the interface for layout snapshot persistence
type Repository interface {
	// Layout persistence
	SavePositions(ctx context.Context, positions []domain.NodePosition) error
	GetPositions(ctx context.Context, ids []string) (map[string]domain.NodePosition, error)
	ClearPositions(ctx context.Context) error

	// Viewport persistence
	SaveViewport(ctx context.Context, t viewport.Transform) error
	GetViewport(ctx context.Context) (*viewport.Transform, error)

	// Close releases resources
	Close() error
}
