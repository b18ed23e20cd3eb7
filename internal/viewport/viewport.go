// Package viewport maintains the pan/zoom transform applied to the rendered
// scene. It never touches node positions.
package viewport

import (
	"math"

	"topomap/internal/domain"
)

const (
	DefaultMinScale = 0.5
	DefaultMaxScale = 5
)

// Transform maps world coordinates to screen coordinates:
// screen = world*Scale + (X, Y)
type Transform struct {
	Scale float64 `json:"k"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// Identity is the transform of a freshly opened diagram
var Identity = Transform{Scale: 1}

// Apply projects a world point to the screen
func (t Transform) Apply(p domain.Vec) domain.Vec {
	return domain.Vec{X: p.X*t.Scale + t.X, Y: p.Y*t.Scale + t.Y}
}

// Invert maps a screen point back to world coordinates
func (t Transform) Invert(p domain.Vec) domain.Vec {
	return domain.Vec{X: (p.X - t.X) / t.Scale, Y: (p.Y - t.Y) / t.Scale}
}

// Controller owns a Transform and its scale bounds
type Controller struct {
	Transform Transform `json:"transform"`
	MinScale  float64   `json:"min_scale"`
	MaxScale  float64   `json:"max_scale"`
}

// New returns an identity controller. Non-positive or inverted bounds fall
// back to the defaults.
func New(minScale, maxScale float64) Controller {
	if minScale <= 0 {
		minScale = DefaultMinScale
	}
	if maxScale <= 0 {
		maxScale = DefaultMaxScale
	}
	if minScale > maxScale {
		minScale, maxScale = DefaultMinScale, DefaultMaxScale
	}
	c := Controller{Transform: Identity, MinScale: minScale, MaxScale: maxScale}
	c.Transform.Scale = c.clamp(1)
	return c
}

func (c Controller) clamp(k float64) float64 {
	if math.IsNaN(k) {
		return c.Transform.Scale
	}
	return math.Max(c.MinScale, math.Min(c.MaxScale, k))
}

// Zoom sets an absolute transform, clamping the scale
func (c *Controller) Zoom(scale, x, y float64) {
	c.Transform = Transform{Scale: c.clamp(scale), X: x, Y: y}
}

// ZoomAt multiplies the scale by factor while keeping the world point under
// the screen point (px, py) fixed.
func (c *Controller) ZoomAt(factor, px, py float64) {
	if factor <= 0 {
		return
	}
	anchor := domain.Vec{X: px, Y: py}
	world := c.Transform.Invert(anchor)
	k := c.clamp(c.Transform.Scale * factor)
	c.Transform = Transform{Scale: k, X: px - world.X*k, Y: py - world.Y*k}
}

// Pan translates the view; there is no bound
func (c *Controller) Pan(dx, dy float64) {
	c.Transform.X += dx
	c.Transform.Y += dy
}

// Reset returns to the identity transform
func (c *Controller) Reset() {
	c.Transform = Transform{Scale: c.clamp(1)}
}

// Project maps a world point to the screen
func (c Controller) Project(p domain.Vec) domain.Vec {
	return c.Transform.Apply(p)
}

// Unproject maps a screen point to the world, e.g. a pointer position
// delivered with a drag event.
func (c Controller) Unproject(p domain.Vec) domain.Vec {
	return c.Transform.Invert(p)
}
