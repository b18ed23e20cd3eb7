package domain

import (
	"math"
	"testing"
)

func TestNewNodePosition(t *testing.T) {
	t.Run("creates position with defaults", func(t *testing.T) {
		pos := NewNodePosition("r1", 100.5, 200.5)

		if pos.NodeID != "r1" {
			t.Errorf("expected NodeID 'r1', got %s", pos.NodeID)
		}
		if pos.X != 100.5 || pos.Y != 200.5 {
			t.Errorf("expected (100.5, 200.5), got (%f, %f)", pos.X, pos.Y)
		}
		if pos.Pinned {
			t.Error("expected Pinned to be false by default")
		}
	})

	t.Run("converts to vec", func(t *testing.T) {
		pos := NewNodePosition("neg", -50.5, -100.5)
		v := pos.Vec()
		if v.X != -50.5 || v.Y != -100.5 {
			t.Errorf("expected (-50.5, -100.5), got (%f, %f)", v.X, v.Y)
		}
	})
}

func TestVecArithmetic(t *testing.T) {
	a := Vec{X: 3, Y: 4}
	b := Vec{X: 1, Y: 1}

	if got := a.Add(b); got != (Vec{X: 4, Y: 5}) {
		t.Errorf("Add = %v, want {4 5}", got)
	}
	if got := a.Sub(b); got != (Vec{X: 2, Y: 3}) {
		t.Errorf("Sub = %v, want {2 3}", got)
	}
	if got := a.Scale(2); got != (Vec{X: 6, Y: 8}) {
		t.Errorf("Scale = %v, want {6 8}", got)
	}
	if got := a.Len(); got != 5 {
		t.Errorf("Len = %f, want 5", got)
	}
	if got := a.Dist(Vec{}); math.Abs(got-5) > 1e-12 {
		t.Errorf("Dist = %f, want 5", got)
	}
}
