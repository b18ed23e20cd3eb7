package domain

import "testing"

func TestNewNode(t *testing.T) {
	node := NewNode("r1", "Edge Router 1", NodeTypeRouter, DomainTransport)

	if node.Status != StatusHealthy {
		t.Errorf("expected healthy status, got %s", node.Status)
	}
	if node.IsPinned() {
		t.Error("expected new node to be free")
	}
	if node.Placed {
		t.Error("expected new node to be unplaced")
	}
	if node.Label() != "Edge Router 1" {
		t.Errorf("expected label 'Edge Router 1', got %s", node.Label())
	}
}

func TestNodePinning(t *testing.T) {
	t.Run("pin copies the position", func(t *testing.T) {
		node := NewNode("n", "", NodeTypeServer, DomainCore)
		p := Vec{X: 10, Y: 20}
		node.Pin(p)
		p.X = 99

		if !node.IsPinned() {
			t.Fatal("expected node to be pinned")
		}
		if node.Pinned.X != 10 {
			t.Errorf("expected pinned X=10, got %f", node.Pinned.X)
		}
	})

	t.Run("unpin clears the pin", func(t *testing.T) {
		node := NewNode("n", "", NodeTypeServer, DomainCore)
		node.Pin(Vec{X: 1, Y: 2})
		node.Unpin()
		if node.IsPinned() {
			t.Error("expected node to be free after Unpin")
		}
	})

	t.Run("label falls back to id", func(t *testing.T) {
		node := NewNode("gw1", "", NodeTypeGateway, DomainInternet)
		if node.Label() != "gw1" {
			t.Errorf("expected label 'gw1', got %s", node.Label())
		}
	})
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input string
		want  Status
		ok    bool
	}{
		{"healthy", StatusHealthy, true},
		{"", StatusHealthy, true},
		{"active", StatusHealthy, true},
		{"WARNING", StatusWarning, true},
		{"degraded", StatusWarning, true},
		{"critical", StatusCritical, true},
		{" down ", StatusCritical, true},
		{"purple", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseStatus(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseStatus(%q) = (%s, %v), want (%s, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNodeTypeValid(t *testing.T) {
	for _, nt := range []NodeType{NodeTypeCellTower, NodeTypeRouter, NodeTypeSwitch, NodeTypeServer, NodeTypeGateway} {
		if !nt.Valid() {
			t.Errorf("expected %s to be valid", nt)
		}
	}
	if NodeType("toaster").Valid() {
		t.Error("expected unknown type to be invalid")
	}
}

func TestDomainRank(t *testing.T) {
	if DomainRAN.Rank() != 0 || DomainInternet.Rank() != 3 {
		t.Errorf("unexpected ranks: ran=%d internet=%d", DomainRAN.Rank(), DomainInternet.Rank())
	}
	if NetworkDomain("edge").Rank() != len(DomainOrder) {
		t.Error("expected unknown domain to sort last")
	}
}
