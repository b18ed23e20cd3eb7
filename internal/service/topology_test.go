package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"topomap/internal/domain"
	"topomap/internal/engine"
	"topomap/internal/errors"
	"topomap/internal/layout"
	"topomap/internal/repository/sqlite"
	"topomap/internal/viewport"
)

type staticSource struct {
	topo *domain.Topology
	err  error
}

func (s *staticSource) Load(context.Context) (*domain.Topology, error) { return s.topo, s.err }
func (s *staticSource) String() string                                 { return "static" }

type fixture struct {
	svc  *TopologyService
	eng  *engine.Engine
	repo *sqlite.Repository
	bus  *EventBus
	src  *staticSource
}

func newFixture(t *testing.T, tick time.Duration) *fixture {
	t.Helper()
	state, err := engine.New(domain.FallbackTopology(), engine.Options{Layout: layout.DefaultConfig()})
	require.NoError(t, err)
	eng := engine.NewEngine(state, engine.Config{TickInterval: tick})

	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	bus := NewEventBus()
	src := &staticSource{topo: domain.FallbackTopology()}
	svc := NewTopologyService(eng, src, repo, bus)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = eng.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	svc.Start(ctx)

	return &fixture{svc: svc, eng: eng, repo: repo, bus: bus, src: src}
}

func waitFor(t *testing.T, ch <-chan Event, typ EventType) Event {
	t.Helper()
	deadline := time.After(10 * time.Second)
	for {
		select {
		case ev := <-ch:
			if ev.Type == typ {
				return ev
			}
		case <-deadline:
			t.Fatalf("no %s event", typ)
		}
	}
}

func TestSettledLayoutIsSaved(t *testing.T) {
	f := newFixture(t, time.Millisecond)
	events := make(chan Event, 1024)
	f.bus.Subscribe(events)

	waitFor(t, events, EventPositionsSaved)

	saved, err := f.repo.GetPositions(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, saved, 9)
}

func TestLoadUsesSavedPositions(t *testing.T) {
	// no ticks during the test, so positions stay where Load put them
	f := newFixture(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, f.repo.SavePositions(ctx, []domain.NodePosition{*domain.NewNodePosition("x", 12, 34)}))

	topo := &domain.Topology{Nodes: []domain.NodeRecord{{ID: "x"}, {ID: "y"}}}
	require.NoError(t, f.svc.Load(ctx, topo))

	x, err := f.svc.GetNode(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, domain.Vec{X: 12, Y: 34}, x.Position)

	got, err := f.svc.Topology(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, got.NodeIDs())
}

func TestLoadRejectsInvalidTopology(t *testing.T) {
	f := newFixture(t, time.Millisecond)
	ctx := context.Background()

	err := f.svc.Load(ctx, &domain.Topology{Nodes: []domain.NodeRecord{{ID: "a"}, {ID: "a"}}})
	assert.True(t, errors.IsValidationError(err))
	assert.True(t, errors.IsInvalidRequestError(f.svc.Load(ctx, nil)))

	// prior graph still displayed
	assert.Len(t, f.svc.Frame().Nodes, 9)
}

func TestReload(t *testing.T) {
	f := newFixture(t, time.Millisecond)
	ctx := context.Background()

	f.src.topo = domain.ChainTopology([]domain.NodeRecord{{ID: "a", Domain: "ran"}, {ID: "b", Domain: "core"}})
	require.NoError(t, f.svc.Reload(ctx))
	assert.Len(t, f.svc.Frame().Nodes, 2)

	f.src.err = errors.New("unreachable")
	assert.Error(t, f.svc.Reload(ctx))

	noSource := NewTopologyService(f.eng, nil, nil, f.bus)
	assert.True(t, errors.IsInvalidRequestError(noSource.Reload(ctx)))
}

func TestGetNodeAndLink(t *testing.T) {
	f := newFixture(t, time.Millisecond)
	ctx := context.Background()

	node, err := f.svc.GetNode(ctx, "gw1")
	require.NoError(t, err)
	assert.Equal(t, "Internet Gateway", node.Name)

	_, err = f.svc.GetNode(ctx, "ghost")
	assert.True(t, errors.IsNotFoundError(err))

	link, err := f.svc.GetLink(ctx, "gw1", "r2")
	require.NoError(t, err)
	assert.Equal(t, "r2", link.Source)

	_, err = f.svc.GetLink(ctx, "gw1", "ct1")
	assert.True(t, errors.IsNotFoundError(err))
}

func TestStatusUpdates(t *testing.T) {
	f := newFixture(t, time.Millisecond)
	ctx := context.Background()

	require.NoError(t, f.svc.UpdateNodeStatus("s1", "critical"))
	require.NoError(t, f.svc.UpdateLinkStatus("s1", "r2", "warning"))
	assert.True(t, errors.IsInvalidRequestError(f.svc.UpdateNodeStatus("s1", "purple")))
	assert.True(t, errors.IsInvalidRequestError(f.svc.UpdateLinkStatus("s1", "r2", "")))

	// unknown ids are accepted and ignored
	require.NoError(t, f.svc.UpdateNodeStatus("ghost", "critical"))

	assert.Eventually(t, func() bool {
		node, err := f.svc.GetNode(ctx, "s1")
		return err == nil && node.Status == domain.StatusCritical
	}, 5*time.Second, 10*time.Millisecond)

	link, err := f.svc.GetLink(ctx, "r2", "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusWarning, link.Status)
}

func TestDispatchViewportPersists(t *testing.T) {
	f := newFixture(t, time.Millisecond)
	ctx := context.Background()

	require.NoError(t, f.svc.Dispatch(ctx, engine.Zoom{Scale: 2, X: 3, Y: 4}))
	saved, err := f.repo.GetViewport(ctx)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, viewport.Transform{Scale: 2, X: 3, Y: 4}, *saved)

	require.NoError(t, f.svc.Dispatch(ctx, engine.DragStart{NodeID: "r1"}))
	assert.True(t, f.svc.Frame().Drag.Active("r1"))

	assert.True(t, errors.IsInvalidRequestError(f.svc.Dispatch(ctx, engine.LoadTopology{})))
	assert.True(t, errors.IsInvalidRequestError(f.svc.Dispatch(ctx, nil)))
}

func TestViewportRestoredOnStart(t *testing.T) {
	state, err := engine.New(domain.FallbackTopology(), engine.Options{})
	require.NoError(t, err)
	eng := engine.NewEngine(state, engine.Config{})

	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	defer repo.Close()
	require.NoError(t, repo.SaveViewport(context.Background(), viewport.Transform{Scale: 4, X: 1, Y: 1}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = eng.Run(ctx) }()

	NewTopologyService(eng, nil, repo, NewEventBus()).Start(ctx)
	assert.Equal(t, 4.0, eng.Frame().Transform.Scale)
}

func TestHighlightPath(t *testing.T) {
	f := newFixture(t, time.Millisecond)
	require.NoError(t, f.svc.HighlightPath(context.Background(), []string{"ct1", "r1"}))

	n, ok := f.svc.Frame().Node("ct1")
	require.True(t, ok)
	assert.True(t, n.Highlighted)
}
