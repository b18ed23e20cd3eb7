package service

import (
	"context"

	"go.uber.org/zap"

	"topomap/internal/domain"
	"topomap/internal/engine"
	"topomap/internal/errors"
	"topomap/internal/loader"
	"topomap/internal/logger"
	"topomap/internal/repository"
)

// TopologyService provides business logic for the live diagram
type TopologyService struct {
	engine   *engine.Engine
	source   loader.Source
	repo     repository.Repository
	eventBus *EventBus
	notices  chan engine.Notice
	log      *zap.SugaredLogger
}

// NewTopologyService creates a new topology service. source and repo may
// be nil: without a source Reload fails, without a repo nothing is
// persisted.
func NewTopologyService(eng *engine.Engine, source loader.Source, repo repository.Repository, eventBus *EventBus) *TopologyService {
	return &TopologyService{
		engine:   eng,
		source:   source,
		repo:     repo,
		eventBus: eventBus,
		notices:  make(chan engine.Notice, 16),
		log:      logger.Named("service"),
	}
}

// Start forwards engine output to the event bus and persists settled
// layouts until ctx is done. It restores the saved viewport first.
func (s *TopologyService) Start(ctx context.Context) {
	s.restoreViewport(ctx)

	unsubscribeFrames := s.engine.Subscribe(func(f *engine.Frame) {
		s.eventBus.Publish(Event{Type: EventFrame, Payload: f})
	})
	unsubscribeNotices := s.engine.OnNotice(func(n engine.Notice) {
		select {
		case s.notices <- n:
		default:
			s.log.Warnw("Notice queue full, dropping notice", logger.FieldEventType, n.Type)
		}
	})

	go func() {
		defer unsubscribeFrames()
		defer unsubscribeNotices()
		for {
			select {
			case <-ctx.Done():
				return
			case n := <-s.notices:
				s.handleNotice(ctx, n)
			}
		}
	}()
}

func (s *TopologyService) handleNotice(ctx context.Context, n engine.Notice) {
	switch n.Type {
	case engine.NoticeTopologyLoaded:
		s.eventBus.Publish(Event{Type: EventTopologyLoaded, Payload: n})
	case engine.NoticeTopologyRejected:
		s.eventBus.Publish(Event{Type: EventTopologyRejected, Payload: n})
	case engine.NoticeLayoutSettled:
		s.eventBus.Publish(Event{Type: EventLayoutSettled, Payload: n})
		if data, ok := n.Data.(engine.SettledData); ok {
			s.savePositions(ctx, data)
		}
	}
}

func (s *TopologyService) savePositions(ctx context.Context, data engine.SettledData) {
	if s.repo == nil {
		return
	}
	positions := make([]domain.NodePosition, 0, len(data.Positions))
	for id, p := range data.Positions {
		positions = append(positions, *domain.NewNodePosition(id, p.X, p.Y))
	}
	if err := s.repo.SavePositions(ctx, positions); err != nil {
		s.log.Warnw("Failed to save layout", logger.FieldError, err)
		return
	}
	s.log.Debugw("Layout saved", logger.FieldCount, len(positions))
	s.eventBus.Publish(Event{Type: EventPositionsSaved, Payload: map[string]int{"count": len(positions)}})
}

func (s *TopologyService) restoreViewport(ctx context.Context) {
	if s.repo == nil {
		return
	}
	t, err := s.repo.GetViewport(ctx)
	if err != nil {
		s.log.Warnw("Failed to restore viewport", logger.FieldError, err)
		return
	}
	if t == nil {
		return
	}
	if err := s.engine.Send(ctx, engine.Zoom{Scale: t.Scale, X: t.X, Y: t.Y}); err != nil {
		s.log.Warnw("Failed to restore viewport", logger.FieldError, err)
	}
}

// Frame returns the latest rendered frame
func (s *TopologyService) Frame() *engine.Frame {
	return s.engine.Frame()
}

// Reload fetches the topology from the configured source and loads it
func (s *TopologyService) Reload(ctx context.Context) error {
	if s.source == nil {
		return errors.NewInvalidRequestError("no topology source configured")
	}
	s.eventBus.Publish(Event{Type: EventTopologyReloading, Payload: map[string]string{"source": s.source.String()}})

	topo, err := s.source.Load(ctx)
	if err != nil {
		return errors.Wrap(err, "reload topology")
	}
	return s.Load(ctx, topo)
}

// Load replaces the topology. Saved positions seed the layout for node ids
// that have one; other surviving nodes keep their current position.
func (s *TopologyService) Load(ctx context.Context, topo *domain.Topology) error {
	if topo == nil {
		return errors.NewInvalidRequestError("empty topology")
	}
	ev := engine.LoadTopology{Topology: topo}

	if s.repo != nil {
		saved, err := s.repo.GetPositions(ctx, topo.NodeIDs())
		if err != nil {
			s.log.Warnw("Failed to read saved layout", logger.FieldError, err)
		} else if len(saved) > 0 {
			ev.Positions = make(map[string]domain.Vec, len(saved))
			for id, p := range saved {
				ev.Positions[id] = p.Vec()
			}
		}
	}

	return s.engine.Send(ctx, ev)
}

// Topology exports the current topology
func (s *TopologyService) Topology(ctx context.Context) (*domain.Topology, error) {
	var topo *domain.Topology
	err := s.engine.Inspect(ctx, func(st engine.State) {
		topo = st.Graph.Topology()
	})
	return topo, err
}

// GetNode returns a copy of one node
func (s *TopologyService) GetNode(ctx context.Context, id string) (*domain.Node, error) {
	var (
		node domain.Node
		ferr error
	)
	err := s.engine.Inspect(ctx, func(st engine.State) {
		n, err := st.Graph.FindNode(id)
		if err != nil {
			ferr = err
			return
		}
		node = *n
		if n.Pinned != nil {
			p := *n.Pinned
			node.Pinned = &p
		}
	})
	if err != nil {
		return nil, err
	}
	if ferr != nil {
		return nil, ferr
	}
	return &node, nil
}

// GetLink returns a copy of the link joining a and b in either orientation
func (s *TopologyService) GetLink(ctx context.Context, a, b string) (*domain.Link, error) {
	var (
		link domain.Link
		ferr error
	)
	err := s.engine.Inspect(ctx, func(st engine.State) {
		l, err := st.Graph.FindLink(a, b)
		if err != nil {
			ferr = err
			return
		}
		link = *l
	})
	if err != nil {
		return nil, err
	}
	if ferr != nil {
		return nil, ferr
	}
	return &link, nil
}

// UpdateNodeStatus queues a node status push. Unknown nodes are ignored by
// the engine; an unrecognized status is rejected here.
func (s *TopologyService) UpdateNodeStatus(id, status string) error {
	if _, ok := domain.ParseStatus(status); !ok || status == "" {
		return errors.NewInvalidRequestError("invalid status %q", status)
	}
	return s.engine.Post(engine.SetNodeStatus{NodeID: id, Status: status})
}

// UpdateLinkStatus queues a link status push
func (s *TopologyService) UpdateLinkStatus(source, target, status string) error {
	if _, ok := domain.ParseStatus(status); !ok || status == "" {
		return errors.NewInvalidRequestError("invalid status %q", status)
	}
	return s.engine.Post(engine.SetLinkStatus{Source: source, Target: target, Status: status})
}

// HighlightPath replaces the highlighted path and waits until it shows
func (s *TopologyService) HighlightPath(ctx context.Context, ids []string) error {
	return s.engine.Send(ctx, engine.HighlightPath{NodeIDs: ids})
}

// Dispatch applies an interaction event (drag or viewport). Viewport
// changes are persisted.
func (s *TopologyService) Dispatch(ctx context.Context, ev engine.Event) error {
	if ev == nil {
		return errors.NewInvalidRequestError("nil event")
	}
	switch ev.(type) {
	case engine.DragStart, engine.DragMove, engine.DragEnd, engine.Reheat:
		return s.engine.Send(ctx, ev)
	case engine.Zoom, engine.ZoomAt, engine.Pan, engine.ResetViewport:
		if err := s.engine.Send(ctx, ev); err != nil {
			return err
		}
		s.saveViewport(ctx)
		return nil
	case engine.SetNodeStatus, engine.SetLinkStatus, engine.HighlightPath:
		return s.engine.Send(ctx, ev)
	default:
		return errors.NewInvalidRequestError("event %s cannot be dispatched", ev.Kind())
	}
}

func (s *TopologyService) saveViewport(ctx context.Context) {
	t := s.engine.Frame().Transform
	s.eventBus.Publish(Event{Type: EventViewportChanged, Payload: t})
	if s.repo == nil {
		return
	}
	if err := s.repo.SaveViewport(ctx, t); err != nil {
		s.log.Warnw("Failed to save viewport", logger.FieldError, err)
	}
}
