package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"topomap/internal/errors"
	"topomap/internal/logger"
)

const (
	// DefaultTickInterval is one frame at roughly 60fps
	DefaultTickInterval = 16 * time.Millisecond
	// DefaultQueueSize bounds the number of pending events
	DefaultQueueSize = 256
)

// Notice types published to notice subscribers
const (
	NoticeTopologyLoaded   = "topology_loaded"
	NoticeTopologyRejected = "topology_rejected"
	NoticeLayoutSettled    = "layout_settled"
)

// Notice is a discrete engine occurrence, as opposed to the continuous
// frame stream
type Notice struct {
	Type       string      `json:"type"`
	Generation uint64      `json:"generation"`
	Data       interface{} `json:"data,omitempty"`
}

// TopologyLoadedData accompanies NoticeTopologyLoaded
type TopologyLoadedData struct {
	Nodes int `json:"nodes"`
	Links int `json:"links"`
}

// SettledData accompanies NoticeLayoutSettled
type SettledData struct {
	Ticks     int                   `json:"ticks"`
	Positions map[string]PositionXY `json:"positions"`
}

// PositionXY is a plain coordinate pair for notice payloads
type PositionXY struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Engine owns a State and advances it on a single goroutine
type Engine struct {
	state    State
	interval time.Duration

	requests chan request
	stopped  chan struct{}
	running  atomic.Bool

	frame atomic.Pointer[Frame]

	mu         sync.RWMutex
	nextSubID  uint64
	frameSubs  map[uint64]func(*Frame)
	noticeSubs map[uint64]func(Notice)

	log *zap.SugaredLogger
}

type request struct {
	event   Event
	inspect func(State)
	done    chan error
}

// Config for the runtime loop
type Config struct {
	TickInterval time.Duration
	QueueSize    int
}

// NewEngine wraps an initial State. The state must not be used by the
// caller afterwards.
func NewEngine(state State, cfg Config) *Engine {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTickInterval
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultQueueSize
	}
	e := &Engine{
		state:      state,
		interval:   cfg.TickInterval,
		requests:   make(chan request, cfg.QueueSize),
		stopped:    make(chan struct{}),
		frameSubs:  make(map[uint64]func(*Frame)),
		noticeSubs: make(map[uint64]func(Notice)),
		log:        logger.Named("engine"),
	}
	f := Project(state)
	e.frame.Store(&f)
	return e
}

// Run ticks the simulation and applies queued events until ctx is done.
// It may be called once.
func (e *Engine) Run(ctx context.Context) error {
	if !e.running.CompareAndSwap(false, true) {
		return errors.New("engine already running")
	}
	defer close(e.stopped)

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	e.log.Infow("Engine started",
		logger.FieldNodeCount, e.state.Graph.Len(),
		logger.FieldLinkCount, len(e.state.Graph.Links()),
		"interval", e.interval)

	for {
		select {
		case <-ctx.Done():
			e.log.Infow("Engine stopped", logger.FieldTick, e.state.Sim.Ticks)
			return nil
		case req := <-e.requests:
			e.handle(req)
		case <-ticker.C:
			e.step()
		}
	}
}

func (e *Engine) step() {
	if !e.state.tick() {
		return
	}
	e.publish()
	if e.state.Settled() {
		e.log.Debugw("Layout settled",
			logger.FieldTick, e.state.Sim.Ticks,
			logger.FieldAlpha, e.state.Sim.Alpha)
		positions := make(map[string]PositionXY, e.state.Graph.Len())
		for _, n := range e.state.Graph.Nodes() {
			positions[n.ID] = PositionXY{X: n.Position.X, Y: n.Position.Y}
		}
		e.notify(Notice{
			Type:       NoticeLayoutSettled,
			Generation: e.state.Generation,
			Data:       SettledData{Ticks: e.state.Sim.Ticks, Positions: positions},
		})
	}
}

func (e *Engine) handle(req request) {
	if req.inspect != nil {
		req.inspect(e.state)
		req.done <- nil
		return
	}

	err := e.state.apply(req.event)
	if err != nil {
		e.log.Warnw("Event rejected",
			logger.FieldEventType, req.event.Kind(),
			logger.FieldError, err)
	}

	if _, ok := req.event.(LoadTopology); ok {
		if err != nil {
			e.notify(Notice{
				Type:       NoticeTopologyRejected,
				Generation: e.state.Generation,
				Data:       map[string]string{"error": err.Error()},
			})
		} else {
			e.log.Infow("Topology loaded",
				logger.FieldNodeCount, e.state.Graph.Len(),
				logger.FieldLinkCount, len(e.state.Graph.Links()))
			e.notify(Notice{
				Type:       NoticeTopologyLoaded,
				Generation: e.state.Generation,
				Data:       TopologyLoadedData{Nodes: e.state.Graph.Len(), Links: len(e.state.Graph.Links())},
			})
		}
	}

	if err == nil {
		e.publish()
	}
	if req.done != nil {
		req.done <- err
	}
}

func (e *Engine) publish() {
	f := Project(e.state)
	e.frame.Store(&f)

	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, fn := range e.frameSubs {
		fn(&f)
	}
}

func (e *Engine) notify(n Notice) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, fn := range e.noticeSubs {
		fn(n)
	}
}

// Send queues ev and waits until it has been applied
func (e *Engine) Send(ctx context.Context, ev Event) error {
	if ev == nil {
		return errors.NewInvalidRequestError("nil event")
	}
	return e.do(ctx, request{event: ev, done: make(chan error, 1)})
}

// Post queues ev without waiting. It fails with ErrEngineBusy when the
// queue is full.
func (e *Engine) Post(ev Event) error {
	if ev == nil {
		return errors.NewInvalidRequestError("nil event")
	}
	select {
	case <-e.stopped:
		return errors.ErrEngineStopped
	default:
	}
	select {
	case e.requests <- request{event: ev}:
		return nil
	default:
		return errors.ErrEngineBusy
	}
}

// Inspect runs fn on the engine goroutine between ticks. fn must not
// retain the State or anything reachable from it.
func (e *Engine) Inspect(ctx context.Context, fn func(State)) error {
	return e.do(ctx, request{inspect: fn, done: make(chan error, 1)})
}

func (e *Engine) do(ctx context.Context, req request) error {
	select {
	case e.requests <- req:
	case <-e.stopped:
		return errors.ErrEngineStopped
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "queue event")
	}
	select {
	case err := <-req.done:
		return err
	case <-e.stopped:
		return errors.ErrEngineStopped
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "wait for event")
	}
}

// Frame returns the most recent frame
func (e *Engine) Frame() *Frame {
	return e.frame.Load()
}

// Subscribe registers fn to receive every published frame. fn runs on the
// engine goroutine and must not block. The returned function unsubscribes.
func (e *Engine) Subscribe(fn func(*Frame)) func() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.nextSubID++
	id := e.nextSubID
	e.frameSubs[id] = fn
	return func() {
		e.mu.Lock()
		delete(e.frameSubs, id)
		e.mu.Unlock()
	}
}

// OnNotice registers fn to receive notices. Same rules as Subscribe.
func (e *Engine) OnNotice(fn func(Notice)) func() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.nextSubID++
	id := e.nextSubID
	e.noticeSubs[id] = fn
	return func() {
		e.mu.Lock()
		delete(e.noticeSubs, id)
		e.mu.Unlock()
	}
}
