package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"topomap/internal/config"
	"topomap/internal/domain"
	"topomap/internal/engine"
	"topomap/internal/errors"
	"topomap/internal/handler"
	"topomap/internal/hub"
	"topomap/internal/loader"
	"topomap/internal/logger"
	"topomap/internal/repository"
	"topomap/internal/repository/sqlite"
	"topomap/internal/service"
	"topomap/internal/watcher"
)

func serveCmd(g *globals) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the diagram server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := g.cfg
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address (overrides server.addr)")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	log := logger.Named("server")
	log.Infow("Starting topomap server", "version", version)

	var repo repository.Repository
	if cfg.Database.Path != "" {
		r, err := sqlite.New(cfg.Database.Path)
		if err != nil {
			return errors.Wrap(err, "open database")
		}
		defer r.Close()
		log.Infow("Database opened", logger.FieldPath, cfg.Database.Path)
		repo = r
	}

	var source loader.Source
	if cfg.Topology.Source != "" {
		source = loader.New(cfg.Topology.Source, cfg.Topology.Timeout)
	}

	// The engine starts empty; the initial topology goes through the
	// service so saved positions are applied.
	state, err := engine.New(domain.NewTopology(), cfg.EngineOptions())
	if err != nil {
		return err
	}
	eng := engine.NewEngine(state, cfg.EngineConfig())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	engineDone := make(chan error, 1)
	go func() { engineDone <- eng.Run(ctx) }()

	eventBus := service.NewEventBus()
	svc := service.NewTopologyService(eng, source, repo, eventBus)

	sseHub := hub.New(cfg.Stream.MaxFPS)
	go sseHub.Run(ctx)

	// Connect event bus to the hub. Frames are coalesced, other events are
	// delivered in order.
	eventChan := make(chan service.Event, 256)
	eventBus.Subscribe(eventChan)
	defer eventBus.Unsubscribe(eventChan)
	go func() {
		for {
			select {
			case event := <-eventChan:
				if event.Type == service.EventFrame {
					sseHub.BroadcastFrame(event)
				} else {
					sseHub.Broadcast(event)
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	svc.Start(ctx)

	initial := domain.FallbackTopology()
	if source != nil {
		initial, _ = loader.WithFallback(source).Load(ctx)
	} else {
		log.Infow("No topology source configured, using fallback dataset")
	}
	if err := svc.Load(ctx, initial); err != nil {
		log.Warnw("Initial topology rejected, using fallback dataset", logger.FieldError, err)
		if err := svc.Load(ctx, domain.FallbackTopology()); err != nil {
			return errors.Wrap(err, "load fallback topology")
		}
	}

	if cfg.Topology.Watch {
		if fs, ok := source.(*loader.FileSource); ok {
			w := watcher.New(fs.Path, func(ctx context.Context) {
				if err := svc.Reload(ctx); err != nil {
					log.Warnw("Reload after file change failed", logger.FieldError, err)
				}
			})
			go func() {
				if err := w.Watch(ctx); err != nil {
					log.Errorw("Topology watcher stopped", logger.FieldError, err)
				}
			}()
		} else {
			log.Warnw("topology.watch needs a file source", logger.FieldSource, cfg.Topology.Source)
		}
	}

	mux := http.NewServeMux()
	handler.NewTopologyHandler(svc).Register(mux)
	mux.Handle("GET /events", sseHub)
	mux.Handle("GET /ws", handler.NewWSHandler(svc, sseHub))

	server := &http.Server{
		Addr: cfg.Server.Addr,
		Handler: handler.Chain(mux,
			handler.Recover,
			handler.CORS,
			handler.Logger,
		),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
		// No WriteTimeout: /events and /ws stay open
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Infow("Server listening", logger.FieldAddress, cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		if err != nil {
			return errors.Wrap(err, "http server")
		}
	case err := <-engineDone:
		return errors.Wrap(err, "engine stopped")
	}

	log.Infow("Shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warnw("Server shutdown error", logger.FieldError, err)
	}
	cancel()
	<-engineDone

	log.Infow("Server stopped")
	return nil
}
