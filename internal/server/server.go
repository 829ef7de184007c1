// Package server provides the HTTP API for a SignLib library.
package server

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/agentstation/signlib"
	"github.com/agentstation/signlib/internal/server/cache"
	"github.com/agentstation/signlib/internal/server/events"
	"github.com/agentstation/signlib/internal/server/events/adapters"
	"github.com/agentstation/signlib/internal/server/sse"
	ws "github.com/agentstation/signlib/internal/server/websocket"
	"github.com/agentstation/signlib/pkg/constants"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	lib            *signlib.Library
	cache          *cache.Cache
	broker         *events.Broker
	wsHub          *ws.Hub
	sseBroadcaster *sse.Broadcaster
	upgrader       websocket.Upgrader
	logger         *zerolog.Logger
	config         Config
	ctx            context.Context
	cancel         context.CancelFunc
	startTime      time.Time
	started        atomic.Bool
	stopped        chan struct{}
}

// Option configures a Server.
type Option func(*Server)

// WithBroker makes the server publish through an existing broker. Pass the
// same broker to signlib.WithNotifier to stream library notices.
func WithBroker(b *events.Broker) Option {
	return func(s *Server) {
		s.broker = b
	}
}

// New creates a new server for lib.
func New(lib *signlib.Library, cfg Config, logger *zerolog.Logger, opts ...Option) *Server {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = constants.CacheTTL
	}
	if cfg.MaxUploadBytes == 0 {
		cfg.MaxUploadBytes = constants.MaxUploadBytes
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		lib:            lib,
		cache:          cache.New(cfg.CacheTTL, constants.CacheCleanupInterval),
		wsHub:          ws.NewHub(logger),
		sseBroadcaster: sse.NewBroadcaster(logger),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(_ *http.Request) bool {
				return true
			},
		},
		logger:    logger,
		config:    cfg,
		ctx:       ctx,
		cancel:    cancel,
		startTime: time.Now(),
		stopped:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.broker == nil {
		s.broker = events.NewBroker(logger)
	}

	s.broker.Subscribe(adapters.Hub(s.wsHub))
	s.broker.Subscribe(adapters.Stream(s.sseBroadcaster))
	s.connectHooks()

	logger.Debug().Str("prefix", cfg.PathPrefix).Msg("Server instance created")
	return s
}

// connectHooks publishes every committed catalog change to the broker.
func (s *Server) connectHooks() {
	s.lib.OnChange(func(c signlib.Change) {
		s.broker.Publish(events.CatalogChanged, c)
		s.logger.Debug().
			Str("kind", string(c.Kind)).
			Uint64("revision", c.Revision).
			Msg("Catalog change published")
	})
}

// Start starts the background services (broker, WebSocket hub, SSE broadcaster).
func (s *Server) Start() {
	if !s.started.CompareAndSwap(false, true) {
		return
	}
	s.logger.Debug().Msg("Starting background services")

	done := make(chan struct{}, 3)
	run := func(fn func(context.Context)) {
		go func() {
			fn(s.ctx)
			done <- struct{}{}
		}()
	}
	run(s.broker.Run)
	run(s.wsHub.Run)
	run(s.sseBroadcaster.Run)

	go func() {
		for range 3 {
			<-done
		}
		close(s.stopped)
	}()
}

// Handler returns the configured http.Handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// Shutdown stops the background services and waits for them until ctx ends.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("Shutting down server background services")
	s.cancel()
	if !s.started.Load() {
		return nil
	}

	select {
	case <-s.stopped:
		s.logger.Info().Msg("Background services shut down")
		return nil
	case <-ctx.Done():
		s.logger.Warn().Msg("Background services shutdown timed out")
		return ctx.Err()
	}
}

// Broker returns the event broker.
func (s *Server) Broker() *events.Broker {
	return s.broker
}

// Cache returns the query cache.
func (s *Server) Cache() *cache.Cache {
	return s.cache
}

// StartTime returns the server start time for uptime calculations.
func (s *Server) StartTime() time.Time {
	return s.startTime
}
