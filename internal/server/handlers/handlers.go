// Package handlers provides HTTP request handlers for the SignLib API.
package handlers

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/agentstation/signlib"
	"github.com/agentstation/signlib/internal/server/cache"
	"github.com/agentstation/signlib/internal/server/sse"
	ws "github.com/agentstation/signlib/internal/server/websocket"
	"github.com/agentstation/signlib/pkg/constants"
)

// Options carries the server components the handlers use.
type Options struct {
	Cache          *cache.Cache
	WSHub          *ws.Hub
	SSEBroadcaster *sse.Broadcaster
	Upgrader       websocket.Upgrader
	Logger         *zerolog.Logger
	PathPrefix     string
	MaxUploadBytes int64
	FolderRoot     string
	StartTime      time.Time
}

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	lib            *signlib.Library
	cache          *cache.Cache
	wsHub          *ws.Hub
	sseBroadcaster *sse.Broadcaster
	upgrader       websocket.Upgrader
	logger         *zerolog.Logger
	pathPrefix     string
	maxUploadBytes int64
	folderRoot     string
	startTime      time.Time
}

// New creates a new Handlers instance.
func New(lib *signlib.Library, opts Options) *Handlers {
	if opts.Cache == nil {
		opts.Cache = cache.New(constants.CacheTTL, constants.CacheCleanupInterval)
	}
	if opts.Logger == nil {
		nop := zerolog.Nop()
		opts.Logger = &nop
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = constants.MaxUploadBytes
	}
	if opts.StartTime.IsZero() {
		opts.StartTime = time.Now()
	}
	return &Handlers{
		lib:            lib,
		cache:          opts.Cache,
		wsHub:          opts.WSHub,
		sseBroadcaster: opts.SSEBroadcaster,
		upgrader:       opts.Upgrader,
		logger:         opts.Logger,
		pathPrefix:     opts.PathPrefix,
		maxUploadBytes: opts.MaxUploadBytes,
		folderRoot:     opts.FolderRoot,
		startTime:      opts.StartTime,
	}
}
