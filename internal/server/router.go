package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/agentstation/signlib/internal/server/handlers"
	"github.com/agentstation/signlib/internal/server/middleware"
	"github.com/agentstation/signlib/internal/server/response"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Recovery is outermost so it also covers the logger.
	r.Use(middleware.Recovery(s.logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(s.logger))
	if s.config.CORSEnabled {
		corsConfig := middleware.DefaultCORSConfig()
		if len(s.config.CORSOrigins) > 0 {
			corsConfig.AllowedOrigins = s.config.CORSOrigins
		} else {
			corsConfig.AllowAll = true
		}
		r.Use(middleware.CORS(corsConfig))
	}

	h := handlers.New(s.lib, handlers.Options{
		Cache:          s.cache,
		WSHub:          s.wsHub,
		SSEBroadcaster: s.sseBroadcaster,
		Upgrader:       s.upgrader,
		Logger:         s.logger,
		PathPrefix:     s.config.PathPrefix,
		MaxUploadBytes: s.config.MaxUploadBytes,
		FolderRoot:     s.config.FolderRoot,
		StartTime:      s.startTime,
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found", r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.MethodNotAllowed(w, r.Method)
	})

	s.registerRoutes(r, h)

	return r
}

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes(r chi.Router, h *handlers.Handlers) {
	// Favicon handler (204 avoids 404 noise in the logs)
	r.Get("/favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/health", h.HandleHealth)

	r.Route(s.config.PathPrefix, func(r chi.Router) {
		r.Get("/health", h.HandleHealth)
		r.Get("/ready", h.HandleReady)
		r.Get("/openapi.json", h.HandleOpenAPIJSON)
		r.Get("/openapi.yaml", h.HandleOpenAPIYAML)

		r.Route("/videos", func(r chi.Router) {
			r.Get("/", h.HandleListVideos)
			r.Post("/", h.HandleAddVideo)
			r.Delete("/", h.HandleClearVideos)
			r.Post("/bulk", h.HandleBulkImport)
			r.Get("/{id}", h.HandleGetVideo)
			r.Delete("/{id}", h.HandleDeleteVideo)
			r.Get("/{id}/stream", h.HandleStreamVideo)
		})

		r.Post("/folders", h.HandleLinkFolder)
		r.Post("/favorites/{id}", h.HandleToggleFavorite)
		r.Get("/categories", h.HandleCategories)

		r.Get("/updates/ws", h.HandleWebSocket)
		r.Get("/updates/stream", h.HandleSSE)
	})
}
