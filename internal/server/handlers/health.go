package handlers

import (
	"net/http"
	"time"

	"github.com/agentstation/signlib/internal/server/response"
)

// HandleHealth handles GET /health.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} response.Response{data=object}
// @Router /health [get].
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":  "healthy",
		"service": "signlib-api",
		"version": "v1",
	})
}

// HandleReady handles GET /api/v1/ready.
// @Summary Readiness check
// @Tags health
// @Produce json
// @Success 200 {object} response.Response{data=object}
// @Failure 503 {object} response.Response{error=response.Error}
// @Router /api/v1/ready [get].
func (h *Handlers) HandleReady(w http.ResponseWriter, _ *http.Request) {
	if h.lib == nil {
		response.ServiceUnavailable(w, "Library not available")
		return
	}

	data := map[string]any{
		"status":   "ready",
		"videos":   h.lib.Catalog().Videos().Len(),
		"revision": h.lib.Revision(),
		"uptime":   time.Since(h.startTime).Round(time.Second).String(),
		"cache":    h.cache.Stats(),
	}
	if name, files := h.lib.Folder(); name != "" {
		data["folder"] = map[string]any{"name": name, "files": files}
	}
	if h.wsHub != nil {
		data["websocket_clients"] = h.wsHub.ClientCount()
	}
	if h.sseBroadcaster != nil {
		data["sse_clients"] = h.sseBroadcaster.ClientCount()
	}
	response.OK(w, data)
}
