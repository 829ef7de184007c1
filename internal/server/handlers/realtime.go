package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/agentstation/signlib/internal/server/events"
	"github.com/agentstation/signlib/internal/server/response"
	ws "github.com/agentstation/signlib/internal/server/websocket"
	"github.com/agentstation/signlib/pkg/logging"
)

// HandleWebSocket handles WebSocket connections at /api/v1/updates/ws.
// @Summary WebSocket updates
// @Description WebSocket connection for catalog changes and notices
// @Tags updates
// @Success 101 "Switching Protocols"
// @Router /api/v1/updates/ws [get].
func (h *Handlers) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	if h.wsHub == nil {
		response.ServiceUnavailable(w, "WebSocket updates are not enabled")
		return
	}
	logger := logging.FromContext(r.Context())

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := ws.NewClient(uuid.NewString(), h.wsHub, conn)
	client.Send(ws.Message{
		Type:      string(events.ClientConnected),
		Timestamp: time.Now(),
		Data: map[string]any{
			"message":  "Connected to SignLib updates",
			"revision": h.lib.Revision(),
		},
	})
	h.wsHub.Register(client)
	logger.Debug().Str("client_id", client.ID()).Msg("WebSocket client connected")

	go client.WritePump()
	go client.ReadPump()
}

// HandleSSE handles Server-Sent Events at /api/v1/updates/stream.
// @Summary SSE updates stream
// @Description Server-Sent Events stream of catalog changes and notices
// @Tags updates
// @Produce text/event-stream
// @Success 200 "Event stream"
// @Router /api/v1/updates/stream [get].
func (h *Handlers) HandleSSE(w http.ResponseWriter, r *http.Request) {
	if h.sseBroadcaster == nil {
		response.ServiceUnavailable(w, "Event stream is not enabled")
		return
	}
	h.sseBroadcaster.ServeHTTP(w, r)
}
