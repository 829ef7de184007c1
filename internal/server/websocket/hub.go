// Package websocket pushes catalog changes and notices to browser clients.
package websocket

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/signlib/pkg/constants"
)

// Message is the JSON frame sent to clients.
type Message struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// Hub fans broadcast messages out to registered clients. A client whose
// buffer is full is disconnected.
type Hub struct {
	mu      sync.Mutex
	clients map[*Client]struct{}
	stopped bool

	outbox chan Message
	logger *zerolog.Logger
}

// NewHub creates a hub. Clients may register before Run.
func NewHub(logger *zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		outbox:  make(chan Message, constants.ChannelBufferSize*4),
		logger:  logger,
	}
}

// Run delivers broadcasts until ctx is canceled, then disconnects every
// client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			h.stopped = true
			for c := range h.clients {
				h.dropLocked(c)
			}
			h.mu.Unlock()
			h.logger.Debug().Msg("WebSocket hub stopped")
			return
		case m := <-h.outbox:
			h.fanOut(m)
		}
	}
}

func (h *Hub) fanOut(m Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		if !c.Send(m) {
			h.logger.Warn().Str("client_id", c.id).Str("type", m.Type).Msg("WebSocket client too slow, disconnecting")
			h.dropLocked(c)
		}
	}
}

// dropLocked closes c's queue, which makes its WritePump send a close frame.
func (h *Hub) dropLocked(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}

// Register adds c. After Run has stopped, c is closed instead.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		close(c.send)
		return
	}
	h.clients[c] = struct{}{}
	h.logger.Debug().Str("client_id", c.id).Int("clients", len(h.clients)).Msg("WebSocket client registered")
}

// Unregister removes c. Removing an unknown client does nothing.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(c)
}

// Broadcast queues m for every client. A full queue drops m.
func (h *Hub) Broadcast(m Message) {
	select {
	case h.outbox <- m:
	default:
		h.logger.Warn().Str("type", m.Type).Msg("WebSocket queue full, message dropped")
	}
}

// ClientCount returns the number of registered clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
