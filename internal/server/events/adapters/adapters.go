// Package adapters connects the event broker to the real-time transports.
package adapters

import (
	"strconv"

	"github.com/agentstation/signlib/internal/server/events"
	"github.com/agentstation/signlib/internal/server/sse"
	ws "github.com/agentstation/signlib/internal/server/websocket"
)

// Hub forwards every event to the WebSocket hub's clients.
func Hub(hub *ws.Hub) events.Subscriber {
	return events.SubscriberFunc(func(e events.Event) error {
		hub.Broadcast(ws.Message{
			Type:      string(e.Type),
			Timestamp: e.Timestamp,
			Data:      e.Data,
		})
		return nil
	})
}

// Stream forwards every event to the SSE broadcaster. The event sequence
// number becomes the SSE id.
func Stream(b *sse.Broadcaster) events.Subscriber {
	return events.SubscriberFunc(func(e events.Event) error {
		b.Broadcast(sse.Event{
			Event: string(e.Type),
			ID:    strconv.FormatUint(e.Seq, 10),
			Data:  e.Data,
		})
		return nil
	})
}
