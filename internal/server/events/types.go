// Package events fans library activity out to the real-time transports.
//
// Library change hooks and notices are published to a Broker, which relays
// every event to its subscribers (the WebSocket hub and the SSE broadcaster).
package events

import "time"

// EventType represents the type of event.
type EventType string

// Event types.
const (
	// CatalogChanged reports a committed mutation. Data is a signlib.Change.
	CatalogChanged EventType = "catalog.changed"
	// NoticePosted carries a user-facing notice. Data is a notify.Notice.
	NoticePosted EventType = "notice"
	// ClientConnected is sent when a transport client attaches.
	ClientConnected EventType = "client.connected"
)

// Event is one published item. Seq increases by one per published event
// and is shared across every subscriber of a broker.
type Event struct {
	Seq       uint64    `json:"seq"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}
