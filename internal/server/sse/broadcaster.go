// Package sse streams catalog changes and notices as Server-Sent Events.
package sse

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/signlib/pkg/constants"
)

// Event is one SSE frame. Data is written as JSON.
type Event struct {
	Event string `json:"event,omitempty"`
	ID    string `json:"id,omitempty"`
	Data  any    `json:"data"`
}

// Broadcaster relays events to every open stream. A stream that falls
// behind skips events rather than stalling the others.
type Broadcaster struct {
	mu      sync.Mutex
	streams map[chan Event]struct{}
	done    chan struct{}

	queue  chan Event
	logger *zerolog.Logger
}

// NewBroadcaster creates a broadcaster. Streams may open before Run.
func NewBroadcaster(logger *zerolog.Logger) *Broadcaster {
	return &Broadcaster{
		streams: make(map[chan Event]struct{}),
		done:    make(chan struct{}),
		queue:   make(chan Event, constants.ChannelBufferSize*4),
		logger:  logger,
	}
}

// Run relays queued events until ctx is canceled, then ends every stream.
func (b *Broadcaster) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			b.mu.Lock()
			close(b.done)
			for ch := range b.streams {
				delete(b.streams, ch)
				close(ch)
			}
			b.mu.Unlock()
			b.logger.Debug().Msg("SSE broadcaster stopped")
			return
		case ev := <-b.queue:
			b.relay(ev)
		}
	}
}

func (b *Broadcaster) relay(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.streams {
		select {
		case ch <- ev:
		default:
			b.logger.Warn().Str("event", ev.Event).Str("id", ev.ID).Msg("SSE stream behind, event skipped")
		}
	}
}

// open registers a stream channel. It returns nil once the broadcaster has
// stopped.
func (b *Broadcaster) open() chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	select {
	case <-b.done:
		return nil
	default:
	}
	ch := make(chan Event, constants.ChannelBufferSize)
	b.streams[ch] = struct{}{}
	return ch
}

func (b *Broadcaster) release(ch chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.streams[ch]; ok {
		delete(b.streams, ch)
		close(ch)
	}
}

// Broadcast queues ev for every stream. A full queue drops ev.
func (b *Broadcaster) Broadcast(ev Event) {
	select {
	case b.queue <- ev:
	default:
		b.logger.Warn().Str("event", ev.Event).Msg("SSE queue full, event dropped")
	}
}

// ClientCount returns the number of open streams.
func (b *Broadcaster) ClientCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.streams)
}

// ServeHTTP holds one stream open until the client goes away or the
// broadcaster stops. The first frame is a "connected" event.
func (b *Broadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}
	ch := b.open()
	if ch == nil {
		http.Error(w, "Event stream closed", http.StatusServiceUnavailable)
		return
	}
	defer b.release(ch)

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")

	send := func(ev Event) {
		if err := Write(w, ev); err != nil {
			b.logger.Error().Err(err).Str("event", ev.Event).Msg("SSE write failed")
			return
		}
		flusher.Flush()
	}

	send(Event{Event: "connected", Data: map[string]any{
		"message":   "Connected to SignLib updates stream",
		"timestamp": time.Now(),
	}})

	for {
		select {
		case ev, open := <-ch:
			if !open {
				return
			}
			send(ev)
		case <-r.Context().Done():
			return
		}
	}
}

// Write encodes ev as one SSE frame: event, then id, then data.
func Write(w io.Writer, ev Event) error {
	data, err := json.Marshal(ev.Data)
	if err != nil {
		return err
	}
	if ev.Event != "" {
		if _, err := fmt.Fprintf(w, "event: %s\n", ev.Event); err != nil {
			return err
		}
	}
	if ev.ID != "" {
		if _, err := fmt.Fprintf(w, "id: %s\n", ev.ID); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(w, "data: %s\n\n", data)
	return err
}
