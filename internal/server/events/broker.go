package events

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/signlib/pkg/constants"
	"github.com/agentstation/signlib/pkg/notify"
)

// Broker relays published events, in order, to every subscriber. It also
// implements notify.Notifier so a library can post notices onto the stream.
type Broker struct {
	mu     sync.RWMutex
	subs   []Subscriber
	closed bool

	queue  chan Event
	seq    atomic.Uint64
	logger *zerolog.Logger
	now    func() time.Time
}

// NewBroker creates a broker. Subscribers may be added before Run.
func NewBroker(logger *zerolog.Logger) *Broker {
	return &Broker{
		queue:  make(chan Event, constants.ChannelBufferSize*4),
		logger: logger,
		now:    time.Now,
	}
}

// Run delivers queued events until ctx is canceled, then closes every
// subscriber.
func (b *Broker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			b.shutdown()
			return
		case ev := <-b.queue:
			b.deliver(ev)
		}
	}
}

func (b *Broker) deliver(ev Event) {
	b.mu.RLock()
	subs := slices.Clone(b.subs)
	b.mu.RUnlock()

	for _, sub := range subs {
		if err := sub.Send(ev); err != nil {
			b.logger.Warn().Err(err).
				Str("event_type", string(ev.Type)).
				Uint64("seq", ev.Seq).
				Msg("Subscriber rejected event")
		}
	}
}

func (b *Broker) shutdown() {
	b.mu.Lock()
	subs := b.subs
	b.subs = nil
	b.closed = true
	b.mu.Unlock()

	for _, sub := range subs {
		_ = sub.Close()
	}
	b.logger.Debug().Int("subscribers", len(subs)).Msg("Event broker stopped")
}

// Publish queues an event. When the queue is full the event is dropped.
func (b *Broker) Publish(eventType EventType, data any) {
	ev := Event{Seq: b.seq.Add(1), Type: eventType, Timestamp: b.now(), Data: data}
	select {
	case b.queue <- ev:
	default:
		b.logger.Warn().
			Str("event_type", string(eventType)).
			Uint64("seq", ev.Seq).
			Msg("Event queue full, event dropped")
	}
}

// Notify implements notify.Notifier.
func (b *Broker) Notify(_ context.Context, n notify.Notice) {
	b.Publish(NoticePosted, n)
}

// Subscribe adds sub. After shutdown, sub is closed immediately.
func (b *Broker) Subscribe(sub Subscriber) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		_ = sub.Close()
		return
	}
	b.subs = append(b.subs, sub)
	n := len(b.subs)
	b.mu.Unlock()
	b.logger.Debug().Int("subscribers", n).Msg("Subscriber added")
}

// Unsubscribe removes and closes sub. Unknown subscribers are ignored.
func (b *Broker) Unsubscribe(sub Subscriber) {
	b.mu.Lock()
	i := slices.Index(b.subs, sub)
	if i < 0 {
		b.mu.Unlock()
		return
	}
	b.subs = slices.Delete(b.subs, i, i+1)
	b.mu.Unlock()
	_ = sub.Close()
}

// SubscriberCount returns the current number of subscribers.
func (b *Broker) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

var _ notify.Notifier = (*Broker)(nil)
