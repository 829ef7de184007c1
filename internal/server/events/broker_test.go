package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/signlib/pkg/notify"
)

type mockSubscriber struct {
	mu     sync.Mutex
	events []Event
	closed bool
}

func (m *mockSubscriber) Send(event Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *mockSubscriber) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockSubscriber) received() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Event(nil), m.events...)
}

func (m *mockSubscriber) isClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func runBroker(t *testing.T) (*Broker, context.CancelFunc) {
	t.Helper()
	logger := zerolog.Nop()
	b := NewBroker(&logger)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go b.Run(ctx)
	return b, cancel
}

func TestBrokerPublish(t *testing.T) {
	b, _ := runBroker(t)
	sub := &mockSubscriber{}
	b.Subscribe(sub)
	require.Eventually(t, func() bool { return b.SubscriberCount() == 1 }, time.Second, 5*time.Millisecond)

	b.Publish(CatalogChanged, map[string]any{"revision": 1})
	b.Publish(CatalogChanged, map[string]any{"revision": 2})

	require.Eventually(t, func() bool { return len(sub.received()) == 2 }, time.Second, 5*time.Millisecond)
	got := sub.received()
	assert.Equal(t, CatalogChanged, got[0].Type)
	assert.Equal(t, 1, got[0].Data.(map[string]any)["revision"])
	assert.Equal(t, 2, got[1].Data.(map[string]any)["revision"])
}

func TestBrokerNotify(t *testing.T) {
	b, _ := runBroker(t)
	sub := &mockSubscriber{}
	b.Subscribe(sub)

	b.Notify(context.Background(), notify.Notice{Level: notify.LevelWarn, Message: "careful"})

	require.Eventually(t, func() bool { return len(sub.received()) == 1 }, time.Second, 5*time.Millisecond)
	ev := sub.received()[0]
	assert.Equal(t, NoticePosted, ev.Type)
	assert.Equal(t, "careful", ev.Data.(notify.Notice).Message)
}

func TestBrokerUnsubscribe(t *testing.T) {
	b, _ := runBroker(t)
	sub := &mockSubscriber{}
	b.Subscribe(sub)
	require.Eventually(t, func() bool { return b.SubscriberCount() == 1 }, time.Second, 5*time.Millisecond)

	b.Unsubscribe(sub)
	require.Eventually(t, func() bool { return b.SubscriberCount() == 0 }, time.Second, 5*time.Millisecond)
	assert.True(t, sub.isClosed())
}

func TestBrokerShutdown(t *testing.T) {
	b, cancel := runBroker(t)
	sub1, sub2 := &mockSubscriber{}, &mockSubscriber{}
	b.Subscribe(sub1)
	b.Subscribe(sub2)
	require.Eventually(t, func() bool { return b.SubscriberCount() == 2 }, time.Second, 5*time.Millisecond)

	cancel()
	require.Eventually(t, func() bool { return b.SubscriberCount() == 0 }, time.Second, 5*time.Millisecond)
	assert.True(t, sub1.isClosed())
	assert.True(t, sub2.isClosed())
}

func TestBrokerSubscribeBeforeRun(t *testing.T) {
	logger := zerolog.Nop()
	b := NewBroker(&logger)

	done := make(chan struct{})
	go func() {
		for range 5 {
			b.Subscribe(&mockSubscriber{})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Subscribe blocked before Run")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Run(ctx)
	require.Eventually(t, func() bool { return b.SubscriberCount() == 5 }, time.Second, 5*time.Millisecond)
}

func TestBrokerPublishFullQueue(t *testing.T) {
	logger := zerolog.Nop()
	b := NewBroker(&logger)

	// Nothing drains the queue; extra events are dropped without blocking.
	for range cap(b.queue) + 10 {
		b.Publish(CatalogChanged, nil)
	}
	assert.Len(t, b.queue, cap(b.queue))
}

func TestBrokerSequence(t *testing.T) {
	b, _ := runBroker(t)
	var (
		mu   sync.Mutex
		seqs []uint64
	)
	fn := SubscriberFunc(func(e Event) error {
		mu.Lock()
		defer mu.Unlock()
		seqs = append(seqs, e.Seq)
		return nil
	})
	b.Subscribe(fn)

	for range 3 {
		b.Publish(CatalogChanged, nil)
	}
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seqs) == 3
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []uint64{1, 2, 3}, seqs)

	b.Unsubscribe(fn)
	assert.Zero(t, b.SubscriberCount())
}

func TestBrokerSubscribeAfterShutdown(t *testing.T) {
	b, cancel := runBroker(t)
	cancel()
	require.Eventually(t, func() bool {
		b.mu.RLock()
		defer b.mu.RUnlock()
		return b.closed
	}, time.Second, 5*time.Millisecond)

	late := &mockSubscriber{}
	b.Subscribe(late)
	assert.True(t, late.isClosed())
	assert.Zero(t, b.SubscriberCount())
}
