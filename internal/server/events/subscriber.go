package events

// Subscriber adapts the event stream to a transport.
type Subscriber interface {
	// Send delivers an event. Implementations must not block.
	Send(Event) error

	// Close shuts the subscriber down.
	Close() error
}

type funcSubscriber struct {
	send func(Event) error
}

func (f *funcSubscriber) Send(e Event) error { return f.send(e) }
func (f *funcSubscriber) Close() error       { return nil }

// SubscriberFunc wraps send as a Subscriber whose Close does nothing.
func SubscriberFunc(send func(Event) error) Subscriber {
	return &funcSubscriber{send: send}
}
