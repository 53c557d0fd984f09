package pubsub

import "context"

// Event is one published payload as received by a subscriber.
type Event struct {
	Topic   string
	Payload []byte
}

// Subscription is one live listener on a set of topics. Events() is closed
// when the subscription ends; a client that reconnects gets a fresh
// subscription and only sees new events.
type Subscription interface {
	Events() <-chan Event
	Close() error
}

// Bus is a topic-keyed publish/subscribe fan-out. Delivery is at-least-once
// per connected subscriber and FIFO per topic; nothing is buffered for
// disconnected subscribers.
type Bus interface {
	Publish(ctx context.Context, topic string, payload []byte) error
	Subscribe(ctx context.Context, topics ...string) (Subscription, error)
	Close() error
}
