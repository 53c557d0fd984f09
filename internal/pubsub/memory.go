package pubsub

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

const subscriberBuffer = 256

// MemoryBus is the in-process fan-out used in tests and when REDIS_URL is
// unset. Subscribers get a buffered channel; a full buffer drops the event
// rather than blocking the publisher.
type MemoryBus struct {
	mu     sync.RWMutex
	topics map[string]map[*memorySub]struct{}
	closed bool
}

type memorySub struct {
	bus    *MemoryBus
	topics []string
	events chan Event
	once   sync.Once
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		topics: make(map[string]map[*memorySub]struct{}),
	}
}

func (b *MemoryBus) Publish(_ context.Context, topic string, payload []byte) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for sub := range b.topics[topic] {
		select {
		case sub.events <- Event{Topic: topic, Payload: payload}:
		default:
			logrus.WithField("topic", topic).Warn("subscriber buffer full, dropping event")
		}
	}
	return nil
}

func (b *MemoryBus) Subscribe(_ context.Context, topics ...string) (Subscription, error) {
	sub := &memorySub{
		bus:    b,
		topics: topics,
		events: make(chan Event, subscriberBuffer),
	}

	b.mu.Lock()
	for _, topic := range topics {
		if b.topics[topic] == nil {
			b.topics[topic] = make(map[*memorySub]struct{})
		}
		b.topics[topic][sub] = struct{}{}
	}
	b.mu.Unlock()

	return sub, nil
}

func (b *MemoryBus) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	subs := make(map[*memorySub]struct{})
	for _, topicSubs := range b.topics {
		for sub := range topicSubs {
			subs[sub] = struct{}{}
		}
	}
	b.topics = make(map[string]map[*memorySub]struct{})
	b.mu.Unlock()

	for sub := range subs {
		sub.once.Do(func() { close(sub.events) })
	}
	return nil
}

func (s *memorySub) Events() <-chan Event {
	return s.events
}

func (s *memorySub) Close() error {
	s.bus.mu.Lock()
	for _, topic := range s.topics {
		if subs := s.bus.topics[topic]; subs != nil {
			delete(subs, s)
			if len(subs) == 0 {
				delete(s.bus.topics, topic)
			}
		}
	}
	s.bus.mu.Unlock()

	s.once.Do(func() { close(s.events) })
	return nil
}
