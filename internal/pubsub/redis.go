package pubsub

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
)

// RedisBus fans events out through Redis channels, so multiple API
// processes see each other's publishes.
type RedisBus struct {
	client *redis.Client
}

type redisSub struct {
	pubsub *redis.PubSub
	events chan Event
	done   chan struct{}
	once   sync.Once
}

func NewRedisBus(client *redis.Client) *RedisBus {
	return &RedisBus{client: client}
}

func (b *RedisBus) Publish(ctx context.Context, topic string, payload []byte) error {
	return b.client.Publish(ctx, topic, payload).Err()
}

func (b *RedisBus) Subscribe(ctx context.Context, topics ...string) (Subscription, error) {
	ps := b.client.Subscribe(ctx, topics...)

	// Force the subscription to be established before returning, so a
	// publish immediately after Subscribe is not lost.
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, err
	}

	sub := &redisSub{
		pubsub: ps,
		events: make(chan Event, subscriberBuffer),
		done:   make(chan struct{}),
	}
	go sub.pump()

	return sub, nil
}

func (b *RedisBus) Close() error {
	return b.client.Close()
}

func (s *redisSub) pump() {
	defer close(s.events)
	ch := s.pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			select {
			case s.events <- Event{Topic: msg.Channel, Payload: []byte(msg.Payload)}:
			case <-s.done:
				return
			}
		case <-s.done:
			return
		}
	}
}

func (s *redisSub) Events() <-chan Event {
	return s.events
}

func (s *redisSub) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		err = s.pubsub.Close()
	})
	return err
}
