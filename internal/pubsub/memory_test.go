package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receiveEvent(t *testing.T, sub Subscription) Event {
	t.Helper()
	select {
	case ev := <-sub.Events():
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()
	defer bus.Close()
	ctx := context.Background()

	sub, err := bus.Subscribe(ctx, "topic-a")
	require.NoError(t, err)
	defer sub.Close()

	require.NoError(t, bus.Publish(ctx, "topic-a", []byte(`{"n":1}`)))

	ev := receiveEvent(t, sub)
	assert.Equal(t, "topic-a", ev.Topic)
	assert.JSONEq(t, `{"n":1}`, string(ev.Payload))
}

func TestMemoryBus_TopicIsolation(t *testing.T) {
	bus := NewMemoryBus()
	defer bus.Close()
	ctx := context.Background()

	subA, err := bus.Subscribe(ctx, "topic-a")
	require.NoError(t, err)
	defer subA.Close()

	subB, err := bus.Subscribe(ctx, "topic-b")
	require.NoError(t, err)
	defer subB.Close()

	require.NoError(t, bus.Publish(ctx, "topic-a", []byte("a")))

	ev := receiveEvent(t, subA)
	assert.Equal(t, "topic-a", ev.Topic)

	select {
	case ev := <-subB.Events():
		t.Fatalf("subscriber of topic-b received %q", ev.Topic)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMemoryBus_FanOut(t *testing.T) {
	bus := NewMemoryBus()
	defer bus.Close()
	ctx := context.Background()

	sub1, err := bus.Subscribe(ctx, "topic-a")
	require.NoError(t, err)
	defer sub1.Close()

	sub2, err := bus.Subscribe(ctx, "topic-a")
	require.NoError(t, err)
	defer sub2.Close()

	require.NoError(t, bus.Publish(ctx, "topic-a", []byte("hello")))

	assert.Equal(t, "hello", string(receiveEvent(t, sub1).Payload))
	assert.Equal(t, "hello", string(receiveEvent(t, sub2).Payload))
}

func TestMemoryBus_Ordering(t *testing.T) {
	bus := NewMemoryBus()
	defer bus.Close()
	ctx := context.Background()

	sub, err := bus.Subscribe(ctx, "topic-a")
	require.NoError(t, err)
	defer sub.Close()

	require.NoError(t, bus.Publish(ctx, "topic-a", []byte("1")))
	require.NoError(t, bus.Publish(ctx, "topic-a", []byte("2")))
	require.NoError(t, bus.Publish(ctx, "topic-a", []byte("3")))

	assert.Equal(t, "1", string(receiveEvent(t, sub).Payload))
	assert.Equal(t, "2", string(receiveEvent(t, sub).Payload))
	assert.Equal(t, "3", string(receiveEvent(t, sub).Payload))
}

func TestMemoryBus_ClosedSubscriberStopsReceiving(t *testing.T) {
	bus := NewMemoryBus()
	defer bus.Close()
	ctx := context.Background()

	sub, err := bus.Subscribe(ctx, "topic-a")
	require.NoError(t, err)

	require.NoError(t, sub.Close())
	require.NoError(t, bus.Publish(ctx, "topic-a", []byte("late")))

	// Channel is closed; reads return immediately with no events.
	_, ok := <-sub.Events()
	assert.False(t, ok)
}

func TestMemoryBus_CloseIdempotent(t *testing.T) {
	bus := NewMemoryBus()
	ctx := context.Background()

	sub, err := bus.Subscribe(ctx, "topic-a")
	require.NoError(t, err)

	require.NoError(t, sub.Close())
	require.NoError(t, sub.Close())
	require.NoError(t, bus.Close())
	require.NoError(t, bus.Close())
}

func TestMemoryBus_MultiTopicSubscription(t *testing.T) {
	bus := NewMemoryBus()
	defer bus.Close()
	ctx := context.Background()

	sub, err := bus.Subscribe(ctx, "topic-a", "topic-b")
	require.NoError(t, err)
	defer sub.Close()

	require.NoError(t, bus.Publish(ctx, "topic-a", []byte("a")))
	require.NoError(t, bus.Publish(ctx, "topic-b", []byte("b")))

	first := receiveEvent(t, sub)
	second := receiveEvent(t, sub)
	assert.ElementsMatch(t, []string{"topic-a", "topic-b"}, []string{first.Topic, second.Topic})
}
