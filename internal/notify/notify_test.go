package notify

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNotifier(t *testing.T) *RedisNotifier {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisNotifier(client)
}

func TestRedisNotifier_PublishSubscribe(t *testing.T) {
	n := newNotifier(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, closeSub, err := n.Subscribe(ctx, 7)
	require.NoError(t, err)
	defer closeSub()

	// another restaurant's change must not show up
	require.NoError(t, n.Publish(ctx, 8, Change{Topic: TopicProducts, ID: 1}))
	require.NoError(t, n.Publish(ctx, 7, Change{Topic: TopicOrders, ID: 42}))

	select {
	case change := <-changes:
		assert.Equal(t, TopicOrders, change.Topic)
		assert.Equal(t, uint(42), change.ID)
		assert.False(t, change.At.IsZero())
	case <-time.After(2 * time.Second):
		t.Fatal("no change received")
	}
}

func TestRedisNotifier_ClosesOnCancel(t *testing.T) {
	n := newNotifier(t)
	ctx, cancel := context.WithCancel(context.Background())

	changes, closeSub, err := n.Subscribe(ctx, 1)
	require.NoError(t, err)
	defer closeSub()

	cancel()
	select {
	case _, ok := <-changes:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed")
	}
}

func TestNotify_NilPublisher(t *testing.T) {
	assert.NotPanics(t, func() {
		Notify(context.Background(), nil, 1, TopicBank, 0)
	})
}
