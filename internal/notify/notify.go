// Package notify tells open panels that a collection changed so they can
// fetch it again. Payloads never carry the documents themselves.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

type Topic string

const (
	TopicOrders   Topic = "orders"
	TopicProducts Topic = "products"
	TopicBank     Topic = "bank"
)

type Change struct {
	Topic Topic     `json:"topic"`
	ID    uint      `json:"id,omitempty"`
	At    time.Time `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, restaurantID uint, change Change) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, restaurantID uint) (<-chan Change, func() error, error)
}

func channel(restaurantID uint) string {
	return fmt.Sprintf("panel:%d", restaurantID)
}

// RedisNotifier fans changes out over Redis pub/sub, one channel per restaurant.
type RedisNotifier struct {
	Client *redis.Client
}

func NewRedisNotifier(client *redis.Client) *RedisNotifier {
	return &RedisNotifier{Client: client}
}

func (n *RedisNotifier) Publish(ctx context.Context, restaurantID uint, change Change) error {
	if change.At.IsZero() {
		change.At = time.Now()
	}
	payload, err := json.Marshal(change)
	if err != nil {
		return err
	}
	return n.Client.Publish(ctx, channel(restaurantID), payload).Err()
}

// Subscribe returns a channel of changes for one restaurant. The channel is
// closed when ctx is done or the returned close function is called.
func (n *RedisNotifier) Subscribe(ctx context.Context, restaurantID uint) (<-chan Change, func() error, error) {
	pubsub := n.Client.Subscribe(ctx, channel(restaurantID))
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, err
	}

	out := make(chan Change, 16)
	go func() {
		defer close(out)
		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				var change Change
				if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
					log.Printf("[WARN] dropping malformed change on %s: %v", msg.Channel, err)
					continue
				}
				select {
				case out <- change:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, pubsub.Close, nil
}

// Notify publishes and only logs failures; a missed notification just means
// the panel refreshes later.
func Notify(ctx context.Context, p Publisher, restaurantID uint, topic Topic, id uint) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, restaurantID, Change{Topic: topic, ID: id, At: time.Now()}); err != nil {
		log.Printf("[WARN] change notification %s/%d for restaurant %d failed: %v", topic, id, restaurantID, err)
	}
}
