package events

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"time"

	"restaurant-panel/internal/models"

	"github.com/segmentio/kafka-go"
)

const TypeStatusChanged = "order.status_changed"

// StatusChanged is what the ordering client listens for to update the customer.
type StatusChanged struct {
	Type         string             `json:"type"`
	OrderID      uint               `json:"order_id"`
	RestaurantID uint               `json:"restaurant_id"`
	From         models.OrderStatus `json:"from"`
	To           models.OrderStatus `json:"to"`
	At           time.Time          `json:"at"`
	// products whose stock was too low to be decremented on accept
	ShortProductIDs []uint `json:"short_product_ids,omitempty"`
}

type Publisher interface {
	PublishStatusChanged(ctx context.Context, msg StatusChanged) error
}

type KafkaPublisher struct {
	Writer *kafka.Writer
}

func NewKafkaPublisher(writer *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{Writer: writer}
}

func (p *KafkaPublisher) PublishStatusChanged(ctx context.Context, msg StatusChanged) error {
	m, err := encodeStatusChanged(msg)
	if err != nil {
		return err
	}
	return p.Writer.WriteMessages(ctx, m)
}

func encodeStatusChanged(msg StatusChanged) (kafka.Message, error) {
	msg.Type = TypeStatusChanged
	payload, err := json.Marshal(msg)
	if err != nil {
		return kafka.Message{}, err
	}
	// keyed by order so every change of one order lands on the same partition
	return kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(msg.OrderID), 10)),
		Value: payload,
	}, nil
}

// NopPublisher is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishStatusChanged(context.Context, StatusChanged) error { return nil }

func NewKafkaWriter(broker, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(broker),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
}

func NewKafkaReader(broker, topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{broker},
		Topic:   topic,
		GroupID: groupID,
	})
}

// Emit publishes and logs failures; the status change itself is already committed.
func Emit(ctx context.Context, p Publisher, msg StatusChanged) {
	if p == nil {
		return
	}
	if err := p.PublishStatusChanged(ctx, msg); err != nil {
		log.Printf("[WARN] status event for order %d not published: %v", msg.OrderID, err)
	}
}
