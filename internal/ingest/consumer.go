// Package ingest receives orders placed by the ordering client.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"restaurant-panel/internal/models"

	"github.com/segmentio/kafka-go"
)

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type OrderSink interface {
	Ingest(ctx context.Context, order *models.Order) error
}

type Alerter interface {
	NewOrder(ctx context.Context, order *models.Order) error
}

type Consumer struct {
	Reader  MessageReader
	Orders  OrderSink
	Alerter Alerter
}

func NewConsumer(reader MessageReader, orders OrderSink, alerter Alerter) *Consumer {
	return &Consumer{Reader: reader, Orders: orders, Alerter: alerter}
}

// Start reads until ctx is cancelled. Bad messages are logged and skipped so
// one malformed order cannot stall the topic.
func (c *Consumer) Start(ctx context.Context) {
	log.Println("Order ingestion consumer started")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Println("Order ingestion consumer stopped")
				return
			}
			log.Printf("[WARN] reading order message: %v", err)
			continue
		}

		if err := c.ProcessMessage(ctx, message); err != nil {
			log.Printf("[WARN] skipping order message at offset %d: %v", message.Offset, err)
		}
	}
}

func (c *Consumer) ProcessMessage(ctx context.Context, message kafka.Message) error {
	var order models.Order
	if err := json.Unmarshal(message.Value, &order); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if err := c.Orders.Ingest(ctx, &order); err != nil {
		return err
	}
	log.Printf("Order %d stored for restaurant %d", order.ID, order.RestaurantID)

	if c.Alerter != nil {
		if err := c.Alerter.NewOrder(ctx, &order); err != nil {
			log.Printf("[WARN] new order alert for order %d: %v", order.ID, err)
		}
	}
	return nil
}
