package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/mwangikib/dukapos-api/internal/config"
	"github.com/mwangikib/dukapos-api/internal/domain/entity"
	"github.com/segmentio/kafka-go"
)

// EventType represents the type of order event.
type EventType string

const (
	EventTypeOrderCreated   EventType = "order.created"
	EventTypeOrderHeld      EventType = "order.held"
	EventTypeOrderCancelled EventType = "order.cancelled"
	EventTypeOrderRefunded  EventType = "order.refunded"
)

// OrderEvent represents an order-related event published to downstream
// consumers (accounting, stock replenishment, loyalty campaigns).
type OrderEvent struct {
	ID        string          `json:"id"`
	Type      EventType       `json:"type"`
	OrderID   string          `json:"order_id"`
	StoreID   string          `json:"store_id"`
	InvoiceNo string          `json:"invoice_no"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// Publisher publishes order lifecycle events.
type Publisher interface {
	PublishOrderCreated(ctx context.Context, order *entity.Order) error
	PublishOrderCancelled(ctx context.Context, order *entity.Order, reason string) error
	PublishOrderRefunded(ctx context.Context, order *entity.Order) error
	Close() error
}

// KafkaPublisher publishes order events to Kafka.
type KafkaPublisher struct {
	writer *kafka.Writer
	topic  string
}

// NewKafkaPublisher creates a new Kafka-based event publisher.
func NewKafkaPublisher(cfg *config.KafkaConfig) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.OrdersTopic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
	}

	return &KafkaPublisher{
		writer: writer,
		topic:  cfg.OrdersTopic,
	}
}

// PublishOrderCreated publishes an order created event.
func (p *KafkaPublisher) PublishOrderCreated(ctx context.Context, order *entity.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return err
	}
	return p.publish(ctx, newEvent(EventTypeOrderCreated, order, data))
}

// PublishOrderCancelled publishes an order cancellation event.
func (p *KafkaPublisher) PublishOrderCancelled(ctx context.Context, order *entity.Order, reason string) error {
	payload := struct {
		Order  *entity.Order `json:"order"`
		Reason string        `json:"reason"`
	}{
		Order:  order,
		Reason: reason,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return p.publish(ctx, newEvent(EventTypeOrderCancelled, order, data))
}

// PublishOrderRefunded publishes an order refund event.
func (p *KafkaPublisher) PublishOrderRefunded(ctx context.Context, order *entity.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return err
	}
	return p.publish(ctx, newEvent(EventTypeOrderRefunded, order, data))
}

func newEvent(eventType EventType, order *entity.Order, data []byte) *OrderEvent {
	return &OrderEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		OrderID:   order.ID.String(),
		StoreID:   order.StoreID.String(),
		InvoiceNo: order.InvoiceNo,
		Data:      data,
		Timestamp: time.Now(),
	}
}

func (p *KafkaPublisher) publish(ctx context.Context, event *OrderEvent) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.OrderID),
		Value: eventData,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "event_id", Value: []byte(event.ID)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		log.Printf("failed to publish %s event for order %s: %v", event.Type, event.OrderID, err)
		return err
	}

	return nil
}

// Close closes the Kafka writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher is used when Kafka is not configured.
type NoopPublisher struct{}

// NewNoopPublisher creates a publisher that drops all events.
func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

func (NoopPublisher) PublishOrderCreated(ctx context.Context, order *entity.Order) error {
	return nil
}

func (NoopPublisher) PublishOrderCancelled(ctx context.Context, order *entity.Order, reason string) error {
	return nil
}

func (NoopPublisher) PublishOrderRefunded(ctx context.Context, order *entity.Order) error {
	return nil
}

func (NoopPublisher) Close() error {
	return nil
}
