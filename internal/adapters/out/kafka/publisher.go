// Package kafka publishes committed order events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
)

// messageWriter is the part of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// EventMessage is the JSON body of every published record.
type EventMessage struct {
	Type          string    `json:"type"`
	OrderID       string    `json:"order_id"`
	RegionID      string    `json:"region_id"`
	ActorID       string    `json:"actor_id"`
	FromStatus    string    `json:"from_status,omitempty"`
	ToStatus      string    `json:"to_status,omitempty"`
	CourierID     *string   `json:"courier_id,omitempty"`
	PaymentStatus string    `json:"payment_status,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// OrderEventPublisher keys records by order id so that the events of one
// order stay in sequence on a single partition.
type OrderEventPublisher struct {
	writer messageWriter
}

func NewOrderEventPublisher(brokers []string, topic string) *OrderEventPublisher {
	return NewOrderEventPublisherWithWriter(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  10 * time.Second,
	})
}

func NewOrderEventPublisherWithWriter(writer messageWriter) *OrderEventPublisher {
	return &OrderEventPublisher{writer: writer}
}

func (p *OrderEventPublisher) Publish(ctx context.Context, events ...order.Event) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(events))
	for _, event := range events {
		value, err := json.Marshal(NewEventMessage(event))
		if err != nil {
			return err
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(event.OrderID.String()),
			Value: value,
			Time:  event.OccurredAt,
			Headers: []kafka.Header{
				{Key: "event_type", Value: []byte(event.Name)},
			},
		})
	}

	return errs.WrapDependency("kafka", p.writer.WriteMessages(ctx, msgs...))
}

func (p *OrderEventPublisher) Close() error {
	return p.writer.Close()
}

func NewEventMessage(event order.Event) EventMessage {
	msg := EventMessage{
		Type:       event.Name,
		OrderID:    event.OrderID.String(),
		RegionID:   event.RegionID.String(),
		ActorID:    event.ActorID.String(),
		OccurredAt: event.OccurredAt,
	}

	switch event.Name {
	case order.EventPlaced, order.EventStatusChanged:
		if event.FromStatus != order.Unknown {
			msg.FromStatus = event.FromStatus.String()
		}
		msg.ToStatus = event.ToStatus.String()
	case order.EventCourierAssigned:
		if event.Courier != nil {
			courier := event.Courier.String()
			msg.CourierID = &courier
		}
	case order.EventPaymentUpdated:
		msg.PaymentStatus = event.Payment.String()
	}
	return msg
}
