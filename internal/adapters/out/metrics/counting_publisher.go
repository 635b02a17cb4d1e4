package metrics

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// CountingPublisher counts events passing through to the next publisher.
type CountingPublisher struct {
	next    ports.EventPublisher
	metrics *Metrics
}

func NewCountingPublisher(next ports.EventPublisher, metrics *Metrics) *CountingPublisher {
	return &CountingPublisher{next: next, metrics: metrics}
}

func (p *CountingPublisher) Publish(ctx context.Context, events ...order.Event) error {
	err := p.next.Publish(ctx, events...)

	counter := p.metrics.events
	if err != nil {
		counter = p.metrics.publishFailures
	}
	for _, event := range events {
		counter.WithLabelValues(event.Name).Inc()
	}
	return err
}

// DiscardPublisher drops every event. It stands in when Kafka is disabled.
type DiscardPublisher struct{}

func (DiscardPublisher) Publish(context.Context, ...order.Event) error {
	return nil
}
