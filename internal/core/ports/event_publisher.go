package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// EventPublisher delivers committed order events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...order.Event) error
}
