package order

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

const (
	EventPlaced          = "order.placed"
	EventStatusChanged   = "order.status_changed"
	EventCourierAssigned = "order.courier_assigned"
	EventPaymentUpdated  = "order.payment_updated"
)

// Event is a change accepted by the aggregate, published after commit.
type Event struct {
	Name       string
	OrderID    kernel.UUID
	RegionID   kernel.UUID
	ActorID    kernel.UUID
	FromStatus Status
	ToStatus   Status
	Courier    *kernel.UUID
	Payment    PaymentStatus
	OccurredAt time.Time
}
