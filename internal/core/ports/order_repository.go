package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a newly placed order together with its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists a changed order. The write is conditional on the stored
	// status still being aggregate.PersistedStatus(); a lost race returns a
	// ConflictError and leaves the row untouched.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and locks its row until the surrounding
	// transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// CountActiveByAssignee counts the orders assigned to a courier that have
	// not reached a terminal status.
	CountActiveByAssignee(ctx context.Context, courierID kernel.UUID) (int64, error)
}
