package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/kernel"
)

// CartStorage persists the cart of each user between requests.
type CartStorage interface {
	// Load returns the stored lines of userID's cart. A missing cart yields
	// no lines and no error.
	Load(ctx context.Context, userID kernel.UUID) ([]cart.Line, error)
	Save(ctx context.Context, userID kernel.UUID, lines []cart.Line) error
	Delete(ctx context.Context, userID kernel.UUID) error
}
