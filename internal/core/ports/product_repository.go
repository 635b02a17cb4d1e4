package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
)

// ProductRepository defines the persistence contract for catalog products.
type ProductRepository interface {
	Add(ctx context.Context, aggregate *product.Product) error
	Update(ctx context.Context, aggregate *product.Product) error
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// GetMany returns the products with the given ids. Unknown ids are
	// reported as ObjectNotFoundError.
	GetMany(ctx context.Context, ids []kernel.UUID) ([]*product.Product, error)
}
