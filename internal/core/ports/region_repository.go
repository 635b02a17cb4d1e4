package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/region"
)

// RegionRepository defines the persistence contract for delivery regions.
type RegionRepository interface {
	Add(ctx context.Context, aggregate *region.Region) error
	Update(ctx context.Context, aggregate *region.Region) error
	Get(ctx context.Context, id kernel.UUID) (*region.Region, error)
}
