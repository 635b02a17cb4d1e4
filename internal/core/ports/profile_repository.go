package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/profile"
)

// ProfileRepository defines the persistence contract for user profiles.
type ProfileRepository interface {
	Add(ctx context.Context, aggregate *profile.Profile) error
	Update(ctx context.Context, aggregate *profile.Profile) error
	Get(ctx context.Context, id kernel.UUID) (*profile.Profile, error)

	// GetForUpdate retrieves a profile and locks its row until the surrounding
	// transaction ends. Role changes and courier assignments take this lock so
	// a courier cannot be demoted while an order is being assigned to them.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*profile.Profile, error)
}
