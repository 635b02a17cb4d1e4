package profilerepo

import (
	"context"
	"errors"

	"fulfillment/internal/adapters/out/postgres/dberr"
	"fulfillment/internal/adapters/out/postgres/dbscope"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/profile"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormProfileRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormProfileRepository(db *gorm.DB, tracker aggregateTracker) *GormProfileRepository {
	return &GormProfileRepository{
		db:      db,
		tracker: tracker,
	}
}

// conn binds the connection to ctx, bounded by the owning unit of work.
func (r *GormProfileRepository) conn(ctx context.Context) (*gorm.DB, context.CancelFunc) {
	return dbscope.Bind(ctx, r.db, r.tracker)
}

func (r *GormProfileRepository) Add(ctx context.Context, aggregate *profile.Profile) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := db.Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictError("profile", aggregate.ID().String())
		}
		return dberr.Wrap(err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update overwrites every mutable column, so clearing the region or the
// rejection reason is persisted too.
func (r *GormProfileRepository) Update(ctx context.Context, aggregate *profile.Profile) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := db.Model(&ProfileDTO{}).Where("id = ?", dto.ID).
		Select("*").Omit("id", "created_at").Updates(&dto)
	if result.Error != nil {
		return dberr.Wrap(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("profile", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormProfileRepository) Get(ctx context.Context, id kernel.UUID) (*profile.Profile, error) {
	return r.get(ctx, id)
}

// GetForUpdate locks the profile row with SELECT ... FOR UPDATE.
func (r *GormProfileRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*profile.Profile, error) {
	return r.get(ctx, id, clause.Locking{Strength: "UPDATE"})
}

func (r *GormProfileRepository) get(ctx context.Context, id kernel.UUID, locking ...clause.Expression) (*profile.Profile, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProfileDTO
	if err := db.Clauses(locking...).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("profile", id.String())
		}
		return nil, dberr.Wrap(err)
	}

	return toDomain(dto)
}
