package regionrepo

import (
	"context"
	"errors"

	"fulfillment/internal/adapters/out/postgres/dberr"
	"fulfillment/internal/adapters/out/postgres/dbscope"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/region"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormRegionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormRegionRepository(db *gorm.DB, tracker aggregateTracker) *GormRegionRepository {
	return &GormRegionRepository{
		db:      db,
		tracker: tracker,
	}
}

// conn binds the connection to ctx, bounded by the owning unit of work.
func (r *GormRegionRepository) conn(ctx context.Context) (*gorm.DB, context.CancelFunc) {
	return dbscope.Bind(ctx, r.db, r.tracker)
}

// Add stores a new region. A duplicated code is reported as a conflict.
func (r *GormRegionRepository) Add(ctx context.Context, aggregate *region.Region) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := db.Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictError("region", aggregate.Code())
		}
		return dberr.Wrap(err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormRegionRepository) Update(ctx context.Context, aggregate *region.Region) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := db.Model(&RegionDTO{}).Where("id = ?", dto.ID).
		Select("name", "code", "is_active").Updates(&dto)
	if result.Error != nil {
		return dberr.Wrap(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("region", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormRegionRepository) Get(ctx context.Context, id kernel.UUID) (*region.Region, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RegionDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("region", id.String())
		}
		return nil, dberr.Wrap(err)
	}

	return toDomain(dto)
}
