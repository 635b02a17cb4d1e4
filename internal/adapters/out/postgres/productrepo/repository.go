package productrepo

import (
	"context"
	"errors"

	"fulfillment/internal/adapters/out/postgres/dberr"
	"fulfillment/internal/adapters/out/postgres/dbscope"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormProductRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormProductRepository(db *gorm.DB, tracker aggregateTracker) *GormProductRepository {
	return &GormProductRepository{
		db:      db,
		tracker: tracker,
	}
}

// conn binds the connection to ctx, bounded by the owning unit of work.
func (r *GormProductRepository) conn(ctx context.Context) (*gorm.DB, context.CancelFunc) {
	return dbscope.Bind(ctx, r.db, r.tracker)
}

func (r *GormProductRepository) Add(ctx context.Context, aggregate *product.Product) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := db.Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictError("product", aggregate.ID().String())
		}
		return dberr.Wrap(err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormProductRepository) Update(ctx context.Context, aggregate *product.Product) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := db.Model(&ProductDTO{}).Where("id = ?", dto.ID).
		Select("*").Omit("id", "region_id", "created_at").Updates(&dto)
	if result.Error != nil {
		return dberr.Wrap(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("product", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProductDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("product", id.String())
		}
		return nil, dberr.Wrap(err)
	}

	return toDomain(dto)
}

// GetMany loads products in one round trip. The result follows the order of
// ids; the first unknown id fails the whole call.
func (r *GormProductRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*product.Product, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	if len(ids) == 0 {
		return []*product.Product{}, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []ProductDTO
	if err := db.Where("id IN ?", raw).Find(&dtos).Error; err != nil {
		return nil, dberr.Wrap(err)
	}

	byID := make(map[uuid.UUID]ProductDTO, len(dtos))
	for _, dto := range dtos {
		byID[dto.ID] = dto
	}

	products := make([]*product.Product, 0, len(ids))
	for _, id := range ids {
		dto, ok := byID[id.Bytes()]
		if !ok {
			return nil, errs.NewObjectNotFoundError("product", id.String())
		}
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, nil
}
