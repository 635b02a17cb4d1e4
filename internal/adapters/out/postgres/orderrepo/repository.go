package orderrepo

import (
	"context"
	"errors"

	"fulfillment/internal/adapters/out/postgres/dberr"
	"fulfillment/internal/adapters/out/postgres/dbscope"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// conn binds the connection to ctx, bounded by the owning unit of work.
func (r *GormOrderRepository) conn(ctx context.Context) (*gorm.DB, context.CancelFunc) {
	return dbscope.Bind(ctx, r.db, r.tracker)
}

// Add saves a new order and its items.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := db.Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictError("order", aggregate.ID().String())
		}
		return dberr.Wrap(err)
	}

	aggregate.MarkPersisted()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the mutable columns of the order. The statement only matches
// while the stored status equals the status the aggregate was read with.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := db.Model(&OrderDTO{}).
		Where("id = ? AND status = ?", dto.ID, aggregate.PersistedStatus().String()).
		Select("status", "payment_status", "assigned_to", "assigned_at", "delivered_at", "updated_at").
		Updates(&dto)
	if result.Error != nil {
		return dberr.Wrap(result.Error)
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&OrderDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return dberr.Wrap(err)
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("order", aggregate.ID().String())
		}
		return errs.NewConflictError("order", aggregate.ID().String())
	}

	aggregate.MarkPersisted()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, id)
}

// GetForUpdate locks the order row with SELECT ... FOR UPDATE. Without a
// surrounding transaction the lock is released immediately.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, id, clause.Locking{Strength: "UPDATE"})
}

// CountActiveByAssignee counts the orders assigned to courierID that are not
// delivered or cancelled yet.
func (r *GormOrderRepository) CountActiveByAssignee(ctx context.Context, courierID kernel.UUID) (int64, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	if err := courierID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	if err := db.Model(&OrderDTO{}).
		Where("assigned_to = ? AND status NOT IN ?", courierID.Bytes(),
			[]string{order.Delivered.String(), order.Cancelled.String()}).
		Count(&count).Error; err != nil {
		return 0, dberr.Wrap(err)
	}
	return count, nil
}

func (r *GormOrderRepository) get(ctx context.Context, id kernel.UUID, locking ...clause.Expression) (*order.Order, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := db.Clauses(locking...).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, dberr.Wrap(err)
	}

	if err := db.Where("order_id = ?", dto.ID).Order("position").Find(&dto.Items).Error; err != nil {
		return nil, dberr.Wrap(err)
	}

	return toDomain(dto)
}
