// Package postgres implements the unit of work over GORM.
//
// Every unit of work owns at most one transaction. Repositories handed out
// after Begin run inside it; before Begin they use the plain connection.
// Order aggregates stored through the repositories are tracked, and the
// events they recorded are published once Commit succeeds:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
package postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fulfillment/internal/adapters/out/postgres/dberr"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/productrepo"
	"fulfillment/internal/adapters/out/postgres/profilerepo"
	"fulfillment/internal/adapters/out/postgres/regionrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"gorm.io/gorm"
)

type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// eventSource is implemented by aggregates that record order events.
type eventSource interface {
	Events() []order.Event
	ClearEvents()
}

type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	publisher ports.EventPublisher
	timeout   time.Duration
	logger    *slog.Logger
}

// NewGormUnitOfWorkFactory returns a factory whose transactions are bounded by
// timeout. A zero timeout leaves the caller's deadline alone.
func NewGormUnitOfWorkFactory(
	db *gorm.DB,
	publisher ports.EventPublisher,
	timeout time.Duration,
	logger *slog.Logger,
) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{
		db:        db,
		publisher: publisher,
		timeout:   timeout,
		logger:    logger.With("component", "unit_of_work"),
	}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		publisher:         f.publisher,
		timeout:           f.timeout,
		logger:            f.logger,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

type GormUnitOfWork struct {
	db        *gorm.DB
	tx        *gorm.DB
	txCtx     context.Context //nolint:containedctx // lives exactly as long as tx
	cancel    context.CancelFunc
	publisher ports.EventPublisher
	timeout   time.Duration
	logger    *slog.Logger

	trackedAggregates []trackedAggregate
}

// Begin opens the transaction. Calling it again while a transaction is open
// is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	txCtx, cancel := ctx, context.CancelFunc(func() {})
	if uow.timeout > 0 {
		txCtx, cancel = context.WithTimeout(ctx, uow.timeout)
	}

	tx := uow.db.WithContext(txCtx).Begin()
	if tx.Error != nil {
		cancel()
		return dberr.Wrap(tx.Error)
	}

	uow.tx = tx
	uow.txCtx = txCtx
	uow.cancel = cancel
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return nil
}

// Commit makes the changes durable and then publishes the tracked order
// events. A publishing failure is logged; the commit stands.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}
	defer uow.finish()

	if err := uow.txCtx.Err(); err != nil {
		_ = uow.tx.Rollback().Error
		return dberr.Wrap(err)
	}
	if err := uow.tx.Commit().Error; err != nil {
		return dberr.Wrap(errors.Join(err, uow.txCtx.Err()))
	}

	uow.publish(ctx)
	return nil
}

// Rollback discards the transaction. Rolling back after Commit returns
// gorm.ErrInvalidTransaction, which deferred callers ignore.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}
	defer uow.finish()

	uow.trackedAggregates = uow.trackedAggregates[:0]
	return uow.tx.Rollback().Error
}

func (uow *GormUnitOfWork) RegionRepository() ports.RegionRepository {
	return regionrepo.NewGormRegionRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) ProfileRepository() ports.ProfileRepository {
	return profilerepo.NewGormProfileRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) ProductRepository() ports.ProductRepository {
	return productrepo.NewGormProductRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// TrackAggregate is called by repositories for every stored aggregate.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// StatementContext bounds a single repository statement. Inside a transaction
// the statement shares the transaction deadline; outside of one it gets the
// store timeout of its own. A zero timeout leaves ctx alone.
func (uow *GormUnitOfWork) StatementContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if uow.txCtx != nil {
		if deadline, ok := uow.txCtx.Deadline(); ok {
			return context.WithDeadline(ctx, deadline)
		}
	}
	if uow.timeout > 0 {
		return context.WithTimeout(ctx, uow.timeout)
	}
	return ctx, func() {}
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) finish() {
	uow.cancel()
	uow.tx = nil
	uow.txCtx = nil
	uow.cancel = nil
}

func (uow *GormUnitOfWork) publish(ctx context.Context) {
	var events []order.Event
	seen := make(map[any]struct{}, len(uow.trackedAggregates))
	for _, tracked := range uow.trackedAggregates {
		source, ok := tracked.Aggregate.(eventSource)
		if !ok {
			continue
		}
		if _, dup := seen[source]; dup {
			continue
		}
		seen[source] = struct{}{}
		events = append(events, source.Events()...)
		source.ClearEvents()
	}
	uow.trackedAggregates = uow.trackedAggregates[:0]

	if len(events) == 0 || uow.publisher == nil {
		return
	}
	if err := uow.publisher.Publish(context.WithoutCancel(ctx), events...); err != nil {
		uow.logger.ErrorContext(ctx, "failed to publish order events",
			"count", len(events), "error", err)
	}
}
