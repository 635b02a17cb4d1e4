package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RegionStatusTotal is the number of orders of a region in one status.
type RegionStatusTotal struct {
	RegionID   kernel.UUID
	RegionCode string
	Status     string
	Count      int64
}

// GetOrderStatusTotalsQueryHandler is the unauthenticated system read behind
// the order status gauges. It is not exposed over HTTP.
type GetOrderStatusTotalsQueryHandler struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewGetOrderStatusTotalsQueryHandler(
	db *gorm.DB,
	timeout time.Duration,
) GetOrderStatusTotalsQueryHandler {
	return GetOrderStatusTotalsQueryHandler{db: db, timeout: timeout}
}

func (h GetOrderStatusTotalsQueryHandler) Handle(ctx context.Context) ([]RegionStatusTotal, error) {
	ctx, cancel := boundRead(ctx, h.timeout)
	defer cancel()

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT r.id, r.code, o.status, COUNT(*)
		FROM orders o
		JOIN regions r ON r.id = o.region_id
		GROUP BY r.id, r.code, o.status
		ORDER BY r.code, o.status
	`).Rows()
	if err != nil {
		return nil, errs.WrapDependency("postgres", err)
	}
	defer rows.Close()

	totals := make([]RegionStatusTotal, 0)
	for rows.Next() {
		var total RegionStatusTotal
		var regionID uuid.UUID
		if err = rows.Scan(&regionID, &total.RegionCode, &total.Status, &total.Count); err != nil {
			return nil, err
		}
		if total.RegionID, err = kernel.UUIDFromBytes(regionID[:]); err != nil {
			return nil, err
		}
		totals = append(totals, total)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.WrapDependency("postgres", err)
	}
	return totals, nil
}
