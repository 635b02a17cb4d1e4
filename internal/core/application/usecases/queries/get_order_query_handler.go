package queries

import (
	"context"
	"database/sql"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db      *gorm.DB
	policy  services.AccessPolicy
	timeout time.Duration
}

func NewGetOrderQueryHandler(
	db *gorm.DB,
	policy services.AccessPolicy,
	timeout time.Duration,
) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db, policy: policy, timeout: timeout}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	ctx, cancel := boundRead(ctx, h.timeout)
	defer cancel()

	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}
	if err := h.policy.Precheck(query.actor, services.ViewOrder); err != nil {
		return OrderView{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderSummaryColumns+`, o.delivered_at, o.delivery_lat, o.delivery_lng
		FROM orders o
		WHERE o.id = ?
	`, query.orderID.Bytes()).Rows()
	if err != nil {
		return OrderView{}, errs.WrapDependency("postgres", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return OrderView{}, errs.WrapDependency("postgres", err)
		}
		return OrderView{}, errs.NewObjectNotFoundError("order", query.orderID.String())
	}
	var deliveredAt sql.NullTime
	var lat, lng sql.NullFloat64
	summary, err := scanOrderSummary(rows, &deliveredAt, &lat, &lng)
	if err != nil {
		return OrderView{}, err
	}
	rows.Close()

	target := services.Target{RegionID: &summary.RegionID, OwnerID: &summary.UserID, AssigneeID: summary.AssignedTo}
	if err = h.policy.Authorize(query.actor, services.ViewOrder, target); err != nil {
		return OrderView{}, err
	}

	view := OrderView{OrderSummary: summary}
	if deliveredAt.Valid {
		view.DeliveredAt = &deliveredAt.Time
	}
	if lat.Valid && lng.Valid {
		loc, locErr := kernel.NewLocation(lat.Float64, lng.Float64)
		if locErr != nil {
			return OrderView{}, locErr
		}
		view.Delivery = &loc
	}

	if view.Items, err = h.items(ctx, query.orderID); err != nil {
		return OrderView{}, err
	}
	return view, nil
}

// items joins the catalog for display names. A product deleted from the
// catalog leaves the name empty.
func (h GetOrderQueryHandler) items(ctx context.Context, orderID kernel.UUID) ([]OrderItemView, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT i.product_id, COALESCE(p.name, ''), i.quantity, i.unit_price
		FROM order_items i
		LEFT JOIN products p ON p.id = i.product_id
		WHERE i.order_id = ?
		ORDER BY i.position
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, errs.WrapDependency("postgres", err)
	}
	defer rows.Close()

	items := make([]OrderItemView, 0)
	for rows.Next() {
		var item OrderItemView
		var productID uuid.UUID
		if err = rows.Scan(&productID, &item.ProductName, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}
		if item.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return nil, err
		}
		item.Total = item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.WrapDependency("postgres", err)
	}
	return items, nil
}
