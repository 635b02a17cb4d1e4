package queries

import (
	"context"
	"database/sql"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/profile"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const orderSummaryColumns = `o.id, o.user_id, o.region_id, o.status, o.payment_status,
	o.assigned_to, o.assigned_at, o.total,
	(SELECT COUNT(*) FROM order_items i WHERE i.order_id = o.id),
	o.created_at, o.updated_at`

type ListOrdersQueryHandler struct {
	db      *gorm.DB
	policy  services.AccessPolicy
	timeout time.Duration
}

func NewListOrdersQueryHandler(
	db *gorm.DB,
	policy services.AccessPolicy,
	timeout time.Duration,
) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db, policy: policy, timeout: timeout}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderSummary, error) {
	ctx, cancel := boundRead(ctx, h.timeout)
	defer cancel()

	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.Precheck(query.actor, services.ListOrders); err != nil {
		return nil, err
	}

	filter, err := orderScope(h.policy, query.actor, services.ListOrders, query.regionID)
	if err != nil {
		return nil, err
	}
	filterStatuses(&filter, query.statuses)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderSummaryColumns+`
		FROM orders o
		`+filter.String()+`
		ORDER BY o.created_at DESC, o.id
		LIMIT ? OFFSET ?
	`, append(filter.args, query.limit, query.offset)...).Rows()
	if err != nil {
		return nil, errs.WrapDependency("postgres", err)
	}
	defer rows.Close()

	summaries := make([]OrderSummary, 0)
	for rows.Next() {
		summary, scanErr := scanOrderSummary(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.WrapDependency("postgres", err)
	}
	return summaries, nil
}

// orderScope narrows an order read to what the actor may see: customers
// their own orders, couriers the orders assigned to them and admins a region.
func orderScope(
	policy services.AccessPolicy,
	actor profile.Actor,
	action services.Action,
	requested *kernel.UUID,
) (where, error) {
	var filter where
	switch a := actor.(type) {
	case profile.Admin:
		regionID, err := adminRegion(policy, a, action, requested)
		if err != nil {
			return where{}, err
		}
		if regionID != nil {
			filter.add("o.region_id = ?", regionID.Bytes())
		}
		return filter, nil
	case profile.Customer:
		filter.add("o.user_id = ?", a.ID.Bytes())
	case profile.Logistics:
		filter.add("o.assigned_to = ?", a.ID.Bytes())
	}
	if requested != nil {
		filter.add("o.region_id = ?", requested.Bytes())
	}
	return filter, nil
}

func filterStatuses(filter *where, statuses []order.Status) {
	if len(statuses) == 0 {
		return
	}
	names := make([]string, 0, len(statuses))
	for _, status := range statuses {
		names = append(names, status.String())
	}
	filter.add("o.status IN ?", names)
}

// scanOrderSummary reads orderSummaryColumns followed by extra destinations.
func scanOrderSummary(rows *sql.Rows, extra ...any) (OrderSummary, error) {
	var summary OrderSummary
	var id, userID, regionID uuid.UUID
	var assignedTo uuid.NullUUID
	var assignedAt sql.NullTime

	dest := []any{&id, &userID, &regionID, &summary.Status, &summary.PaymentStatus,
		&assignedTo, &assignedAt, &summary.Total, &summary.ItemCount,
		&summary.CreatedAt, &summary.UpdatedAt}
	if err := rows.Scan(append(dest, extra...)...); err != nil {
		return OrderSummary{}, err
	}

	var err error
	if summary.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return OrderSummary{}, err
	}
	if summary.UserID, err = kernel.UUIDFromBytes(userID[:]); err != nil {
		return OrderSummary{}, err
	}
	if summary.RegionID, err = kernel.UUIDFromBytes(regionID[:]); err != nil {
		return OrderSummary{}, err
	}
	if summary.AssignedTo, err = optionalUUID(assignedTo); err != nil {
		return OrderSummary{}, err
	}
	if assignedAt.Valid {
		summary.AssignedAt = &assignedAt.Time
	}
	return summary, nil
}
