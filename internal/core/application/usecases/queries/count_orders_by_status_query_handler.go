package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

type CountOrdersByStatusQueryHandler struct {
	db      *gorm.DB
	policy  services.AccessPolicy
	timeout time.Duration
}

func NewCountOrdersByStatusQueryHandler(
	db *gorm.DB,
	policy services.AccessPolicy,
	timeout time.Duration,
) CountOrdersByStatusQueryHandler {
	return CountOrdersByStatusQueryHandler{db: db, policy: policy, timeout: timeout}
}

func (h CountOrdersByStatusQueryHandler) Handle(
	ctx context.Context,
	query CountOrdersByStatusQuery,
) ([]StatusCount, error) {
	ctx, cancel := boundRead(ctx, h.timeout)
	defer cancel()

	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.Precheck(query.actor, services.CountOrders); err != nil {
		return nil, err
	}

	filter, err := orderScope(h.policy, query.actor, services.CountOrders, query.regionID)
	if err != nil {
		return nil, err
	}
	filterStatuses(&filter, query.statuses)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT o.status, COUNT(*)
		FROM orders o
		`+filter.String()+`
		GROUP BY o.status
	`, filter.args...).Rows()
	if err != nil {
		return nil, errs.WrapDependency("postgres", err)
	}
	defer rows.Close()

	found := make(map[string]int64)
	for rows.Next() {
		var status string
		var count int64
		if err = rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		found[status] = count
	}
	if err = rows.Err(); err != nil {
		return nil, errs.WrapDependency("postgres", err)
	}

	counts := make([]StatusCount, 0, len(query.statuses))
	for _, status := range query.statuses {
		counts = append(counts, StatusCount{Status: status.String(), Count: found[status.String()]})
	}
	return counts, nil
}
