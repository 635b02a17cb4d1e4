package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/profile"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListRegionsQueryHandler struct {
	db      *gorm.DB
	policy  services.AccessPolicy
	timeout time.Duration
}

func NewListRegionsQueryHandler(
	db *gorm.DB,
	policy services.AccessPolicy,
	timeout time.Duration,
) ListRegionsQueryHandler {
	return ListRegionsQueryHandler{db: db, policy: policy, timeout: timeout}
}

func (h ListRegionsQueryHandler) Handle(ctx context.Context, query ListRegionsQuery) ([]RegionView, error) {
	ctx, cancel := boundRead(ctx, h.timeout)
	defer cancel()

	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.Precheck(query.actor, services.ViewRegions); err != nil {
		return nil, err
	}

	var filter where
	if _, isAdmin := query.actor.(profile.Admin); !isAdmin {
		filter.add("is_active")
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, name, code, is_active
		FROM regions
		`+filter.String()+`
		ORDER BY code
	`, filter.args...).Rows()
	if err != nil {
		return nil, errs.WrapDependency("postgres", err)
	}
	defer rows.Close()

	regions := make([]RegionView, 0)
	for rows.Next() {
		var view RegionView
		var id uuid.UUID
		if err = rows.Scan(&id, &view.Name, &view.Code, &view.IsActive); err != nil {
			return nil, err
		}
		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		regions = append(regions, view)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.WrapDependency("postgres", err)
	}

	return regions, nil
}
