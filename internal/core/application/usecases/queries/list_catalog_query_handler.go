package queries

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/profile"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListCatalogQueryHandler struct {
	db      *gorm.DB
	policy  services.AccessPolicy
	timeout time.Duration
}

func NewListCatalogQueryHandler(
	db *gorm.DB,
	policy services.AccessPolicy,
	timeout time.Duration,
) ListCatalogQueryHandler {
	return ListCatalogQueryHandler{db: db, policy: policy, timeout: timeout}
}

func (h ListCatalogQueryHandler) Handle(ctx context.Context, query ListCatalogQuery) ([]ProductView, error) {
	ctx, cancel := boundRead(ctx, h.timeout)
	defer cancel()

	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.Precheck(query.actor, services.ViewCatalog); err != nil {
		return nil, err
	}

	var filter where
	switch actor := query.actor.(type) {
	case profile.Admin:
		regionID, err := adminRegion(h.policy, actor, services.ViewCatalog, query.regionID)
		if err != nil {
			return nil, err
		}
		if regionID != nil {
			filter.add("p.region_id = ?", regionID.Bytes())
		}
	default:
		regionID := query.regionID
		if regionID == nil {
			regionID = query.actor.ActorRegion()
		}
		if regionID == nil {
			return nil, errs.NewValueIsRequiredErrorWithCause("region_id",
				errors.New("choose the region to browse"))
		}
		filter.add("p.region_id = ?", regionID.Bytes())
		filter.add("p.is_active")
		filter.add("r.is_active")
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT p.id, p.region_id, p.name, p.price, p.price_per_quantity, p.unit,
			p.image_url, p.is_active, p.updated_at
		FROM products p
		JOIN regions r ON r.id = p.region_id
		`+filter.String()+`
		ORDER BY r.code, p.name, p.id
	`, filter.args...).Rows()
	if err != nil {
		return nil, errs.WrapDependency("postgres", err)
	}
	defer rows.Close()

	products := make([]ProductView, 0)
	for rows.Next() {
		var view ProductView
		var id, regionID uuid.UUID
		if err = rows.Scan(&id, &regionID, &view.Name, &view.Price, &view.PricePerQuantity, &view.Unit,
			&view.ImageURL, &view.IsActive, &view.UpdatedAt); err != nil {
			return nil, err
		}
		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if view.RegionID, err = kernel.UUIDFromBytes(regionID[:]); err != nil {
			return nil, err
		}
		view.UnitPrice = order.UnitPriceOf(view.Price, view.PricePerQuantity)
		products = append(products, view)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.WrapDependency("postgres", err)
	}

	return products, nil
}
