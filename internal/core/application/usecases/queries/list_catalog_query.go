package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/profile"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrListCatalogQueryIsNotConstructed = errors.New(
	"ListCatalogQuery must be created via NewListCatalogQuery constructor",
)

// ListCatalogQuery lists the products of one region, or of every region for
// super admins who leave RegionID empty.
//
// Customers only see active products of active regions. When they do not
// name a region, the region of their profile is used. Admins also see
// inactive products.
type ListCatalogQuery struct {
	actor    profile.Actor
	regionID *kernel.UUID
	guard    guard.ConstructorGuard
}

func NewListCatalogQuery(actor profile.Actor, regionID *kernel.UUID) ListCatalogQuery {
	return ListCatalogQuery{actor: actor, regionID: regionID, guard: guard.NewConstructorGuard()}
}

func (q ListCatalogQuery) Validate() error {
	return q.guard.Validate(ErrListCatalogQueryIsNotConstructed)
}

type ProductView struct {
	ID               kernel.UUID     `json:"id"`
	RegionID         kernel.UUID     `json:"region_id"`
	Name             string          `json:"name"`
	Price            decimal.Decimal `json:"price"`
	PricePerQuantity int             `json:"price_per_quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	Unit             string          `json:"unit"`
	ImageURL         string          `json:"image_url,omitempty"`
	IsActive         bool            `json:"is_active"`
	UpdatedAt        time.Time       `json:"updated_at"`
}
