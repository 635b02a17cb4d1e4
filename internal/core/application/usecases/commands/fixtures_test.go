package commands_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/model/profile"
	"fulfillment/internal/core/domain/model/region"
	"fulfillment/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var policy = services.NewAccessPolicy()

func ptr(id kernel.UUID) *kernel.UUID {
	return &id
}

func superAdmin() profile.Admin {
	return profile.Admin{ID: kernel.NewUUID(), Tier: profile.TierSuperAdmin}
}

func regionAdmin(regionID kernel.UUID) profile.Admin {
	return profile.Admin{ID: kernel.NewUUID(), Tier: profile.TierAdmin, Region: ptr(regionID)}
}

func approvedCustomer() profile.Customer {
	return profile.Customer{ID: kernel.NewUUID(), KYC: profile.KYCApproved}
}

func newRegion(t *testing.T) *region.Region {
	t.Helper()
	r, err := region.NewRegion(kernel.NewUUID(), "Denpasar", "DPS")
	require.NoError(t, err)
	return r
}

func newProduct(t *testing.T, regionID kernel.UUID, price string, ppq int) *product.Product {
	t.Helper()
	p, err := product.NewProduct(kernel.NewUUID(), regionID, product.Details{
		Name:             "Rice",
		Price:            decimal.RequireFromString(price),
		PricePerQuantity: ppq,
		Unit:             "kg",
	}, now)
	require.NoError(t, err)
	return p
}

func lineOf(p *product.Product, qty int) cart.Line {
	return cart.Line{
		ProductID:        p.ID(),
		Name:             p.Name(),
		Price:            p.Price(),
		PricePerQuantity: p.PricePerQuantity(),
		Unit:             p.Unit(),
		Quantity:         qty,
		RegionID:         p.RegionID(),
	}
}

func newOrder(t *testing.T, customerID, regionID kernel.UUID) *order.Order {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), 2, decimal.NewFromInt(15))
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), customerID, regionID, []order.Item{item}, nil, now)
	require.NoError(t, err)
	o.ClearEvents()
	return o
}

func newCourier(t *testing.T, regionID *kernel.UUID) *profile.Profile {
	t.Helper()
	p, err := profile.NewProfile(kernel.NewUUID(), "Ketut", "ketut@example.com", profile.RoleLogistics, profile.NoTier, regionID, now)
	require.NoError(t, err)
	return p
}
