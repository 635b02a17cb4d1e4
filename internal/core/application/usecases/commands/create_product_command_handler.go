package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/services"
)

type CreateProductCommandHandler struct {
	uowFactory CatalogUoWFactory
	policy     services.AccessPolicy
	clock      kernel.Clock
}

func NewCreateProductCommandHandler(
	uowFactory CatalogUoWFactory,
	policy services.AccessPolicy,
	clock kernel.Clock,
) CreateProductCommandHandler {
	return CreateProductCommandHandler{uowFactory: uowFactory, policy: policy, clock: clock}
}

// Handle stores a new active product. Regular admins may only add products
// to their own region.
func (h CreateProductCommandHandler) Handle(ctx context.Context, cmd CreateProductCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	regionID := cmd.RegionID()
	if err := h.policy.Authorize(cmd.Actor(), services.ManageProduct, services.RegionTarget(&regionID)); err != nil {
		return err
	}

	p, err := product.NewProduct(cmd.ProductID(), regionID, cmd.Details(), h.clock.Now())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err = uow.RegionRepository().Get(ctx, regionID); err != nil {
		return err
	}

	if err = uow.ProductRepository().Add(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
