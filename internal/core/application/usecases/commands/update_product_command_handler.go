package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/model/profile"
	"fulfillment/internal/core/domain/services"
)

type UpdateProductCommandHandler struct {
	uowFactory CatalogUoWFactory
	policy     services.AccessPolicy
	clock      kernel.Clock
}

func NewUpdateProductCommandHandler(
	uowFactory CatalogUoWFactory,
	policy services.AccessPolicy,
	clock kernel.Clock,
) UpdateProductCommandHandler {
	return UpdateProductCommandHandler{uowFactory: uowFactory, policy: policy, clock: clock}
}

func (h UpdateProductCommandHandler) Handle(ctx context.Context, cmd UpdateProductCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := h.policy.Precheck(cmd.Actor(), services.ManageProduct); err != nil {
		return err
	}

	return changeProduct(ctx, h.uowFactory, h.policy, cmd.Actor(), cmd.ProductID(), func(p *product.Product) error {
		return p.Update(cmd.Details(), h.clock.Now())
	})
}

// changeProduct loads a product, checks the actor may manage products of its
// region, applies change and stores the result.
func changeProduct(
	ctx context.Context,
	uowFactory CatalogUoWFactory,
	policy services.AccessPolicy,
	actor profile.Actor,
	productID kernel.UUID,
	change func(p *product.Product) error,
) error {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ProductRepository()
	p, err := repo.Get(ctx, productID)
	if err != nil {
		return err
	}

	regionID := p.RegionID()
	if err = policy.Authorize(actor, services.ManageProduct, services.RegionTarget(&regionID)); err != nil {
		return err
	}

	if err = change(p); err != nil {
		return err
	}

	if err = repo.Update(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
