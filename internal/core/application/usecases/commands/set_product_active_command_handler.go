package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/services"
)

type SetProductActiveCommandHandler struct {
	uowFactory CatalogUoWFactory
	policy     services.AccessPolicy
	clock      kernel.Clock
}

func NewSetProductActiveCommandHandler(
	uowFactory CatalogUoWFactory,
	policy services.AccessPolicy,
	clock kernel.Clock,
) SetProductActiveCommandHandler {
	return SetProductActiveCommandHandler{uowFactory: uowFactory, policy: policy, clock: clock}
}

// Handle toggles the product. Inactive products stay visible to admins but
// are hidden from customers and refused at checkout.
func (h SetProductActiveCommandHandler) Handle(ctx context.Context, cmd SetProductActiveCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := h.policy.Precheck(cmd.Actor(), services.ManageProduct); err != nil {
		return err
	}

	return changeProduct(ctx, h.uowFactory, h.policy, cmd.Actor(), cmd.ProductID(), func(p *product.Product) error {
		p.SetActive(cmd.Active(), h.clock.Now())
		return nil
	})
}
