package commands

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
)

// PlaceOrderCommandHandler checks out a cart. Inside one transaction it
// re-reads the region and every product, refuses inactive ones and compares
// the cart snapshot with the live price. Any difference fails the whole
// checkout with a PriceChangedError naming the affected products.
type PlaceOrderCommandHandler struct {
	uowFactory CheckoutUoWFactory
	policy     services.AccessPolicy
	clock      kernel.Clock
}

func NewPlaceOrderCommandHandler(
	uowFactory CheckoutUoWFactory,
	policy services.AccessPolicy,
	clock kernel.Clock,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{uowFactory: uowFactory, policy: policy, clock: clock}
}

func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := h.policy.Authorize(cmd.Actor(), services.PurchaseCatalog, services.Target{}); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	r, err := uow.RegionRepository().Get(ctx, cmd.RegionID())
	if err != nil {
		return err
	}
	if !r.IsActive() {
		return errs.NewValueIsInvalidErrorWithCause("region_id", fmt.Errorf("region %s is not accepting orders", r.Code()))
	}

	lines := cmd.Lines()
	ids := make([]kernel.UUID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}

	products, err := uow.ProductRepository().GetMany(ctx, ids)
	if err != nil {
		return err
	}
	live := make(map[kernel.UUID]*product.Product, len(products))
	for _, p := range products {
		live[p.ID()] = p
	}

	items := make([]order.Item, 0, len(lines))
	var changed []string
	for _, line := range lines {
		p, ok := live[line.ProductID]
		if !ok {
			return errs.NewObjectNotFoundError("product", line.ProductID.String())
		}
		if !p.IsActive() {
			return errs.NewValueIsInvalidErrorWithCause("product_id", fmt.Errorf("product %s is no longer available", p.ID()))
		}
		if !p.RegionID().IsEqual(r.ID()) {
			return errs.NewValueIsInvalidErrorWithCause("product_id", fmt.Errorf("product %s belongs to another region", p.ID()))
		}
		if !p.Price().Equal(line.Price) || p.PricePerQuantity() != line.PricePerQuantity || p.Unit() != line.Unit {
			changed = append(changed, p.ID().String())
			continue
		}

		item, itemErr := order.NewItem(p.ID(), line.Quantity, order.UnitPriceOf(p.Price(), p.PricePerQuantity()))
		if itemErr != nil {
			return itemErr
		}
		items = append(items, item)
	}
	if len(changed) > 0 {
		return errs.NewPriceChangedError(changed)
	}

	o, err := order.NewOrder(cmd.OrderID(), cmd.Actor().ActorID(), r.ID(), items, cmd.Delivery(), h.clock.Now())
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
