package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/profile"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

type orderPlacer interface {
	Handle(ctx context.Context, cmd PlaceOrderCommand) error
}

// CartAccumulator keeps each customer's cart in session storage. The cart is
// restored before and saved after every mutation. Storage failures never
// reach the caller: an unreadable cart starts over empty and a failed save
// is only logged.
type CartAccumulator struct {
	storage    ports.CartStorage
	uowFactory CatalogUoWFactory
	placer     orderPlacer
	policy     services.AccessPolicy
	logger     *slog.Logger
}

func NewCartAccumulator(
	storage ports.CartStorage,
	uowFactory CatalogUoWFactory,
	placer orderPlacer,
	policy services.AccessPolicy,
	logger *slog.Logger,
) *CartAccumulator {
	return &CartAccumulator{
		storage:    storage,
		uowFactory: uowFactory,
		placer:     placer,
		policy:     policy,
		logger:     logger.With("component", "cart_accumulator"),
	}
}

func (a *CartAccumulator) Get(ctx context.Context, actor profile.Actor) (*cart.Cart, error) {
	if err := a.policy.Precheck(actor, services.PurchaseCatalog); err != nil {
		return nil, err
	}
	return a.load(ctx, actor.ActorID()), nil
}

// AddItem adds quantity units of an active product.
func (a *CartAccumulator) AddItem(
	ctx context.Context,
	actor profile.Actor,
	productID kernel.UUID,
	quantity int,
) (*cart.Cart, error) {
	if err := a.policy.Precheck(actor, services.PurchaseCatalog); err != nil {
		return nil, err
	}

	p, err := a.uowFactory.Create().ProductRepository().Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !p.IsActive() {
		return nil, errs.NewValueIsInvalidErrorWithCause("product_id", fmt.Errorf("product %s is not available", productID))
	}

	c := a.load(ctx, actor.ActorID())
	if err = c.AddItem(p, quantity); err != nil {
		return nil, err
	}

	a.save(ctx, actor.ActorID(), c)
	return c, nil
}

// UpdateQuantity sets the quantity of a line; zero or less removes it.
func (a *CartAccumulator) UpdateQuantity(
	ctx context.Context,
	actor profile.Actor,
	productID kernel.UUID,
	quantity int,
) (*cart.Cart, error) {
	if err := a.policy.Precheck(actor, services.PurchaseCatalog); err != nil {
		return nil, err
	}

	c := a.load(ctx, actor.ActorID())
	if err := c.UpdateQuantity(productID, quantity); err != nil {
		return nil, err
	}

	a.save(ctx, actor.ActorID(), c)
	return c, nil
}

func (a *CartAccumulator) RemoveItem(ctx context.Context, actor profile.Actor, productID kernel.UUID) (*cart.Cart, error) {
	if err := a.policy.Precheck(actor, services.PurchaseCatalog); err != nil {
		return nil, err
	}

	c := a.load(ctx, actor.ActorID())
	c.Remove(productID)

	a.save(ctx, actor.ActorID(), c)
	return c, nil
}

func (a *CartAccumulator) Clear(ctx context.Context, actor profile.Actor) error {
	if err := a.policy.Precheck(actor, services.PurchaseCatalog); err != nil {
		return err
	}

	a.save(ctx, actor.ActorID(), cart.NewCart())
	return nil
}

// Checkout places an order with orderID from the current cart and empties
// it. When prices changed since the lines were added, the affected lines are
// refreshed from the catalog and the PriceChangedError is returned, so the
// customer can review the new total and retry.
func (a *CartAccumulator) Checkout(
	ctx context.Context,
	actor profile.Actor,
	orderID kernel.UUID,
	delivery *kernel.Location,
) error {
	if err := a.policy.Precheck(actor, services.PurchaseCatalog); err != nil {
		return err
	}

	c := a.load(ctx, actor.ActorID())
	if c.IsEmpty() {
		return errs.NewValueIsRequiredErrorWithCause("cart", errors.New("cart is empty"))
	}

	cmd, err := NewPlaceOrderCommand(actor, orderID, c.Lines(), delivery)
	if err != nil {
		return err
	}

	if err = a.placer.Handle(ctx, cmd); err != nil {
		var priceErr *errs.PriceChangedError
		if errors.As(err, &priceErr) {
			a.reprice(ctx, actor.ActorID(), c)
		}
		return err
	}

	a.save(ctx, actor.ActorID(), cart.NewCart())
	return nil
}

func (a *CartAccumulator) reprice(ctx context.Context, userID kernel.UUID, c *cart.Cart) {
	lines := c.Lines()
	ids := make([]kernel.UUID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}

	products, err := a.uowFactory.Create().ProductRepository().GetMany(ctx, ids)
	if err != nil {
		a.logger.WarnContext(ctx, "failed to refresh cart prices", "user_id", userID.String(), "error", err)
		return
	}
	for _, p := range products {
		c.Reprice(p)
	}

	a.save(ctx, userID, c)
}

func (a *CartAccumulator) load(ctx context.Context, userID kernel.UUID) *cart.Cart {
	lines, err := a.storage.Load(ctx, userID)
	if err != nil {
		a.logger.WarnContext(ctx, "failed to load cart, starting empty", "user_id", userID.String(), "error", err)
		return cart.NewCart()
	}

	c, err := cart.RestoreCart(lines)
	if err != nil {
		a.logger.WarnContext(ctx, "discarding corrupt cart", "user_id", userID.String(), "error", err)
		if delErr := a.storage.Delete(ctx, userID); delErr != nil {
			a.logger.WarnContext(ctx, "failed to delete corrupt cart", "user_id", userID.String(), "error", delErr)
		}
		return cart.NewCart()
	}

	return c
}

func (a *CartAccumulator) save(ctx context.Context, userID kernel.UUID, c *cart.Cart) {
	var err error
	if c.IsEmpty() {
		err = a.storage.Delete(ctx, userID)
	} else {
		err = a.storage.Save(ctx, userID, c.Lines())
	}
	if err != nil {
		a.logger.WarnContext(ctx, "failed to persist cart", "user_id", userID.String(), "error", err)
	}
}
