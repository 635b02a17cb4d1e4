package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/profile"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// PlaceOrderCommand turns the lines of a cart into an order.
//
// Example:
//
//	cmd, err := NewPlaceOrderCommand(customer, kernel.NewUUID(), c.Lines(), &dropOff)
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    // errs.ErrPriceChanged means the cart must be refreshed first
//	    return err
//	}
type PlaceOrderCommand struct {
	actor    profile.Actor
	orderID  kernel.UUID
	lines    []cart.Line
	delivery *kernel.Location

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand accepts the lines only if they form a valid cart, so
// duplicated products and mixed regions are refused before any lookup.
func NewPlaceOrderCommand(
	actor profile.Actor,
	orderID kernel.UUID,
	lines []cart.Line,
	delivery *kernel.Location,
) (PlaceOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return PlaceOrderCommand{}, err
	}
	if len(lines) == 0 {
		return PlaceOrderCommand{}, errs.NewValueIsRequiredError("items")
	}

	c, err := cart.RestoreCart(lines)
	if err != nil {
		return PlaceOrderCommand{}, err
	}
	regionID, _ := c.RegionID()
	for _, line := range lines {
		if !line.RegionID.IsEqual(regionID) {
			return PlaceOrderCommand{}, errs.NewValueIsInvalidErrorWithCause("items",
				errors.New("all items must belong to one region"))
		}
	}

	return PlaceOrderCommand{
		actor:    actor,
		orderID:  orderID,
		lines:    c.Lines(),
		delivery: delivery,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

func (c PlaceOrderCommand) Actor() profile.Actor {
	return c.actor
}

func (c PlaceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c PlaceOrderCommand) Lines() []cart.Line {
	lines := make([]cart.Line, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// RegionID is the region every line belongs to.
func (c PlaceOrderCommand) RegionID() kernel.UUID {
	return c.lines[0].RegionID
}

func (c PlaceOrderCommand) Delivery() *kernel.Location {
	return c.delivery
}
