package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/profile"
	"fulfillment/internal/pkg/guard"
)

var ErrSetProductActiveCommandIsNotConstructed = errors.New(
	"SetProductActiveCommand must be created via NewSetProductActiveCommand constructor",
)

// SetProductActiveCommand lists or delists a product.
type SetProductActiveCommand struct {
	actor     profile.Actor
	productID kernel.UUID
	active    bool

	guard guard.ConstructorGuard
}

func NewSetProductActiveCommand(actor profile.Actor, productID kernel.UUID, active bool) (SetProductActiveCommand, error) {
	if err := productID.Validate(); err != nil {
		return SetProductActiveCommand{}, err
	}
	return SetProductActiveCommand{
		actor:     actor,
		productID: productID,
		active:    active,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c SetProductActiveCommand) Validate() error {
	return c.guard.Validate(ErrSetProductActiveCommandIsNotConstructed)
}

func (c SetProductActiveCommand) Actor() profile.Actor {
	return c.actor
}

func (c SetProductActiveCommand) ProductID() kernel.UUID {
	return c.productID
}

func (c SetProductActiveCommand) Active() bool {
	return c.active
}
