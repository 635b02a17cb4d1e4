package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/model/profile"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateProductCommandIsNotConstructed = errors.New(
	"CreateProductCommand must be created via NewCreateProductCommand constructor",
)

// CreateProductCommand adds a product to a region's catalog.
type CreateProductCommand struct {
	actor     profile.Actor
	productID kernel.UUID
	regionID  kernel.UUID
	details   product.Details

	guard guard.ConstructorGuard
}

func NewCreateProductCommand(
	actor profile.Actor,
	productID, regionID kernel.UUID,
	details product.Details,
) (CreateProductCommand, error) {
	if err := errors.Join(productID.Validate(), regionID.Validate()); err != nil {
		return CreateProductCommand{}, err
	}
	return CreateProductCommand{
		actor:     actor,
		productID: productID,
		regionID:  regionID,
		details:   details,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CreateProductCommand) Validate() error {
	return c.guard.Validate(ErrCreateProductCommandIsNotConstructed)
}

func (c CreateProductCommand) Actor() profile.Actor {
	return c.actor
}

func (c CreateProductCommand) ProductID() kernel.UUID {
	return c.productID
}

func (c CreateProductCommand) RegionID() kernel.UUID {
	return c.regionID
}

func (c CreateProductCommand) Details() product.Details {
	return c.details
}
