package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/profile"
	"fulfillment/internal/pkg/guard"
)

var ErrAssignCourierCommandIsNotConstructed = errors.New(
	"AssignCourierCommand must be created via NewAssignCourierCommand constructor",
)

// AssignCourierCommand sets the courier responsible for an order. A nil
// courier removes the current assignment.
type AssignCourierCommand struct {
	actor     profile.Actor
	orderID   kernel.UUID
	courierID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignCourierCommand(actor profile.Actor, orderID kernel.UUID, courierID *kernel.UUID) (AssignCourierCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AssignCourierCommand{}, err
	}
	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return AssignCourierCommand{}, err
		}
	}
	return AssignCourierCommand{
		actor:     actor,
		orderID:   orderID,
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c AssignCourierCommand) Validate() error {
	return c.guard.Validate(ErrAssignCourierCommandIsNotConstructed)
}

func (c AssignCourierCommand) Actor() profile.Actor {
	return c.actor
}

func (c AssignCourierCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AssignCourierCommand) CourierID() *kernel.UUID {
	return c.courierID
}
