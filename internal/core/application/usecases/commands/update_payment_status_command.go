package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/profile"
	"fulfillment/internal/pkg/guard"
)

var ErrUpdatePaymentStatusCommandIsNotConstructed = errors.New(
	"UpdatePaymentStatusCommand must be created via NewUpdatePaymentStatusCommand constructor",
)

// UpdatePaymentStatusCommand records the payment state reported for an order.
type UpdatePaymentStatusCommand struct {
	actor   profile.Actor
	orderID kernel.UUID
	status  order.PaymentStatus

	guard guard.ConstructorGuard
}

func NewUpdatePaymentStatusCommand(actor profile.Actor, orderID kernel.UUID, status string) (UpdatePaymentStatusCommand, error) {
	if err := orderID.Validate(); err != nil {
		return UpdatePaymentStatusCommand{}, err
	}
	payment, err := order.ParsePaymentStatus(status)
	if err != nil {
		return UpdatePaymentStatusCommand{}, err
	}
	return UpdatePaymentStatusCommand{
		actor:   actor,
		orderID: orderID,
		status:  payment,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UpdatePaymentStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePaymentStatusCommandIsNotConstructed)
}

func (c UpdatePaymentStatusCommand) Actor() profile.Actor {
	return c.actor
}

func (c UpdatePaymentStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c UpdatePaymentStatusCommand) Status() order.PaymentStatus {
	return c.status
}
