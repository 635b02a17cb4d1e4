package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
)

type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	lifecycle  services.OrderLifecycle
	policy     services.AccessPolicy
	clock      kernel.Clock
}

func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	policy services.AccessPolicy,
	clock kernel.Clock,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  services.NewOrderLifecycle(policy),
		policy:     policy,
		clock:      clock,
	}
}

func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return changeOrder(ctx, h.uowFactory, h.policy, cmd.Actor(), cmd.OrderID(), func(_ OrderUoW, o *order.Order) error {
		return h.lifecycle.Transition(o, order.Cancelled, cmd.Actor(), h.clock.Now())
	})
}
