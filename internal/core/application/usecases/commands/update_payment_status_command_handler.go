package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
)

// UpdatePaymentStatusCommandHandler lets admins record payment changes in any
// lifecycle status, so refunds can follow a cancellation.
type UpdatePaymentStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.AccessPolicy
	clock      kernel.Clock
}

func NewUpdatePaymentStatusCommandHandler(
	uowFactory OrderUoWFactory,
	policy services.AccessPolicy,
	clock kernel.Clock,
) UpdatePaymentStatusCommandHandler {
	return UpdatePaymentStatusCommandHandler{uowFactory: uowFactory, policy: policy, clock: clock}
}

func (h UpdatePaymentStatusCommandHandler) Handle(ctx context.Context, cmd UpdatePaymentStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := h.policy.Precheck(cmd.Actor(), services.ManageOrder); err != nil {
		return err
	}

	return changeOrder(ctx, h.uowFactory, h.policy, cmd.Actor(), cmd.OrderID(), func(_ OrderUoW, o *order.Order) error {
		if err := h.policy.Authorize(cmd.Actor(), services.ManageOrder, services.OrderTarget(o)); err != nil {
			return err
		}
		return o.SetPaymentStatus(cmd.Status(), cmd.Actor().ActorID(), h.clock.Now())
	})
}
