package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/profile"
	"fulfillment/internal/core/domain/services"
)

// AssignCourierCommandHandler assigns, reassigns or unassigns the courier of
// an order. Regular admins are limited to orders and couriers of their region.
type AssignCourierCommandHandler struct {
	uowFactory OrderUoWFactory
	lifecycle  services.OrderLifecycle
	policy     services.AccessPolicy
	clock      kernel.Clock
}

func NewAssignCourierCommandHandler(
	uowFactory OrderUoWFactory,
	policy services.AccessPolicy,
	clock kernel.Clock,
) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  services.NewOrderLifecycle(policy),
		policy:     policy,
		clock:      clock,
	}
}

func (h AssignCourierCommandHandler) Handle(ctx context.Context, cmd AssignCourierCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := h.policy.Precheck(cmd.Actor(), services.AssignOrder); err != nil {
		return err
	}

	return changeOrder(ctx, h.uowFactory, h.policy, cmd.Actor(), cmd.OrderID(), func(uow OrderUoW, o *order.Order) error {
		var courier *profile.Profile
		if id := cmd.CourierID(); id != nil {
			p, err := uow.ProfileRepository().GetForUpdate(ctx, *id)
			if err != nil {
				return err
			}
			courier = p
		}
		return h.lifecycle.Assign(o, courier, cmd.Actor(), h.clock.Now())
	})
}
