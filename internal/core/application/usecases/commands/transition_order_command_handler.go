package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/profile"
	"fulfillment/internal/core/domain/services"
)

// TransitionOrderCommandHandler applies a status change requested by any
// role. The order row is locked for the duration of the transaction and the
// write is conditional on the status that was read, so two concurrent
// requests cannot both succeed.
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	lifecycle  services.OrderLifecycle
	policy     services.AccessPolicy
	clock      kernel.Clock
}

func NewTransitionOrderCommandHandler(
	uowFactory OrderUoWFactory,
	policy services.AccessPolicy,
	clock kernel.Clock,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  services.NewOrderLifecycle(policy),
		policy:     policy,
		clock:      clock,
	}
}

func (h TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return changeOrder(ctx, h.uowFactory, h.policy, cmd.Actor(), cmd.OrderID(), func(_ OrderUoW, o *order.Order) error {
		return h.lifecycle.Transition(o, cmd.Target(), cmd.Actor(), h.clock.Now())
	})
}

// changeOrder locks an order, lets change mutate it and stores the result.
// Callers without any order access are rejected before the lookup.
func changeOrder(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	policy services.AccessPolicy,
	actor profile.Actor,
	orderID kernel.UUID,
	change func(uow OrderUoW, o *order.Order) error,
) error {
	if err := policy.Precheck(actor, services.ViewOrder); err != nil {
		return err
	}

	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.GetForUpdate(ctx, orderID)
	if err != nil {
		return err
	}

	if err = change(uow, o); err != nil {
		return err
	}

	if err = repo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
