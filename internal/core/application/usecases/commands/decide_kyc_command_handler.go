package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
)

// DecideKYCCommandHandler records a KYC decision. Regular admins may only
// decide on customers of their own region or customers without a region.
type DecideKYCCommandHandler struct {
	uowFactory ProfileUoWFactory
	policy     services.AccessPolicy
	clock      kernel.Clock
}

func NewDecideKYCCommandHandler(
	uowFactory ProfileUoWFactory,
	policy services.AccessPolicy,
	clock kernel.Clock,
) DecideKYCCommandHandler {
	return DecideKYCCommandHandler{uowFactory: uowFactory, policy: policy, clock: clock}
}

func (h DecideKYCCommandHandler) Handle(ctx context.Context, cmd DecideKYCCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := h.policy.Precheck(cmd.Actor(), services.DecideKYC); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ProfileRepository()
	p, err := repo.Get(ctx, cmd.ProfileID())
	if err != nil {
		return err
	}

	if err = h.policy.Authorize(cmd.Actor(), services.DecideKYC, services.RegionTarget(p.RegionID())); err != nil {
		return err
	}

	if err = p.DecideKYC(cmd.Decision(), cmd.Reason(), cmd.Actor().ActorID(), h.clock.Now()); err != nil {
		return err
	}

	if err = repo.Update(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
