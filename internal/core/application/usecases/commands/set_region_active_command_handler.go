package commands

import (
	"context"

	"fulfillment/internal/core/domain/services"
)

type SetRegionActiveCommandHandler struct {
	uowFactory RegionUoWFactory
	policy     services.AccessPolicy
}

func NewSetRegionActiveCommandHandler(
	uowFactory RegionUoWFactory,
	policy services.AccessPolicy,
) SetRegionActiveCommandHandler {
	return SetRegionActiveCommandHandler{uowFactory: uowFactory, policy: policy}
}

// Handle toggles the region. Existing orders are not affected; an inactive
// region only refuses new checkouts.
func (h SetRegionActiveCommandHandler) Handle(ctx context.Context, cmd SetRegionActiveCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := h.policy.Authorize(cmd.Actor(), services.ManageRegions, services.Target{}); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.RegionRepository()
	r, err := repo.Get(ctx, cmd.RegionID())
	if err != nil {
		return err
	}

	if cmd.Active() {
		r.Activate()
	} else {
		r.Deactivate()
	}

	if err = repo.Update(ctx, r); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
