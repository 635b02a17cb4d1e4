package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/region"
	"fulfillment/internal/core/domain/services"
)

// CreateRegionCommandHandler adds a region to the directory. Only super
// admins may do so; the region starts active.
type CreateRegionCommandHandler struct {
	uowFactory RegionUoWFactory
	policy     services.AccessPolicy
}

func NewCreateRegionCommandHandler(
	uowFactory RegionUoWFactory,
	policy services.AccessPolicy,
) CreateRegionCommandHandler {
	return CreateRegionCommandHandler{uowFactory: uowFactory, policy: policy}
}

func (h CreateRegionCommandHandler) Handle(ctx context.Context, cmd CreateRegionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := h.policy.Authorize(cmd.Actor(), services.ManageRegions, services.Target{}); err != nil {
		return err
	}

	r, err := region.NewRegion(cmd.RegionID(), cmd.Name(), cmd.Code())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.RegionRepository().Add(ctx, r); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
