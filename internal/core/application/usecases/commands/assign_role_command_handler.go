package commands

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/profile"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
)

// AssignRoleCommandHandler lets a super admin promote, demote or move a user.
// The profile invariants (admins carry a tier, regular admins a region) are
// checked against the final combination. A courier keeps their role and
// region while any order assigned to them is still open.
type AssignRoleCommandHandler struct {
	uowFactory ProfileUoWFactory
	policy     services.AccessPolicy
	clock      kernel.Clock
}

func NewAssignRoleCommandHandler(
	uowFactory ProfileUoWFactory,
	policy services.AccessPolicy,
	clock kernel.Clock,
) AssignRoleCommandHandler {
	return AssignRoleCommandHandler{uowFactory: uowFactory, policy: policy, clock: clock}
}

func (h AssignRoleCommandHandler) Handle(ctx context.Context, cmd AssignRoleCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := h.policy.Authorize(cmd.Actor(), services.AssignRole, services.RegionTarget(cmd.RegionID())); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if cmd.RegionID() != nil {
		if _, err := uow.RegionRepository().Get(ctx, *cmd.RegionID()); err != nil {
			return err
		}
	}

	repo := uow.ProfileRepository()
	p, err := repo.GetForUpdate(ctx, cmd.ProfileID())
	if err != nil {
		return err
	}

	if err = h.checkCourierReleased(ctx, uow, p, cmd); err != nil {
		return err
	}

	if err = p.AssignRole(cmd.Role(), cmd.Tier(), cmd.RegionID(), h.clock.Now()); err != nil {
		return err
	}

	if err = repo.Update(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// checkCourierReleased refuses to change the role or region of a courier who
// still holds orders that are neither delivered nor cancelled.
func (h AssignRoleCommandHandler) checkCourierReleased(
	ctx context.Context,
	uow ProfileUoW,
	p *profile.Profile,
	cmd AssignRoleCommand,
) error {
	if p.Role() != profile.RoleLogistics {
		return nil
	}
	if cmd.Role() == profile.RoleLogistics && kernel.SameUUID(p.RegionID(), cmd.RegionID()) {
		return nil
	}

	active, err := uow.OrderRepository().CountActiveByAssignee(ctx, p.ID())
	if err != nil {
		return err
	}
	if active > 0 {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("courier %s still has %d active orders", p.ID(), active))
	}
	return nil
}
