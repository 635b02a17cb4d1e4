package commands

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/profile"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// ProvisionCourierCommandHandler creates the courier's login with the identity
// provider and then stores the logistics profile. If storing the profile fails
// the login is deleted again, so a failed call leaves neither behind.
//
// Example:
//
//	handler := NewProvisionCourierCommandHandler(uowFactory, identity, policy, clock)
//	cmd, _ := NewProvisionCourierCommand(admin, "Made Wirawan", "made@example.com", "s3cret-pass", regionID)
//
//	courierID, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("provisioning failed: %w", err)
//	}
type ProvisionCourierCommandHandler struct {
	uowFactory ProfileUoWFactory
	identity   ports.IdentityProvider
	policy     services.AccessPolicy
	clock      kernel.Clock
}

func NewProvisionCourierCommandHandler(
	uowFactory ProfileUoWFactory,
	identity ports.IdentityProvider,
	policy services.AccessPolicy,
	clock kernel.Clock,
) ProvisionCourierCommandHandler {
	return ProvisionCourierCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
		policy:     policy,
		clock:      clock,
	}
}

// Handle returns the id shared by the new login and profile.
func (h ProvisionCourierCommandHandler) Handle(ctx context.Context, cmd ProvisionCourierCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}
	regionID := cmd.RegionID()
	if err := h.policy.Authorize(cmd.Actor(), services.ProvisionCourier, services.RegionTarget(&regionID)); err != nil {
		return kernel.UUID{}, err
	}

	if err := h.checkRegion(ctx, regionID); err != nil {
		return kernel.UUID{}, err
	}

	courierID, err := h.identity.CreateIdentity(ctx, cmd.Email(), cmd.Password())
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = h.storeProfile(ctx, courierID, cmd); err != nil {
		if cleanupErr := h.identity.DeleteIdentity(context.WithoutCancel(ctx), courierID); cleanupErr != nil {
			return kernel.UUID{}, errors.Join(err,
				fmt.Errorf("compensating delete of identity %s failed: %w", courierID, cleanupErr))
		}
		return kernel.UUID{}, err
	}

	return courierID, nil
}

func (h ProvisionCourierCommandHandler) checkRegion(ctx context.Context, regionID kernel.UUID) error {
	r, err := h.uowFactory.Create().RegionRepository().Get(ctx, regionID)
	if err != nil {
		return err
	}
	if !r.IsActive() {
		return errs.NewValueIsInvalidErrorWithCause("region_id", fmt.Errorf("region %s is inactive", r.Code()))
	}
	return nil
}

func (h ProvisionCourierCommandHandler) storeProfile(
	ctx context.Context,
	courierID kernel.UUID,
	cmd ProvisionCourierCommand,
) error {
	regionID := cmd.RegionID()
	p, err := profile.NewProfile(
		courierID,
		cmd.FullName(),
		cmd.Email(),
		profile.RoleLogistics,
		profile.NoTier,
		&regionID,
		h.clock.Now(),
	)
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

	if err = uow.ProfileRepository().Add(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
