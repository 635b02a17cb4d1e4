package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/profile"
	"fulfillment/internal/pkg/guard"
)

var ErrAssignRoleCommandIsNotConstructed = errors.New(
	"AssignRoleCommand must be created via NewAssignRoleCommand constructor",
)

// AssignRoleCommand changes the role, admin tier and home region of a profile.
type AssignRoleCommand struct {
	actor     profile.Actor
	profileID kernel.UUID
	role      profile.Role
	tier      profile.AdminTier
	regionID  *kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignRoleCommand(
	actor profile.Actor,
	profileID kernel.UUID,
	role profile.Role,
	tier profile.AdminTier,
	regionID *kernel.UUID,
) (AssignRoleCommand, error) {
	if err := errors.Join(profileID.Validate(), role.Validate()); err != nil {
		return AssignRoleCommand{}, err
	}
	return AssignRoleCommand{
		actor:     actor,
		profileID: profileID,
		role:      role,
		tier:      tier,
		regionID:  regionID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c AssignRoleCommand) Validate() error {
	return c.guard.Validate(ErrAssignRoleCommandIsNotConstructed)
}

func (c AssignRoleCommand) Actor() profile.Actor {
	return c.actor
}

func (c AssignRoleCommand) ProfileID() kernel.UUID {
	return c.profileID
}

func (c AssignRoleCommand) Role() profile.Role {
	return c.role
}

func (c AssignRoleCommand) Tier() profile.AdminTier {
	return c.tier
}

func (c AssignRoleCommand) RegionID() *kernel.UUID {
	return c.regionID
}
