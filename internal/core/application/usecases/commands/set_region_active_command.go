package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/profile"
	"fulfillment/internal/pkg/guard"
)

var ErrSetRegionActiveCommandIsNotConstructed = errors.New(
	"SetRegionActiveCommand must be created via NewSetRegionActiveCommand constructor",
)

// SetRegionActiveCommand opens or closes a region for new orders.
type SetRegionActiveCommand struct {
	actor    profile.Actor
	regionID kernel.UUID
	active   bool

	guard guard.ConstructorGuard
}

func NewSetRegionActiveCommand(actor profile.Actor, regionID kernel.UUID, active bool) (SetRegionActiveCommand, error) {
	if err := regionID.Validate(); err != nil {
		return SetRegionActiveCommand{}, err
	}
	return SetRegionActiveCommand{
		actor:    actor,
		regionID: regionID,
		active:   active,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c SetRegionActiveCommand) Validate() error {
	return c.guard.Validate(ErrSetRegionActiveCommandIsNotConstructed)
}

func (c SetRegionActiveCommand) Actor() profile.Actor {
	return c.actor
}

func (c SetRegionActiveCommand) RegionID() kernel.UUID {
	return c.regionID
}

func (c SetRegionActiveCommand) Active() bool {
	return c.active
}
