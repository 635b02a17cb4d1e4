package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/profile"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateRegionCommandIsNotConstructed = errors.New(
	"CreateRegionCommand must be created via NewCreateRegionCommand constructor",
)

// CreateRegionCommand registers a new delivery region.
type CreateRegionCommand struct {
	actor    profile.Actor
	regionID kernel.UUID
	name     string
	code     string

	guard guard.ConstructorGuard
}

func NewCreateRegionCommand(actor profile.Actor, regionID kernel.UUID, name, code string) (CreateRegionCommand, error) {
	cmd := CreateRegionCommand{actor: actor, guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		regionID.Validate(),
		requireText("name", name),
		requireText("code", code),
	); err != nil {
		return CreateRegionCommand{}, err
	}

	cmd.regionID = regionID
	cmd.name = name
	cmd.code = code
	return cmd, nil
}

func (c CreateRegionCommand) Validate() error {
	return c.guard.Validate(ErrCreateRegionCommandIsNotConstructed)
}

func (c CreateRegionCommand) Actor() profile.Actor {
	return c.actor
}

func (c CreateRegionCommand) RegionID() kernel.UUID {
	return c.regionID
}

func (c CreateRegionCommand) Name() string {
	return c.name
}

func (c CreateRegionCommand) Code() string {
	return c.code
}

func requireText(param, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(param)
	}
	return nil
}
