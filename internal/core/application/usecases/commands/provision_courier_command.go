package commands

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/profile"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

const minPasswordLength = 8

var ErrProvisionCourierCommandIsNotConstructed = errors.New(
	"ProvisionCourierCommand must be created via NewProvisionCourierCommand constructor",
)

// ProvisionCourierCommand creates a login and a logistics profile for a
// courier working in regionID.
type ProvisionCourierCommand struct {
	actor    profile.Actor
	fullName string
	email    string
	password string
	regionID kernel.UUID

	guard guard.ConstructorGuard
}

func NewProvisionCourierCommand(
	actor profile.Actor,
	fullName, email, password string,
	regionID kernel.UUID,
) (ProvisionCourierCommand, error) {
	var passwordErr error
	if utf8.RuneCountInString(password) < minPasswordLength {
		passwordErr = errs.NewValueIsInvalidErrorWithCause("password",
			fmt.Errorf("must be at least %d characters", minPasswordLength))
	}

	if err := errors.Join(
		requireText("full_name", fullName),
		requireText("email", email),
		passwordErr,
		regionID.Validate(),
	); err != nil {
		return ProvisionCourierCommand{}, err
	}

	return ProvisionCourierCommand{
		actor:    actor,
		fullName: fullName,
		email:    email,
		password: password,
		regionID: regionID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c ProvisionCourierCommand) Validate() error {
	return c.guard.Validate(ErrProvisionCourierCommandIsNotConstructed)
}

func (c ProvisionCourierCommand) Actor() profile.Actor {
	return c.actor
}

func (c ProvisionCourierCommand) FullName() string {
	return c.fullName
}

func (c ProvisionCourierCommand) Email() string {
	return c.email
}

func (c ProvisionCourierCommand) Password() string {
	return c.password
}

func (c ProvisionCourierCommand) RegionID() kernel.UUID {
	return c.regionID
}
