package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/profile"
	"fulfillment/internal/pkg/guard"
)

var ErrDecideKYCCommandIsNotConstructed = errors.New(
	"DecideKYCCommand must be created via NewDecideKYCCommand constructor",
)

// DecideKYCCommand approves or rejects a customer's verification.
type DecideKYCCommand struct {
	actor     profile.Actor
	profileID kernel.UUID
	decision  profile.KYCStatus
	reason    string

	guard guard.ConstructorGuard
}

func NewDecideKYCCommand(
	actor profile.Actor,
	profileID kernel.UUID,
	decision profile.KYCStatus,
	reason string,
) (DecideKYCCommand, error) {
	if err := profileID.Validate(); err != nil {
		return DecideKYCCommand{}, err
	}
	if decision == profile.KYCRejected {
		if err := requireText("reason", reason); err != nil {
			return DecideKYCCommand{}, err
		}
	}
	return DecideKYCCommand{
		actor:     actor,
		profileID: profileID,
		decision:  decision,
		reason:    reason,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c DecideKYCCommand) Validate() error {
	return c.guard.Validate(ErrDecideKYCCommandIsNotConstructed)
}

func (c DecideKYCCommand) Actor() profile.Actor {
	return c.actor
}

func (c DecideKYCCommand) ProfileID() kernel.UUID {
	return c.profileID
}

func (c DecideKYCCommand) Decision() profile.KYCStatus {
	return c.decision
}

func (c DecideKYCCommand) Reason() string {
	return c.reason
}
