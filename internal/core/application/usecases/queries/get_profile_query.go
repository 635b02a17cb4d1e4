package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/profile"
	"fulfillment/internal/pkg/guard"
)

var ErrGetProfileQueryIsNotConstructed = errors.New(
	"GetProfileQuery must be created via NewGetProfileQuery constructor",
)

// GetProfileQuery returns the profile of the calling actor.
type GetProfileQuery struct {
	actor profile.Actor
	guard guard.ConstructorGuard
}

func NewGetProfileQuery(actor profile.Actor) GetProfileQuery {
	return GetProfileQuery{actor: actor, guard: guard.NewConstructorGuard()}
}

func (q GetProfileQuery) Validate() error {
	return q.guard.Validate(ErrGetProfileQueryIsNotConstructed)
}

type ProfileView struct {
	ID                 kernel.UUID  `json:"id"`
	FullName           string       `json:"full_name"`
	Email              string       `json:"email,omitempty"`
	Role               string       `json:"role"`
	AdminRole          string       `json:"admin_role,omitempty"`
	RegionID           *kernel.UUID `json:"region_id,omitempty"`
	KYCStatus          string       `json:"kyc_status"`
	KYCRejectionReason string       `json:"kyc_rejection_reason,omitempty"`
	KYCDecidedAt       *time.Time   `json:"kyc_decided_at,omitempty"`
	CreatedAt          time.Time    `json:"created_at"`
}
