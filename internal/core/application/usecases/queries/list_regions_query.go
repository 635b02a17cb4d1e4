package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/profile"
	"fulfillment/internal/pkg/guard"
)

var ErrListRegionsQueryIsNotConstructed = errors.New(
	"ListRegionsQuery must be created via NewListRegionsQuery constructor",
)

// ListRegionsQuery lists regions ordered by code. Admins see inactive
// regions too.
type ListRegionsQuery struct {
	actor profile.Actor
	guard guard.ConstructorGuard
}

func NewListRegionsQuery(actor profile.Actor) ListRegionsQuery {
	return ListRegionsQuery{actor: actor, guard: guard.NewConstructorGuard()}
}

func (q ListRegionsQuery) Validate() error {
	return q.guard.Validate(ErrListRegionsQueryIsNotConstructed)
}

type RegionView struct {
	ID       kernel.UUID `json:"id"`
	Name     string      `json:"name"`
	Code     string      `json:"code"`
	IsActive bool        `json:"is_active"`
}
