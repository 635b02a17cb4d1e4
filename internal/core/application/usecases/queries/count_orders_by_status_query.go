package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/profile"
	"fulfillment/internal/pkg/guard"
)

var ErrCountOrdersByStatusQueryIsNotConstructed = errors.New(
	"CountOrdersByStatusQuery must be created via NewCountOrdersByStatusQuery constructor",
)

// CountOrdersByStatusQuery feeds the admin dashboard. The result holds an
// entry for every requested status, zero when no order matches.
type CountOrdersByStatusQuery struct {
	actor    profile.Actor
	regionID *kernel.UUID
	statuses []order.Status
	guard    guard.ConstructorGuard
}

func NewCountOrdersByStatusQuery(
	actor profile.Actor,
	regionID *kernel.UUID,
	statuses []order.Status,
) (CountOrdersByStatusQuery, error) {
	if len(statuses) == 0 {
		statuses = order.AllStatuses()
	}
	for _, status := range statuses {
		if err := status.Validate(); err != nil {
			return CountOrdersByStatusQuery{}, err
		}
	}
	return CountOrdersByStatusQuery{
		actor:    actor,
		regionID: regionID,
		statuses: statuses,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q CountOrdersByStatusQuery) Validate() error {
	return q.guard.Validate(ErrCountOrdersByStatusQueryIsNotConstructed)
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}
