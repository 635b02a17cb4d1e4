package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/profile"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

type ListOrdersQuery struct {
	actor    profile.Actor
	regionID *kernel.UUID
	statuses []order.Status
	limit    int
	offset   int
	guard    guard.ConstructorGuard
}

// NewListOrdersQuery builds a paged order listing. A zero limit means
// DefaultListLimit; an empty status set means every status.
func NewListOrdersQuery(
	actor profile.Actor,
	regionID *kernel.UUID,
	statuses []order.Status,
	limit, offset int,
) (ListOrdersQuery, error) {
	if limit == 0 {
		limit = DefaultListLimit
	}
	if limit < 1 || limit > MaxListLimit {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxListLimit)
	}
	if offset < 0 {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("offset", offset, 0, "unbounded")
	}
	for _, status := range statuses {
		if err := status.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}

	return ListOrdersQuery{
		actor:    actor,
		regionID: regionID,
		statuses: statuses,
		limit:    limit,
		offset:   offset,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

type OrderSummary struct {
	ID            kernel.UUID     `json:"id"`
	UserID        kernel.UUID     `json:"user_id"`
	RegionID      kernel.UUID     `json:"region_id"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"payment_status"`
	AssignedTo    *kernel.UUID    `json:"assigned_to,omitempty"`
	AssignedAt    *time.Time      `json:"assigned_at,omitempty"`
	Total         decimal.Decimal `json:"total"`
	ItemCount     int             `json:"item_count"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
