package services

import (
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/profile"
	"fulfillment/internal/pkg/errs"
)

type OrderLifecycle struct {
	policy AccessPolicy
}

func NewOrderLifecycle(policy AccessPolicy) OrderLifecycle {
	return OrderLifecycle{policy: policy}
}

// Transition authorizes actor to move o to target and applies the move.
//
// Customers may only cancel their own orders, couriers may only advance
// orders assigned to them to shipped or delivered, and admins may set any
// status within their region. State machine checks run after authorization.
func (l OrderLifecycle) Transition(o *order.Order, target order.Status, actor profile.Actor, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return err
	}

	action, err := transitionAction(actor, target)
	if err != nil {
		return err
	}
	if err = l.policy.Authorize(actor, action, OrderTarget(o)); err != nil {
		return err
	}

	return o.TransitionTo(target, actor.ActorID(), now)
}

// Assign sets (or with a nil courier clears) the courier of o.
//
// The courier must be a logistics profile. A regular admin may only pick a
// courier whose region, when set, matches the order's region.
func (l OrderLifecycle) Assign(o *order.Order, courier *profile.Profile, actor profile.Actor, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := l.policy.Authorize(actor, AssignOrder, OrderTarget(o)); err != nil {
		return err
	}
	if o.Status().IsTerminal() {
		return errs.NewTerminalStateError(o.Status().String(), "assign courier")
	}

	if courier == nil {
		return o.AssignCourier(nil, actor.ActorID(), now)
	}

	if err := courier.Validate(); err != nil {
		return err
	}
	if courier.Role() != profile.RoleLogistics {
		return errs.NewValueIsInvalidErrorWithCause("courier_id",
			fmt.Errorf("profile %s is a %s, not a logistics user", courier.ID(), courier.Role()))
	}

	if admin, ok := actor.(profile.Admin); ok && !admin.IsSuper() {
		if region := courier.RegionID(); region != nil && !region.IsEqual(o.RegionID()) {
			return errs.NewRegionMismatchError(string(AssignOrder), region.String(), o.RegionID().String())
		}
	}

	courierID := courier.ID()
	return o.AssignCourier(&courierID, actor.ActorID(), now)
}

func transitionAction(actor profile.Actor, target order.Status) (Action, error) {
	switch actor.(type) {
	case nil:
		return "", errs.NewUnauthorizedError(string(ManageOrder))
	case profile.Customer:
		if target != order.Cancelled {
			return "", errs.NewForbiddenError(string(CancelOrder), "customers may only request cancellation")
		}
		return CancelOrder, nil
	case profile.Logistics:
		if target != order.Shipped && target != order.Delivered {
			return "", errs.NewForbiddenError(string(AdvanceDelivery), "couriers may only mark orders shipped or delivered")
		}
		return AdvanceDelivery, nil
	default:
		return ManageOrder, nil
	}
}
