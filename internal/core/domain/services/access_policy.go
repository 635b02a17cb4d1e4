package services

import (
	"slices"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/profile"
	"fulfillment/internal/pkg/errs"
)

type Action string

const (
	ViewCatalog      Action = "catalog:view"
	PurchaseCatalog  Action = "catalog:purchase"
	ManageProduct    Action = "product:manage"
	ViewRegions      Action = "region:view"
	ManageRegions    Action = "region:manage"
	AssignRole       Action = "profile:assign_role"
	DecideKYC        Action = "profile:decide_kyc"
	ProvisionCourier Action = "profile:provision_courier"
	ViewOrder        Action = "order:view"
	ListOrders       Action = "order:list"
	CountOrders      Action = "order:count"
	CancelOrder      Action = "order:cancel"
	AdvanceDelivery  Action = "order:advance_delivery"
	ManageOrder      Action = "order:manage"
	AssignOrder      Action = "order:assign"
)

type rule struct {
	roles []profile.Role
	// only super admins among admins
	superOnly bool
	// customers must be KYC approved
	kycGate bool
	// regular admins must share the target's region
	regionScoped bool
	// a target without region is acceptable for regular admins
	unscopedOK bool
	// customers must own the order, couriers must be assigned to it
	orderScoped bool
}

var (
	anyRole   = []profile.Role{profile.RoleCustomer, profile.RoleAdmin, profile.RoleLogistics}
	adminOnly = []profile.Role{profile.RoleAdmin}
)

func getRules() map[Action]rule {
	return map[Action]rule{
		ViewCatalog:      {roles: []profile.Role{profile.RoleCustomer, profile.RoleAdmin}, kycGate: true, regionScoped: true},
		PurchaseCatalog:  {roles: []profile.Role{profile.RoleCustomer}, kycGate: true},
		ManageProduct:    {roles: adminOnly, regionScoped: true},
		ViewRegions:      {roles: anyRole},
		ManageRegions:    {roles: adminOnly, superOnly: true},
		AssignRole:       {roles: adminOnly, superOnly: true},
		DecideKYC:        {roles: adminOnly, regionScoped: true, unscopedOK: true},
		ProvisionCourier: {roles: adminOnly, regionScoped: true},
		ViewOrder:        {roles: anyRole, regionScoped: true, orderScoped: true},
		ListOrders:       {roles: anyRole, regionScoped: true},
		CountOrders:      {roles: adminOnly, regionScoped: true},
		CancelOrder:      {roles: []profile.Role{profile.RoleCustomer, profile.RoleAdmin}, regionScoped: true, orderScoped: true},
		AdvanceDelivery:  {roles: []profile.Role{profile.RoleLogistics}, orderScoped: true},
		ManageOrder:      {roles: adminOnly, regionScoped: true},
		AssignOrder:      {roles: adminOnly, regionScoped: true},
	}
}

// Target describes the resource an action applies to. Zero fields mean the
// resource has no such attribute.
type Target struct {
	RegionID   *kernel.UUID
	OwnerID    *kernel.UUID
	AssigneeID *kernel.UUID
}

func RegionTarget(regionID *kernel.UUID) Target {
	return Target{RegionID: regionID}
}

func OrderTarget(o *order.Order) Target {
	regionID := o.RegionID()
	ownerID := o.UserID()
	return Target{RegionID: &regionID, OwnerID: &ownerID, AssigneeID: o.AssignedTo()}
}

type AccessPolicy struct{}

func NewAccessPolicy() AccessPolicy {
	return AccessPolicy{}
}

// Authorize returns nil when actor may perform action on target. A nil actor
// is unauthenticated. Rules apply in order: authentication, role (including
// super-admin and KYC gates), region scope, customer ownership, courier
// assignment. The first failing rule decides the error kind.
func (p AccessPolicy) Authorize(actor profile.Actor, action Action, target Target) error {
	if err := p.Precheck(actor, action); err != nil {
		return err
	}
	r := getRules()[action]

	switch a := actor.(type) {
	case profile.Admin:
		if r.regionScoped && !a.IsSuper() {
			return checkRegion(action, a.Region, target.RegionID, r.unscopedOK)
		}
	case profile.Customer:
		if r.orderScoped && (target.OwnerID == nil || !target.OwnerID.IsEqual(a.ID)) {
			return errs.NewForbiddenError(string(action), "order belongs to another customer")
		}
	case profile.Logistics:
		if r.orderScoped && (target.AssigneeID == nil || !target.AssigneeID.IsEqual(a.ID)) {
			return errs.NewForbiddenError(string(action), "order is not assigned to this courier")
		}
	}

	return nil
}

// Precheck applies the rules that do not depend on the target: authentication,
// role, super-admin and KYC gates. Handlers call it before loading the target
// so that callers without access learn nothing about what exists.
func (AccessPolicy) Precheck(actor profile.Actor, action Action) error {
	if actor == nil {
		return errs.NewUnauthorizedError(string(action))
	}

	r, ok := getRules()[action]
	if !ok {
		return errs.NewForbiddenError(string(action), "unknown action")
	}

	if !slices.Contains(r.roles, actor.ActorRole()) {
		return errs.NewForbiddenError(string(action), "role "+actor.ActorRole().String()+" may not perform this action")
	}

	switch a := actor.(type) {
	case profile.Admin:
		if r.superOnly && !a.IsSuper() {
			return errs.NewForbiddenError(string(action), "requires super_admin")
		}
	case profile.Customer:
		if r.kycGate && a.KYC != profile.KYCApproved {
			return errs.NewForbiddenError(string(action), "KYC status is "+a.KYC.String())
		}
	}

	return nil
}

func checkRegion(action Action, actorRegion, targetRegion *kernel.UUID, unscopedOK bool) error {
	if targetRegion == nil {
		if unscopedOK {
			return nil
		}
		return errs.NewRegionMismatchError(string(action), regionName(actorRegion), "any")
	}
	if actorRegion == nil || !actorRegion.IsEqual(*targetRegion) {
		return errs.NewRegionMismatchError(string(action), regionName(actorRegion), targetRegion.String())
	}
	return nil
}

func regionName(id *kernel.UUID) string {
	if id == nil {
		return "none"
	}
	return id.String()
}
