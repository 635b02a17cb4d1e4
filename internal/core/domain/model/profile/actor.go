package profile

import "fulfillment/internal/core/domain/model/kernel"

// Actor is the caller of a core operation as seen by the access policy.
// The set of implementations is closed: Customer, Admin and Logistics.
type Actor interface {
	ActorID() kernel.UUID
	ActorRegion() *kernel.UUID
	ActorRole() Role

	sealed()
}

// Customer is a buyer. Purchases are gated on KYC being approved.
type Customer struct {
	ID     kernel.UUID
	Region *kernel.UUID
	KYC    KYCStatus
}

// ActorID returns the customer's profile ID.
func (c Customer) ActorID() kernel.UUID {
	return c.ID
}

// ActorRegion returns the customer's home region.
// Returns nil when the customer has not picked one.
func (c Customer) ActorRegion() *kernel.UUID {
	return c.Region
}

// ActorRole always returns RoleCustomer.
func (c Customer) ActorRole() Role {
	return RoleCustomer
}

func (Customer) sealed() {}

// Admin manages regions, catalog and orders. A super admin acts on every region;
// a regular admin only on Region.
//
// Example:
//
//	actor := profile.Admin{ID: id, Tier: profile.TierAdmin, Region: &regionID}
//	actor.IsSuper() // false
type Admin struct {
	ID     kernel.UUID
	Tier   AdminTier
	Region *kernel.UUID
}

// ActorID returns the admin's profile ID.
func (a Admin) ActorID() kernel.UUID {
	return a.ID
}

// ActorRegion returns the region a regular admin is bound to.
// Returns nil for super admins.
func (a Admin) ActorRegion() *kernel.UUID {
	return a.Region
}

// ActorRole always returns RoleAdmin.
func (a Admin) ActorRole() Role {
	return RoleAdmin
}

// IsSuper reports whether the admin acts across every region.
func (a Admin) IsSuper() bool {
	return a.Tier == TierSuperAdmin
}

func (Admin) sealed() {}

// Logistics is a courier. Couriers see and advance only the orders assigned
// to them.
type Logistics struct {
	ID     kernel.UUID
	Region *kernel.UUID
}

// ActorID returns the courier's profile ID.
func (l Logistics) ActorID() kernel.UUID {
	return l.ID
}

// ActorRegion returns the region the courier works in.
func (l Logistics) ActorRegion() *kernel.UUID {
	return l.Region
}

// ActorRole always returns RoleLogistics.
func (l Logistics) ActorRole() Role {
	return RoleLogistics
}

func (Logistics) sealed() {}
