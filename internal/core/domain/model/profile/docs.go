// Package profile implements the identity and role registry entry of a user.
//
// A Profile carries the role (customer, admin or logistics), the admin tier,
// the region affinity and the KYC state. The registry is the only place these
// facts are mutated; every other component reads them through an Actor, a
// closed variant (Customer, Admin or Logistics) derived from the profile.
//
// Invariants enforced here:
//   - the admin tier is set only for admins;
//   - a regular admin always has a region, a super admin may have none;
//   - the KYC rejection reason is present exactly when the status is rejected.
package profile
