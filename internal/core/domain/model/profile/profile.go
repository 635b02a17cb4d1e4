package profile

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var ErrProfileIsNotConstructed = errors.New("Profile must be created via NewProfile or RestoreProfile")

type Profile struct {
	id        kernel.UUID
	fullName  string
	email     string
	role      Role
	adminTier AdminTier
	regionID  *kernel.UUID
	kyc       KYC
	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewProfile registers a user. Customers start with a pending KYC review;
// other roles are created approved because the gate only applies to customers.
//
// Parameters:
//   - id: the identifier issued by the identity provider
//   - fullName: the display name, trimmed
//   - email: optional; stored lower case when given
//   - role: the initial role
//   - tier: the admin tier, NoTier for anything but admins
//   - regionID: the home region, required for regular admins
//   - now: the registration time
//
// Returns:
//   - *Profile: the new profile
//   - error: every invalid field, joined into one error
//
// Example:
//
//	p, err := profile.NewProfile(id, "Ayu", "ayu@example.com", profile.RoleCustomer, profile.NoTier, &regionID, now)
//	if err != nil {
//	    return err
//	}
//	p.IsKYCApproved() // false
func NewProfile(
	id kernel.UUID,
	fullName, email string,
	role Role,
	tier AdminTier,
	regionID *kernel.UUID,
	now time.Time,
) (*Profile, error) {
	p := &Profile{
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setFullName(fullName),
		p.setEmail(email),
		p.setRole(role, tier, regionID),
	); err != nil {
		return nil, err
	}

	if role == RoleCustomer {
		p.kyc = KYC{Status: KYCPending}
	} else {
		p.kyc = KYC{Status: KYCApproved}
	}

	return p, nil
}

// Snapshot is the full persisted state of a profile. It is what repositories
// write and what RestoreProfile accepts.
type Snapshot struct {
	ID        kernel.UUID
	FullName  string
	Email     string
	Role      Role
	AdminTier AdminTier
	RegionID  *kernel.UUID
	KYC       KYC
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RestoreProfile rebuilds a profile from storage. The role invariants and the
// KYC record are checked again, so a corrupted row fails to load.
func RestoreProfile(s Snapshot) (*Profile, error) {
	p := &Profile{
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(s.ID),
		p.setFullName(s.FullName),
		p.setEmail(s.Email),
		p.setRole(s.Role, s.AdminTier, s.RegionID),
		s.KYC.Validate(),
	); err != nil {
		return nil, err
	}
	p.kyc = s.KYC

	return p, nil
}

// Validate reports ErrProfileIsNotConstructed for a nil or zero profile.
func (p *Profile) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProfileIsNotConstructed
	}
	return nil
}

// ID returns the user identifier shared with the identity provider.
func (p *Profile) ID() kernel.UUID {
	return p.id
}

// FullName returns the display name. It may be empty.
func (p *Profile) FullName() string {
	return p.fullName
}

// Email returns the lower case address, or an empty string when unknown.
func (p *Profile) Email() string {
	return p.email
}

// Role returns the current role.
func (p *Profile) Role() Role {
	return p.role
}

// AdminTier returns the admin tier. It is NoTier unless the role is admin.
func (p *Profile) AdminTier() AdminTier {
	return p.adminTier
}

// RegionID returns the home region.
// Returns nil for super admins and for users without a region.
func (p *Profile) RegionID() *kernel.UUID {
	return p.regionID
}

// KYC returns the current KYC record, decision details included.
func (p *Profile) KYC() KYC {
	return p.kyc
}

// CreatedAt returns the registration time.
func (p *Profile) CreatedAt() time.Time {
	return p.createdAt
}

// UpdatedAt returns the time of the last role or KYC change.
func (p *Profile) UpdatedAt() time.Time {
	return p.updatedAt
}

// IsSuperAdmin reports whether the profile is an admin of the super tier.
func (p *Profile) IsSuperAdmin() bool {
	return p.role == RoleAdmin && p.adminTier == TierSuperAdmin
}

// IsKYCApproved reports whether the KYC status is approved. Non-customers are
// created approved; the access policy only consults this for customers.
func (p *Profile) IsKYCApproved() bool {
	return p.kyc.Status == KYCApproved
}

// Snapshot returns the full state for persistence. RegionID is shared with the
// profile and must not be modified.
func (p *Profile) Snapshot() Snapshot {
	return Snapshot{
		ID:        p.id,
		FullName:  p.fullName,
		Email:     p.email,
		Role:      p.role,
		AdminTier: p.adminTier,
		RegionID:  p.regionID,
		KYC:       p.kyc,
		CreatedAt: p.createdAt,
		UpdatedAt: p.updatedAt,
	}
}

// Actor returns the closed role variant the access policy reasons about.
func (p *Profile) Actor() Actor {
	switch p.role {
	case RoleAdmin:
		return Admin{ID: p.id, Tier: p.adminTier, Region: p.regionID}
	case RoleLogistics:
		return Logistics{ID: p.id, Region: p.regionID}
	default:
		return Customer{ID: p.id, Region: p.regionID, KYC: p.kyc.Status}
	}
}

// AssignRole changes role, tier and region together so the invariants are
// checked against the final combination. A profile that becomes a customer
// from another role starts over with a pending KYC review; staying a
// customer keeps the existing record.
//
// Parameters:
//   - role: the new role
//   - tier: the admin tier, NoTier for anything but admins
//   - regionID: the home region, required for regular admins
//   - now: the time recorded as the last update
//
// Returns:
//   - error: a validation error when the combination is not allowed. The
//     profile is left untouched in that case.
//
// Example:
//
//	if err := p.AssignRole(profile.RoleCustomer, profile.NoTier, nil, now); err != nil {
//	    return err
//	}
//	p.IsKYCApproved() // false until an admin approves the new customer
func (p *Profile) AssignRole(role Role, tier AdminTier, regionID *kernel.UUID, now time.Time) error {
	wasCustomer := p.role == RoleCustomer
	if err := p.setRole(role, tier, regionID); err != nil {
		return err
	}
	if role == RoleCustomer && (!wasCustomer || p.kyc.Status == UnknownKYC) {
		p.kyc = KYC{Status: KYCPending}
	}
	p.updatedAt = now
	return nil
}

// DecideKYC records an approve or reject decision on a customer.
func (p *Profile) DecideKYC(decision KYCStatus, reason string, decidedBy kernel.UUID, now time.Time) error {
	if p.role != RoleCustomer {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("KYC decisions apply to customers, profile is %s", p.role))
	}

	next, err := p.kyc.decide(decision, reason, decidedBy, now)
	if err != nil {
		return err
	}
	p.kyc = next
	p.updatedAt = now
	return nil
}

func (p *Profile) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Profile) setFullName(name string) error {
	p.fullName = strings.TrimSpace(name)
	return nil
}

func (p *Profile) setEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		p.email = ""
		return nil
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("email", err)
	}
	p.email = strings.ToLower(email)
	return nil
}

func (p *Profile) setRole(role Role, tier AdminTier, regionID *kernel.UUID) error {
	if err := role.Validate(); err != nil {
		return err
	}
	if regionID != nil {
		if err := regionID.Validate(); err != nil {
			return err
		}
	}

	switch role {
	case RoleAdmin:
		if tier == NoTier {
			return errs.NewValueIsRequiredError("admin_role")
		}
		if tier == TierAdmin && regionID == nil {
			return errs.NewValueIsRequiredErrorWithCause("region_id", errors.New("a regular admin must belong to a region"))
		}
	case RoleCustomer, RoleLogistics, UnknownRole:
		if tier != NoTier {
			return errs.NewValueIsInvalidErrorWithCause("admin_role",
				fmt.Errorf("admin tier is only meaningful for admins, role is %s", role))
		}
	}

	p.role = role
	p.adminTier = tier
	p.regionID = regionID
	return nil
}
