package profile

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

type Role int

const (
	UnknownRole Role = iota
	RoleCustomer
	RoleAdmin
	RoleLogistics
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		UnknownRole:   "unknown",
		RoleCustomer:  "customer",
		RoleAdmin:     "admin",
		RoleLogistics: "logistics",
	}
}

func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "unknown"
}

func (r Role) Validate() error {
	if _, ok := getRoleStrings()[r]; !ok || r == UnknownRole {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

func ParseRole(s string) (Role, error) {
	for role, name := range getRoleStrings() {
		if role != UnknownRole && name == s {
			return role, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

// AdminTier is meaningful only for admins. Everyone else carries NoTier.
type AdminTier int

const (
	NoTier AdminTier = iota
	TierAdmin
	TierSuperAdmin
)

func getTierStrings() map[AdminTier]string {
	return map[AdminTier]string{
		NoTier:         "",
		TierAdmin:      "admin",
		TierSuperAdmin: "super_admin",
	}
}

func (t AdminTier) String() string {
	return getTierStrings()[t]
}

// ParseAdminTier accepts "" as NoTier.
func ParseAdminTier(s string) (AdminTier, error) {
	for tier, name := range getTierStrings() {
		if name == s {
			return tier, nil
		}
	}
	return NoTier, errs.NewValueIsInvalidErrorWithCause("admin_role", fmt.Errorf("%q is not a valid admin tier", s))
}
