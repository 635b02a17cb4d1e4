// Package profilerepo persists user profiles, their role assignment and KYC
// review state, with GORM.
package profilerepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/profile"

	"github.com/google/uuid"
)

type ProfileDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	FullName  string     `gorm:"type:varchar(255);not null"`
	Email     string     `gorm:"type:varchar(320);index"`
	Role      string     `gorm:"type:varchar(16);not null;index"`
	AdminTier string     `gorm:"type:varchar(16);not null;default:''"`
	RegionID  *uuid.UUID `gorm:"type:uuid;index"`
	KYC       KYCDTO     `gorm:"embedded;embeddedPrefix:kyc_"`
	CreatedAt time.Time  `gorm:"not null;autoCreateTime:false"`
	UpdatedAt time.Time  `gorm:"not null;autoUpdateTime:false"`
}

func (ProfileDTO) TableName() string {
	return "profiles"
}

// KYCDTO is embedded into the profiles table.
type KYCDTO struct {
	Status          string     `gorm:"type:varchar(16);not null"`
	RejectionReason string     `gorm:"type:text;not null;default:''"`
	DecidedAt       *time.Time
	DecidedBy       *uuid.UUID `gorm:"type:uuid"`
}

func fromDomain(p *profile.Profile) ProfileDTO {
	s := p.Snapshot()
	return ProfileDTO{
		ID:        s.ID.Bytes(),
		FullName:  s.FullName,
		Email:     s.Email,
		Role:      s.Role.String(),
		AdminTier: s.AdminTier.String(),
		RegionID:  optionalBytes(s.RegionID),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
		KYC: KYCDTO{
			Status:          s.KYC.Status.String(),
			RejectionReason: s.KYC.RejectionReason,
			DecidedAt:       s.KYC.DecidedAt,
			DecidedBy:       optionalBytes(s.KYC.DecidedBy),
		},
	}
}

func toDomain(dto ProfileDTO) (*profile.Profile, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	role, err := profile.ParseRole(dto.Role)
	if err != nil {
		return nil, err
	}
	tier, err := profile.ParseAdminTier(dto.AdminTier)
	if err != nil {
		return nil, err
	}
	kyc, err := profile.ParseKYCStatus(dto.KYC.Status)
	if err != nil {
		return nil, err
	}
	regionID, err := optionalUUID(dto.RegionID)
	if err != nil {
		return nil, err
	}
	decidedBy, err := optionalUUID(dto.KYC.DecidedBy)
	if err != nil {
		return nil, err
	}

	return profile.RestoreProfile(profile.Snapshot{
		ID:        id,
		FullName:  dto.FullName,
		Email:     dto.Email,
		Role:      role,
		AdminTier: tier,
		RegionID:  regionID,
		KYC: profile.KYC{
			Status:          kyc,
			RejectionReason: dto.KYC.RejectionReason,
			DecidedAt:       dto.KYC.DecidedAt,
			DecidedBy:       decidedBy,
		},
		CreatedAt: dto.CreatedAt,
		UpdatedAt: dto.UpdatedAt,
	})
}

func optionalBytes(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil //nolint:nilnil // column is nullable
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
