// Package regionrepo persists regions with GORM.
package regionrepo

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/region"

	"github.com/google/uuid"
)

type RegionDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name     string    `gorm:"type:varchar(255);not null"`
	Code     string    `gorm:"type:varchar(16);not null;uniqueIndex"`
	IsActive bool      `gorm:"not null;default:true"`
}

func (RegionDTO) TableName() string {
	return "regions"
}

func fromDomain(r *region.Region) RegionDTO {
	return RegionDTO{
		ID:       r.ID().Bytes(),
		Name:     r.Name(),
		Code:     r.Code(),
		IsActive: r.IsActive(),
	}
}

func toDomain(dto RegionDTO) (*region.Region, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return region.RestoreRegion(id, dto.Name, dto.Code, dto.IsActive)
}
