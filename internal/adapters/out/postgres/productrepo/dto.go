// Package productrepo persists catalog products with GORM.
package productrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductDTO struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RegionID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name             string          `gorm:"type:varchar(255);not null"`
	Price            decimal.Decimal `gorm:"type:numeric(14,4);not null"`
	PricePerQuantity int             `gorm:"type:int;not null"`
	Unit             string          `gorm:"type:varchar(32);not null"`
	ImageURL         string          `gorm:"type:text;not null;default:''"`
	IsActive         bool            `gorm:"not null;index"`
	CreatedAt        time.Time       `gorm:"not null;autoCreateTime:false"`
	UpdatedAt        time.Time       `gorm:"not null;autoUpdateTime:false"`
}

func (ProductDTO) TableName() string {
	return "products"
}

func fromDomain(p *product.Product) ProductDTO {
	s := p.Snapshot()
	return ProductDTO{
		ID:               s.ID.Bytes(),
		RegionID:         s.RegionID.Bytes(),
		Name:             s.Details.Name,
		Price:            s.Details.Price,
		PricePerQuantity: s.Details.PricePerQuantity,
		Unit:             s.Details.Unit,
		ImageURL:         s.ImageURL,
		IsActive:         s.IsActive,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	regionID, err := kernel.UUIDFromBytes(dto.RegionID[:])
	if err != nil {
		return nil, err
	}

	return product.RestoreProduct(product.Snapshot{
		ID:       id,
		RegionID: regionID,
		Details: product.Details{
			Name:             dto.Name,
			Price:            dto.Price,
			PricePerQuantity: dto.PricePerQuantity,
			Unit:             dto.Unit,
		},
		ImageURL:  dto.ImageURL,
		IsActive:  dto.IsActive,
		CreatedAt: dto.CreatedAt,
		UpdatedAt: dto.UpdatedAt,
	})
}
