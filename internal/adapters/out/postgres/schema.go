package postgres

import (
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/productrepo"
	"fulfillment/internal/adapters/out/postgres/profilerepo"
	"fulfillment/internal/adapters/out/postgres/regionrepo"

	"gorm.io/gorm"
)

// Migrate creates or alters the tables of every repository.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&regionrepo.RegionDTO{},
		&profilerepo.ProfileDTO{},
		&productrepo.ProductDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
	)
}
