// Package commands contains business operations that modify system state.
// Every handler follows the same shape: validate the command, open a unit of
// work, load aggregates, ask the domain services for permission, mutate, and
// commit. Nothing is written when any step fails.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces narrowed to the repositories each handler touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	RegionRepoFactory interface {
		RegionRepository() ports.RegionRepository
	}

	ProfileRepoFactory interface {
		ProfileRepository() ports.ProfileRepository
	}

	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// RegionUoW is used by region directory maintenance.
	RegionUoW interface {
		TxManager
		RegionRepoFactory
	}

	RegionUoWFactory interface {
		Create() RegionUoW
	}

	// ProfileUoW is used by role and KYC changes and courier provisioning.
	// Regions are read to check that a referenced region exists; orders are
	// counted before a courier loses their role.
	ProfileUoW interface {
		TxManager
		ProfileRepoFactory
		RegionRepoFactory
		OrderRepoFactory
	}

	ProfileUoWFactory interface {
		Create() ProfileUoW
	}

	// CatalogUoW is used by product maintenance.
	CatalogUoW interface {
		TxManager
		RegionRepoFactory
		ProductRepoFactory
	}

	CatalogUoWFactory interface {
		Create() CatalogUoW
	}

	// OrderUoW is used by lifecycle operations on existing orders. Profiles
	// are read to resolve the courier being assigned.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		ProfileRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CheckoutUoW coordinates order placement: the region and every product
	// are re-read inside the transaction that stores the order.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   products, err := uow.ProductRepository().GetMany(ctx, ids)
	//   // ... re-price and build the order
	//   err = uow.OrderRepository().Add(ctx, o)
	//
	//   err = uow.Commit(ctx)
	CheckoutUoW interface {
		TxManager
		RegionRepoFactory
		ProductRepoFactory
		OrderRepoFactory
	}

	CheckoutUoWFactory interface {
		Create() CheckoutUoW
	}
)
