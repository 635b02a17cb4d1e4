package ports

import (
	"context"
)

// UnitOfWorkFactory hands out a fresh UnitOfWork per operation. Units of work
// are not shared between goroutines.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the transaction boundary of a command. Repositories obtained
// after Begin run inside its transaction; outside of it they read directly.
// Order events recorded by aggregates it stored are published once Commit
// succeeds and are dropped on Rollback.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit fails with a timeout error when the store operation deadline
	// passed while the transaction was open.
	Commit(ctx context.Context) error

	// Rollback is safe to defer; after Commit it only returns an error that
	// deferred callers ignore.
	Rollback(ctx context.Context) error

	RegionRepository() RegionRepository
	ProfileRepository() ProfileRepository
	ProductRepository() ProductRepository
	OrderRepository() OrderRepository
}
