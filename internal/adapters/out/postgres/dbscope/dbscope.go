// Package dbscope bounds single statements issued by the repositories.
//
// A transaction opened with a deadline does not interrupt a statement that
// is already waiting on the server, for example on a row lock, so every
// statement carries its own deadline as well.
package dbscope

import (
	"context"

	"gorm.io/gorm"
)

// Scope is implemented by owners of a connection that bound each statement,
// such as the unit of work.
type Scope interface {
	StatementContext(ctx context.Context) (context.Context, context.CancelFunc)
}

// Bind returns db bound to ctx. When owner implements Scope, ctx is narrowed
// by it first. The returned cancel func must be called once the statement
// has finished reading its rows.
//
// Example:
//
//	db, cancel := dbscope.Bind(ctx, r.db, r.tracker)
//	defer cancel()
//	err := db.First(&dto, "id = ?", id).Error
func Bind(ctx context.Context, db *gorm.DB, owner any) (*gorm.DB, context.CancelFunc) {
	if scope, ok := owner.(Scope); ok {
		ctx, cancel := scope.StatementContext(ctx)
		return db.WithContext(ctx), cancel
	}
	return db.WithContext(ctx), func() {}
}
