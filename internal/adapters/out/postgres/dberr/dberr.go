// Package dberr classifies errors returned by the database driver.
package dberr

import (
	"database/sql"
	"errors"

	"fulfillment/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

const dependency = "postgres"

// Postgres error codes reported when a statement is interrupted.
const (
	codeQueryCanceled    = "57014"
	codeLockNotAvailable = "55P03"
)

// Wrap maps a driver error onto the failure kinds of the errs package.
// The unit of work aborts its transaction when the store timeout elapses, so
// a statement running on a finished transaction is reported as a timeout.
// So is a statement the server cancelled on its deadline.
func Wrap(err error) error {
	if errors.Is(err, sql.ErrTxDone) {
		return errs.NewTimeoutError(dependency, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && (pgErr.Code == codeQueryCanceled || pgErr.Code == codeLockNotAvailable) {
		return errs.NewTimeoutError(dependency, err)
	}
	return errs.WrapDependency(dependency, err)
}
