// Package dbx provides a tiny DB abstraction shared by SQL repositories:
// a minimal interface (DBTX) implemented by both *sql.DB and *sql.Tx.
//
// Every write in this system touches exactly one user record or appends one
// uniquely-keyed event, so no multi-statement transaction helper is needed.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql used by our repos.
// Both *sql.DB and *sql.Tx satisfy this interface.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
