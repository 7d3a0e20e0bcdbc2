package postgres

import (
	"context"
	"database/sql"
)

// SQLQuerier is the subset of database/sql operations the repositories use.
// Both *sql.DB and *sql.Tx satisfy it, which lets the unit of work hand the
// same repository code a transaction.
type SQLQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
