// Package repositories implements the domain repository contracts on
// PostgreSQL.
package repositories

import (
	"context"
	"database/sql"
)

// queryExecutor is satisfied by both *sql.DB and *sql.Tx so repositories can
// run inside or outside a transaction.
type queryExecutor interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}
