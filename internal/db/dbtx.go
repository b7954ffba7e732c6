package db

import (
	"context"
	"database/sql"
)

// DBTX is what the kv repository queries through. Plain reads and the
// per-completion upsert use *sql.DB; `stats reset` hands it a *sql.Tx so
// the read of the old counters and the zeroing write commit together.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
