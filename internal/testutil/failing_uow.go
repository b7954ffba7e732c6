package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/tomato/internal/db"
)

// FailOnNthExecUoW fails the Nth kv write inside a transaction with Err,
// counting from 1. `stats reset` writes once, the zeroed record, so
// FailOn 1 leaves the stored counters in place. Reads pass through.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning kv transaction: %w", err)
	}

	writes := &failingWrites{DBTX: tx, failOn: u.FailOn, err: u.Err}
	if err := fn(ctx, writes); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

type failingWrites struct {
	db.DBTX
	n      atomic.Int32
	failOn int32
	err    error
}

func (f *failingWrites) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.n.Add(1) == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
