package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/jmoiron/sqlx"

	"github.com/alexanderramin/taskforge/internal/db"
)

// FailOnNthExecUoW is a test UoW that injects an error on the Nth write
// within a transaction. This enables rollback integration tests by
// simulating failures at precise points in multi-write operations.
//
// Writes are ExecContext calls plus QueryxContext calls whose statement is an
// INSERT, UPDATE or DELETE (INSERT ... RETURNING runs through QueryxContext).
// They are counted starting at 1. Reads pass through normally.
type FailOnNthExecUoW struct {
	DB     *sqlx.DB
	FailOn int32
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	wrapped := &failOnNthExec{DBTX: tx, failOn: u.FailOn, err: u.Err}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type failOnNthExec struct {
	db.DBTX
	count  atomic.Int32
	failOn int32
	err    error
}

func (f *failOnNthExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.count.Add(1) == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}

func (f *failOnNthExec) QueryxContext(ctx context.Context, query string, args ...any) (*sqlx.Rows, error) {
	if isWrite(query) && f.count.Add(1) == f.failOn {
		return nil, f.err
	}
	return f.DBTX.QueryxContext(ctx, query, args...)
}

func isWrite(query string) bool {
	q := strings.ToUpper(strings.TrimSpace(query))
	return strings.HasPrefix(q, "INSERT") || strings.HasPrefix(q, "UPDATE") || strings.HasPrefix(q, "DELETE")
}
