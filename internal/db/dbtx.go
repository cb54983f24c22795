package db

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// DBTX is the common interface satisfied by both *sqlx.DB and *sqlx.Tx.
// Repository implementations depend on this interface instead of the
// concrete *sqlx.DB, enabling transactional composition.
type DBTX interface {
	sqlx.ExtContext
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Compile-time verification that *sqlx.DB and *sqlx.Tx satisfy DBTX.
var (
	_ DBTX = (*sqlx.DB)(nil)
	_ DBTX = (*sqlx.Tx)(nil)
)

// InsertReturningID runs an INSERT ... RETURNING id statement written with '?'
// placeholders and returns the generated id. Both SQLite and PostgreSQL accept
// RETURNING, so this is the one insert path for every dialect.
func InsertReturningID(ctx context.Context, conn DBTX, query string, args ...any) (int64, error) {
	rows, err := conn.QueryxContext(ctx, conn.Rebind(query+" RETURNING id"), args...)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, err
		}
		return 0, sql.ErrNoRows
	}
	var id int64
	if err := rows.Scan(&id); err != nil {
		return 0, err
	}
	return id, rows.Close()
}
