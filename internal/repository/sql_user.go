package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/alexanderramin/taskforge/internal/db"
	"github.com/alexanderramin/taskforge/internal/domain"
)

// SQLUserRepo implements UserRepo over any DBTX.
type SQLUserRepo struct {
	conn db.DBTX
}

// NewSQLUserRepo creates a new SQLUserRepo.
func NewSQLUserRepo(conn db.DBTX) *SQLUserRepo {
	return &SQLUserRepo{conn: conn}
}

type userRow struct {
	ID        int64  `db:"id"`
	UUID      string `db:"uuid"`
	Name      string `db:"name"`
	Email     string `db:"email"`
	CreatedAt string `db:"created_at"`
}

func (row userRow) toDomain() (*domain.User, error) {
	created, err := parseTimestamp("created_at", row.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &domain.User{ID: row.ID, UUID: row.UUID, Name: row.Name, Email: row.Email, CreatedAt: created}, nil
}

// Create stores the user with a lower-cased email.
func (r *SQLUserRepo) Create(ctx context.Context, u *domain.User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	id, err := db.InsertReturningID(ctx, r.conn,
		`INSERT INTO users (uuid, name, email, created_at) VALUES (?, ?, ?, ?)`,
		u.UUID, u.Name, u.Email, formatTimestamp(u.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}
	u.ID = id
	return nil
}

func (r *SQLUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, `SELECT id, uuid, name, email, created_at FROM users WHERE id = ?`, id)
}

// GetByEmail matches case-insensitively.
func (r *SQLUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT id, uuid, name, email, created_at FROM users WHERE email = ?`,
		strings.ToLower(strings.TrimSpace(email)))
}

func (r *SQLUserRepo) getOne(ctx context.Context, query string, key any) (*domain.User, error) {
	var row userRow
	if err := sqlx.GetContext(ctx, r.conn, &row, r.conn.Rebind(query), key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFound("user", key)
		}
		return nil, fmt.Errorf("fetching user: %w", err)
	}
	return row.toDomain()
}

func (r *SQLUserRepo) List(ctx context.Context) ([]*domain.User, error) {
	var rows []userRow
	if err := sqlx.SelectContext(ctx, r.conn, &rows, `SELECT id, uuid, name, email, created_at FROM users ORDER BY id`); err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	users := make([]*domain.User, 0, len(rows))
	for _, row := range rows {
		u, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}
