package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/alexanderramin/taskforge/internal/db"
	"github.com/alexanderramin/taskforge/internal/domain"
)

// SQLTeamRepo implements TeamRepo over any DBTX.
type SQLTeamRepo struct {
	conn db.DBTX
}

// NewSQLTeamRepo creates a new SQLTeamRepo.
func NewSQLTeamRepo(conn db.DBTX) *SQLTeamRepo {
	return &SQLTeamRepo{conn: conn}
}

type teamRow struct {
	ID        int64  `db:"id"`
	UUID      string `db:"uuid"`
	Name      string `db:"name"`
	CreatedAt string `db:"created_at"`
}

func (row teamRow) toDomain() (*domain.Team, error) {
	created, err := parseTimestamp("created_at", row.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &domain.Team{ID: row.ID, UUID: row.UUID, Name: row.Name, CreatedAt: created}, nil
}

type memberRow struct {
	TeamID   int64  `db:"team_id"`
	UserID   int64  `db:"user_id"`
	Role     string `db:"role"`
	JoinedAt string `db:"joined_at"`
}

func (r *SQLTeamRepo) Create(ctx context.Context, t *domain.Team) error {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}
	id, err := db.InsertReturningID(ctx, r.conn,
		`INSERT INTO teams (uuid, name, created_at) VALUES (?, ?, ?)`,
		t.UUID, t.Name, formatTimestamp(t.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting team: %w", err)
	}
	t.ID = id
	return nil
}

func (r *SQLTeamRepo) GetByID(ctx context.Context, id int64) (*domain.Team, error) {
	return r.getOne(ctx, `SELECT id, uuid, name, created_at FROM teams WHERE id = ?`, id)
}

func (r *SQLTeamRepo) GetByUUID(ctx context.Context, uuid string) (*domain.Team, error) {
	return r.getOne(ctx, `SELECT id, uuid, name, created_at FROM teams WHERE uuid = ?`, uuid)
}

func (r *SQLTeamRepo) getOne(ctx context.Context, query string, key any) (*domain.Team, error) {
	var row teamRow
	if err := sqlx.GetContext(ctx, r.conn, &row, r.conn.Rebind(query), key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFound("team", key)
		}
		return nil, fmt.Errorf("fetching team: %w", err)
	}
	return row.toDomain()
}

func (r *SQLTeamRepo) List(ctx context.Context) ([]*domain.Team, error) {
	var rows []teamRow
	if err := sqlx.SelectContext(ctx, r.conn, &rows, `SELECT id, uuid, name, created_at FROM teams ORDER BY name, id`); err != nil {
		return nil, fmt.Errorf("listing teams: %w", err)
	}
	teams := make([]*domain.Team, 0, len(rows))
	for _, row := range rows {
		t, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, nil
}

func (r *SQLTeamRepo) AddMember(ctx context.Context, m *domain.TeamMember) error {
	if m.Role == "" {
		m.Role = domain.RoleMember
	}
	if m.JoinedAt.IsZero() {
		m.JoinedAt = time.Now().UTC().Truncate(time.Second)
	}
	_, err := r.conn.ExecContext(ctx, r.conn.Rebind(
		`INSERT INTO team_members (team_id, user_id, role, joined_at) VALUES (?, ?, ?, ?)`),
		m.TeamID, m.UserID, string(m.Role), formatTimestamp(m.JoinedAt),
	)
	if err != nil {
		return fmt.Errorf("adding team member: %w", err)
	}
	return nil
}

func (r *SQLTeamRepo) ListMembers(ctx context.Context, teamID int64) ([]domain.TeamMember, error) {
	var rows []memberRow
	err := sqlx.SelectContext(ctx, r.conn, &rows, r.conn.Rebind(
		`SELECT team_id, user_id, role, joined_at FROM team_members WHERE team_id = ? ORDER BY user_id`), teamID)
	if err != nil {
		return nil, fmt.Errorf("listing team members: %w", err)
	}
	members := make([]domain.TeamMember, 0, len(rows))
	for _, row := range rows {
		joined, err := parseTimestamp("joined_at", row.JoinedAt)
		if err != nil {
			return nil, err
		}
		members = append(members, domain.TeamMember{
			TeamID:   row.TeamID,
			UserID:   row.UserID,
			Role:     domain.MemberRole(row.Role),
			JoinedAt: joined,
		})
	}
	return members, nil
}

func (r *SQLTeamRepo) ListMemberIDs(ctx context.Context, teamID int64) ([]int64, error) {
	var ids []int64
	err := sqlx.SelectContext(ctx, r.conn, &ids, r.conn.Rebind(
		`SELECT user_id FROM team_members WHERE team_id = ? ORDER BY user_id`), teamID)
	if err != nil {
		return nil, fmt.Errorf("listing team member ids: %w", err)
	}
	return ids, nil
}
