package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/alexanderramin/taskforge/internal/db"
	"github.com/alexanderramin/taskforge/internal/domain"
)

// SQLProjectRepo implements ProjectRepo over any DBTX.
type SQLProjectRepo struct {
	conn db.DBTX
}

// NewSQLProjectRepo creates a new SQLProjectRepo.
func NewSQLProjectRepo(conn db.DBTX) *SQLProjectRepo {
	return &SQLProjectRepo{conn: conn}
}

const projectColumns = `id, uuid, name, description, team_id, created_by, status, start_date, end_date, created_at, updated_at`

type projectRow struct {
	ID          int64          `db:"id"`
	UUID        string         `db:"uuid"`
	Name        string         `db:"name"`
	Description string         `db:"description"`
	TeamID      int64          `db:"team_id"`
	CreatedBy   int64          `db:"created_by"`
	Status      string         `db:"status"`
	StartDate   sql.NullString `db:"start_date"`
	EndDate     sql.NullString `db:"end_date"`
	CreatedAt   string         `db:"created_at"`
	UpdatedAt   string         `db:"updated_at"`
}

func (row projectRow) toDomain() (*domain.Project, error) {
	p := &domain.Project{
		ID:          row.ID,
		UUID:        row.UUID,
		Name:        row.Name,
		Description: row.Description,
		TeamID:      row.TeamID,
		CreatedBy:   row.CreatedBy,
		Status:      domain.ProjectStatus(row.Status),
		StartDate:   parseNullableTime(row.StartDate, domain.DateLayout),
		EndDate:     parseNullableTime(row.EndDate, domain.DateLayout),
	}
	var err error
	if p.CreatedAt, err = parseTimestamp("created_at", row.CreatedAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTimestamp("updated_at", row.UpdatedAt); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *SQLProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	stampTimes(&p.CreatedAt, &p.UpdatedAt)
	if p.Status == "" {
		p.Status = domain.ProjectPlanning
	}

	id, err := db.InsertReturningID(ctx, r.conn,
		`INSERT INTO projects (uuid, name, description, team_id, created_by, status, start_date, end_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.UUID,
		p.Name,
		p.Description,
		p.TeamID,
		p.CreatedBy,
		string(p.Status),
		dateOrNil(p.StartDate),
		dateOrNil(p.EndDate),
		formatTimestamp(p.CreatedAt),
		formatTimestamp(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	p.ID = id
	return nil
}

func (r *SQLProjectRepo) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	return r.getOne(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
}

func (r *SQLProjectRepo) GetByUUID(ctx context.Context, uuid string) (*domain.Project, error) {
	return r.getOne(ctx, `SELECT `+projectColumns+` FROM projects WHERE uuid = ?`, uuid)
}

func (r *SQLProjectRepo) getOne(ctx context.Context, query string, key any) (*domain.Project, error) {
	var row projectRow
	if err := sqlx.GetContext(ctx, r.conn, &row, r.conn.Rebind(query), key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFound("project", key)
		}
		return nil, fmt.Errorf("fetching project: %w", err)
	}
	return row.toDomain()
}

func (r *SQLProjectRepo) ListByTeam(ctx context.Context, teamID int64) ([]*domain.Project, error) {
	var rows []projectRow
	err := sqlx.SelectContext(ctx, r.conn, &rows, r.conn.Rebind(
		`SELECT `+projectColumns+` FROM projects WHERE team_id = ? ORDER BY id`), teamID)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	projects := make([]*domain.Project, 0, len(rows))
	for _, row := range rows {
		p, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, nil
}

func (r *SQLProjectRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := sqlx.GetContext(ctx, r.conn, &n, `SELECT COUNT(*) FROM projects`); err != nil {
		return 0, fmt.Errorf("counting projects: %w", err)
	}
	return n, nil
}
