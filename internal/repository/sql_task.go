package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/alexanderramin/taskforge/internal/db"
	"github.com/alexanderramin/taskforge/internal/domain"
)

// SQLTaskRepo implements TaskRepo over any DBTX.
type SQLTaskRepo struct {
	conn db.DBTX
}

// NewSQLTaskRepo creates a new SQLTaskRepo.
func NewSQLTaskRepo(conn db.DBTX) *SQLTaskRepo {
	return &SQLTaskRepo{conn: conn}
}

type taskRow struct {
	ID          int64          `db:"id"`
	UUID        string         `db:"uuid"`
	Title       string         `db:"title"`
	Description string         `db:"description"`
	ProjectID   int64          `db:"project_id"`
	ReporterID  int64          `db:"reporter_id"`
	AssigneeID  sql.NullInt64  `db:"assignee_id"`
	Status      string         `db:"status"`
	Priority    string         `db:"priority"`
	DueDate     sql.NullString `db:"due_date"`
	CreatedAt   string         `db:"created_at"`
	UpdatedAt   string         `db:"updated_at"`
}

func (r *SQLTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	stampTimes(&t.CreatedAt, &t.UpdatedAt)
	if t.Status == "" {
		t.Status = domain.TaskTodo
	}
	if t.Priority == "" {
		t.Priority = domain.PriorityMedium
	}

	id, err := db.InsertReturningID(ctx, r.conn,
		`INSERT INTO tasks (uuid, title, description, project_id, reporter_id, assignee_id, status, priority, due_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.UUID,
		t.Title,
		t.Description,
		t.ProjectID,
		t.ReporterID,
		nullableInt64(t.AssigneeID),
		string(t.Status),
		string(t.Priority),
		dateOrNil(t.DueDate),
		formatTimestamp(t.CreatedAt),
		formatTimestamp(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	t.ID = id
	return nil
}

func (r *SQLTaskRepo) ListByProject(ctx context.Context, projectID int64) ([]*domain.Task, error) {
	var rows []taskRow
	err := sqlx.SelectContext(ctx, r.conn, &rows, r.conn.Rebind(
		`SELECT id, uuid, title, description, project_id, reporter_id, assignee_id, status, priority, due_date, created_at, updated_at
		FROM tasks WHERE project_id = ? ORDER BY id`), projectID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}

	tasks := make([]*domain.Task, 0, len(rows))
	for _, row := range rows {
		t := &domain.Task{
			ID:          row.ID,
			UUID:        row.UUID,
			Title:       row.Title,
			Description: row.Description,
			ProjectID:   row.ProjectID,
			ReporterID:  row.ReporterID,
			AssigneeID:  int64FromNull(row.AssigneeID),
			Status:      domain.TaskStatus(row.Status),
			Priority:    domain.TaskPriority(row.Priority),
			DueDate:     parseNullableTime(row.DueDate, domain.DateLayout),
		}
		if t.CreatedAt, err = parseTimestamp("created_at", row.CreatedAt); err != nil {
			return nil, err
		}
		if t.UpdatedAt, err = parseTimestamp("updated_at", row.UpdatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (r *SQLTaskRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := sqlx.GetContext(ctx, r.conn, &n, `SELECT COUNT(*) FROM tasks`); err != nil {
		return 0, fmt.Errorf("counting tasks: %w", err)
	}
	return n, nil
}
