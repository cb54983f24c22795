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

// SQLTemplateRepo implements TemplateRepo over any DBTX.
type SQLTemplateRepo struct {
	conn db.DBTX
}

// NewSQLTemplateRepo creates a new SQLTemplateRepo.
func NewSQLTemplateRepo(conn db.DBTX) *SQLTemplateRepo {
	return &SQLTemplateRepo{conn: conn}
}

type templateRow struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	CreatedBy   int64  `db:"created_by"`
	CreatedAt   string `db:"created_at"`
	UpdatedAt   string `db:"updated_at"`
}

type projectDefRow struct {
	ID                  int64  `db:"id"`
	TemplateID          int64  `db:"template_id"`
	Position            int    `db:"position"`
	NameTemplate        string `db:"project_name_template"`
	DescriptionTemplate string `db:"project_description_template"`
	StartDay            int    `db:"start_day"`
	DurationDays        int    `db:"duration_days"`
}

type taskDefRow struct {
	ID                  int64  `db:"id"`
	TemplateProjectID   int64  `db:"template_project_id"`
	Position            int    `db:"position"`
	NameTemplate        string `db:"task_name_template"`
	DescriptionTemplate string `db:"task_description_template"`
	StartDay            int    `db:"start_day"`
	DurationDays        int    `db:"duration_days"`
}

type templateSummaryRow struct {
	ID           int64  `db:"id"`
	Name         string `db:"name"`
	Description  string `db:"description"`
	CreatedBy    int64  `db:"created_by"`
	UpdatedAt    string `db:"updated_at"`
	ProjectCount int    `db:"project_count"`
	TaskCount    int    `db:"task_count"`
}

func (r *SQLTemplateRepo) Create(ctx context.Context, t *domain.Template) error {
	stampTimes(&t.CreatedAt, &t.UpdatedAt)

	id, err := db.InsertReturningID(ctx, r.conn,
		`INSERT INTO templates (name, description, created_by, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		t.Name, t.Description, t.CreatedBy, formatTimestamp(t.CreatedAt), formatTimestamp(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting template: %w", err)
	}
	t.ID = id

	return r.insertDefinitions(ctx, t)
}

func (r *SQLTemplateRepo) insertDefinitions(ctx context.Context, t *domain.Template) error {
	for i := range t.Projects {
		pd := &t.Projects[i]
		pd.TemplateID = t.ID
		pd.Position = i

		pid, err := db.InsertReturningID(ctx, r.conn,
			`INSERT INTO template_projects (template_id, position, project_name_template, project_description_template, start_day, duration_days)
			VALUES (?, ?, ?, ?, ?, ?)`,
			pd.TemplateID, pd.Position, pd.NameTemplate, pd.DescriptionTemplate,
			pd.EffectiveStartDay(), pd.EffectiveDurationDays(),
		)
		if err != nil {
			return fmt.Errorf("inserting project definition %d: %w", i, err)
		}
		pd.ID = pid

		for j := range pd.Tasks {
			td := &pd.Tasks[j]
			td.TemplateProjectID = pid
			td.Position = j

			tid, err := db.InsertReturningID(ctx, r.conn,
				`INSERT INTO template_tasks (template_project_id, position, task_name_template, task_description_template, start_day, duration_days)
				VALUES (?, ?, ?, ?, ?, ?)`,
				td.TemplateProjectID, td.Position, td.NameTemplate, td.DescriptionTemplate,
				td.EffectiveStartDay(), td.EffectiveDurationDays(),
			)
			if err != nil {
				return fmt.Errorf("inserting task definition %d.%d: %w", i, j, err)
			}
			td.ID = tid
		}
	}
	return nil
}

func (r *SQLTemplateRepo) GetByID(ctx context.Context, id int64) (*domain.Template, error) {
	var row templateRow
	err := sqlx.GetContext(ctx, r.conn, &row, r.conn.Rebind(
		`SELECT id, name, description, created_by, created_at, updated_at FROM templates WHERE id = ?`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFound("template", id)
		}
		return nil, fmt.Errorf("fetching template: %w", err)
	}

	t := &domain.Template{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		CreatedBy:   row.CreatedBy,
	}
	if t.CreatedAt, err = parseTimestamp("created_at", row.CreatedAt); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = parseTimestamp("updated_at", row.UpdatedAt); err != nil {
		return nil, err
	}

	var projects []projectDefRow
	err = sqlx.SelectContext(ctx, r.conn, &projects, r.conn.Rebind(
		`SELECT id, template_id, position, project_name_template, project_description_template, start_day, duration_days
		FROM template_projects WHERE template_id = ? ORDER BY position, id`), id)
	if err != nil {
		return nil, fmt.Errorf("listing project definitions: %w", err)
	}

	var tasks []taskDefRow
	err = sqlx.SelectContext(ctx, r.conn, &tasks, r.conn.Rebind(
		`SELECT tt.id, tt.template_project_id, tt.position, tt.task_name_template, tt.task_description_template, tt.start_day, tt.duration_days
		FROM template_tasks tt
		JOIN template_projects tp ON tp.id = tt.template_project_id
		WHERE tp.template_id = ?
		ORDER BY tt.position, tt.id`), id)
	if err != nil {
		return nil, fmt.Errorf("listing task definitions: %w", err)
	}

	byProject := make(map[int64][]domain.TaskDefinition, len(projects))
	for _, tr := range tasks {
		byProject[tr.TemplateProjectID] = append(byProject[tr.TemplateProjectID], domain.TaskDefinition{
			ID:                  tr.ID,
			TemplateProjectID:   tr.TemplateProjectID,
			Position:            tr.Position,
			NameTemplate:        tr.NameTemplate,
			DescriptionTemplate: tr.DescriptionTemplate,
			StartDay:            tr.StartDay,
			DurationDays:        tr.DurationDays,
		})
	}

	t.Projects = make([]domain.ProjectDefinition, 0, len(projects))
	for _, pr := range projects {
		t.Projects = append(t.Projects, domain.ProjectDefinition{
			ID:                  pr.ID,
			TemplateID:          pr.TemplateID,
			Position:            pr.Position,
			NameTemplate:        pr.NameTemplate,
			DescriptionTemplate: pr.DescriptionTemplate,
			StartDay:            pr.StartDay,
			DurationDays:        pr.DurationDays,
			Tasks:               byProject[pr.ID],
		})
	}
	return t, nil
}

func (r *SQLTemplateRepo) List(ctx context.Context) ([]domain.TemplateSummary, error) {
	var rows []templateSummaryRow
	err := sqlx.SelectContext(ctx, r.conn, &rows,
		`SELECT t.id, t.name, t.description, t.created_by, t.updated_at,
			(SELECT COUNT(*) FROM template_projects tp WHERE tp.template_id = t.id) AS project_count,
			(SELECT COUNT(*) FROM template_tasks tt
				JOIN template_projects tp ON tp.id = tt.template_project_id
				WHERE tp.template_id = t.id) AS task_count
		FROM templates t
		ORDER BY t.name, t.id`)
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}

	out := make([]domain.TemplateSummary, 0, len(rows))
	for _, row := range rows {
		updated, err := parseTimestamp("updated_at", row.UpdatedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.TemplateSummary{
			ID:           row.ID,
			Name:         row.Name,
			Description:  row.Description,
			CreatedBy:    row.CreatedBy,
			ProjectCount: row.ProjectCount,
			TaskCount:    row.TaskCount,
			UpdatedAt:    updated,
		})
	}
	return out, nil
}

// Update replaces, never diffs: every task definition and project definition
// of the template is deleted and the supplied set inserted with new ids.
func (r *SQLTemplateRepo) Update(ctx context.Context, t *domain.Template) error {
	t.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	res, err := r.conn.ExecContext(ctx, r.conn.Rebind(
		`UPDATE templates SET name = ?, description = ?, updated_at = ? WHERE id = ?`),
		t.Name, t.Description, formatTimestamp(t.UpdatedAt), t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating template: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NewNotFound("template", t.ID)
	}

	_, err = r.conn.ExecContext(ctx, r.conn.Rebind(
		`DELETE FROM template_tasks WHERE template_project_id IN
			(SELECT id FROM template_projects WHERE template_id = ?)`), t.ID)
	if err != nil {
		return fmt.Errorf("deleting task definitions: %w", err)
	}
	_, err = r.conn.ExecContext(ctx, r.conn.Rebind(
		`DELETE FROM template_projects WHERE template_id = ?`), t.ID)
	if err != nil {
		return fmt.Errorf("deleting project definitions: %w", err)
	}

	return r.insertDefinitions(ctx, t)
}

func (r *SQLTemplateRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.conn.ExecContext(ctx, r.conn.Rebind(`DELETE FROM templates WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("deleting template: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NewNotFound("template", id)
	}
	return nil
}
