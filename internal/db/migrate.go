package db

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// Migrate runs all schema migrations for the database's dialect.
// Every statement is idempotent, so Migrate may run on each start.
func Migrate(db *sqlx.DB) error {
	for i, stmt := range schemaStatements(db.DriverName()) {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// schemaStatements renders the migration list for a driver. The only
// dialect differences are the surrogate key and foreign key column types.
func schemaStatements(driver string) []string {
	pk, ref := "INTEGER PRIMARY KEY AUTOINCREMENT", "INTEGER"
	if driver == DriverPostgres {
		pk, ref = "BIGSERIAL PRIMARY KEY", "BIGINT"
	}
	r := strings.NewReplacer("%PK%", pk, "%REF%", ref)

	out := make([]string, len(migrations))
	for i, stmt := range migrations {
		out[i] = r.Replace(stmt)
	}
	return out
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         %PK%,
		uuid       TEXT NOT NULL UNIQUE,
		name       TEXT NOT NULL,
		email      TEXT NOT NULL UNIQUE,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS teams (
		id         %PK%,
		uuid       TEXT NOT NULL UNIQUE,
		name       TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS team_members (
		team_id   %REF% NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
		user_id   %REF% NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		role      TEXT NOT NULL DEFAULT 'member'
		          CHECK(role IN ('member','lead')),
		joined_at TEXT NOT NULL,
		PRIMARY KEY (team_id, user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS templates (
		id          %PK%,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_by  %REF% NOT NULL,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS template_projects (
		id                           %PK%,
		template_id                  %REF% NOT NULL REFERENCES templates(id) ON DELETE CASCADE,
		position                     INTEGER NOT NULL DEFAULT 0,
		project_name_template        TEXT NOT NULL,
		project_description_template TEXT NOT NULL DEFAULT '',
		start_day                    INTEGER NOT NULL DEFAULT 0 CHECK(start_day >= 0),
		duration_days                INTEGER NOT NULL DEFAULT 1 CHECK(duration_days >= 1)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_template_projects_template ON template_projects(template_id)`,

	`CREATE TABLE IF NOT EXISTS template_tasks (
		id                        %PK%,
		template_project_id       %REF% NOT NULL REFERENCES template_projects(id) ON DELETE CASCADE,
		position                  INTEGER NOT NULL DEFAULT 0,
		task_name_template        TEXT NOT NULL,
		task_description_template TEXT NOT NULL DEFAULT '',
		start_day                 INTEGER NOT NULL DEFAULT 0 CHECK(start_day >= 0),
		duration_days             INTEGER NOT NULL DEFAULT 1 CHECK(duration_days >= 1)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_template_tasks_project ON template_tasks(template_project_id)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id          %PK%,
		uuid        TEXT NOT NULL UNIQUE,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		team_id     %REF% NOT NULL REFERENCES teams(id),
		created_by  %REF% NOT NULL,
		status      TEXT NOT NULL DEFAULT 'planning'
		            CHECK(status IN ('planning','active','on_hold','completed','cancelled')),
		start_date  TEXT,
		end_date    TEXT,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_projects_team ON projects(team_id)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id          %PK%,
		uuid        TEXT NOT NULL UNIQUE,
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		project_id  %REF% NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		reporter_id %REF% NOT NULL,
		assignee_id %REF% REFERENCES users(id) ON DELETE SET NULL,
		status      TEXT NOT NULL DEFAULT 'todo'
		            CHECK(status IN ('todo','in_progress','review','done')),
		priority    TEXT NOT NULL DEFAULT 'medium'
		            CHECK(priority IN ('low','medium','high','urgent')),
		due_date    TEXT,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status)`,
}
