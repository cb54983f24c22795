package service

import (
	"context"
	"io"

	"github.com/alexanderramin/taskforge/internal/domain"
	tmpl "github.com/alexanderramin/taskforge/internal/template"
)

type TemplateService interface {
	Create(ctx context.Context, schema *tmpl.TemplateSchema, userID int64) (*domain.Template, error)
	Get(ctx context.Context, id int64) (*domain.Template, error)
	List(ctx context.Context) ([]domain.TemplateSummary, error)
	Update(ctx context.Context, id int64, schema *tmpl.TemplateSchema) (*domain.Template, error)
	Delete(ctx context.Context, id int64) error
}

// GenerationService instantiates templates into projects and tasks.
type GenerationService interface {
	// Generate creates every project and task of the template in one
	// transaction. Either all rows commit or none do.
	Generate(ctx context.Context, templateID int64, params domain.GenerationParams, userID int64) (*domain.GenerationResult, error)
	// Preview builds the same plan without persisting anything.
	Preview(ctx context.Context, templateID int64, params domain.GenerationParams) (*tmpl.GeneratedPlan, error)
}

// ImportService runs CSV imports where each row commits on its own.
type ImportService interface {
	ImportProjects(ctx context.Context, r io.Reader, userID int64) (*domain.ImportResult, error)
	ImportTasks(ctx context.Context, r io.Reader, userID int64) (*domain.ImportResult, error)
	ImportTeamMembers(ctx context.Context, r io.Reader) (*domain.ImportResult, error)
}

type ProjectService interface {
	ListByTeam(ctx context.Context, teamUUID string) ([]*domain.Project, error)
	Tasks(ctx context.Context, projectUUID string) (*domain.Project, []*domain.Task, error)
}

type TeamService interface {
	Create(ctx context.Context, name string) (*domain.Team, error)
	List(ctx context.Context) ([]*domain.Team, error)
	Members(ctx context.Context, teamUUID string) (*domain.Team, []domain.TeamMember, error)
	AddMember(ctx context.Context, teamUUID, email string, role domain.MemberRole) error
}

type UserService interface {
	Create(ctx context.Context, name, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}
