package repository

import (
	"context"

	"github.com/alexanderramin/taskforge/internal/domain"
)

// TemplateRepo persists the Template -> ProjectDefinition -> TaskDefinition tree.
type TemplateRepo interface {
	// Create inserts the template and all nested definitions, assigning ids in place.
	Create(ctx context.Context, t *domain.Template) error
	// GetByID loads the full tree with definitions ordered by position.
	GetByID(ctx context.Context, id int64) (*domain.Template, error)
	List(ctx context.Context) ([]domain.TemplateSummary, error)
	// Update rewrites the header and replaces every nested definition.
	// It must run inside the caller's transaction.
	Update(ctx context.Context, t *domain.Template) error
	Delete(ctx context.Context, id int64) error
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	GetByUUID(ctx context.Context, uuid string) (*domain.Project, error)
	ListByTeam(ctx context.Context, teamID int64) ([]*domain.Project, error)
	Count(ctx context.Context) (int, error)
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	ListByProject(ctx context.Context, projectID int64) ([]*domain.Task, error)
	Count(ctx context.Context) (int, error)
}

type TeamRepo interface {
	Create(ctx context.Context, t *domain.Team) error
	GetByID(ctx context.Context, id int64) (*domain.Team, error)
	GetByUUID(ctx context.Context, uuid string) (*domain.Team, error)
	List(ctx context.Context) ([]*domain.Team, error)
	AddMember(ctx context.Context, m *domain.TeamMember) error
	ListMembers(ctx context.Context, teamID int64) ([]domain.TeamMember, error)
	ListMemberIDs(ctx context.Context, teamID int64) ([]int64, error)
}

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}
