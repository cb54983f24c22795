package testutil

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/taskforge/internal/db"
	"github.com/alexanderramin/taskforge/internal/domain"
	"github.com/alexanderramin/taskforge/internal/repository"
)

var emailCounter atomic.Int64

// Project options
type ProjectOption func(*domain.Project)

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithProjectDates(start, end time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.StartDate = &start
		p.EndDate = &end
	}
}

func WithCreatedBy(id int64) ProjectOption {
	return func(p *domain.Project) {
		p.CreatedBy = id
	}
}

func NewTestProject(teamID int64, name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC().Truncate(time.Second)
	p := &domain.Project{
		UUID:      uuid.New().String(),
		Name:      name,
		TeamID:    teamID,
		CreatedBy: 1,
		Status:    domain.ProjectPlanning,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Task options
type TaskOption func(*domain.Task)

func WithAssignee(userID int64) TaskOption {
	return func(t *domain.Task) {
		t.AssigneeID = &userID
	}
}

func WithTaskPriority(p domain.TaskPriority) TaskOption {
	return func(t *domain.Task) {
		t.Priority = p
	}
}

func WithDueDate(d time.Time) TaskOption {
	return func(t *domain.Task) {
		t.DueDate = &d
	}
}

func NewTestTask(projectID int64, title string, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC().Truncate(time.Second)
	t := &domain.Task{
		UUID:       uuid.New().String(),
		Title:      title,
		ProjectID:  projectID,
		ReporterID: 1,
		Status:     domain.TaskTodo,
		Priority:   domain.PriorityMedium,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func NewTestTeam(name string) *domain.Team {
	return &domain.Team{
		UUID:      uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

// NewTestUser builds a user with a unique email derived from name.
func NewTestUser(name string) *domain.User {
	return &domain.User{
		UUID:      uuid.New().String(),
		Name:      name,
		Email:     fmt.Sprintf("user%d@example.com", emailCounter.Add(1)),
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

// Template options
type TemplateOption func(*domain.Template)

func WithProjectDef(nameTemplate string, startDay, durationDays int, tasks ...domain.TaskDefinition) TemplateOption {
	return func(t *domain.Template) {
		t.Projects = append(t.Projects, domain.ProjectDefinition{
			NameTemplate: nameTemplate,
			StartDay:     startDay,
			DurationDays: durationDays,
			Tasks:        tasks,
		})
	}
}

func TaskDef(nameTemplate string, startDay, durationDays int) domain.TaskDefinition {
	return domain.TaskDefinition{NameTemplate: nameTemplate, StartDay: startDay, DurationDays: durationDays}
}

func NewTestTemplate(name string, opts ...TemplateOption) *domain.Template {
	t := &domain.Template{Name: name, CreatedBy: 1}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SeedTeam inserts a team and returns it along with the given number of members.
func SeedTeam(t *testing.T, conn db.DBTX, name string, members int) (*domain.Team, []*domain.User) {
	t.Helper()
	ctx := context.Background()

	team := NewTestTeam(name)
	if err := repository.NewSQLTeamRepo(conn).Create(ctx, team); err != nil {
		t.Fatalf("seeding team: %v", err)
	}

	users := make([]*domain.User, 0, members)
	for i := 0; i < members; i++ {
		u := NewTestUser(fmt.Sprintf("%s member %d", name, i+1))
		if err := repository.NewSQLUserRepo(conn).Create(ctx, u); err != nil {
			t.Fatalf("seeding user: %v", err)
		}
		if err := repository.NewSQLTeamRepo(conn).AddMember(ctx, &domain.TeamMember{TeamID: team.ID, UserID: u.ID}); err != nil {
			t.Fatalf("seeding member: %v", err)
		}
		users = append(users, u)
	}
	return team, users
}
