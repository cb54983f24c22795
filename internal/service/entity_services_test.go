package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/taskforge/internal/domain"
	"github.com/alexanderramin/taskforge/internal/repository"
	"github.com/alexanderramin/taskforge/internal/testutil"
	"github.com/alexanderramin/taskforge/internal/validation"
)

func TestUserService_Create(t *testing.T) {
	conn := testutil.NewTestDB(t)
	svc := NewUserService(testutil.NewTestUoW(conn), validation.New())
	ctx := context.Background()

	u, err := svc.Create(ctx, "  Ada  ", "Ada@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ada", u.Name)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.NotEmpty(t, u.UUID)

	_, err = svc.Create(ctx, "", "not-an-email")
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "name")
	assert.Contains(t, err.Error(), "email")

	_, err = svc.Create(ctx, "Ada Again", "ada@example.com")
	assert.Error(t, err, "email is unique")

	got, err := svc.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)
	_, err = svc.GetByID(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	users, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestTeamService(t *testing.T) {
	conn := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(conn)
	ctx := context.Background()
	teams := NewTeamService(uow)
	users := NewUserService(uow, validation.New())

	_, err := teams.Create(ctx, "   ")
	require.ErrorIs(t, err, domain.ErrValidation)

	team, err := teams.Create(ctx, "Platform")
	require.NoError(t, err)
	ada, err := users.Create(ctx, "Ada", "ada@example.com")
	require.NoError(t, err)

	require.NoError(t, teams.AddMember(ctx, team.UUID, "ADA@example.com", ""))
	assert.ErrorIs(t, teams.AddMember(ctx, team.UUID, "nobody@example.com", ""), domain.ErrNotFound)
	assert.ErrorIs(t, teams.AddMember(ctx, "missing", "ada@example.com", ""), domain.ErrNotFound)
	assert.ErrorIs(t, teams.AddMember(ctx, team.UUID, "ada@example.com", "owner"), domain.ErrValidation)

	got, members, err := teams.Members(ctx, team.UUID)
	require.NoError(t, err)
	assert.Equal(t, team.ID, got.ID)
	require.Len(t, members, 1)
	assert.Equal(t, ada.ID, members[0].UserID)
	assert.Equal(t, domain.RoleMember, members[0].Role)

	list, err := teams.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestProjectService(t *testing.T) {
	conn := testutil.NewTestDB(t)
	ctx := context.Background()
	team, _ := testutil.SeedTeam(t, conn, "Ops", 0)
	owner := seedUser(t, conn, "Owner")

	p := testutil.NewTestProject(team.ID, "Launch", testutil.WithCreatedBy(owner.ID))
	require.NoError(t, repository.NewSQLProjectRepo(conn).Create(ctx, p))
	require.NoError(t, repository.NewSQLTaskRepo(conn).Create(ctx, testutil.NewTestTask(p.ID, "Draft", func(tk *domain.Task) { tk.ReporterID = owner.ID })))

	svc := NewProjectService(testutil.NewTestUoW(conn))

	projects, err := svc.ListByTeam(ctx, team.UUID)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Launch", projects[0].Name)

	_, err = svc.ListByTeam(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, tasks, err := svc.Tasks(ctx, p.UUID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Draft", tasks[0].Title)

	_, _, err = svc.Tasks(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
