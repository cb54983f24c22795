package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/taskforge/internal/domain"
	"github.com/alexanderramin/taskforge/internal/repository"
	"github.com/alexanderramin/taskforge/internal/testutil"
)

func TestProjectRepo_CreateAndGetByUUID(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	team, _ := testutil.SeedTeam(t, db, "Core", 0)
	repo := repository.NewSQLProjectRepo(db)

	start := time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 5)
	proj := testutil.NewTestProject(team.ID, "Kickoff", testutil.WithProjectDates(start, end), testutil.WithCreatedBy(7))
	require.NoError(t, repo.Create(ctx, proj))
	assert.Greater(t, proj.ID, int64(0))

	fetched, err := repo.GetByUUID(ctx, proj.UUID)
	require.NoError(t, err)
	assert.Equal(t, proj.ID, fetched.ID)
	assert.Equal(t, "Kickoff", fetched.Name)
	assert.Equal(t, int64(7), fetched.CreatedBy)
	assert.Equal(t, domain.ProjectPlanning, fetched.Status)
	require.NotNil(t, fetched.StartDate)
	assert.Equal(t, "2024-01-11", fetched.StartDate.Format(domain.DateLayout))
	assert.Equal(t, "2024-01-16", fetched.EndDate.Format(domain.DateLayout))

	byID, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, proj.UUID, byID.UUID)
}

func TestProjectRepo_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	_, err := repository.NewSQLProjectRepo(db).GetByUUID(context.Background(), "missing")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestProjectRepo_RejectsUnknownTeam(t *testing.T) {
	db := testutil.NewTestDB(t)
	err := repository.NewSQLProjectRepo(db).Create(context.Background(), testutil.NewTestProject(999, "Orphan"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inserting project")
}

func TestProjectRepo_ListByTeamAndCount(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	a, _ := testutil.SeedTeam(t, db, "A", 0)
	b, _ := testutil.SeedTeam(t, db, "B", 0)
	repo := repository.NewSQLProjectRepo(db)

	require.NoError(t, repo.Create(ctx, testutil.NewTestProject(a.ID, "A1")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestProject(a.ID, "A2")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestProject(b.ID, "B1")))

	list, err := repo.ListByTeam(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "A1", list[0].Name)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestTaskRepo_CreateAndList(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	team, users := testutil.SeedTeam(t, db, "Core", 1)
	proj := testutil.NewTestProject(team.ID, "P")
	require.NoError(t, repository.NewSQLProjectRepo(db).Create(ctx, proj))

	repo := repository.NewSQLTaskRepo(db)
	due := time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, testutil.NewTestTask(proj.ID, "First", testutil.WithDueDate(due))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestTask(proj.ID, "Second",
		testutil.WithAssignee(users[0].ID), testutil.WithTaskPriority(domain.PriorityHigh))))

	tasks, err := repo.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "First", tasks[0].Title)
	assert.Equal(t, domain.TaskTodo, tasks[0].Status)
	assert.Equal(t, domain.PriorityMedium, tasks[0].Priority)
	require.NotNil(t, tasks[0].DueDate)
	assert.Equal(t, "2024-01-16", tasks[0].DueDate.Format(domain.DateLayout))
	assert.Nil(t, tasks[0].AssigneeID)
	require.NotNil(t, tasks[1].AssigneeID)
	assert.Equal(t, users[0].ID, *tasks[1].AssigneeID)
	assert.Equal(t, domain.PriorityHigh, tasks[1].Priority)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestTeamRepo_Members(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	team, users := testutil.SeedTeam(t, db, "Core", 3)
	repo := repository.NewSQLTeamRepo(db)

	ids, err := repo.ListMemberIDs(ctx, team.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{users[0].ID, users[1].ID, users[2].ID}, ids)

	members, err := repo.ListMembers(ctx, team.ID)
	require.NoError(t, err)
	require.Len(t, members, 3)
	assert.Equal(t, domain.RoleMember, members[0].Role)

	// duplicate membership violates the primary key
	err = repo.AddMember(ctx, &domain.TeamMember{TeamID: team.ID, UserID: users[0].ID, Role: domain.RoleLead})
	assert.Error(t, err)

	byUUID, err := repo.GetByUUID(ctx, team.UUID)
	require.NoError(t, err)
	assert.Equal(t, team.ID, byUUID.ID)

	_, err = repo.GetByUUID(ctx, "nope")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUserRepo_GetByEmail_CaseInsensitive(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := repository.NewSQLUserRepo(db)

	u := &domain.User{UUID: "u-1", Name: "Ana", Email: "Ana@Example.com"}
	require.NoError(t, repo.Create(ctx, u))
	assert.Equal(t, "ana@example.com", u.Email)

	fetched, err := repo.GetByEmail(ctx, " ANA@example.COM ")
	require.NoError(t, err)
	assert.Equal(t, u.ID, fetched.ID)

	_, err = repo.GetByEmail(ctx, "ghost@example.com")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
