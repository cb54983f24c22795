package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/taskforge/internal/domain"
	"github.com/alexanderramin/taskforge/internal/repository"
	"github.com/alexanderramin/taskforge/internal/testutil"
)

func onboardingTemplate() *domain.Template {
	return testutil.NewTestTemplate("Client Onboarding",
		testutil.WithProjectDef("{client} Kickoff", 10, 5,
			testutil.TaskDef("Schedule call with {client}", 2, 3),
			testutil.TaskDef("Send welcome pack", 0, 0),
		),
		testutil.WithProjectDef("{client} Delivery", 0, 0,
			testutil.TaskDef("Ship {client} v1", 1, 1),
		),
	)
}

func TestGenerate_CreatesWholeTree(t *testing.T) {
	conn := testutil.NewTestDB(t)
	ctx := context.Background()
	team, members := testutil.SeedTeam(t, conn, "Delivery", 2)
	owner := seedUser(t, conn, "Owner")
	tmpl := seedTemplate(t, conn, onboardingTemplate())

	notifier := &recordingNotifier{}
	svc := NewGenerationService(testutil.NewTestUoW(conn), notifier, nil)

	result, err := svc.Generate(ctx, tmpl.ID, domain.GenerationParams{
		TeamID:    team.ID,
		StartDate: "2024-01-01",
		Variables: map[string]string{"client": "Acme"},
	}, owner.ID)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "Generated 2 project(s) and 3 task(s) from template 'Client Onboarding'", result.Message)
	assert.Equal(t, 2, result.ProjectCount)
	assert.Equal(t, 3, result.TaskCount)
	require.Len(t, result.ProjectUUIDs, 2)

	projects, tasks := countRows(t, conn)
	assert.Equal(t, 2, projects)
	assert.Equal(t, 3, tasks)

	kickoff, err := repository.NewSQLProjectRepo(conn).GetByUUID(ctx, result.ProjectUUIDs[0])
	require.NoError(t, err)
	assert.Equal(t, "Acme Kickoff", kickoff.Name)
	assert.Equal(t, team.ID, kickoff.TeamID)
	assert.Equal(t, owner.ID, kickoff.CreatedBy)
	assert.Equal(t, domain.ProjectPlanning, kickoff.Status)
	require.NotNil(t, kickoff.StartDate)
	require.NotNil(t, kickoff.EndDate)
	assert.Equal(t, "2024-01-11", kickoff.StartDate.Format(domain.DateLayout))
	assert.Equal(t, "2024-01-16", kickoff.EndDate.Format(domain.DateLayout))

	kickoffTasks, err := repository.NewSQLTaskRepo(conn).ListByProject(ctx, kickoff.ID)
	require.NoError(t, err)
	require.Len(t, kickoffTasks, 2)
	assert.Equal(t, "Schedule call with Acme", kickoffTasks[0].Title)
	assert.Equal(t, owner.ID, kickoffTasks[0].ReporterID)
	assert.Nil(t, kickoffTasks[0].AssigneeID)
	assert.Equal(t, domain.TaskTodo, kickoffTasks[0].Status)
	assert.Equal(t, domain.PriorityMedium, kickoffTasks[0].Priority)
	require.NotNil(t, kickoffTasks[0].DueDate)
	assert.Equal(t, "2024-01-16", kickoffTasks[0].DueDate.Format(domain.DateLayout))
	require.NotNil(t, kickoffTasks[1].DueDate)
	assert.Equal(t, "2024-01-12", kickoffTasks[1].DueDate.Format(domain.DateLayout))

	delivery, err := repository.NewSQLProjectRepo(conn).GetByUUID(ctx, result.ProjectUUIDs[1])
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", delivery.StartDate.Format(domain.DateLayout))
	assert.Equal(t, "2024-01-02", delivery.EndDate.Format(domain.DateLayout))

	require.Len(t, notifier.calls, 2)
	assert.Equal(t, "Acme Kickoff", notifier.calls[0].projectName)
	assert.ElementsMatch(t, []int64{members[0].ID, members[1].ID}, notifier.calls[0].memberIDs)
}

func TestGenerate_UnmatchedPlaceholdersStayLiteral(t *testing.T) {
	conn := testutil.NewTestDB(t)
	team, _ := testutil.SeedTeam(t, conn, "Ops", 0)
	owner := seedUser(t, conn, "Owner")
	tmpl := seedTemplate(t, conn, onboardingTemplate())

	svc := NewGenerationService(testutil.NewTestUoW(conn), nil, nil)
	result, err := svc.Generate(context.Background(), tmpl.ID, domain.GenerationParams{
		TeamID: team.ID, StartDate: "2024-01-01",
	}, owner.ID)
	require.NoError(t, err)

	p, err := repository.NewSQLProjectRepo(conn).GetByUUID(context.Background(), result.ProjectUUIDs[0])
	require.NoError(t, err)
	assert.Equal(t, "{client} Kickoff", p.Name)
}

func TestGenerate_FailureMidTreeLeavesNothing(t *testing.T) {
	conn := testutil.NewTestDB(t)
	team, _ := testutil.SeedTeam(t, conn, "Ops", 1)
	owner := seedUser(t, conn, "Owner")
	tmpl := seedTemplate(t, conn, onboardingTemplate())

	// Writes: kickoff project, two kickoff tasks, delivery project, delivery task.
	for failOn := int32(1); failOn <= 5; failOn++ {
		boom := errors.New("disk full")
		notifier := &recordingNotifier{}
		uow := &testutil.FailOnNthExecUoW{DB: conn, FailOn: failOn, Err: boom}
		svc := NewGenerationService(uow, notifier, nil)

		result, err := svc.Generate(context.Background(), tmpl.ID, domain.GenerationParams{
			TeamID: team.ID, StartDate: "2024-01-01",
		}, owner.ID)
		require.Error(t, err, "failOn=%d", failOn)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, boom)

		var txErr *domain.TransactionError
		require.ErrorAs(t, err, &txErr)
		assert.Equal(t, "generate from template", txErr.Op)

		projects, tasks := countRows(t, conn)
		assert.Zero(t, projects, "failOn=%d", failOn)
		assert.Zero(t, tasks, "failOn=%d", failOn)
		assert.Empty(t, notifier.calls)
	}
}

func TestGenerate_UnknownTeamRollsBack(t *testing.T) {
	conn := testutil.NewTestDB(t)
	owner := seedUser(t, conn, "Owner")
	tmpl := seedTemplate(t, conn, onboardingTemplate())

	svc := NewGenerationService(testutil.NewTestUoW(conn), nil, nil)
	_, err := svc.Generate(context.Background(), tmpl.ID, domain.GenerationParams{
		TeamID: 9999, StartDate: "2024-01-01",
	}, owner.ID)

	var txErr *domain.TransactionError
	require.ErrorAs(t, err, &txErr)
	projects, tasks := countRows(t, conn)
	assert.Zero(t, projects)
	assert.Zero(t, tasks)
}

func TestGenerate_TemplateNotFound(t *testing.T) {
	conn := testutil.NewTestDB(t)
	team, _ := testutil.SeedTeam(t, conn, "Ops", 0)
	owner := seedUser(t, conn, "Owner")

	svc := NewGenerationService(testutil.NewTestUoW(conn), nil, nil)
	_, err := svc.Generate(context.Background(), 42, domain.GenerationParams{
		TeamID: team.ID, StartDate: "2024-01-01",
	}, owner.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGenerate_InvalidInput(t *testing.T) {
	conn := testutil.NewTestDB(t)
	team, _ := testutil.SeedTeam(t, conn, "Ops", 0)
	owner := seedUser(t, conn, "Owner")
	tmpl := seedTemplate(t, conn, onboardingTemplate())
	svc := NewGenerationService(testutil.NewTestUoW(conn), nil, nil)

	tests := []struct {
		name   string
		params domain.GenerationParams
		userID int64
	}{
		{"bad date", domain.GenerationParams{TeamID: team.ID, StartDate: "01/02/2024"}, owner.ID},
		{"impossible date", domain.GenerationParams{TeamID: team.ID, StartDate: "2024-02-30"}, owner.ID},
		{"missing team", domain.GenerationParams{StartDate: "2024-01-01"}, owner.ID},
		{"missing user", domain.GenerationParams{TeamID: team.ID, StartDate: "2024-01-01"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Generate(context.Background(), tmpl.ID, tt.params, tt.userID)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}

	projects, tasks := countRows(t, conn)
	assert.Zero(t, projects)
	assert.Zero(t, tasks)
}

func TestGenerate_NotificationFailureDoesNotFailGeneration(t *testing.T) {
	tests := []struct {
		name     string
		notifier *recordingNotifier
	}{
		{"error", &recordingNotifier{err: errors.New("smtp down")}},
		{"panic", &recordingNotifier{panic: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn := testutil.NewTestDB(t)
			team, _ := testutil.SeedTeam(t, conn, "Ops", 1)
			owner := seedUser(t, conn, "Owner")
			tmpl := seedTemplate(t, conn, onboardingTemplate())

			var logs bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&logs, nil))
			obs := &recordingObserver{}
			svc := NewGenerationService(testutil.NewTestUoW(conn), tt.notifier, logger, obs)

			result, err := svc.Generate(context.Background(), tmpl.ID, domain.GenerationParams{
				TeamID: team.ID, StartDate: "2024-01-01",
			}, owner.ID)
			require.NoError(t, err)
			assert.True(t, result.Success)

			projects, _ := countRows(t, conn)
			assert.Equal(t, 2, projects)
			assert.Len(t, tt.notifier.calls, 2)
			assert.Contains(t, logs.String(), "project assigned notification failed")

			event := obs.last()
			assert.Equal(t, "generate-from-template", event.Name)
			assert.True(t, event.Success)
			assert.Equal(t, 2, event.Fields["notification_failed"])
		})
	}
}

func TestPreview_WritesNothing(t *testing.T) {
	conn := testutil.NewTestDB(t)
	team, _ := testutil.SeedTeam(t, conn, "Ops", 0)
	tmpl := seedTemplate(t, conn, onboardingTemplate())
	svc := NewGenerationService(testutil.NewTestUoW(conn), nil, nil)

	plan, err := svc.Preview(context.Background(), tmpl.ID, domain.GenerationParams{
		TeamID: team.ID, StartDate: "2024-01-01", Variables: map[string]string{"client": "Acme"},
	})
	require.NoError(t, err)
	require.Len(t, plan.Projects, 2)
	assert.Equal(t, "Acme Kickoff", plan.Projects[0].Name)
	assert.Equal(t, 3, plan.TaskCount())

	projects, tasks := countRows(t, conn)
	assert.Zero(t, projects)
	assert.Zero(t, tasks)
}
