package service

import (
	"context"
	"sync"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/taskforge/internal/domain"
	"github.com/alexanderramin/taskforge/internal/repository"
	"github.com/alexanderramin/taskforge/internal/testutil"
)

func seedTemplate(t *testing.T, conn *sqlx.DB, tmpl *domain.Template) *domain.Template {
	t.Helper()
	require.NoError(t, repository.NewSQLTemplateRepo(conn).Create(context.Background(), tmpl))
	return tmpl
}

func seedUser(t *testing.T, conn *sqlx.DB, name string) *domain.User {
	t.Helper()
	u := testutil.NewTestUser(name)
	require.NoError(t, repository.NewSQLUserRepo(conn).Create(context.Background(), u))
	return u
}

func countRows(t *testing.T, conn *sqlx.DB) (projects, tasks int) {
	t.Helper()
	ctx := context.Background()
	projects, err := repository.NewSQLProjectRepo(conn).Count(ctx)
	require.NoError(t, err)
	tasks, err = repository.NewSQLTaskRepo(conn).Count(ctx)
	require.NoError(t, err)
	return projects, tasks
}

type assignedCall struct {
	projectUUID string
	projectName string
	memberIDs   []int64
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls []assignedCall
	err   error
	panic bool
}

func (n *recordingNotifier) ProjectAssigned(_ context.Context, projectUUID, projectName string, memberIDs []int64) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, assignedCall{projectUUID, projectName, memberIDs})
	if n.panic {
		panic("mail server on fire")
	}
	return n.err
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}
