// Package notify delivers "project assigned" notifications after generation.
// Delivery is best-effort; callers log failures and move on.
package notify

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Notifier is told about each project created for a team.
type Notifier interface {
	ProjectAssigned(ctx context.Context, projectUUID, projectName string, memberIDs []int64) error
}

// Noop discards every notification.
type Noop struct{}

func (Noop) ProjectAssigned(context.Context, string, string, []int64) error { return nil }

// Console writes one line per notification.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) ProjectAssigned(_ context.Context, projectUUID, projectName string, memberIDs []int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := fmt.Fprintf(c.w, "notify: project %q (%s) assigned to %d member(s) %v\n",
		projectName, projectUUID, len(memberIDs), memberIDs)
	return err
}
