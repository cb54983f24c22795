package notify

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/http"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/alexanderramin/taskforge/internal/domain"
)

// UserLookup resolves member ids to users with email addresses.
type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// mailClient is the subset of *sendgrid.Client used here.
type mailClient interface {
	SendWithContext(ctx context.Context, email *sgmail.SGMailV3) (*rest.Response, error)
}

// SendGrid emails every team member when a project is assigned to their team.
type SendGrid struct {
	client     mailClient
	users      UserLookup
	from       *sgmail.Email
	subjPrefix string
}

// NewSendGrid builds a SendGrid notifier. users resolves recipients.
func NewSendGrid(apiKey, appName, fromEmail string, users UserLookup) (*SendGrid, error) {
	if apiKey == "" || fromEmail == "" {
		return nil, errors.New("invalid SendGrid configuration")
	}
	return newSendGrid(sendgrid.NewSendClient(apiKey), appName, fromEmail, users), nil
}

func newSendGrid(client mailClient, appName, fromEmail string, users UserLookup) *SendGrid {
	return &SendGrid{
		client:     client,
		users:      users,
		from:       sgmail.NewEmail(appName, fromEmail),
		subjPrefix: "[" + appName + "] ",
	}
}

func (s *SendGrid) ProjectAssigned(ctx context.Context, projectUUID, projectName string, memberIDs []int64) error {
	if len(memberIDs) == 0 {
		return nil
	}

	p := sgmail.NewPersonalization()
	p.Subject = s.subjPrefix + "New project: " + projectName
	for _, id := range memberIDs {
		u, err := s.users.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("resolving member %d: %w", id, err)
		}
		p.AddTos(sgmail.NewEmail(u.Name, u.Email))
	}

	m := sgmail.NewV3Mail()
	m.SetFrom(s.from)
	m.AddPersonalizations(p)
	m.AddContent(
		sgmail.NewContent("text/plain", fmt.Sprintf("Project %q (%s) was assigned to your team.", projectName, projectUUID)),
		sgmail.NewContent("text/html", fmt.Sprintf("Project <strong>%s</strong> (%s) was assigned to your team.", html.EscapeString(projectName), html.EscapeString(projectUUID))),
	)

	res, err := s.client.SendWithContext(ctx, m)
	if err != nil {
		return fmt.Errorf("sending project notification: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sending project notification: status code %d", res.StatusCode)
	}
	return nil
}
