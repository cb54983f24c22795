package notify

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/sendgrid/rest"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/taskforge/internal/domain"
)

func TestConsole_ProjectAssigned(t *testing.T) {
	var buf bytes.Buffer
	n := NewConsole(&buf)

	require.NoError(t, n.ProjectAssigned(context.Background(), "abc-123", "Kickoff Acme", []int64{1, 2}))
	assert.Equal(t, "notify: project \"Kickoff Acme\" (abc-123) assigned to 2 member(s) [1 2]\n", buf.String())
}

func TestNoop(t *testing.T) {
	assert.NoError(t, Noop{}.ProjectAssigned(context.Background(), "u", "n", nil))
}

type fakeUsers map[int64]*domain.User

func (f fakeUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, domain.NewNotFound("user", id)
}

type fakeClient struct {
	sent   []*sgmail.SGMailV3
	status int
	err    error
}

func (f *fakeClient) SendWithContext(_ context.Context, m *sgmail.SGMailV3) (*rest.Response, error) {
	f.sent = append(f.sent, m)
	if f.err != nil {
		return nil, f.err
	}
	return &rest.Response{StatusCode: f.status}, nil
}

func TestSendGrid_BuildsOneMailForAllMembers(t *testing.T) {
	client := &fakeClient{status: http.StatusAccepted}
	users := fakeUsers{
		1: {ID: 1, Name: "Ana", Email: "ana@example.com"},
		2: {ID: 2, Name: "Bo", Email: "bo@example.com"},
	}
	n := newSendGrid(client, "Taskforge", "noreply@example.com", users)

	require.NoError(t, n.ProjectAssigned(context.Background(), "abc", "Kickoff", []int64{1, 2}))
	require.Len(t, client.sent, 1)

	m := client.sent[0]
	assert.Equal(t, "noreply@example.com", m.From.Address)
	require.Len(t, m.Personalizations, 1)
	assert.Equal(t, "[Taskforge] New project: Kickoff", m.Personalizations[0].Subject)
	require.Len(t, m.Personalizations[0].To, 2)
	assert.Equal(t, "bo@example.com", m.Personalizations[0].To[1].Address)
}

func TestSendGrid_EscapesProjectNameInHTML(t *testing.T) {
	client := &fakeClient{status: http.StatusAccepted}
	n := newSendGrid(client, "Taskforge", "noreply@example.com", fakeUsers{1: {ID: 1, Name: "Ana", Email: "ana@example.com"}})

	require.NoError(t, n.ProjectAssigned(context.Background(), "abc", `<script>alert("x")</script> & Co`, []int64{1}))
	require.Len(t, client.sent, 1)

	var plain, rich string
	for _, c := range client.sent[0].Content {
		switch c.Type {
		case "text/plain":
			plain = c.Value
		case "text/html":
			rich = c.Value
		}
	}
	assert.Contains(t, rich, "<strong>&lt;script&gt;alert(&#34;x&#34;)&lt;/script&gt; &amp; Co</strong>")
	assert.NotContains(t, rich, "<script>")
	assert.Contains(t, plain, `<script>`)
}

func TestSendGrid_Failures(t *testing.T) {
	users := fakeUsers{1: {ID: 1, Name: "Ana", Email: "ana@example.com"}}

	n := newSendGrid(&fakeClient{status: http.StatusUnauthorized}, "T", "f@example.com", users)
	err := n.ProjectAssigned(context.Background(), "abc", "P", []int64{1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")

	n = newSendGrid(&fakeClient{err: errors.New("dial tcp")}, "T", "f@example.com", users)
	assert.Error(t, n.ProjectAssigned(context.Background(), "abc", "P", []int64{1}))

	client := &fakeClient{status: http.StatusAccepted}
	n = newSendGrid(client, "T", "f@example.com", users)
	err = n.ProjectAssigned(context.Background(), "abc", "P", []int64{1, 99})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Empty(t, client.sent, "nothing is sent when a recipient cannot be resolved")
}

func TestSendGrid_NoMembersIsNoop(t *testing.T) {
	client := &fakeClient{status: http.StatusAccepted}
	n := newSendGrid(client, "T", "f@example.com", fakeUsers{})
	require.NoError(t, n.ProjectAssigned(context.Background(), "abc", "P", nil))
	assert.Empty(t, client.sent)
}

func TestNewSendGrid_RequiresConfig(t *testing.T) {
	_, err := NewSendGrid("", "T", "f@example.com", fakeUsers{})
	assert.Error(t, err)
}
