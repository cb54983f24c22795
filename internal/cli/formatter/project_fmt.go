package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/taskforge/internal/domain"
)

// FormatProjectList renders a team's projects.
func FormatProjectList(team *domain.Team, projects []*domain.Project) string {
	if len(projects) == 0 {
		return Dim(fmt.Sprintf("No projects for team %s.", team.Name)) + "\n"
	}
	headers := []string{"ID", "NAME", "STATUS", "START", "END"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{
			Dim(p.DisplayID()),
			Bold(p.Name),
			StatusStyle(string(p.Status)).Render(string(p.Status)),
			Date(p.StartDate),
			Date(p.EndDate),
		})
	}
	return RenderBox("Projects: "+team.Name, RenderTable(headers, rows))
}

// FormatTaskList renders a project header followed by its tasks.
func FormatTaskList(p *domain.Project, tasks []*domain.Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s  %s → %s\n\n", Bold(p.Name),
		StatusStyle(string(p.Status)).Render(string(p.Status)), Date(p.StartDate), Date(p.EndDate))
	if len(tasks) == 0 {
		b.WriteString(Dim("No tasks."))
		return RenderBox("", b.String())
	}
	headers := []string{"ID", "TITLE", "STATUS", "PRIORITY", "DUE"}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{
			Dim(ShortID(t.UUID)),
			t.Title,
			StatusStyle(string(t.Status)).Render(string(t.Status)),
			PriorityStyle(string(t.Priority)).Render(string(t.Priority)),
			Date(t.DueDate),
		})
	}
	b.WriteString(RenderTable(headers, rows))
	return RenderBox("", b.String())
}

// FormatTeamList renders all teams with their full UUIDs.
func FormatTeamList(teams []*domain.Team) string {
	headers := []string{"UUID", "NAME"}
	rows := make([][]string, 0, len(teams))
	for _, t := range teams {
		rows = append(rows, []string{Dim(t.UUID), Bold(t.Name)})
	}
	return RenderBox("Teams", RenderTable(headers, rows))
}

// FormatMembers renders a team's members resolved to users.
func FormatMembers(team *domain.Team, members []domain.TeamMember, users map[int64]*domain.User) string {
	headers := []string{"USER", "EMAIL", "ROLE", "JOINED"}
	rows := make([][]string, 0, len(members))
	for _, m := range members {
		name, email := fmt.Sprintf("#%d", m.UserID), ""
		if u, ok := users[m.UserID]; ok {
			name, email = u.Name, u.Email
		}
		rows = append(rows, []string{Bold(name), email, string(m.Role), Dim(m.JoinedAt.Format(domain.DateLayout))})
	}
	return RenderBox("Members: "+team.Name, RenderTable(headers, rows))
}

// FormatUserList renders all users.
func FormatUserList(users []*domain.User) string {
	headers := []string{"ID", "NAME", "EMAIL"}
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{Dim(fmt.Sprint(u.ID)), Bold(u.Name), u.Email})
	}
	return RenderBox("Users", RenderTable(headers, rows))
}
