package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/taskforge/internal/domain"
	tmpl "github.com/alexanderramin/taskforge/internal/template"
)

func TestRenderTable_AlignsStyledCells(t *testing.T) {
	out := RenderTable([]string{"A", "LONGER"}, [][]string{
		{StyleRed.Render("wide cell"), "x"},
		{"y"},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, lipgloss.Width(lines[0]), lipgloss.Width(lines[1]))
	assert.Contains(t, lines[2], "wide cell")
	assert.Empty(t, RenderTable(nil, nil))
}

func TestRenderTree(t *testing.T) {
	out := RenderTree([]TreeItem{
		{Title: "Kickoff", Detail: "day 0 +1d"},
		{Title: "Call", Level: 1},
		{Title: "Email", Level: 1, IsLast: true},
	})
	assert.Contains(t, out, "├─ ")
	assert.Contains(t, out, "└─ ")
	assert.Contains(t, out, "[ day 0 +1d ]")
	assert.Empty(t, RenderTree(nil))
}

func TestFormatTemplateShow_ListsVariablesAndOffsets(t *testing.T) {
	out := FormatTemplateShow(&domain.Template{
		ID:   3,
		Name: "Onboarding",
		Projects: []domain.ProjectDefinition{{
			NameTemplate: "{client} Kickoff",
			StartDay:     10,
			DurationDays: 5,
			Tasks:        []domain.TaskDefinition{{NameTemplate: "Call {owner}"}},
		}},
	})
	assert.Contains(t, out, "client, owner")
	assert.Contains(t, out, "day 10 +5d")
	assert.Contains(t, out, "day 0 +1d")
}

func TestFormatPlan(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := FormatPlan(&tmpl.GeneratedPlan{
		TemplateName: "Onboarding",
		StartDate:    start,
		Projects: []tmpl.PlannedProject{{
			Name:      "Acme Kickoff",
			StartDate: start.AddDate(0, 0, 10),
			EndDate:   start.AddDate(0, 0, 15),
			Tasks:     []tmpl.PlannedTask{{Title: "Call", DueDate: start.AddDate(0, 0, 15)}},
		}},
	})
	assert.Contains(t, out, "2024-01-11 → 2024-01-16")
	assert.Contains(t, out, "due 2024-01-16")
	assert.Contains(t, out, "1 project(s), 1 task(s) starting 2024-01-01")
}

func TestFormatImportResult(t *testing.T) {
	out := FormatImportResult("projects", &domain.ImportResult{
		Successful: 4, Failed: 1,
		Errors: []domain.RowError{{Row: 4, Reason: "Team with UUID 'x' not found."}},
	})
	assert.Contains(t, out, "imported")
	assert.Contains(t, out, "Team with UUID 'x' not found.")
	assert.NotContains(t, FormatImportResult("tasks", &domain.ImportResult{Errors: []domain.RowError{}}), "REASON")
}

func TestDateAndShortID(t *testing.T) {
	d := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-02-29", Date(&d))
	assert.Contains(t, Date(nil), "-")
	assert.Equal(t, "abcdefgh", ShortID("abcdefgh-1234"))
	assert.Equal(t, "abc", ShortID("abc"))
}
