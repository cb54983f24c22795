package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/taskforge/internal/domain"
	tmpl "github.com/alexanderramin/taskforge/internal/template"
)

// FormatTemplateList renders the template summaries inside a bordered box.
func FormatTemplateList(templates []domain.TemplateSummary) string {
	headers := []string{"ID", "NAME", "PROJECTS", "TASKS", "UPDATED"}
	rows := make([][]string, 0, len(templates))
	for _, t := range templates {
		rows = append(rows, []string{
			Dim(strconv.FormatInt(t.ID, 10)),
			Bold(t.Name),
			strconv.Itoa(t.ProjectCount),
			strconv.Itoa(t.TaskCount),
			Dim(t.UpdatedAt.Format(domain.DateLayout)),
		})
	}
	return RenderBox("Templates", RenderTable(headers, rows))
}

// FormatTemplateShow renders a template header, its required variables and
// the definition tree with day offsets.
func FormatTemplateShow(t *domain.Template) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", StyleBold.Render(t.Name), Dim(fmt.Sprintf("#%d", t.ID)))
	if t.Description != "" {
		b.WriteString(t.Description + "\n")
	}
	if vars := tmpl.RequiredVariables(t); len(vars) > 0 {
		fmt.Fprintf(&b, "\n  %s  %s\n", StyleDim.Render("VARIABLES"), strings.Join(vars, ", "))
	}
	b.WriteString("\n")

	var items []TreeItem
	for _, p := range t.Projects {
		items = append(items, TreeItem{Title: p.NameTemplate, Detail: offsetBadge(p.EffectiveStartDay(), p.EffectiveDurationDays())})
		for j, task := range p.Tasks {
			items = append(items, TreeItem{
				Title:  task.NameTemplate,
				Level:  1,
				IsLast: j == len(p.Tasks)-1,
				Detail: offsetBadge(task.EffectiveStartDay(), task.EffectiveDurationDays()),
			})
		}
	}
	b.WriteString(RenderTree(items))
	return RenderBox("", b.String())
}

// FormatPlan renders a dry-run generation plan with concrete dates.
func FormatPlan(plan *tmpl.GeneratedPlan) string {
	var items []TreeItem
	for _, p := range plan.Projects {
		items = append(items, TreeItem{
			Title:  p.Name,
			Detail: tmpl.FormatDate(p.StartDate) + " → " + tmpl.FormatDate(p.EndDate),
		})
		for j, task := range p.Tasks {
			items = append(items, TreeItem{
				Title:  task.Title,
				Level:  1,
				IsLast: j == len(p.Tasks)-1,
				Detail: "due " + tmpl.FormatDate(task.DueDate),
			})
		}
	}
	summary := fmt.Sprintf("%d project(s), %d task(s) starting %s",
		len(plan.Projects), plan.TaskCount(), tmpl.FormatDate(plan.StartDate))
	return RenderBox("Preview: "+plan.TemplateName, RenderTree(items)+"\n"+Dim(summary))
}

// FormatGenerationResult renders the outcome of a committed generation.
func FormatGenerationResult(r *domain.GenerationResult) string {
	var b strings.Builder
	b.WriteString(Success(r.Message) + "\n")
	for _, id := range r.ProjectUUIDs {
		b.WriteString("  " + Dim(id) + "\n")
	}
	return b.String()
}

func offsetBadge(startDay, durationDays int) string {
	return fmt.Sprintf("day %d +%dd", startDay, durationDays)
}
