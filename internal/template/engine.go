package template

import (
	"fmt"
	"time"

	"github.com/alexanderramin/taskforge/internal/domain"
)

// PlannedTask is a task ready to be inserted: text substituted, dates resolved.
type PlannedTask struct {
	Title       string
	Description string
	StartDate   time.Time
	DueDate     time.Time
}

// PlannedProject is a project ready to be inserted along with its tasks.
type PlannedProject struct {
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	Tasks       []PlannedTask
}

// GeneratedPlan is the output of template execution. It holds no template or
// definition ids; generated rows are independent of their template.
type GeneratedPlan struct {
	TemplateName string
	TeamID       int64
	StartDate    time.Time
	Projects     []PlannedProject
}

// TaskCount returns the number of planned tasks across all projects.
func (p *GeneratedPlan) TaskCount() int {
	n := 0
	for _, pp := range p.Projects {
		n += len(pp.Tasks)
	}
	return n
}

// BuildPlan substitutes and schedules every definition of tmpl, strictly in
// definition order. It does not touch storage.
func BuildPlan(tmpl *domain.Template, params domain.GenerationParams) (*GeneratedPlan, error) {
	masterStart, err := ParseDate(params.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", err)
	}

	plan := &GeneratedPlan{
		TemplateName: tmpl.Name,
		TeamID:       params.TeamID,
		StartDate:    masterStart,
		Projects:     make([]PlannedProject, 0, len(tmpl.Projects)),
	}

	for _, pd := range tmpl.Projects {
		name, desc := substituteFields(pd.NameTemplate, pd.DescriptionTemplate, params.Variables)
		dates := ComputeProjectDates(masterStart, pd)

		pp := PlannedProject{
			Name:        name,
			Description: desc,
			StartDate:   dates.Start,
			EndDate:     dates.End,
			Tasks:       make([]PlannedTask, 0, len(pd.Tasks)),
		}

		for _, td := range pd.Tasks {
			title, tdesc := substituteFields(td.NameTemplate, td.DescriptionTemplate, params.Variables)
			tdates := ComputeTaskDates(dates.Start, td)
			pp.Tasks = append(pp.Tasks, PlannedTask{
				Title:       title,
				Description: tdesc,
				StartDate:   tdates.Start,
				DueDate:     tdates.Due,
			})
		}
		plan.Projects = append(plan.Projects, pp)
	}
	return plan, nil
}

// substituteFields runs the text fields of one definition through
// SubstituteValue as a single record.
func substituteFields(name, description string, vars map[string]string) (string, string) {
	rec := Record{
		"name":        String(name),
		"description": String(description),
	}
	out := SubstituteValue(rec, vars).(Record)
	return out.Str("name"), out.Str("description")
}

// RequiredVariables lists the distinct placeholder keys used anywhere in tmpl,
// in order of first appearance.
func RequiredVariables(tmpl *domain.Template) []string {
	var keys []string
	seen := map[string]bool{}
	add := func(text string) {
		for _, k := range Placeholders(text) {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	for _, pd := range tmpl.Projects {
		add(pd.NameTemplate)
		add(pd.DescriptionTemplate)
		for _, td := range pd.Tasks {
			add(td.NameTemplate)
			add(td.DescriptionTemplate)
		}
	}
	return keys
}

// MissingVariables returns the placeholder keys of tmpl that vars does not define.
func MissingVariables(tmpl *domain.Template, vars map[string]string) []string {
	var missing []string
	for _, k := range RequiredVariables(tmpl) {
		if _, ok := vars[k]; !ok {
			missing = append(missing, k)
		}
	}
	return missing
}
