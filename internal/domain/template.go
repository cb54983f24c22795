package domain

import "time"

// Template is a reusable, parameterized blueprint of a multi-project workflow.
// Generated projects and tasks keep no reference back to it.
type Template struct {
	ID          int64
	Name        string
	Description string
	CreatedBy   int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Projects    []ProjectDefinition
}

// TaskCount returns the number of task definitions across all project definitions.
func (t *Template) TaskCount() int {
	n := 0
	for _, p := range t.Projects {
		n += len(p.Tasks)
	}
	return n
}

// TemplateSummary is the list view of a template.
type TemplateSummary struct {
	ID           int64
	Name         string
	Description  string
	CreatedBy    int64
	ProjectCount int
	TaskCount    int
	UpdatedAt    time.Time
}

// ProjectDefinition describes one project of a template. StartDay is an offset
// in days from the master start date supplied at generation time.
type ProjectDefinition struct {
	ID                  int64
	TemplateID          int64
	Position            int
	NameTemplate        string
	DescriptionTemplate string
	StartDay            int
	DurationDays        int
	Tasks               []TaskDefinition
}

// EffectiveStartDay returns StartDay, treating zero or negative as 0.
func (d ProjectDefinition) EffectiveStartDay() int { return PositiveOr(d.StartDay, 0) }

// EffectiveDurationDays returns DurationDays, treating zero or negative as 1.
func (d ProjectDefinition) EffectiveDurationDays() int { return PositiveOr(d.DurationDays, 1) }

// TaskDefinition describes one task of a project definition. StartDay is an
// offset in days from the computed start date of its project.
type TaskDefinition struct {
	ID                  int64
	TemplateProjectID   int64
	Position            int
	NameTemplate        string
	DescriptionTemplate string
	StartDay            int
	DurationDays        int
}

func (d TaskDefinition) EffectiveStartDay() int { return PositiveOr(d.StartDay, 0) }

func (d TaskDefinition) EffectiveDurationDays() int { return PositiveOr(d.DurationDays, 1) }
