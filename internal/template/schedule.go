package template

import (
	"fmt"
	"time"

	"github.com/alexanderramin/taskforge/internal/domain"
)

// ProjectDates are the absolute dates of a generated project.
type ProjectDates struct {
	Start time.Time
	End   time.Time
}

// TaskDates are the absolute dates of a generated task. Only Due is stored.
type TaskDates struct {
	Start time.Time
	Due   time.Time
}

// ComputeProjectDates anchors a project definition at the master start date:
// start = master + start_day, end = start + duration_days.
func ComputeProjectDates(masterStart time.Time, def domain.ProjectDefinition) ProjectDates {
	start := addDays(masterStart, def.EffectiveStartDay())
	return ProjectDates{
		Start: start,
		End:   addDays(start, def.EffectiveDurationDays()),
	}
}

// ComputeTaskDates anchors a task definition at its project's computed start,
// never at the master start date.
func ComputeTaskDates(projectStart time.Time, def domain.TaskDefinition) TaskDates {
	start := addDays(projectStart, def.EffectiveStartDay())
	return TaskDates{
		Start: start,
		Due:   addDays(start, def.EffectiveDurationDays()),
	}
}

// ParseDate parses a YYYY-MM-DD calendar date as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(domain.DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.UTC().Format(domain.DateLayout)
}

func addDays(t time.Time, days int) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d+days, 0, 0, 0, 0, time.UTC)
}
