package domain

import (
	"fmt"
	"time"
)

type Project struct {
	ID          int64
	UUID        string
	Name        string
	Description string
	TeamID      int64
	CreatedBy   int64
	Status      ProjectStatus
	StartDate   *time.Time
	EndDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidateDates checks that the end date, when present, does not precede the start date.
func (p *Project) ValidateDates() error {
	if p.StartDate == nil || p.EndDate == nil {
		return nil
	}
	if p.EndDate.Before(*p.StartDate) {
		return fmt.Errorf("end date %s is before start date %s",
			p.EndDate.Format(DateLayout), p.StartDate.Format(DateLayout))
	}
	return nil
}

// DisplayID returns the first 8 characters of the UUID.
func (p *Project) DisplayID() string {
	if len(p.UUID) >= 8 {
		return p.UUID[:8]
	}
	return p.UUID
}

type Task struct {
	ID          int64
	UUID        string
	Title       string
	Description string
	ProjectID   int64
	ReporterID  int64
	AssigneeID  *int64
	Status      TaskStatus
	Priority    TaskPriority
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
