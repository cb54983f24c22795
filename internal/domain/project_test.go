package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, s string) *time.Time {
	t.Helper()
	d, err := time.Parse(DateLayout, s)
	require.NoError(t, err)
	return &d
}

func TestValidateDates_EndBeforeStart(t *testing.T) {
	p := &Project{StartDate: date(t, "2024-02-01"), EndDate: date(t, "2024-01-31")}
	err := p.ValidateDates()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "before start date")
}

func TestValidateDates_OpenEnded(t *testing.T) {
	p := &Project{StartDate: date(t, "2024-02-01")}
	assert.NoError(t, p.ValidateDates())
}

func TestDisplayID(t *testing.T) {
	p := &Project{UUID: "550e8400-e29b-41d4-a716-446655440000"}
	assert.Equal(t, "550e8400", p.DisplayID())

	short := &Project{UUID: "abc"}
	assert.Equal(t, "abc", short.DisplayID())
}

func TestDefinitionDefaults(t *testing.T) {
	p := ProjectDefinition{}
	assert.Equal(t, 0, p.EffectiveStartDay())
	assert.Equal(t, 1, p.EffectiveDurationDays())

	task := TaskDefinition{StartDay: 3, DurationDays: 4}
	assert.Equal(t, 3, task.EffectiveStartDay())
	assert.Equal(t, 4, task.EffectiveDurationDays())
}

func TestTemplateTaskCount(t *testing.T) {
	tmpl := &Template{Projects: []ProjectDefinition{
		{Tasks: make([]TaskDefinition, 2)},
		{Tasks: make([]TaskDefinition, 3)},
		{},
	}}
	assert.Equal(t, 5, tmpl.TaskCount())
}

func TestNotFoundError_MatchesSentinel(t *testing.T) {
	var err error = NewNotFound("template", 42)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "template 42 not found", err.Error())
}

func TestTransactionError_Unwraps(t *testing.T) {
	cause := NewNotFound("team", 7)
	err := &TransactionError{Op: "generate", Err: cause}
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "generate rolled back")
}

func TestValidationError_Message(t *testing.T) {
	single := NewValidationError("name: this field is required")
	assert.Equal(t, "validation failed: name: this field is required", single.Error())
	assert.True(t, errors.Is(single, ErrValidation))

	multi := NewValidationError("a", "b")
	assert.Contains(t, multi.Error(), "(2 errors)")
	assert.Contains(t, multi.Error(), "\n  - b")
}
