package template

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/taskforge/internal/domain"
)

// TemplateSchema is the JSON shape accepted when creating or updating a template.
type TemplateSchema struct {
	Name        string          `json:"name" validate:"notblank,max=200"`
	Description string          `json:"description,omitempty"`
	Projects    []ProjectSchema `json:"projects" validate:"required,min=1,dive"`
}

type ProjectSchema struct {
	Name         string       `json:"name" validate:"notblank"`
	Description  string       `json:"description,omitempty"`
	StartDay     *int         `json:"start_day,omitempty" validate:"omitempty,min=0"`
	DurationDays *int         `json:"duration_days,omitempty" validate:"omitempty,min=0"`
	Tasks        []TaskSchema `json:"tasks" validate:"dive"`
}

type TaskSchema struct {
	Title        string `json:"title" validate:"notblank"`
	Description  string `json:"description,omitempty"`
	StartDay     *int   `json:"start_day,omitempty" validate:"omitempty,min=0"`
	DurationDays *int   `json:"duration_days,omitempty" validate:"omitempty,min=0"`
}

// LoadSchema reads and parses a template JSON file.
func LoadSchema(path string) (*TemplateSchema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseSchema(f)
}

// ParseSchema decodes a template from r.
func ParseSchema(r io.Reader) (*TemplateSchema, error) {
	var schema TemplateSchema
	if err := json.NewDecoder(r).Decode(&schema); err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}
	return &schema, nil
}

// ToDomain converts the schema into a Template owned by createdBy. Absent or
// zero start_day becomes 0 and absent or zero duration_days becomes 1.
// Positions follow the order of the input arrays.
func (s *TemplateSchema) ToDomain(createdBy int64) *domain.Template {
	t := &domain.Template{
		Name:        s.Name,
		Description: s.Description,
		CreatedBy:   createdBy,
		Projects:    make([]domain.ProjectDefinition, 0, len(s.Projects)),
	}
	for i, ps := range s.Projects {
		pd := domain.ProjectDefinition{
			Position:            i,
			NameTemplate:        ps.Name,
			DescriptionTemplate: ps.Description,
			StartDay:            domain.PositiveOr(domain.IntFromPtrWithDefault(0, ps.StartDay), 0),
			DurationDays:        domain.PositiveOr(domain.IntFromPtrWithDefault(1, ps.DurationDays), 1),
			Tasks:               make([]domain.TaskDefinition, 0, len(ps.Tasks)),
		}
		for j, ts := range ps.Tasks {
			pd.Tasks = append(pd.Tasks, domain.TaskDefinition{
				Position:            j,
				NameTemplate:        ts.Title,
				DescriptionTemplate: ts.Description,
				StartDay:            domain.PositiveOr(domain.IntFromPtrWithDefault(0, ts.StartDay), 0),
				DurationDays:        domain.PositiveOr(domain.IntFromPtrWithDefault(1, ts.DurationDays), 1),
			})
		}
		t.Projects = append(t.Projects, pd)
	}
	return t
}

// SchemaFromTemplate renders a stored template back into its JSON shape, so an
// exported template can be edited and fed to update.
func SchemaFromTemplate(t *domain.Template) *TemplateSchema {
	s := &TemplateSchema{
		Name:        t.Name,
		Description: t.Description,
		Projects:    make([]ProjectSchema, 0, len(t.Projects)),
	}
	for _, pd := range t.Projects {
		ps := ProjectSchema{
			Name:         pd.NameTemplate,
			Description:  pd.DescriptionTemplate,
			StartDay:     intPtr(pd.EffectiveStartDay()),
			DurationDays: intPtr(pd.EffectiveDurationDays()),
			Tasks:        make([]TaskSchema, 0, len(pd.Tasks)),
		}
		for _, td := range pd.Tasks {
			ps.Tasks = append(ps.Tasks, TaskSchema{
				Title:        td.NameTemplate,
				Description:  td.DescriptionTemplate,
				StartDay:     intPtr(td.EffectiveStartDay()),
				DurationDays: intPtr(td.EffectiveDurationDays()),
			})
		}
		s.Projects = append(s.Projects, ps)
	}
	return s
}

func intPtr(v int) *int { return &v }
