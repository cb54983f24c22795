package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/taskforge/internal/db"
	"github.com/alexanderramin/taskforge/internal/domain"
	"github.com/alexanderramin/taskforge/internal/importer"
	"github.com/alexanderramin/taskforge/internal/repository"
	"github.com/alexanderramin/taskforge/internal/validation"
)

type importService struct {
	uow       db.UnitOfWork
	validator *validation.Validator
	observer  UseCaseObserver
}

func NewImportService(
	uow db.UnitOfWork,
	validator *validation.Validator,
	observers ...UseCaseObserver,
) ImportService {
	return &importService{
		uow:       uow,
		validator: validator,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportProjects(ctx context.Context, r io.Reader, userID int64) (result *domain.ImportResult, err error) {
	fields := map[string]any{"user_id": userID}
	done := trackUseCase(ctx, s.observer, "import-projects", fields)
	defer func() { done(err) }()

	if userID <= 0 {
		return nil, domain.NewValidationError("user id is required")
	}
	rows, err := importer.ReadProjects(r)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}

	result = RunBatch(ctx, s.uow, rows, func(ctx context.Context, tx db.DBTX, row importer.ProjectRow) error {
		if err := s.validator.Struct(row); err != nil {
			return err
		}
		team, err := repository.NewSQLTeamRepo(tx).GetByUUID(ctx, row.TeamUUID)
		if err != nil {
			return notFoundReason(err, fmt.Sprintf("Team with UUID '%s' not found.", row.TeamUUID))
		}

		start, err := optionalDate("start_date", row.StartDate)
		if err != nil {
			return err
		}
		end, err := optionalDate("end_date", row.EndDate)
		if err != nil {
			return err
		}

		p := &domain.Project{
			UUID:        uuid.New().String(),
			Name:        row.Name,
			Description: row.Description,
			TeamID:      team.ID,
			CreatedBy:   userID,
			Status:      domain.ProjectStatus(domain.CoalesceStr(row.Status, string(domain.ProjectPlanning))),
			StartDate:   start,
			EndDate:     end,
		}
		if err := p.ValidateDates(); err != nil {
			return err
		}
		return repository.NewSQLProjectRepo(tx).Create(ctx, p)
	})
	recordImport(fields, result)
	return result, nil
}

func (s *importService) ImportTasks(ctx context.Context, r io.Reader, userID int64) (result *domain.ImportResult, err error) {
	fields := map[string]any{"user_id": userID}
	done := trackUseCase(ctx, s.observer, "import-tasks", fields)
	defer func() { done(err) }()

	if userID <= 0 {
		return nil, domain.NewValidationError("user id is required")
	}
	rows, err := importer.ReadTasks(r)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}

	result = RunBatch(ctx, s.uow, rows, func(ctx context.Context, tx db.DBTX, row importer.TaskRow) error {
		if err := s.validator.Struct(row); err != nil {
			return err
		}
		project, err := repository.NewSQLProjectRepo(tx).GetByUUID(ctx, row.ProjectUUID)
		if err != nil {
			return notFoundReason(err, fmt.Sprintf("Project with UUID '%s' not found.", row.ProjectUUID))
		}
		due, err := optionalDate("due_date", row.DueDate)
		if err != nil {
			return err
		}

		t := &domain.Task{
			UUID:        uuid.New().String(),
			Title:       row.Title,
			Description: row.Description,
			ProjectID:   project.ID,
			ReporterID:  userID,
			Status:      domain.TaskStatus(domain.CoalesceStr(row.Status, string(domain.TaskTodo))),
			Priority:    domain.TaskPriority(domain.CoalesceStr(row.Priority, string(domain.PriorityMedium))),
			DueDate:     due,
		}
		if row.AssigneeEmail != "" {
			user, err := repository.NewSQLUserRepo(tx).GetByEmail(ctx, row.AssigneeEmail)
			if err != nil {
				return notFoundReason(err, fmt.Sprintf("User with email '%s' not found.", row.AssigneeEmail))
			}
			t.AssigneeID = &user.ID
		}
		return repository.NewSQLTaskRepo(tx).Create(ctx, t)
	})
	recordImport(fields, result)
	return result, nil
}

func (s *importService) ImportTeamMembers(ctx context.Context, r io.Reader) (result *domain.ImportResult, err error) {
	fields := map[string]any{}
	done := trackUseCase(ctx, s.observer, "import-members", fields)
	defer func() { done(err) }()

	rows, err := importer.ReadMembers(r)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}

	result = RunBatch(ctx, s.uow, rows, func(ctx context.Context, tx db.DBTX, row importer.MemberRow) error {
		if err := s.validator.Struct(row); err != nil {
			return err
		}
		teams := repository.NewSQLTeamRepo(tx)
		team, err := teams.GetByUUID(ctx, row.TeamUUID)
		if err != nil {
			return notFoundReason(err, fmt.Sprintf("Team with UUID '%s' not found.", row.TeamUUID))
		}
		user, err := repository.NewSQLUserRepo(tx).GetByEmail(ctx, row.Email)
		if err != nil {
			return notFoundReason(err, fmt.Sprintf("User with email '%s' not found.", row.Email))
		}
		return teams.AddMember(ctx, &domain.TeamMember{
			TeamID: team.ID,
			UserID: user.ID,
			Role:   domain.MemberRole(domain.CoalesceStr(row.Role, string(domain.RoleMember))),
		})
	})
	recordImport(fields, result)
	return result, nil
}

// notFoundReason replaces a not-found lookup error with the row-facing reason.
func notFoundReason(err error, reason string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return errors.New(reason)
	}
	return err
}

// optionalDate parses a YYYY-MM-DD value; empty means no date.
func optionalDate(field, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(domain.DateLayout, s, time.UTC)
	if err != nil {
		return nil, domain.NewValidationError(fmt.Sprintf("%s: %q is not a YYYY-MM-DD date", field, s))
	}
	return &t, nil
}

func recordImport(fields map[string]any, result *domain.ImportResult) {
	fields["successful"] = result.Successful
	fields["failed"] = result.Failed
}
