package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/alexanderramin/taskforge/internal/db"
	"github.com/alexanderramin/taskforge/internal/domain"
	"github.com/alexanderramin/taskforge/internal/notify"
	"github.com/alexanderramin/taskforge/internal/repository"
	tmpl "github.com/alexanderramin/taskforge/internal/template"
)

type generationService struct {
	uow      db.UnitOfWork
	notifier notify.Notifier
	logger   *slog.Logger
	observer UseCaseObserver
}

// NewGenerationService wires the orchestrator. A nil notifier disables
// notifications and a nil logger discards log output.
func NewGenerationService(
	uow db.UnitOfWork,
	notifier notify.Notifier,
	logger *slog.Logger,
	observers ...UseCaseObserver,
) GenerationService {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &generationService{
		uow:      uow,
		notifier: notifier,
		logger:   logger,
		observer: useCaseObserverOrNoop(observers),
	}
}

type createdProject struct {
	uuid string
	name string
}

func (s *generationService) Generate(ctx context.Context, templateID int64, params domain.GenerationParams, userID int64) (result *domain.GenerationResult, err error) {
	fields := map[string]any{
		"template_id": templateID,
		"team_id":     params.TeamID,
		"user_id":     userID,
	}
	done := trackUseCase(ctx, s.observer, "generate-from-template", fields)
	defer func() { done(err) }()

	if userID <= 0 {
		return nil, domain.NewValidationError("user id is required")
	}

	var plan *tmpl.GeneratedPlan
	plan, err = s.Preview(ctx, templateID, params)
	if err != nil {
		return nil, err
	}
	fields["project_count"] = len(plan.Projects)
	fields["task_count"] = plan.TaskCount()

	var created []createdProject
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		created = created[:0]
		projects := repository.NewSQLProjectRepo(tx)
		tasks := repository.NewSQLTaskRepo(tx)

		for i := range plan.Projects {
			pp := &plan.Projects[i]
			project := &domain.Project{
				UUID:        uuid.New().String(),
				Name:        pp.Name,
				Description: pp.Description,
				TeamID:      plan.TeamID,
				CreatedBy:   userID,
				Status:      domain.ProjectPlanning,
				StartDate:   &pp.StartDate,
				EndDate:     &pp.EndDate,
			}
			if err := projects.Create(ctx, project); err != nil {
				return fmt.Errorf("creating project %q: %w", pp.Name, err)
			}

			for j := range pp.Tasks {
				pt := &pp.Tasks[j]
				task := &domain.Task{
					UUID:        uuid.New().String(),
					Title:       pt.Title,
					Description: pt.Description,
					ProjectID:   project.ID,
					ReporterID:  userID,
					Status:      domain.TaskTodo,
					Priority:    domain.PriorityMedium,
					DueDate:     &pt.DueDate,
				}
				if err := tasks.Create(ctx, task); err != nil {
					return fmt.Errorf("creating task %q: %w", pt.Title, err)
				}
			}
			created = append(created, createdProject{uuid: project.UUID, name: project.Name})
		}
		return nil
	})
	if err != nil {
		return nil, &domain.TransactionError{Op: "generate from template", Err: err}
	}

	fields["notification_failed"] = s.notifyAssigned(ctx, plan.TeamID, created)

	result = &domain.GenerationResult{
		Success:      true,
		Message:      fmt.Sprintf("Generated %d project(s) and %d task(s) from template '%s'", len(created), plan.TaskCount(), plan.TemplateName),
		ProjectUUIDs: make([]string, 0, len(created)),
		ProjectCount: len(created),
		TaskCount:    plan.TaskCount(),
	}
	for _, c := range created {
		result.ProjectUUIDs = append(result.ProjectUUIDs, c.uuid)
	}
	return result, nil
}

// Preview loads the template in its own read transaction and builds the plan.
func (s *generationService) Preview(ctx context.Context, templateID int64, params domain.GenerationParams) (*tmpl.GeneratedPlan, error) {
	if params.TeamID <= 0 {
		return nil, domain.NewValidationError("team_id must be a positive integer")
	}

	var snapshot *domain.Template
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		snapshot, err = repository.NewSQLTemplateRepo(tx).GetByID(ctx, templateID)
		return err
	})
	if err != nil {
		return nil, err
	}

	plan, err := tmpl.BuildPlan(snapshot, params)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}
	return plan, nil
}

// notifyAssigned fans out one notification per created project. Failures are
// logged and counted, never returned. Generation has already committed.
func (s *generationService) notifyAssigned(ctx context.Context, teamID int64, created []createdProject) int {
	if len(created) == 0 {
		return 0
	}

	var memberIDs []int64
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		memberIDs, err = repository.NewSQLTeamRepo(tx).ListMemberIDs(ctx, teamID)
		return err
	})
	if err != nil {
		s.logger.WarnContext(ctx, "listing team members for notification failed",
			"team_id", teamID, "error", err)
		return len(created)
	}

	failed := 0
	for _, c := range created {
		if err := s.safeNotify(ctx, c, memberIDs); err != nil {
			failed++
			s.logger.WarnContext(ctx, "project assigned notification failed",
				"project_uuid", c.uuid, "team_id", teamID, "error", err)
		}
	}
	return failed
}

// safeNotify converts a notifier panic into an error.
func (s *generationService) safeNotify(ctx context.Context, c createdProject, memberIDs []int64) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("notifier panic: %v", p)
		}
	}()
	return s.notifier.ProjectAssigned(ctx, c.uuid, c.name, memberIDs)
}
