package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/taskforge/internal/db"
	"github.com/alexanderramin/taskforge/internal/domain"
	"github.com/alexanderramin/taskforge/internal/repository"
	tmpl "github.com/alexanderramin/taskforge/internal/template"
	"github.com/alexanderramin/taskforge/internal/validation"
)

type templateService struct {
	uow       db.UnitOfWork
	validator *validation.Validator
	observer  UseCaseObserver
}

func NewTemplateService(
	uow db.UnitOfWork,
	validator *validation.Validator,
	observers ...UseCaseObserver,
) TemplateService {
	return &templateService{
		uow:       uow,
		validator: validator,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *templateService) Create(ctx context.Context, schema *tmpl.TemplateSchema, userID int64) (t *domain.Template, err error) {
	fields := map[string]any{"user_id": userID}
	done := trackUseCase(ctx, s.observer, "template-create", fields)
	defer func() { done(err) }()

	if err = s.validate(schema, userID); err != nil {
		return nil, err
	}

	t = schema.ToDomain(userID)
	fields["project_count"] = len(t.Projects)
	fields["task_count"] = t.TaskCount()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLTemplateRepo(tx).Create(ctx, t)
	})
	if err != nil {
		return nil, &domain.TransactionError{Op: "template create", Err: err}
	}
	fields["template_id"] = t.ID
	return t, nil
}

func (s *templateService) Get(ctx context.Context, id int64) (*domain.Template, error) {
	var t *domain.Template
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		t, err = repository.NewSQLTemplateRepo(tx).GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *templateService) List(ctx context.Context) ([]domain.TemplateSummary, error) {
	var list []domain.TemplateSummary
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		list, err = repository.NewSQLTemplateRepo(tx).List(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	return list, nil
}

// Update replaces the template's header and all nested definitions in one
// transaction. A missing template is reported before anything is written.
func (s *templateService) Update(ctx context.Context, id int64, schema *tmpl.TemplateSchema) (t *domain.Template, err error) {
	fields := map[string]any{"template_id": id}
	done := trackUseCase(ctx, s.observer, "template-update", fields)
	defer func() { done(err) }()

	if err = s.validateSchema(schema); err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLTemplateRepo(tx)
		existing, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		t = schema.ToDomain(existing.CreatedBy)
		t.ID = existing.ID
		t.CreatedAt = existing.CreatedAt
		return repo.Update(ctx, t)
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, &domain.TransactionError{Op: "template update", Err: err}
	}
	fields["project_count"] = len(t.Projects)
	fields["task_count"] = t.TaskCount()
	return t, nil
}

func (s *templateService) Delete(ctx context.Context, id int64) (err error) {
	done := trackUseCase(ctx, s.observer, "template-delete", map[string]any{"template_id": id})
	defer func() { done(err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLTemplateRepo(tx).Delete(ctx, id)
	})
	return err
}

func (s *templateService) validate(schema *tmpl.TemplateSchema, userID int64) error {
	if userID <= 0 {
		return domain.NewValidationError("user id is required")
	}
	return s.validateSchema(schema)
}

func (s *templateService) validateSchema(schema *tmpl.TemplateSchema) error {
	if schema == nil {
		return domain.NewValidationError("template body is required")
	}
	return s.validator.Struct(schema)
}
