package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/alexanderramin/taskforge/internal/db"
	"github.com/alexanderramin/taskforge/internal/domain"
	"github.com/alexanderramin/taskforge/internal/repository"
	"github.com/alexanderramin/taskforge/internal/validation"
)

type newUserInput struct {
	Name  string `json:"name" validate:"notblank,max=200"`
	Email string `json:"email" validate:"required,email"`
}

type userService struct {
	uow       db.UnitOfWork
	validator *validation.Validator
	observer  UseCaseObserver
}

func NewUserService(uow db.UnitOfWork, validator *validation.Validator, observers ...UseCaseObserver) UserService {
	return &userService{uow: uow, validator: validator, observer: useCaseObserverOrNoop(observers)}
}

func (s *userService) Create(ctx context.Context, name, email string) (user *domain.User, err error) {
	done := trackUseCase(ctx, s.observer, "user-create", map[string]any{})
	defer func() { done(err) }()

	in := newUserInput{Name: strings.TrimSpace(name), Email: strings.TrimSpace(email)}
	if err = s.validator.Struct(in); err != nil {
		return nil, err
	}

	user = &domain.User{UUID: uuid.New().String(), Name: in.Name, Email: in.Email}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLUserRepo(tx).Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var user *domain.User
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		user, err = repository.NewSQLUserRepo(tx).GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]*domain.User, error) {
	var users []*domain.User
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		users, err = repository.NewSQLUserRepo(tx).List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}
