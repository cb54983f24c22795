package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/alexanderramin/taskforge/internal/db"
	"github.com/alexanderramin/taskforge/internal/domain"
	"github.com/alexanderramin/taskforge/internal/repository"
)

type teamService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewTeamService(uow db.UnitOfWork, observers ...UseCaseObserver) TeamService {
	return &teamService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *teamService) Create(ctx context.Context, name string) (team *domain.Team, err error) {
	done := trackUseCase(ctx, s.observer, "team-create", map[string]any{"name": name})
	defer func() { done(err) }()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("name: name cannot be blank")
	}

	team = &domain.Team{UUID: uuid.New().String(), Name: name}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLTeamRepo(tx).Create(ctx, team)
	})
	if err != nil {
		return nil, err
	}
	return team, nil
}

func (s *teamService) List(ctx context.Context) ([]*domain.Team, error) {
	var teams []*domain.Team
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		teams, err = repository.NewSQLTeamRepo(tx).List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return teams, nil
}

func (s *teamService) Members(ctx context.Context, teamUUID string) (*domain.Team, []domain.TeamMember, error) {
	var (
		team    *domain.Team
		members []domain.TeamMember
	)
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLTeamRepo(tx)
		var err error
		team, err = repo.GetByUUID(ctx, teamUUID)
		if err != nil {
			return err
		}
		members, err = repo.ListMembers(ctx, team.ID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return team, members, nil
}

// AddMember adds an existing user to a team. An empty role means member.
func (s *teamService) AddMember(ctx context.Context, teamUUID, email string, role domain.MemberRole) (err error) {
	done := trackUseCase(ctx, s.observer, "team-add-member", map[string]any{"team_uuid": teamUUID})
	defer func() { done(err) }()

	if role == "" {
		role = domain.RoleMember
	}
	if !domain.ValidMemberRoles[string(role)] {
		return domain.NewValidationError("role: role must be one of [member lead]")
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		teams := repository.NewSQLTeamRepo(tx)
		team, err := teams.GetByUUID(ctx, teamUUID)
		if err != nil {
			return err
		}
		user, err := repository.NewSQLUserRepo(tx).GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		return teams.AddMember(ctx, &domain.TeamMember{TeamID: team.ID, UserID: user.ID, Role: role})
	})
}
