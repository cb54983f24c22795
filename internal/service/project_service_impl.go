package service

import (
	"context"

	"github.com/alexanderramin/taskforge/internal/db"
	"github.com/alexanderramin/taskforge/internal/domain"
	"github.com/alexanderramin/taskforge/internal/repository"
)

type projectService struct {
	uow db.UnitOfWork
}

func NewProjectService(uow db.UnitOfWork) ProjectService {
	return &projectService{uow: uow}
}

func (s *projectService) ListByTeam(ctx context.Context, teamUUID string) ([]*domain.Project, error) {
	var projects []*domain.Project
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		team, err := repository.NewSQLTeamRepo(tx).GetByUUID(ctx, teamUUID)
		if err != nil {
			return err
		}
		projects, err = repository.NewSQLProjectRepo(tx).ListByTeam(ctx, team.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *projectService) Tasks(ctx context.Context, projectUUID string) (*domain.Project, []*domain.Task, error) {
	var (
		project *domain.Project
		tasks   []*domain.Task
	)
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		project, err = repository.NewSQLProjectRepo(tx).GetByUUID(ctx, projectUUID)
		if err != nil {
			return err
		}
		tasks, err = repository.NewSQLTaskRepo(tx).ListByProject(ctx, project.ID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return project, tasks, nil
}
