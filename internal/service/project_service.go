package service

import (
	"context"
	"fmt"

	"m42hub/internal/dto"
	"m42hub/internal/mapper"
	"m42hub/internal/model"
)

type ProjectService struct {
	tx       Transactor
	projects ProjectStore
	members  MemberStore
}

func NewProjectService(tx Transactor, projects ProjectStore, members MemberStore) *ProjectService {
	return &ProjectService{tx: tx, projects: projects, members: members}
}

func (s *ProjectService) List(ctx context.Context) ([]model.Project, error) {
	return s.projects.List(ctx)
}

func (s *ProjectService) FindByID(ctx context.Context, id uint64) (*model.Project, bool, error) {
	return s.projects.FindByID(ctx, id)
}

// Create stores the project together with its founding manager membership.
func (s *ProjectService) Create(ctx context.Context, req dto.ProjectRequest, managerID uint64) (*model.Project, error) {
	p := mapper.BuildProject(req, managerID)
	members := p.Members
	p.Members = nil

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.projects.Create(ctx, p); err != nil {
			return fmt.Errorf("create project: %w", err)
		}
		for i := range members {
			members[i].ProjectID = p.ID
			if err := s.members.Create(ctx, &members[i]); err != nil {
				return fmt.Errorf("create founding member: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	created, found, err := s.projects.FindByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if !found {
		p.Members = members
		return p, nil
	}
	return created, nil
}

// Update applies a selective merge. found is false when the project does not exist.
func (s *ProjectService) Update(ctx context.Context, id uint64, patch model.ProjectPatch) (*model.Project, bool, error) {
	var found bool
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		_, ok, err := s.projects.FindByIDForUpdate(ctx, id)
		if err != nil || !ok {
			return err
		}
		found = true
		return s.projects.ApplyPatch(ctx, id, patch)
	})
	if err != nil || !found {
		return nil, false, err
	}
	return s.projects.FindByID(ctx, id)
}
