package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/pricebook/internal/db"
	"github.com/alexanderramin/pricebook/internal/domain"
	"github.com/alexanderramin/pricebook/internal/repository"
	"github.com/google/uuid"
)

type projectService struct {
	projects repository.ProjectRepo
	uow      db.UnitOfWork
	pricing  PricingService
	observer UseCaseObserver
}

// NewProjectService manages project records. Deleting a project also
// deletes its pricing document in the same transaction; pricing may be nil
// when no pricing cache needs evicting.
func NewProjectService(projects repository.ProjectRepo, uow db.UnitOfWork, pricing PricingService, observers ...UseCaseObserver) ProjectService {
	return &projectService{
		projects: projects,
		uow:      uow,
		pricing:  pricing,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *projectService) Create(ctx context.Context, p *domain.Project) (err error) {
	defer observe(ctx, s.observer, "create-project", map[string]any{"short_id": p.ShortID}, &err)()

	if err = p.ValidateShortID(); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = domain.ProjectActive
	}
	for i := range p.Milestones {
		if p.Milestones[i].ID == "" {
			p.Milestones[i].ID = uuid.New().String()
		}
		for j := range p.Milestones[i].Tasks {
			if p.Milestones[i].Tasks[j].ID == "" {
				p.Milestones[i].Tasks[j].ID = uuid.New().String()
			}
		}
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteProjectRepo(tx).Create(ctx, p)
	})
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *projectService) GetByShortID(ctx context.Context, shortID string) (*domain.Project, error) {
	return s.projects.GetByShortID(ctx, shortID)
}

func (s *projectService) List(ctx context.Context, includeArchived bool) ([]*domain.Project, error) {
	return s.projects.List(ctx, includeArchived)
}

func (s *projectService) Archive(ctx context.Context, id string) error {
	return s.projects.Archive(ctx, id)
}

// Delete refuses active projects unless force is set.
func (s *projectService) Delete(ctx context.Context, id string, force bool) (err error) {
	defer observe(ctx, s.observer, "delete-project", map[string]any{"project_id": id, "force": force}, &err)()

	if !force {
		p, err := s.projects.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p.Status != domain.ProjectArchived {
			return fmt.Errorf("project must be archived before deletion (use --force to override)")
		}
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLitePricingRepo(tx).Delete(ctx, id); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("deleting pricing: %w", err)
		}
		return repository.NewSQLiteProjectRepo(tx).Delete(ctx, id)
	})
	if err == nil && s.pricing != nil {
		s.pricing.Evict(id)
	}
	return err
}

func (s *projectService) AddMilestone(ctx context.Context, projectID, title string) (*domain.Milestone, error) {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	m := &domain.Milestone{
		ID:         uuid.New().String(),
		ProjectID:  p.ID,
		Title:      title,
		OrderIndex: len(p.Milestones),
	}
	if err := s.projects.CreateMilestone(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *projectService) AddTask(ctx context.Context, projectID, milestoneID, title string) (*domain.Task, error) {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	m := p.FindMilestone(milestoneID)
	if m == nil {
		return nil, &domain.NotFoundError{Kind: "milestone", ID: milestoneID}
	}
	t := &domain.Task{
		ID:          uuid.New().String(),
		MilestoneID: m.ID,
		Title:       title,
		OrderIndex:  len(m.Tasks),
	}
	if err := s.projects.CreateTask(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}
