package repository

import (
	"context"

	"github.com/alexanderramin/pricebook/internal/domain"
)

// Lookups that find nothing return an error matching domain.ErrNotFound.

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByShortID(ctx context.Context, shortID string) (*domain.Project, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Archive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	CreateMilestone(ctx context.Context, m *domain.Milestone) error
	CreateTask(ctx context.Context, t *domain.Task) error
}

type PersonRepo interface {
	Create(ctx context.Context, p *domain.Person) error
	GetByID(ctx context.Context, id string) (*domain.Person, error)
	List(ctx context.Context) ([]*domain.Person, error)
	Delete(ctx context.Context, id string) error
}

// PricingRepo stores each project's pricing as one document.
type PricingRepo interface {
	Get(ctx context.Context, projectID string) (*domain.ProjectPricing, error)
	Save(ctx context.Context, p *domain.ProjectPricing) error
	Delete(ctx context.Context, projectID string) error
	List(ctx context.Context) ([]*domain.ProjectPricing, error)
}

type TrackedProjectRepo interface {
	Get(ctx context.Context, projectID string) (*domain.TrackedProject, error)
	Upsert(ctx context.Context, tp *domain.TrackedProject) error
	List(ctx context.Context) ([]*domain.TrackedProject, error)
}

type AssignmentRepo interface {
	Create(ctx context.Context, a *domain.Assignment) error
	GetByID(ctx context.Context, id string) (*domain.Assignment, error)
	List(ctx context.Context) ([]*domain.Assignment, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Assignment, error)
	ListByPerson(ctx context.Context, personID string) ([]*domain.Assignment, error)
	Delete(ctx context.Context, id string) error
}
