package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/pricebook/internal/domain"
	"github.com/alexanderramin/pricebook/internal/repository"
	"github.com/alexanderramin/pricebook/internal/revenue"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type revenueService struct {
	tracked     repository.TrackedProjectRepo
	assignments repository.AssignmentRepo
	projects    repository.ProjectRepo
	people      repository.PersonRepo
	hoursPerDay float64
	observer    UseCaseObserver
}

func NewRevenueService(
	tracked repository.TrackedProjectRepo,
	assignments repository.AssignmentRepo,
	projects repository.ProjectRepo,
	people repository.PersonRepo,
	hoursPerDay float64,
	observers ...UseCaseObserver,
) RevenueService {
	return &revenueService{
		tracked:     tracked,
		assignments: assignments,
		projects:    projects,
		people:      people,
		hoursPerDay: hoursPerDay,
		observer:    useCaseObserverOrNoop(observers),
	}
}

// GetTracking returns an untracked record for projects never tracked.
func (s *revenueService) GetTracking(ctx context.Context, projectID string) (*domain.TrackedProject, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	tp, err := s.tracked.Get(ctx, projectID)
	if errors.Is(err, domain.ErrNotFound) {
		return &domain.TrackedProject{ProjectID: projectID, Status: domain.TrackingUntracked}, nil
	}
	return tp, err
}

func (s *revenueService) Track(ctx context.Context, projectID string, contractValue decimal.Decimal, currency domain.Currency) (err error) {
	fields := map[string]any{"project_id": projectID, "contract_value": contractValue.String(), "currency": string(currency)}
	defer observe(ctx, s.observer, "track-project", fields, &err)()

	return s.transition(ctx, projectID, func(tp *domain.TrackedProject, now time.Time) error {
		return tp.Activate(contractValue, currency, now)
	})
}

func (s *revenueService) Close(ctx context.Context, projectID string) (err error) {
	defer observe(ctx, s.observer, "close-project", map[string]any{"project_id": projectID}, &err)()

	return s.transition(ctx, projectID, func(tp *domain.TrackedProject, now time.Time) error {
		return tp.Close(now)
	})
}

func (s *revenueService) UpdateContractValue(ctx context.Context, projectID string, contractValue decimal.Decimal) (err error) {
	fields := map[string]any{"project_id": projectID, "contract_value": contractValue.String()}
	defer observe(ctx, s.observer, "update-contract-value", fields, &err)()

	return s.transition(ctx, projectID, func(tp *domain.TrackedProject, now time.Time) error {
		return tp.UpdateContractValue(contractValue, now)
	})
}

func (s *revenueService) transition(ctx context.Context, projectID string, fn func(*domain.TrackedProject, time.Time) error) error {
	tp, err := s.GetTracking(ctx, projectID)
	if err != nil {
		return err
	}
	if err := fn(tp, time.Now().UTC()); err != nil {
		return err
	}
	return s.tracked.Upsert(ctx, tp)
}

func (s *revenueService) AddAssignment(ctx context.Context, a *domain.Assignment) (err error) {
	fields := map[string]any{"project_id": a.ProjectID, "person_id": a.PersonID, "hours": a.Hours}
	defer observe(ctx, s.observer, "add-assignment", fields, &err)()

	if err = a.Validate(); err != nil {
		return err
	}
	if _, err = s.projects.GetByID(ctx, a.ProjectID); err != nil {
		return err
	}
	if _, err = s.people.GetByID(ctx, a.PersonID); err != nil {
		return err
	}
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	a.CreatedAt = time.Now().UTC()
	return s.assignments.Create(ctx, a)
}

func (s *revenueService) RemoveAssignment(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "remove-assignment", map[string]any{"assignment_id": id}, &err)()
	return s.assignments.Delete(ctx, id)
}

func (s *revenueService) ListAssignments(ctx context.Context, projectID string) ([]*domain.Assignment, error) {
	if projectID == "" {
		return s.assignments.List(ctx)
	}
	return s.assignments.ListByProject(ctx, projectID)
}

func (s *revenueService) ProjectRevenue(ctx context.Context, projectID string) (revenue.ProjectSummary, error) {
	tp, err := s.GetTracking(ctx, projectID)
	if err != nil {
		return revenue.ProjectSummary{}, err
	}
	as, err := s.assignments.ListByProject(ctx, projectID)
	if err != nil {
		return revenue.ProjectSummary{}, err
	}
	return revenue.ProjectRevenue(*tp, derefAssignments(as)), nil
}

func (s *revenueService) AssociateRevenue(ctx context.Context, personID string) (revenue.AssociateSummary, error) {
	if _, err := s.people.GetByID(ctx, personID); err != nil {
		return revenue.AssociateSummary{}, err
	}
	as, err := s.assignments.ListByPerson(ctx, personID)
	if err != nil {
		return revenue.AssociateSummary{}, err
	}
	tracked, err := s.trackedByProject(ctx)
	if err != nil {
		return revenue.AssociateSummary{}, err
	}
	return revenue.AssociateRevenue(personID, derefAssignments(as), tracked, s.hoursPerDay), nil
}

func (s *revenueService) Portfolio(ctx context.Context) (revenue.Portfolio, error) {
	all, err := s.tracked.List(ctx)
	if err != nil {
		return revenue.Portfolio{}, fmt.Errorf("listing tracked projects: %w", err)
	}
	as, err := s.assignments.List(ctx)
	if err != nil {
		return revenue.Portfolio{}, err
	}
	projects := make([]domain.TrackedProject, 0, len(all))
	for _, tp := range all {
		projects = append(projects, *tp)
	}
	return revenue.PortfolioRevenue(projects, derefAssignments(as)), nil
}

func (s *revenueService) trackedByProject(ctx context.Context) (map[string]domain.TrackedProject, error) {
	all, err := s.tracked.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tracked projects: %w", err)
	}
	out := make(map[string]domain.TrackedProject, len(all))
	for _, tp := range all {
		out[tp.ProjectID] = *tp
	}
	return out, nil
}

func derefAssignments(in []*domain.Assignment) []domain.Assignment {
	out := make([]domain.Assignment, 0, len(in))
	for _, a := range in {
		out = append(out, *a)
	}
	return out
}
