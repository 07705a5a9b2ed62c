package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/alexanderramin/pricebook/internal/costing"
	"github.com/alexanderramin/pricebook/internal/domain"
	"github.com/alexanderramin/pricebook/internal/repository"
	"github.com/shopspring/decimal"
)

// PricingOption configures NewPricingService.
type PricingOption func(*pricingService)

// WithPricingRepo persists every committed pricing. Without it the service
// keeps pricings in memory only.
func WithPricingRepo(repo repository.PricingRepo) PricingOption {
	return func(s *pricingService) { s.repo = repo }
}

// WithProjectLookup lets the service check milestone and task ids against
// the project record when one exists.
func WithProjectLookup(projects repository.ProjectRepo) PricingOption {
	return func(s *pricingService) { s.projects = projects }
}

func WithPricingObserver(obs UseCaseObserver) PricingOption {
	return func(s *pricingService) {
		if obs != nil {
			s.observer = obs
		}
	}
}

func WithClock(now func() time.Time) PricingOption {
	return func(s *pricingService) { s.now = now }
}

type pricingService struct {
	mu       sync.Mutex
	pricings map[string]*domain.ProjectPricing
	defaults domain.PricingDefaults

	repo     repository.PricingRepo
	projects repository.ProjectRepo
	observer UseCaseObserver
	now      func() time.Time
}

func NewPricingService(defaults domain.PricingDefaults, opts ...PricingOption) PricingService {
	s := &pricingService{
		pricings: make(map[string]*domain.ProjectPricing),
		defaults: defaults,
		observer: NoopUseCaseObserver{},
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// load returns the current pricing without copying it. Callers hold s.mu.
func (s *pricingService) load(ctx context.Context, projectID string) (*domain.ProjectPricing, error) {
	if p, ok := s.pricings[projectID]; ok {
		return p, nil
	}
	if s.repo == nil {
		return nil, &domain.NotFoundError{Kind: "pricing", ID: projectID}
	}
	p, err := s.repo.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	s.pricings[projectID] = p
	return p, nil
}

// mutate runs fn against a copy of the project's pricing and commits the
// copy when fn and the save both succeed. With create set, a missing
// pricing starts from the service defaults.
func (s *pricingService) mutate(ctx context.Context, useCase, projectID string, create bool, fields map[string]any, fn func(p *domain.ProjectPricing, now time.Time) error) (err error) {
	if fields == nil {
		fields = map[string]any{}
	}
	fields["project_id"] = projectID
	defer observe(ctx, s.observer, useCase, fields, &err)()

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	current, err := s.load(ctx, projectID)
	var next *domain.ProjectPricing
	switch {
	case err == nil:
		next = current.Clone()
	case create && errors.Is(err, domain.ErrNotFound):
		next = domain.NewProjectPricing(projectID, s.defaults, now)
	default:
		return err
	}

	if err = fn(next, now); err != nil {
		return err
	}
	if s.repo != nil {
		if err = s.repo.Save(ctx, next); err != nil {
			return fmt.Errorf("saving pricing: %w", err)
		}
	}
	s.pricings[projectID] = next
	fields["status"] = string(next.Status)
	return nil
}

func (s *pricingService) GetProjectPricing(ctx context.Context, projectID string) (*domain.ProjectPricing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return p.Clone(), nil
}

// ListPricings returns every known pricing ordered by project id.
func (s *pricingService) ListPricings(ctx context.Context) ([]*domain.ProjectPricing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.repo != nil {
		stored, err := s.repo.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, p := range stored {
			if _, ok := s.pricings[p.ProjectID]; !ok {
				s.pricings[p.ProjectID] = p
			}
		}
	}
	out := make([]*domain.ProjectPricing, 0, len(s.pricings))
	for _, p := range s.pricings {
		out = append(out, p.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProjectID < out[j].ProjectID })
	return out, nil
}

func (s *pricingService) DeletePricing(ctx context.Context, projectID string) (err error) {
	defer observe(ctx, s.observer, "delete-pricing", map[string]any{"project_id": projectID}, &err)()

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err = s.load(ctx, projectID); err != nil {
		return err
	}
	if s.repo != nil {
		if err = s.repo.Delete(ctx, projectID); err != nil {
			return err
		}
	}
	delete(s.pricings, projectID)
	return nil
}

func (s *pricingService) Evict(projectID string) {
	s.mu.Lock()
	delete(s.pricings, projectID)
	s.mu.Unlock()
}

func (s *pricingService) UpdateSettings(ctx context.Context, projectID string, settings domain.PricingSettings) error {
	return s.mutate(ctx, "update-pricing-settings", projectID, true, nil, func(p *domain.ProjectPricing, now time.Time) error {
		return p.UpdateSettings(settings, now)
	})
}

func (s *pricingService) SetStatus(ctx context.Context, projectID string, status domain.PricingStatus) error {
	fields := map[string]any{"requested": string(status)}
	return s.mutate(ctx, "set-pricing-status", projectID, false, fields, func(p *domain.ProjectPricing, now time.Time) error {
		return p.SetStatus(status, now)
	})
}

func (s *pricingService) AddPhase(ctx context.Context, projectID, name string) (domain.Phase, error) {
	var added domain.Phase
	err := s.mutate(ctx, "add-phase", projectID, true, nil, func(p *domain.ProjectPricing, now time.Time) error {
		added = p.AddPhase(name, now)
		return nil
	})
	return added, err
}

func (s *pricingService) RenamePhase(ctx context.Context, projectID, phaseID, name string) error {
	return s.mutate(ctx, "rename-phase", projectID, false, map[string]any{"phase_id": phaseID}, func(p *domain.ProjectPricing, now time.Time) error {
		return p.RenamePhase(phaseID, name, now)
	})
}

func (s *pricingService) DeletePhase(ctx context.Context, projectID, phaseID string) error {
	return s.mutate(ctx, "delete-phase", projectID, false, map[string]any{"phase_id": phaseID}, func(p *domain.ProjectPricing, now time.Time) error {
		return p.DeletePhase(phaseID, now)
	})
}

func (s *pricingService) AddWorkstream(ctx context.Context, projectID, phaseID string) (domain.Workstream, error) {
	var added domain.Workstream
	err := s.mutate(ctx, "add-workstream", projectID, false, map[string]any{"phase_id": phaseID}, func(p *domain.ProjectPricing, now time.Time) error {
		var err error
		added, err = p.AddWorkstream(phaseID, now)
		return err
	})
	return added, err
}

func (s *pricingService) RenameWorkstream(ctx context.Context, projectID, phaseID, workstreamID, name string) error {
	return s.mutate(ctx, "rename-workstream", projectID, false, nil, func(p *domain.ProjectPricing, now time.Time) error {
		return p.RenameWorkstream(phaseID, workstreamID, name, now)
	})
}

func (s *pricingService) DeleteWorkstream(ctx context.Context, projectID, phaseID, workstreamID string) error {
	fields := map[string]any{"phase_id": phaseID, "workstream_id": workstreamID}
	return s.mutate(ctx, "delete-workstream", projectID, false, fields, func(p *domain.ProjectPricing, now time.Time) error {
		return p.DeleteWorkstream(phaseID, workstreamID, now)
	})
}

func (s *pricingService) AddLineItem(ctx context.Context, projectID, phaseID, workstreamID string) (domain.LineItem, error) {
	var added domain.LineItem
	err := s.mutate(ctx, "add-line-item", projectID, false, nil, func(p *domain.ProjectPricing, now time.Time) error {
		var err error
		added, err = p.AddLineItem(phaseID, workstreamID, now)
		return err
	})
	return added, err
}

func (s *pricingService) UpdateLineItem(ctx context.Context, projectID string, ref LineItemRef, u domain.LineItemUpdate) error {
	return s.mutate(ctx, "update-line-item", projectID, false, ref.fields(), func(p *domain.ProjectPricing, now time.Time) error {
		return p.UpdateLineItem(ref.PhaseID, ref.WorkstreamID, ref.LineItemID, u, now)
	})
}

func (s *pricingService) DeleteLineItem(ctx context.Context, projectID string, ref LineItemRef) error {
	return s.mutate(ctx, "delete-line-item", projectID, false, ref.fields(), func(p *domain.ProjectPricing, now time.Time) error {
		return p.DeleteLineItem(ref.PhaseID, ref.WorkstreamID, ref.LineItemID, now)
	})
}

func (s *pricingService) AddAssigneeToLineItem(ctx context.Context, projectID string, ref LineItemRef, personID string) error {
	fields := ref.fields()
	fields["person_id"] = personID
	return s.mutate(ctx, "add-line-item-assignee", projectID, false, fields, func(p *domain.ProjectPricing, now time.Time) error {
		return p.AddAssigneeToLineItem(ref.PhaseID, ref.WorkstreamID, ref.LineItemID, personID, now)
	})
}

func (s *pricingService) UpdateAssigneeDays(ctx context.Context, projectID string, ref LineItemRef, personID string, days float64) error {
	fields := ref.fields()
	fields["person_id"] = personID
	fields["days"] = days
	return s.mutate(ctx, "update-assignee-days", projectID, false, fields, func(p *domain.ProjectPricing, now time.Time) error {
		return p.UpdateAssigneeDays(ref.PhaseID, ref.WorkstreamID, ref.LineItemID, personID, days, now)
	})
}

func (s *pricingService) UpdateAssigneeTimeUnit(ctx context.Context, projectID string, ref LineItemRef, personID string, u domain.TimeUnitUpdate) error {
	fields := ref.fields()
	fields["person_id"] = personID
	return s.mutate(ctx, "update-assignee-time-unit", projectID, false, fields, func(p *domain.ProjectPricing, now time.Time) error {
		return p.UpdateAssigneeTimeUnit(ref.PhaseID, ref.WorkstreamID, ref.LineItemID, personID, u, now)
	})
}

func (s *pricingService) RemoveAssigneeFromLineItem(ctx context.Context, projectID string, ref LineItemRef, personID string) error {
	fields := ref.fields()
	fields["person_id"] = personID
	return s.mutate(ctx, "remove-line-item-assignee", projectID, false, fields, func(p *domain.ProjectPricing, now time.Time) error {
		return p.RemoveAssigneeFromLineItem(ref.PhaseID, ref.WorkstreamID, ref.LineItemID, personID, now)
	})
}

func (s *pricingService) AddTaskAssignee(ctx context.Context, projectID, milestoneID, taskID, personID string) error {
	if err := s.checkTask(ctx, projectID, milestoneID, taskID); err != nil {
		return err
	}
	fields := map[string]any{"milestone_id": milestoneID, "task_id": taskID, "person_id": personID}
	return s.mutate(ctx, "add-task-assignee", projectID, true, fields, func(p *domain.ProjectPricing, now time.Time) error {
		return p.AddTaskAssignee(milestoneID, taskID, personID, now)
	})
}

func (s *pricingService) UpdateTaskAssignee(ctx context.Context, projectID, milestoneID, taskID, personID string, u domain.TaskAssigneeUpdate) error {
	fields := map[string]any{"milestone_id": milestoneID, "task_id": taskID, "person_id": personID}
	return s.mutate(ctx, "update-task-assignee", projectID, false, fields, func(p *domain.ProjectPricing, now time.Time) error {
		return p.UpdateTaskAssignee(milestoneID, taskID, personID, u, now)
	})
}

func (s *pricingService) UpdateTaskSettings(ctx context.Context, projectID, milestoneID, taskID string, u domain.TaskSettingsUpdate) error {
	fields := map[string]any{"milestone_id": milestoneID, "task_id": taskID}
	return s.mutate(ctx, "update-task-settings", projectID, false, fields, func(p *domain.ProjectPricing, now time.Time) error {
		return p.UpdateTaskSettings(milestoneID, taskID, u, now)
	})
}

func (s *pricingService) RemoveTaskAssignee(ctx context.Context, projectID, milestoneID, taskID, personID string) error {
	fields := map[string]any{"milestone_id": milestoneID, "task_id": taskID, "person_id": personID}
	return s.mutate(ctx, "remove-task-assignee", projectID, false, fields, func(p *domain.ProjectPricing, now time.Time) error {
		return p.RemoveTaskAssignee(milestoneID, taskID, personID, now)
	})
}

func (s *pricingService) RemoveTaskPricing(ctx context.Context, projectID, milestoneID, taskID string) error {
	fields := map[string]any{"milestone_id": milestoneID, "task_id": taskID}
	return s.mutate(ctx, "remove-task-pricing", projectID, false, fields, func(p *domain.ProjectPricing, now time.Time) error {
		return p.RemoveTaskPricing(milestoneID, taskID, now)
	})
}

func (s *pricingService) RemoveMilestonePricing(ctx context.Context, projectID, milestoneID string) error {
	return s.mutate(ctx, "remove-milestone-pricing", projectID, false, map[string]any{"milestone_id": milestoneID}, func(p *domain.ProjectPricing, now time.Time) error {
		return p.RemoveMilestonePricing(milestoneID, now)
	})
}

func (s *pricingService) SetAssociateRate(ctx context.Context, projectID, personID string, baseRate decimal.Decimal) error {
	fields := map[string]any{"person_id": personID, "base_rate": baseRate.String()}
	return s.mutate(ctx, "set-associate-rate", projectID, true, fields, func(p *domain.ProjectPricing, now time.Time) error {
		p.SetAssociateRate(personID, baseRate, now)
		return nil
	})
}

func (s *pricingService) SetAssociateMarkedUpRate(ctx context.Context, projectID, personID string, markedUpRate decimal.Decimal) error {
	fields := map[string]any{"person_id": personID, "marked_up_rate": markedUpRate.String()}
	return s.mutate(ctx, "set-associate-marked-up-rate", projectID, true, fields, func(p *domain.ProjectPricing, now time.Time) error {
		p.SetAssociateMarkedUpRate(personID, markedUpRate, now)
		return nil
	})
}

func (s *pricingService) SetExpense(ctx context.Context, projectID string, e domain.ExpenseItem) error {
	return s.mutate(ctx, "set-expense", projectID, true, map[string]any{"person_id": e.PersonID}, func(p *domain.ProjectPricing, now time.Time) error {
		p.SetExpense(e, now)
		return nil
	})
}

func (s *pricingService) RemoveExpense(ctx context.Context, projectID, personID string) error {
	return s.mutate(ctx, "remove-expense", projectID, false, map[string]any{"person_id": personID}, func(p *domain.ProjectPricing, now time.Time) error {
		return p.RemoveExpense(personID, now)
	})
}

func (s *pricingService) Totals(ctx context.Context, projectID string) (costing.Totals, error) {
	p, err := s.GetProjectPricing(ctx, projectID)
	if err != nil {
		return costing.Totals{}, err
	}
	return costing.ProjectTotals(p), nil
}

func (s *pricingService) AssociateBreakdown(ctx context.Context, projectID string) ([]costing.AssociateLine, error) {
	p, err := s.GetProjectPricing(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return costing.AssociateBreakdown(p), nil
}

func (s *pricingService) PhaseSubtotals(ctx context.Context, projectID string) ([]costing.PhaseSubtotal, error) {
	p, err := s.GetProjectPricing(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return costing.PhaseSubtotals(p), nil
}

func (s *pricingService) AssociateTotalDays(ctx context.Context, projectID, personID string) (float64, error) {
	p, err := s.GetProjectPricing(ctx, projectID)
	if err != nil {
		return 0, err
	}
	return costing.AssociateTotalDays(p, personID), nil
}

// checkTask rejects milestone and task ids the project record does not
// know. Projects without a record are not checked.
func (s *pricingService) checkTask(ctx context.Context, projectID, milestoneID, taskID string) error {
	if s.projects == nil {
		return nil
	}
	project, err := s.projects.GetByID(ctx, projectID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading project: %w", err)
	}
	if project.FindMilestone(milestoneID) == nil {
		return &domain.NotFoundError{Kind: "milestone", ID: milestoneID}
	}
	if !project.HasTask(milestoneID, taskID) {
		return &domain.NotFoundError{Kind: "task", ID: taskID}
	}
	return nil
}

func (r LineItemRef) fields() map[string]any {
	return map[string]any{
		"phase_id":      r.PhaseID,
		"workstream_id": r.WorkstreamID,
		"line_item_id":  r.LineItemID,
	}
}
