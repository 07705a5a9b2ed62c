package service

import (
	"context"

	"github.com/alexanderramin/pricebook/internal/costing"
	"github.com/alexanderramin/pricebook/internal/domain"
	"github.com/alexanderramin/pricebook/internal/revenue"
	"github.com/shopspring/decimal"
)

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByShortID(ctx context.Context, shortID string) (*domain.Project, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Project, error)
	Archive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string, force bool) error
	AddMilestone(ctx context.Context, projectID, title string) (*domain.Milestone, error)
	AddTask(ctx context.Context, projectID, milestoneID, title string) (*domain.Task, error)
}

type PersonService interface {
	Create(ctx context.Context, name, title string) (*domain.Person, error)
	GetByID(ctx context.Context, id string) (*domain.Person, error)
	List(ctx context.Context) ([]*domain.Person, error)
	Delete(ctx context.Context, id string) error
}

// PricingService is the mutation and query surface of project pricings.
// Every mutation applies to a copy of the project's pricing and replaces
// the stored pricing only when the whole mutation succeeds. Queries return
// copies the caller may modify freely.
type PricingService interface {
	GetProjectPricing(ctx context.Context, projectID string) (*domain.ProjectPricing, error)
	ListPricings(ctx context.Context) ([]*domain.ProjectPricing, error)
	DeletePricing(ctx context.Context, projectID string) error
	// Evict drops any cached copy so the next access reloads it.
	Evict(projectID string)

	UpdateSettings(ctx context.Context, projectID string, s domain.PricingSettings) error
	SetStatus(ctx context.Context, projectID string, status domain.PricingStatus) error

	AddPhase(ctx context.Context, projectID, name string) (domain.Phase, error)
	RenamePhase(ctx context.Context, projectID, phaseID, name string) error
	DeletePhase(ctx context.Context, projectID, phaseID string) error
	AddWorkstream(ctx context.Context, projectID, phaseID string) (domain.Workstream, error)
	RenameWorkstream(ctx context.Context, projectID, phaseID, workstreamID, name string) error
	DeleteWorkstream(ctx context.Context, projectID, phaseID, workstreamID string) error
	AddLineItem(ctx context.Context, projectID, phaseID, workstreamID string) (domain.LineItem, error)
	UpdateLineItem(ctx context.Context, projectID string, ref LineItemRef, u domain.LineItemUpdate) error
	DeleteLineItem(ctx context.Context, projectID string, ref LineItemRef) error
	AddAssigneeToLineItem(ctx context.Context, projectID string, ref LineItemRef, personID string) error
	UpdateAssigneeDays(ctx context.Context, projectID string, ref LineItemRef, personID string, days float64) error
	UpdateAssigneeTimeUnit(ctx context.Context, projectID string, ref LineItemRef, personID string, u domain.TimeUnitUpdate) error
	RemoveAssigneeFromLineItem(ctx context.Context, projectID string, ref LineItemRef, personID string) error

	AddTaskAssignee(ctx context.Context, projectID, milestoneID, taskID, personID string) error
	UpdateTaskAssignee(ctx context.Context, projectID, milestoneID, taskID, personID string, u domain.TaskAssigneeUpdate) error
	UpdateTaskSettings(ctx context.Context, projectID, milestoneID, taskID string, u domain.TaskSettingsUpdate) error
	RemoveTaskAssignee(ctx context.Context, projectID, milestoneID, taskID, personID string) error
	RemoveTaskPricing(ctx context.Context, projectID, milestoneID, taskID string) error
	RemoveMilestonePricing(ctx context.Context, projectID, milestoneID string) error

	SetAssociateRate(ctx context.Context, projectID, personID string, baseRate decimal.Decimal) error
	SetAssociateMarkedUpRate(ctx context.Context, projectID, personID string, markedUpRate decimal.Decimal) error
	SetExpense(ctx context.Context, projectID string, e domain.ExpenseItem) error
	RemoveExpense(ctx context.Context, projectID, personID string) error

	Totals(ctx context.Context, projectID string) (costing.Totals, error)
	AssociateBreakdown(ctx context.Context, projectID string) ([]costing.AssociateLine, error)
	PhaseSubtotals(ctx context.Context, projectID string) ([]costing.PhaseSubtotal, error)
	AssociateTotalDays(ctx context.Context, projectID, personID string) (float64, error)
}

// LineItemRef addresses one line item inside a pricing.
type LineItemRef struct {
	PhaseID      string
	WorkstreamID string
	LineItemID   string
}

type RevenueService interface {
	GetTracking(ctx context.Context, projectID string) (*domain.TrackedProject, error)
	Track(ctx context.Context, projectID string, contractValue decimal.Decimal, currency domain.Currency) error
	Close(ctx context.Context, projectID string) error
	UpdateContractValue(ctx context.Context, projectID string, contractValue decimal.Decimal) error

	AddAssignment(ctx context.Context, a *domain.Assignment) error
	RemoveAssignment(ctx context.Context, id string) error
	// ListAssignments lists every assignment when projectID is empty.
	ListAssignments(ctx context.Context, projectID string) ([]*domain.Assignment, error)

	ProjectRevenue(ctx context.Context, projectID string) (revenue.ProjectSummary, error)
	AssociateRevenue(ctx context.Context, personID string) (revenue.AssociateSummary, error)
	Portfolio(ctx context.Context) (revenue.Portfolio, error)
}
