// Package revenue aggregates contract value and staffing cost for tracked
// projects and for the people staffed on them.
package revenue

import (
	"github.com/alexanderramin/pricebook/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultHoursPerDay converts assignment hours into days.
const DefaultHoursPerDay = 8

// ProjectSummary is the revenue view of one tracked project.
type ProjectSummary struct {
	ProjectID       string
	Status          domain.TrackingStatus
	Currency        domain.Currency
	Revenue         decimal.Decimal
	TotalCost       decimal.Decimal
	GrossMargin     decimal.Decimal
	MarginPercent   decimal.Decimal // 0 when there is no revenue
	AssignmentCount int
}

// AssociateSummary is the cost view of one person across tracked projects.
type AssociateSummary struct {
	PersonID      string
	TotalHours    float64
	TotalCost     decimal.Decimal
	ProjectCount  int
	AvgCostPerDay decimal.Decimal
}

// ProjectRevenue summarises tp against the assignments that belong to it.
// Projects that do not count toward revenue report an empty summary.
func ProjectRevenue(tp domain.TrackedProject, assignments []domain.Assignment) ProjectSummary {
	s := ProjectSummary{
		ProjectID: tp.ProjectID,
		Status:    tp.Status,
		Currency:  tp.Currency,
	}
	if s.Status == "" {
		s.Status = domain.TrackingUntracked
	}
	if !tp.CountsTowardRevenue() {
		return s
	}
	s.Revenue = tp.ContractValue
	for i := range assignments {
		if assignments[i].ProjectID != tp.ProjectID {
			continue
		}
		s.TotalCost = s.TotalCost.Add(assignments[i].Cost())
		s.AssignmentCount++
	}
	s.GrossMargin = s.Revenue.Sub(s.TotalCost)
	s.MarginPercent = domain.Percent(s.GrossMargin, s.Revenue)
	return s
}

// AssociateRevenue summarises personID's assignments on projects that count
// toward revenue. tracked is keyed by project id; missing projects are
// treated as untracked.
func AssociateRevenue(personID string, assignments []domain.Assignment, tracked map[string]domain.TrackedProject, hoursPerDay float64) AssociateSummary {
	if hoursPerDay <= 0 {
		hoursPerDay = DefaultHoursPerDay
	}
	s := AssociateSummary{PersonID: personID}
	projects := make(map[string]bool)
	for i := range assignments {
		a := &assignments[i]
		if a.PersonID != personID {
			continue
		}
		tp, ok := tracked[a.ProjectID]
		if !ok || !tp.CountsTowardRevenue() {
			continue
		}
		s.TotalHours += a.Hours
		s.TotalCost = s.TotalCost.Add(a.Cost())
		projects[a.ProjectID] = true
	}
	s.ProjectCount = len(projects)
	if s.TotalHours > 0 {
		days := decimal.NewFromFloat(s.TotalHours).Div(decimal.NewFromFloat(hoursPerDay))
		s.AvgCostPerDay = s.TotalCost.Div(days)
	}
	return s
}

// Portfolio sums every project that counts toward revenue.
type Portfolio struct {
	Projects      []ProjectSummary
	Revenue       decimal.Decimal
	TotalCost     decimal.Decimal
	GrossMargin   decimal.Decimal
	MarginPercent decimal.Decimal
}

// PortfolioRevenue summarises each counted project in the order given.
// Contract values are summed as-is; callers convert to one currency first.
func PortfolioRevenue(projects []domain.TrackedProject, assignments []domain.Assignment) Portfolio {
	var p Portfolio
	for _, tp := range projects {
		if !tp.CountsTowardRevenue() {
			continue
		}
		s := ProjectRevenue(tp, assignments)
		p.Projects = append(p.Projects, s)
		p.Revenue = p.Revenue.Add(s.Revenue)
		p.TotalCost = p.TotalCost.Add(s.TotalCost)
	}
	p.GrossMargin = p.Revenue.Sub(p.TotalCost)
	p.MarginPercent = domain.Percent(p.GrossMargin, p.Revenue)
	return p
}
