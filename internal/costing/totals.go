package costing

import (
	"github.com/alexanderramin/pricebook/internal/domain"
	"github.com/shopspring/decimal"
)

// Totals are the project-level figures. Monetary values are in Currency.
type Totals struct {
	Currency        domain.Currency
	TotalDays       float64
	BaseCost        decimal.Decimal // days at base rates
	TotalManDayCost decimal.Decimal // days at marked-up rates
	GrossMargin     decimal.Decimal // TotalManDayCost - BaseCost
	MarginPercent   decimal.Decimal // GrossMargin / TotalManDayCost * 100, 0 when no cost
	TotalExpenses   decimal.Decimal
	Total           decimal.Decimal
	NetTotal        decimal.Decimal // Total net of withholding tax
}

// AssociateLine is one person's share of the project.
type AssociateLine struct {
	PersonID     string
	Days         float64
	BaseRate     decimal.Decimal
	MarkedUpRate decimal.Decimal
	ManDayCost   decimal.Decimal
	ExpenseCost  decimal.Decimal
	Total        decimal.Decimal
}

// AssignedAssociates returns every person appearing in either hierarchy,
// each once. Callers must not rely on the order.
func AssignedAssociates(p *domain.ProjectPricing) []string {
	seen := make(map[string]bool)
	var out []string
	for _, src := range Sources(p) {
		for _, a := range src.Allocations() {
			if !seen[a.PersonID] {
				seen[a.PersonID] = true
				out = append(out, a.PersonID)
			}
		}
	}
	return out
}

// AssociateTotalDays sums personID's days over every line item and every
// task. Work recorded in both hierarchies is counted twice.
func AssociateTotalDays(p *domain.ProjectPricing, personID string) float64 {
	var total float64
	for _, src := range Sources(p) {
		for _, a := range src.Allocations() {
			if a.PersonID == personID {
				total += a.Days
			}
		}
	}
	return total
}

// DaysByAssociate sums days per person across both hierarchies.
func DaysByAssociate(p *domain.ProjectPricing) map[string]float64 {
	out := make(map[string]float64)
	for _, src := range Sources(p) {
		for _, a := range src.Allocations() {
			out[a.PersonID] += a.Days
		}
	}
	return out
}

// ProjectTotals computes the project-level figures from scratch.
func ProjectTotals(p *domain.ProjectPricing) Totals {
	var t Totals
	if p == nil {
		return t
	}
	t.Currency = p.Currency

	days := DaysByAssociate(p)
	for _, personID := range AssignedAssociates(p) {
		d := days[personID]
		t.TotalDays += d
		if r, ok := p.RateFor(personID); ok {
			t.BaseCost = t.BaseCost.Add(domain.DaysCost(d, r.BaseRate))
			t.TotalManDayCost = t.TotalManDayCost.Add(domain.DaysCost(d, r.MarkedUpRate))
		}
	}
	for _, e := range p.Expenses {
		t.TotalExpenses = t.TotalExpenses.Add(p.ExpenseCost(e))
	}

	t.GrossMargin = t.TotalManDayCost.Sub(t.BaseCost)
	t.MarginPercent = domain.Percent(t.GrossMargin, t.TotalManDayCost)
	t.Total = t.TotalManDayCost.Add(t.TotalExpenses)
	t.NetTotal = domain.NetOfWithholding(t.Total, p.WithholdingTaxPercentage)
	return t
}

// AssociateBreakdown returns one line per assigned person, followed by
// people who only carry expenses.
func AssociateBreakdown(p *domain.ProjectPricing) []AssociateLine {
	if p == nil {
		return nil
	}
	days := DaysByAssociate(p)
	people := AssignedAssociates(p)
	for _, e := range p.Expenses {
		if _, ok := days[e.PersonID]; !ok {
			people = append(people, e.PersonID)
			days[e.PersonID] = 0
		}
	}

	out := make([]AssociateLine, 0, len(people))
	for _, personID := range people {
		line := AssociateLine{PersonID: personID, Days: days[personID]}
		if r, ok := p.RateFor(personID); ok {
			line.BaseRate = r.BaseRate
			line.MarkedUpRate = r.MarkedUpRate
			line.ManDayCost = domain.DaysCost(line.Days, r.MarkedUpRate)
		}
		if e, ok := p.ExpenseFor(personID); ok {
			line.ExpenseCost = p.ExpenseCost(e)
		}
		line.Total = line.ManDayCost.Add(line.ExpenseCost)
		out = append(out, line)
	}
	return out
}
