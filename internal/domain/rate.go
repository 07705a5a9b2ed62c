package domain

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// AssociateRate is a person's day rate on one project. MarkedUpRate follows
// BaseRate and the project markup until it is overridden directly; the
// override holds until the base rate or markup is written again.
type AssociateRate struct {
	PersonID     string          `json:"personId"`
	BaseRate     decimal.Decimal `json:"baseRate"`
	MarkedUpRate decimal.Decimal `json:"markedUpRate"`
}

// ExpenseItem holds one person's travel and subsistence parameters. Nil
// per-day amounts fall back to the project defaults.
type ExpenseItem struct {
	PersonID            string           `json:"personId"`
	NumberOfFlights     int              `json:"numberOfFlights"`
	AvgFlightCost       decimal.Decimal  `json:"avgFlightCost"`
	DaysOnsite          float64          `json:"daysOnsite"`
	AccommodationPerDay *decimal.Decimal `json:"accommodationPerDay,omitempty"`
	PerDiemPerDay       *decimal.Decimal `json:"perDiemPerDay,omitempty"`
	Buffer              decimal.Decimal  `json:"buffer"`
}

func (e ExpenseItem) clone() ExpenseItem {
	e.AccommodationPerDay = clonePtr(e.AccommodationPerDay)
	e.PerDiemPerDay = clonePtr(e.PerDiemPerDay)
	return e
}

// ExpenseCost returns flights*avgFlightCost + daysOnsite*accommodation +
// daysOnsite*perDiem + buffer.
func ExpenseCost(e ExpenseItem, defaultAccommodation, defaultPerDiem decimal.Decimal) decimal.Decimal {
	flights := decimal.NewFromInt(int64(e.NumberOfFlights)).Mul(e.AvgFlightCost)
	accommodation := DaysCost(e.DaysOnsite, DecimalFromPtrWithDefault(defaultAccommodation, e.AccommodationPerDay))
	perDiem := DaysCost(e.DaysOnsite, DecimalFromPtrWithDefault(defaultPerDiem, e.PerDiemPerDay))
	return flights.Add(accommodation).Add(perDiem).Add(e.Buffer)
}

// ExpenseCost prices e against this project's defaults.
func (p *ProjectPricing) ExpenseCost(e ExpenseItem) decimal.Decimal {
	return ExpenseCost(e, p.DefaultAccommodation, p.DefaultPerDiem)
}

// SetAssociateRate upserts the base rate and derives the marked-up rate
// from the current project markup.
func (p *ProjectPricing) SetAssociateRate(personID string, baseRate decimal.Decimal, now time.Time) {
	r := p.ensureRate(personID)
	r.BaseRate = baseRate
	r.MarkedUpRate = MarkedUpRate(baseRate, p.MarkupPercentage)
	p.touch(now)
}

// SetAssociateMarkedUpRate overrides the marked-up rate, leaving the base
// rate alone.
func (p *ProjectPricing) SetAssociateMarkedUpRate(personID string, markedUpRate decimal.Decimal, now time.Time) {
	r := p.ensureRate(personID)
	r.MarkedUpRate = markedUpRate
	p.touch(now)
}

// RateFor returns the person's rate record, if any.
func (p *ProjectPricing) RateFor(personID string) (AssociateRate, bool) {
	for _, r := range p.AssociateRates {
		if r.PersonID == personID {
			return r, true
		}
	}
	return AssociateRate{}, false
}

func (p *ProjectPricing) ensureRate(personID string) *AssociateRate {
	for i := range p.AssociateRates {
		if p.AssociateRates[i].PersonID == personID {
			return &p.AssociateRates[i]
		}
	}
	p.AssociateRates = append(p.AssociateRates, AssociateRate{PersonID: personID})
	return &p.AssociateRates[len(p.AssociateRates)-1]
}

func (p *ProjectPricing) recomputeMarkedUpRates() {
	for i := range p.AssociateRates {
		p.AssociateRates[i].MarkedUpRate = MarkedUpRate(p.AssociateRates[i].BaseRate, p.MarkupPercentage)
	}
}

// SetExpense upserts the expense item keyed by e.PersonID.
func (p *ProjectPricing) SetExpense(e ExpenseItem, now time.Time) {
	e = e.clone()
	i := slices.IndexFunc(p.Expenses, func(x ExpenseItem) bool { return x.PersonID == e.PersonID })
	if i < 0 {
		p.Expenses = append(p.Expenses, e)
	} else {
		p.Expenses[i] = e
	}
	p.touch(now)
}

func (p *ProjectPricing) RemoveExpense(personID string, now time.Time) error {
	i := slices.IndexFunc(p.Expenses, func(x ExpenseItem) bool { return x.PersonID == personID })
	if i < 0 {
		return notFound("expense", personID)
	}
	p.Expenses = slices.Delete(p.Expenses, i, i+1)
	p.touch(now)
	return nil
}

// ExpenseFor returns the person's expense item, if any.
func (p *ProjectPricing) ExpenseFor(personID string) (ExpenseItem, bool) {
	for _, e := range p.Expenses {
		if e.PersonID == personID {
			return e.clone(), true
		}
	}
	return ExpenseItem{}, false
}
