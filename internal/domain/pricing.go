package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PricingDefaults seeds a newly created ProjectPricing.
type PricingDefaults struct {
	Currency             Currency
	DefaultAccommodation decimal.Decimal
	DefaultPerDiem       decimal.Decimal
}

func DefaultPricingDefaults() PricingDefaults {
	return PricingDefaults{
		Currency:             CurrencyUSD,
		DefaultAccommodation: decimal.NewFromInt(275),
		DefaultPerDiem:       decimal.NewFromInt(80),
	}
}

// ProjectPricing is the pricing aggregate of one project. Every amount is
// denominated in Currency.
type ProjectPricing struct {
	ProjectID                string             `json:"projectId"`
	Status                   PricingStatus      `json:"status"`
	Currency                 Currency           `json:"currency"`
	MarkupPercentage         decimal.Decimal    `json:"markupPercentage"`
	WithholdingTaxPercentage decimal.Decimal    `json:"withholdingTaxPercentage"`
	DefaultAccommodation     decimal.Decimal    `json:"defaultAccommodation"`
	DefaultPerDiem           decimal.Decimal    `json:"defaultPerDiem"`
	Phases                   []Phase            `json:"phases"`
	MilestonePricing         []MilestonePricing `json:"milestonePricing"`
	AssociateRates           []AssociateRate    `json:"associateRates"`
	Expenses                 []ExpenseItem      `json:"expenses"`
	CreatedAt                time.Time          `json:"createdAt"`
	UpdatedAt                time.Time          `json:"updatedAt"`
}

func NewProjectPricing(projectID string, d PricingDefaults, now time.Time) *ProjectPricing {
	cur := d.Currency
	if !cur.Valid() {
		cur = CurrencyUSD
	}
	return &ProjectPricing{
		ProjectID:            projectID,
		Status:               PricingNotPriced,
		Currency:             cur,
		DefaultAccommodation: d.DefaultAccommodation,
		DefaultPerDiem:       d.DefaultPerDiem,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

// PricingSettings is a partial update; nil fields are left untouched.
type PricingSettings struct {
	Currency                 *Currency
	MarkupPercentage         *decimal.Decimal
	WithholdingTaxPercentage *decimal.Decimal
	DefaultAccommodation     *decimal.Decimal
	DefaultPerDiem           *decimal.Decimal
}

// UpdateSettings merges s. A supplied markup recomputes every associate's
// marked-up rate from its base rate, discarding direct overrides.
func (p *ProjectPricing) UpdateSettings(s PricingSettings, now time.Time) error {
	if s.Currency != nil && !s.Currency.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCurrency, *s.Currency)
	}
	if s.Currency != nil {
		p.Currency = *s.Currency
	}
	if s.WithholdingTaxPercentage != nil {
		p.WithholdingTaxPercentage = *s.WithholdingTaxPercentage
	}
	if s.DefaultAccommodation != nil {
		p.DefaultAccommodation = *s.DefaultAccommodation
	}
	if s.DefaultPerDiem != nil {
		p.DefaultPerDiem = *s.DefaultPerDiem
	}
	if s.MarkupPercentage != nil {
		p.MarkupPercentage = *s.MarkupPercentage
		p.recomputeMarkedUpRates()
	}
	p.touch(now)
	return nil
}

// SetStatus applies an explicit status change. Only priced and
// in-progress can be requested; not-priced follows from the breakdown.
func (p *ProjectPricing) SetStatus(s PricingStatus, now time.Time) error {
	switch s {
	case PricingPriced:
		if len(p.Phases) == 0 {
			return ErrNotPriceable
		}
	case PricingInProgress:
		if !p.HasWorkBreakdown() {
			return ErrInvalidTransition
		}
	default:
		return ErrInvalidTransition
	}
	p.Status = s
	p.touch(now)
	return nil
}

// HasWorkBreakdown reports whether either hierarchy holds any work: a
// phase, or a task with at least one assignee.
func (p *ProjectPricing) HasWorkBreakdown() bool {
	if len(p.Phases) > 0 {
		return true
	}
	for _, m := range p.MilestonePricing {
		for _, t := range m.Tasks {
			if len(t.Assignees) > 0 {
				return true
			}
		}
	}
	return false
}

func (p *ProjectPricing) markInProgress() {
	p.Status = PricingInProgress
}

// refreshStatus resets the status once the breakdown has been emptied and
// demotes priced once no phase is left to price.
func (p *ProjectPricing) refreshStatus() {
	switch {
	case !p.HasWorkBreakdown():
		p.Status = PricingNotPriced
	case len(p.Phases) == 0 && p.Status == PricingPriced:
		p.Status = PricingInProgress
	}
}

func (p *ProjectPricing) touch(now time.Time) {
	p.UpdatedAt = now
}

// Clone returns a deep copy; mutations on the copy never reach p.
func (p *ProjectPricing) Clone() *ProjectPricing {
	if p == nil {
		return nil
	}
	c := *p
	c.Phases = cloneEach(p.Phases, Phase.clone)
	c.MilestonePricing = cloneEach(p.MilestonePricing, MilestonePricing.clone)
	c.AssociateRates = cloneEach(p.AssociateRates, func(r AssociateRate) AssociateRate { return r })
	c.Expenses = cloneEach(p.Expenses, ExpenseItem.clone)
	return &c
}

// cloneEach copies src element-wise, keeping nil and empty slices distinct.
func cloneEach[T any](src []T, clone func(T) T) []T {
	if src == nil {
		return nil
	}
	out := make([]T, len(src))
	for i, v := range src {
		out[i] = clone(v)
	}
	return out
}
