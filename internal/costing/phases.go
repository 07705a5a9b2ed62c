package costing

import (
	"github.com/alexanderramin/pricebook/internal/domain"
	"github.com/shopspring/decimal"
)

// PhaseSubtotal is one row group of the phase-by-associate table. Only
// the legacy hierarchy has phases.
type PhaseSubtotal struct {
	PhaseID         string
	Name            string
	DaysByAssociate map[string]float64
	TotalDays       float64
	Cost            decimal.Decimal // days at marked-up rates
}

// PhaseSubtotals returns one subtotal per phase in phase order.
func PhaseSubtotals(p *domain.ProjectPricing) []PhaseSubtotal {
	if p == nil {
		return nil
	}
	out := make([]PhaseSubtotal, 0, len(p.Phases))
	for _, ph := range p.Phases {
		out = append(out, phaseSubtotal(p, ph))
	}
	return out
}

// PhaseSubtotalFor returns the subtotal of one phase.
func PhaseSubtotalFor(p *domain.ProjectPricing, phaseID string) (PhaseSubtotal, bool) {
	if p == nil {
		return PhaseSubtotal{}, false
	}
	ph := p.FindPhase(phaseID)
	if ph == nil {
		return PhaseSubtotal{}, false
	}
	return phaseSubtotal(p, *ph), true
}

func phaseSubtotal(p *domain.ProjectPricing, ph domain.Phase) PhaseSubtotal {
	st := PhaseSubtotal{
		PhaseID:         ph.ID,
		Name:            ph.Name,
		DaysByAssociate: make(map[string]float64),
	}
	for _, a := range (LegacyPhase{Phase: ph}).Allocations() {
		st.DaysByAssociate[a.PersonID] += a.Days
		st.TotalDays += a.Days
	}
	for personID, days := range st.DaysByAssociate {
		if r, ok := p.RateFor(personID); ok {
			st.Cost = st.Cost.Add(domain.DaysCost(days, r.MarkedUpRate))
		}
	}
	return st
}
