package importer

import (
	"encoding/json"

	"github.com/alexanderramin/pricebook/internal/domain"
)

// Export builds a sheet from a pricing so it can be applied to another
// project. names maps person ids to display names; unknown ids are kept
// as-is. Milestone pricing refers to one project's tasks and is left out.
func Export(p *domain.ProjectPricing, names map[string]string) *Sheet {
	person := func(id string) string {
		if n, ok := names[id]; ok && n != "" {
			return n
		}
		return id
	}

	markup := p.MarkupPercentage
	withholding := p.WithholdingTaxPercentage
	accommodation := p.DefaultAccommodation
	perDiem := p.DefaultPerDiem
	s := &Sheet{
		Settings: &SettingsImport{
			Currency:             string(p.Currency),
			MarkupPercentage:     &markup,
			WithholdingTax:       &withholding,
			DefaultAccommodation: &accommodation,
			DefaultPerDiem:       &perDiem,
		},
		Phases: make([]PhaseImport, 0, len(p.Phases)),
	}

	for _, ph := range p.Phases {
		out := PhaseImport{Name: ph.Name}
		for _, ws := range ph.Workstreams {
			wsOut := WorkstreamImport{Name: ws.Name}
			for _, li := range ws.LineItems {
				wsOut.LineItems = append(wsOut.LineItems, exportLineItem(li, person))
			}
			out.Workstreams = append(out.Workstreams, wsOut)
		}
		s.Phases = append(s.Phases, out)
	}

	for _, r := range p.AssociateRates {
		base, marked := r.BaseRate, r.MarkedUpRate
		s.Rates = append(s.Rates, RateImport{Person: person(r.PersonID), BaseRate: &base, MarkedUpRate: &marked})
	}
	for _, e := range p.Expenses {
		s.Expenses = append(s.Expenses, ExpenseImport{
			Person:              person(e.PersonID),
			NumberOfFlights:     e.NumberOfFlights,
			AvgFlightCost:       e.AvgFlightCost,
			DaysOnsite:          e.DaysOnsite,
			AccommodationPerDay: e.AccommodationPerDay,
			PerDiemPerDay:       e.PerDiemPerDay,
			Buffer:              e.Buffer,
		})
	}
	return s
}

func exportLineItem(li domain.LineItem, person func(string) string) LineItemImport {
	out := LineItemImport{Description: li.Description}
	if li.StartDate != nil {
		d := li.StartDate.Format(dateLayout)
		out.StartDate = &d
	}
	if li.EndDate != nil {
		d := li.EndDate.Format(dateLayout)
		out.EndDate = &d
	}
	for _, a := range li.Assignees {
		ai := AssigneeImport{Person: person(a.PersonID)}
		if a.TimeUnit.IsDerived() {
			ai.TimeUnit = string(a.TimeUnit)
			ai.DaysPerPeriod = a.DaysPerPeriod
			ai.NumberOfPeriods = a.NumberOfPeriods
		} else {
			days := a.Days
			ai.Days = &days
		}
		out.Assignees = append(out.Assignees, ai)
	}
	return out
}

// Encode renders the sheet as indented JSON.
func (s *Sheet) Encode() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
