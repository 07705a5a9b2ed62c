package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/pricebook/internal/domain"
	"github.com/alexanderramin/pricebook/internal/service"
	"github.com/shopspring/decimal"
)

// PricingWriter is the part of the pricing service a sheet is applied through.
type PricingWriter interface {
	UpdateSettings(ctx context.Context, projectID string, settings domain.PricingSettings) error
	AddPhase(ctx context.Context, projectID, name string) (domain.Phase, error)
	AddWorkstream(ctx context.Context, projectID, phaseID string) (domain.Workstream, error)
	RenameWorkstream(ctx context.Context, projectID, phaseID, workstreamID, name string) error
	AddLineItem(ctx context.Context, projectID, phaseID, workstreamID string) (domain.LineItem, error)
	UpdateLineItem(ctx context.Context, projectID string, ref service.LineItemRef, u domain.LineItemUpdate) error
	AddAssigneeToLineItem(ctx context.Context, projectID string, ref service.LineItemRef, personID string) error
	UpdateAssigneeDays(ctx context.Context, projectID string, ref service.LineItemRef, personID string, days float64) error
	UpdateAssigneeTimeUnit(ctx context.Context, projectID string, ref service.LineItemRef, personID string, u domain.TimeUnitUpdate) error
	SetAssociateRate(ctx context.Context, projectID, personID string, baseRate decimal.Decimal) error
	SetAssociateMarkedUpRate(ctx context.Context, projectID, personID string, markedUpRate decimal.Decimal) error
	SetExpense(ctx context.Context, projectID string, e domain.ExpenseItem) error
}

// PeopleIndex maps lowercased names and ids to person ids.
func PeopleIndex(people []*domain.Person) map[string]string {
	idx := make(map[string]string, 2*len(people))
	for _, p := range people {
		idx[strings.ToLower(p.Name)] = p.ID
		idx[strings.ToLower(p.ID)] = p.ID
	}
	return idx
}

// Apply writes a validated sheet into the project's pricing: settings
// first so the markup applies to imported rates, then the breakdown, rates
// and expenses. Every person is resolved before the first write.
func Apply(ctx context.Context, w PricingWriter, projectID string, s *Sheet, people map[string]string) error {
	lookup, err := resolvePeople(s, people)
	if err != nil {
		return err
	}

	if s.Settings != nil {
		if err := w.UpdateSettings(ctx, projectID, toSettings(s.Settings)); err != nil {
			return fmt.Errorf("applying settings: %w", err)
		}
	}
	for _, ph := range s.Phases {
		if err := applyPhase(ctx, w, projectID, ph, lookup); err != nil {
			return fmt.Errorf("phase %q: %w", ph.Name, err)
		}
	}
	for _, r := range s.Rates {
		personID := lookup(r.Person)
		if r.BaseRate != nil {
			if err := w.SetAssociateRate(ctx, projectID, personID, *r.BaseRate); err != nil {
				return fmt.Errorf("rate of %s: %w", r.Person, err)
			}
		}
		if r.MarkedUpRate != nil {
			if err := w.SetAssociateMarkedUpRate(ctx, projectID, personID, *r.MarkedUpRate); err != nil {
				return fmt.Errorf("rate of %s: %w", r.Person, err)
			}
		}
	}
	for _, e := range s.Expenses {
		item := domain.ExpenseItem{
			PersonID:            lookup(e.Person),
			NumberOfFlights:     e.NumberOfFlights,
			AvgFlightCost:       e.AvgFlightCost,
			DaysOnsite:          e.DaysOnsite,
			AccommodationPerDay: e.AccommodationPerDay,
			PerDiemPerDay:       e.PerDiemPerDay,
			Buffer:              e.Buffer,
		}
		if err := w.SetExpense(ctx, projectID, item); err != nil {
			return fmt.Errorf("expenses of %s: %w", e.Person, err)
		}
	}
	return nil
}

func applyPhase(ctx context.Context, w PricingWriter, projectID string, ph PhaseImport, lookup func(string) string) error {
	phase, err := w.AddPhase(ctx, projectID, strings.TrimSpace(ph.Name))
	if err != nil {
		return err
	}

	for i, ws := range ph.Workstreams {
		// AddPhase already created workstream 1.
		wsID := phase.Workstreams[0].ID
		if i > 0 {
			added, err := w.AddWorkstream(ctx, projectID, phase.ID)
			if err != nil {
				return err
			}
			wsID = added.ID
		}
		if ws.Name != "" {
			if err := w.RenameWorkstream(ctx, projectID, phase.ID, wsID, ws.Name); err != nil {
				return err
			}
		}
		for _, li := range ws.LineItems {
			if err := applyLineItem(ctx, w, projectID, phase.ID, wsID, li, lookup); err != nil {
				return err
			}
		}
	}
	return nil
}

func applyLineItem(ctx context.Context, w PricingWriter, projectID, phaseID, wsID string, li LineItemImport, lookup func(string) string) error {
	added, err := w.AddLineItem(ctx, projectID, phaseID, wsID)
	if err != nil {
		return err
	}
	ref := service.LineItemRef{PhaseID: phaseID, WorkstreamID: wsID, LineItemID: added.ID}

	start, err := parseOptionalDate(li.StartDate)
	if err != nil {
		return fmt.Errorf("line item %s: start date: %w", added.Number, err)
	}
	end, err := parseOptionalDate(li.EndDate)
	if err != nil {
		return fmt.Errorf("line item %s: end date: %w", added.Number, err)
	}
	if li.Description != "" || start != nil || end != nil {
		u := domain.LineItemUpdate{StartDate: start, EndDate: end}
		if li.Description != "" {
			u.Description = &li.Description
		}
		if err := w.UpdateLineItem(ctx, projectID, ref, u); err != nil {
			return fmt.Errorf("line item %s: %w", added.Number, err)
		}
	}

	for _, a := range li.Assignees {
		personID := lookup(a.Person)
		if err := w.AddAssigneeToLineItem(ctx, projectID, ref, personID); err != nil {
			return fmt.Errorf("line item %s: %w", added.Number, err)
		}
		if err := applyAssignee(ctx, w, projectID, ref, personID, a); err != nil {
			return fmt.Errorf("line item %s, %s: %w", added.Number, a.Person, err)
		}
	}
	return nil
}

func applyAssignee(ctx context.Context, w PricingWriter, projectID string, ref service.LineItemRef, personID string, a AssigneeImport) error {
	if a.TimeUnit != "" {
		unit, err := domain.ParseTimeUnit(a.TimeUnit)
		if err != nil {
			return err
		}
		if unit.IsDerived() {
			return w.UpdateAssigneeTimeUnit(ctx, projectID, ref, personID, domain.TimeUnitUpdate{
				TimeUnit:        &unit,
				DaysPerPeriod:   a.DaysPerPeriod,
				NumberOfPeriods: a.NumberOfPeriods,
			})
		}
	}
	if a.Days != nil {
		return w.UpdateAssigneeDays(ctx, projectID, ref, personID, *a.Days)
	}
	return nil
}

// resolvePeople checks every person the sheet names and returns a lookup
// from sheet reference to person id.
func resolvePeople(s *Sheet, people map[string]string) (func(string) string, error) {
	var errs []error
	seen := make(map[string]bool)
	check := func(ref string) {
		key := strings.ToLower(strings.TrimSpace(ref))
		if seen[key] {
			return
		}
		seen[key] = true
		if _, ok := people[key]; !ok {
			errs = append(errs, &domain.NotFoundError{Kind: "person", ID: ref})
		}
	}

	for _, ph := range s.Phases {
		for _, ws := range ph.Workstreams {
			for _, li := range ws.LineItems {
				for _, a := range li.Assignees {
					check(a.Person)
				}
			}
		}
	}
	for _, r := range s.Rates {
		check(r.Person)
	}
	for _, e := range s.Expenses {
		check(e.Person)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return func(ref string) string {
		return people[strings.ToLower(strings.TrimSpace(ref))]
	}, nil
}

func toSettings(st *SettingsImport) domain.PricingSettings {
	out := domain.PricingSettings{
		MarkupPercentage:         st.MarkupPercentage,
		WithholdingTaxPercentage: st.WithholdingTax,
		DefaultAccommodation:     st.DefaultAccommodation,
		DefaultPerDiem:           st.DefaultPerDiem,
	}
	if st.Currency != "" {
		if c, err := domain.ParseCurrency(st.Currency); err == nil {
			out.Currency = &c
		}
	}
	return out
}
