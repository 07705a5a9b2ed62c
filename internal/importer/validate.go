package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pricebook/internal/domain"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// ValidateSheet checks the sheet for errors before anything is applied.
// Returns a slice of all validation errors found.
func ValidateSheet(s *Sheet) []error {
	var errs []error

	errs = append(errs, validateSettings(s.Settings)...)
	for i := range s.Phases {
		errs = append(errs, validatePhase(fmt.Sprintf("phases[%d]", i), &s.Phases[i])...)
	}
	errs = append(errs, validateRates(s.Rates)...)
	errs = append(errs, validateExpenses(s.Expenses)...)

	return errs
}

func validateSettings(st *SettingsImport) []error {
	if st == nil {
		return nil
	}
	var errs []error

	if st.Currency != "" {
		if _, err := domain.ParseCurrency(st.Currency); err != nil {
			errs = append(errs, fmt.Errorf("settings.currency: %w", err))
		}
	}
	errs = appendIfNegative(errs, "settings.markup_percentage", st.MarkupPercentage)
	errs = appendIfNegative(errs, "settings.default_accommodation", st.DefaultAccommodation)
	errs = appendIfNegative(errs, "settings.default_per_diem", st.DefaultPerDiem)
	if w := st.WithholdingTax; w != nil && (w.IsNegative() || w.GreaterThan(decimal.NewFromInt(100))) {
		errs = append(errs, fmt.Errorf("settings.withholding_tax_percentage must be between 0 and 100"))
	}

	return errs
}

func validatePhase(prefix string, ph *PhaseImport) []error {
	var errs []error

	if strings.TrimSpace(ph.Name) == "" {
		errs = append(errs, fmt.Errorf("%s.name is required", prefix))
	}
	for i, ws := range ph.Workstreams {
		wsPrefix := fmt.Sprintf("%s.workstreams[%d]", prefix, i)
		for j := range ws.LineItems {
			errs = append(errs, validateLineItem(fmt.Sprintf("%s.line_items[%d]", wsPrefix, j), &ws.LineItems[j])...)
		}
	}

	return errs
}

func validateLineItem(prefix string, li *LineItemImport) []error {
	var errs []error

	start, err := parseOptionalDate(li.StartDate)
	if err != nil {
		errs = append(errs, fmt.Errorf("%s.start_date: %w", prefix, err))
	}
	end, err := parseOptionalDate(li.EndDate)
	if err != nil {
		errs = append(errs, fmt.Errorf("%s.end_date: %w", prefix, err))
	}
	if start != nil && end != nil && end.Before(*start) {
		errs = append(errs, fmt.Errorf("%s: end_date %q is before start_date %q", prefix, *li.EndDate, *li.StartDate))
	}

	seen := make(map[string]bool)
	for i, a := range li.Assignees {
		aPrefix := fmt.Sprintf("%s.assignees[%d]", prefix, i)
		key := strings.ToLower(strings.TrimSpace(a.Person))
		if key == "" {
			errs = append(errs, fmt.Errorf("%s.person is required", aPrefix))
		} else if seen[key] {
			errs = append(errs, fmt.Errorf("%s: %q is assigned twice", aPrefix, a.Person))
		}
		seen[key] = true
		errs = append(errs, validateAssignee(aPrefix, &a)...)
	}

	return errs
}

func validateAssignee(prefix string, a *AssigneeImport) []error {
	var errs []error

	unit := domain.TimeUnitFull
	if a.TimeUnit != "" {
		u, err := domain.ParseTimeUnit(a.TimeUnit)
		if err != nil {
			return append(errs, fmt.Errorf("%s.time_unit: %w", prefix, err))
		}
		unit = u
	}

	if unit.IsDerived() {
		if a.Days != nil {
			errs = append(errs, fmt.Errorf("%s.days: %w", prefix, domain.ErrDerivedDays))
		}
		if a.DaysPerPeriod == nil || a.NumberOfPeriods == nil {
			errs = append(errs, fmt.Errorf("%s: %s unit needs days_per_period and number_of_periods", prefix, unit))
		}
	} else if a.DaysPerPeriod != nil || a.NumberOfPeriods != nil {
		errs = append(errs, fmt.Errorf("%s: period fields need a week or month time_unit", prefix))
	}

	fields := []struct {
		name string
		v    *float64
	}{{"days", a.Days}, {"days_per_period", a.DaysPerPeriod}, {"number_of_periods", a.NumberOfPeriods}}
	for _, f := range fields {
		if f.v != nil && *f.v < 0 {
			errs = append(errs, fmt.Errorf("%s.%s must not be negative", prefix, f.name))
		}
	}

	return errs
}

func validateRates(rates []RateImport) []error {
	var errs []error
	seen := make(map[string]bool)

	for i, r := range rates {
		prefix := fmt.Sprintf("rates[%d]", i)
		key := strings.ToLower(strings.TrimSpace(r.Person))
		if key == "" {
			errs = append(errs, fmt.Errorf("%s.person is required", prefix))
		} else if seen[key] {
			errs = append(errs, fmt.Errorf("%s: duplicate rate for %q", prefix, r.Person))
		}
		seen[key] = true
		if r.BaseRate == nil && r.MarkedUpRate == nil {
			errs = append(errs, fmt.Errorf("%s: base_rate or marked_up_rate is required", prefix))
		}
		errs = appendIfNegative(errs, prefix+".base_rate", r.BaseRate)
		errs = appendIfNegative(errs, prefix+".marked_up_rate", r.MarkedUpRate)
	}

	return errs
}

func validateExpenses(expenses []ExpenseImport) []error {
	var errs []error
	seen := make(map[string]bool)

	for i, e := range expenses {
		prefix := fmt.Sprintf("expenses[%d]", i)
		key := strings.ToLower(strings.TrimSpace(e.Person))
		if key == "" {
			errs = append(errs, fmt.Errorf("%s.person is required", prefix))
		} else if seen[key] {
			errs = append(errs, fmt.Errorf("%s: duplicate expenses for %q", prefix, e.Person))
		}
		seen[key] = true
		if e.NumberOfFlights < 0 || e.DaysOnsite < 0 {
			errs = append(errs, fmt.Errorf("%s: number_of_flights and days_onsite must not be negative", prefix))
		}
		errs = appendIfNegative(errs, prefix+".avg_flight_cost", &e.AvgFlightCost)
		errs = appendIfNegative(errs, prefix+".accommodation_per_day", e.AccommodationPerDay)
		errs = appendIfNegative(errs, prefix+".per_diem_per_day", e.PerDiemPerDay)
		errs = appendIfNegative(errs, prefix+".buffer", &e.Buffer)
	}

	return errs
}

func appendIfNegative(errs []error, field string, d *decimal.Decimal) []error {
	if d != nil && d.IsNegative() {
		return append(errs, fmt.Errorf("%s must not be negative", field))
	}
	return errs
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, fmt.Errorf("invalid date format %q (expected YYYY-MM-DD)", *s)
	}
	return &t, nil
}
