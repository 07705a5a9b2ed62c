package importer

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
)

// Sheet is the top-level JSON structure of a pricing sheet. People are
// referenced by name (or id) and resolved on apply.
type Sheet struct {
	Settings *SettingsImport `json:"settings,omitempty"`
	Phases   []PhaseImport   `json:"phases"`
	Rates    []RateImport    `json:"rates,omitempty"`
	Expenses []ExpenseImport `json:"expenses,omitempty"`
}

// SettingsImport mirrors the project-level pricing settings. Omitted fields
// keep their current value.
type SettingsImport struct {
	Currency             string           `json:"currency,omitempty"`
	MarkupPercentage     *decimal.Decimal `json:"markup_percentage,omitempty"`
	WithholdingTax       *decimal.Decimal `json:"withholding_tax_percentage,omitempty"`
	DefaultAccommodation *decimal.Decimal `json:"default_accommodation,omitempty"`
	DefaultPerDiem       *decimal.Decimal `json:"default_per_diem,omitempty"`
}

type PhaseImport struct {
	Name        string             `json:"name"`
	Workstreams []WorkstreamImport `json:"workstreams,omitempty"`
}

type WorkstreamImport struct {
	Name      string           `json:"name,omitempty"`
	LineItems []LineItemImport `json:"line_items,omitempty"`
}

type LineItemImport struct {
	Description string           `json:"description,omitempty"`
	StartDate   *string          `json:"start_date,omitempty"`
	EndDate     *string          `json:"end_date,omitempty"`
	Assignees   []AssigneeImport `json:"assignees,omitempty"`
}

// AssigneeImport prices one person on a line item. Full-unit assignees
// give days; week and month assignees give days per period and periods.
type AssigneeImport struct {
	Person          string   `json:"person"`
	Days            *float64 `json:"days,omitempty"`
	TimeUnit        string   `json:"time_unit,omitempty"`
	DaysPerPeriod   *float64 `json:"days_per_period,omitempty"`
	NumberOfPeriods *float64 `json:"number_of_periods,omitempty"`
}

type RateImport struct {
	Person       string           `json:"person"`
	BaseRate     *decimal.Decimal `json:"base_rate,omitempty"`
	MarkedUpRate *decimal.Decimal `json:"marked_up_rate,omitempty"`
}

type ExpenseImport struct {
	Person              string           `json:"person"`
	NumberOfFlights     int              `json:"number_of_flights,omitempty"`
	AvgFlightCost       decimal.Decimal  `json:"avg_flight_cost"`
	DaysOnsite          float64          `json:"days_onsite,omitempty"`
	AccommodationPerDay *decimal.Decimal `json:"accommodation_per_day,omitempty"`
	PerDiemPerDay       *decimal.Decimal `json:"per_diem_per_day,omitempty"`
	Buffer              decimal.Decimal  `json:"buffer"`
}

// LoadSheet reads and parses a pricing sheet JSON file.
func LoadSheet(path string) (*Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeSheet(data)
}

func DecodeSheet(data []byte) (*Sheet, error) {
	var s Sheet
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing pricing sheet: %w", err)
	}
	return &s, nil
}
