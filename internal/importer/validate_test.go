package importer

import (
	"errors"
	"testing"

	"github.com/alexanderramin/pricebook/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrStr(s string) *string     { return &s }
func ptrFloat(f float64) *float64 { return &f }
func ptrDec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func validMinimalSheet() *Sheet {
	return &Sheet{
		Phases: []PhaseImport{{
			Name: "Discovery",
			Workstreams: []WorkstreamImport{{
				LineItems: []LineItemImport{{
					Assignees: []AssigneeImport{{Person: "Ada", Days: ptrFloat(5)}},
				}},
			}},
		}},
	}
}

func TestValidateSheet_ValidMinimal(t *testing.T) {
	assert.Empty(t, ValidateSheet(validMinimalSheet()))
}

func TestValidateSheet_ValidFull(t *testing.T) {
	s := &Sheet{
		Settings: &SettingsImport{
			Currency:         "sar",
			MarkupPercentage: ptrDec("25"),
			WithholdingTax:   ptrDec("5"),
			DefaultPerDiem:   ptrDec("0"),
		},
		Phases: []PhaseImport{{
			Name: "Build",
			Workstreams: []WorkstreamImport{
				{Name: "Data", LineItems: []LineItemImport{{
					Description: "Pipelines",
					StartDate:   ptrStr("2025-07-01"),
					EndDate:     ptrStr("2025-07-31"),
					Assignees: []AssigneeImport{
						{Person: "Ada", TimeUnit: "week", DaysPerPeriod: ptrFloat(3), NumberOfPeriods: ptrFloat(4)},
						{Person: "Grace", TimeUnit: "full", Days: ptrFloat(2.5)},
					},
				}}},
				{Name: "Reporting"},
			},
		}},
		Rates:    []RateImport{{Person: "Ada", BaseRate: ptrDec("1000")}, {Person: "Grace", MarkedUpRate: ptrDec("900")}},
		Expenses: []ExpenseImport{{Person: "Ada", NumberOfFlights: 2, AvgFlightCost: decimal.NewFromInt(800), DaysOnsite: 10}},
	}
	assert.Empty(t, ValidateSheet(s))
}

func TestValidateSheet_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Sheet)
		want   string
	}{
		{"unknown currency", func(s *Sheet) { s.Settings = &SettingsImport{Currency: "EUR"} }, "settings.currency"},
		{"negative markup", func(s *Sheet) { s.Settings = &SettingsImport{MarkupPercentage: ptrDec("-1")} }, "markup_percentage must not be negative"},
		{"withholding over 100", func(s *Sheet) { s.Settings = &SettingsImport{WithholdingTax: ptrDec("101")} }, "between 0 and 100"},
		{"phase without name", func(s *Sheet) { s.Phases[0].Name = " " }, "phases[0].name is required"},
		{"bad date", func(s *Sheet) {
			s.Phases[0].Workstreams[0].LineItems[0].StartDate = ptrStr("01/07/2025")
		}, "start_date: invalid date format"},
		{"end before start", func(s *Sheet) {
			li := &s.Phases[0].Workstreams[0].LineItems[0]
			li.StartDate, li.EndDate = ptrStr("2025-07-10"), ptrStr("2025-07-01")
		}, "is before start_date"},
		{"assignee twice", func(s *Sheet) {
			li := &s.Phases[0].Workstreams[0].LineItems[0]
			li.Assignees = append(li.Assignees, AssigneeImport{Person: "ada"})
		}, "assigned twice"},
		{"unknown unit", func(s *Sheet) {
			s.Phases[0].Workstreams[0].LineItems[0].Assignees[0].TimeUnit = "fortnight"
		}, "time_unit"},
		{"days on derived unit", func(s *Sheet) {
			a := &s.Phases[0].Workstreams[0].LineItems[0].Assignees[0]
			a.TimeUnit, a.DaysPerPeriod, a.NumberOfPeriods = "month", ptrFloat(4), ptrFloat(2)
		}, "derived"},
		{"derived unit missing periods", func(s *Sheet) {
			a := &s.Phases[0].Workstreams[0].LineItems[0].Assignees[0]
			a.TimeUnit, a.Days = "week", nil
		}, "needs days_per_period and number_of_periods"},
		{"period fields on full unit", func(s *Sheet) {
			s.Phases[0].Workstreams[0].LineItems[0].Assignees[0].NumberOfPeriods = ptrFloat(2)
		}, "need a week or month time_unit"},
		{"negative days", func(s *Sheet) {
			s.Phases[0].Workstreams[0].LineItems[0].Assignees[0].Days = ptrFloat(-1)
		}, "days must not be negative"},
		{"rate without amount", func(s *Sheet) { s.Rates = []RateImport{{Person: "Ada"}} }, "base_rate or marked_up_rate is required"},
		{"duplicate rate", func(s *Sheet) {
			s.Rates = []RateImport{{Person: "Ada", BaseRate: ptrDec("1")}, {Person: "ADA", BaseRate: ptrDec("2")}}
		}, "duplicate rate"},
		{"negative buffer", func(s *Sheet) {
			s.Expenses = []ExpenseImport{{Person: "Ada", Buffer: decimal.NewFromInt(-5)}}
		}, "expenses[0].buffer must not be negative"},
		{"expense without person", func(s *Sheet) { s.Expenses = []ExpenseImport{{}} }, "expenses[0].person is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validMinimalSheet()
			tt.mutate(s)
			errs := ValidateSheet(s)
			require.NotEmpty(t, errs)
			assert.Contains(t, errors.Join(errs...).Error(), tt.want)
		})
	}
}

func TestValidateSheet_CollectsAllErrors(t *testing.T) {
	s := validMinimalSheet()
	s.Settings = &SettingsImport{Currency: "EUR"}
	s.Phases = append(s.Phases, PhaseImport{})
	s.Rates = []RateImport{{Person: "Ada"}}

	errs := ValidateSheet(s)
	assert.Len(t, errs, 3)
	assert.ErrorIs(t, errs[0], domain.ErrInvalidCurrency)
}

func TestDecodeSheet(t *testing.T) {
	s, err := DecodeSheet([]byte(`{
		"settings": {"currency": "AED", "markup_percentage": "12.5"},
		"phases": [{"name": "Discovery", "workstreams": [{"line_items": [{"assignees": [{"person": "Ada", "days": 3}]}]}]}],
		"rates": [{"person": "Ada", "base_rate": 950}]
	}`))
	require.NoError(t, err)
	assert.Equal(t, "AED", s.Settings.Currency)
	assert.True(t, s.Settings.MarkupPercentage.Equal(decimal.RequireFromString("12.5")))
	assert.Equal(t, 3.0, *s.Phases[0].Workstreams[0].LineItems[0].Assignees[0].Days)
	assert.True(t, s.Rates[0].BaseRate.Equal(decimal.NewFromInt(950)))

	_, err = DecodeSheet([]byte(`{"phases": [`))
	assert.Error(t, err)
}
