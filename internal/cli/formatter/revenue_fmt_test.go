package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/pricebook/internal/domain"
	"github.com/alexanderramin/pricebook/internal/revenue"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatProjectRevenue(t *testing.T) {
	s := revenue.ProjectSummary{
		ProjectID:       "proj-1",
		Status:          domain.TrackingActive,
		Currency:        domain.CurrencyUSD,
		Revenue:         decimal.NewFromInt(10000),
		TotalCost:       decimal.NewFromInt(4000),
		GrossMargin:     decimal.NewFromInt(6000),
		MarginPercent:   decimal.NewFromInt(60),
		AssignmentCount: 2,
	}

	out := FormatProjectRevenue(s, "Acme")

	assert.Contains(t, out, "Active")
	assert.Contains(t, out, "$10,000.00")
	assert.Contains(t, out, "$6,000.00")
	assert.Contains(t, out, "60%")
}

func TestFormatProjectRevenue_UntrackedDefaultsCurrency(t *testing.T) {
	out := FormatProjectRevenue(revenue.ProjectSummary{Status: domain.TrackingUntracked}, "Beta")

	assert.Contains(t, out, "Untracked")
	assert.Contains(t, out, "$0.00")
}

func TestFormatAssociateRevenue(t *testing.T) {
	out := FormatAssociateRevenue(revenue.AssociateSummary{
		TotalHours:    64,
		TotalCost:     decimal.NewFromInt(7000),
		ProjectCount:  1,
		AvgCostPerDay: decimal.NewFromInt(875),
	}, "Ada")

	assert.Contains(t, out, "64")
	assert.Contains(t, out, "7000.00")
	assert.Contains(t, out, "875.00")
}

func TestFormatPortfolio_IncludesTotalRow(t *testing.T) {
	p := revenue.Portfolio{
		Projects: []revenue.ProjectSummary{{
			ProjectID: "proj-1", Status: domain.TrackingClosed, Currency: domain.CurrencyUSD,
			Revenue: decimal.NewFromInt(5000), MarginPercent: decimal.NewFromInt(100), GrossMargin: decimal.NewFromInt(5000),
		}},
		Revenue:       decimal.NewFromInt(5000),
		GrossMargin:   decimal.NewFromInt(5000),
		MarginPercent: decimal.NewFromInt(100),
	}

	out := FormatPortfolio(p, map[string]string{"proj-1": "Acme"})

	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "Closed")
	assert.Contains(t, out, "Total")
	assert.Contains(t, out, "5000.00")
}

func TestFormatAssignments(t *testing.T) {
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	a := &domain.Assignment{
		ID: "a1", PersonID: "p1", ProjectID: "proj-1", Hours: 40,
		CostRate: decimal.NewFromInt(100), StartDate: start, EndDate: start.AddDate(0, 0, 4),
	}

	out := FormatAssignments([]*domain.Assignment{a}, map[string]string{"p1": "Ada"}, map[string]string{"proj-1": "Acme"})

	assert.Contains(t, out, "Ada")
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "4000.00")
	assert.Contains(t, out, "2025-06-02 → 2025-06-06")
}
