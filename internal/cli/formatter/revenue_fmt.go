package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/pricebook/internal/domain"
	"github.com/alexanderramin/pricebook/internal/revenue"
	"github.com/shopspring/decimal"
)

// marginStyle colors a margin percentage: red below zero, yellow under 20%.
func marginStyle(pct decimal.Decimal) string {
	text := FormatPercent(pct)
	switch {
	case pct.IsNegative():
		return StyleRed.Render(text)
	case pct.LessThan(decimal.NewFromInt(20)):
		return StyleYellow.Render(text)
	default:
		return StyleGreen.Render(text)
	}
}

func summaryCurrency(c domain.Currency) domain.Currency {
	if c == "" {
		return domain.CurrencyUSD
	}
	return c
}

// FormatProjectRevenue renders one project's revenue card.
func FormatProjectRevenue(s revenue.ProjectSummary, name string) string {
	cur := summaryCurrency(s.Currency)
	lines := []string{
		Bold(name),
		"",
		Label("status", 11, TrackingStatusPill(s.Status)),
		Label("revenue", 11, FormatMoney(s.Revenue, cur)),
		Label("cost", 11, FormatMoney(s.TotalCost, cur)),
		Label("margin", 11, FormatMoney(s.GrossMargin, cur)+" "+marginStyle(s.MarginPercent)),
		Label("assignments", 11, fmt.Sprintf("%d", s.AssignmentCount)),
	}
	return RenderBox("Revenue", strings.Join(lines, "\n"))
}

// FormatAssociateRevenue renders one person's cost summary. Cost rates are
// recorded without a currency, so amounts are shown as plain numbers.
func FormatAssociateRevenue(s revenue.AssociateSummary, name string) string {
	lines := []string{
		Bold(name),
		"",
		Label("hours", 12, FormatDays(s.TotalHours)),
		Label("cost", 12, s.TotalCost.StringFixed(2)),
		Label("projects", 12, fmt.Sprintf("%d", s.ProjectCount)),
		Label("avg cost/day", 12, s.AvgCostPerDay.StringFixed(2)),
	}
	return RenderBox("Associate", strings.Join(lines, "\n"))
}

// FormatPortfolio renders every counted project and the portfolio totals.
func FormatPortfolio(p revenue.Portfolio, projectNames map[string]string) string {
	headers := []string{"PROJECT", "STATUS", "REVENUE", "COST", "MARGIN", "%"}
	rows := make([][]string, 0, len(p.Projects)+1)
	for _, s := range p.Projects {
		name, ok := projectNames[s.ProjectID]
		if !ok {
			name = TruncID(s.ProjectID)
		}
		cur := summaryCurrency(s.Currency)
		rows = append(rows, []string{
			name,
			TrackingStatusPill(s.Status),
			FormatMoney(s.Revenue, cur),
			FormatMoney(s.TotalCost, cur),
			FormatMoney(s.GrossMargin, cur),
			marginStyle(s.MarginPercent),
		})
	}
	rows = append(rows, []string{
		Bold("Total"),
		"",
		Bold(p.Revenue.StringFixed(2)),
		Bold(p.TotalCost.StringFixed(2)),
		Bold(p.GrossMargin.StringFixed(2)),
		marginStyle(p.MarginPercent),
	})
	return RenderBox("Portfolio", RenderTable(headers, rows, 2, 3, 4, 5))
}

// FormatAssignments lists assignments with person and project names
// resolved where known.
func FormatAssignments(as []*domain.Assignment, people, projects map[string]string) string {
	headers := []string{"ID", "PERSON", "PROJECT", "HOURS", "RATE/H", "COST", "DATES"}
	rows := make([][]string, 0, len(as))
	lookup := func(m map[string]string, id string) string {
		if n, ok := m[id]; ok {
			return n
		}
		return TruncID(id)
	}
	for _, a := range as {
		rows = append(rows, []string{
			TruncID(a.ID),
			lookup(people, a.PersonID),
			lookup(projects, a.ProjectID),
			FormatDays(a.Hours),
			a.CostRate.StringFixed(2),
			a.Cost().StringFixed(2),
			a.StartDate.Format("2006-01-02") + " → " + a.EndDate.Format("2006-01-02"),
		})
	}
	return RenderBox("Assignments", RenderTable(headers, rows, 3, 4, 5))
}
