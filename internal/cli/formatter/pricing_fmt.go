package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/pricebook/internal/costing"
	"github.com/alexanderramin/pricebook/internal/domain"
	"github.com/shopspring/decimal"
)

// PricingView holds everything needed to render a project pricing.
type PricingView struct {
	Pricing   *domain.ProjectPricing
	Project   *domain.Project   // optional; supplies milestone and task titles
	People    map[string]string // person id -> display name
	Totals    costing.Totals
	Breakdown []costing.AssociateLine
	Subtotals []costing.PhaseSubtotal
	// Display re-expresses amounts in another currency. Empty keeps the
	// pricing currency.
	Display domain.Currency
}

func (v PricingView) money(amount decimal.Decimal) string {
	to := v.Display
	if to == "" {
		to = v.Pricing.Currency
	}
	return FormatMoneyIn(amount, v.Pricing.Currency, to)
}

func (v PricingView) person(id string) string {
	if name, ok := v.People[id]; ok && name != "" {
		return name
	}
	return TruncID(id)
}

// FormatPricing renders the full pricing card.
func FormatPricing(v PricingView) string {
	p := v.Pricing
	var b strings.Builder

	title := p.ProjectID
	if v.Project != nil {
		title = fmt.Sprintf("%s [%s]", v.Project.Name, v.Project.ShortID)
	}
	b.WriteString(Bold(title) + "\n\n")
	b.WriteString(Label("status", 11, PricingStatusPill(p.Status)) + "\n")
	currency := string(p.Currency)
	if v.Display != "" && v.Display != p.Currency {
		currency += Dim(fmt.Sprintf(" (shown in %s)", v.Display))
	}
	b.WriteString(Label("currency", 11, currency) + "\n")
	b.WriteString(Label("markup", 11, FormatPercent(p.MarkupPercentage)) + "\n")
	b.WriteString(Label("withholding", 11, FormatPercent(p.WithholdingTaxPercentage)) + "\n")

	if tree := v.phaseTree(); tree != "" {
		b.WriteString("\n" + Header("Phases") + "\n" + tree)
	}
	if tree := v.milestoneTree(); tree != "" {
		b.WriteString("\n" + Header("Milestones") + "\n" + tree)
	}
	if len(v.Breakdown) > 0 {
		b.WriteString("\n" + Header("Associates") + "\n" + v.associateTable())
	}
	if len(v.Subtotals) > 0 {
		b.WriteString("\n" + Header("Phase subtotals") + "\n" + v.subtotalTable())
	}
	b.WriteString("\n" + Header("Totals") + "\n" + v.totals())

	return RenderBox("Pricing", strings.TrimRight(b.String(), "\n"))
}

func (v PricingView) phaseTree() string {
	var items []TreeItem
	for _, ph := range v.Pricing.Phases {
		items = append(items, TreeItem{Title: Bold(ph.Name) + " " + TruncID(ph.ID)})
		for wi, ws := range ph.Workstreams {
			items = append(items, TreeItem{
				Title:  fmt.Sprintf("%d. %s %s", ws.Number, ws.Name, TruncID(ws.ID)),
				Level:  1,
				IsLast: wi == len(ph.Workstreams)-1,
			})
			for li, item := range ws.LineItems {
				items = append(items, TreeItem{
					Title:  fmt.Sprintf("%s %s %s", StyleYellow.Render(item.Number), item.Description, TruncID(item.ID)),
					Level:  2,
					IsLast: li == len(ws.LineItems)-1,
					Detail: v.lineAssignees(item.Assignees),
				})
			}
		}
	}
	return RenderTree(items)
}

func (v PricingView) lineAssignees(as []domain.LineItemAssignee) string {
	parts := make([]string, 0, len(as))
	for _, a := range as {
		s := fmt.Sprintf("%s %sd", v.person(a.PersonID), FormatDays(a.Days))
		if a.TimeUnit.IsDerived() {
			s += fmt.Sprintf(" (%s×%s %s)",
				FormatDays(domain.Float64FromPtrWithDefault(0, a.DaysPerPeriod)),
				FormatDays(domain.Float64FromPtrWithDefault(0, a.NumberOfPeriods)),
				a.TimeUnit)
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}

func (v PricingView) milestoneTree() string {
	var items []TreeItem
	for _, m := range v.Pricing.MilestonePricing {
		title := TruncID(m.MilestoneID)
		var rec *domain.Milestone
		if v.Project != nil {
			if rec = v.Project.FindMilestone(m.MilestoneID); rec != nil {
				title = Bold(rec.Title)
			}
		}
		items = append(items, TreeItem{Title: title})
		for ti, t := range m.Tasks {
			items = append(items, TreeItem{
				Title:  taskTitle(rec, t),
				Level:  1,
				IsLast: ti == len(m.Tasks)-1,
				Detail: v.taskAssignees(t),
			})
		}
	}
	return RenderTree(items)
}

func taskTitle(m *domain.Milestone, t domain.TaskPricing) string {
	if m != nil {
		for _, task := range m.Tasks {
			if task.ID == t.TaskID {
				return task.Title
			}
		}
	}
	return TruncID(t.TaskID)
}

func (v PricingView) taskAssignees(t domain.TaskPricing) string {
	parts := make([]string, 0, len(t.Assignees)+1)
	if t.TimeUnit.IsDerived() {
		parts = append(parts, fmt.Sprintf("%s %s", FormatDays(domain.Float64FromPtrWithDefault(0, t.NumberOfPeriods)), t.TimeUnit))
	}
	for _, a := range t.Assignees {
		parts = append(parts, fmt.Sprintf("%s %sd", v.person(a.PersonID), FormatDays(a.Days)))
	}
	return strings.Join(parts, ", ")
}

func (v PricingView) associateTable() string {
	headers := []string{"ASSOCIATE", "DAYS", "BASE", "RATE", "MAN-DAYS", "EXPENSES", "TOTAL"}
	rows := make([][]string, 0, len(v.Breakdown))
	for _, l := range v.Breakdown {
		rows = append(rows, []string{
			v.person(l.PersonID),
			FormatDays(l.Days),
			v.money(l.BaseRate),
			v.money(l.MarkedUpRate),
			v.money(l.ManDayCost),
			v.money(l.ExpenseCost),
			Bold(v.money(l.Total)),
		})
	}
	return RenderTable(headers, rows, 1, 2, 3, 4, 5, 6)
}

func (v PricingView) subtotalTable() string {
	headers := []string{"PHASE", "DAYS", "COST"}
	rows := make([][]string, 0, len(v.Subtotals))
	for _, s := range v.Subtotals {
		rows = append(rows, []string{s.Name, FormatDays(s.TotalDays), v.money(s.Cost)})
	}
	return RenderTable(headers, rows, 1, 2)
}

func (v PricingView) totals() string {
	t := v.Totals
	margin := v.money(t.GrossMargin) + Dim(" ("+FormatPercent(t.MarginPercent)+")")
	lines := []string{
		Label("days", 14, FormatDays(t.TotalDays)),
		Label("base cost", 14, v.money(t.BaseCost)),
		Label("man-day cost", 14, v.money(t.TotalManDayCost)),
		Label("gross margin", 14, margin),
		Label("expenses", 14, v.money(t.TotalExpenses)),
		Label("total", 14, Bold(v.money(t.Total))),
		Label("net of tax", 14, v.money(t.NetTotal)),
	}
	return strings.Join(lines, "\n") + "\n"
}

// FormatPricingList renders one row per pricing with its headline figures.
func FormatPricingList(pricings []*domain.ProjectPricing, projectNames map[string]string) string {
	headers := []string{"PROJECT", "STATUS", "CURRENCY", "PHASES", "TOTAL"}
	rows := make([][]string, 0, len(pricings))
	for _, p := range pricings {
		name, ok := projectNames[p.ProjectID]
		if !ok {
			name = TruncID(p.ProjectID)
		}
		rows = append(rows, []string{
			name,
			PricingStatusPill(p.Status),
			string(p.Currency),
			fmt.Sprintf("%d", len(p.Phases)),
			FormatMoney(costing.ProjectTotals(p).Total, p.Currency),
		})
	}
	return RenderBox("Pricings", RenderTable(headers, rows, 3, 4))
}
