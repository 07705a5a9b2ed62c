package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/pricebook/internal/domain"
	"github.com/alexanderramin/pricebook/internal/repository"
	"github.com/alexanderramin/pricebook/internal/service"
	"github.com/alexanderramin/pricebook/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	db := testutil.NewTestDB(t)

	projRepo := repository.NewSQLiteProjectRepo(db)
	personRepo := repository.NewSQLitePersonRepo(db)
	pricing := service.NewPricingService(domain.DefaultPricingDefaults(),
		service.WithPricingRepo(repository.NewSQLitePricingRepo(db)),
		service.WithProjectLookup(projRepo),
	)

	return &App{
		Projects: service.NewProjectService(projRepo, testutil.NewTestUoW(db), pricing),
		People:   service.NewPersonService(personRepo),
		Pricing:  pricing,
		Revenue: service.NewRevenueService(
			repository.NewSQLiteTrackedProjectRepo(db),
			repository.NewSQLiteAssignmentRepo(db),
			projRepo, personRepo, 8,
		),
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func mustExec(t *testing.T, app *App, args ...string) string {
	t.Helper()
	out, err := executeCmd(t, app, args...)
	require.NoError(t, err, "pricebook %v\n%s", args, out)
	return out
}

// seedPricedProject creates ACME01 with one phase, one line item and Ada on
// it for 5 days at a base rate of 1000.
func seedPricedProject(t *testing.T, app *App) string {
	t.Helper()
	mustExec(t, app, "project", "add", "--id", "ACME01", "--name", "Acme Rollout")
	mustExec(t, app, "person", "add", "Ada", "--title", "Principal")
	mustExec(t, app, "phase", "add", "Discovery", "-p", "ACME01")
	mustExec(t, app, "line", "add", "-p", "ACME01", "--phase", "Discovery", "--ws", "1")
	mustExec(t, app, "assignee", "add", "Ada", "-p", "ACME01", "--phase", "Discovery", "--ws", "1", "--line", "1.1")
	mustExec(t, app, "assignee", "days", "Ada", "5", "-p", "ACME01", "--phase", "Discovery", "--ws", "1", "--line", "1.1")
	mustExec(t, app, "rate", "Ada", "-p", "ACME01", "--base", "1000")

	p, err := app.Projects.GetByShortID(context.Background(), "ACME01")
	require.NoError(t, err)
	return p.ID
}

func lookupPerson(t *testing.T, app *App, name string) string {
	t.Helper()
	id, err := resolvePersonID(context.Background(), app, name)
	require.NoError(t, err)
	return id
}

func TestRootCmd_NoArgs_ShowsHelp(t *testing.T) {
	out, err := executeCmd(t, testApp(t))
	require.NoError(t, err)
	assert.Contains(t, out, "pricebook")
}

func TestProjectCmd_AddListInspect(t *testing.T) {
	app := testApp(t)

	out := mustExec(t, app, "project", "add", "--id", "acme01", "--name", "Acme Rollout", "--client", "Acme Corp")
	assert.Contains(t, out, "[ACME01]")

	mustExec(t, app, "project", "milestone", "ACME01", "--title", "Kickoff")
	mustExec(t, app, "project", "task", "ACME01", "--milestone", "kickoff", "--title", "Interviews")

	out = mustExec(t, app, "project", "list")
	assert.Contains(t, out, "Acme Corp")

	out = mustExec(t, app, "project", "inspect", "acme01")
	assert.Contains(t, out, "Kickoff")
	assert.Contains(t, out, "Interviews")
}

func TestProjectCmd_InvalidShortID(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "project", "add", "--id", "A1", "--name", "Nope")
	assert.Error(t, err)
}

func TestProjectCmd_RemoveNeedsArchiveOrForce(t *testing.T) {
	app := testApp(t)
	projectID := seedPricedProject(t, app)

	_, err := executeCmd(t, app, "project", "remove", "ACME01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "archived")

	mustExec(t, app, "project", "remove", "ACME01", "--force", "--yes")
	_, err = app.Pricing.GetProjectPricing(context.Background(), projectID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPriceCmd_ShowTotals(t *testing.T) {
	app := testApp(t)
	seedPricedProject(t, app)
	mustExec(t, app, "settings", "ACME01", "--markup", "50", "--withholding", "5")

	out := mustExec(t, app, "price", "show", "ACME01")
	assert.Contains(t, out, "Acme Rollout [ACME01]")
	assert.Contains(t, out, "Ada")
	assert.Contains(t, out, "$7,500.00")
	assert.Contains(t, out, "$7,125.00", "net of 5% withholding")

	out = mustExec(t, app, "price", "show", "ACME01", "--in", "sar")
	assert.Contains(t, out, "shown in SAR")

	out = mustExec(t, app, "price", "list")
	assert.Contains(t, out, "Acme Rollout")
}

func TestPriceCmd_ShowUnpricedProject(t *testing.T) {
	app := testApp(t)
	mustExec(t, app, "project", "add", "--id", "BETA01", "--name", "Beta")

	out := mustExec(t, app, "price", "show", "BETA01")
	assert.Contains(t, out, "not been priced")
}

func TestPriceCmd_InvalidCurrencyFlag(t *testing.T) {
	app := testApp(t)
	seedPricedProject(t, app)

	_, err := executeCmd(t, app, "price", "show", "ACME01", "--in", "EUR")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want USD, SAR or AED")
}

func TestPriceCmd_Status(t *testing.T) {
	app := testApp(t)
	mustExec(t, app, "project", "add", "--id", "ACME01", "--name", "Acme")
	mustExec(t, app, "settings", "ACME01", "--currency", "AED")

	_, err := executeCmd(t, app, "price", "status", "ACME01", "priced")
	assert.ErrorIs(t, err, domain.ErrNotPriceable)

	mustExec(t, app, "phase", "add", "Discovery", "-p", "ACME01")
	mustExec(t, app, "price", "status", "ACME01", "priced")

	p, err := app.Projects.GetByShortID(context.Background(), "ACME01")
	require.NoError(t, err)
	pricing, err := app.Pricing.GetProjectPricing(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PricingPriced, pricing.Status)
	assert.Equal(t, domain.CurrencyAED, pricing.Currency)
}

func TestRateCmd_MarkedUpOverride(t *testing.T) {
	app := testApp(t)
	seedPricedProject(t, app)
	mustExec(t, app, "settings", "ACME01", "--markup", "50")

	out := mustExec(t, app, "rate", "Ada", "-p", "ACME01", "--marked-up", "1800")
	assert.Contains(t, out, "base 1000.00, marked up 1800.00 USD")

	_, err := executeCmd(t, app, "rate", "Ada", "-p", "ACME01")
	assert.Error(t, err)

	_, err = executeCmd(t, app, "rate", "Ada", "-p", "ACME01", "--base", "ten")
	assert.Error(t, err)
}

func TestAssigneeCmd_WeeklyUnitDerivesDays(t *testing.T) {
	app := testApp(t)
	projectID := seedPricedProject(t, app)
	line := []string{"-p", "ACME01", "--phase", "Discovery", "--ws", "1", "--line", "1.1"}

	mustExec(t, app, append([]string{"assignee", "unit", "Ada", "--unit", "week", "--days-per-period", "3", "--periods", "4"}, line...)...)

	days, err := app.Pricing.AssociateTotalDays(context.Background(), projectID, lookupPerson(t, app, "Ada"))
	require.NoError(t, err)
	assert.Equal(t, 12.0, days)

	_, err = executeCmd(t, app, append([]string{"assignee", "days", "Ada", "2"}, line...)...)
	assert.ErrorIs(t, err, domain.ErrDerivedDays)

	_, err = executeCmd(t, app, append([]string{"assignee", "unit", "Ada", "--unit", "fortnight"}, line...)...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want full, week or month")
}

func TestWorkstreamCmd_RemoveRenumbers(t *testing.T) {
	app := testApp(t)
	projectID := seedPricedProject(t, app)
	mustExec(t, app, "workstream", "add", "-p", "ACME01", "--phase", "Discovery")
	mustExec(t, app, "line", "add", "-p", "ACME01", "--phase", "Discovery", "--ws", "2")

	mustExec(t, app, "ws", "remove", "-p", "ACME01", "--phase", "Discovery", "--ws", "1")

	p, err := app.Pricing.GetProjectPricing(context.Background(), projectID)
	require.NoError(t, err)
	wss := p.Phases[0].Workstreams
	require.Len(t, wss, 1)
	assert.Equal(t, 1, wss[0].Number)
	assert.Equal(t, "1.1", wss[0].LineItems[0].Number)
}

func TestLineCmd_UpdateAndRemove(t *testing.T) {
	app := testApp(t)
	projectID := seedPricedProject(t, app)
	line := []string{"-p", "ACME01", "--phase", "Discovery", "--ws", "1", "--line", "1.1"}

	mustExec(t, app, append([]string{"line", "update", "--description", "Stakeholder interviews", "--start", "2025-07-01"}, line...)...)
	p, err := app.Pricing.GetProjectPricing(context.Background(), projectID)
	require.NoError(t, err)
	li := p.Phases[0].Workstreams[0].LineItems[0]
	assert.Equal(t, "Stakeholder interviews", li.Description)
	require.NotNil(t, li.StartDate)
	assert.Nil(t, li.EndDate)

	_, err = executeCmd(t, app, append([]string{"line", "update", "--end", "July"}, line...)...)
	assert.Error(t, err)

	mustExec(t, app, append([]string{"line", "remove"}, line...)...)
	p, err = app.Pricing.GetProjectPricing(context.Background(), projectID)
	require.NoError(t, err)
	assert.Empty(t, p.Phases[0].Workstreams[0].LineItems)
}

func TestPhaseCmd_RemoveAsksWhenInteractive(t *testing.T) {
	app := testApp(t)
	projectID := seedPricedProject(t, app)
	var asked string
	app.IsInteractive = func() bool { return true }
	app.Confirm = func(title string) (bool, error) {
		asked = title
		return false, nil
	}

	mustExec(t, app, "phase", "remove", "-p", "ACME01", "--phase", "Discovery")
	assert.Contains(t, asked, "Discovery")
	p, err := app.Pricing.GetProjectPricing(context.Background(), projectID)
	require.NoError(t, err)
	assert.Len(t, p.Phases, 1)

	mustExec(t, app, "phase", "remove", "-p", "ACME01", "--phase", "Discovery", "--yes")
	p, err = app.Pricing.GetProjectPricing(context.Background(), projectID)
	require.NoError(t, err)
	assert.Empty(t, p.Phases)
	assert.Equal(t, domain.PricingNotPriced, p.Status)
}

func TestPhaseCmd_UnknownPhase(t *testing.T) {
	app := testApp(t)
	seedPricedProject(t, app)

	_, err := executeCmd(t, app, "phase", "rename", "Build", "-p", "ACME01", "--phase", "Nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTaskCmd_PeriodPricing(t *testing.T) {
	app := testApp(t)
	projectID := seedPricedProject(t, app)
	mustExec(t, app, "project", "milestone", "ACME01", "--title", "Kickoff")
	mustExec(t, app, "project", "task", "ACME01", "--milestone", "Kickoff", "--title", "Interviews")
	task := []string{"-p", "ACME01", "--milestone", "Kickoff", "--task", "Interviews"}

	mustExec(t, app, append([]string{"task", "assign", "Ada"}, task...)...)
	mustExec(t, app, append([]string{"task", "unit", "--unit", "week", "--periods", "2"}, task...)...)
	mustExec(t, app, append([]string{"task", "days", "Ada", "--days-per-period", "3"}, task...)...)

	days, err := app.Pricing.AssociateTotalDays(context.Background(), projectID, lookupPerson(t, app, "Ada"))
	require.NoError(t, err)
	assert.Equal(t, 11.0, days, "5 line item days plus 2 weeks at 3 days")

	mustExec(t, app, append([]string{"task", "unassign", "Ada"}, task...)...)
	p, err := app.Pricing.GetProjectPricing(context.Background(), projectID)
	require.NoError(t, err)
	assert.Empty(t, p.MilestonePricing, "unassigning the last associate drops the task")

	mustExec(t, app, append([]string{"task", "assign", "Ada"}, task...)...)
	mustExec(t, app, "task", "clear", "-p", "ACME01", "--milestone", "Kickoff", "--yes")
	p, err = app.Pricing.GetProjectPricing(context.Background(), projectID)
	require.NoError(t, err)
	assert.Empty(t, p.MilestonePricing)
}

func TestTaskCmd_UnknownTaskOnRegisteredProject(t *testing.T) {
	app := testApp(t)
	seedPricedProject(t, app)
	mustExec(t, app, "project", "milestone", "ACME01", "--title", "Kickoff")

	_, err := executeCmd(t, app, "task", "assign", "Ada", "-p", "ACME01", "--milestone", "Kickoff", "--task", "Ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExpenseCmd_UsesProjectDefaults(t *testing.T) {
	app := testApp(t)
	seedPricedProject(t, app)

	out := mustExec(t, app, "expense", "set", "Ada", "-p", "ACME01", "--flights", "2", "--flight-cost", "800", "--onsite", "10")
	assert.Contains(t, out, "5150.00 USD")

	out = mustExec(t, app, "expense", "set", "Ada", "-p", "ACME01", "--onsite", "2", "--accommodation", "100", "--per-diem", "0", "--buffer", "50")
	assert.Contains(t, out, "250.00 USD")

	mustExec(t, app, "expense", "remove", "Ada", "-p", "ACME01")
	_, err := executeCmd(t, app, "expense", "remove", "Ada", "-p", "ACME01")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPersonCmd_ListAndRemove(t *testing.T) {
	app := testApp(t)
	mustExec(t, app, "person", "add", "Ada")
	mustExec(t, app, "person", "add", "Grace", "--title", "Manager")

	out := mustExec(t, app, "people", "list")
	assert.Contains(t, out, "Grace")
	assert.Contains(t, out, "Manager")

	mustExec(t, app, "person", "remove", "ada")
	_, err := executeCmd(t, app, "person", "remove", "Ada")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRevenueCmd_Flow(t *testing.T) {
	app := testApp(t)
	seedPricedProject(t, app)

	out := mustExec(t, app, "revenue", "show", "ACME01")
	assert.Contains(t, out, "Untracked")

	mustExec(t, app, "revenue", "track", "ACME01", "--value", "10000")
	mustExec(t, app, "revenue", "assignment", "add", "Ada", "-p", "ACME01",
		"--hours", "40", "--rate", "100", "--start", "2025-06-02", "--end", "2025-06-06")

	out = mustExec(t, app, "revenue", "show", "ACME01")
	assert.Contains(t, out, "$10,000.00")
	assert.Contains(t, out, "$6,000.00")

	out = mustExec(t, app, "revenue", "associate", "Ada")
	assert.Contains(t, out, "800.00", "4000 over 5 eight-hour days")

	out = mustExec(t, app, "revenue", "assignment", "list", "-p", "ACME01")
	assert.Contains(t, out, "Ada")

	mustExec(t, app, "revenue", "value", "ACME01", "--value", "12000")
	mustExec(t, app, "revenue", "close", "ACME01")
	out = mustExec(t, app, "revenue", "portfolio")
	assert.Contains(t, out, "Acme Rollout")
	assert.Contains(t, out, "12000.00")

	_, err := executeCmd(t, app, "revenue", "close", "ACME01")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestRevenueCmd_AssignmentRejectsReversedDates(t *testing.T) {
	app := testApp(t)
	seedPricedProject(t, app)

	_, err := executeCmd(t, app, "revenue", "assignment", "add", "Ada", "-p", "ACME01",
		"--hours", "8", "--rate", "100", "--start", "2025-06-06", "--end", "2025-06-02")
	assert.Error(t, err)
}

func TestPriceCmd_ExportImportRoundTrip(t *testing.T) {
	app := testApp(t)
	seedPricedProject(t, app)
	mustExec(t, app, "settings", "ACME01", "--markup", "50")
	mustExec(t, app, "project", "add", "--id", "BETA01", "--name", "Beta Rollout")

	sheet := filepath.Join(t.TempDir(), "acme.json")
	out := mustExec(t, app, "price", "export", "ACME01", "-o", sheet)
	assert.Contains(t, out, "Exported ACME01")

	out = mustExec(t, app, "price", "import", "BETA01", sheet)
	assert.Contains(t, out, "Imported 1 phases")
	out = mustExec(t, app, "price", "show", "BETA01")
	assert.Contains(t, out, "$7,500.00")

	_, err := executeCmd(t, app, "price", "import", "BETA01", sheet)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--replace")
	mustExec(t, app, "price", "import", "BETA01", sheet, "--replace")

	beta, err := app.Projects.GetByShortID(context.Background(), "BETA01")
	require.NoError(t, err)
	p, err := app.Pricing.GetProjectPricing(context.Background(), beta.ID)
	require.NoError(t, err)
	assert.Len(t, p.Phases, 1)
}

func TestPriceCmd_ImportRejectsInvalidSheet(t *testing.T) {
	app := testApp(t)
	mustExec(t, app, "project", "add", "--id", "BETA01", "--name", "Beta")

	sheet := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(sheet, []byte(`{"settings": {"currency": "EUR"}, "phases": [{"name": ""}]}`), 0o644))

	_, err := executeCmd(t, app, "price", "import", "BETA01", sheet)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed (2 errors)")
}
