package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/pricebook/internal/domain"
	"github.com/alexanderramin/pricebook/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type revenueFixture struct {
	repos testRepos
	svc   RevenueService
}

func setupRevenue(t *testing.T) revenueFixture {
	t.Helper()
	repos := setupRepos(t)
	return revenueFixture{
		repos: repos,
		svc:   NewRevenueService(repos.tracked, repos.assignments, repos.projects, repos.people, 8),
	}
}

func (f revenueFixture) project(t *testing.T, name string) *domain.Project {
	t.Helper()
	p := testutil.NewTestProject(name)
	require.NoError(t, f.repos.projects.Create(context.Background(), p))
	return p
}

func (f revenueFixture) person(t *testing.T, name string) *domain.Person {
	t.Helper()
	p := testutil.NewTestPerson(name)
	require.NoError(t, f.repos.people.Create(context.Background(), p))
	return p
}

func TestRevenueService_TrackingLifecycle(t *testing.T) {
	f := setupRevenue(t)
	ctx := context.Background()
	p := f.project(t, "Acme")

	tp, err := f.svc.GetTracking(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TrackingUntracked, tp.Status)

	assert.ErrorIs(t, f.svc.Close(ctx, p.ID), domain.ErrInvalidTransition)
	assert.ErrorIs(t, f.svc.UpdateContractValue(ctx, p.ID, dec("1")), domain.ErrInvalidTransition)

	require.NoError(t, f.svc.Track(ctx, p.ID, dec("120000"), domain.CurrencySAR))
	assert.ErrorIs(t, f.svc.Track(ctx, p.ID, dec("1"), domain.CurrencySAR), domain.ErrInvalidTransition)
	require.NoError(t, f.svc.UpdateContractValue(ctx, p.ID, dec("130000")))
	require.NoError(t, f.svc.Close(ctx, p.ID))

	tp, err = f.svc.GetTracking(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TrackingClosed, tp.Status)
	assert.Equal(t, domain.CurrencySAR, tp.Currency)
	assertDecimal(t, "130000", tp.ContractValue)
	assert.NotNil(t, tp.ActivatedAt)
	assert.NotNil(t, tp.ClosedAt)
}

func TestRevenueService_TrackRejectsBadInput(t *testing.T) {
	f := setupRevenue(t)
	ctx := context.Background()
	p := f.project(t, "Acme")

	assert.ErrorIs(t, f.svc.Track(ctx, p.ID, dec("1"), domain.Currency("XXX")), domain.ErrInvalidCurrency)
	assert.ErrorIs(t, f.svc.Track(ctx, "missing", dec("1"), domain.CurrencyUSD), domain.ErrNotFound)

	tp, err := f.svc.GetTracking(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TrackingUntracked, tp.Status)
}

func TestRevenueService_AddAssignmentValidates(t *testing.T) {
	f := setupRevenue(t)
	ctx := context.Background()
	p := f.project(t, "Acme")
	person := f.person(t, "Ada")

	bad := testutil.NewTestAssignment(person.ID, p.ID)
	bad.EndDate = bad.StartDate.AddDate(0, 0, -1)
	assert.Error(t, f.svc.AddAssignment(ctx, bad))

	assert.ErrorIs(t, f.svc.AddAssignment(ctx, testutil.NewTestAssignment("ghost", p.ID)), domain.ErrNotFound)
	assert.ErrorIs(t, f.svc.AddAssignment(ctx, testutil.NewTestAssignment(person.ID, "ghost")), domain.ErrNotFound)

	good := testutil.NewTestAssignment(person.ID, p.ID)
	good.ID = ""
	require.NoError(t, f.svc.AddAssignment(ctx, good))
	assert.NotEmpty(t, good.ID)

	list, err := f.svc.ListAssignments(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, f.svc.RemoveAssignment(ctx, good.ID))
	list, err = f.svc.ListAssignments(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRevenueService_ProjectRevenue(t *testing.T) {
	f := setupRevenue(t)
	ctx := context.Background()
	p := f.project(t, "Acme")
	ada := f.person(t, "Ada")
	require.NoError(t, f.svc.AddAssignment(ctx, testutil.NewTestAssignment(ada.ID, p.ID, testutil.WithHours(40), testutil.WithCostRate("100"))))

	untracked, err := f.svc.ProjectRevenue(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, untracked.Revenue.IsZero())
	assert.True(t, untracked.TotalCost.IsZero())
	assert.Zero(t, untracked.AssignmentCount)

	require.NoError(t, f.svc.Track(ctx, p.ID, dec("10000"), domain.CurrencyUSD))
	s, err := f.svc.ProjectRevenue(ctx, p.ID)
	require.NoError(t, err)
	assertDecimal(t, "10000", s.Revenue)
	assertDecimal(t, "6000", s.GrossMargin)
	assertDecimal(t, "60", s.MarginPercent)
	assert.Equal(t, 1, s.AssignmentCount)
}

func TestRevenueService_AssociateRevenueSkipsUntracked(t *testing.T) {
	f := setupRevenue(t)
	ctx := context.Background()
	tracked := f.project(t, "Acme")
	untracked := f.project(t, "Beta")
	ada := f.person(t, "Ada")
	require.NoError(t, f.svc.Track(ctx, tracked.ID, dec("50000"), domain.CurrencyUSD))
	require.NoError(t, f.svc.AddAssignment(ctx, testutil.NewTestAssignment(ada.ID, tracked.ID, testutil.WithHours(64), testutil.WithCostRate("109.375"))))
	require.NoError(t, f.svc.AddAssignment(ctx, testutil.NewTestAssignment(ada.ID, untracked.ID, testutil.WithHours(100))))

	s, err := f.svc.AssociateRevenue(ctx, ada.ID)
	require.NoError(t, err)
	assert.Equal(t, 64.0, s.TotalHours)
	assertDecimal(t, "7000", s.TotalCost)
	assert.Equal(t, 1, s.ProjectCount)
	assertDecimal(t, "875", s.AvgCostPerDay)

	_, err = f.svc.AssociateRevenue(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRevenueService_Portfolio(t *testing.T) {
	f := setupRevenue(t)
	ctx := context.Background()
	a := f.project(t, "Acme")
	b := f.project(t, "Beta")
	c := f.project(t, "Coda")
	ada := f.person(t, "Ada")
	require.NoError(t, f.svc.Track(ctx, a.ID, dec("10000"), domain.CurrencyUSD))
	require.NoError(t, f.svc.Track(ctx, b.ID, dec("5000"), domain.CurrencyUSD))
	require.NoError(t, f.svc.Close(ctx, b.ID))
	require.NoError(t, f.svc.AddAssignment(ctx, testutil.NewTestAssignment(ada.ID, a.ID)))
	require.NoError(t, f.svc.AddAssignment(ctx, testutil.NewTestAssignment(ada.ID, c.ID)))

	pf, err := f.svc.Portfolio(ctx)
	require.NoError(t, err)
	assert.Len(t, pf.Projects, 2)
	assertDecimal(t, "15000", pf.Revenue)
	assertDecimal(t, "4000", pf.TotalCost)
	assertDecimal(t, "11000", pf.GrossMargin)
}
