package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackedProject_Lifecycle(t *testing.T) {
	tp := &TrackedProject{ProjectID: "proj-1", Status: TrackingUntracked}
	assert.False(t, tp.CountsTowardRevenue())

	require.NoError(t, tp.Activate(dec("120000"), CurrencyUSD, testNow))
	assert.Equal(t, TrackingActive, tp.Status)
	assert.True(t, tp.CountsTowardRevenue())
	require.NotNil(t, tp.ActivatedAt)

	require.NoError(t, tp.UpdateContractValue(dec("150000"), testNow))
	assertDecimal(t, "150000", tp.ContractValue)

	require.NoError(t, tp.Close(testNow.Add(time.Hour)))
	assert.Equal(t, TrackingClosed, tp.Status)
	assert.True(t, tp.CountsTowardRevenue())
	assertDecimal(t, "150000", tp.ContractValue)
}

func TestTrackedProject_InvalidTransitions(t *testing.T) {
	tp := &TrackedProject{ProjectID: "proj-1"}
	assert.ErrorIs(t, tp.Close(testNow), ErrInvalidTransition)
	assert.ErrorIs(t, tp.UpdateContractValue(dec("1"), testNow), ErrInvalidTransition)
	assert.ErrorIs(t, tp.Activate(dec("1"), "EUR", testNow), ErrInvalidCurrency)

	require.NoError(t, tp.Activate(dec("1"), CurrencySAR, testNow))
	assert.ErrorIs(t, tp.Activate(dec("2"), CurrencySAR, testNow), ErrInvalidTransition)

	require.NoError(t, tp.Close(testNow))
	assert.ErrorIs(t, tp.Close(testNow), ErrInvalidTransition)
	assert.ErrorIs(t, tp.UpdateContractValue(dec("3"), testNow), ErrInvalidTransition)
}

func TestAssignment_CostAndValidate(t *testing.T) {
	a := &Assignment{
		PersonID:  "p1",
		ProjectID: "proj-1",
		Hours:     37.5,
		CostRate:  dec("80"),
		StartDate: testNow,
		EndDate:   testNow.AddDate(0, 0, 5),
	}
	assertDecimal(t, "3000", a.Cost())
	assert.NoError(t, a.Validate())

	a.EndDate = testNow.AddDate(0, 0, -1)
	assert.Error(t, a.Validate())

	assert.Error(t, (&Assignment{ProjectID: "x"}).Validate())
	assert.Error(t, (&Assignment{PersonID: "x"}).Validate())
}
