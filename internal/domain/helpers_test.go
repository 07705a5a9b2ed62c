package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "want %s, got %s", want, got.String())
}

func f64(v float64) *float64 { return &v }

func unit(u TimeUnit) *TimeUnit { return &u }

// newPricingWithLineItem returns a pricing holding one phase, its seeded
// workstream and one line item.
func newPricingWithLineItem(t *testing.T) (*ProjectPricing, string, string, string) {
	t.Helper()
	p := NewProjectPricing("proj-1", DefaultPricingDefaults(), testNow)
	ph := p.AddPhase("Discovery", testNow)
	wsID := ph.Workstreams[0].ID
	li, err := p.AddLineItem(ph.ID, wsID, testNow)
	if err != nil {
		t.Fatalf("adding line item: %v", err)
	}
	return p, ph.ID, wsID, li.ID
}
