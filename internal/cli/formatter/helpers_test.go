package formatter

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatDays(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{5, "5"},
		{2.5, "2.5"},
		{0.25, "0.25"},
		{1.0 / 3, "0.33"},
		{12, "12"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDays(tt.in))
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "50%", FormatPercent(decimal.NewFromInt(50)))
	assert.Equal(t, "33.3%", FormatPercent(decimal.RequireFromString("33.3333")))
	assert.Equal(t, "-12.5%", FormatPercent(decimal.RequireFromString("-12.5")))
}

func TestTruncID(t *testing.T) {
	assert.Contains(t, TruncID("12345678-aaaa-bbbb"), "12345678")
	assert.NotContains(t, TruncID("12345678-aaaa-bbbb"), "aaaa")
	assert.Contains(t, TruncID("p1"), "p1")
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Mar 9, 2025", FormatDate(&d))
	assert.Contains(t, FormatDate(nil), "--")
}

func TestLabel_PadsToWidth(t *testing.T) {
	assert.Equal(t, "ID    "+"  "+"x", Label("id", 6, "x"))
}
