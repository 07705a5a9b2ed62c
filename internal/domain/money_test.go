package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCurrency(t *testing.T) {
	for _, in := range []string{"USD", "sar", " aed "} {
		c, err := ParseCurrency(in)
		require.NoError(t, err, in)
		assert.True(t, c.Valid())
	}
	_, err := ParseCurrency("EUR")
	assert.ErrorIs(t, err, ErrInvalidCurrency)
}

func TestCurrency_SymbolsAndRates(t *testing.T) {
	assert.Equal(t, "$", CurrencyUSD.Symbol())
	assert.Equal(t, "SAR", CurrencySAR.Symbol())
	assert.Equal(t, "AED", CurrencyAED.Symbol())
	assertDecimal(t, "1", CurrencyUSD.PerUSD())
	assertDecimal(t, "3.75", CurrencySAR.PerUSD())
	assertDecimal(t, "3.6725", CurrencyAED.PerUSD())
	assert.Len(t, Currencies(), 3)
}

func TestCurrency_Convert(t *testing.T) {
	assertDecimal(t, "375", CurrencyUSD.Convert(dec("100"), CurrencySAR))
	assertDecimal(t, "100", CurrencySAR.Convert(dec("375"), CurrencyUSD))
	assertDecimal(t, "367.25", CurrencySAR.Convert(dec("375"), CurrencyAED))
	assertDecimal(t, "42", CurrencyAED.Convert(dec("42"), CurrencyAED))
}

func TestNetOfWithholding(t *testing.T) {
	assertDecimal(t, "9500", NetOfWithholding(dec("10000"), dec("5")))
	assertDecimal(t, "10000", NetOfWithholding(dec("10000"), dec("0")))
}

func TestPercent_ZeroGuard(t *testing.T) {
	assertDecimal(t, "0", Percent(dec("500"), dec("0")))
	assertDecimal(t, "0", Percent(dec("-500"), dec("0")))
	assertDecimal(t, "25", Percent(dec("250"), dec("1000")))
}

func TestPercent_KeepsFractionDigits(t *testing.T) {
	assertDecimal(t, "33.3333333333333333", Percent(dec("4500"), dec("13500")))
}

func TestDaysCost(t *testing.T) {
	assertDecimal(t, "7500", DaysCost(5, dec("1500")))
	assertDecimal(t, "750", DaysCost(0.5, dec("1500")))
}
