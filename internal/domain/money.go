package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencySAR Currency = "SAR"
	CurrencyAED Currency = "AED"
)

type currencyInfo struct {
	symbol string
	perUSD decimal.Decimal
}

// Fixed conversion table. Rates are units of the currency per one USD.
var currencyTable = map[Currency]currencyInfo{
	CurrencyUSD: {symbol: "$", perUSD: decimal.NewFromInt(1)},
	CurrencySAR: {symbol: "SAR", perUSD: decimal.RequireFromString("3.75")},
	CurrencyAED: {symbol: "AED", perUSD: decimal.RequireFromString("3.6725")},
}

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// Currencies lists the supported currencies in display order.
func Currencies() []Currency {
	return []Currency{CurrencyUSD, CurrencySAR, CurrencyAED}
}

// ParseCurrency is case-insensitive.
func ParseCurrency(s string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := currencyTable[c]; !ok {
		return "", fmt.Errorf("%w: %q (want USD, SAR or AED)", ErrInvalidCurrency, s)
	}
	return c, nil
}

func (c Currency) Valid() bool {
	_, ok := currencyTable[c]
	return ok
}

func (c Currency) Symbol() string {
	if info, ok := currencyTable[c]; ok {
		return info.symbol
	}
	return string(c)
}

// PerUSD returns how many units of c one USD buys.
func (c Currency) PerUSD() decimal.Decimal {
	if info, ok := currencyTable[c]; ok {
		return info.perUSD
	}
	return one
}

// Convert re-expresses amount (denominated in c) in the target currency
// using the fixed table. Stored amounts are never converted implicitly.
func (c Currency) Convert(amount decimal.Decimal, to Currency) decimal.Decimal {
	if c == to {
		return amount
	}
	return amount.Div(c.PerUSD()).Mul(to.PerUSD())
}

// MarkedUpRate returns base * (1 + markup/100). Negative and >100%
// markups are accepted.
func MarkedUpRate(base, markupPct decimal.Decimal) decimal.Decimal {
	return base.Mul(one.Add(markupPct.Div(hundred)))
}

// NetOfWithholding returns total * (1 - withholding/100).
func NetOfWithholding(total, withholdingPct decimal.Decimal) decimal.Decimal {
	return total.Mul(one.Sub(withholdingPct.Div(hundred)))
}

// Percent returns part/whole*100, or zero when whole is zero.
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Mul(hundred).Div(whole)
}

// DaysCost multiplies a (possibly fractional) day count by a day rate.
func DaysCost(days float64, rate decimal.Decimal) decimal.Decimal {
	return decimal.NewFromFloat(days).Mul(rate)
}
