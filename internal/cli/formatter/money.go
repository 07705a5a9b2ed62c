package formatter

import (
	"github.com/Rhymond/go-money"
	"github.com/alexanderramin/pricebook/internal/domain"
	"github.com/shopspring/decimal"
)

// FormatMoney renders amount with the currency's symbol, grouping and
// minor-unit precision, e.g. "$18,650.00".
func FormatMoney(amount decimal.Decimal, cur domain.Currency) string {
	c := *money.New(0, string(cur)).Currency()
	minor := amount.Shift(int32(c.Fraction)).Round(0)
	return c.Formatter().Format(minor.IntPart())
}

// FormatMoneyIn converts amount from one currency to another through the
// fixed table before formatting it.
func FormatMoneyIn(amount decimal.Decimal, from, to domain.Currency) string {
	return FormatMoney(from.Convert(amount, to), to)
}
