package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/alexanderramin/pricebook/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
)

// decimalFlag is a pflag.Value for money and percentages.
type decimalFlag struct {
	v decimal.Decimal
}

var _ pflag.Value = (*decimalFlag)(nil)

func (f *decimalFlag) String() string { return f.v.String() }
func (f *decimalFlag) Type() string   { return "decimal" }

func (f *decimalFlag) Set(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid amount %q", s)
	}
	f.v = d
	return nil
}

type currencyFlag struct {
	v domain.Currency
}

func (f *currencyFlag) String() string { return string(f.v) }
func (f *currencyFlag) Type() string   { return "currency" }

func (f *currencyFlag) Set(s string) error {
	c, err := domain.ParseCurrency(s)
	if err != nil {
		return err
	}
	f.v = c
	return nil
}

type timeUnitFlag struct {
	v domain.TimeUnit
}

func (f *timeUnitFlag) String() string { return string(f.v) }
func (f *timeUnitFlag) Type() string   { return "unit" }

func (f *timeUnitFlag) Set(s string) error {
	u, err := domain.ParseTimeUnit(s)
	if err != nil {
		return err
	}
	f.v = u
	return nil
}

// dateFlag parses YYYY-MM-DD.
type dateFlag struct {
	v time.Time
}

func (f *dateFlag) String() string {
	if f.v.IsZero() {
		return ""
	}
	return f.v.Format("2006-01-02")
}
func (f *dateFlag) Type() string { return "date" }

func (f *dateFlag) Set(s string) error {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	f.v = t
	return nil
}

// changed returns a pointer to v when the named flag was given.
func changed[T any](fs *pflag.FlagSet, name string, v T) *T {
	if !fs.Changed(name) {
		return nil
	}
	return &v
}

func parseDays(s string) (float64, error) {
	d, err := strconv.ParseFloat(s, 64)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid days %q", s)
	}
	return d, nil
}
