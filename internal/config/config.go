// Package config reads runtime settings from the environment.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/alexanderramin/pricebook/internal/domain"
	"github.com/shopspring/decimal"
)

// Config holds everything main needs to wire the application.
type Config struct {
	DBPath      string
	LogUseCases bool
	Pricing     domain.PricingDefaults
	HoursPerDay float64
}

// DefaultConfig returns the built-in settings. The database lives under
// the user's home directory when it can be found.
func DefaultConfig() Config {
	dbPath := "pricebook.db"
	if home, err := os.UserHomeDir(); err == nil {
		dbPath = filepath.Join(home, ".pricebook", "pricebook.db")
	}
	return Config{
		DBPath:      dbPath,
		Pricing:     domain.DefaultPricingDefaults(),
		HoursPerDay: 8,
	}
}

// LoadConfig reads configuration from environment variables, falling back
// to defaults for any unset or invalid values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("PRICEBOOK_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("PRICEBOOK_LOG_USECASES"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("PRICEBOOK_CURRENCY"); v != "" {
		if c, err := domain.ParseCurrency(v); err == nil {
			cfg.Pricing.Currency = c
		}
	}
	applyAmountEnv(&cfg.Pricing.DefaultAccommodation, "PRICEBOOK_DEFAULT_ACCOMMODATION")
	applyAmountEnv(&cfg.Pricing.DefaultPerDiem, "PRICEBOOK_DEFAULT_PER_DIEM")
	if v := os.Getenv("PRICEBOOK_HOURS_PER_DAY"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 && f <= 24 {
			cfg.HoursPerDay = f
		}
	}

	return cfg
}

func applyAmountEnv(dst *decimal.Decimal, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	d, err := decimal.NewFromString(v)
	if err != nil || d.IsNegative() {
		return
	}
	*dst = d
}
