package domain

import "fmt"

type PricingStatus string

const (
	PricingNotPriced  PricingStatus = "not-priced"
	PricingInProgress PricingStatus = "in-progress"
	PricingPriced     PricingStatus = "priced"
)

// TimeUnit describes how the days of an assignment are entered.
// Anything other than TimeUnitFull derives days from periods.
type TimeUnit string

const (
	TimeUnitFull  TimeUnit = "full"
	TimeUnitWeek  TimeUnit = "week"
	TimeUnitMonth TimeUnit = "month"
)

// ParseTimeUnit accepts "full", "week" or "month".
func ParseTimeUnit(s string) (TimeUnit, error) {
	switch TimeUnit(s) {
	case TimeUnitFull, TimeUnitWeek, TimeUnitMonth:
		return TimeUnit(s), nil
	}
	return "", fmt.Errorf("%w: %q (want full, week or month)", ErrInvalidTimeUnit, s)
}

// IsDerived reports whether days are computed as daysPerPeriod * numberOfPeriods.
func (u TimeUnit) IsDerived() bool {
	return u != "" && u != TimeUnitFull
}

type TrackingStatus string

const (
	TrackingUntracked TrackingStatus = "untracked"
	TrackingActive    TrackingStatus = "active"
	TrackingClosed    TrackingStatus = "closed"
)

type ProjectStatus string

const (
	ProjectActive   ProjectStatus = "active"
	ProjectArchived ProjectStatus = "archived"
)
