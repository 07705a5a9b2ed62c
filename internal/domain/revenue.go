package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TrackedProject records the contracted value of a project for revenue
// reporting. Untracked projects carry no contract value.
type TrackedProject struct {
	ProjectID     string
	Status        TrackingStatus
	ContractValue decimal.Decimal
	Currency      Currency
	ActivatedAt   *time.Time
	ClosedAt      *time.Time
	UpdatedAt     time.Time
}

// Activate moves an untracked project to active with the given contract value.
func (t *TrackedProject) Activate(contractValue decimal.Decimal, currency Currency, now time.Time) error {
	if t.Status != "" && t.Status != TrackingUntracked {
		return fmt.Errorf("%w: project is already %s", ErrInvalidTransition, t.Status)
	}
	if !currency.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCurrency, currency)
	}
	t.Status = TrackingActive
	t.ContractValue = contractValue
	t.Currency = currency
	t.ActivatedAt = &now
	t.UpdatedAt = now
	return nil
}

// Close moves an active project to closed. The contract value is kept.
func (t *TrackedProject) Close(now time.Time) error {
	if t.Status != TrackingActive {
		return fmt.Errorf("%w: only active projects can be closed (status %s)", ErrInvalidTransition, t.statusOrUntracked())
	}
	t.Status = TrackingClosed
	t.ClosedAt = &now
	t.UpdatedAt = now
	return nil
}

// UpdateContractValue is allowed while the project is active.
func (t *TrackedProject) UpdateContractValue(v decimal.Decimal, now time.Time) error {
	if t.Status != TrackingActive {
		return fmt.Errorf("%w: contract value can only change while active (status %s)", ErrInvalidTransition, t.statusOrUntracked())
	}
	t.ContractValue = v
	t.UpdatedAt = now
	return nil
}

// CountsTowardRevenue reports whether the project takes part in revenue
// aggregates.
func (t *TrackedProject) CountsTowardRevenue() bool {
	return t.Status == TrackingActive || t.Status == TrackingClosed
}

func (t *TrackedProject) statusOrUntracked() TrackingStatus {
	if t.Status == "" {
		return TrackingUntracked
	}
	return t.Status
}

// Assignment staffs a person on a project for a date range. This roster is
// separate from pricing rates.
type Assignment struct {
	ID        string
	PersonID  string
	ProjectID string
	Hours     float64
	CostRate  decimal.Decimal // per hour
	StartDate time.Time
	EndDate   time.Time
	CreatedAt time.Time
}

// Cost returns hours * cost rate.
func (a *Assignment) Cost() decimal.Decimal {
	return decimal.NewFromFloat(a.Hours).Mul(a.CostRate)
}

// Validate checks the fields the store cannot represent.
func (a *Assignment) Validate() error {
	if a.PersonID == "" {
		return fmt.Errorf("assignment person is required")
	}
	if a.ProjectID == "" {
		return fmt.Errorf("assignment project is required")
	}
	if a.EndDate.Before(a.StartDate) {
		return fmt.Errorf("assignment end date %s is before start date %s",
			a.EndDate.Format("2006-01-02"), a.StartDate.Format("2006-01-02"))
	}
	return nil
}
