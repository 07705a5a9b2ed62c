package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrNotPriceable      = errors.New("pricing needs at least one phase before it can be marked priced")
	ErrDerivedDays       = errors.New("days are derived from periods for this time unit")
	ErrInvalidCurrency   = errors.New("invalid currency")
	ErrInvalidTimeUnit   = errors.New("invalid time unit")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// NotFoundError identifies the missing entity. It matches ErrNotFound
// under errors.Is.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func notFound(kind, id string) error {
	return &NotFoundError{Kind: kind, ID: id}
}
