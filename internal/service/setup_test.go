package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/pricebook/internal/domain"
	"github.com/alexanderramin/pricebook/internal/repository"
	"github.com/alexanderramin/pricebook/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var fixedNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

type testRepos struct {
	db          *sql.DB
	projects    repository.ProjectRepo
	people      repository.PersonRepo
	pricing     repository.PricingRepo
	tracked     repository.TrackedProjectRepo
	assignments repository.AssignmentRepo
}

func setupRepos(t *testing.T) testRepos {
	t.Helper()
	database := testutil.NewTestDB(t)
	return testRepos{
		db:          database,
		projects:    repository.NewSQLiteProjectRepo(database),
		people:      repository.NewSQLitePersonRepo(database),
		pricing:     repository.NewSQLitePricingRepo(database),
		tracked:     repository.NewSQLiteTrackedProjectRepo(database),
		assignments: repository.NewSQLiteAssignmentRepo(database),
	}
}

func newMemoryPricing() PricingService {
	return NewPricingService(domain.DefaultPricingDefaults(), WithClock(fixedClock))
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func f64(v float64) *float64 { return &v }

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "want %s, got %s", want, got.String())
}

// recordingObserver keeps every event for assertions.
type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingObserver) last() UseCaseEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}
