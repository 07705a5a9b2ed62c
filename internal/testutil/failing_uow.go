package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/alexanderramin/pricebook/internal/db"
)

// FailingExecUoW runs transactions like the real unit of work but fails the
// first ExecContext whose SQL contains Match, so multi-write operations can
// be checked for rollback. Reads pass through.
type FailingExecUoW struct {
	DB    *sql.DB
	Match string
	Err   error

	mu       sync.Mutex
	executed []string
}

func (u *FailingExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	return db.RunTx(ctx, tx, &failingExec{DBTX: tx, uow: u}, fn)
}

// Executed returns the statements that ran before the injected failure.
func (u *FailingExecUoW) Executed() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.executed...)
}

type failingExec struct {
	db.DBTX
	uow    *FailingExecUoW
	failed bool
}

func (f *failingExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if !f.failed && strings.Contains(query, f.uow.Match) {
		f.failed = true
		return nil, f.uow.Err
	}
	f.uow.mu.Lock()
	f.uow.executed = append(f.uow.executed, query)
	f.uow.mu.Unlock()
	return f.DBTX.ExecContext(ctx, query, args...)
}
