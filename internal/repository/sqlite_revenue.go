package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/pricebook/internal/db"
	"github.com/alexanderramin/pricebook/internal/domain"
)

type SQLiteTrackedProjectRepo struct {
	db db.DBTX
}

func NewSQLiteTrackedProjectRepo(conn db.DBTX) *SQLiteTrackedProjectRepo {
	return &SQLiteTrackedProjectRepo{db: conn}
}

const trackedColumns = `project_id, status, contract_value, currency, activated_at, closed_at, updated_at`

func (r *SQLiteTrackedProjectRepo) Get(ctx context.Context, projectID string) (*domain.TrackedProject, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+trackedColumns+` FROM tracked_projects WHERE project_id = ?`, projectID)
	tp, err := scanTrackedProject(row)
	if err != nil {
		return nil, notFoundOr(err, "tracked project", projectID, "scanning tracked project")
	}
	return tp, nil
}

func (r *SQLiteTrackedProjectRepo) Upsert(ctx context.Context, tp *domain.TrackedProject) error {
	status := tp.Status
	if status == "" {
		status = domain.TrackingUntracked
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tracked_projects (`+trackedColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(project_id) DO UPDATE SET
		   status = excluded.status,
		   contract_value = excluded.contract_value,
		   currency = excluded.currency,
		   activated_at = excluded.activated_at,
		   closed_at = excluded.closed_at,
		   updated_at = excluded.updated_at`,
		tp.ProjectID,
		string(status),
		tp.ContractValue.String(),
		domain.CoalesceStr(string(tp.Currency), string(domain.CurrencyUSD)),
		nullableTimeToString(tp.ActivatedAt, time.RFC3339),
		nullableTimeToString(tp.ClosedAt, time.RFC3339),
		tp.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting tracked project: %w", err)
	}
	return nil
}

func (r *SQLiteTrackedProjectRepo) List(ctx context.Context) ([]*domain.TrackedProject, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+trackedColumns+` FROM tracked_projects ORDER BY project_id`)
	if err != nil {
		return nil, fmt.Errorf("listing tracked projects: %w", err)
	}
	defer rows.Close()

	var out []*domain.TrackedProject
	for rows.Next() {
		tp, err := scanTrackedProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning tracked project row: %w", err)
		}
		out = append(out, tp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tracked projects: %w", err)
	}
	return out, nil
}

func scanTrackedProject(s scanner) (*domain.TrackedProject, error) {
	var tp domain.TrackedProject
	var status, value, currency, updatedAt string
	var activatedAt, closedAt sql.NullString
	if err := s.Scan(&tp.ProjectID, &status, &value, &currency, &activatedAt, &closedAt, &updatedAt); err != nil {
		return nil, err
	}
	tp.Status = domain.TrackingStatus(status)
	tp.Currency = domain.Currency(currency)
	tp.ActivatedAt = parseNullableTime(activatedAt, time.RFC3339)
	tp.ClosedAt = parseNullableTime(closedAt, time.RFC3339)

	var err error
	if tp.ContractValue, err = parseAmount(value, "contract_value"); err != nil {
		return nil, err
	}
	if tp.UpdatedAt, err = parseTime(time.RFC3339, updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &tp, nil
}

type SQLiteAssignmentRepo struct {
	db db.DBTX
}

func NewSQLiteAssignmentRepo(conn db.DBTX) *SQLiteAssignmentRepo {
	return &SQLiteAssignmentRepo{db: conn}
}

const assignmentColumns = `id, person_id, project_id, hours, cost_rate, start_date, end_date, created_at`

func (r *SQLiteAssignmentRepo) Create(ctx context.Context, a *domain.Assignment) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO assignments (`+assignmentColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.PersonID, a.ProjectID, a.Hours, a.CostRate.String(),
		a.StartDate.Format(dateLayout), a.EndDate.Format(dateLayout), a.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting assignment: %w", err)
	}
	return nil
}

func (r *SQLiteAssignmentRepo) GetByID(ctx context.Context, id string) (*domain.Assignment, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+assignmentColumns+` FROM assignments WHERE id = ?`, id)
	a, err := scanAssignment(row)
	if err != nil {
		return nil, notFoundOr(err, "assignment", id, "scanning assignment")
	}
	return a, nil
}

func (r *SQLiteAssignmentRepo) List(ctx context.Context) ([]*domain.Assignment, error) {
	return r.query(ctx, `SELECT `+assignmentColumns+` FROM assignments ORDER BY start_date, id`)
}

func (r *SQLiteAssignmentRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Assignment, error) {
	return r.query(ctx, `SELECT `+assignmentColumns+` FROM assignments WHERE project_id = ? ORDER BY start_date, id`, projectID)
}

func (r *SQLiteAssignmentRepo) ListByPerson(ctx context.Context, personID string) ([]*domain.Assignment, error) {
	return r.query(ctx, `SELECT `+assignmentColumns+` FROM assignments WHERE person_id = ? ORDER BY start_date, id`, personID)
}

func (r *SQLiteAssignmentRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM assignments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting assignment: %w", err)
	}
	return requireAffected(res, "assignment", id)
}

func (r *SQLiteAssignmentRepo) query(ctx context.Context, query string, args ...any) ([]*domain.Assignment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing assignments: %w", err)
	}
	defer rows.Close()

	var out []*domain.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning assignment row: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assignments: %w", err)
	}
	return out, nil
}

func scanAssignment(s scanner) (*domain.Assignment, error) {
	var a domain.Assignment
	var rate, start, end, created string
	if err := s.Scan(&a.ID, &a.PersonID, &a.ProjectID, &a.Hours, &rate, &start, &end, &created); err != nil {
		return nil, err
	}
	var err error
	if a.CostRate, err = parseAmount(rate, "cost_rate"); err != nil {
		return nil, err
	}
	if a.StartDate, err = parseTime(dateLayout, start, "start_date"); err != nil {
		return nil, err
	}
	if a.EndDate, err = parseTime(dateLayout, end, "end_date"); err != nil {
		return nil, err
	}
	if a.CreatedAt, err = parseTime(time.RFC3339, created, "created_at"); err != nil {
		return nil, err
	}
	return &a, nil
}
