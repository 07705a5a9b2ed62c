package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/pricebook/internal/db"
	"github.com/alexanderramin/pricebook/internal/domain"
)

// SQLiteProjectRepo stores projects with their milestones and tasks.
type SQLiteProjectRepo struct {
	db db.DBTX
}

func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn}
}

const projectColumns = `id, short_id, name, client, status, created_at, updated_at`

// Create inserts the project and any milestones and tasks it already carries.
func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (` + projectColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.ShortID,
		p.Name,
		p.Client,
		string(p.Status),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	for i := range p.Milestones {
		m := &p.Milestones[i]
		m.ProjectID = p.ID
		if err := r.CreateMilestone(ctx, m); err != nil {
			return err
		}
		for j := range m.Tasks {
			m.Tasks[j].MilestoneID = m.ID
			if err := r.CreateTask(ctx, &m.Tasks[j]); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *SQLiteProjectRepo) CreateMilestone(ctx context.Context, m *domain.Milestone) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO milestones (id, project_id, title, order_index, due_date) VALUES (?, ?, ?, ?, ?)`,
		m.ID, m.ProjectID, m.Title, m.OrderIndex, nullableTimeToString(m.DueDate, dateLayout))
	if err != nil {
		return fmt.Errorf("inserting milestone: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) CreateTask(ctx context.Context, t *domain.Task) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (id, milestone_id, title, order_index) VALUES (?, ?, ?, ?)`,
		t.ID, t.MilestoneID, t.Title, t.OrderIndex)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	return r.loadProject(ctx, row, id)
}

// GetByShortID matches case-insensitively.
func (r *SQLiteProjectRepo) GetByShortID(ctx context.Context, shortID string) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE UPPER(short_id) = UPPER(?)`, shortID)
	return r.loadProject(ctx, row, shortID)
}

// List returns projects without their milestones, oldest first.
func (r *SQLiteProjectRepo) List(ctx context.Context, includeArchived bool) ([]*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE status != 'archived' ORDER BY created_at, short_id`
	if includeArchived {
		query = `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at, short_id`
	}
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning project row: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

func (r *SQLiteProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE projects SET short_id = ?, name = ?, client = ?, status = ?, updated_at = ? WHERE id = ?`,
		p.ShortID, p.Name, p.Client, string(p.Status), p.UpdatedAt.Format(time.RFC3339), p.ID)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	return requireAffected(res, "project", p.ID)
}

func (r *SQLiteProjectRepo) Archive(ctx context.Context, id string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := r.db.ExecContext(ctx, `UPDATE projects SET status = 'archived', updated_at = ? WHERE id = ?`, now, id)
	if err != nil {
		return fmt.Errorf("archiving project: %w", err)
	}
	return requireAffected(res, "project", id)
}

// Delete removes the project; milestones, tasks, tracking and assignments
// cascade.
func (r *SQLiteProjectRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return requireAffected(res, "project", id)
}

func (r *SQLiteProjectRepo) loadProject(ctx context.Context, row *sql.Row, key string) (*domain.Project, error) {
	p, err := scanProject(row)
	if err != nil {
		return nil, notFoundOr(err, "project", key, "scanning project")
	}
	if p.Milestones, err = r.listMilestones(ctx, p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *SQLiteProjectRepo) listMilestones(ctx context.Context, projectID string) ([]domain.Milestone, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, project_id, title, order_index, due_date FROM milestones
		 WHERE project_id = ? ORDER BY order_index, title`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing milestones: %w", err)
	}
	var milestones []domain.Milestone
	for rows.Next() {
		var m domain.Milestone
		var due sql.NullString
		if err := rows.Scan(&m.ID, &m.ProjectID, &m.Title, &m.OrderIndex, &due); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning milestone: %w", err)
		}
		m.DueDate = parseNullableTime(due, dateLayout)
		milestones = append(milestones, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating milestones: %w", err)
	}

	// Tasks are read after the milestone cursor is closed; an in-memory
	// database has a single connection.
	for i := range milestones {
		if milestones[i].Tasks, err = r.listTasks(ctx, milestones[i].ID); err != nil {
			return nil, err
		}
	}
	return milestones, nil
}

func (r *SQLiteProjectRepo) listTasks(ctx context.Context, milestoneID string) ([]domain.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, milestone_id, title, order_index FROM tasks WHERE milestone_id = ? ORDER BY order_index, title`, milestoneID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.MilestoneID, &t.Title, &t.OrderIndex); err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func scanProject(s scanner) (*domain.Project, error) {
	var p domain.Project
	var statusStr, createdAtStr, updatedAtStr string
	if err := s.Scan(&p.ID, &p.ShortID, &p.Name, &p.Client, &statusStr, &createdAtStr, &updatedAtStr); err != nil {
		return nil, err
	}
	p.Status = domain.ProjectStatus(statusStr)

	var err error
	if p.CreatedAt, err = parseTime(time.RFC3339, createdAtStr, "created_at"); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(time.RFC3339, updatedAtStr, "updated_at"); err != nil {
		return nil, err
	}
	return &p, nil
}
