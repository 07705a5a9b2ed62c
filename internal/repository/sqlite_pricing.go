package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/pricebook/internal/db"
	"github.com/alexanderramin/pricebook/internal/domain"
)

// SQLitePricingRepo keeps each ProjectPricing as a JSON document. Status and
// currency are copied into columns for listing without decoding.
type SQLitePricingRepo struct {
	db db.DBTX
}

func NewSQLitePricingRepo(conn db.DBTX) *SQLitePricingRepo {
	return &SQLitePricingRepo{db: conn}
}

func (r *SQLitePricingRepo) Get(ctx context.Context, projectID string) (*domain.ProjectPricing, error) {
	var doc string
	err := r.db.QueryRowContext(ctx, `SELECT document FROM project_pricing WHERE project_id = ?`, projectID).Scan(&doc)
	if err != nil {
		return nil, notFoundOr(err, "pricing", projectID, "loading pricing")
	}
	return decodePricing(doc)
}

// Save inserts or replaces the document for p.ProjectID.
func (r *SQLitePricingRepo) Save(ctx context.Context, p *domain.ProjectPricing) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding pricing: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO project_pricing (project_id, status, currency, document, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(project_id) DO UPDATE SET
		   status = excluded.status,
		   currency = excluded.currency,
		   document = excluded.document,
		   updated_at = excluded.updated_at`,
		p.ProjectID, string(p.Status), string(p.Currency), string(doc), p.UpdatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("saving pricing: %w", err)
	}
	return nil
}

func (r *SQLitePricingRepo) Delete(ctx context.Context, projectID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM project_pricing WHERE project_id = ?`, projectID)
	if err != nil {
		return fmt.Errorf("deleting pricing: %w", err)
	}
	return requireAffected(res, "pricing", projectID)
}

func (r *SQLitePricingRepo) List(ctx context.Context) ([]*domain.ProjectPricing, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT document FROM project_pricing ORDER BY project_id`)
	if err != nil {
		return nil, fmt.Errorf("listing pricings: %w", err)
	}
	defer rows.Close()

	var out []*domain.ProjectPricing
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scanning pricing row: %w", err)
		}
		p, err := decodePricing(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pricings: %w", err)
	}
	return out, nil
}

func decodePricing(doc string) (*domain.ProjectPricing, error) {
	var p domain.ProjectPricing
	if err := json.Unmarshal([]byte(doc), &p); err != nil {
		return nil, fmt.Errorf("decoding pricing: %w", err)
	}
	return &p, nil
}
