package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/pricebook/internal/db"
	"github.com/alexanderramin/pricebook/internal/domain"
)

type SQLitePersonRepo struct {
	db db.DBTX
}

func NewSQLitePersonRepo(conn db.DBTX) *SQLitePersonRepo {
	return &SQLitePersonRepo{db: conn}
}

func (r *SQLitePersonRepo) Create(ctx context.Context, p *domain.Person) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO people (id, name, title, created_at) VALUES (?, ?, ?, ?)`,
		p.ID, p.Name, p.Title, p.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting person: %w", err)
	}
	return nil
}

func (r *SQLitePersonRepo) GetByID(ctx context.Context, id string) (*domain.Person, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, title, created_at FROM people WHERE id = ?`, id)
	p, err := scanPerson(row)
	if err != nil {
		return nil, notFoundOr(err, "person", id, "scanning person")
	}
	return p, nil
}

// List orders people by name.
func (r *SQLitePersonRepo) List(ctx context.Context) ([]*domain.Person, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, title, created_at FROM people ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("listing people: %w", err)
	}
	defer rows.Close()

	var people []*domain.Person
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning person row: %w", err)
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating people: %w", err)
	}
	return people, nil
}

func (r *SQLitePersonRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM people WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting person: %w", err)
	}
	return requireAffected(res, "person", id)
}

func scanPerson(s scanner) (*domain.Person, error) {
	var p domain.Person
	var createdAtStr string
	if err := s.Scan(&p.ID, &p.Name, &p.Title, &createdAtStr); err != nil {
		return nil, err
	}
	var err error
	if p.CreatedAt, err = parseTime(time.RFC3339, createdAtStr, "created_at"); err != nil {
		return nil, err
	}
	return &p, nil
}
