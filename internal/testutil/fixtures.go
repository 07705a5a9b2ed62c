package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/pricebook/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var testShortIDCounter atomic.Int64

// Project options
type ProjectOption func(*domain.Project)

func WithShortID(id string) ProjectOption {
	return func(p *domain.Project) {
		p.ShortID = id
	}
}

func WithClient(c string) ProjectOption {
	return func(p *domain.Project) {
		p.Client = c
	}
}

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

// WithMilestone appends a milestone holding one task per title.
func WithMilestone(title string, taskTitles ...string) ProjectOption {
	return func(p *domain.Project) {
		m := domain.Milestone{
			ID:         uuid.New().String(),
			ProjectID:  p.ID,
			Title:      title,
			OrderIndex: len(p.Milestones),
		}
		for i, tt := range taskTitles {
			m.Tasks = append(m.Tasks, domain.Task{
				ID: uuid.New().String(), MilestoneID: m.ID, Title: tt, OrderIndex: i,
			})
		}
		p.Milestones = append(p.Milestones, m)
	}
}

func defaultShortID(name string) string {
	upper := strings.ToUpper(name)
	var letters []byte
	for i := 0; i < len(upper) && len(letters) < 3; i++ {
		if upper[i] >= 'A' && upper[i] <= 'Z' {
			letters = append(letters, upper[i])
		}
	}
	for len(letters) < 3 {
		letters = append(letters, 'X')
	}
	n := testShortIDCounter.Add(1)
	return fmt.Sprintf("%s%02d", string(letters), n)
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC().Truncate(time.Second)
	p := &domain.Project{
		ID:        uuid.New().String(),
		ShortID:   defaultShortID(name),
		Name:      name,
		Status:    domain.ProjectActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func NewTestPerson(name string) *domain.Person {
	return &domain.Person{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

// Assignment options
type AssignmentOption func(*domain.Assignment)

func WithHours(h float64) AssignmentOption {
	return func(a *domain.Assignment) {
		a.Hours = h
	}
}

func WithCostRate(r string) AssignmentOption {
	return func(a *domain.Assignment) {
		a.CostRate = decimal.RequireFromString(r)
	}
}

func WithDates(start, end time.Time) AssignmentOption {
	return func(a *domain.Assignment) {
		a.StartDate = start
		a.EndDate = end
	}
}

// NewTestAssignment defaults to 40 hours at 100 per hour over one week.
func NewTestAssignment(personID, projectID string, opts ...AssignmentOption) *domain.Assignment {
	now := time.Now().UTC().Truncate(time.Second)
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	a := &domain.Assignment{
		ID:        uuid.New().String(),
		PersonID:  personID,
		ProjectID: projectID,
		Hours:     40,
		CostRate:  decimal.NewFromInt(100),
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 6),
		CreatedAt: now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}
