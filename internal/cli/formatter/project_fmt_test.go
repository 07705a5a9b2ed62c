package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/pricebook/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatProjectList_UsesShortIDWhenPresent(t *testing.T) {
	projects := []*domain.Project{{
		ID:      "12345678-aaaa-bbbb-cccc-1234567890ab",
		ShortID: "ACME01",
		Name:    "Acme Rollout",
		Client:  "Acme Corp",
		Status:  domain.ProjectActive,
	}}

	out := FormatProjectList(projects)

	assert.Contains(t, out, "ACME01")
	assert.Contains(t, out, "Acme Corp")
	assert.NotContains(t, out, "12345678")
}

func TestFormatProjectList_FallsBackToUUIDPrefix(t *testing.T) {
	out := FormatProjectList([]*domain.Project{{ID: "abcdef12-3456-7890", Name: "X", Status: domain.ProjectArchived}})

	assert.Contains(t, out, "abcdef12")
	assert.Contains(t, out, "Archived")
}

func TestFormatProjectInspect_ShowsMilestoneTree(t *testing.T) {
	due := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	p := &domain.Project{
		ID: "proj-1", ShortID: "ACME01", Name: "Acme Rollout", Status: domain.ProjectActive,
		Milestones: []domain.Milestone{{
			ID: "m1", Title: "Kickoff", DueDate: &due,
			Tasks: []domain.Task{{ID: "t1", Title: "Interviews"}, {ID: "t2", Title: "Workshop"}},
		}},
	}

	out := FormatProjectInspect(p)

	assert.Contains(t, out, "Kickoff")
	assert.Contains(t, out, "due Sep 1")
	assert.Contains(t, out, "├─ Interviews")
	assert.Contains(t, out, "└─ Workshop")
}

func TestFormatPeople(t *testing.T) {
	out := FormatPeople([]*domain.Person{{ID: "p1", Name: "Ada", Title: "Principal"}, {ID: "p2", Name: "Grace"}})

	assert.Contains(t, out, "Ada")
	assert.Contains(t, out, "Principal")
	assert.Contains(t, out, "--")
}
