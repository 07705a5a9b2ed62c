// Package costing derives day totals, costs and margins from a project's
// pricing. Every function is pure and recomputes from the pricing it is
// given.
package costing

import "github.com/alexanderramin/pricebook/internal/domain"

type SourceKind string

const (
	SourceLegacyPhase   SourceKind = "phase"
	SourceMilestoneTask SourceKind = "milestone_task"
)

// Allocation is the days one person spends on one piece of work.
type Allocation struct {
	PersonID string
	Days     float64
}

// Source is a unit of the work breakdown that allocates days to people.
// Legacy phases and milestone tasks both implement it so that aggregation
// runs once over either hierarchy.
type Source interface {
	Kind() SourceKind
	Key() string
	Allocations() []Allocation
}

// LegacyPhase walks a phase's workstreams and line items.
type LegacyPhase struct {
	Phase domain.Phase
}

func (s LegacyPhase) Kind() SourceKind { return SourceLegacyPhase }
func (s LegacyPhase) Key() string      { return s.Phase.ID }

func (s LegacyPhase) Allocations() []Allocation {
	var out []Allocation
	for _, ws := range s.Phase.Workstreams {
		for _, li := range ws.LineItems {
			for _, a := range li.Assignees {
				out = append(out, Allocation{PersonID: a.PersonID, Days: a.Days})
			}
		}
	}
	return out
}

// MilestoneTask covers the assignees of one priced task.
type MilestoneTask struct {
	MilestoneID string
	Task        domain.TaskPricing
}

func (s MilestoneTask) Kind() SourceKind { return SourceMilestoneTask }
func (s MilestoneTask) Key() string      { return s.MilestoneID + "/" + s.Task.TaskID }

func (s MilestoneTask) Allocations() []Allocation {
	out := make([]Allocation, 0, len(s.Task.Assignees))
	for _, a := range s.Task.Assignees {
		out = append(out, Allocation{PersonID: a.PersonID, Days: a.Days})
	}
	return out
}

// Sources lists every phase followed by every milestone task.
func Sources(p *domain.ProjectPricing) []Source {
	if p == nil {
		return nil
	}
	var out []Source
	for _, ph := range p.Phases {
		out = append(out, LegacyPhase{Phase: ph})
	}
	for _, m := range p.MilestonePricing {
		for _, t := range m.Tasks {
			out = append(out, MilestoneTask{MilestoneID: m.MilestoneID, Task: t})
		}
	}
	return out
}
