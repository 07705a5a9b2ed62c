package domain

import (
	"fmt"
	"regexp"
	"time"
)

var shortIDPattern = regexp.MustCompile(`^[A-Z]{3,6}[0-9]{2,4}$`)

// Project is the externally owned project record. Pricing reads its
// milestone and task ids but never writes them.
type Project struct {
	ID         string
	ShortID    string
	Name       string
	Client     string
	Status     ProjectStatus
	Milestones []Milestone
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Milestone struct {
	ID         string
	ProjectID  string
	Title      string
	OrderIndex int
	DueDate    *time.Time
	Tasks      []Task
}

type Task struct {
	ID          string
	MilestoneID string
	Title       string
	OrderIndex  int
}

// Person is an associate that can be staffed or priced. Only the id takes
// part in arithmetic; the name is for display joins.
type Person struct {
	ID        string
	Name      string
	Title     string
	CreatedAt time.Time
}

// ValidateShortID checks that ShortID is non-empty and matches the required
// format: 3-6 uppercase letters followed by 2-4 digits (e.g. ACME01, RIY0234).
func (p *Project) ValidateShortID() error {
	if p.ShortID == "" {
		return fmt.Errorf("short ID is required (use --id flag)")
	}
	if !shortIDPattern.MatchString(p.ShortID) {
		return fmt.Errorf("short ID %q must be 3-6 uppercase letters followed by 2-4 digits (e.g. ACME01)", p.ShortID)
	}
	return nil
}

// DisplayID returns the best short identifier for display.
// It prefers ShortID; if empty it truncates ID to 8 characters.
func (p *Project) DisplayID() string {
	if p.ShortID != "" {
		return p.ShortID
	}
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}

// FindMilestone returns the milestone with the given id, or nil.
func (p *Project) FindMilestone(id string) *Milestone {
	for i := range p.Milestones {
		if p.Milestones[i].ID == id {
			return &p.Milestones[i]
		}
	}
	return nil
}

// HasTask reports whether taskID belongs to milestoneID in this project.
func (p *Project) HasTask(milestoneID, taskID string) bool {
	m := p.FindMilestone(milestoneID)
	if m == nil {
		return false
	}
	for _, t := range m.Tasks {
		if t.ID == taskID {
			return true
		}
	}
	return false
}
