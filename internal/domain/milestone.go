package domain

import (
	"slices"
	"time"
)

// MilestonePricing prices the tasks of one project milestone. Ids refer to
// the project record; pricing never owns the milestone or its tasks.
type MilestonePricing struct {
	MilestoneID string        `json:"milestoneId"`
	Tasks       []TaskPricing `json:"tasks"`
}

// TaskPricing carries the period settings shared by every assignee on the
// task.
type TaskPricing struct {
	TaskID          string         `json:"taskId"`
	TimeUnit        TimeUnit       `json:"timeUnit"`
	NumberOfPeriods *float64       `json:"numberOfPeriods,omitempty"`
	Assignees       []TaskAssignee `json:"assignees"`
}

type TaskAssignee struct {
	PersonID      string   `json:"personId"`
	Days          float64  `json:"days"`
	DaysPerPeriod *float64 `json:"daysPerPeriod,omitempty"`
}

// TaskSettingsUpdate is a partial update of a task's period settings.
type TaskSettingsUpdate struct {
	TimeUnit        *TimeUnit
	NumberOfPeriods *float64
}

// TaskAssigneeUpdate is a partial update of one task assignee.
type TaskAssigneeUpdate struct {
	Days          *float64
	DaysPerPeriod *float64
}

func (m MilestonePricing) clone() MilestonePricing {
	m.Tasks = cloneEach(m.Tasks, TaskPricing.clone)
	return m
}

func (t TaskPricing) clone() TaskPricing {
	t.NumberOfPeriods = clonePtr(t.NumberOfPeriods)
	t.Assignees = cloneEach(t.Assignees, func(a TaskAssignee) TaskAssignee {
		a.DaysPerPeriod = clonePtr(a.DaysPerPeriod)
		return a
	})
	return t
}

// recomputeDays applies the task's periods to every assignee.
func (t *TaskPricing) recomputeDays() {
	if !t.TimeUnit.IsDerived() {
		return
	}
	periods := Float64FromPtrWithDefault(0, t.NumberOfPeriods)
	for i := range t.Assignees {
		t.Assignees[i].Days = Float64FromPtrWithDefault(0, t.Assignees[i].DaysPerPeriod) * periods
	}
}

func (t *TaskPricing) assignee(personID string) *TaskAssignee {
	for i := range t.Assignees {
		if t.Assignees[i].PersonID == personID {
			return &t.Assignees[i]
		}
	}
	return nil
}

// AddTaskAssignee adds personID to the task, creating the milestone and
// task pricing records on first use. Existing assignees are left as is.
func (p *ProjectPricing) AddTaskAssignee(milestoneID, taskID, personID string, now time.Time) error {
	t := p.ensureTask(milestoneID, taskID)
	if t.assignee(personID) != nil {
		return nil
	}
	t.Assignees = append(t.Assignees, TaskAssignee{PersonID: personID})
	t.recomputeDays()
	p.ensureRate(personID)
	p.markInProgress()
	p.touch(now)
	return nil
}

// UpdateTaskAssignee sets days (full unit only) or days per period.
func (p *ProjectPricing) UpdateTaskAssignee(milestoneID, taskID, personID string, u TaskAssigneeUpdate, now time.Time) error {
	t, err := p.task(milestoneID, taskID)
	if err != nil {
		return err
	}
	a := t.assignee(personID)
	if a == nil {
		return notFound("task assignee", personID)
	}
	if u.Days != nil && t.TimeUnit.IsDerived() {
		return ErrDerivedDays
	}
	if u.DaysPerPeriod != nil {
		a.DaysPerPeriod = clonePtr(u.DaysPerPeriod)
	}
	if u.Days != nil {
		a.Days = *u.Days
	}
	t.recomputeDays()
	p.touch(now)
	return nil
}

// UpdateTaskSettings merges u and recomputes days for every assignee on
// the task.
func (p *ProjectPricing) UpdateTaskSettings(milestoneID, taskID string, u TaskSettingsUpdate, now time.Time) error {
	if u.TimeUnit != nil {
		if _, err := ParseTimeUnit(string(*u.TimeUnit)); err != nil {
			return err
		}
	}
	t, err := p.task(milestoneID, taskID)
	if err != nil {
		return err
	}
	if u.TimeUnit != nil {
		t.TimeUnit = *u.TimeUnit
	}
	if u.NumberOfPeriods != nil {
		t.NumberOfPeriods = clonePtr(u.NumberOfPeriods)
	}
	t.recomputeDays()
	p.touch(now)
	return nil
}

// RemoveTaskAssignee drops personID from the task. A task left without
// assignees is dropped with it, as is a milestone left without tasks.
func (p *ProjectPricing) RemoveTaskAssignee(milestoneID, taskID, personID string, now time.Time) error {
	t, err := p.task(milestoneID, taskID)
	if err != nil {
		return err
	}
	i := slices.IndexFunc(t.Assignees, func(a TaskAssignee) bool { return a.PersonID == personID })
	if i < 0 {
		return notFound("task assignee", personID)
	}
	t.Assignees = slices.Delete(t.Assignees, i, i+1)
	if len(t.Assignees) == 0 {
		p.pruneTask(milestoneID, taskID)
	}
	p.refreshStatus()
	p.touch(now)
	return nil
}

func (p *ProjectPricing) pruneTask(milestoneID, taskID string) {
	mi := slices.IndexFunc(p.MilestonePricing, func(m MilestonePricing) bool { return m.MilestoneID == milestoneID })
	if mi < 0 {
		return
	}
	m := &p.MilestonePricing[mi]
	m.Tasks = slices.DeleteFunc(m.Tasks, func(t TaskPricing) bool { return t.TaskID == taskID })
	if len(m.Tasks) == 0 {
		p.MilestonePricing = slices.Delete(p.MilestonePricing, mi, mi+1)
	}
}

// RemoveTaskPricing drops the task's pricing record and its assignees.
func (p *ProjectPricing) RemoveTaskPricing(milestoneID, taskID string, now time.Time) error {
	m, err := p.milestone(milestoneID)
	if err != nil {
		return err
	}
	i := slices.IndexFunc(m.Tasks, func(t TaskPricing) bool { return t.TaskID == taskID })
	if i < 0 {
		return notFound("task", taskID)
	}
	m.Tasks = slices.Delete(m.Tasks, i, i+1)
	p.refreshStatus()
	p.touch(now)
	return nil
}

// RemoveMilestonePricing drops the milestone's pricing and all its tasks.
func (p *ProjectPricing) RemoveMilestonePricing(milestoneID string, now time.Time) error {
	i := slices.IndexFunc(p.MilestonePricing, func(m MilestonePricing) bool { return m.MilestoneID == milestoneID })
	if i < 0 {
		return notFound("milestone", milestoneID)
	}
	p.MilestonePricing = slices.Delete(p.MilestonePricing, i, i+1)
	p.refreshStatus()
	p.touch(now)
	return nil
}

// FindTask returns the task pricing record, or nil.
func (p *ProjectPricing) FindTask(milestoneID, taskID string) *TaskPricing {
	t, _ := p.task(milestoneID, taskID)
	return t
}

func (p *ProjectPricing) milestone(milestoneID string) (*MilestonePricing, error) {
	for i := range p.MilestonePricing {
		if p.MilestonePricing[i].MilestoneID == milestoneID {
			return &p.MilestonePricing[i], nil
		}
	}
	return nil, notFound("milestone", milestoneID)
}

func (p *ProjectPricing) task(milestoneID, taskID string) (*TaskPricing, error) {
	m, err := p.milestone(milestoneID)
	if err != nil {
		return nil, err
	}
	for i := range m.Tasks {
		if m.Tasks[i].TaskID == taskID {
			return &m.Tasks[i], nil
		}
	}
	return nil, notFound("task", taskID)
}

func (p *ProjectPricing) ensureTask(milestoneID, taskID string) *TaskPricing {
	m, err := p.milestone(milestoneID)
	if err != nil {
		p.MilestonePricing = append(p.MilestonePricing, MilestonePricing{MilestoneID: milestoneID})
		m = &p.MilestonePricing[len(p.MilestonePricing)-1]
	}
	for i := range m.Tasks {
		if m.Tasks[i].TaskID == taskID {
			return &m.Tasks[i]
		}
	}
	m.Tasks = append(m.Tasks, TaskPricing{TaskID: taskID, TimeUnit: TimeUnitFull})
	return &m.Tasks[len(m.Tasks)-1]
}
