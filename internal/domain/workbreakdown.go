package domain

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
)

type Phase struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Workstreams []Workstream `json:"workstreams"`
}

type Workstream struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Number    int        `json:"number"`
	LineItems []LineItem `json:"lineItems"`
}

type LineItem struct {
	ID          string             `json:"id"`
	Number      string             `json:"number"`
	Description string             `json:"description"`
	StartDate   *time.Time         `json:"startDate,omitempty"`
	EndDate     *time.Time         `json:"endDate,omitempty"`
	Assignees   []LineItemAssignee `json:"assignees"`
}

// LineItemAssignee prices one person on one line item. For week/month
// units Days always equals DaysPerPeriod * NumberOfPeriods.
type LineItemAssignee struct {
	PersonID        string   `json:"personId"`
	Days            float64  `json:"days"`
	TimeUnit        TimeUnit `json:"timeUnit"`
	DaysPerPeriod   *float64 `json:"daysPerPeriod,omitempty"`
	NumberOfPeriods *float64 `json:"numberOfPeriods,omitempty"`
}

// TimeUnitUpdate is a partial update of an assignee's period settings.
type TimeUnitUpdate struct {
	TimeUnit        *TimeUnit
	DaysPerPeriod   *float64
	NumberOfPeriods *float64
}

// LineItemUpdate is a partial update of a line item's details.
type LineItemUpdate struct {
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
}

func (ph Phase) clone() Phase {
	ph.Workstreams = cloneEach(ph.Workstreams, Workstream.clone)
	return ph
}

func (w Workstream) clone() Workstream {
	w.LineItems = cloneEach(w.LineItems, LineItem.clone)
	return w
}

func (li LineItem) clone() LineItem {
	li.StartDate = clonePtr(li.StartDate)
	li.EndDate = clonePtr(li.EndDate)
	li.Assignees = cloneEach(li.Assignees, LineItemAssignee.clone)
	return li
}

func (a LineItemAssignee) clone() LineItemAssignee {
	a.DaysPerPeriod = clonePtr(a.DaysPerPeriod)
	a.NumberOfPeriods = clonePtr(a.NumberOfPeriods)
	return a
}

func (a *LineItemAssignee) recomputeDays() {
	if a.TimeUnit.IsDerived() {
		a.Days = Float64FromPtrWithDefault(0, a.DaysPerPeriod) * Float64FromPtrWithDefault(0, a.NumberOfPeriods)
	}
}

func newWorkstream(number int) Workstream {
	return Workstream{
		ID:     uuid.New().String(),
		Name:   fmt.Sprintf("Workstream %d", number),
		Number: number,
	}
}

// AddPhase appends a phase seeded with one workstream numbered 1.
func (p *ProjectPricing) AddPhase(name string, now time.Time) Phase {
	ph := Phase{
		ID:          uuid.New().String(),
		Name:        name,
		Workstreams: []Workstream{newWorkstream(1)},
	}
	p.Phases = append(p.Phases, ph)
	p.markInProgress()
	p.touch(now)
	return ph.clone()
}

func (p *ProjectPricing) RenamePhase(phaseID, name string, now time.Time) error {
	ph, err := p.phase(phaseID)
	if err != nil {
		return err
	}
	ph.Name = name
	p.touch(now)
	return nil
}

// DeletePhase removes the phase and everything under it.
func (p *ProjectPricing) DeletePhase(phaseID string, now time.Time) error {
	i := slices.IndexFunc(p.Phases, func(ph Phase) bool { return ph.ID == phaseID })
	if i < 0 {
		return notFound("phase", phaseID)
	}
	p.Phases = slices.Delete(p.Phases, i, i+1)
	p.refreshStatus()
	p.touch(now)
	return nil
}

func (p *ProjectPricing) AddWorkstream(phaseID string, now time.Time) (Workstream, error) {
	ph, err := p.phase(phaseID)
	if err != nil {
		return Workstream{}, err
	}
	ws := newWorkstream(len(ph.Workstreams) + 1)
	ph.Workstreams = append(ph.Workstreams, ws)
	p.touch(now)
	return ws, nil
}

func (p *ProjectPricing) RenameWorkstream(phaseID, workstreamID, name string, now time.Time) error {
	ws, err := p.workstream(phaseID, workstreamID)
	if err != nil {
		return err
	}
	ws.Name = name
	p.touch(now)
	return nil
}

// DeleteWorkstream removes the workstream and renumbers the survivors,
// rewriting their line item codes.
func (p *ProjectPricing) DeleteWorkstream(phaseID, workstreamID string, now time.Time) error {
	ph, err := p.phase(phaseID)
	if err != nil {
		return err
	}
	i := slices.IndexFunc(ph.Workstreams, func(w Workstream) bool { return w.ID == workstreamID })
	if i < 0 {
		return notFound("workstream", workstreamID)
	}
	ph.Workstreams = RenumberWorkstreams(slices.Delete(ph.Workstreams, i, i+1))
	p.touch(now)
	return nil
}

func (p *ProjectPricing) AddLineItem(phaseID, workstreamID string, now time.Time) (LineItem, error) {
	ws, err := p.workstream(phaseID, workstreamID)
	if err != nil {
		return LineItem{}, err
	}
	li := LineItem{
		ID:     uuid.New().String(),
		Number: LineItemCode(ws.Number, len(ws.LineItems)+1),
	}
	ws.LineItems = append(ws.LineItems, li)
	p.touch(now)
	return li, nil
}

// UpdateLineItem merges u. Dates are truncated to the calendar day.
func (p *ProjectPricing) UpdateLineItem(phaseID, workstreamID, lineItemID string, u LineItemUpdate, now time.Time) error {
	li, err := p.lineItem(phaseID, workstreamID, lineItemID)
	if err != nil {
		return err
	}
	if u.Description != nil {
		li.Description = *u.Description
	}
	if u.StartDate != nil {
		d := dateOnly(*u.StartDate)
		li.StartDate = &d
	}
	if u.EndDate != nil {
		d := dateOnly(*u.EndDate)
		li.EndDate = &d
	}
	p.touch(now)
	return nil
}

func (p *ProjectPricing) DeleteLineItem(phaseID, workstreamID, lineItemID string, now time.Time) error {
	ws, err := p.workstream(phaseID, workstreamID)
	if err != nil {
		return err
	}
	i := slices.IndexFunc(ws.LineItems, func(li LineItem) bool { return li.ID == lineItemID })
	if i < 0 {
		return notFound("line item", lineItemID)
	}
	ws.LineItems = RenumberLineItems(ws.Number, slices.Delete(ws.LineItems, i, i+1))
	p.touch(now)
	return nil
}

// AddAssigneeToLineItem adds personID with zero full days. Adding a person
// already on the line item is a no-op. A zero rate is seeded for people
// without one.
func (p *ProjectPricing) AddAssigneeToLineItem(phaseID, workstreamID, lineItemID, personID string, now time.Time) error {
	li, err := p.lineItem(phaseID, workstreamID, lineItemID)
	if err != nil {
		return err
	}
	if li.assignee(personID) != nil {
		return nil
	}
	li.Assignees = append(li.Assignees, LineItemAssignee{PersonID: personID, TimeUnit: TimeUnitFull})
	p.ensureRate(personID)
	p.touch(now)
	return nil
}

// UpdateAssigneeDays overwrites days. Only valid for the full time unit.
func (p *ProjectPricing) UpdateAssigneeDays(phaseID, workstreamID, lineItemID, personID string, days float64, now time.Time) error {
	a, err := p.lineItemAssignee(phaseID, workstreamID, lineItemID, personID)
	if err != nil {
		return err
	}
	if a.TimeUnit.IsDerived() {
		return ErrDerivedDays
	}
	a.Days = days
	p.touch(now)
	return nil
}

// UpdateAssigneeTimeUnit merges u and, for week/month units, recomputes
// days from the period factors.
func (p *ProjectPricing) UpdateAssigneeTimeUnit(phaseID, workstreamID, lineItemID, personID string, u TimeUnitUpdate, now time.Time) error {
	if u.TimeUnit != nil {
		if _, err := ParseTimeUnit(string(*u.TimeUnit)); err != nil {
			return err
		}
	}
	a, err := p.lineItemAssignee(phaseID, workstreamID, lineItemID, personID)
	if err != nil {
		return err
	}
	if u.TimeUnit != nil {
		a.TimeUnit = *u.TimeUnit
	}
	if u.DaysPerPeriod != nil {
		a.DaysPerPeriod = clonePtr(u.DaysPerPeriod)
	}
	if u.NumberOfPeriods != nil {
		a.NumberOfPeriods = clonePtr(u.NumberOfPeriods)
	}
	a.recomputeDays()
	p.touch(now)
	return nil
}

// RemoveAssigneeFromLineItem drops the person from the line item. Their
// associate rate is kept.
func (p *ProjectPricing) RemoveAssigneeFromLineItem(phaseID, workstreamID, lineItemID, personID string, now time.Time) error {
	li, err := p.lineItem(phaseID, workstreamID, lineItemID)
	if err != nil {
		return err
	}
	i := slices.IndexFunc(li.Assignees, func(a LineItemAssignee) bool { return a.PersonID == personID })
	if i < 0 {
		return notFound("assignee", personID)
	}
	li.Assignees = slices.Delete(li.Assignees, i, i+1)
	p.touch(now)
	return nil
}

// FindPhase returns the phase with the given id, or nil.
func (p *ProjectPricing) FindPhase(phaseID string) *Phase {
	ph, _ := p.phase(phaseID)
	return ph
}

func (p *ProjectPricing) phase(phaseID string) (*Phase, error) {
	for i := range p.Phases {
		if p.Phases[i].ID == phaseID {
			return &p.Phases[i], nil
		}
	}
	return nil, notFound("phase", phaseID)
}

func (p *ProjectPricing) workstream(phaseID, workstreamID string) (*Workstream, error) {
	ph, err := p.phase(phaseID)
	if err != nil {
		return nil, err
	}
	for i := range ph.Workstreams {
		if ph.Workstreams[i].ID == workstreamID {
			return &ph.Workstreams[i], nil
		}
	}
	return nil, notFound("workstream", workstreamID)
}

func (p *ProjectPricing) lineItem(phaseID, workstreamID, lineItemID string) (*LineItem, error) {
	ws, err := p.workstream(phaseID, workstreamID)
	if err != nil {
		return nil, err
	}
	for i := range ws.LineItems {
		if ws.LineItems[i].ID == lineItemID {
			return &ws.LineItems[i], nil
		}
	}
	return nil, notFound("line item", lineItemID)
}

func (p *ProjectPricing) lineItemAssignee(phaseID, workstreamID, lineItemID, personID string) (*LineItemAssignee, error) {
	li, err := p.lineItem(phaseID, workstreamID, lineItemID)
	if err != nil {
		return nil, err
	}
	a := li.assignee(personID)
	if a == nil {
		return nil, notFound("assignee", personID)
	}
	return a, nil
}

func (li *LineItem) assignee(personID string) *LineItemAssignee {
	for i := range li.Assignees {
		if li.Assignees[i].PersonID == personID {
			return &li.Assignees[i]
		}
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
