package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/pricebook/internal/domain"
	"github.com/alexanderramin/pricebook/internal/service"
	"github.com/spf13/cobra"
)

// resolveProjectID accepts a short ID (case-insensitive), a full UUID or a
// unique UUID prefix.
func resolveProjectID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("project ID is required")
	}

	projects, err := app.Projects.List(ctx, true)
	if err != nil {
		return "", err
	}

	for _, p := range projects {
		if strings.EqualFold(p.ShortID, input) {
			return p.ID, nil
		}
	}
	for _, p := range projects {
		if p.ID == input {
			return p.ID, nil
		}
	}

	var matches []string
	for _, p := range projects {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("project not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("project ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolvePersonID accepts a full id, a unique id prefix or a
// case-insensitive name.
func resolvePersonID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("person is required")
	}
	people, err := app.People.List(ctx)
	if err != nil {
		return "", err
	}
	return pick("person", input, len(people), func(i int) (string, []string) {
		return people[i].ID, []string{people[i].Name}
	})
}

// pick resolves input against n candidates. key returns a candidate's id
// and the names it also answers to. Exact id and name matches win over id
// prefixes.
func pick(kind, input string, n int, key func(i int) (id string, names []string)) (string, error) {
	var prefixed []string
	for i := 0; i < n; i++ {
		id, names := key(i)
		if id == input {
			return id, nil
		}
		for _, name := range names {
			if name != "" && strings.EqualFold(name, input) {
				return id, nil
			}
		}
		if strings.HasPrefix(id, input) {
			prefixed = append(prefixed, id)
		}
	}
	switch len(prefixed) {
	case 0:
		return "", &domain.NotFoundError{Kind: kind, ID: input}
	case 1:
		return prefixed[0], nil
	default:
		return "", fmt.Errorf("%s %q is ambiguous (%d matches)", kind, input, len(prefixed))
	}
}

// resolveTask finds a milestone and task on the project record by title or
// id. Ids unknown to the record are passed through unchanged so pricings of
// unregistered milestones stay addressable.
func resolveTask(ctx context.Context, app *App, projectID, milestone, task string) (string, string, error) {
	p, err := app.Projects.GetByID(ctx, projectID)
	if err != nil {
		return "", "", err
	}
	mID, err := pick("milestone", milestone, len(p.Milestones), func(i int) (string, []string) {
		return p.Milestones[i].ID, []string{p.Milestones[i].Title}
	})
	if err != nil {
		return milestone, task, nil
	}
	if task == "" {
		return mID, "", nil
	}
	m := p.FindMilestone(mID)
	tID, err := pick("task", task, len(m.Tasks), func(i int) (string, []string) {
		return m.Tasks[i].ID, []string{m.Tasks[i].Title}
	})
	if err != nil {
		return mID, task, nil
	}
	return mID, tID, nil
}

// lineFlags addresses a phase, workstream or line item of a pricing.
type lineFlags struct {
	project    string
	phase      string
	workstream string
	line       string
}

func (f *lineFlags) register(cmd *cobra.Command, depth int) {
	cmd.Flags().StringVarP(&f.project, "project", "p", "", "Project short ID or UUID")
	_ = cmd.MarkFlagRequired("project")
	if depth >= 1 {
		cmd.Flags().StringVar(&f.phase, "phase", "", "Phase name or ID")
		_ = cmd.MarkFlagRequired("phase")
	}
	if depth >= 2 {
		cmd.Flags().StringVar(&f.workstream, "ws", "", "Workstream number or ID")
		_ = cmd.MarkFlagRequired("ws")
	}
	if depth >= 3 {
		cmd.Flags().StringVar(&f.line, "line", "", "Line item number (e.g. 1.2) or ID")
		_ = cmd.MarkFlagRequired("line")
	}
}

// resolve turns the flags into ids, stopping at the deepest flag given.
func (f *lineFlags) resolve(ctx context.Context, app *App) (string, service.LineItemRef, error) {
	var ref service.LineItemRef
	projectID, err := resolveProjectID(ctx, app, f.project)
	if err != nil {
		return "", ref, err
	}
	if f.phase == "" {
		return projectID, ref, nil
	}
	pricing, err := app.Pricing.GetProjectPricing(ctx, projectID)
	if err != nil {
		return "", ref, err
	}

	phases := pricing.Phases
	if ref.PhaseID, err = pick("phase", f.phase, len(phases), func(i int) (string, []string) {
		return phases[i].ID, []string{phases[i].Name}
	}); err != nil {
		return "", ref, err
	}
	if f.workstream == "" {
		return projectID, ref, nil
	}

	wss := pricing.FindPhase(ref.PhaseID).Workstreams
	if ref.WorkstreamID, err = pick("workstream", f.workstream, len(wss), func(i int) (string, []string) {
		return wss[i].ID, []string{strconv.Itoa(wss[i].Number), wss[i].Name}
	}); err != nil {
		return "", ref, err
	}
	if f.line == "" {
		return projectID, ref, nil
	}

	var items []domain.LineItem
	for _, ws := range wss {
		if ws.ID == ref.WorkstreamID {
			items = ws.LineItems
		}
	}
	if ref.LineItemID, err = pick("line item", f.line, len(items), func(i int) (string, []string) {
		return items[i].ID, []string{items[i].Number}
	}); err != nil {
		return "", ref, err
	}
	return projectID, ref, nil
}
