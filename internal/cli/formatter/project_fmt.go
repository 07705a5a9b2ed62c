package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/pricebook/internal/domain"
)

// FormatProjectList renders a styled project list inside a bordered box.
func FormatProjectList(projects []*domain.Project) string {
	headers := []string{"ID", "NAME", "CLIENT", "STATUS", "MILESTONES"}
	rows := make([][]string, 0, len(projects))

	for _, p := range projects {
		id := p.ShortID
		if strings.TrimSpace(id) == "" {
			id = TruncID(p.ID)
		}
		if strings.TrimSpace(id) == "" {
			id = "--"
		}
		client := p.Client
		if client == "" {
			client = Dim("--")
		}
		rows = append(rows, []string{
			id,
			Bold(p.Name),
			StylePurple.Render(client),
			ProjectStatusPill(p.Status),
			fmt.Sprintf("%d", len(p.Milestones)),
		})
	}

	return RenderBox("Projects", RenderTable(headers, rows))
}

// FormatProjectInspect renders the project card with its milestone tree.
func FormatProjectInspect(p *domain.Project) string {
	var b strings.Builder
	b.WriteString(Bold(p.Name) + "\n\n")
	b.WriteString(Label("status", 6, ProjectStatusPill(p.Status)) + "\n")
	b.WriteString(Label("id", 6, p.ShortID) + "\n")
	b.WriteString(Label("uuid", 6, TruncID(p.ID)) + "\n")
	if p.Client != "" {
		b.WriteString(Label("client", 6, p.Client) + "\n")
	}

	var items []TreeItem
	for _, m := range p.Milestones {
		items = append(items, TreeItem{Title: Bold(m.Title) + " " + TruncID(m.ID), Detail: dueDetail(m)})
		for i, t := range m.Tasks {
			items = append(items, TreeItem{
				Title:  t.Title + " " + TruncID(t.ID),
				Level:  1,
				IsLast: i == len(m.Tasks)-1,
			})
		}
	}
	if len(items) > 0 {
		b.WriteString("\n" + Header("Milestones") + "\n" + RenderTree(items))
	}
	return RenderBox("", strings.TrimRight(b.String(), "\n"))
}

func dueDetail(m domain.Milestone) string {
	if m.DueDate == nil {
		return ""
	}
	return "due " + m.DueDate.Format("Jan 2")
}

func FormatPeople(people []*domain.Person) string {
	headers := []string{"ID", "NAME", "TITLE"}
	rows := make([][]string, 0, len(people))
	for _, p := range people {
		title := p.Title
		if title == "" {
			title = Dim("--")
		}
		rows = append(rows, []string{TruncID(p.ID), Bold(p.Name), title})
	}
	return RenderBox("People", RenderTable(headers, rows))
}
