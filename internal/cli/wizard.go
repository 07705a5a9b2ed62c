package cli

import (
	"github.com/alexanderramin/pricebook/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// pricebookHuhTheme returns a huh theme matching the formatter palette.
func pricebookHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorRed).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func huhConfirm(title string) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Delete").
				Negative("Cancel").
				Value(&ok),
		),
	).WithTheme(pricebookHuhTheme()).WithShowHelp(false).Run()
	return ok, err
}

// confirmDelete asks before a cascading delete. It only prompts on an
// interactive terminal and when --yes was not given.
func confirmDelete(app *App, yes bool, title string) (bool, error) {
	if yes || app.IsInteractive == nil || !app.IsInteractive() {
		return true, nil
	}
	ask := app.Confirm
	if ask == nil {
		ask = huhConfirm
	}
	return ask(title)
}
