package cli

import (
	"github.com/alexanderramin/pricebook/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects service.ProjectService
	People   service.PersonService
	Pricing  service.PricingService
	Revenue  service.RevenueService

	// IsInteractive reports whether destructive commands may prompt.
	// Nil means never prompt.
	IsInteractive func() bool
	// Confirm asks a yes/no question. Nil uses a huh confirm form.
	Confirm func(title string) (bool, error)
}

// NewRootCmd creates the top-level "pricebook" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "pricebook",
		Short:         "Price consulting projects by phase, milestone and associate",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newProjectCmd(app),
		newPersonCmd(app),
		newPriceCmd(app),
		newSettingsCmd(app),
		newPhaseCmd(app),
		newWorkstreamCmd(app),
		newLineCmd(app),
		newAssigneeCmd(app),
		newTaskCmd(app),
		newRateCmd(app),
		newExpenseCmd(app),
		newRevenueCmd(app),
	)

	return root
}
