package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/pricebook/internal/domain"
	"github.com/spf13/cobra"
)

func newRateCmd(app *App) *cobra.Command {
	var project string
	var base, markedUp decimalFlag

	cmd := &cobra.Command{
		Use:   "rate PERSON",
		Short: "Set an associate's day rate on a project",
		Long: "--base sets the base day rate and recomputes the marked-up rate from the\n" +
			"project markup. --marked-up overrides the client rate directly until the\n" +
			"base rate or markup changes again.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := cmd.Flags()
			if !fs.Changed("base") && !fs.Changed("marked-up") {
				return fmt.Errorf("one of --base or --marked-up is required")
			}
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			personID, err := resolvePersonID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if fs.Changed("base") {
				if err := app.Pricing.SetAssociateRate(ctx, projectID, personID, base.v); err != nil {
					return err
				}
			}
			if fs.Changed("marked-up") {
				if err := app.Pricing.SetAssociateMarkedUpRate(ctx, projectID, personID, markedUp.v); err != nil {
					return err
				}
			}
			return printRate(cmd, app, projectID, personID, args[0])
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "Project short ID or UUID")
	cmd.Flags().Var(&base, "base", "Base day rate")
	cmd.Flags().Var(&markedUp, "marked-up", "Marked-up day rate charged to the client")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func printRate(cmd *cobra.Command, app *App, projectID, personID, label string) error {
	p, err := app.Pricing.GetProjectPricing(context.Background(), projectID)
	if err != nil {
		return err
	}
	r, _ := p.RateFor(personID)
	fmt.Fprintf(cmd.OutOrStdout(), "%s: base %s, marked up %s %s\n",
		label, r.BaseRate.StringFixed(2), r.MarkedUpRate.StringFixed(2), p.Currency)
	return nil
}

func newExpenseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expense",
		Short: "Manage an associate's travel expenses on a project",
	}

	var project string
	var flights int
	var flightCost, accommodation, perDiem, buffer decimalFlag
	var onsite float64
	setCmd := &cobra.Command{
		Use:   "set PERSON",
		Short: "Create or replace an associate's expense entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			personID, err := resolvePersonID(ctx, app, args[0])
			if err != nil {
				return err
			}
			fs := cmd.Flags()
			e := domain.ExpenseItem{
				PersonID:            personID,
				NumberOfFlights:     flights,
				AvgFlightCost:       flightCost.v,
				DaysOnsite:          onsite,
				AccommodationPerDay: changed(fs, "accommodation", accommodation.v),
				PerDiemPerDay:       changed(fs, "per-diem", perDiem.v),
				Buffer:              buffer.v,
			}
			if err := app.Pricing.SetExpense(ctx, projectID, e); err != nil {
				return err
			}
			p, err := app.Pricing.GetProjectPricing(ctx, projectID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Expenses for %s: %s %s\n", args[0], p.ExpenseCost(e).StringFixed(2), p.Currency)
			return nil
		},
	}
	setCmd.Flags().StringVarP(&project, "project", "p", "", "Project short ID or UUID")
	setCmd.Flags().IntVar(&flights, "flights", 0, "Number of flights")
	setCmd.Flags().Var(&flightCost, "flight-cost", "Average cost per flight")
	setCmd.Flags().Float64Var(&onsite, "onsite", 0, "Days on site")
	setCmd.Flags().Var(&accommodation, "accommodation", "Accommodation per day (default: project setting)")
	setCmd.Flags().Var(&perDiem, "per-diem", "Per diem per day (default: project setting)")
	setCmd.Flags().Var(&buffer, "buffer", "Flat buffer amount")
	_ = setCmd.MarkFlagRequired("project")

	var removeProject string
	removeCmd := &cobra.Command{
		Use:   "remove PERSON",
		Short: "Remove an associate's expense entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, removeProject)
			if err != nil {
				return err
			}
			personID, err := resolvePersonID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Pricing.RemoveExpense(ctx, projectID, personID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed expenses for %s\n", args[0])
			return nil
		},
	}
	removeCmd.Flags().StringVarP(&removeProject, "project", "p", "", "Project short ID or UUID")
	_ = removeCmd.MarkFlagRequired("project")

	cmd.AddCommand(setCmd, removeCmd)
	return cmd
}
