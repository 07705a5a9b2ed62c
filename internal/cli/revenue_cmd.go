package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/pricebook/internal/cli/formatter"
	"github.com/alexanderramin/pricebook/internal/domain"
	"github.com/spf13/cobra"
)

func newRevenueCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "revenue",
		Short: "Track contract values, staffing costs and margins",
	}

	cmd.AddCommand(
		newRevenueTrackCmd(app),
		newRevenueValueCmd(app),
		newRevenueCloseCmd(app),
		newRevenueShowCmd(app),
		newRevenueAssociateCmd(app),
		newRevenuePortfolioCmd(app),
		newRevenueAssignCmd(app),
	)

	return cmd
}

func newRevenueTrackCmd(app *App) *cobra.Command {
	var value decimalFlag
	cur := currencyFlag{v: domain.CurrencyUSD}

	cmd := &cobra.Command{
		Use:   "track PROJECT",
		Short: "Start tracking a project with its contract value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Revenue.Track(ctx, projectID, value.v, cur.v); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Tracking %s at %s\n", args[0], formatter.FormatMoney(value.v, cur.v))
			return nil
		},
	}

	cmd.Flags().Var(&value, "value", "Contract value")
	cmd.Flags().Var(&cur, "currency", "Contract currency (USD, SAR, AED)")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func newRevenueValueCmd(app *App) *cobra.Command {
	var value decimalFlag

	cmd := &cobra.Command{
		Use:   "value PROJECT",
		Short: "Change the contract value of an active project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Revenue.UpdateContractValue(ctx, projectID, value.v); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Contract value of %s set to %s\n", args[0], value.v.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().Var(&value, "value", "Contract value")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func newRevenueCloseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "close PROJECT",
		Short: "Close an active project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Revenue.Close(ctx, projectID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Closed %s\n", args[0])
			return nil
		},
	}
}

func newRevenueShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show PROJECT",
		Short: "Show a project's revenue, cost and margin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			s, err := app.Revenue.ProjectRevenue(ctx, projectID)
			if err != nil {
				return err
			}
			name := args[0]
			if p, err := app.Projects.GetByID(ctx, projectID); err == nil {
				name = p.Name
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectRevenue(s, name))
			return nil
		},
	}
}

func newRevenueAssociateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "associate PERSON",
		Short: "Show an associate's hours and cost on tracked projects",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			personID, err := resolvePersonID(ctx, app, args[0])
			if err != nil {
				return err
			}
			s, err := app.Revenue.AssociateRevenue(ctx, personID)
			if err != nil {
				return err
			}
			name := args[0]
			if p, err := app.People.GetByID(ctx, personID); err == nil {
				name = p.Name
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatAssociateRevenue(s, name))
			return nil
		},
	}
}

func newRevenuePortfolioCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "portfolio",
		Short: "Sum revenue and margin over every tracked project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := app.Revenue.Portfolio(ctx)
			if err != nil {
				return err
			}
			if len(p.Projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tracked projects.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPortfolio(p, projectNames(ctx, app)))
			return nil
		},
	}
}

func newRevenueAssignCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assignment",
		Short: "Record who is staffed on a project and at what cost",
	}

	var project string
	var hours float64
	var rate decimalFlag
	var start, end dateFlag
	addCmd := &cobra.Command{
		Use:   "add PERSON",
		Short: "Staff an associate on a project",
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
			a := &domain.Assignment{
				PersonID:  personID,
				ProjectID: projectID,
				Hours:     hours,
				CostRate:  rate.v,
				StartDate: start.v,
				EndDate:   end.v,
			}
			if err := app.Revenue.AddAssignment(ctx, a); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added assignment %s (cost %s)\n", a.ID, a.Cost().StringFixed(2))
			return nil
		},
	}
	addCmd.Flags().StringVarP(&project, "project", "p", "", "Project short ID or UUID")
	addCmd.Flags().Float64Var(&hours, "hours", 0, "Hours staffed")
	addCmd.Flags().Var(&rate, "rate", "Cost rate per hour")
	addCmd.Flags().Var(&start, "start", "Start date (YYYY-MM-DD)")
	addCmd.Flags().Var(&end, "end", "End date (YYYY-MM-DD)")
	for _, f := range []string{"project", "hours", "rate", "start", "end"} {
		_ = addCmd.MarkFlagRequired(f)
	}

	var listProject string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List assignments",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID := ""
			if listProject != "" {
				id, err := resolveProjectID(ctx, app, listProject)
				if err != nil {
					return err
				}
				projectID = id
			}
			as, err := app.Revenue.ListAssignments(ctx, projectID)
			if err != nil {
				return err
			}
			if len(as) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No assignments found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatAssignments(as, personNames(ctx, app), projectNames(ctx, app)))
			return nil
		},
	}
	listCmd.Flags().StringVarP(&listProject, "project", "p", "", "Only this project")

	removeCmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Remove an assignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Revenue.RemoveAssignment(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed assignment %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(addCmd, listCmd, removeCmd)
	return cmd
}
