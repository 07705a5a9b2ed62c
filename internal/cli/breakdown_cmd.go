package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/pricebook/internal/domain"
	"github.com/spf13/cobra"
)

func newPhaseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phase",
		Short: "Manage pricing phases",
	}

	var add lineFlags
	addCmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a phase with one empty workstream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, _, err := add.resolve(ctx, app)
			if err != nil {
				return err
			}
			ph, err := app.Pricing.AddPhase(ctx, projectID, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added phase %q (%s)\n", ph.Name, ph.ID)
			return nil
		},
	}
	add.register(addCmd, 0)

	var rename lineFlags
	renameCmd := &cobra.Command{
		Use:   "rename NAME",
		Short: "Rename a phase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, ref, err := rename.resolve(ctx, app)
			if err != nil {
				return err
			}
			if err := app.Pricing.RenamePhase(ctx, projectID, ref.PhaseID, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed phase to %q\n", args[0])
			return nil
		},
	}
	rename.register(renameCmd, 1)

	var remove lineFlags
	var yes bool
	removeCmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove a phase with all its workstreams and line items",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, ref, err := remove.resolve(ctx, app)
			if err != nil {
				return err
			}
			ok, err := confirmDelete(app, yes, fmt.Sprintf("Remove phase %q with all its line items?", remove.phase))
			if err != nil || !ok {
				return err
			}
			if err := app.Pricing.DeletePhase(ctx, projectID, ref.PhaseID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed phase %q\n", remove.phase)
			return nil
		},
	}
	remove.register(removeCmd, 1)
	removeCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	cmd.AddCommand(addCmd, renameCmd, removeCmd)
	return cmd
}

func newWorkstreamCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workstream",
		Aliases: []string{"ws"},
		Short:   "Manage workstreams within a phase",
	}

	var add lineFlags
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Append a workstream to a phase",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, ref, err := add.resolve(ctx, app)
			if err != nil {
				return err
			}
			ws, err := app.Pricing.AddWorkstream(ctx, projectID, ref.PhaseID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", ws.Name, ws.ID)
			return nil
		},
	}
	add.register(addCmd, 1)

	var rename lineFlags
	renameCmd := &cobra.Command{
		Use:   "rename NAME",
		Short: "Rename a workstream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, ref, err := rename.resolve(ctx, app)
			if err != nil {
				return err
			}
			if err := app.Pricing.RenameWorkstream(ctx, projectID, ref.PhaseID, ref.WorkstreamID, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed workstream to %q\n", args[0])
			return nil
		},
	}
	rename.register(renameCmd, 2)

	var remove lineFlags
	var yes bool
	removeCmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove a workstream and renumber the rest",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, ref, err := remove.resolve(ctx, app)
			if err != nil {
				return err
			}
			ok, err := confirmDelete(app, yes, fmt.Sprintf("Remove workstream %s with all its line items?", remove.workstream))
			if err != nil || !ok {
				return err
			}
			if err := app.Pricing.DeleteWorkstream(ctx, projectID, ref.PhaseID, ref.WorkstreamID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed workstream %s\n", remove.workstream)
			return nil
		},
	}
	remove.register(removeCmd, 2)
	removeCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	cmd.AddCommand(addCmd, renameCmd, removeCmd)
	return cmd
}

func newLineCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "line",
		Short: "Manage line items within a workstream",
	}

	var add lineFlags
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Append a line item to a workstream",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, ref, err := add.resolve(ctx, app)
			if err != nil {
				return err
			}
			li, err := app.Pricing.AddLineItem(ctx, projectID, ref.PhaseID, ref.WorkstreamID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added line item %s (%s)\n", li.Number, li.ID)
			return nil
		},
	}
	add.register(addCmd, 2)

	var update lineFlags
	var description string
	var start, end dateFlag
	updateCmd := &cobra.Command{
		Use:   "update",
		Short: "Set a line item's description and dates",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, ref, err := update.resolve(ctx, app)
			if err != nil {
				return err
			}
			fs := cmd.Flags()
			u := domain.LineItemUpdate{
				Description: changed(fs, "description", description),
				StartDate:   changed(fs, "start", start.v),
				EndDate:     changed(fs, "end", end.v),
			}
			if err := app.Pricing.UpdateLineItem(ctx, projectID, ref, u); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated line item %s\n", update.line)
			return nil
		},
	}
	update.register(updateCmd, 3)
	updateCmd.Flags().StringVar(&description, "description", "", "Line item description")
	updateCmd.Flags().Var(&start, "start", "Start date (YYYY-MM-DD)")
	updateCmd.Flags().Var(&end, "end", "End date (YYYY-MM-DD)")

	var remove lineFlags
	removeCmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove a line item and renumber the rest",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, ref, err := remove.resolve(ctx, app)
			if err != nil {
				return err
			}
			if err := app.Pricing.DeleteLineItem(ctx, projectID, ref); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed line item %s\n", remove.line)
			return nil
		},
	}
	remove.register(removeCmd, 3)

	cmd.AddCommand(addCmd, updateCmd, removeCmd)
	return cmd
}

func newAssigneeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assignee",
		Short: "Assign associates to line items and set their days",
	}

	var add lineFlags
	addCmd := &cobra.Command{
		Use:   "add PERSON",
		Short: "Assign an associate to a line item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, ref, err := add.resolve(ctx, app)
			if err != nil {
				return err
			}
			personID, err := resolvePersonID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Pricing.AddAssigneeToLineItem(ctx, projectID, ref, personID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Assigned %s to %s\n", args[0], add.line)
			return nil
		},
	}
	add.register(addCmd, 3)

	var days lineFlags
	daysCmd := &cobra.Command{
		Use:   "days PERSON DAYS",
		Short: "Set an assignee's days (full time unit only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			n, err := parseDays(args[1])
			if err != nil {
				return err
			}
			projectID, ref, err := days.resolve(ctx, app)
			if err != nil {
				return err
			}
			personID, err := resolvePersonID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Pricing.UpdateAssigneeDays(ctx, projectID, ref, personID, n); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s to %s days on %s\n", args[0], args[1], days.line)
			return nil
		},
	}
	days.register(daysCmd, 3)

	var unit lineFlags
	var tu timeUnitFlag
	var perPeriod, periods float64
	unitCmd := &cobra.Command{
		Use:   "unit PERSON",
		Short: "Price an assignee per week or month",
		Long: "Set the time unit and period factors. For week and month units the\n" +
			"days become days-per-period times number-of-periods.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, ref, err := unit.resolve(ctx, app)
			if err != nil {
				return err
			}
			personID, err := resolvePersonID(ctx, app, args[0])
			if err != nil {
				return err
			}
			fs := cmd.Flags()
			u := domain.TimeUnitUpdate{
				TimeUnit:        changed(fs, "unit", tu.v),
				DaysPerPeriod:   changed(fs, "days-per-period", perPeriod),
				NumberOfPeriods: changed(fs, "periods", periods),
			}
			if err := app.Pricing.UpdateAssigneeTimeUnit(ctx, projectID, ref, personID, u); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated time unit of %s on %s\n", args[0], unit.line)
			return nil
		},
	}
	unit.register(unitCmd, 3)
	unitCmd.Flags().Var(&tu, "unit", "Time unit (full, week, month)")
	unitCmd.Flags().Float64Var(&perPeriod, "days-per-period", 0, "Days per week or month")
	unitCmd.Flags().Float64Var(&periods, "periods", 0, "Number of weeks or months")

	var remove lineFlags
	removeCmd := &cobra.Command{
		Use:   "remove PERSON",
		Short: "Unassign an associate from a line item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, ref, err := remove.resolve(ctx, app)
			if err != nil {
				return err
			}
			personID, err := resolvePersonID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Pricing.RemoveAssigneeFromLineItem(ctx, projectID, ref, personID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from %s\n", args[0], remove.line)
			return nil
		},
	}
	remove.register(removeCmd, 3)

	cmd.AddCommand(addCmd, daysCmd, unitCmd, removeCmd)
	return cmd
}
