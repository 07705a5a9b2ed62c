package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/pricebook/internal/domain"
	"github.com/spf13/cobra"
)

// taskFlags addresses a task of a project's milestone.
type taskFlags struct {
	project   string
	milestone string
	task      string
}

func (f *taskFlags) register(cmd *cobra.Command, withTask bool) {
	cmd.Flags().StringVarP(&f.project, "project", "p", "", "Project short ID or UUID")
	cmd.Flags().StringVar(&f.milestone, "milestone", "", "Milestone title or ID")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("milestone")
	if withTask {
		cmd.Flags().StringVar(&f.task, "task", "", "Task title or ID")
		_ = cmd.MarkFlagRequired("task")
	}
}

func (f *taskFlags) resolve(ctx context.Context, app *App) (projectID, milestoneID, taskID string, err error) {
	if projectID, err = resolveProjectID(ctx, app, f.project); err != nil {
		return "", "", "", err
	}
	milestoneID, taskID, err = resolveTask(ctx, app, projectID, f.milestone, f.task)
	return projectID, milestoneID, taskID, err
}

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Price milestone tasks",
	}

	var assign taskFlags
	assignCmd := &cobra.Command{
		Use:   "assign PERSON",
		Short: "Assign an associate to a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, milestoneID, taskID, err := assign.resolve(ctx, app)
			if err != nil {
				return err
			}
			personID, err := resolvePersonID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Pricing.AddTaskAssignee(ctx, projectID, milestoneID, taskID, personID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Assigned %s to task %s\n", args[0], assign.task)
			return nil
		},
	}
	assign.register(assignCmd, true)

	var update taskFlags
	var days, perPeriod float64
	updateCmd := &cobra.Command{
		Use:   "days PERSON",
		Short: "Set a task assignee's days or days per period",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, milestoneID, taskID, err := update.resolve(ctx, app)
			if err != nil {
				return err
			}
			personID, err := resolvePersonID(ctx, app, args[0])
			if err != nil {
				return err
			}
			fs := cmd.Flags()
			u := domain.TaskAssigneeUpdate{
				Days:          changed(fs, "days", days),
				DaysPerPeriod: changed(fs, "days-per-period", perPeriod),
			}
			if err := app.Pricing.UpdateTaskAssignee(ctx, projectID, milestoneID, taskID, personID, u); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s on task %s\n", args[0], update.task)
			return nil
		},
	}
	update.register(updateCmd, true)
	updateCmd.Flags().Float64Var(&days, "days", 0, "Days (full time unit only)")
	updateCmd.Flags().Float64Var(&perPeriod, "days-per-period", 0, "Days per week or month")

	var settings taskFlags
	var tu timeUnitFlag
	var periods float64
	settingsCmd := &cobra.Command{
		Use:   "unit",
		Short: "Set a task's time unit and number of periods",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, milestoneID, taskID, err := settings.resolve(ctx, app)
			if err != nil {
				return err
			}
			fs := cmd.Flags()
			u := domain.TaskSettingsUpdate{
				TimeUnit:        changed(fs, "unit", tu.v),
				NumberOfPeriods: changed(fs, "periods", periods),
			}
			if err := app.Pricing.UpdateTaskSettings(ctx, projectID, milestoneID, taskID, u); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated task %s\n", settings.task)
			return nil
		},
	}
	settings.register(settingsCmd, true)
	settingsCmd.Flags().Var(&tu, "unit", "Time unit (full, week, month)")
	settingsCmd.Flags().Float64Var(&periods, "periods", 0, "Number of weeks or months")

	var unassign taskFlags
	unassignCmd := &cobra.Command{
		Use:   "unassign PERSON",
		Short: "Remove an associate from a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, milestoneID, taskID, err := unassign.resolve(ctx, app)
			if err != nil {
				return err
			}
			personID, err := resolvePersonID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Pricing.RemoveTaskAssignee(ctx, projectID, milestoneID, taskID, personID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from task %s\n", args[0], unassign.task)
			return nil
		},
	}
	unassign.register(unassignCmd, true)

	var clr taskFlags
	var yes bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Drop the pricing of one task, or of a whole milestone without --task",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, milestoneID, taskID, err := clr.resolve(ctx, app)
			if err != nil {
				return err
			}
			if taskID != "" {
				if err := app.Pricing.RemoveTaskPricing(ctx, projectID, milestoneID, taskID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared pricing of task %s\n", clr.task)
				return nil
			}
			ok, err := confirmDelete(app, yes, fmt.Sprintf("Clear the pricing of every task in %s?", clr.milestone))
			if err != nil || !ok {
				return err
			}
			if err := app.Pricing.RemoveMilestonePricing(ctx, projectID, milestoneID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared pricing of milestone %s\n", clr.milestone)
			return nil
		},
	}
	clr.register(clearCmd, false)
	clearCmd.Flags().StringVar(&clr.task, "task", "", "Task title or ID")
	clearCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	cmd.AddCommand(assignCmd, updateCmd, settingsCmd, unassignCmd, clearCmd)
	return cmd
}
