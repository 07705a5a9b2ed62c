package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/pricebook/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newPersonCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "person",
		Aliases: []string{"people"},
		Short:   "Manage associates",
	}

	var title string
	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Add an associate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.People.Create(context.Background(), args[0], title)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", p.Name, p.ID)
			return nil
		},
	}
	add.Flags().StringVar(&title, "title", "", "Job title")

	list := &cobra.Command{
		Use:   "list",
		Short: "List associates",
		RunE: func(cmd *cobra.Command, args []string) error {
			people, err := app.People.List(context.Background())
			if err != nil {
				return err
			}
			if len(people) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No people found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPeople(people))
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "remove PERSON",
		Short: "Remove an associate and their assignments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolvePersonID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.People.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(add, list, remove)
	return cmd
}

// personNames maps person ids to names for display. Lookup failures just
// leave the map empty.
func personNames(ctx context.Context, app *App) map[string]string {
	out := make(map[string]string)
	people, err := app.People.List(ctx)
	if err != nil {
		return out
	}
	for _, p := range people {
		out[p.ID] = p.Name
	}
	return out
}

func projectNames(ctx context.Context, app *App) map[string]string {
	out := make(map[string]string)
	projects, err := app.Projects.List(ctx, true)
	if err != nil {
		return out
	}
	for _, p := range projects {
		out[p.ID] = p.Name
	}
	return out
}
