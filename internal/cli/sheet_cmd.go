package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/alexanderramin/pricebook/internal/domain"
	"github.com/alexanderramin/pricebook/internal/importer"
	"github.com/spf13/cobra"
)

func newPriceImportCmd(app *App) *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "import PROJECT FILE",
		Short: "Build a project's pricing from a JSON pricing sheet",
		Long: "Reads a pricing sheet (settings, phases, rates, expenses) and applies it\n" +
			"to PROJECT. People are matched by name or id. A project that already has\n" +
			"phases is only overwritten with --replace.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			sheet, err := importer.LoadSheet(args[1])
			if err != nil {
				return fmt.Errorf("loading pricing sheet: %w", err)
			}
			if errs := importer.ValidateSheet(sheet); len(errs) > 0 {
				return formatValidationErrors(errs)
			}

			existing, err := app.Pricing.GetProjectPricing(ctx, projectID)
			switch {
			case errors.Is(err, domain.ErrNotFound):
			case err != nil:
				return err
			case replace:
				if err := app.Pricing.DeletePricing(ctx, projectID); err != nil {
					return err
				}
			case len(existing.Phases) > 0:
				return fmt.Errorf("project %s is already priced; use --replace to overwrite it", args[0])
			}

			people, err := app.People.List(ctx)
			if err != nil {
				return err
			}
			if err := importer.Apply(ctx, app.Pricing, projectID, sheet, importer.PeopleIndex(people)); err != nil {
				return fmt.Errorf("applying pricing sheet: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d phases into %s\n", len(sheet.Phases), args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "Discard the current pricing first")

	return cmd
}

func newPriceExportCmd(app *App) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export PROJECT",
		Short: "Write a project's pricing as a JSON pricing sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Pricing.GetProjectPricing(ctx, projectID)
			if err != nil {
				return err
			}
			data, err := importer.Export(p, personNames(ctx, app)).Encode()
			if err != nil {
				return fmt.Errorf("encoding pricing sheet: %w", err)
			}
			if output == "" {
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			if err := os.WriteFile(output, append(data, '\n'), 0o644); err != nil {
				return fmt.Errorf("writing pricing sheet: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", args[0], output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")

	return cmd
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("pricing sheet validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
