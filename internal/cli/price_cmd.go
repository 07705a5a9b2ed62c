package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/pricebook/internal/cli/formatter"
	"github.com/alexanderramin/pricebook/internal/domain"
	"github.com/spf13/cobra"
)

func newPriceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "price",
		Short: "Show and manage project pricings",
	}

	cmd.AddCommand(
		newPriceShowCmd(app),
		newPriceListCmd(app),
		newPriceStatusCmd(app),
		newPriceRemoveCmd(app),
		newPriceImportCmd(app),
		newPriceExportCmd(app),
	)

	return cmd
}

func newPriceShowCmd(app *App) *cobra.Command {
	var in currencyFlag

	cmd := &cobra.Command{
		Use:   "show PROJECT",
		Short: "Show a project's pricing with totals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			pricing, err := app.Pricing.GetProjectPricing(ctx, projectID)
			if errors.Is(err, domain.ErrNotFound) {
				fmt.Fprintf(cmd.OutOrStdout(), "Project %s has not been priced yet.\n", args[0])
				return nil
			}
			if err != nil {
				return err
			}
			totals, err := app.Pricing.Totals(ctx, projectID)
			if err != nil {
				return err
			}
			breakdown, err := app.Pricing.AssociateBreakdown(ctx, projectID)
			if err != nil {
				return err
			}
			subtotals, err := app.Pricing.PhaseSubtotals(ctx, projectID)
			if err != nil {
				return err
			}
			project, _ := app.Projects.GetByID(ctx, projectID)

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPricing(formatter.PricingView{
				Pricing:   pricing,
				Project:   project,
				People:    personNames(ctx, app),
				Totals:    totals,
				Breakdown: breakdown,
				Subtotals: subtotals,
				Display:   in.v,
			}))
			return nil
		},
	}

	cmd.Flags().Var(&in, "in", "Show amounts converted to another currency (USD, SAR, AED)")

	return cmd
}

func newPriceListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every priced project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			pricings, err := app.Pricing.ListPricings(ctx)
			if err != nil {
				return err
			}
			if len(pricings) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No pricings found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPricingList(pricings, projectNames(ctx, app)))
			return nil
		},
	}
}

func newPriceStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "status PROJECT priced|in-progress",
		Short:     "Mark a pricing as priced or back in progress",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{string(domain.PricingPriced), string(domain.PricingInProgress)},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Pricing.SetStatus(ctx, projectID, domain.PricingStatus(args[1])); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pricing of %s is now %s\n", args[0], args[1])
			return nil
		},
	}
}

func newPriceRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove PROJECT",
		Short: "Discard a project's pricing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			ok, err := confirmDelete(app, yes, fmt.Sprintf("Discard the pricing of %s?", args[0]))
			if err != nil || !ok {
				return err
			}
			if err := app.Pricing.DeletePricing(ctx, projectID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed pricing of %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func newSettingsCmd(app *App) *cobra.Command {
	var (
		cur                                         currencyFlag
		markup, withholding, accommodation, perDiem decimalFlag
	)

	cmd := &cobra.Command{
		Use:   "settings PROJECT",
		Short: "Change currency, markup, withholding tax or expense defaults",
		Long: "Change pricing settings. Setting --markup recomputes every associate's\n" +
			"marked-up rate from their base rate, replacing manual overrides.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			fs := cmd.Flags()
			s := domain.PricingSettings{
				Currency:                 changed(fs, "currency", cur.v),
				MarkupPercentage:         changed(fs, "markup", markup.v),
				WithholdingTaxPercentage: changed(fs, "withholding", withholding.v),
				DefaultAccommodation:     changed(fs, "accommodation", accommodation.v),
				DefaultPerDiem:           changed(fs, "per-diem", perDiem.v),
			}
			if err := app.Pricing.UpdateSettings(ctx, projectID, s); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated pricing settings of %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().Var(&cur, "currency", "Pricing currency (USD, SAR, AED)")
	cmd.Flags().Var(&markup, "markup", "Markup percentage applied to base rates")
	cmd.Flags().Var(&withholding, "withholding", "Withholding tax percentage")
	cmd.Flags().Var(&accommodation, "accommodation", "Default accommodation per day")
	cmd.Flags().Var(&perDiem, "per-diem", "Default per diem per day")

	return cmd
}
