package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tally/internal/cli"
	"tally/internal/report"
	"tally/internal/services"
)

func listCmd() *cobra.Command {
	var sel services.Selection

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses, optionally filtered",
		RunE: runE(func(cmd *cobra.Command, _ []string) error {
			ov, err := service(cmd).Overview(cmd.Context(), sel)
			if err != nil {
				return asValidation(cmd.ErrOrStderr(), err)
			}
			out := cmd.OutOrStdout()
			if err := cli.RenderExpenses(out, ov.Records); err != nil {
				return err
			}
			return cli.RenderTotal(out, fmt.Sprintf("%s / %s", ov.Selection.Category, ov.Selection.YearMonth), ov.FilteredTotal)
		}),
	}
	selectionFlags(cmd, &sel)
	return cmd
}

func recentCmd() *cobra.Command {
	var n int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show the most recently added expenses",
		RunE: runE(func(cmd *cobra.Command, _ []string) error {
			all := service(cmd).Expenses(cmd.Context())
			return cli.RenderExpenses(cmd.OutOrStdout(), report.Recent(all, n))
		}),
	}
	cmd.Flags().IntVarP(&n, "count", "n", report.RecentLimit, "number of expenses to show")
	return cmd
}

func monthsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "months",
		Short: "List the year-months that have expenses",
		RunE: runE(func(cmd *cobra.Command, _ []string) error {
			months := report.UniqueYearMonths(service(cmd).Expenses(cmd.Context()))
			if len(months) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), cli.SubtleStyle.Render("No expenses recorded."))
				return nil
			}
			for _, m := range months {
				fmt.Fprintln(cmd.OutOrStdout(), m)
			}
			return nil
		}),
	}
}
