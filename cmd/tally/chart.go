package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tally/internal/cli"
	"tally/internal/services"
)

func chartCmd() *cobra.Command {
	var sel services.Selection

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Show spending per calendar month",
		Long: `Show spending per calendar month. Months of different years share a bar
unless --month narrows the selection.`,
		RunE: runE(func(cmd *cobra.Command, _ []string) error {
			ov, err := service(cmd).Overview(cmd.Context(), sel)
			if err != nil {
				return asValidation(cmd.ErrOrStderr(), err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.TitleStyle.Render(fmt.Sprintf("Monthly spending (%s / %s)", ov.Selection.Category, ov.Selection.YearMonth)))
			return cli.RenderChart(out, ov.Monthly)
		}),
	}
	selectionFlags(cmd, &sel)
	return cmd
}

func totalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "total",
		Short: "Show the total of every expense",
		RunE: runE(func(cmd *cobra.Command, _ []string) error {
			ov, err := service(cmd).Overview(cmd.Context(), services.Selection{})
			if err != nil {
				return err
			}
			return cli.RenderTotal(cmd.OutOrStdout(), "Total", ov.Total)
		}),
	}
}
