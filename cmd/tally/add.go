package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tally/internal/cli"
	"tally/internal/core"
	"tally/internal/services"
)

func addCmd() *cobra.Command {
	var in services.NewExpense

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new expense",
		Long: `Record a new expense. Title, amount, date and category are all required.
Amounts accept either a dot or a comma as decimal separator.`,
		Example: `  tally add --title "Bus pass" --amount 12,50 --category Transport --date 2024-03-05
  tally add --title Rent --amount 800 --category Utilities --date 2024-03-01`,
		RunE: runE(func(cmd *cobra.Command, _ []string) error {
			e, err := service(cmd).AddExpense(cmd.Context(), in)
			if err != nil {
				return asValidation(cmd.ErrOrStderr(), err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.SuccessStyle.Render(fmt.Sprintf("%s Added %s (%s) as %s",
				cli.SuccessIcon, e.Title, core.FormatAmount(e.Amount), e.ID)))
			return nil
		}),
	}

	cmd.Flags().StringVar(&in.Title, "title", "", "what the money was spent on")
	cmd.Flags().StringVar(&in.Amount, "amount", "", "amount spent, e.g. 12.50")
	cmd.Flags().StringVar(&in.Date, "date", "", "date of the expense (YYYY-MM-DD)")
	cmd.Flags().StringVar(&in.Category, "category", "", "one of Food, Transport, Entertainment, Utilities, Others")
	return cmd
}
