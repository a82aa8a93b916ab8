package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tally/internal/cli"
)

func deleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an expense",
		Args:  cobra.ExactArgs(1),
		RunE: runE(func(cmd *cobra.Command, args []string) error {
			id := args[0]
			out := cmd.OutOrStdout()

			if !yes && !cli.Confirm(cmd.InOrStdin(), out, fmt.Sprintf("Delete expense %s?", id)) {
				fmt.Fprintln(out, "Deletion cancelled.")
				return nil
			}

			removed, err := service(cmd).DeleteExpense(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintln(out, cli.WarningStyle.Render(fmt.Sprintf("No expense with id %s", id)))
				return nil
			}
			fmt.Fprintln(out, cli.SuccessStyle.Render(fmt.Sprintf("%s Deleted expense %s", cli.SuccessIcon, id)))
			return nil
		}),
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
