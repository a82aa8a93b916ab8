package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tally/internal/cli"
)

func resetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every recorded expense",
		Long: `Reset removes every recorded expense. It also clears a stored expense list
that can no longer be read, so new expenses can be recorded again.`,
		RunE: runE(func(cmd *cobra.Command, _ []string) error {
			svc := service(cmd)
			out := cmd.OutOrStdout()

			if !yes {
				fmt.Fprintf(out, "This will delete %d recorded expenses.\n", len(svc.Expenses(cmd.Context())))
				if !cli.Confirm(cmd.InOrStdin(), out, "Are you sure you want to continue?") {
					fmt.Fprintln(out, "Reset cancelled.")
					return nil
				}
			}

			if err := svc.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(out, cli.SuccessStyle.Render(cli.SuccessIcon+" All expenses deleted"))
			return nil
		}),
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
