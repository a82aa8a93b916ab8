package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"tally/internal/cli"
	"tally/internal/core"
	"tally/internal/services"
)

func withEnv(ctx context.Context, e *env) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, envKey{}, e)
}

func envFrom(cmd *cobra.Command) *env {
	e, _ := cmd.Context().Value(envKey{}).(*env)
	return e
}

// runE closes the command's backend once fn returns, whatever the outcome.
func runE(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		if e := envFrom(cmd); e != nil && e.backend.Cleanup != nil {
			defer func() {
				if cerr := e.backend.Cleanup(); err == nil {
					err = cerr
				}
			}()
		}
		return fn(cmd, args)
	}
}

func service(cmd *cobra.Command) *services.ExpenseService {
	return envFrom(cmd).backend.Service
}

// selectionFlags registers --category and --month on cmd.
func selectionFlags(cmd *cobra.Command, sel *services.Selection) {
	cmd.Flags().StringVar(&sel.Category, "category", core.All, "category to show, or All")
	cmd.Flags().StringVar(&sel.YearMonth, "month", core.All, "year-month to show, e.g. 2024-3, or All")
}

// printValidation lists each invalid field on w, sorted by field name.
func printValidation(w io.Writer, verr *core.ValidationError) {
	fields := make([]string, 0, len(verr.Fields))
	for f := range verr.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		fmt.Fprintln(w, cli.ErrorStyle.Render(fmt.Sprintf("%s %s: %s", cli.ErrorIcon, f, verr.Fields[f])))
	}
}

// asValidation reports err as field messages when it is a validation error.
func asValidation(w io.Writer, err error) error {
	var verr *core.ValidationError
	if errors.As(err, &verr) {
		printValidation(w, verr)
		return fmt.Errorf("invalid input: %s", strings.Join(sortedKeys(verr.Fields), ", "))
	}
	return err
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
