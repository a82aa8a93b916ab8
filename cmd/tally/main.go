package main

import (
	"context"
	"fmt"
	"os"

	"tally/internal/cli"
)

func main() {
	cli.LoadEnvFile()

	ctx, cancel := cli.SignalContext(context.Background())
	err := newRootCmd().ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, cli.ErrorStyle.Render(cli.ErrorIcon+" "+err.Error()))
		os.Exit(1)
	}
}
