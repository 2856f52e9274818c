package main

import (
	"context"
	"fmt"
	"os"

	"github.com/indaco/recipekit/internal/cli"
	"github.com/indaco/recipekit/internal/config"
	"github.com/indaco/recipekit/internal/printer"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, printer.Error("Error: "+err.Error()))
		os.Exit(1)
	}
}

// runCLI loads .recipekit.yaml (falling back to defaults) and runs the
// root command with args.
func runCLI(args []string) error {
	cfg, err := config.LoadConfigFn()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg == nil {
		cfg = config.Default()
	}

	return cli.New(cfg).Run(context.Background(), args)
}
