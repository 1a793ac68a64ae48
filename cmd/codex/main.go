// Package main provides the entry point for the codex CLI application.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ersonp/legends-codex/internal/application/handlers"
)

var (
	version = "0.1.0-dev"

	globalWorld    string
	globalSource   string
	globalLogLevel string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		if errors.Is(err, handlers.ErrMissingSource) {
			fmt.Fprintf(os.Stderr, "error: %v\nPoint --source (or source.path in .codex/config.yaml) at a legends export.\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	rootCmd := newRootCmd()
	return rootCmd.ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "codex",
		Short:         "Compile the poetry of a Dwarf Fortress world into a codex",
		Long:          "Reads a legends export, builds personas for its poets and asks a language model to write every poem the world remembers.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&globalWorld, "world", "w", "", "World name (overrides world.name)")
	rootCmd.PersistentFlags().StringVarP(&globalSource, "source", "s", "", "Legends export to read (overrides source.path)")
	rootCmd.PersistentFlags().StringVar(&globalLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides log.level)")

	rootCmd.AddCommand(
		newInitCmd(),
		newBuildCmd(),
		newFormsCmd(),
		newWorksCmd(),
		newPoetsCmd(),
		newExportCmd(),
		newRunsCmd(),
	)

	return rootCmd
}
