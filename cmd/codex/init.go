package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ersonp/legends-codex/internal/application/handlers"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a codex workspace",
		Long:  "Creates a .codex directory with a commented default configuration.",
		Args:  cobra.NoArgs,
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	result, err := handlers.NewInitHandler().Handle(cwd, globalWorld)
	if err != nil {
		return err
	}

	fmt.Printf("Created %s\n", result.ConfigPath)
	fmt.Printf("World: %s\n", result.World)
	fmt.Printf("  Archive:    %s\n", result.ArchivePath)
	fmt.Printf("  Form index: %s\n", result.CollectionName)
	fmt.Println("Codex initialized successfully!")

	return nil
}
