package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/legends-codex/internal/application/handlers"
	"github.com/ersonp/legends-codex/internal/infrastructure/document"
	"github.com/ersonp/legends-codex/internal/infrastructure/relationaldb/sqlite"
)

func newRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Browse archived builds",
		Long:  "Reads the runs recorded by 'codex build --archive' for the current world.",
	}

	cmd.AddCommand(
		newRunsListCmd(),
		newRunsShowCmd(),
	)

	return cmd
}

func newRunsListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List archived runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDeps(func(d *Deps) error {
				return d.withArchive(ctx, func(repo *sqlite.Repository) error {
					runs, err := handlers.NewRunsHandler(repo).List(ctx, limit)
					if err != nil {
						return err
					}

					if len(runs) == 0 {
						fmt.Println("No runs archived. Use 'codex build --archive'.")
						return nil
					}

					fmt.Printf("%d runs of %s:\n\n", len(runs), d.Config.World.Name)
					for _, run := range runs {
						fmt.Printf("%s  %s\n", run.ID, run.CreatedAt.Local().Format("2006-01-02 15:04"))
						fmt.Printf("  %d poems (%d failed) with %s -> %s\n", run.PoemCount, run.Failures, run.Model, run.OutputPath)
					}
					return nil
				})
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", DefaultRunsLimit, "Maximum number of runs to display")

	return cmd
}

func newRunsShowCmd() *cobra.Command {
	var write string

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show the poems of an archived run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDeps(func(d *Deps) error {
				return d.withArchive(ctx, func(repo *sqlite.Repository) error {
					h := handlers.NewRunsHandler(repo)

					if write != "" {
						anthology, err := h.Anthology(ctx, args[0])
						if err != nil {
							return err
						}
						if err := document.WriteFile(write, anthology); err != nil {
							return err
						}
						fmt.Printf("Wrote %d poems to %s\n", len(anthology.Poems), write)
						return nil
					}

					run, err := h.Show(ctx, args[0])
					if err != nil {
						return err
					}

					fmt.Printf("Run %s of %s\n", run.ID, run.World)
					fmt.Printf("  Created: %s\n", run.CreatedAt.Local().Format("2006-01-02 15:04:05"))
					fmt.Printf("  Source:  %s\n", run.SourcePath)
					fmt.Printf("  Model:   %s\n", run.Model)
					fmt.Printf("  Output:  %s\n\n", run.OutputPath)

					for _, p := range run.Poems {
						fmt.Printf("✦ %s, by %s\n", p.Title, p.Author)
						fmt.Printf("%s\n\n", p.Text)
					}
					return nil
				})
			})
		},
	}

	cmd.Flags().StringVar(&write, "write", "", "Write the run back out as a codex file instead")

	return cmd
}
