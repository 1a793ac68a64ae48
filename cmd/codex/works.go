package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/legends-codex/internal/application/handlers"
)

func newWorksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "works",
		Short: "Inspect the poems a build would generate",
	}

	cmd.AddCommand(newWorksListCmd())

	return cmd
}

func newWorksListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the poems of the world",
		Long:  "Lists every poem whose form is known, in the order the codex would hold them.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDeps(func(d *Deps) error {
				codex, err := d.catalogHandler().Handle(ctx, d.Config.Source.Path, d.Config.Source.Encoding)
				if err != nil {
					return err
				}

				rows := handlers.WorkRows(codex)
				if len(rows) == 0 {
					fmt.Println("No poems found.")
					displayStats(codex.Catalog.Stats)
					return nil
				}

				fmt.Printf("%d poems:\n\n", len(rows))
				for i, row := range rows {
					fmt.Printf("%d. %s\n", i+1, row.Title)
					fmt.Printf("   by %s, form %d\n", row.Author, row.FormID)
					if row.Bio != "" {
						fmt.Printf("   %s\n", row.Bio)
					}
				}
				fmt.Println()
				displayStats(codex.Catalog.Stats)
				return nil
			})
		},
	}
}
