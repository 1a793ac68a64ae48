package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/legends-codex/internal/application/handlers"
	"github.com/ersonp/legends-codex/internal/domain/entities"
)

func newPoetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "poets",
		Short: "Inspect the personas of the world's poets",
	}

	cmd.AddCommand(newPoetsListCmd())

	return cmd
}

func newPoetsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List poet personas",
		Long:  "Lists the persona built for every author of a poem, best poets first.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDeps(func(d *Deps) error {
				codex, err := d.catalogHandler().Handle(ctx, d.Config.Source.Path, d.Config.Source.Encoding)
				if err != nil {
					return err
				}

				poets := handlers.RankedPoets(codex)
				if len(poets) == 0 {
					fmt.Println("No poets found.")
					return nil
				}

				fmt.Printf("%d poets:\n\n", len(poets))
				for i := range poets {
					displayPoet(&poets[i])
				}
				return nil
			})
		},
	}
}

func displayPoet(p *entities.Persona) {
	fmt.Printf("%s (%d)\n", p.Name, p.ID)
	fmt.Printf("  %s\n", p.BioSummary)
	fmt.Printf("  Poetry score: %d\n", p.PoetryScore)
	if len(p.TopSkills) > 0 {
		fmt.Printf("  Top skills: %s\n", strings.ToLower(strings.Join(p.TopSkills, ", ")))
	}
	fmt.Println()
}
