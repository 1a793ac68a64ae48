package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/legends-codex/internal/application/handlers"
)

func newFormsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forms",
		Short: "Inspect and search poetic forms",
		Long:  "Lists the world's poetic forms and keeps them searchable by meaning in Qdrant.",
	}

	cmd.AddCommand(
		newFormsListCmd(),
		newFormsIndexCmd(),
		newFormsSearchCmd(),
	)

	return cmd
}

func newFormsListCmd() *cobra.Command {
	var full bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List poetic forms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDeps(func(d *Deps) error {
				codex, err := d.catalogHandler().Handle(ctx, d.Config.Source.Path, d.Config.Source.Encoding)
				if err != nil {
					return err
				}

				forms := handlers.SortedForms(codex)
				if len(forms) == 0 {
					fmt.Println("No poetic forms found.")
					return nil
				}

				fmt.Printf("%d poetic forms:\n\n", len(forms))
				for _, form := range forms {
					desc := form.Description
					if !full {
						desc = truncate(desc, DescriptionWidth)
					}
					fmt.Printf("  %4d  %s\n", form.ID, desc)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, "Show whole descriptions")

	return cmd
}

func newFormsIndexCmd() *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Embed poetic forms into the form index",
		Long:  "Embeds every poetic form description and upserts it into the world's Qdrant collection.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDeps(func(d *Deps) error {
				return d.withFormIndex(func(h *handlers.FormIndexHandler) error {
					result, err := h.Index(ctx, d.Config.Source.Path, d.Config.Source.Encoding, reset)
					if err != nil {
						return err
					}

					fmt.Printf("Indexed %d poetic forms into %s\n", result.Indexed, d.Config.FormCollection())
					if result.Skipped > 0 {
						fmt.Printf("  skipped %d incomplete forms\n", result.Skipped)
					}
					return nil
				})
			})
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "Drop the collection before indexing")

	return cmd
}

func newFormsSearchCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <description>",
		Short: "Find poetic forms by meaning",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDeps(func(d *Deps) error {
				return d.withFormIndex(func(h *handlers.FormIndexHandler) error {
					matches, err := h.Search(ctx, args[0], limit)
					if err != nil {
						return err
					}

					if len(matches) == 0 {
						fmt.Println("No forms found. Run 'codex forms index' first.")
						return nil
					}

					fmt.Printf("Found %d forms:\n\n", len(matches))
					for i, m := range matches {
						fmt.Printf("%d. [%.2f] form %d\n", i+1, m.Score, m.Form.ID)
						fmt.Printf("   %s\n\n", m.Form.Description)
					}
					return nil
				})
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", DefaultSearchLimit, "Maximum number of results")

	return cmd
}

// truncate shortens s to width characters, marking the cut with "...".
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return strings.TrimSpace(string(runes[:width-3])) + "..."
}
