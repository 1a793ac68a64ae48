package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ersonp/legends-codex/internal/application/handlers"
	"github.com/ersonp/legends-codex/internal/domain/entities"
	"github.com/ersonp/legends-codex/internal/domain/ports"
	"github.com/ersonp/legends-codex/internal/infrastructure/relationaldb/sqlite"
)

type buildFlags struct {
	output      string
	model       string
	concurrency int
	timeout     time.Duration
	archive     bool
	quiet       bool
}

func newBuildCmd() *cobra.Command {
	var flags buildFlags

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Write the codex of a world",
		Long: `Scans the legends export for poetic forms, poems and their authors,
asks the language model for every poem and writes the codex text file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Codex file to write (default: \"Codex of <world>.txt\")")
	cmd.Flags().StringVarP(&flags.model, "model", "m", "", "Model to generate with (overrides llm.model)")
	cmd.Flags().IntVarP(&flags.concurrency, "concurrency", "c", 0, "Generation requests in flight (overrides generation.concurrency)")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", 0, "Deadline per generation request (overrides generation.timeout)")
	cmd.Flags().BoolVar(&flags.archive, "archive", false, "Record the run in the world's archive")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "Hide per-poem progress")

	return cmd
}

func runBuild(cmd *cobra.Command, flags buildFlags) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		cfg := d.Config
		if flags.output != "" {
			cfg.World.Output = flags.output
		}
		if flags.model != "" {
			cfg.LLM.Model = flags.model
		}
		if flags.concurrency > 0 {
			cfg.Generation.Concurrency = flags.concurrency
		}
		if flags.timeout > 0 {
			cfg.Generation.Timeout = flags.timeout
		}

		// The source is checked before any backend is touched so a missing
		// export leaves nothing behind.
		doc, err := handlers.LoadDocument(cfg.Source.Path, cfg.Source.Encoding)
		if err != nil {
			return err
		}

		gen, err := d.generationService()
		if err != nil {
			return err
		}

		opts := handlers.BuildOptions{
			SourcePath: cfg.Source.Path,
			Encoding:   cfg.Source.Encoding,
			World:      cfg.World.Name,
			OutputPath: cfg.OutputPath(),
			Document:   doc,
		}
		if !flags.quiet {
			opts.Progress = func(done, total int, title string) {
				fmt.Printf("  [%d/%d] %s\n", done, total, title)
			}
		}

		build := func(archive ports.ArchiveStore) error {
			fmt.Printf("Building the codex of %s with %s...\n", cfg.World.Name, gen.Model())

			handler := handlers.NewBuildHandler(d.anthologyService(gen), archive, d.Logger)
			result, err := handler.Handle(ctx, opts)
			if err != nil {
				return err
			}

			displayBuildResult(result)
			return nil
		}

		if !flags.archive {
			return build(nil)
		}
		return d.withArchive(ctx, func(repo *sqlite.Repository) error {
			return build(repo)
		})
	})
}

func displayBuildResult(result *handlers.BuildResult) {
	a := result.Anthology
	fmt.Printf("\nWrote %d poems to %s\n", len(a.Poems), result.OutputPath)
	if failures := a.Failures(); failures > 0 {
		fmt.Printf("  %d poems could not be generated\n", failures)
	}
	displayStats(a.Stats)
	if result.RunID != "" {
		fmt.Printf("Archived as run %s\n", result.RunID)
	}
}

func displayStats(stats entities.ScanStats) {
	skipped := []struct {
		label string
		count int
	}{
		{"incomplete poetic forms", stats.FormsSkipped},
		{"incomplete written works", stats.WorksSkipped},
		{"works that are not poems", stats.WorksFiltered},
		{"poems with an unknown form", stats.DanglingForms},
		{"figures without a name", stats.NamesSkipped},
		{"authors without a persona", stats.PersonasSkipped},
	}
	for _, s := range skipped {
		if s.count > 0 {
			fmt.Printf("  skipped %d %s\n", s.count, s.label)
		}
	}
}
