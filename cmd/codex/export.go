package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/legends-codex/internal/application/handlers"
)

type exportFlags struct {
	format string
	output string
}

func newExportCmd() *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the world's poems without generating them",
		Long:  "Exports every poem with its author, persona bio and form description to JSON, CSV, or markdown.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "json", "Output format (json, csv, markdown)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func runExport(cmd *cobra.Command, flags exportFlags) error {
	if !slices.Contains(validFormats, flags.format) {
		return fmt.Errorf("invalid format %q, valid formats: %v", flags.format, validFormats)
	}

	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		codex, err := d.catalogHandler().Handle(ctx, d.Config.Source.Path, d.Config.Source.Encoding)
		if err != nil {
			return err
		}

		rows := handlers.WorkRows(codex)
		if len(rows) == 0 {
			return fmt.Errorf("no poems found to export")
		}

		return export(rows, flags)
	})
}

func export(rows []handlers.WorkRow, flags exportFlags) (err error) {
	var w io.Writer = os.Stdout
	var f *os.File

	if flags.output != "" {
		f, err = os.OpenFile(flags.output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return fmt.Errorf("creating file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing file: %w", cerr)
			}
		}()
		w = f
	}

	if err := formatRows(w, flags.format, rows); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if flags.output != "" {
		fmt.Printf("Exported %d poems to %s\n", len(rows), flags.output)
	}

	return nil
}

func formatRows(w io.Writer, format string, rows []handlers.WorkRow) error {
	switch format {
	case "json":
		return formatJSON(w, rows)
	case "csv":
		return formatCSV(w, rows)
	case "markdown":
		return formatMarkdown(w, rows)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func formatJSON(w io.Writer, rows []handlers.WorkRow) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(rows)
}

func formatCSV(w io.Writer, rows []handlers.WorkRow) error {
	writer := csv.NewWriter(w)

	header := []string{"work_id", "title", "author", "bio", "form_id", "form_description"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		row := []string{
			strconv.Itoa(r.WorkID),
			r.Title,
			r.Author,
			r.Bio,
			strconv.Itoa(r.FormID),
			r.FormDescription,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatMarkdown(w io.Writer, rows []handlers.WorkRow) error {
	if _, err := fmt.Fprintf(w, "# Poems\n\nTotal: %d poems\n\n", len(rows)); err != nil {
		return err
	}

	if _, err := fmt.Fprint(w, "| Title | Author | Bio | Form |\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprint(w, "|-------|--------|-----|------|\n"); err != nil {
		return err
	}

	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "| %s | %s | %s | %d |\n",
			escapeMarkdown(r.Title),
			escapeMarkdown(r.Author),
			escapeMarkdown(r.Bio),
			r.FormID,
		); err != nil {
			return err
		}
	}

	return nil
}

func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
