// Package document renders a compiled anthology as a plain-text codex.
package document

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ersonp/legends-codex/internal/domain/entities"
)

const (
	// TOCEntryWidth is the number of characters shown per contents line.
	TOCEntryWidth = 60

	subtitle = "Lost Poems of a Procedurally Generated World"
	leader   = " .......................... "
)

var (
	banner = strings.Repeat("═", 68)
	rule   = strings.Repeat("─", 80)
)

// Write renders the anthology to w.
func Write(w io.Writer, a *entities.Anthology) error {
	bw := bufio.NewWriter(w)

	writeHeader(bw, a.World)
	writeContents(bw, a.Contents)
	for i := range a.Poems {
		writePoem(bw, &a.Poems[i])
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing codex: %w", err)
	}
	return nil
}

// WriteFile renders the anthology to path, replacing any existing file.
func WriteFile(path string, a *entities.Anthology) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing file: %w", cerr)
		}
	}()

	return Write(f, a)
}

func writeHeader(w *bufio.Writer, world string) {
	fmt.Fprintf(w, "%s\n", banner)
	fmt.Fprintf(w, "     THE CODEX OF %s\n", world)
	fmt.Fprintf(w, "     %s\n", subtitle)
	fmt.Fprintf(w, "%s\n\n", banner)
	fmt.Fprintf(w, " TABLE OF CONTENTS\n")
	fmt.Fprintf(w, "%s\n\n", banner)
}

func writeContents(w *bufio.Writer, entries []entities.TOCEntry) {
	for _, entry := range entries {
		fmt.Fprintf(w, "  %s\n", ContentsLine(entry))
	}
	fmt.Fprintf(w, "\n%s\n\n", rule)
}

func writePoem(w *bufio.Writer, p *entities.Poem) {
	fmt.Fprintf(w, "✦ WORK: %s\n", p.Title)
	fmt.Fprintf(w, "  Author: %s\n", p.Author)
	if p.Bio != "" {
		fmt.Fprintf(w, "  Bio: %s\n", p.Bio)
	}
	fmt.Fprintf(w, "  Form ID: %d\n", p.FormID)
	fmt.Fprintf(w, "  Type: %s\n\n", p.FormType)
	fmt.Fprintf(w, "  %s\n", p.Text)
	fmt.Fprintf(w, "\n%s\n\n", rule)
}

// ContentsLine formats one table of contents entry, cut to TOCEntryWidth
// characters.
func ContentsLine(entry entities.TOCEntry) string {
	line := []rune(entry.Title + leader + entry.Author)
	if len(line) > TOCEntryWidth {
		line = line[:TOCEntryWidth]
	}
	return string(line)
}
