package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/ersonp/legends-codex/internal/domain/entities"
	"github.com/ersonp/legends-codex/internal/domain/ports"
)

// ErrRunNotFound is returned when an archived run does not exist.
var ErrRunNotFound = errors.New("run not found")

// RunsHandler reads the run archive.
type RunsHandler struct {
	archive ports.ArchiveStore
}

// NewRunsHandler creates a new runs handler.
func NewRunsHandler(archive ports.ArchiveStore) *RunsHandler {
	return &RunsHandler{
		archive: archive,
	}
}

// List returns archived runs, newest first.
func (h *RunsHandler) List(ctx context.Context, limit int) ([]entities.Run, error) {
	runs, err := h.archive.ListRuns(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	return runs, nil
}

// Show returns one run with its poems.
func (h *RunsHandler) Show(ctx context.Context, id string) (*entities.Run, error) {
	run, err := h.archive.FindRun(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("finding run: %w", err)
	}
	if run == nil {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return run, nil
}

// Anthology rebuilds the anthology of an archived run so it can be
// written out again. Contents use the archived authors.
func (h *RunsHandler) Anthology(ctx context.Context, id string) (*entities.Anthology, error) {
	run, err := h.Show(ctx, id)
	if err != nil {
		return nil, err
	}

	contents := make([]entities.TOCEntry, 0, len(run.Poems))
	for i := range run.Poems {
		contents = append(contents, entities.TOCEntry{
			Title:  run.Poems[i].Title,
			Author: run.Poems[i].Author,
		})
	}

	return &entities.Anthology{
		World:    run.World,
		Contents: contents,
		Poems:    run.Poems,
	}, nil
}
