package mocks

import (
	"context"

	"github.com/ersonp/legends-codex/internal/domain/entities"
)

// ArchiveStore is a mock implementation of ports.ArchiveStore.
type ArchiveStore struct {
	Runs []entities.Run
	Err  error

	// Call tracking
	SaveRunCallCount int
	Closed           bool
}

// EnsureSchema returns the configured error.
func (m *ArchiveStore) EnsureSchema(ctx context.Context) error {
	return m.Err
}

// Close marks the store closed.
func (m *ArchiveStore) Close() error {
	m.Closed = true
	return nil
}

// SaveRun appends the run.
func (m *ArchiveStore) SaveRun(ctx context.Context, run *entities.Run) error {
	m.SaveRunCallCount++
	if m.Err != nil {
		return m.Err
	}
	m.Runs = append(m.Runs, *run)
	return nil
}

// ListRuns returns stored runs, newest first, without poems.
func (m *ArchiveStore) ListRuns(ctx context.Context, limit int) ([]entities.Run, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	runs := make([]entities.Run, 0, len(m.Runs))
	for i := len(m.Runs) - 1; i >= 0; i-- {
		run := m.Runs[i]
		run.Poems = nil
		runs = append(runs, run)
		if limit > 0 && len(runs) == limit {
			break
		}
	}
	return runs, nil
}

// FindRun returns the stored run with the given id, or nil.
func (m *ArchiveStore) FindRun(ctx context.Context, id string) (*entities.Run, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for i := range m.Runs {
		if m.Runs[i].ID == id {
			run := m.Runs[i]
			return &run, nil
		}
	}
	return nil, nil
}
