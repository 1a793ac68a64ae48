package ports

import (
	"context"

	"github.com/ersonp/legends-codex/internal/domain/entities"
)

// ArchiveStore records anthology builds so their poems can be revisited
// without generating them again.
type ArchiveStore interface {
	// EnsureSchema creates the database schema if it doesn't exist.
	EnsureSchema(ctx context.Context) error

	// Close closes the database connection.
	Close() error

	// SaveRun stores a run and all of its poems atomically.
	SaveRun(ctx context.Context, run *entities.Run) error

	// ListRuns lists runs, newest first, without their poems.
	ListRuns(ctx context.Context, limit int) ([]entities.Run, error)

	// FindRun returns a run with its poems in source position order.
	// Returns nil if the run does not exist.
	FindRun(ctx context.Context, id string) (*entities.Run, error)
}
