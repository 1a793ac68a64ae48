// Package sqlite provides a SQLite implementation of the ArchiveStore interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/ersonp/legends-codex/internal/domain/entities"
	"github.com/ersonp/legends-codex/internal/infrastructure/config"
)

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// timeLayout stores UTC timestamps at fixed width so they sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Repository implements ports.ArchiveStore using SQLite.
type Repository struct {
	db   *sql.DB
	path string
}

// NewRepository creates a new SQLite repository.
func NewRepository(cfg config.SQLiteConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// One connection keeps :memory: databases and transactions on the same handle.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("applying %q: %w", pragma, err)
		}
	}

	return &Repository{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema creates the database schema if it doesn't exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	-- One row per anthology build
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		world TEXT NOT NULL,
		source_path TEXT NOT NULL,
		model TEXT NOT NULL,
		output_path TEXT NOT NULL,
		poem_count INTEGER NOT NULL,
		failures INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	CREATE INDEX IF NOT EXISTS idx_runs_world ON runs(world);

	-- Poems of a run, in source position order
	CREATE TABLE IF NOT EXISTS poems (
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		work_id INTEGER NOT NULL,
		title TEXT NOT NULL,
		author TEXT NOT NULL,
		bio TEXT NOT NULL,
		form_id INTEGER NOT NULL,
		form_type TEXT NOT NULL,
		text TEXT NOT NULL,
		failed INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (run_id, position)
	);
	`

	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// SaveRun stores a run and all of its poems in one transaction. A missing
// ID or creation time is filled in on the run.
func (r *Repository) SaveRun(ctx context.Context, run *entities.Run) (err error) {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = timeNow()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, world, source_path, model, output_path, poem_count, failures, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.World,
		run.SourcePath,
		run.Model,
		run.OutputPath,
		run.PoemCount,
		run.Failures,
		run.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO poems (run_id, position, work_id, title, author, bio, form_id, form_type, text, failed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing poem insert: %w", err)
	}
	defer stmt.Close()

	for i := range run.Poems {
		p := &run.Poems[i]
		_, err = stmt.ExecContext(ctx,
			run.ID,
			p.Position,
			p.WorkID,
			p.Title,
			p.Author,
			p.Bio,
			p.FormID,
			p.FormType,
			p.Text,
			p.Failed,
		)
		if err != nil {
			return fmt.Errorf("saving poem %q: %w", p.Title, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing run: %w", err)
	}
	return nil
}

// ListRuns lists runs, newest first, without their poems. A limit of zero
// or less lists every run.
func (r *Repository) ListRuns(ctx context.Context, limit int) ([]entities.Run, error) {
	if limit <= 0 {
		limit = -1
	}

	query := `
		SELECT id, world, source_path, model, output_path, poem_count, failures, created_at
		FROM runs
		ORDER BY created_at DESC, id ASC
		LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var result []entities.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *run)
	}
	return result, rows.Err()
}

// FindRun returns a run with its poems in source position order.
// Returns nil if the run does not exist.
func (r *Repository) FindRun(ctx context.Context, id string) (*entities.Run, error) {
	query := `
		SELECT id, world, source_path, model, output_path, poem_count, failures, created_at
		FROM runs
		WHERE id = ?
	`
	run, err := scanRun(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	poems, err := r.findPoems(ctx, id)
	if err != nil {
		return nil, err
	}
	run.Poems = poems

	return run, nil
}

func (r *Repository) findPoems(ctx context.Context, runID string) ([]entities.Poem, error) {
	query := `
		SELECT position, work_id, title, author, bio, form_id, form_type, text, failed
		FROM poems
		WHERE run_id = ?
		ORDER BY position ASC
	`
	rows, err := r.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("querying poems: %w", err)
	}
	defer rows.Close()

	var poems []entities.Poem
	for rows.Next() {
		var p entities.Poem
		if err := rows.Scan(
			&p.Position,
			&p.WorkID,
			&p.Title,
			&p.Author,
			&p.Bio,
			&p.FormID,
			&p.FormType,
			&p.Text,
			&p.Failed,
		); err != nil {
			return nil, fmt.Errorf("scanning poem: %w", err)
		}
		poems = append(poems, p)
	}
	return poems, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*entities.Run, error) {
	var run entities.Run
	var createdAt string
	err := row.Scan(
		&run.ID,
		&run.World,
		&run.SourcePath,
		&run.Model,
		&run.OutputPath,
		&run.PoemCount,
		&run.Failures,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning run: %w", err)
	}

	run.CreatedAt, err = time.Parse(timeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing run time %q: %w", createdAt, err)
	}
	return &run, nil
}
