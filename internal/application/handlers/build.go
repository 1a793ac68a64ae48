package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ersonp/legends-codex/internal/domain/entities"
	"github.com/ersonp/legends-codex/internal/domain/legends"
	"github.com/ersonp/legends-codex/internal/domain/ports"
	"github.com/ersonp/legends-codex/internal/domain/services"
	"github.com/ersonp/legends-codex/internal/infrastructure/document"
)

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// BuildHandler compiles a legends export into a codex file.
type BuildHandler struct {
	anthology *services.AnthologyService
	archive   ports.ArchiveStore
	logger    *zap.Logger
}

// NewBuildHandler creates a new build handler. archive may be nil, in
// which case runs are not recorded.
func NewBuildHandler(anthology *services.AnthologyService, archive ports.ArchiveStore, logger *zap.Logger) *BuildHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BuildHandler{
		anthology: anthology,
		archive:   archive,
		logger:    logger,
	}
}

// BuildOptions describes one codex build.
type BuildOptions struct {
	SourcePath string
	Encoding   string
	World      string
	OutputPath string
	Progress   services.ProgressFunc
	// Document, when set, is used instead of reading SourcePath.
	Document *legends.Document
}

// BuildResult contains the result of a build.
type BuildResult struct {
	Anthology  *entities.Anthology
	OutputPath string
	// RunID is empty unless the run was archived.
	RunID string
}

// Handle runs the whole pipeline and writes the codex. A missing source
// fails with ErrMissingSource before anything is written.
func (h *BuildHandler) Handle(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	doc := opts.Document
	if doc == nil {
		var err error
		if doc, err = LoadDocument(opts.SourcePath, opts.Encoding); err != nil {
			return nil, err
		}
	}

	anthology, err := h.anthology.Compile(ctx, doc, opts.World, opts.Progress)
	if err != nil {
		return nil, fmt.Errorf("compiling anthology: %w", err)
	}

	// Interrupted runs would otherwise be written as a page of failures.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("build interrupted: %w", err)
	}

	if err := document.WriteFile(opts.OutputPath, anthology); err != nil {
		return nil, fmt.Errorf("writing codex: %w", err)
	}

	h.logger.Info("codex written",
		zap.String("path", opts.OutputPath),
		zap.Int("poems", len(anthology.Poems)))

	result := &BuildResult{
		Anthology:  anthology,
		OutputPath: opts.OutputPath,
	}

	if h.archive != nil {
		run := &entities.Run{
			ID:         uuid.New().String(),
			World:      opts.World,
			SourcePath: opts.SourcePath,
			Model:      h.anthology.Model(),
			OutputPath: opts.OutputPath,
			PoemCount:  len(anthology.Poems),
			Failures:   anthology.Failures(),
			CreatedAt:  timeNow(),
			Poems:      anthology.Poems,
		}
		if err := h.archive.SaveRun(ctx, run); err != nil {
			return nil, fmt.Errorf("archiving run: %w", err)
		}
		result.RunID = run.ID
	}

	return result, nil
}
