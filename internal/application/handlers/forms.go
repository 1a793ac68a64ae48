package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/legends-codex/internal/domain/ports"
	"github.com/ersonp/legends-codex/internal/domain/services"
)

// FormIndexHandler indexes and searches a world's poetic forms.
type FormIndexHandler struct {
	catalog *services.CatalogService
	index   *services.FormIndexService
}

// NewFormIndexHandler creates a new form index handler.
func NewFormIndexHandler(catalog *services.CatalogService, index *services.FormIndexService) *FormIndexHandler {
	return &FormIndexHandler{
		catalog: catalog,
		index:   index,
	}
}

// IndexResult contains the result of indexing.
type IndexResult struct {
	Indexed int
	Skipped int
}

// Index embeds every complete poetic form of the export. With reset, the
// world's collection is dropped first.
func (h *FormIndexHandler) Index(ctx context.Context, sourcePath, encoding string, reset bool) (*IndexResult, error) {
	doc, err := LoadDocument(sourcePath, encoding)
	if err != nil {
		return nil, err
	}

	forms, skipped := h.catalog.BuildForms(doc)

	if reset {
		if err := h.index.Reset(ctx); err != nil {
			return nil, err
		}
	}

	n, err := h.index.Index(ctx, forms)
	if err != nil {
		return nil, fmt.Errorf("indexing forms: %w", err)
	}

	return &IndexResult{
		Indexed: n,
		Skipped: skipped,
	}, nil
}

// Search returns the forms closest in meaning to query.
func (h *FormIndexHandler) Search(ctx context.Context, query string, limit int) ([]ports.FormMatch, error) {
	matches, err := h.index.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("searching forms: %w", err)
	}
	return matches, nil
}
