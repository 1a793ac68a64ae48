package handlers

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/ersonp/legends-codex/internal/domain/entities"
	"github.com/ersonp/legends-codex/internal/domain/services"
)

// CatalogHandler reads a legends export without generating anything.
type CatalogHandler struct {
	anthology *services.AnthologyService
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(anthology *services.AnthologyService) *CatalogHandler {
	return &CatalogHandler{
		anthology: anthology,
	}
}

// Handle loads the export and prepares its codex.
func (h *CatalogHandler) Handle(ctx context.Context, sourcePath, encoding string) (*entities.Codex, error) {
	doc, err := LoadDocument(sourcePath, encoding)
	if err != nil {
		return nil, err
	}

	codex, err := h.anthology.Prepare(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("preparing codex: %w", err)
	}
	return codex, nil
}

// WorkRow is one retained work with everything known about its author
// and form.
type WorkRow struct {
	WorkID          int    `json:"work_id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	Bio             string `json:"bio,omitempty"`
	FormID          int    `json:"form_id"`
	FormDescription string `json:"form_description"`
}

// WorkRows returns one row per resolved work, in source order.
func WorkRows(codex *entities.Codex) []WorkRow {
	rows := make([]WorkRow, 0, len(codex.Works))
	for i := range codex.Works {
		work := &codex.Works[i]
		rows = append(rows, WorkRow{
			WorkID:          work.ID,
			Title:           work.Title,
			Author:          codex.AuthorName(work.AuthorHFID),
			Bio:             codex.Bio(work.AuthorHFID),
			FormID:          work.FormID,
			FormDescription: codex.FormDescription(work.FormID),
		})
	}
	return rows
}

// SortedForms returns the catalog's forms ordered by id.
func SortedForms(codex *entities.Codex) []entities.PoeticForm {
	forms := make([]entities.PoeticForm, 0, len(codex.Catalog.Forms))
	for _, form := range codex.Catalog.Forms {
		forms = append(forms, form)
	}
	slices.SortFunc(forms, func(a, b entities.PoeticForm) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return forms
}

// RankedPoets returns the personas by poetry score, highest first, with
// ties broken by id.
func RankedPoets(codex *entities.Codex) []entities.Persona {
	poets := make([]entities.Persona, 0, len(codex.Personas))
	for _, p := range codex.Personas {
		poets = append(poets, p)
	}
	slices.SortFunc(poets, func(a, b entities.Persona) int {
		if c := cmp.Compare(b.PoetryScore, a.PoetryScore); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return poets
}
