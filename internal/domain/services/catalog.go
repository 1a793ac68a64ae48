// Package services contains domain business logic.
package services

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ersonp/legends-codex/internal/domain/entities"
	"github.com/ersonp/legends-codex/internal/domain/legends"
)

// Record tags scanned in a legends export.
const (
	TagPoeticForm       = "poetic_form"
	TagWrittenContent   = "written_content"
	TagHistoricalFigure = "historical_figure"
)

// CatalogService builds the poetic form, written work and name catalogs.
// Records missing a required field are dropped, never reported as errors.
type CatalogService struct {
	logger *zap.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{logger: logger}
}

// Build runs the three builders concurrently; they share no state.
func (s *CatalogService) Build(ctx context.Context, doc *legends.Document) (*entities.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	catalog := &entities.Catalog{}

	var g errgroup.Group
	g.Go(func() error {
		catalog.Forms, catalog.Stats.FormsSkipped = s.BuildForms(doc)
		return nil
	})
	g.Go(func() error {
		catalog.Works, catalog.Stats.WorksSkipped, catalog.Stats.WorksFiltered = s.BuildWorks(doc)
		return nil
	})
	g.Go(func() error {
		catalog.Names, catalog.Stats.NamesSkipped = s.BuildNames(doc)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Debug("catalog built",
		zap.Int("forms", len(catalog.Forms)),
		zap.Int("works", len(catalog.Works)),
		zap.Int("names", len(catalog.Names)),
		zap.Int("forms_skipped", catalog.Stats.FormsSkipped),
		zap.Int("works_skipped", catalog.Stats.WorksSkipped),
		zap.Int("works_filtered", catalog.Stats.WorksFiltered),
		zap.Int("names_skipped", catalog.Stats.NamesSkipped))

	return catalog, nil
}

// BuildForms returns the poetic forms keyed by id and the number of
// incomplete records skipped. The last record seen for an id wins.
func (s *CatalogService) BuildForms(doc *legends.Document) (map[int]entities.PoeticForm, int) {
	forms := make(map[int]entities.PoeticForm)
	skipped := 0

	for rec := range doc.Records(TagPoeticForm) {
		id, okID := rec.Int("id")
		desc, okDesc := rec.Text("description")
		if !okID || !okDesc {
			skipped++
			s.logger.Debug("skipping incomplete record", zap.String("kind", TagPoeticForm))
			continue
		}
		forms[id] = entities.PoeticForm{ID: id, Description: desc}
	}

	return forms, skipped
}

// BuildWorks returns the poems in source order, the number of incomplete
// records skipped, and the number of complete records whose category is
// not a poem.
func (s *CatalogService) BuildWorks(doc *legends.Document) ([]entities.WrittenWork, int, int) {
	var works []entities.WrittenWork
	skipped, filtered := 0, 0

	for rec := range doc.Records(TagWrittenContent) {
		work, ok := parseWork(rec)
		if !ok {
			skipped++
			s.logger.Debug("skipping incomplete record", zap.String("kind", TagWrittenContent))
			continue
		}
		if work.FormType != entities.FormTypePoem {
			filtered++
			continue
		}
		works = append(works, work)
	}

	return works, skipped, filtered
}

func parseWork(rec legends.Record) (entities.WrittenWork, bool) {
	id, okID := rec.Int("id")
	title, okTitle := rec.Text("title")
	author, okAuthor := rec.Int("author_hfid")
	formID, okFormID := rec.Int("form_id")
	formType, okForm := rec.Text("form")
	if !okID || !okTitle || !okAuthor || !okFormID || !okForm {
		return entities.WrittenWork{}, false
	}
	return entities.WrittenWork{
		ID:         id,
		Title:      title,
		AuthorHFID: author,
		FormID:     formID,
		FormType:   formType,
	}, true
}

// BuildNames returns the name directory and the number of records skipped.
func (s *CatalogService) BuildNames(doc *legends.Document) (map[int]string, int) {
	names := make(map[int]string)
	skipped := 0

	for rec := range doc.Records(TagHistoricalFigure) {
		id, okID := rec.Int("id")
		name, okName := rec.Text("name")
		if !okID || !okName {
			skipped++
			continue
		}
		names[id] = name
	}

	return names, skipped
}
