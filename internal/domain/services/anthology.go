package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ersonp/legends-codex/internal/domain/entities"
	"github.com/ersonp/legends-codex/internal/domain/legends"
	"github.com/ersonp/legends-codex/internal/domain/ports"
)

// AnthologyService runs the codex pipeline: catalogs, then personas for
// the authors of retained works, then one generation request per work.
type AnthologyService struct {
	catalog    *CatalogService
	personas   *PersonaService
	generation *GenerationService
	logger     *zap.Logger
}

// NewAnthologyService creates a new anthology service. generation may be
// nil for callers that only need Prepare.
func NewAnthologyService(catalog *CatalogService, personas *PersonaService, generation *GenerationService, logger *zap.Logger) *AnthologyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnthologyService{
		catalog:    catalog,
		personas:   personas,
		generation: generation,
		logger:     logger,
	}
}

// Model returns the generator's model identifier, or "" without one.
func (s *AnthologyService) Model() string {
	if s.generation == nil {
		return ""
	}
	return s.generation.Model()
}

// Prepare builds the catalog and the personas of its authors.
func (s *AnthologyService) Prepare(ctx context.Context, doc *legends.Document) (*entities.Codex, error) {
	catalog, err := s.catalog.Build(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("building catalog: %w", err)
	}

	personas, skipped := s.personas.BuildPersonas(doc, catalog.AuthorIDs())
	catalog.Stats.PersonasSkipped = skipped

	works, dangling := catalog.Resolve()
	catalog.Stats.DanglingForms = dangling
	if dangling > 0 {
		s.logger.Info("excluding works with unknown forms", zap.Int("count", dangling))
	}

	return &entities.Codex{
		Catalog:  catalog,
		Personas: personas,
		Works:    works,
	}, nil
}

// Compile prepares the codex and generates a poem for every resolved work.
// Poems keep the works' source order.
func (s *AnthologyService) Compile(ctx context.Context, doc *legends.Document, world string, progress ProgressFunc) (*entities.Anthology, error) {
	if s.generation == nil {
		return nil, fmt.Errorf("compiling anthology: no generator configured")
	}

	codex, err := s.Prepare(ctx, doc)
	if err != nil {
		return nil, err
	}

	reqs := Requests(codex)
	results := s.generation.GenerateAll(ctx, reqs, progress)

	poems := make([]entities.Poem, len(codex.Works))
	for i := range codex.Works {
		work := &codex.Works[i]
		poems[i] = entities.Poem{
			Position: i,
			WorkID:   work.ID,
			Title:    work.Title,
			Author:   reqs[i].Author,
			Bio:      codex.Bio(work.AuthorHFID),
			FormID:   work.FormID,
			FormType: work.FormType,
			Text:     results[i].Text,
			Failed:   results[i].Failed,
		}
	}

	anthology := &entities.Anthology{
		World:    world,
		Contents: codex.Contents(),
		Poems:    poems,
		Stats:    codex.Catalog.Stats,
	}

	s.logger.Info("anthology compiled",
		zap.String("world", world),
		zap.Int("poems", len(poems)),
		zap.Int("failures", anthology.Failures()))

	return anthology, nil
}

// Requests builds one generation request per resolved work, in order.
func Requests(codex *entities.Codex) []ports.GenerationRequest {
	reqs := make([]ports.GenerationRequest, len(codex.Works))
	for i := range codex.Works {
		work := &codex.Works[i]
		reqs[i] = ports.GenerationRequest{
			FormDescription: codex.FormDescription(work.FormID),
			Title:           work.Title,
			Author:          codex.AuthorName(work.AuthorHFID),
			Persona:         codex.PersonaPhrase(work.AuthorHFID),
		}
	}
	return reqs
}
