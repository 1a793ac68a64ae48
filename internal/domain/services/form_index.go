package services

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/ersonp/legends-codex/internal/domain/entities"
	"github.com/ersonp/legends-codex/internal/domain/ports"
)

// FormIndexService keeps a world's poetic forms searchable by meaning.
type FormIndexService struct {
	embedder ports.Embedder
	index    ports.FormIndex
	world    string
	logger   *zap.Logger
}

// NewFormIndexService creates a new form index service.
func NewFormIndexService(embedder ports.Embedder, index ports.FormIndex, world string, logger *zap.Logger) *FormIndexService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FormIndexService{
		embedder: embedder,
		index:    index,
		world:    world,
		logger:   logger,
	}
}

// Index embeds every form description and upserts it, creating the
// collection on first use. It returns the number of forms indexed.
func (s *FormIndexService) Index(ctx context.Context, forms map[int]entities.PoeticForm) (int, error) {
	if len(forms) == 0 {
		return 0, nil
	}

	ids := make([]int, 0, len(forms))
	for id := range forms {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	texts := make([]string, len(ids))
	for i, id := range ids {
		texts[i] = forms[id].Description
	}

	embeddings, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embedding form descriptions: %w", err)
	}
	if len(embeddings) != len(ids) {
		return 0, fmt.Errorf("embedder returned %d vectors for %d forms", len(embeddings), len(ids))
	}
	if len(embeddings[0]) == 0 {
		return 0, errors.New("embedder returned empty vectors")
	}

	if err := s.index.EnsureCollection(ctx, uint64(len(embeddings[0]))); err != nil {
		return 0, fmt.Errorf("ensuring collection: %w", err)
	}

	indexed := make([]ports.IndexedForm, len(ids))
	for i, id := range ids {
		indexed[i] = ports.IndexedForm{
			World:     s.world,
			Form:      forms[id],
			Embedding: embeddings[i],
		}
	}

	if err := s.index.SaveForms(ctx, indexed); err != nil {
		return 0, fmt.Errorf("saving forms: %w", err)
	}

	s.logger.Info("forms indexed", zap.String("world", s.world), zap.Int("count", len(indexed)))
	return len(indexed), nil
}

// Search returns the forms whose descriptions are closest to query.
func (s *FormIndexService) Search(ctx context.Context, query string, limit int) ([]ports.FormMatch, error) {
	if query == "" {
		return nil, errors.New("query is required")
	}

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	matches, err := s.index.Search(ctx, embedding, limit)
	if err != nil {
		return nil, fmt.Errorf("searching forms: %w", err)
	}
	return matches, nil
}

// Reset drops the world's collection so the next Index starts empty.
func (s *FormIndexService) Reset(ctx context.Context) error {
	if err := s.index.DeleteCollection(ctx); err != nil {
		return fmt.Errorf("deleting collection: %w", err)
	}
	return nil
}
