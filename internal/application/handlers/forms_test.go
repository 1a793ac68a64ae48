package handlers

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/legends-codex/internal/domain/entities"
	"github.com/ersonp/legends-codex/internal/domain/mocks"
	"github.com/ersonp/legends-codex/internal/domain/ports"
	"github.com/ersonp/legends-codex/internal/domain/services"
	"github.com/ersonp/legends-codex/internal/infrastructure/source"
)

func newFormIndexHandler(emb *mocks.Embedder, index *mocks.FormIndex) *FormIndexHandler {
	svc := services.NewFormIndexService(emb, index, "The Mountainous Prairie", nil)
	return NewFormIndexHandler(services.NewCatalogService(nil), svc)
}

func TestFormIndexHandler_Index(t *testing.T) {
	emb := &mocks.Embedder{EmbeddingResult: []float32{0.1, 0.2}}
	index := &mocks.FormIndex{}

	result, err := newFormIndexHandler(emb, index).Index(t.Context(), writeLegends(t), source.EncodingAuto, false)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Indexed)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, 0, index.DeleteCollectionCallCount)
	assert.Equal(t, uint64(2), index.EnsureCollectionLastSize)
	require.Len(t, index.SaveFormsLastForms, 2)
	assert.Equal(t, "The Mountainous Prairie", index.SaveFormsLastForms[0].World)
}

func TestFormIndexHandler_Index_Reset(t *testing.T) {
	emb := &mocks.Embedder{EmbeddingResult: []float32{0.1}}
	index := &mocks.FormIndex{}

	_, err := newFormIndexHandler(emb, index).Index(t.Context(), writeLegends(t), source.EncodingAuto, true)
	require.NoError(t, err)

	assert.Equal(t, 1, index.DeleteCollectionCallCount)
	assert.Equal(t, 1, index.SaveFormsCallCount)
}

func TestFormIndexHandler_Index_MissingSource(t *testing.T) {
	index := &mocks.FormIndex{}

	_, err := newFormIndexHandler(&mocks.Embedder{}, index).Index(t.Context(), filepath.Join(t.TempDir(), "x.xml"), source.EncodingAuto, true)

	require.ErrorIs(t, err, ErrMissingSource)
	assert.Equal(t, 0, index.DeleteCollectionCallCount)
}

func TestFormIndexHandler_Index_EmbedError(t *testing.T) {
	emb := &mocks.Embedder{Err: errors.New("rate limited")}

	_, err := newFormIndexHandler(emb, &mocks.FormIndex{}).Index(t.Context(), writeLegends(t), source.EncodingAuto, false)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestFormIndexHandler_Search(t *testing.T) {
	emb := &mocks.Embedder{EmbeddingResult: []float32{0.1}}
	index := &mocks.FormIndex{
		Matches: []ports.FormMatch{
			{Form: entities.PoeticForm{ID: 2, Description: "A ribald couplet"}, Score: 0.9},
			{Form: entities.PoeticForm{ID: 1, Description: "A lament in three stanzas"}, Score: 0.4},
		},
	}

	matches, err := newFormIndexHandler(emb, index).Search(t.Context(), "bawdy verse", 1)
	require.NoError(t, err)

	require.Len(t, matches, 1)
	assert.Equal(t, 2, matches[0].Form.ID)
	assert.Equal(t, 1, index.SearchLastLimit)
}

func TestFormIndexHandler_Search_EmptyQuery(t *testing.T) {
	_, err := newFormIndexHandler(&mocks.Embedder{}, &mocks.FormIndex{}).Search(t.Context(), "", 5)
	require.Error(t, err)
}
