package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/legends-codex/internal/domain/entities"
	"github.com/ersonp/legends-codex/internal/domain/mocks"
	"github.com/ersonp/legends-codex/internal/domain/ports"
)

func TestFormIndexService_Index(t *testing.T) {
	emb := &mocks.Embedder{EmbeddingResult: []float32{0.1, 0.2, 0.3}}
	index := &mocks.FormIndex{}
	svc := NewFormIndexService(emb, index, "Testworld", nil)

	forms := map[int]entities.PoeticForm{
		12: {ID: 12, Description: "Long and slow"},
		10: {ID: 10, Description: "Short and sharp"},
	}

	n, err := svc.Index(t.Context(), forms)
	require.NoError(t, err)

	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"Short and sharp", "Long and slow"}, emb.EmbedBatchLastTexts)
	assert.Equal(t, 1, index.EnsureCollectionCallCount)
	assert.Equal(t, uint64(3), index.EnsureCollectionLastSize)
	require.Len(t, index.SaveFormsLastForms, 2)
	assert.Equal(t, 10, index.SaveFormsLastForms[0].Form.ID)
	assert.Equal(t, "Testworld", index.SaveFormsLastForms[0].World)
}

func TestFormIndexService_Index_Empty(t *testing.T) {
	index := &mocks.FormIndex{}
	svc := NewFormIndexService(&mocks.Embedder{}, index, "w", nil)

	n, err := svc.Index(t.Context(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 0, index.EnsureCollectionCallCount)
}

func TestFormIndexService_Index_Errors(t *testing.T) {
	forms := map[int]entities.PoeticForm{1: {ID: 1, Description: "d"}}

	t.Run("embedder error", func(t *testing.T) {
		svc := NewFormIndexService(&mocks.Embedder{Err: errors.New("quota")}, &mocks.FormIndex{}, "w", nil)
		_, err := svc.Index(t.Context(), forms)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "embedding form descriptions")
	})

	t.Run("empty vectors", func(t *testing.T) {
		svc := NewFormIndexService(&mocks.Embedder{}, &mocks.FormIndex{}, "w", nil)
		_, err := svc.Index(t.Context(), forms)
		require.Error(t, err)
	})

	t.Run("collection error", func(t *testing.T) {
		index := &mocks.FormIndex{EnsureCollectionErr: errors.New("unavailable")}
		svc := NewFormIndexService(&mocks.Embedder{EmbeddingResult: []float32{1}}, index, "w", nil)
		_, err := svc.Index(t.Context(), forms)
		require.Error(t, err)
		assert.Equal(t, 0, index.SaveFormsCallCount)
	})
}

func TestFormIndexService_Search(t *testing.T) {
	index := &mocks.FormIndex{Matches: []ports.FormMatch{
		{Form: entities.PoeticForm{ID: 1, Description: "lament"}, Score: 0.9},
		{Form: entities.PoeticForm{ID: 2, Description: "ode"}, Score: 0.5},
	}}
	svc := NewFormIndexService(&mocks.Embedder{EmbeddingResult: []float32{1}}, index, "w", nil)

	matches, err := svc.Search(t.Context(), "sad song", 1)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, 1, matches[0].Form.ID)
	assert.Equal(t, 1, index.SearchLastLimit)

	_, err = svc.Search(t.Context(), "", 1)
	require.Error(t, err)
}

func TestFormIndexService_Reset(t *testing.T) {
	index := &mocks.FormIndex{}
	svc := NewFormIndexService(&mocks.Embedder{}, index, "Testworld", nil)

	require.NoError(t, svc.Reset(t.Context()))
	assert.Equal(t, 1, index.DeleteCollectionCallCount)

	index.DeleteCollectionErr = errors.New("not found")
	err := svc.Reset(t.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deleting collection")
}
