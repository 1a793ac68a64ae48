package mocks

import (
	"context"

	"github.com/ersonp/legends-codex/internal/domain/ports"
)

// FormIndex is a mock implementation of ports.FormIndex.
type FormIndex struct {
	Matches []ports.FormMatch
	Err     error

	// Collection errors (separate from Err for fine-grained control)
	EnsureCollectionErr error
	DeleteCollectionErr error

	// Call tracking
	SaveFormsCallCount        int
	SaveFormsLastForms        []ports.IndexedForm
	EnsureCollectionCallCount int
	EnsureCollectionLastSize  uint64
	DeleteCollectionCallCount int
	SearchLastLimit           int
}

// EnsureCollection records the vector size.
func (m *FormIndex) EnsureCollection(ctx context.Context, vectorSize uint64) error {
	m.EnsureCollectionCallCount++
	m.EnsureCollectionLastSize = vectorSize
	return m.EnsureCollectionErr
}

// DeleteCollection records the call.
func (m *FormIndex) DeleteCollection(ctx context.Context) error {
	m.DeleteCollectionCallCount++
	return m.DeleteCollectionErr
}

// SaveForms records the forms.
func (m *FormIndex) SaveForms(ctx context.Context, forms []ports.IndexedForm) error {
	m.SaveFormsCallCount++
	m.SaveFormsLastForms = forms
	return m.Err
}

// Search returns the configured matches, truncated to limit.
func (m *FormIndex) Search(ctx context.Context, embedding []float32, limit int) ([]ports.FormMatch, error) {
	m.SearchLastLimit = limit
	if m.Err != nil {
		return nil, m.Err
	}
	if limit > 0 && len(m.Matches) > limit {
		return m.Matches[:limit], nil
	}
	return m.Matches, nil
}
