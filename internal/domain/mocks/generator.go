package mocks

import (
	"context"
	"sync"

	"github.com/ersonp/legends-codex/internal/domain/ports"
)

// PoemGenerator is a mock implementation of ports.PoemGenerator.
// It is safe for concurrent use.
type PoemGenerator struct {
	// Poem is returned for every request unless Poems has an entry for the title.
	Poem  string
	Poems map[string]string
	Err   error
	// Errs fails individual requests by title.
	Errs map[string]error
	// GenerateFn, when set, replaces the canned responses.
	GenerateFn func(ctx context.Context, req ports.GenerationRequest) (string, error)
	ModelName  string

	mu       sync.Mutex
	Requests []ports.GenerationRequest
}

// Generate records the request and returns the configured poem or error.
func (m *PoemGenerator) Generate(ctx context.Context, req ports.GenerationRequest) (string, error) {
	m.mu.Lock()
	m.Requests = append(m.Requests, req)
	m.mu.Unlock()

	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, req)
	}
	if m.Err != nil {
		return "", m.Err
	}
	if err, ok := m.Errs[req.Title]; ok {
		return "", err
	}
	if poem, ok := m.Poems[req.Title]; ok {
		return poem, nil
	}
	return m.Poem, nil
}

// Model returns the configured model name.
func (m *PoemGenerator) Model() string {
	if m.ModelName == "" {
		return "mock"
	}
	return m.ModelName
}

// CallCount returns how many requests were made.
func (m *PoemGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Requests)
}
