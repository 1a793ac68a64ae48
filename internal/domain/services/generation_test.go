package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/legends-codex/internal/domain/mocks"
	"github.com/ersonp/legends-codex/internal/domain/ports"
)

func requestsFor(titles ...string) []ports.GenerationRequest {
	reqs := make([]ports.GenerationRequest, len(titles))
	for i, title := range titles {
		reqs[i] = ports.GenerationRequest{Title: title, Author: "Urist"}
	}
	return reqs
}

func TestFailurePlaceholder(t *testing.T) {
	text := FailurePlaceholder(errors.New("connection refused"))
	assert.Equal(t, "[Poem generation failed: connection refused]", text)
	assert.True(t, strings.HasPrefix(text, FailurePrefix))
}

func TestGenerationService_Generate(t *testing.T) {
	t.Run("trims output", func(t *testing.T) {
		gen := &mocks.PoemGenerator{Poem: "\n  stone remembers  \n"}
		svc := NewGenerationService(gen, GenerationOptions{}, nil)

		result := svc.Generate(t.Context(), ports.GenerationRequest{Title: "x"})
		assert.Equal(t, GenerationResult{Text: "stone remembers"}, result)
	})

	t.Run("failure becomes placeholder", func(t *testing.T) {
		gen := &mocks.PoemGenerator{Err: errors.New("model not found")}
		svc := NewGenerationService(gen, GenerationOptions{}, nil)

		result := svc.Generate(t.Context(), ports.GenerationRequest{Title: "x"})
		assert.True(t, result.Failed)
		assert.Equal(t, "[Poem generation failed: model not found]", result.Text)
	})

	t.Run("timeout bounds the call", func(t *testing.T) {
		gen := &mocks.PoemGenerator{
			GenerateFn: func(ctx context.Context, req ports.GenerationRequest) (string, error) {
				<-ctx.Done()
				return "", ctx.Err()
			},
		}
		svc := NewGenerationService(gen, GenerationOptions{Timeout: 10 * time.Millisecond}, nil)

		result := svc.Generate(t.Context(), ports.GenerationRequest{Title: "x"})
		assert.True(t, result.Failed)
		assert.Contains(t, result.Text, context.DeadlineExceeded.Error())
	})
}

func TestGenerationService_GenerateAll_ContinuesPastFailures(t *testing.T) {
	gen := &mocks.PoemGenerator{
		Poem: "a poem",
		Errs: map[string]error{"second": errors.New("boom")},
	}
	svc := NewGenerationService(gen, GenerationOptions{}, nil)

	results := svc.GenerateAll(t.Context(), requestsFor("first", "second", "third"), nil)

	require.Len(t, results, 3)
	assert.Equal(t, GenerationResult{Text: "a poem"}, results[0])
	assert.True(t, results[1].Failed)
	assert.True(t, strings.HasPrefix(results[1].Text, FailurePrefix))
	assert.Equal(t, GenerationResult{Text: "a poem"}, results[2])
	assert.Equal(t, 3, gen.CallCount(), "one call per work, no retries")
}

func TestGenerationService_GenerateAll_Sequential(t *testing.T) {
	var inFlight, peak atomic.Int32
	gen := &mocks.PoemGenerator{
		GenerateFn: func(ctx context.Context, req ports.GenerationRequest) (string, error) {
			n := inFlight.Add(1)
			defer inFlight.Add(-1)
			if n > peak.Load() {
				peak.Store(n)
			}
			time.Sleep(time.Millisecond)
			return req.Title, nil
		},
	}
	svc := NewGenerationService(gen, GenerationOptions{Concurrency: 0}, nil)

	results := svc.GenerateAll(t.Context(), requestsFor("a", "b", "c", "d"), nil)

	require.Len(t, results, 4)
	assert.Equal(t, int32(1), peak.Load())
	assert.Equal(t, []string{"a", "b", "c", "d"}, []string{results[0].Text, results[1].Text, results[2].Text, results[3].Text})
	assert.Equal(t, []string{"a", "b", "c", "d"}, []string{gen.Requests[0].Title, gen.Requests[1].Title, gen.Requests[2].Title, gen.Requests[3].Title})
}

func TestGenerationService_GenerateAll_ConcurrentKeepsSourceOrder(t *testing.T) {
	titles := make([]string, 12)
	for i := range titles {
		titles[i] = fmt.Sprintf("work-%02d", i)
	}

	gen := &mocks.PoemGenerator{
		GenerateFn: func(ctx context.Context, req ports.GenerationRequest) (string, error) {
			// Later works finish first.
			var idx int
			_, _ = fmt.Sscanf(req.Title, "work-%d", &idx)
			time.Sleep(time.Duration(len(titles)-idx) * time.Millisecond)
			return "poem for " + req.Title, nil
		},
	}
	svc := NewGenerationService(gen, GenerationOptions{Concurrency: 4}, nil)

	var calls atomic.Int32
	results := svc.GenerateAll(t.Context(), requestsFor(titles...), func(done, total int, title string) {
		calls.Add(1)
		assert.Equal(t, len(titles), total)
		assert.LessOrEqual(t, done, total)
	})

	require.Len(t, results, len(titles))
	for i, title := range titles {
		assert.Equal(t, "poem for "+title, results[i].Text)
	}
	assert.Equal(t, int32(len(titles)), calls.Load())
}

func TestGenerationService_GenerateAll_Empty(t *testing.T) {
	gen := &mocks.PoemGenerator{}
	svc := NewGenerationService(gen, GenerationOptions{}, nil)

	results := svc.GenerateAll(t.Context(), nil, nil)
	assert.Empty(t, results)
	assert.Equal(t, 0, gen.CallCount())
}

func TestGenerationService_Model(t *testing.T) {
	svc := NewGenerationService(&mocks.PoemGenerator{ModelName: "phi3"}, GenerationOptions{}, nil)
	assert.Equal(t, "phi3", svc.Model())
}
