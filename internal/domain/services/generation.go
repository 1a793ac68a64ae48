package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ersonp/legends-codex/internal/domain/ports"
)

// FailurePrefix starts every placeholder written in place of a poem whose
// generation failed.
const FailurePrefix = "[Poem generation failed: "

// FailurePlaceholder returns the text stored in place of a failed poem.
func FailurePlaceholder(err error) string {
	return FailurePrefix + err.Error() + "]"
}

// GenerationOptions controls how poems are requested.
type GenerationOptions struct {
	// Concurrency is the number of requests in flight; 1 or less is sequential.
	Concurrency int
	// Timeout bounds each request; zero leaves it to the backend.
	Timeout time.Duration
}

// GenerationResult is the outcome of one generation request.
type GenerationResult struct {
	Text   string
	Failed bool
}

// ProgressFunc is called after each request completes.
type ProgressFunc func(done, total int, title string)

// GenerationService drives the poem generator. A failed request never
// aborts the batch: it becomes a placeholder and the batch moves on.
type GenerationService struct {
	generator ports.PoemGenerator
	opts      GenerationOptions
	logger    *zap.Logger
}

// NewGenerationService creates a new generation service.
func NewGenerationService(generator ports.PoemGenerator, opts GenerationOptions, logger *zap.Logger) *GenerationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &GenerationService{
		generator: generator,
		opts:      opts,
		logger:    logger,
	}
}

// Model returns the generator's model identifier.
func (s *GenerationService) Model() string {
	return s.generator.Model()
}

// Generate requests a single poem. Failures come back as a placeholder.
func (s *GenerationService) Generate(ctx context.Context, req ports.GenerationRequest) GenerationResult {
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	text, err := s.generator.Generate(ctx, req)
	if err != nil {
		s.logger.Warn("poem generation failed",
			zap.String("title", req.Title),
			zap.String("author", req.Author),
			zap.Error(err))
		return GenerationResult{Text: FailurePlaceholder(err), Failed: true}
	}

	return GenerationResult{Text: strings.TrimSpace(text)}
}

// GenerateAll requests every poem and returns results in request order,
// whatever order the requests complete in.
func (s *GenerationService) GenerateAll(ctx context.Context, reqs []ports.GenerationRequest, progress ProgressFunc) []GenerationResult {
	results := make([]GenerationResult, len(reqs))

	var (
		mu   sync.Mutex
		done int
	)

	var g errgroup.Group
	g.SetLimit(s.opts.Concurrency)
	for i := range reqs {
		g.Go(func() error {
			results[i] = s.Generate(ctx, reqs[i])
			if progress != nil {
				mu.Lock()
				done++
				progress(done, len(reqs), reqs[i].Title)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	return results
}
