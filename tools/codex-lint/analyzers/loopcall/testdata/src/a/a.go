package a

import "context"

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

type Generator interface {
	Generate(ctx context.Context, title string) (string, error)
}

type group struct{}

func (group) Go(fn func() error) {}

func bad(ctx context.Context, forms []string, e Embedder) {
	for _, form := range forms {
		e.Embed(ctx, form) // want "Embed called inside loop - use EmbedBatch"
	}
}

func good(ctx context.Context, forms []string, e Embedder) {
	e.EmbedBatch(ctx, forms)
}

func goodFanOut(ctx context.Context, forms []string, e Embedder, g group) {
	for _, form := range forms {
		g.Go(func() error {
			_, err := e.Embed(ctx, form)
			return err
		})
	}
}

func goodGenerate(ctx context.Context, titles []string, gen Generator) {
	for _, title := range titles {
		gen.Generate(ctx, title)
	}
}
