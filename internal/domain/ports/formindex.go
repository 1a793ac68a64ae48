package ports

import (
	"context"

	"github.com/ersonp/legends-codex/internal/domain/entities"
)

// IndexedForm is a poetic form paired with the embedding of its description.
type IndexedForm struct {
	World     string
	Form      entities.PoeticForm
	Embedding []float32
}

// FormMatch is a poetic form returned by a similarity search.
type FormMatch struct {
	Form  entities.PoeticForm
	Score float32
}

// FormIndex stores poetic forms for similarity search.
// Collection lifecycle lives here too; the index is always per world.
type FormIndex interface {
	// EnsureCollection creates the collection if it doesn't exist.
	EnsureCollection(ctx context.Context, vectorSize uint64) error

	// DeleteCollection removes the collection and all its data.
	DeleteCollection(ctx context.Context) error

	// SaveForms upserts forms with their embeddings.
	SaveForms(ctx context.Context, forms []IndexedForm) error

	// Search returns the forms closest to the embedding.
	Search(ctx context.Context, embedding []float32, limit int) ([]FormMatch, error)
}
