// Package ports defines interfaces for external service communication.
package ports

import "context"

// GenerationRequest is everything a generator needs to write one poem.
type GenerationRequest struct {
	FormDescription string
	Title           string
	Author          string
	Persona         string
}

// PoemGenerator defines the interface for the text-generation backend.
type PoemGenerator interface {
	// Generate returns the poem text for the request.
	Generate(ctx context.Context, req GenerationRequest) (string, error)

	// Model returns the model identifier requests are sent to.
	Model() string
}
