package ai

import "context"

// Generator is the text generation service boundary. Implementations map a
// structured prompt to free text or fail; they never interpret the result.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Embedder produces a vector representation of the given text, used by the
// resume retrieval index.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
