package cardgen

import "context"

// Generator produces flashcard sets using an LLM provider.
type Generator interface {
	// Generate produces a card set for the given input.
	// All configured validators are run before returning.
	Generate(ctx context.Context, input GenerateInput) (*Result, error)
}
