package cardgen

import "github.com/rsinha/flashdown/internal/deck"

// SourceKind describes what the generation request is based on.
type SourceKind string

const (
	// SourceTopic means the request names a topic and the model invents
	// the material, e.g. "French kitchen vocabulary".
	SourceTopic SourceKind = "topic"

	// SourceText means the request carries source text to extract
	// term/definition pairs from.
	SourceText SourceKind = "text"
)

// GenerateInput holds all context needed to generate a card set.
type GenerateInput struct {
	// Kind selects between topic-driven and text-driven generation.
	Kind SourceKind

	// Topic is the subject to generate cards for (SourceTopic).
	Topic string

	// Text is the source material to extract cards from (SourceText).
	Text string

	// Count is the number of cards requested. Clamped to Config limits.
	Count int

	// Language is the language the terms should be in. Empty means the
	// language of the topic or source text.
	Language string

	// Difficulty is a free-form level hint, e.g. "beginner", "advanced".
	// Empty means no preference.
	Difficulty string

	// ExistingTerms lists terms already in the target set so the model
	// does not duplicate them.
	ExistingTerms []string
}

// Result is a generated card set before it is saved.
type Result struct {
	Title       string
	Description string
	Cards       []deck.Card
}
