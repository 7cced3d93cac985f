package cardgen

import "github.com/rsinha/flashdown/internal/llm"

// SetSchema defines the JSON schema for LLM card-set generation responses.
var SetSchema = &llm.Schema{
	Name:        "flashcard-set",
	Description: "A flashcard set of term/definition pairs with a title",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Short descriptive title for the set",
			},
			"description": map[string]any{
				"type":        "string",
				"description": "One-sentence description of what the set covers",
			},
			"cards": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"term": map[string]any{
							"type":        "string",
							"description": "The front of the card: a short, specific term",
						},
						"definition": map[string]any{
							"type":        "string",
							"description": "The back of the card: a single clear identifying sentence or phrase",
						},
					},
					"required":             []any{"term", "definition"},
					"additionalProperties": false,
				},
				"description": "The generated cards, exactly the requested number",
			},
		},
		"required":             []any{"title", "description", "cards"},
		"additionalProperties": false,
	},
}
