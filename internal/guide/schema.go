package guide

import "github.com/rsinha/flashdown/internal/llm"

// GuideSchema defines the JSON schema for study guide responses.
var GuideSchema = &llm.Schema{
	Name:        "study-guide",
	Description: "A short study guide for a flashcard set",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type": "string",
			},
			"overview": map[string]any{
				"type":        "string",
				"description": "2-3 sentence overview of the set",
			},
			"sections": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"heading": map[string]any{
							"type": "string",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Short explanation connecting the section's terms",
						},
						"terms": map[string]any{
							"type":  "array",
							"items": map[string]any{"type": "string"},
						},
					},
					"required":             []any{"heading", "explanation", "terms"},
					"additionalProperties": false,
				},
			},
			"tips": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "2-4 memorization tips specific to this material",
			},
		},
		"required":             []any{"title", "overview", "sections", "tips"},
		"additionalProperties": false,
	},
}
