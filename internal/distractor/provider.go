// Package distractor supplies wrong-answer options for multiple-choice
// questions, either from the generative provider or by sampling the set
// locally.
package distractor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rsinha/flashdown/internal/llm"
)

// Generative produces plausible distractors with the LLM provider.
type Generative struct {
	provider llm.Provider

	// MaxTokens bounds the response size. Distractor lists are tiny.
	MaxTokens int
}

// NewGenerative creates a distractor generator on the given provider.
func NewGenerative(provider llm.Provider) *Generative {
	return &Generative{provider: provider, MaxTokens: 512}
}

const distractorSystemPrompt = `You create wrong answers for flashcard quizzes. Given a term and its correct definition, produce plausible but clearly incorrect alternative definitions a learner might confuse with the right one.

Rules:
- Each distractor must be wrong: never a paraphrase or partial restatement of the correct definition.
- Match the correct definition's length, tone, and register so the right answer does not stand out.
- Distractors must differ from each other.
- Answer in the requested language.`

// distractorSchema is the JSON shape requested from the provider.
var distractorSchema = &llm.Schema{
	Name:        "quiz-distractors",
	Description: "Plausible wrong answers for a multiple-choice flashcard question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"distractors": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "The requested number of incorrect answer options",
			},
		},
		"required":             []any{"distractors"},
		"additionalProperties": false,
	},
}

// Distractors asks the provider for count wrong answers. It may return
// fewer than count when the model under-delivers; callers pad locally.
func (g *Generative) Distractors(ctx context.Context, term, definition, language string, count int) ([]string, error) {
	if count <= 0 {
		return nil, nil
	}
	ctx = llm.WithPurpose(ctx, "distractors")

	if language == "" {
		language = "the same language as the definition"
	}
	userMsg := fmt.Sprintf(
		"Term: %s\nCorrect definition: %s\nLanguage: %s\n\nGenerate exactly %d distractor definitions.",
		term, definition, language, count,
	)

	resp, err := g.provider.Generate(ctx, llm.Request{
		System:    distractorSystemPrompt,
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: userMsg}},
		Schema:    distractorSchema,
		MaxTokens: g.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("distractor generation: %w", err)
	}

	var out struct {
		Distractors []string `json:"distractors"`
	}
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse distractor response: %w", err)
	}

	// Drop duplicates and accidental correct answers; better to return
	// short than to return a broken question.
	seen := map[string]bool{normalize(definition): true}
	result := make([]string, 0, count)
	for _, d := range out.Distractors {
		key := normalize(d)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, d)
		if len(result) == count {
			break
		}
	}
	return result, nil
}
