package cardgen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/rsinha/flashdown/internal/deck"
	"github.com/rsinha/flashdown/internal/llm"
)

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// setOutput is the raw LLM response before validation.
type setOutput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Cards       []struct {
		Term       string `json:"term"`
		Definition string `json:"definition"`
	} `json:"cards"`
}

// Generate produces a card set for the given input.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) (*Result, error) {
	ctx = llm.WithPurpose(ctx, "card-gen")

	input = g.config.clampInput(input)
	userMsg := buildUserMessage(input, g.config)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      SetSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw setOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	result := &Result{
		Title:       raw.Title,
		Description: raw.Description,
	}
	for _, c := range raw.Cards {
		result.Cards = append(result.Cards, deck.Card{
			ID:         uuid.New().String(),
			Term:       c.Term,
			Definition: c.Definition,
		})
	}

	// Run validators in order.
	for _, v := range g.config.Validators {
		if verr := v.Validate(result, input); verr != nil {
			return nil, verr
		}
	}

	return result, nil
}
