package cardgen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rsinha/flashdown/internal/deck"
	"github.com/rsinha/flashdown/internal/llm"
)

func validSetJSON() json.RawMessage {
	return json.RawMessage(`{
		"title": "Cell Biology Basics",
		"description": "Core structures of the cell and what they do.",
		"cards": [
			{"term": "mitochondria", "definition": "organelle that produces the cell's energy"},
			{"term": "ribosome", "definition": "structure that assembles proteins"},
			{"term": "nucleus", "definition": "organelle that holds the cell's DNA"}
		]
	}`)
}

func TestGenerate_Topic(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: validSetJSON(),
	})
	gen := New(mock, DefaultConfig())

	r, err := gen.Generate(context.Background(), GenerateInput{
		Kind:  SourceTopic,
		Topic: "cell biology",
		Count: 3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Title != "Cell Biology Basics" {
		t.Errorf("unexpected title: %q", r.Title)
	}
	if len(r.Cards) != 3 {
		t.Fatalf("expected 3 cards, got %d", len(r.Cards))
	}
	if r.Cards[0].Term != "mitochondria" {
		t.Errorf("unexpected first term: %q", r.Cards[0].Term)
	}
	for i, c := range r.Cards {
		if c.ID == "" {
			t.Errorf("card %d has no ID", i)
		}
	}
}

func TestGenerate_PromptIncludesSourceText(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: validSetJSON(),
	})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), GenerateInput{
		Kind:  SourceText,
		Text:  "The mitochondria produces the cell's energy.",
		Count: 3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mock.Calls) != 1 {
		t.Fatalf("expected one LLM call, got %d", len(mock.Calls))
	}
	msg := mock.Calls[0].Messages[0].Content
	if !strings.Contains(msg, "The mitochondria produces") {
		t.Errorf("prompt missing source text:\n%s", msg)
	}
}

func TestGenerate_PromptIncludesExistingTerms(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: validSetJSON(),
	})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), GenerateInput{
		Kind:          SourceTopic,
		Topic:         "cell biology",
		Count:         3,
		ExistingTerms: []string{"chloroplast"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	msg := mock.Calls[0].Messages[0].Content
	if !strings.Contains(msg, "chloroplast") {
		t.Errorf("prompt missing existing term:\n%s", msg)
	}
}

func TestGenerate_CountClamped(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: validSetJSON(),
	})
	cfg := DefaultConfig()
	cfg.Validators = nil
	gen := New(mock, cfg)

	_, err := gen.Generate(context.Background(), GenerateInput{
		Kind:  SourceTopic,
		Topic: "cell biology",
		Count: 500,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	msg := mock.Calls[0].Messages[0].Content
	if !strings.Contains(msg, "Number of cards: 50") {
		t.Errorf("count not clamped to max:\n%s", msg)
	}
}

func TestGenerate_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{},
	})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), GenerateInput{
		Kind:  SourceTopic,
		Topic: "cell biology",
		Count: 3,
	})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestGenerate_DuplicateTermRejected(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{
			"title": "Dupes",
			"description": "A set with a repeated term.",
			"cards": [
				{"term": "nucleus", "definition": "organelle that holds the cell's DNA"},
				{"term": "Nucleus", "definition": "the center of something"},
				{"term": "ribosome", "definition": "structure that assembles proteins"}
			]
		}`),
	})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), GenerateInput{
		Kind:  SourceTopic,
		Topic: "cell biology",
		Count: 3,
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Validator != "uniqueness" {
		t.Errorf("expected uniqueness validator, got %q", verr.Validator)
	}
}

func TestGenerate_WrongCountRejected(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: validSetJSON(),
	})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), GenerateInput{
		Kind:  SourceTopic,
		Topic: "cell biology",
		Count: 10,
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Validator != "count" {
		t.Errorf("expected count validator, got %q", verr.Validator)
	}
}

func TestStructural_EmptyDefinition(t *testing.T) {
	v := &StructuralValidator{}
	r := &Result{
		Title: "Broken",
		Cards: validCards(),
	}
	r.Cards[1].Definition = "   "

	verr := v.Validate(r, GenerateInput{})
	if verr == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(verr.Message, "card 2") {
		t.Errorf("unexpected message: %q", verr.Message)
	}
}

func validCards() []deck.Card {
	return []deck.Card{
		{ID: "c1", Term: "mitochondria", Definition: "organelle that produces the cell's energy"},
		{ID: "c2", Term: "ribosome", Definition: "structure that assembles proteins"},
		{ID: "c3", Term: "nucleus", Definition: "organelle that holds the cell's DNA"},
	}
}
