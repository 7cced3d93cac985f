package distractor

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rsinha/flashdown/internal/llm"
)

func TestGenerative_ReturnsDistractors(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"distractors":["organelle that digests waste","organelle that stores water","structure that assembles proteins"]}`),
	})
	g := NewGenerative(mock)

	got, err := g.Distractors(context.Background(), "mitochondria", "organelle that produces the cell's energy", "English", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0] != "organelle that digests waste" {
		t.Errorf("unexpected first distractor: %q", got[0])
	}
	if mock.CallCount() != 1 {
		t.Fatalf("calls = %d, want 1", mock.CallCount())
	}
	req := mock.Calls[0]
	if req.Schema == nil || req.Schema.Name != "quiz-distractors" {
		t.Error("expected schema name 'quiz-distractors'")
	}
}

func TestGenerative_DropsCorrectAndDuplicates(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"distractors":["the correct definition","alternative one","Alternative One","alternative two"]}`),
	})
	g := NewGenerative(mock)

	got, err := g.Distractors(context.Background(), "term", "the correct definition", "", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// May return fewer than requested rather than a broken question.
	if len(got) != 2 {
		t.Fatalf("got %v, want 2 survivors", got)
	}
}

func TestGenerative_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{},
	})
	g := NewGenerative(mock)

	_, err := g.Distractors(context.Background(), "term", "definition", "", 3)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestGenerative_ZeroCount(t *testing.T) {
	mock := llm.NewMockProvider()
	g := NewGenerative(mock)

	got, err := g.Distractors(context.Background(), "term", "definition", "", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("got %v, want nil", got)
	}
	if mock.CallCount() != 0 {
		t.Error("expected no provider call for zero count")
	}
}
