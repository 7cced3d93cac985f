package guide

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rsinha/flashdown/internal/llm"
)

func validGuideJSON() json.RawMessage {
	return json.RawMessage(`{
		"title": "Cell Biology Study Guide",
		"overview": "This set covers the core organelles of the cell and their functions.",
		"sections": [
			{
				"heading": "Energy and Production",
				"explanation": "The mitochondria powers the cell while ribosomes build its proteins.",
				"terms": ["mitochondria", "ribosome"]
			}
		],
		"tips": [
			"Mitochondria and ribosome both produce something: energy vs proteins.",
			"Group organelles by whether they make, store, or break down material."
		]
	}`)
}

func testInput() GuideInput {
	return GuideInput{
		SetID:    "set-1",
		SetTitle: "Cell Biology",
		Cards: []CardSummary{
			{Term: "mitochondria", Definition: "organelle that produces the cell's energy"},
			{Term: "ribosome", Definition: "structure that assembles proteins"},
		},
		WeakTerms: []string{"ribosome"},
		Progress:  0.4,
	}
}

func waitForGuide(svc *Service) (*Guide, bool) {
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if g, ok := svc.ConsumeGuide(); ok {
			return g, true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return nil, false
}

func TestService_GeneratesGuide(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: validGuideJSON(),
	})
	svc := NewService(mock, DefaultConfig())

	svc.RequestGuide(t.Context(), testInput())

	g, ok := waitForGuide(svc)
	if !ok || g == nil {
		t.Fatal("expected guide to be generated")
	}

	if g.SetID != "set-1" {
		t.Errorf("expected set ID 'set-1', got %q", g.SetID)
	}
	if g.Title != "Cell Biology Study Guide" {
		t.Errorf("unexpected title: %q", g.Title)
	}
	if g.Overview == "" {
		t.Error("expected non-empty overview")
	}
	if len(g.Sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(g.Sections))
	}
	if len(g.Sections[0].Terms) != 2 {
		t.Errorf("expected 2 terms in section, got %d", len(g.Sections[0].Terms))
	}
	if len(g.Tips) != 2 {
		t.Errorf("expected 2 tips, got %d", len(g.Tips))
	}
}

func TestService_ConsumeClearsGuide(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: validGuideJSON(),
	})
	svc := NewService(mock, DefaultConfig())

	svc.RequestGuide(t.Context(), testInput())

	if _, ok := waitForGuide(svc); !ok {
		t.Fatal("expected guide")
	}

	// Second consume should return false.
	_, ok := svc.ConsumeGuide()
	if ok {
		t.Error("expected second ConsumeGuide to return false")
	}
}

func TestService_LLMError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{},
	})
	svc := NewService(mock, DefaultConfig())

	svc.RequestGuide(t.Context(), testInput())

	time.Sleep(100 * time.Millisecond)

	g, ok := svc.ConsumeGuide()
	if ok && g != nil {
		t.Error("expected no guide on LLM error")
	}
	if err := svc.Err(); err == nil {
		t.Error("expected Err to surface the generation failure")
	}
	if err := svc.Err(); err != nil {
		t.Error("expected Err to clear after being read")
	}
}

func TestService_PromptIncludesWeakTerms(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: validGuideJSON(),
	})
	svc := NewService(mock, DefaultConfig())

	svc.RequestGuide(t.Context(), testInput())

	if _, ok := waitForGuide(svc); !ok {
		t.Fatal("expected guide")
	}

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}

	req := mock.Calls[0]
	if req.Schema == nil || req.Schema.Name != "study-guide" {
		t.Error("expected schema name 'study-guide'")
	}
}
