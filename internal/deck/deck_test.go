package deck

import "testing"

func sampleSet() *StudySet {
	return &StudySet{
		ID:    "set-1",
		Title: "Sample",
		Cards: []Card{
			{ID: "c1", Term: "Paris", Definition: "Capital of France", DefinitionLang: "en"},
			{ID: "c2", Term: "Tokyo", Definition: "Capital of Japan"},
			{ID: "c3", Term: "Cairo", Definition: "Capital of Egypt"},
		},
	}
}

func TestCardByID(t *testing.T) {
	s := sampleSet()

	c := s.CardByID("c2")
	if c == nil || c.Term != "Tokyo" {
		t.Fatalf("CardByID(c2) = %v", c)
	}
	if s.CardByID("missing") != nil {
		t.Error("expected nil for missing ID")
	}
}

func TestLanguage(t *testing.T) {
	s := sampleSet()
	if got := s.Language(); got != "en" {
		t.Errorf("Language() = %q, want en", got)
	}

	empty := &StudySet{Cards: []Card{{ID: "x", Term: "a", Definition: "b"}}}
	if got := empty.Language(); got != "" {
		t.Errorf("untagged set Language() = %q, want empty", got)
	}
}

func TestFindByTerm(t *testing.T) {
	s := sampleSet()

	if c := s.FindByTerm("  paris "); c == nil || c.ID != "c1" {
		t.Errorf("FindByTerm case-insensitive lookup failed: %v", c)
	}
	if s.FindByTerm("London") != nil {
		t.Error("expected nil for unknown term")
	}
}

func TestShuffledPreservesElements(t *testing.T) {
	s := sampleSet()
	got := Shuffled(s.Cards)

	if len(got) != len(s.Cards) {
		t.Fatalf("len = %d, want %d", len(got), len(s.Cards))
	}
	seen := make(map[string]bool)
	for _, c := range got {
		seen[c.ID] = true
	}
	for _, c := range s.Cards {
		if !seen[c.ID] {
			t.Errorf("card %s lost in shuffle", c.ID)
		}
	}

	// Input untouched.
	if s.Cards[0].ID != "c1" || s.Cards[1].ID != "c2" || s.Cards[2].ID != "c3" {
		t.Error("Shuffled modified its input")
	}
}
