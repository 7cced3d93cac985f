package study

import "testing"

// memoriseConfig disables typed questions so every entry can be answered
// through its Answer field deterministically.
func memoriseConfig() Config {
	cfg := DefaultConfig()
	cfg.MixQuestionTypes = false
	return cfg
}

// answerCurrent answers the active entry, correctly or not.
func answerCurrent(t *testing.T, s *MemoriseSession, correct bool) {
	t.Helper()
	e := s.Current()
	if e == nil {
		t.Fatal("no current entry")
	}
	given := e.Answer
	if !correct {
		given = e.Answer + " wrong"
	}
	if _, ok := s.Answer(given); !ok {
		t.Fatal("answer rejected")
	}
	s.Advance()
}

// playLevel answers every entry in the current pass.
func playLevel(t *testing.T, s *MemoriseSession, correct func(cardID string) bool) {
	t.Helper()
	for s.Phase() == MemoriseQuestion || s.Phase() == MemoriseRetry {
		answerCurrent(t, s, correct(s.Current().Card.ID))
	}
}

func TestMemoriseLevelSizes(t *testing.T) {
	s := NewMemoriseSession(testSet(10), newMapStore(), memoriseConfig())

	if s.Level() != 1 {
		t.Fatalf("level = %d, want 1", s.Level())
	}
	_, total := s.Position()
	if total != 7 {
		t.Fatalf("level 1 size = %d, want 7", total)
	}

	// Master everything in level 1: level 2 holds the remaining 3.
	playLevel(t, s, func(string) bool { return true })
	if s.Phase() != MemoriseTransition {
		t.Fatalf("phase = %v, want transition", s.Phase())
	}
	if s.LevelMastered() != 7 {
		t.Errorf("level mastered = %d, want 7", s.LevelMastered())
	}

	s.NextLevel()
	if s.Level() != 2 {
		t.Fatalf("level = %d, want 2", s.Level())
	}
	_, total = s.Position()
	if total != 3 {
		t.Errorf("level 2 size = %d, want 3", total)
	}
}

func TestMemoriseCarryOverBeforeFresh(t *testing.T) {
	cfg := memoriseConfig()
	cfg.RetryMissed = false
	s := NewMemoriseSession(testSet(10), newMapStore(), cfg)

	// Miss exactly one card in level 1.
	var missedID string
	playLevel(t, s, func(id string) bool {
		if missedID == "" {
			missedID = id
			return false
		}
		return id != missedID
	})

	if s.LevelMastered() != 6 {
		t.Fatalf("level mastered = %d, want 6", s.LevelMastered())
	}

	// Level 2: the missed card carries over ahead of the 3 fresh cards.
	s.NextLevel()
	_, total := s.Position()
	if total != 4 {
		t.Fatalf("level 2 size = %d, want 4 (1 carry + 3 fresh)", total)
	}

	found := false
	for range total {
		if s.Current().Card.ID == missedID {
			found = true
		}
		answerCurrent(t, s, true)
	}
	if !found {
		t.Errorf("missed card %q not in level 2", missedID)
	}
}

func TestMemoriseMissThenCorrectNotMastered(t *testing.T) {
	// A card answered wrongly and then correctly within the same level
	// still carries over.
	cfg := memoriseConfig()
	cfg.RetryMissed = false
	s := NewMemoriseSession(testSet(3), newMapStore(), cfg)

	first := s.Current().Card.ID
	answerCurrent(t, s, false)
	playLevel(t, s, func(string) bool { return true })

	if s.LevelMastered() != 2 {
		t.Fatalf("level mastered = %d, want 2", s.LevelMastered())
	}

	s.NextLevel()
	if s.Phase() != MemoriseQuestion {
		t.Fatal("expected another level for the missed card")
	}
	if got := s.Current().Card.ID; got != first {
		t.Errorf("level 2 card = %q, want %q", got, first)
	}
}

func TestMemoriseSkipCountsAsWrong(t *testing.T) {
	cfg := memoriseConfig()
	cfg.RetryMissed = false
	store := newMapStore()
	s := NewMemoriseSession(testSet(3), store, cfg)

	skipped := s.Current().Card.ID
	fb, ok := s.Skip()
	if !ok || fb.Correct {
		t.Fatal("skip should score as incorrect")
	}
	s.Advance()
	playLevel(t, s, func(string) bool { return true })

	if s.LevelMastered() != 2 {
		t.Errorf("level mastered = %d, want 2", s.LevelMastered())
	}
	rec, _ := store.Mastery("set-1", skipped)
	if rec.Mastery != 0 || rec.Attempts != 1 {
		t.Errorf("skipped card record = %+v", rec)
	}
}

func TestMemoriseRetryPassDoesNotAffectMastery(t *testing.T) {
	s := NewMemoriseSession(testSet(3), newMapStore(), memoriseConfig())

	// Miss the first card; the level-1 retry pass replays it.
	missedID := s.Current().Card.ID
	answerCurrent(t, s, false)
	for s.Phase() == MemoriseQuestion {
		answerCurrent(t, s, true)
	}

	if s.Phase() != MemoriseRetry {
		t.Fatalf("phase = %v, want retry", s.Phase())
	}
	if got := s.Current().Card.ID; got != missedID {
		t.Fatalf("retry card = %q, want %q", got, missedID)
	}

	// Correct in retry still does not master the card.
	answerCurrent(t, s, true)
	if s.Phase() != MemoriseTransition {
		t.Fatalf("phase = %v, want transition", s.Phase())
	}
	if s.LevelMastered() != 2 {
		t.Errorf("level mastered = %d, want 2", s.LevelMastered())
	}

	s.NextLevel()
	if s.Phase() != MemoriseQuestion {
		t.Fatal("missed card should produce a level 2")
	}
}

func TestMemoriseNoRetryBeyondLevelOne(t *testing.T) {
	s := NewMemoriseSession(testSet(10), newMapStore(), memoriseConfig())

	playLevel(t, s, func(string) bool { return true })
	s.NextLevel()

	// Miss a card in level 2: no retry pass, straight to transition.
	answerCurrent(t, s, false)
	for s.Phase() == MemoriseQuestion {
		answerCurrent(t, s, true)
	}
	if s.Phase() != MemoriseTransition {
		t.Fatalf("phase = %v, want transition without retry", s.Phase())
	}
}

func TestMemoriseTerminatesAndFinishes(t *testing.T) {
	s := NewMemoriseSession(testSet(10), newMapStore(), memoriseConfig())

	// Miss each card exactly once, ever. Must still finish.
	missed := make(map[string]bool)
	steps := 0
	for s.Phase() != MemoriseFinished {
		steps++
		if steps > 500 {
			t.Fatal("session did not terminate")
		}
		switch s.Phase() {
		case MemoriseQuestion, MemoriseRetry:
			id := s.Current().Card.ID
			correct := missed[id] || s.Phase() == MemoriseRetry
			if !correct {
				missed[id] = true
			}
			answerCurrent(t, s, correct)
		case MemoriseTransition:
			s.NextLevel()
		}
	}

	if s.OverallMastered() != 10 {
		t.Errorf("overall mastered = %d, want 10", s.OverallMastered())
	}
	if s.OverallPercent() != 1.0 {
		t.Errorf("overall percent = %v, want 1.0", s.OverallPercent())
	}
}

func TestMemoriseNoDoubleScoring(t *testing.T) {
	s := NewMemoriseSession(testSet(3), newMapStore(), memoriseConfig())

	e := s.Current()
	if _, ok := s.Answer(e.Answer); !ok {
		t.Fatal("first answer rejected")
	}
	if _, ok := s.Answer(e.Answer); ok {
		t.Fatal("second answer on same entry was accepted")
	}
}

func TestMemoriseEmptySet(t *testing.T) {
	s := NewMemoriseSession(testSet(0), newMapStore(), memoriseConfig())
	if s.Phase() != MemoriseFinished {
		t.Fatal("empty set should finish immediately")
	}
}

func TestMemoriseChoiceOptions(t *testing.T) {
	s := NewMemoriseSession(testSet(5), newMapStore(), memoriseConfig())

	e := s.Current()
	if e.Kind != KindChoice {
		t.Fatalf("kind = %v, want choice", e.Kind)
	}
	if len(e.Options) != 4 {
		t.Fatalf("options = %d, want 4", len(e.Options))
	}
	if e.Options[e.CorrectIndex] != e.Answer {
		t.Error("correct index does not point at the answer")
	}
	seen := make(map[string]bool)
	for _, o := range e.Options {
		if seen[o] {
			t.Errorf("duplicate option %q", o)
		}
		seen[o] = true
	}
	if e.Prompt != "definition of "+e.Card.Term {
		t.Errorf("prompt = %q, want the definition", e.Prompt)
	}
}
