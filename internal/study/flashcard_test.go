package study

import "testing"

func TestFlashcardStandardWalk(t *testing.T) {
	store := newMapStore()
	s := NewFlashcardSession(testSet(3), store, noShuffleConfig())

	if s.Phase() != FlashcardSetup {
		t.Fatal("expected setup phase before Start")
	}
	s.Start(ModeStandard)

	for i := 0; i < 3; i++ {
		if s.Current() == nil {
			t.Fatalf("no card at position %d", i)
		}
		s.Rate(true)
	}
	if s.Phase() != FlashcardFinished {
		t.Fatal("expected finished after rating all cards")
	}

	rec, ok := store.Mastery("set-1", "alpha")
	if !ok || rec.Mastery != 20 {
		t.Errorf("alpha mastery = %+v, want 20", rec)
	}
}

func TestFlashcardRatePersistsBeforeAdvance(t *testing.T) {
	store := newMapStore()
	s := NewFlashcardSession(testSet(2), store, noShuffleConfig())
	s.Start(ModeStandard)

	s.Rate(false)
	if store.puts != 1 {
		t.Fatalf("expected 1 put after first rate, got %d", store.puts)
	}
	rec, _ := store.Mastery("set-1", "alpha")
	if rec.Mastery != 0 || rec.Attempts != 1 {
		t.Errorf("record = %+v", rec)
	}
}

func TestFlashcardMemoriseAllReinsert(t *testing.T) {
	store := newMapStore()
	s := NewFlashcardSession(testSet(3), store, noShuffleConfig())
	s.Start(ModeMemoriseAll)

	// Don't know "alpha": it returns after the other two cards.
	if s.Current().ID != "alpha" {
		t.Fatalf("head = %s, want alpha", s.Current().ID)
	}
	s.Rate(false)

	var order []string
	for s.Phase() == FlashcardActive {
		order = append(order, s.Current().ID)
		s.Rate(true)
	}

	want := []string{"beta", "gamma", "alpha"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestFlashcardMemoriseAllTerminates(t *testing.T) {
	store := newMapStore()
	s := NewFlashcardSession(testSet(4), store, noShuffleConfig())
	s.Start(ModeMemoriseAll)

	// Miss every card once, then know everything. Must finish.
	missed := make(map[string]bool)
	steps := 0
	for s.Phase() == FlashcardActive {
		steps++
		if steps > 100 {
			t.Fatal("session did not terminate")
		}
		id := s.Current().ID
		if !missed[id] {
			missed[id] = true
			s.Rate(false)
		} else {
			s.Rate(true)
		}
	}
	if s.Phase() != FlashcardFinished {
		t.Fatal("expected finished phase")
	}
	if steps != 8 {
		t.Errorf("steps = %d, want 8", steps)
	}
}

func TestFlashcardEmptySet(t *testing.T) {
	store := newMapStore()
	s := NewFlashcardSession(testSet(0), store, noShuffleConfig())
	s.Start(ModeMemoriseAll)

	if s.Phase() != FlashcardFinished {
		t.Fatal("empty set should finish immediately")
	}
	if s.Current() != nil {
		t.Fatal("expected no current card")
	}
}

func TestFlashcardRestart(t *testing.T) {
	store := newMapStore()
	s := NewFlashcardSession(testSet(2), store, noShuffleConfig())
	s.Start(ModeStandard)
	s.Rate(true)
	s.Rate(true)

	s.Restart()
	if s.Phase() != FlashcardActive {
		t.Fatal("expected active phase after restart")
	}
	pos, total := s.Position()
	if pos != 1 || total != 2 {
		t.Errorf("position = %d/%d, want 1/2", pos, total)
	}
}
