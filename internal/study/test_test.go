package study

import (
	"context"
	"strings"
	"testing"

	"github.com/rsinha/flashdown/internal/mastery"
)

func buildTestSession(t *testing.T, n int, store MasteryStore, provider DistractorProvider) *TestSession {
	t.Helper()
	s := NewTestSession(testSet(n), store, provider, noShuffleConfig())
	if err := s.Build(context.Background()); err != nil {
		t.Fatalf("build: %v", err)
	}
	return s
}

// answerTest answers the head question, correctly or not.
func answerTest(t *testing.T, s *TestSession, correct bool) Feedback {
	t.Helper()
	e := s.Current()
	if e == nil {
		t.Fatal("no current question")
	}
	choice := e.CorrectIndex
	if !correct {
		choice = (e.CorrectIndex + 1) % len(e.Options)
	}
	fb, ok := s.Answer(choice)
	if !ok {
		t.Fatal("answer rejected")
	}
	s.Advance()
	return fb
}

func TestTestSessionBuildsOneQuestionPerCard(t *testing.T) {
	provider := &stubProvider{distractors: []string{"wrong one", "wrong two", "wrong three"}}
	s := buildTestSession(t, 4, newMapStore(), provider)

	if s.Phase() != TestActive {
		t.Fatalf("phase = %v, want active", s.Phase())
	}
	if provider.calls != 4 {
		t.Errorf("provider calls = %d, want 4", provider.calls)
	}

	e := s.Current()
	if e.Kind != KindChoice {
		t.Fatalf("kind = %v", e.Kind)
	}
	if len(e.Options) != 4 {
		t.Fatalf("options = %d, want 4", len(e.Options))
	}
	if e.Options[e.CorrectIndex] != e.Card.Definition {
		t.Error("correct index does not point at the definition")
	}
	if e.Prompt != e.Card.Term {
		t.Errorf("prompt = %q, want the term", e.Prompt)
	}
}

func TestTestSessionProviderFailureFallsBack(t *testing.T) {
	provider := &stubProvider{err: context.DeadlineExceeded}
	s := buildTestSession(t, 5, newMapStore(), provider)

	// Every question still has a full option set, sampled locally.
	e := s.Current()
	if len(e.Options) != 4 {
		t.Fatalf("options = %d, want 4", len(e.Options))
	}
	if e.Options[e.CorrectIndex] != e.Card.Definition {
		t.Error("correct option missing after fallback")
	}
}

func TestTestSessionNilProvider(t *testing.T) {
	s := buildTestSession(t, 5, newMapStore(), nil)
	if len(s.Current().Options) != 4 {
		t.Fatal("expected local options with nil provider")
	}
}

func TestTestSessionFiltersFetchedDistractors(t *testing.T) {
	// The provider echoes the correct definition and repeats itself.
	provider := &stubProvider{distractors: []string{"definition of alpha", "same", "SAME"}}
	s := buildTestSession(t, 1, newMapStore(), provider)

	e := s.Current()
	if len(e.Options) != 4 {
		t.Fatalf("options = %d, want 4", len(e.Options))
	}
	correct := 0
	for _, o := range e.Options {
		if o == e.Card.Definition {
			correct++
		}
	}
	if correct != 1 {
		t.Errorf("correct definition appears %d times, want exactly once", correct)
	}
	for i, a := range e.Options {
		for _, b := range e.Options[i+1:] {
			if CheckTyped(a, b) {
				t.Errorf("duplicate options %q / %q", a, b)
			}
		}
	}
	if e.Options[e.CorrectIndex] != e.Card.Definition {
		t.Error("correct index does not point at the definition")
	}
}

func TestTestSessionMasteryFormula(t *testing.T) {
	store := newMapStore()
	s := buildTestSession(t, 1, store, nil)

	fb := answerTest(t, s, true)
	if fb.Streak != 1 || fb.Mastered {
		t.Fatalf("feedback after 1 correct = %+v", fb)
	}
	rec, _ := store.Mastery("set-1", "alpha")
	if rec.Mastery != 33 {
		t.Errorf("mastery after 1/3 = %d, want 33", rec.Mastery)
	}

	fb = answerTest(t, s, true)
	rec, _ = store.Mastery("set-1", "alpha")
	if rec.Mastery != 67 {
		t.Errorf("mastery after 2/3 = %d, want 67", rec.Mastery)
	}

	fb = answerTest(t, s, true)
	if !fb.Mastered {
		t.Error("expected mastered at threshold")
	}
	rec, _ = store.Mastery("set-1", "alpha")
	if rec.Mastery != 100 {
		t.Errorf("mastery after 3/3 = %d, want 100", rec.Mastery)
	}

	if s.Phase() != TestFinished {
		t.Error("single-card session should finish at threshold")
	}
}

func TestTestSessionRequeuePositions(t *testing.T) {
	s := buildTestSession(t, 4, newMapStore(), nil)

	// Correct below threshold goes to the back.
	first := s.Current().Card.ID
	answerTest(t, s, true)
	order := make([]string, 0, 4)
	for _, e := range s.q.entries {
		order = append(order, e.Card.ID)
	}
	if order[len(order)-1] != first {
		t.Errorf("queue after correct = %v, want %q last", order, first)
	}

	// Incorrect comes back two positions from the front.
	second := s.Current().Card.ID
	answerTest(t, s, false)
	if s.q.entries[2].Card.ID != second {
		ids := make([]string, 0, s.q.len())
		for _, e := range s.q.entries {
			ids = append(ids, e.Card.ID)
		}
		t.Errorf("queue after miss = %v, want %q at index 2", ids, second)
	}
}

func TestTestSessionIncorrectResetsStreak(t *testing.T) {
	s := buildTestSession(t, 2, newMapStore(), nil)

	card := s.Current().Card.ID
	answerTest(t, s, true)

	// Work back to the same card and miss it.
	for s.Current().Card.ID != card {
		answerTest(t, s, true)
	}
	fb := answerTest(t, s, false)
	if fb.Streak != 0 {
		t.Errorf("streak after miss = %d, want 0", fb.Streak)
	}
	if s.Streak(card) != 0 {
		t.Errorf("stored streak = %d, want 0", s.Streak(card))
	}
}

func TestTestSessionSeedsStreakFromStore(t *testing.T) {
	store := newMapStore()
	store.PutMastery("set-1", "alpha", mastery.Record{Mastery: 67, ConsecutiveCorrect: 2})
	s := buildTestSession(t, 1, store, nil)

	// One more correct answer reaches the threshold immediately.
	fb := answerTest(t, s, true)
	if !fb.Mastered {
		t.Error("expected mastered with seeded streak")
	}
	if s.Phase() != TestFinished {
		t.Error("expected finished session")
	}
}

func TestTestSessionTerminates(t *testing.T) {
	s := buildTestSession(t, 6, newMapStore(), nil)

	missed := make(map[string]bool)
	steps := 0
	for s.Phase() == TestActive {
		steps++
		if steps > 200 {
			t.Fatal("session did not terminate")
		}
		id := s.Current().Card.ID
		correct := missed[id]
		if !correct {
			missed[id] = true
		}
		answerTest(t, s, correct)
	}

	if s.MasteredCount() != 6 {
		t.Errorf("mastered = %d, want 6", s.MasteredCount())
	}
	answered, correct := s.Stats()
	if answered == 0 || correct == 0 || correct >= answered {
		t.Errorf("stats = %d/%d", correct, answered)
	}
}

func TestTestSessionHint(t *testing.T) {
	s := buildTestSession(t, 2, newMapStore(), nil)

	e := s.Current()
	hint := s.Hint()
	if hint == "" {
		t.Fatal("expected a hint")
	}
	if !strings.HasPrefix(e.Answer, hint) {
		t.Errorf("hint %q is not a prefix of %q", hint, e.Answer)
	}
	if len([]rune(hint)) != 1 {
		t.Errorf("hint %q longer than one character", hint)
	}
}

func TestTestSessionNoDoubleScoring(t *testing.T) {
	s := buildTestSession(t, 2, newMapStore(), nil)

	e := s.Current()
	if _, ok := s.Answer(e.CorrectIndex); !ok {
		t.Fatal("first answer rejected")
	}
	if _, ok := s.Answer(e.CorrectIndex); ok {
		t.Fatal("second answer on same entry was accepted")
	}
}

func TestTestSessionEmptySet(t *testing.T) {
	s := buildTestSession(t, 0, newMapStore(), nil)
	if s.Phase() != TestFinished {
		t.Fatal("empty set should finish immediately")
	}
}
