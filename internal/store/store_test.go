package store

import (
	"context"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testEventRepo(t *testing.T, s *Store) EventRepo {
	t.Helper()
	repo, err := s.EventRepo()
	if err != nil {
		t.Fatalf("event repo: %v", err)
	}
	return repo
}

func TestEnsureDir(t *testing.T) {
	p := t.TempDir() + "/nested/a/flashdown.db"
	if err := EnsureDir(p); err != nil {
		t.Fatalf("ensure dir: %v", err)
	}
	s, err := Open(p)
	if err != nil {
		t.Fatalf("open store at ensured path: %v", err)
	}
	s.Close()
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Client() == nil {
		t.Fatal("expected non-nil ent client")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here. It is tested with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestProfileSaveAndLatest(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProfileRepo()
	ctx := context.Background()

	// No profile yet.
	row, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest (empty): %v", err)
	}
	if row != nil {
		t.Fatal("expected nil row when none exist")
	}

	now := time.Now().UTC().Truncate(time.Second)
	err = repo.Save(ctx, &ProfileRow{
		Sequence:  42,
		Timestamp: now,
		Data: ProfileDocument{
			Version: 1,
			Body:    map[string]any{"study_streak": float64(3)},
		},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	row, err = repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if row == nil {
		t.Fatal("expected a profile row")
	}
	if row.Sequence != 42 {
		t.Errorf("sequence = %d, want 42", row.Sequence)
	}
	if row.Data.Version != 1 {
		t.Errorf("version = %d, want 1", row.Data.Version)
	}
	if row.Data.Body["study_streak"] != float64(3) {
		t.Errorf("body = %v", row.Data.Body)
	}
}

func TestProfilePrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProfileRepo()
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i := range 5 {
		err := repo.Save(ctx, &ProfileRow{
			Sequence:  int64(i),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Data:      ProfileDocument{Version: 1},
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	if err := repo.Prune(ctx, 2); err != nil {
		t.Fatalf("prune: %v", err)
	}

	row, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if row == nil || row.Sequence != 4 {
		t.Fatalf("expected newest row to survive, got %+v", row)
	}

	n, err := s.Client().Profile.Query().Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Errorf("rows after prune = %d, want 2", n)
	}
}

func TestSequenceCounterMonotonic(t *testing.T) {
	s := openTestStore(t)
	sc, err := newSequenceCounter(s.DB())
	if err != nil {
		t.Fatalf("new counter: %v", err)
	}
	ctx := context.Background()

	var prev int64
	for i := range 10 {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		if seq <= prev && i > 0 {
			t.Fatalf("sequence not increasing: %d after %d", seq, prev)
		}
		prev = seq
	}
}

func TestEventRepoAnswerQueries(t *testing.T) {
	s := openTestStore(t)
	repo := testEventRepo(t, s)
	ctx := context.Background()

	answers := []AnswerEventData{
		{SessionID: "s1", SetID: "set-1", CardID: "c1", Mode: "test", Prompt: "mitochondria", CorrectAnswer: "powerhouse", GivenAnswer: "powerhouse", Correct: true, QuestionKind: "choice"},
		{SessionID: "s1", SetID: "set-1", CardID: "c2", Mode: "test", Prompt: "ribosome", CorrectAnswer: "protein factory", GivenAnswer: "powerhouse", Correct: false, QuestionKind: "choice"},
		{SessionID: "s1", SetID: "set-1", CardID: "c1", Mode: "test", Prompt: "mitochondria", CorrectAnswer: "powerhouse", GivenAnswer: "protein factory", Correct: false, QuestionKind: "choice"},
	}
	for i, a := range answers {
		if err := repo.AppendAnswerEvent(ctx, a); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	acc, err := repo.SetAccuracy(ctx, "set-1")
	if err != nil {
		t.Fatalf("set accuracy: %v", err)
	}
	if len(acc) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(acc))
	}
	if acc[0].CardID != "c1" || acc[0].Answered != 2 || acc[0].Correct != 1 {
		t.Errorf("c1 accuracy = %+v", acc[0])
	}

	misses, err := repo.RecentMisses(ctx, "set-1", 10)
	if err != nil {
		t.Fatalf("recent misses: %v", err)
	}
	if len(misses) != 2 || misses[0] != "c2" || misses[1] != "c1" {
		t.Errorf("misses = %v, want [c2 c1]", misses)
	}

	last, err := repo.LastStudied(ctx, "set-1")
	if err != nil {
		t.Fatalf("last studied: %v", err)
	}
	if last.IsZero() {
		t.Error("expected non-zero last studied time")
	}

	none, err := repo.LastStudied(ctx, "set-404")
	if err != nil {
		t.Fatalf("last studied (missing): %v", err)
	}
	if !none.IsZero() {
		t.Error("expected zero time for unstudied set")
	}
}

func TestEventRepoLLMRequests(t *testing.T) {
	s := openTestStore(t)
	repo := testEventRepo(t, s)
	ctx := context.Background()

	for i := range 3 {
		err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider: "mock",
			Model:    "mock",
			Purpose:  "card-gen",
			Success:  i != 1,
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	events, err := repo.LLMRequests(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Sequence <= events[1].Sequence {
		t.Error("expected newest first")
	}
}
