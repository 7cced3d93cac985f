package study

import (
	"context"
	"testing"

	"github.com/rsinha/flashdown/internal/deck"
	"github.com/rsinha/flashdown/internal/mastery"
)

// mapStore is an in-memory MasteryStore for tests.
type mapStore struct {
	records map[string]mastery.Record
	puts    int
}

func newMapStore() *mapStore {
	return &mapStore{records: make(map[string]mastery.Record)}
}

func (s *mapStore) key(setID, cardID string) string { return setID + "/" + cardID }

func (s *mapStore) Mastery(setID, cardID string) (mastery.Record, bool) {
	rec, ok := s.records[s.key(setID, cardID)]
	return rec, ok
}

func (s *mapStore) PutMastery(setID, cardID string, rec mastery.Record) {
	s.records[s.key(setID, cardID)] = rec
	s.puts++
}

// stubProvider returns fixed distractors, or an error.
type stubProvider struct {
	distractors []string
	err         error
	calls       int
}

func (p *stubProvider) Distractors(_ context.Context, _, _, _ string, count int) ([]string, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	if len(p.distractors) > count {
		return p.distractors[:count], nil
	}
	return p.distractors, nil
}

func testSet(n int) *deck.StudySet {
	set := &deck.StudySet{ID: "set-1", Title: "Test Set"}
	terms := []string{"alpha", "beta", "gamma", "delta", "epsilon", "zeta", "eta", "theta", "iota", "kappa", "lambda", "mu"}
	for i := 0; i < n && i < len(terms); i++ {
		set.Cards = append(set.Cards, deck.Card{
			ID:         terms[i],
			Term:       terms[i],
			Definition: "definition of " + terms[i],
		})
	}
	return set
}

// noShuffleConfig keeps card and option order deterministic.
func noShuffleConfig() Config {
	cfg := DefaultConfig()
	cfg.ShuffleCards = false
	cfg.ShuffleOptions = false
	return cfg
}

func TestCheckTyped(t *testing.T) {
	tests := []struct {
		given string
		want  string
		ok    bool
	}{
		{"paris", "Paris", true},
		{"  Paris  ", "Paris", true},
		{"PARIS", "Paris", true},
		{"pariss", "Paris", false},
		{"", "Paris", false},
		{"   ", "Paris", false},
	}
	for _, tt := range tests {
		if got := CheckTyped(tt.given, tt.want); got != tt.ok {
			t.Errorf("CheckTyped(%q, %q) = %v, want %v", tt.given, tt.want, got, tt.ok)
		}
	}
}
