package profile

import (
	"testing"
	"time"

	"github.com/rsinha/flashdown/internal/deck"
	"github.com/rsinha/flashdown/internal/mastery"
)

func testProfile() *Profile {
	p := NewProfile()
	p.AddSet(deck.StudySet{
		ID:    "set-1",
		Title: "Test Set",
		Cards: []deck.Card{
			{ID: "c1", Term: "alpha", Definition: "first"},
			{ID: "c2", Term: "beta", Definition: "second"},
		},
	})
	return p
}

func TestDeleteSetRemovesMastery(t *testing.T) {
	p := testProfile()
	p.Mastery["set-1"] = map[string]mastery.Record{
		"c1": {Mastery: 40},
	}

	if !p.DeleteSet("set-1") {
		t.Fatal("expected delete to succeed")
	}
	if p.SetByID("set-1") != nil {
		t.Error("set still present after delete")
	}
	if _, ok := p.Mastery["set-1"]; ok {
		t.Error("mastery records survived delete")
	}
	if p.DeleteSet("set-1") {
		t.Error("expected second delete to fail")
	}
}

func TestSetProgress(t *testing.T) {
	p := testProfile()

	if got := p.SetProgress("set-1"); got != 0 {
		t.Errorf("fresh set progress = %d, want 0", got)
	}

	p.Mastery["set-1"] = map[string]mastery.Record{
		"c1": {Mastery: 100},
		"c2": {Mastery: 50},
	}
	if got := p.SetProgress("set-1"); got != 75 {
		t.Errorf("progress = %d, want 75", got)
	}

	if got := p.SetProgress("missing"); got != 0 {
		t.Errorf("missing set progress = %d, want 0", got)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	p := testProfile()
	p.Mastery["set-1"] = map[string]mastery.Record{
		"c1": {Mastery: 60, ConsecutiveCorrect: 2, Attempts: 5, LastReviewed: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)},
	}
	p.Streak = mastery.StreakStats{StudyStreak: 4, LastStudied: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)}

	doc, err := encodeProfile(p)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if doc.Version != Version {
		t.Errorf("version = %d, want %d", doc.Version, Version)
	}

	got, err := decodeProfile(doc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Sets) != 1 || got.Sets[0].ID != "set-1" {
		t.Fatalf("sets = %+v", got.Sets)
	}
	rec := got.Mastery["set-1"]["c1"]
	if rec.Mastery != 60 || rec.ConsecutiveCorrect != 2 || rec.Attempts != 5 {
		t.Errorf("record = %+v", rec)
	}
	if got.Streak.StudyStreak != 4 {
		t.Errorf("streak = %d, want 4", got.Streak.StudyStreak)
	}
}

func TestMasteryStoreRoundTrip(t *testing.T) {
	svc := NewService(nil, testProfile())

	if _, ok := svc.Mastery("set-1", "c1"); ok {
		t.Fatal("expected no record for fresh card")
	}

	svc.PutMastery("set-1", "c1", mastery.Record{Mastery: 20, Attempts: 1})

	rec, ok := svc.Mastery("set-1", "c1")
	if !ok {
		t.Fatal("expected record after put")
	}
	if rec.Mastery != 20 || rec.Attempts != 1 {
		t.Errorf("record = %+v", rec)
	}
}

func TestStarterSetWellFormed(t *testing.T) {
	set := StarterSet()
	if set.ID == "" || set.Title == "" {
		t.Fatal("starter set missing ID or title")
	}
	if len(set.Cards) < 4 {
		t.Fatalf("starter set too small: %d cards", len(set.Cards))
	}
	seen := make(map[string]bool)
	for _, c := range set.Cards {
		if c.ID == "" || c.Term == "" || c.Definition == "" {
			t.Errorf("incomplete card: %+v", c)
		}
		if seen[c.ID] {
			t.Errorf("duplicate card ID %q", c.ID)
		}
		seen[c.ID] = true
	}
}
