package mastery

import (
	"testing"
	"time"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{-20, 0},
		{0, 0},
		{55, 55},
		{100, 100},
		{140, 100},
	}
	for _, tt := range tests {
		if got := Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestRated(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	r := Record{}
	r = r.Rated(true, now)
	if r.Mastery != 20 {
		t.Errorf("mastery after know = %d, want 20", r.Mastery)
	}
	if r.ConsecutiveCorrect != 1 {
		t.Errorf("streak = %d, want 1", r.ConsecutiveCorrect)
	}
	if r.Attempts != 1 {
		t.Errorf("attempts = %d, want 1", r.Attempts)
	}
	if !r.LastReviewed.Equal(now) {
		t.Errorf("last reviewed = %v, want %v", r.LastReviewed, now)
	}

	r = r.Rated(false, now)
	if r.Mastery != 0 {
		t.Errorf("mastery after don't know = %d, want 0", r.Mastery)
	}
	if r.ConsecutiveCorrect != 0 {
		t.Errorf("streak after miss = %d, want 0", r.ConsecutiveCorrect)
	}
	if r.Attempts != 2 {
		t.Errorf("attempts = %d, want 2", r.Attempts)
	}
}

func TestRatedClampsAtBounds(t *testing.T) {
	now := time.Now()

	r := Record{Mastery: 90}
	r = r.Rated(true, now)
	if r.Mastery != 100 {
		t.Errorf("mastery = %d, want 100", r.Mastery)
	}
	r = r.Rated(true, now)
	if r.Mastery != 100 {
		t.Errorf("mastery stuck at ceiling = %d, want 100", r.Mastery)
	}

	r = Record{Mastery: 10}
	r = r.Rated(false, now)
	if r.Mastery != 0 {
		t.Errorf("mastery = %d, want 0", r.Mastery)
	}
}

func TestTestMastery(t *testing.T) {
	tests := []struct {
		streak    int
		threshold int
		want      int
	}{
		{0, 3, 0},
		{1, 3, 33},
		{2, 3, 67},
		{3, 3, 100},
		{5, 3, 100},
		{1, 1, 100},
		{2, 0, 100}, // threshold floored at 1
	}
	for _, tt := range tests {
		if got := TestMastery(tt.streak, tt.threshold); got != tt.want {
			t.Errorf("TestMastery(%d, %d) = %d, want %d", tt.streak, tt.threshold, got, tt.want)
		}
	}
}

func TestLearned(t *testing.T) {
	if (Record{Mastery: 99}).Learned() {
		t.Error("99 should not be learned")
	}
	if !(Record{Mastery: 100}).Learned() {
		t.Error("100 should be learned")
	}
}
