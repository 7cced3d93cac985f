package mastery

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 15, 30, 0, 0, time.UTC)
}

func TestStudied(t *testing.T) {
	var s StreakStats

	s = s.Studied(day(2026, 3, 1))
	if s.StudyStreak != 1 {
		t.Fatalf("first study streak = %d, want 1", s.StudyStreak)
	}

	// Same day: unchanged.
	s = s.Studied(day(2026, 3, 1).Add(2 * time.Hour))
	if s.StudyStreak != 1 {
		t.Errorf("same-day streak = %d, want 1", s.StudyStreak)
	}

	// Next day: +1.
	s = s.Studied(day(2026, 3, 2))
	if s.StudyStreak != 2 {
		t.Errorf("next-day streak = %d, want 2", s.StudyStreak)
	}

	// Gap: reset to 1.
	s = s.Studied(day(2026, 3, 5))
	if s.StudyStreak != 1 {
		t.Errorf("post-gap streak = %d, want 1", s.StudyStreak)
	}
}

func TestCurrent(t *testing.T) {
	s := StreakStats{StudyStreak: 4, LastStudied: day(2026, 3, 1)}

	if got := s.Current(day(2026, 3, 1)); got != 4 {
		t.Errorf("same day current = %d, want 4", got)
	}
	if got := s.Current(day(2026, 3, 2)); got != 4 {
		t.Errorf("next day current = %d, want 4", got)
	}
	if got := s.Current(day(2026, 3, 3)); got != 0 {
		t.Errorf("broken chain current = %d, want 0", got)
	}
}

func TestCurrentZeroValue(t *testing.T) {
	var s StreakStats
	if got := s.Current(day(2026, 3, 1)); got != 0 {
		t.Errorf("zero-value current = %d, want 0", got)
	}
}
