package mastery

import "time"

// StreakStats is the profile-level daily study streak.
type StreakStats struct {
	// StudyStreak counts consecutive calendar days with at least one
	// finished study session.
	StudyStreak int `json:"study_streak"`

	// LastStudied is the day the streak was last advanced.
	LastStudied time.Time `json:"last_studied"`
}

// Studied returns the stats after finishing a session at the given time.
// Same-day sessions leave the streak unchanged, a session on the following
// day extends it, and any gap restarts the streak at 1.
func (s StreakStats) Studied(now time.Time) StreakStats {
	today := dayOf(now)
	switch {
	case s.StudyStreak == 0 || s.LastStudied.IsZero():
		s.StudyStreak = 1
	case dayOf(s.LastStudied).Equal(today):
		// Already counted today.
	case dayOf(s.LastStudied).AddDate(0, 0, 1).Equal(today):
		s.StudyStreak++
	default:
		s.StudyStreak = 1
	}
	s.LastStudied = now
	return s
}

// Current returns the streak as of now: zero when the chain is broken
// (last study before yesterday), the stored count otherwise.
func (s StreakStats) Current(now time.Time) int {
	if s.LastStudied.IsZero() {
		return 0
	}
	last := dayOf(s.LastStudied)
	today := dayOf(now)
	if last.Equal(today) || last.AddDate(0, 0, 1).Equal(today) {
		return s.StudyStreak
	}
	return 0
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
