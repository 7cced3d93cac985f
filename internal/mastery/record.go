package mastery

import (
	"math"
	"time"
)

// RateDelta is how much a flashcard "know"/"don't know" rating moves mastery.
const RateDelta = 20

// Record is the persisted per-card statistics for one (set, card) pair.
// It is created lazily on the first answer and replaced whole on every
// update; no engine ever patches individual fields in storage.
type Record struct {
	// Mastery summarizes command of the card, always clamped to [0,100].
	Mastery int `json:"mastery"`

	// LastReviewed is when the card was last answered in any mode.
	LastReviewed time.Time `json:"last_reviewed"`

	// ConsecutiveCorrect is the current correct-answer streak, reset to
	// zero on any miss.
	ConsecutiveCorrect int `json:"consecutive_correct"`

	// Attempts counts every answer ever given for this card.
	Attempts int `json:"attempts"`
}

// Clamp bounds a mastery value to [0,100].
func Clamp(m int) int {
	if m < 0 {
		return 0
	}
	if m > 100 {
		return 100
	}
	return m
}

// Rated returns the record after a flashcard rating: mastery moves by
// RateDelta up or down (clamped), the streak advances or resets, and the
// attempt counter and review time are touched.
func (r Record) Rated(know bool, now time.Time) Record {
	delta := RateDelta
	if !know {
		delta = -RateDelta
	}
	r.Mastery = Clamp(r.Mastery + delta)
	if know {
		r.ConsecutiveCorrect++
	} else {
		r.ConsecutiveCorrect = 0
	}
	r.Attempts++
	r.LastReviewed = now
	return r
}

// TestMastery converts a test-mode streak into a mastery value:
// min(100, round(100 * streak / threshold)). A zero or negative threshold
// degenerates to full mastery on any streak, so it is floored at 1.
func TestMastery(streak, threshold int) int {
	if threshold < 1 {
		threshold = 1
	}
	if streak < 0 {
		streak = 0
	}
	m := int(math.Round(100 * float64(streak) / float64(threshold)))
	return Clamp(m)
}

// Tested returns the record after a test-mode answer with the new streak
// value already computed by the engine.
func (r Record) Tested(streak, threshold int, now time.Time) Record {
	r.ConsecutiveCorrect = streak
	r.Mastery = TestMastery(streak, threshold)
	r.Attempts++
	r.LastReviewed = now
	return r
}

// Learned reports whether the card counts as learned for the stats views.
func (r Record) Learned() bool {
	return r.Mastery >= 100
}
