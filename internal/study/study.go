// Package study implements the three session engines: flashcard flipping,
// leveled memorise progression, and streak-based mastery testing. Engines
// own their working queues exclusively and talk to the outside world only
// through the narrow capability interfaces below, injected by the screen
// that drives them.
package study

import (
	"context"
	"strings"

	"github.com/rsinha/flashdown/internal/mastery"
)

// MasteryStore is the persistence capability handed to every engine.
// Implementations are synchronous and never fail from the engine's point
// of view: storage errors are logged and swallowed by the implementation,
// never surfaced as session failures.
type MasteryStore interface {
	// Mastery returns the record for a card, or (zero, false) when the
	// card has never been answered.
	Mastery(setID, cardID string) (mastery.Record, bool)

	// PutMastery replaces the whole record for a card.
	PutMastery(setID, cardID string, rec mastery.Record)
}

// DistractorProvider supplies wrong-answer options for multiple-choice
// questions. It may return fewer than count strings on partial failure;
// callers pad the shortfall locally.
type DistractorProvider interface {
	Distractors(ctx context.Context, term, definition, language string, count int) ([]string, error)
}

// CheckTyped compares a typed answer against the expected text: exact
// match ignoring case and surrounding whitespace, no fuzzy matching.
func CheckTyped(given, want string) bool {
	given = strings.TrimSpace(given)
	if given == "" {
		return false
	}
	return strings.EqualFold(given, strings.TrimSpace(want))
}

// Feedback describes the outcome of answering one queue entry.
type Feedback struct {
	Correct bool

	// CorrectAnswer is what should have been given, for display.
	CorrectAnswer string

	// Streak is the card's consecutive-correct count after this answer
	// (test mode only).
	Streak int

	// Mastered reports that this answer completed the card for the
	// session (test mode only).
	Mastered bool
}
