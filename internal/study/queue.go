package study

import (
	"github.com/google/uuid"

	"github.com/rsinha/flashdown/internal/deck"
)

// QuestionKind distinguishes how an entry is answered.
type QuestionKind string

const (
	// KindChoice is a multiple-choice question.
	KindChoice QuestionKind = "choice"

	// KindTyped requires typing the answer text.
	KindTyped QuestionKind = "typed"

	// KindFlip is a flashcard flip entry with no derived question.
	KindFlip QuestionKind = "flip"
)

// Entry is one scheduled appearance of a card in a session queue. A card
// re-inserted after a wrong answer becomes a new Entry with a fresh
// InstanceID; the old entry is gone once the queue advances past it.
type Entry struct {
	// InstanceID uniquely identifies this appearance.
	InstanceID string

	Card deck.Card
	Kind QuestionKind

	// Prompt is the text shown to the learner.
	Prompt string

	// Options are the multiple-choice options (nil for typed/flip).
	Options []string

	// CorrectIndex is the position of the right option within Options
	// (-1 for typed/flip).
	CorrectIndex int

	// Answer is the canonical correct answer text.
	Answer string

	scored bool
}

// newEntry creates an entry with a fresh instance ID.
func newEntry(card deck.Card, kind QuestionKind, prompt, answer string, options []string, correctIndex int) *Entry {
	return &Entry{
		InstanceID:   uuid.New().String(),
		Card:         card,
		Kind:         kind,
		Prompt:       prompt,
		Options:      options,
		CorrectIndex: correctIndex,
		Answer:       answer,
	}
}

// Scored reports whether this entry has already been answered. An entry
// scores at most once; engines refuse a second answer for the same
// instance.
func (e *Entry) Scored() bool { return e.scored }

// reissue clones the entry's question payload under a fresh instance ID,
// clearing the scored flag.
func (e *Entry) reissue() *Entry {
	return newEntry(e.Card, e.Kind, e.Prompt, e.Answer, e.Options, e.CorrectIndex)
}

// queue is the working card queue owned by an engine. Head removal and
// positional insertion are what the schedulers need; a slice keeps it
// simple at flashcard-set sizes.
type queue struct {
	entries []*Entry
}

func (q *queue) len() int { return len(q.entries) }

func (q *queue) head() *Entry {
	if len(q.entries) == 0 {
		return nil
	}
	return q.entries[0]
}

func (q *queue) popHead() *Entry {
	if len(q.entries) == 0 {
		return nil
	}
	e := q.entries[0]
	q.entries[0] = nil
	q.entries = q.entries[1:]
	return e
}

func (q *queue) push(e *Entry) {
	q.entries = append(q.entries, e)
}

// insertAt places e at position min(len, pos) from the front, so the
// entry reappears after skipping at most pos others.
func (q *queue) insertAt(e *Entry, pos int) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(q.entries) {
		pos = len(q.entries)
	}
	q.entries = append(q.entries, nil)
	copy(q.entries[pos+1:], q.entries[pos:])
	q.entries[pos] = e
}
