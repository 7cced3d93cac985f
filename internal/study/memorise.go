package study

import (
	"math/rand/v2"
	"time"

	"github.com/rsinha/flashdown/internal/deck"
	"github.com/rsinha/flashdown/internal/distractor"
)

// memoriseChoices is the option count for memorise-mode multiple choice:
// the correct term plus three locally sampled distractor terms.
const memoriseChoices = 4

// MemorisePhase is the per-level state of a memorise session.
type MemorisePhase int

const (
	// MemoriseQuestion is the level's normal question pass.
	MemoriseQuestion MemorisePhase = iota

	// MemoriseRetry is the level-1 second pass over missed cards.
	MemoriseRetry

	// MemoriseTransition is the between-levels summary.
	MemoriseTransition

	// MemoriseFinished means every card was mastered.
	MemoriseFinished
)

// MemoriseSession drives the leveled memorise mode: cards are learned in
// levels of at most WordsPerLevel, cards missed in a level carry over to
// the next one ahead of fresh cards, and the session finishes when the
// unseen pool and the carry-over are both empty.
type MemoriseSession struct {
	set   *deck.StudySet
	store MasteryStore
	cfg   Config

	pool  []deck.Card // unseen cards, shuffled once at session start
	carry []deck.Card // unmastered cards awaiting the next level

	level   int
	phase   MemorisePhase
	entries []*Entry
	idx     int

	missed          map[string]bool // wrong at least once in this level's normal pass
	levelMastered   map[string]bool
	overallMastered map[string]bool

	// transition display values
	lastLevelMastered int
}

// NewMemoriseSession shuffles the unseen pool once and starts level 1.
func NewMemoriseSession(set *deck.StudySet, store MasteryStore, cfg Config) *MemoriseSession {
	s := &MemoriseSession{
		set:             set,
		store:           store,
		cfg:             cfg.normalized(),
		pool:            deck.Shuffled(set.Cards),
		overallMastered: make(map[string]bool),
	}
	s.startLevel()
	return s
}

// startLevel fills the level queue with carry-over cards first, then
// fresh cards from the unseen pool, and shuffles the queue order.
func (s *MemoriseSession) startLevel() {
	s.level++
	s.phase = MemoriseQuestion
	s.idx = 0
	s.missed = make(map[string]bool)
	s.levelMastered = make(map[string]bool)

	var cards []deck.Card
	cards = append(cards, s.carry...)
	s.carry = nil
	for len(cards) < s.cfg.WordsPerLevel && len(s.pool) > 0 {
		cards = append(cards, s.pool[0])
		s.pool = s.pool[1:]
	}
	if len(cards) == 0 {
		s.phase = MemoriseFinished
		return
	}
	cards = deck.Shuffled(cards)

	s.entries = make([]*Entry, 0, len(cards))
	for _, c := range cards {
		s.entries = append(s.entries, s.buildEntry(c))
	}
}

// buildEntry rolls the question type and derives the question payload.
// Memorise questions always prompt with the definition and answer with
// the term; choice options are sampled locally, never fetched remotely.
func (s *MemoriseSession) buildEntry(c deck.Card) *Entry {
	kind := KindChoice
	if s.cfg.MixQuestionTypes && rand.Float64() < s.cfg.InputQuestionRatio {
		kind = KindTyped
	}

	if kind == KindTyped {
		return newEntry(c, KindTyped, c.Definition, c.Term, nil, -1)
	}

	pool := make([]string, 0, len(s.set.Cards)-1)
	for _, other := range s.set.Cards {
		if other.ID != c.ID {
			pool = append(pool, other.Term)
		}
	}
	options := distractor.Local(c.Term, pool, memoriseChoices-1)
	options = append(options, c.Term)
	deck.ShuffleStrings(options)

	correct := 0
	for i, o := range options {
		if o == c.Term {
			correct = i
			break
		}
	}
	return newEntry(c, KindChoice, c.Definition, c.Term, options, correct)
}

// Current returns the active queue entry, or nil outside question phases.
func (s *MemoriseSession) Current() *Entry {
	if s.phase != MemoriseQuestion && s.phase != MemoriseRetry {
		return nil
	}
	if s.idx >= len(s.entries) {
		return nil
	}
	return s.entries[s.idx]
}

// Answer scores the current entry against the given text (the chosen
// option for choice entries, the typed text otherwise). It returns the
// outcome and false when there is no active unscored entry; an entry
// never scores twice.
func (s *MemoriseSession) Answer(given string) (Feedback, bool) {
	return s.score(given, false)
}

// Skip records an explicit "don't know", which counts as an incorrect
// answer for level mastery.
func (s *MemoriseSession) Skip() (Feedback, bool) {
	return s.score("", true)
}

func (s *MemoriseSession) score(given string, skipped bool) (Feedback, bool) {
	e := s.Current()
	if e == nil || e.scored {
		return Feedback{}, false
	}
	e.scored = true

	correct := false
	if !skipped {
		switch e.Kind {
		case KindTyped:
			correct = CheckTyped(given, e.Answer)
		default:
			correct = given == e.Answer
		}
	}

	// Level mastery is earned only in the normal pass, and one miss
	// anywhere in the level disqualifies the card for the level even if
	// it is answered correctly afterwards.
	if s.phase == MemoriseQuestion {
		if correct {
			if !s.missed[e.Card.ID] {
				s.levelMastered[e.Card.ID] = true
			}
		} else {
			s.missed[e.Card.ID] = true
			delete(s.levelMastered, e.Card.ID)
		}
	}

	if s.cfg.AutoSave {
		rec, _ := s.store.Mastery(s.set.ID, e.Card.ID)
		s.store.PutMastery(s.set.ID, e.Card.ID, rec.Rated(correct, time.Now()))
	}

	return Feedback{Correct: correct, CorrectAnswer: e.Answer}, true
}

// Advance moves past the current entry after its feedback delay. The
// caller owns the timing; the engine only mutates state. At the end of
// the queue it either enters the retry pass (level 1 only, when enabled
// and something was missed) or ends the level.
func (s *MemoriseSession) Advance() {
	s.idx++
	if s.idx < len(s.entries) {
		return
	}

	if s.phase == MemoriseQuestion && s.level == 1 && s.cfg.RetryMissed && len(s.missed) > 0 {
		s.startRetry()
		return
	}
	s.endLevel()
}

// startRetry builds a fresh queue of the missed cards: new instance IDs,
// re-rolled question types, freshly sampled options. Retry outcomes do
// not change level mastery.
func (s *MemoriseSession) startRetry() {
	s.phase = MemoriseRetry
	s.idx = 0
	s.entries = s.entries[:0]
	for _, c := range s.set.Cards {
		if s.missed[c.ID] {
			s.entries = append(s.entries, s.buildEntry(c))
		}
	}
}

// endLevel merges the level's mastered cards into the overall set and
// computes the next level's carry-over: every set card that is neither
// mastered overall nor still waiting in the unseen pool.
func (s *MemoriseSession) endLevel() {
	for id := range s.levelMastered {
		s.overallMastered[id] = true
	}
	s.lastLevelMastered = len(s.levelMastered)

	unseen := make(map[string]bool, len(s.pool))
	for _, c := range s.pool {
		unseen[c.ID] = true
	}
	s.carry = nil
	for _, c := range s.set.Cards {
		if !s.overallMastered[c.ID] && !unseen[c.ID] {
			s.carry = append(s.carry, c)
		}
	}

	s.phase = MemoriseTransition
}

// NextLevel leaves the transition screen: it finishes the session when
// nothing is left to study, otherwise starts the next level.
func (s *MemoriseSession) NextLevel() {
	if s.phase != MemoriseTransition {
		return
	}
	if len(s.carry) == 0 && len(s.pool) == 0 {
		s.phase = MemoriseFinished
		return
	}
	s.startLevel()
}

// Phase returns the current engine phase.
func (s *MemoriseSession) Phase() MemorisePhase { return s.phase }

// Level returns the 1-based level number.
func (s *MemoriseSession) Level() int { return s.level }

// Position returns the 1-based entry index and queue length for the
// current pass.
func (s *MemoriseSession) Position() (int, int) {
	pos := s.idx + 1
	if pos > len(s.entries) {
		pos = len(s.entries)
	}
	return pos, len(s.entries)
}

// LevelMastered returns how many cards the just-finished level mastered.
func (s *MemoriseSession) LevelMastered() int { return s.lastLevelMastered }

// OverallMastered returns the session-wide mastered card count.
func (s *MemoriseSession) OverallMastered() int { return len(s.overallMastered) }

// OverallPercent returns mastered cards over total set size, in [0,1].
func (s *MemoriseSession) OverallPercent() float64 {
	if len(s.set.Cards) == 0 {
		return 0
	}
	return float64(len(s.overallMastered)) / float64(len(s.set.Cards))
}

// FeedbackDelay returns how long the feedback for the last answer stays
// on screen before the timed auto-advance.
func (s *MemoriseSession) FeedbackDelay(correct bool) time.Duration {
	return s.cfg.FeedbackDelay(correct)
}
