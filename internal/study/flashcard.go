package study

import (
	"time"

	"github.com/rsinha/flashdown/internal/deck"
)

// FlashcardMode selects how a flashcard session schedules cards.
type FlashcardMode string

const (
	// ModeStandard is a single linear pass over the set.
	ModeStandard FlashcardMode = "standard"

	// ModeMemoriseAll re-queues unknown cards until every card has been
	// rated "know" once.
	ModeMemoriseAll FlashcardMode = "memorise_all"
)

// memoriseAllReinsert is how many other cards an unknown card skips
// before it comes back.
const memoriseAllReinsert = 3

// FlashcardPhase is the session lifecycle state.
type FlashcardPhase int

const (
	FlashcardSetup FlashcardPhase = iota
	FlashcardActive
	FlashcardFinished
)

// FlashcardSession drives the flashcard study mode. The zero cursor/queue
// is built when Start is called with the chosen mode; before that the
// session sits in the setup phase.
type FlashcardSession struct {
	set   *deck.StudySet
	store MasteryStore
	cfg   Config

	mode  FlashcardMode
	phase FlashcardPhase

	cards    []deck.Card // session order, fixed at Start
	cursor   int         // standard mode position
	q        queue       // memorise-all working queue
	mastered int         // memorise-all "know" count
	rated    int         // total ratings given this session
	known    int         // total "know" ratings
}

// NewFlashcardSession creates a session in the setup phase.
func NewFlashcardSession(set *deck.StudySet, store MasteryStore, cfg Config) *FlashcardSession {
	return &FlashcardSession{
		set:   set,
		store: store,
		cfg:   cfg.normalized(),
		phase: FlashcardSetup,
	}
}

// Start leaves setup and builds the working order for the chosen mode.
// The order is freshly shuffled every start when shuffling is enabled.
func (s *FlashcardSession) Start(mode FlashcardMode) {
	s.mode = mode
	if s.cfg.ShuffleCards {
		s.cards = deck.Shuffled(s.set.Cards)
	} else {
		s.cards = append([]deck.Card(nil), s.set.Cards...)
	}
	s.cursor = 0
	s.mastered = 0
	s.q = queue{}
	if mode == ModeMemoriseAll {
		for _, c := range s.cards {
			s.q.push(newEntry(c, KindFlip, c.Term, c.Definition, nil, -1))
		}
	}
	if len(s.cards) == 0 {
		s.phase = FlashcardFinished
		return
	}
	s.phase = FlashcardActive
}

// Restart rebuilds the full working order from the finished phase.
func (s *FlashcardSession) Restart() {
	if s.phase != FlashcardFinished {
		return
	}
	s.Start(s.mode)
}

// Mode returns the selected mode (meaningful after Start).
func (s *FlashcardSession) Mode() FlashcardMode { return s.mode }

// Phase returns the session lifecycle state.
func (s *FlashcardSession) Phase() FlashcardPhase { return s.phase }

// Current returns the card being displayed, or nil when not active.
func (s *FlashcardSession) Current() *deck.Card {
	if s.phase != FlashcardActive {
		return nil
	}
	switch s.mode {
	case ModeMemoriseAll:
		e := s.q.head()
		if e == nil {
			return nil
		}
		return &e.Card
	default:
		if s.cursor >= len(s.cards) {
			return nil
		}
		return &s.cards[s.cursor]
	}
}

// Rate records a "know"/"don't know" rating for the current card. The
// persisted mastery update always happens before the queue advances,
// in every mode.
func (s *FlashcardSession) Rate(know bool) {
	card := s.Current()
	if card == nil {
		return
	}

	rec, _ := s.store.Mastery(s.set.ID, card.ID)
	s.store.PutMastery(s.set.ID, card.ID, rec.Rated(know, time.Now()))
	s.rated++
	if know {
		s.known++
	}

	switch s.mode {
	case ModeMemoriseAll:
		e := s.q.popHead()
		e.scored = true
		if know {
			s.mastered++
		} else {
			// Reappears after at most three other cards.
			s.q.insertAt(e.reissue(), memoriseAllReinsert)
		}
		if s.q.len() == 0 {
			s.phase = FlashcardFinished
		}
	default:
		s.cursor++
		if s.cursor >= len(s.cards) {
			s.phase = FlashcardFinished
		}
	}
}

// Total returns the number of cards in the session order.
func (s *FlashcardSession) Total() int { return len(s.cards) }

// Position returns a 1-based progress pair (current, total). In
// memorise-all mode "current" is the mastered count.
func (s *FlashcardSession) Position() (int, int) {
	if s.mode == ModeMemoriseAll {
		return s.mastered, len(s.cards)
	}
	pos := s.cursor + 1
	if pos > len(s.cards) {
		pos = len(s.cards)
	}
	return pos, len(s.cards)
}

// Remaining returns how many queue entries are left (memorise-all).
func (s *FlashcardSession) Remaining() int { return s.q.len() }

// Stats returns total ratings and "know" ratings for the summary screen.
func (s *FlashcardSession) Stats() (rated, known int) { return s.rated, s.known }
