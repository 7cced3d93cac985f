package study

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rsinha/flashdown/internal/deck"
	"github.com/rsinha/flashdown/internal/distractor"
)

// incorrectReinsert is how far from the front a missed test card is
// re-queued, so it comes back quickly but not immediately.
const incorrectReinsert = 2

// TestPhase is the test session lifecycle state.
type TestPhase int

const (
	TestBuilding TestPhase = iota
	TestActive
	TestFinished
)

// TestSession drives the streak-based mastery test: every card must reach
// MasteryThreshold consecutive correct answers. Correct-but-unfinished
// cards are re-queued at the back, missed cards near the front, and a
// card that reaches the threshold is done for the session.
type TestSession struct {
	set      *deck.StudySet
	store    MasteryStore
	provider DistractorProvider
	cfg      Config

	phase   TestPhase
	q       queue
	streaks map[string]int
	done    map[string]bool

	answered int
	correct  int
}

// NewTestSession creates a session; Build must run before questions are
// served.
func NewTestSession(set *deck.StudySet, store MasteryStore, provider DistractorProvider, cfg Config) *TestSession {
	return &TestSession{
		set:      set,
		store:    store,
		provider: provider,
		cfg:      cfg.normalized(),
		phase:    TestBuilding,
		streaks:  make(map[string]int),
		done:     make(map[string]bool),
	}
}

// Build constructs one question per card, fetching distractors with one
// concurrent provider request per card and awaiting them all before the
// first question is shown. A failed or short fetch degrades that card to
// locally sampled options; it never fails the batch. Per-card streaks are
// seeded from persisted mastery.
func (s *TestSession) Build(ctx context.Context) error {
	cards := s.set.Cards
	if s.cfg.ShuffleCards {
		cards = deck.Shuffled(cards)
	}

	for _, c := range cards {
		if rec, ok := s.store.Mastery(s.set.ID, c.ID); ok {
			s.streaks[c.ID] = rec.ConsecutiveCorrect
		}
	}

	language := s.set.Language()
	wanted := s.cfg.NumberOfChoices - 1
	entries := make([]*Entry, len(cards))

	g, gctx := errgroup.WithContext(ctx)
	for i, c := range cards {
		g.Go(func() error {
			entries[i] = s.buildQuestion(gctx, c, language, wanted)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, e := range entries {
		s.q.push(e)
	}
	s.phase = TestActive
	if s.q.len() == 0 {
		s.phase = TestFinished
	}
	return nil
}

// buildQuestion assembles one card's options: remote distractors first,
// padded from the local sampler on error or shortfall.
func (s *TestSession) buildQuestion(ctx context.Context, c deck.Card, language string, wanted int) *Entry {
	var distractors []string
	if s.provider != nil {
		fetched, err := s.provider.Distractors(ctx, c.Term, c.Definition, language, wanted)
		if err == nil {
			// A provider may echo the correct definition or repeat
			// itself; such options would break CorrectIndex.
			for _, d := range fetched {
				if len(distractors) >= wanted {
					break
				}
				if CheckTyped(d, c.Definition) {
					continue
				}
				if !containsFold(distractors, d) {
					distractors = append(distractors, d)
				}
			}
		}
	}

	if len(distractors) < wanted {
		pool := make([]string, 0, len(s.set.Cards)-1)
		for _, other := range s.set.Cards {
			if other.ID != c.ID {
				pool = append(pool, other.Definition)
			}
		}
		for _, d := range distractor.Local(c.Definition, pool, wanted) {
			if len(distractors) >= wanted {
				break
			}
			if !containsFold(distractors, d) {
				distractors = append(distractors, d)
			}
		}
	}

	options := append(distractors, c.Definition)
	if s.cfg.ShuffleOptions {
		deck.ShuffleStrings(options)
	}
	correct := 0
	for i, o := range options {
		if o == c.Definition {
			correct = i
			break
		}
	}
	return newEntry(c, KindChoice, c.Term, c.Definition, options, correct)
}

// Current returns the head question, or nil when the session is over.
func (s *TestSession) Current() *Entry {
	if s.phase != TestActive {
		return nil
	}
	return s.q.head()
}

// Answer scores the head question by chosen option index. The card's
// streak advances or resets, and the mastery store is updated immediately
// when auto-save is on. Returns false when there is no active unscored
// entry; an entry never scores twice.
func (s *TestSession) Answer(choice int) (Feedback, bool) {
	e := s.Current()
	if e == nil || e.scored {
		return Feedback{}, false
	}
	e.scored = true

	correct := choice == e.CorrectIndex
	s.answered++

	streak := s.streaks[e.Card.ID]
	if correct {
		streak++
		s.correct++
	} else {
		streak = 0
	}
	s.streaks[e.Card.ID] = streak

	if s.cfg.AutoSave {
		rec, _ := s.store.Mastery(s.set.ID, e.Card.ID)
		s.store.PutMastery(s.set.ID, e.Card.ID, rec.Tested(streak, s.cfg.MasteryThreshold, time.Now()))
	}

	return Feedback{
		Correct:       correct,
		CorrectAnswer: e.Answer,
		Streak:        streak,
		Mastered:      correct && streak >= s.cfg.MasteryThreshold,
	}, true
}

// Advance removes the head entry and re-queues the card unless its streak
// has reached the threshold: correct answers go to the back of the queue,
// misses return at min(len, 2) from the front. The session finishes when
// the queue empties, meaning every card independently hit the threshold.
func (s *TestSession) Advance() {
	e := s.q.popHead()
	if e == nil {
		return
	}

	streak := s.streaks[e.Card.ID]
	switch {
	case streak >= s.cfg.MasteryThreshold:
		s.done[e.Card.ID] = true
	case streak > 0:
		s.q.push(e.reissue())
	default:
		s.q.insertAt(e.reissue(), incorrectReinsert)
	}

	if s.q.len() == 0 {
		s.phase = TestFinished
	}
}

// Hint returns the first character of the correct definition.
func (s *TestSession) Hint() string {
	e := s.Current()
	if e == nil || e.Answer == "" {
		return ""
	}
	return string([]rune(e.Answer)[:1])
}

// Phase returns the session lifecycle state.
func (s *TestSession) Phase() TestPhase { return s.phase }

// Streak returns a card's current in-session streak.
func (s *TestSession) Streak(cardID string) int { return s.streaks[cardID] }

// MasteredCount returns how many cards are done for the session.
func (s *TestSession) MasteredCount() int { return len(s.done) }

// TotalCards returns the set size.
func (s *TestSession) TotalCards() int { return len(s.set.Cards) }

// Stats returns answered and correct counts for the summary screen.
func (s *TestSession) Stats() (answered, correct int) { return s.answered, s.correct }

func containsFold(vals []string, v string) bool {
	for _, x := range vals {
		if CheckTyped(x, v) {
			return true
		}
	}
	return false
}
