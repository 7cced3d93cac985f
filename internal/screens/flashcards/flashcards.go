package flashcards

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/rsinha/flashdown/internal/deck"
	"github.com/rsinha/flashdown/internal/profile"
	"github.com/rsinha/flashdown/internal/router"
	"github.com/rsinha/flashdown/internal/screen"
	"github.com/rsinha/flashdown/internal/screens/summary"
	"github.com/rsinha/flashdown/internal/store"
	"github.com/rsinha/flashdown/internal/study"
	"github.com/rsinha/flashdown/internal/ui/components"
	"github.com/rsinha/flashdown/internal/ui/layout"
	"github.com/rsinha/flashdown/internal/ui/theme"
)

// FlashcardScreen drives a flashcard session: show the term, flip to the
// definition, rate know / don't know.
type FlashcardScreen struct {
	set     *deck.StudySet
	profile *profile.Service
	events  store.EventRepo
	session *study.FlashcardSession
	mode    study.FlashcardMode

	sessionID string
	startTime time.Time
	cardShown time.Time
	flipped   bool
	ended     bool
}

var _ screen.Screen = (*FlashcardScreen)(nil)
var _ screen.KeyHintProvider = (*FlashcardScreen)(nil)

// New creates a flashcard screen for the given set and scheduling mode.
func New(set *deck.StudySet, profileSvc *profile.Service, events store.EventRepo, cfg study.Config, mode study.FlashcardMode) *FlashcardScreen {
	return &FlashcardScreen{
		set:     set,
		profile: profileSvc,
		events:  events,
		session: study.NewFlashcardSession(set, profileSvc, cfg),
		mode:    mode,
	}
}

func (s *FlashcardScreen) Init() tea.Cmd {
	s.session.Start(s.mode)
	s.sessionID = uuid.New().String()
	s.startTime = time.Now()
	s.cardShown = s.startTime
	if s.events != nil {
		_ = s.events.AppendSessionEvent(context.Background(), store.SessionEventData{
			SessionID: s.sessionID,
			SetID:     s.set.ID,
			Mode:      "flashcard",
			Action:    "start",
		})
	}
	if s.session.Phase() == study.FlashcardFinished {
		s.finish()
	}
	return nil
}

func (s *FlashcardScreen) Title() string {
	return s.set.Title
}

func (s *FlashcardScreen) KeyHints() []layout.KeyHint {
	if !s.flipped {
		return []layout.KeyHint{
			{Key: "Space", Description: "Flip"},
			{Key: "Esc", Description: "End session"},
		}
	}
	return []layout.KeyHint{
		{Key: "Y", Description: "I knew it"},
		{Key: "N", Description: "Didn't know"},
		{Key: "Esc", Description: "End session"},
	}
}

// HandlesEsc lets the screen persist the session end before leaving.
func (s *FlashcardScreen) HandlesEsc() {}

func (s *FlashcardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	if kmsg.String() == "esc" {
		s.finish()
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.session.Phase() != study.FlashcardActive {
		return s, nil
	}

	switch kmsg.String() {
	case " ", "space", "enter":
		if !s.flipped {
			s.flipped = true
		}
	case "y", "right":
		if s.flipped {
			return s, s.rate(true)
		}
	case "n", "left":
		if s.flipped {
			return s, s.rate(false)
		}
	}

	return s, nil
}

// rate records the answer, persists the event, and advances.
func (s *FlashcardScreen) rate(know bool) tea.Cmd {
	card := s.session.Current()
	if card == nil {
		return nil
	}
	timeMs := int(time.Since(s.cardShown).Milliseconds())

	s.session.Rate(know)
	s.flipped = false
	s.cardShown = time.Now()

	if s.events != nil {
		given := "dont_know"
		if know {
			given = "know"
		}
		_ = s.events.AppendAnswerEvent(context.Background(), store.AnswerEventData{
			SessionID:     s.sessionID,
			SetID:         s.set.ID,
			CardID:        card.ID,
			Mode:          "flashcard",
			Prompt:        card.Term,
			CorrectAnswer: card.Definition,
			GivenAnswer:   given,
			Correct:       know,
			TimeMs:        timeMs,
			QuestionKind:  string(study.KindFlip),
		})
	}

	if s.session.Phase() == study.FlashcardFinished {
		s.finish()
		rated, known := s.session.Stats()
		sum := summary.New(s.set.Title, "Flashcards", summary.Stats{
			Answered: rated,
			Correct:  known,
			Duration: time.Since(s.startTime),
		})
		return func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: sum}
		}
	}
	return nil
}

// finish persists the session end once and advances the study streak.
func (s *FlashcardScreen) finish() {
	if s.ended {
		return
	}
	s.ended = true

	ctx := context.Background()
	rated, known := s.session.Stats()
	if s.events != nil {
		_ = s.events.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID:      s.sessionID,
			SetID:          s.set.ID,
			Mode:           "flashcard",
			Action:         "end",
			CardsSeen:      rated,
			CorrectAnswers: known,
			DurationSecs:   int(time.Since(s.startTime).Seconds()),
		})
	}
	if rated > 0 {
		s.profile.RecordStudy(ctx, time.Now())
	}
}

func (s *FlashcardScreen) View(width, height int) string {
	if s.session.Phase() == study.FlashcardFinished {
		done := lipgloss.NewStyle().Foreground(theme.Success).Bold(true).
			Render("All cards rated!")
		return lipgloss.NewStyle().
			Width(width).Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render(done)
	}

	card := s.session.Current()
	if card == nil {
		return ""
	}

	var b strings.Builder

	pos, total := s.session.Position()
	label := fmt.Sprintf("Card %d of %d", pos, total)
	if s.mode == study.ModeMemoriseAll {
		label = fmt.Sprintf("%d of %d to go", s.session.Remaining(), total)
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(label))
	b.WriteString("\n\n")

	face := card.Term
	faceLabel := "TERM"
	if s.flipped {
		face = card.Definition
		faceLabel = "DEFINITION"
	}

	cardBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Background(theme.BgCard).
		Padding(2, 4).
		Width(min(width-8, 60)).
		Align(lipgloss.Center).
		Render(lipgloss.NewStyle().Foreground(theme.TextDim).Render(faceLabel) +
			"\n\n" +
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(face))
	b.WriteString(cardBox)
	b.WriteString("\n\n")

	if s.flipped {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).
			Render("Did you know it?  ") +
			lipgloss.NewStyle().Foreground(theme.Success).Render("[Y]es") +
			"  " +
			lipgloss.NewStyle().Foreground(theme.Error).Render("[N]o"))
	} else {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
			Render("Press space to flip"))
	}

	b.WriteString("\n\n")
	bar := components.NewProgressBar("", s.progress(), true, min(width-8, 40))
	b.WriteString(bar.View())

	return lipgloss.NewStyle().
		Width(width).Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(b.String())
}

// progress is the fraction of the session completed.
func (s *FlashcardScreen) progress() float64 {
	total := s.session.Total()
	if total == 0 {
		return 1
	}
	if s.mode == study.ModeMemoriseAll {
		// Reinserted cards can push the queue past the set size.
		p := 1 - float64(s.session.Remaining())/float64(total)
		if p < 0 {
			p = 0
		}
		return p
	}
	pos, _ := s.session.Position()
	return float64(pos-1) / float64(total)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
