package memorise

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

// advanceTickMsg fires when the feedback display period ends. Seq guards
// against stale ticks from an entry that was already advanced past.
type advanceTickMsg struct {
	Seq int
}

// MemoriseScreen drives the leveled memorise mode: multiple-choice and
// typed questions in levels, with timed feedback and a between-levels
// transition view.
type MemoriseScreen struct {
	set     *deck.StudySet
	profile *profile.Service
	events  store.EventRepo
	session *study.MemoriseSession

	mc       components.MultiChoice
	input    components.TextInput
	feedback *study.Feedback
	seq      int

	sessionID string
	startTime time.Time
	cardShown time.Time
	answered  int
	correct   int
	ended     bool
}

var _ screen.Screen = (*MemoriseScreen)(nil)
var _ screen.KeyHintProvider = (*MemoriseScreen)(nil)

// New creates a memorise screen for the given set.
func New(set *deck.StudySet, profileSvc *profile.Service, events store.EventRepo, cfg study.Config) *MemoriseScreen {
	return &MemoriseScreen{
		set:     set,
		profile: profileSvc,
		events:  events,
		session: study.NewMemoriseSession(set, profileSvc, cfg),
	}
}

func (s *MemoriseScreen) Init() tea.Cmd {
	s.sessionID = uuid.New().String()
	s.startTime = time.Now()
	if s.events != nil {
		_ = s.events.AppendSessionEvent(context.Background(), store.SessionEventData{
			SessionID: s.sessionID,
			SetID:     s.set.ID,
			Mode:      "memorise",
			Action:    "start",
		})
	}
	if s.session.Phase() == study.MemoriseFinished {
		return s.finishAndSummarize()
	}
	return s.setupEntry()
}

func (s *MemoriseScreen) Title() string {
	return s.set.Title
}

func (s *MemoriseScreen) KeyHints() []layout.KeyHint {
	switch s.session.Phase() {
	case study.MemoriseTransition, study.MemoriseFinished:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
		}
	}
	if s.feedback != nil {
		return nil
	}
	e := s.session.Current()
	if e != nil && e.Kind == study.KindTyped {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Ctrl+S", Description: "Skip"},
			{Key: "Esc", Description: "End session"},
		}
	}
	return []layout.KeyHint{
		{Key: "1-4", Description: "Answer"},
		{Key: "S", Description: "Skip"},
		{Key: "Esc", Description: "End session"},
	}
}

// HandlesEsc lets the screen persist the session end before leaving.
func (s *MemoriseScreen) HandlesEsc() {}

// setupEntry builds the input component for the current entry.
func (s *MemoriseScreen) setupEntry() tea.Cmd {
	e := s.session.Current()
	if e == nil {
		return nil
	}
	s.cardShown = time.Now()
	if e.Kind == study.KindChoice {
		s.mc = components.NewMultiChoice(e.Prompt, e.Options, e.CorrectIndex)
		return nil
	}
	s.input = components.NewTextInput("Type the term...", false, 64)
	return s.input.Init()
}

func (s *MemoriseScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case advanceTickMsg:
		return s.handleAdvance(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if e := s.session.Current(); e != nil && e.Kind == study.KindTyped && s.feedback == nil {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *MemoriseScreen) handleAdvance(msg advanceTickMsg) (screen.Screen, tea.Cmd) {
	if msg.Seq != s.seq || s.feedback == nil {
		return s, nil
	}
	s.feedback = nil
	s.session.Advance()
	return s, s.setupEntry()
}

func (s *MemoriseScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if key == "esc" {
		s.finish()
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	switch s.session.Phase() {
	case study.MemoriseTransition:
		if key == "enter" || key == " " || key == "space" {
			s.session.NextLevel()
			if s.session.Phase() == study.MemoriseFinished {
				return s, s.finishAndSummarize()
			}
			return s, s.setupEntry()
		}
		return s, nil

	case study.MemoriseFinished:
		return s, nil
	}

	// Feedback is on a timer; keys don't dismiss it.
	if s.feedback != nil {
		return s, nil
	}

	e := s.session.Current()
	if e == nil {
		return s, nil
	}

	if e.Kind == study.KindChoice {
		switch key {
		case "s":
			return s, s.skip()
		case "1", "2", "3", "4":
			i := int(key[0] - '1')
			if i < len(e.Options) {
				s.mc.Selected = i
				s.mc.Submitted = true
				s.mc.ChosenIndex = i
				return s, s.answer(e.Options[i])
			}
			return s, nil
		}
		var cmd tea.Cmd
		s.mc, cmd = s.mc.Update(msg)
		if s.mc.Submitted {
			return s, s.answer(e.Options[s.mc.ChosenIndex])
		}
		return s, cmd
	}

	// Typed entry.
	switch key {
	case "ctrl+s":
		return s, s.skip()
	case "enter":
		if s.input.Value() == "" {
			return s, nil
		}
		return s, s.answer(s.input.Value())
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *MemoriseScreen) answer(given string) tea.Cmd {
	return s.score(given, false)
}

func (s *MemoriseScreen) skip() tea.Cmd {
	return s.score("", true)
}

// score records the outcome and starts the feedback timer.
func (s *MemoriseScreen) score(given string, skipped bool) tea.Cmd {
	e := s.session.Current()
	if e == nil {
		return nil
	}

	var fb study.Feedback
	var ok bool
	if skipped {
		fb, ok = s.session.Skip()
	} else {
		fb, ok = s.session.Answer(given)
	}
	if !ok {
		return nil
	}

	s.answered++
	if fb.Correct {
		s.correct++
	}
	s.feedback = &fb

	if e.Kind == study.KindChoice && skipped {
		// Reveal the correct option.
		s.mc.Submitted = true
		s.mc.ChosenIndex = -1
	}
	if e.Kind == study.KindTyped {
		s.input.Submit(fb.Correct)
	}

	if s.events != nil {
		_ = s.events.AppendAnswerEvent(context.Background(), store.AnswerEventData{
			SessionID:     s.sessionID,
			SetID:         s.set.ID,
			CardID:        e.Card.ID,
			Mode:          "memorise",
			Prompt:        e.Prompt,
			CorrectAnswer: e.Answer,
			GivenAnswer:   given,
			Correct:       fb.Correct,
			TimeMs:        int(time.Since(s.cardShown).Milliseconds()),
			QuestionKind:  string(e.Kind),
		})
	}

	s.seq++
	seq := s.seq
	return tea.Tick(s.session.FeedbackDelay(fb.Correct), func(time.Time) tea.Msg {
		return advanceTickMsg{Seq: seq}
	})
}

// finish persists the session end once and advances the study streak.
func (s *MemoriseScreen) finish() {
	if s.ended {
		return
	}
	s.ended = true

	ctx := context.Background()
	if s.events != nil {
		_ = s.events.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID:      s.sessionID,
			SetID:          s.set.ID,
			Mode:           "memorise",
			Action:         "end",
			CardsSeen:      s.answered,
			CorrectAnswers: s.correct,
			DurationSecs:   int(time.Since(s.startTime).Seconds()),
		})
	}
	if s.answered > 0 {
		s.profile.RecordStudy(ctx, time.Now())
	}
}

func (s *MemoriseScreen) finishAndSummarize() tea.Cmd {
	s.finish()
	sum := summary.New(s.set.Title, "Memorise", summary.Stats{
		Answered: s.answered,
		Correct:  s.correct,
		Mastered: s.session.OverallMastered(),
		Total:    len(s.set.Cards),
		Duration: time.Since(s.startTime),
	})
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: sum}
	}
}

func (s *MemoriseScreen) View(width, height int) string {
	switch s.session.Phase() {
	case study.MemoriseTransition:
		return s.renderTransition(width, height)
	case study.MemoriseFinished:
		done := lipgloss.NewStyle().Foreground(theme.Success).Bold(true).
			Render("Every card mastered!")
		return lipgloss.NewStyle().
			Width(width).Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render(done)
	}
	return s.renderQuestion(width, height)
}

func (s *MemoriseScreen) renderTransition(width, height int) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).
		Render(fmt.Sprintf("Level %d complete!", s.session.Level())))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).
		Render(fmt.Sprintf("Mastered this level: %d", s.session.LevelMastered())))
	b.WriteString("\n\n")

	bar := components.NewProgressBar("Overall", s.session.OverallPercent(), true, min(width-8, 40))
	b.WriteString(bar.View())
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
		Render("Press enter to continue"))

	return lipgloss.NewStyle().
		Width(width).Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(b.String())
}

func (s *MemoriseScreen) renderQuestion(width, height int) string {
	e := s.session.Current()
	if e == nil {
		return ""
	}

	var b strings.Builder

	pos, total := s.session.Position()
	label := fmt.Sprintf("Level %d — question %d of %d", s.session.Level(), pos, total)
	if s.session.Phase() == study.MemoriseRetry {
		label = fmt.Sprintf("Retry — question %d of %d", pos, total)
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(label))
	b.WriteString("\n\n")

	if e.Kind == study.KindChoice {
		b.WriteString(s.mc.View())
	} else {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(e.Prompt))
		b.WriteString("\n\n")
		b.WriteString(s.input.View())
	}

	b.WriteString("\n")
	if s.feedback != nil {
		if s.feedback.Correct {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Bold(true).
				Render("Correct!"))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Bold(true).
				Render("The answer was: " + s.feedback.CorrectAnswer))
		}
	}

	return lipgloss.NewStyle().
		Width(width).Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(b.String())
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
