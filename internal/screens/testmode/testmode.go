package testmode

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

// builtMsg is sent when question building (distractor fetches) completes.
type builtMsg struct {
	Err error
}

// advanceTickMsg fires when the feedback display period ends.
type advanceTickMsg struct {
	Seq int
}

// TestScreen drives the test mode: every card gets a multiple-choice
// question up front, and cards repeat until their streak reaches the
// mastery threshold.
type TestScreen struct {
	set     *deck.StudySet
	profile *profile.Service
	events  store.EventRepo
	session *study.TestSession
	cfg     study.Config

	building bool
	errMsg   string
	mc       components.MultiChoice
	feedback *study.Feedback
	hint     string
	seq      int

	sessionID string
	startTime time.Time
	cardShown time.Time
	ended     bool
}

var _ screen.Screen = (*TestScreen)(nil)
var _ screen.KeyHintProvider = (*TestScreen)(nil)

// New creates a test screen for the given set. The distractor provider
// may be nil; options then come from the set itself.
func New(set *deck.StudySet, profileSvc *profile.Service, events store.EventRepo, distractors study.DistractorProvider, cfg study.Config) *TestScreen {
	return &TestScreen{
		set:     set,
		profile: profileSvc,
		events:  events,
		session: study.NewTestSession(set, profileSvc, distractors, cfg),
		cfg:     cfg,
	}
}

func (s *TestScreen) Init() tea.Cmd {
	s.sessionID = uuid.New().String()
	s.startTime = time.Now()
	s.building = true
	if s.events != nil {
		_ = s.events.AppendSessionEvent(context.Background(), store.SessionEventData{
			SessionID: s.sessionID,
			SetID:     s.set.ID,
			Mode:      "test",
			Action:    "start",
		})
	}
	session := s.session
	return func() tea.Msg {
		return builtMsg{Err: session.Build(context.Background())}
	}
}

func (s *TestScreen) Title() string {
	return s.set.Title + " — Test"
}

func (s *TestScreen) KeyHints() []layout.KeyHint {
	if s.building || s.errMsg != "" {
		return nil
	}
	if s.feedback != nil {
		return nil
	}
	return []layout.KeyHint{
		{Key: "1-4", Description: "Answer"},
		{Key: "H", Description: "Hint"},
		{Key: "Esc", Description: "End session"},
	}
}

// HandlesEsc lets the screen persist the session end before leaving.
func (s *TestScreen) HandlesEsc() {}

func (s *TestScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case builtMsg:
		s.building = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		if s.session.Phase() == study.TestFinished {
			return s, s.finishAndSummarize()
		}
		s.setupEntry()
		return s, nil

	case advanceTickMsg:
		if msg.Seq != s.seq || s.feedback == nil {
			return s, nil
		}
		s.feedback = nil
		s.session.Advance()
		if s.session.Phase() == study.TestFinished {
			return s, s.finishAndSummarize()
		}
		s.setupEntry()
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *TestScreen) setupEntry() {
	e := s.session.Current()
	if e == nil {
		return
	}
	s.mc = components.NewMultiChoice(e.Prompt, e.Options, e.CorrectIndex)
	s.hint = ""
	s.cardShown = time.Now()
}

func (s *TestScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if key == "esc" || s.errMsg != "" {
		s.finish()
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.building || s.feedback != nil {
		return s, nil
	}

	e := s.session.Current()
	if e == nil {
		return s, nil
	}

	switch key {
	case "h":
		s.hint = s.session.Hint()
		return s, nil
	case "1", "2", "3", "4":
		i := int(key[0] - '1')
		if i < len(e.Options) {
			s.mc.Selected = i
			s.mc.Submitted = true
			s.mc.ChosenIndex = i
			return s, s.answer(i)
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.mc, cmd = s.mc.Update(msg)
	if s.mc.Submitted {
		return s, s.answer(s.mc.ChosenIndex)
	}
	return s, cmd
}

// answer scores the choice and starts the feedback timer.
func (s *TestScreen) answer(choice int) tea.Cmd {
	e := s.session.Current()
	if e == nil {
		return nil
	}

	fb, ok := s.session.Answer(choice)
	if !ok {
		return nil
	}
	s.feedback = &fb

	if s.events != nil {
		given := ""
		if choice >= 0 && choice < len(e.Options) {
			given = e.Options[choice]
		}
		_ = s.events.AppendAnswerEvent(context.Background(), store.AnswerEventData{
			SessionID:     s.sessionID,
			SetID:         s.set.ID,
			CardID:        e.Card.ID,
			Mode:          "test",
			Prompt:        e.Prompt,
			CorrectAnswer: e.Answer,
			GivenAnswer:   given,
			Correct:       fb.Correct,
			TimeMs:        int(time.Since(s.cardShown).Milliseconds()),
			QuestionKind:  string(study.KindChoice),
		})
	}

	s.seq++
	seq := s.seq
	return tea.Tick(s.cfg.FeedbackDelay(fb.Correct), func(time.Time) tea.Msg {
		return advanceTickMsg{Seq: seq}
	})
}

// finish persists the session end once and advances the study streak.
func (s *TestScreen) finish() {
	if s.ended {
		return
	}
	s.ended = true

	ctx := context.Background()
	answered, correct := s.session.Stats()
	if s.events != nil {
		_ = s.events.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID:      s.sessionID,
			SetID:          s.set.ID,
			Mode:           "test",
			Action:         "end",
			CardsSeen:      answered,
			CorrectAnswers: correct,
			DurationSecs:   int(time.Since(s.startTime).Seconds()),
		})
	}
	if answered > 0 {
		s.profile.RecordStudy(ctx, time.Now())
	}
}

func (s *TestScreen) finishAndSummarize() tea.Cmd {
	s.finish()
	answered, correct := s.session.Stats()
	sum := summary.New(s.set.Title, "Test", summary.Stats{
		Answered: answered,
		Correct:  correct,
		Mastered: s.session.MasteredCount(),
		Total:    s.session.TotalCards(),
		Duration: time.Since(s.startTime),
	})
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: sum}
	}
}

func (s *TestScreen) View(width, height int) string {
	center := lipgloss.NewStyle().
		Width(width).Height(height).
		Align(lipgloss.Center, lipgloss.Center)

	if s.errMsg != "" {
		return center.Render(lipgloss.NewStyle().Foreground(theme.Error).
			Render("Could not build the test: " + s.errMsg))
	}
	if s.building {
		return center.Render(lipgloss.NewStyle().Foreground(theme.TextDim).
			Render("Preparing questions..."))
	}

	e := s.session.Current()
	if e == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("Mastered %d of %d", s.session.MasteredCount(), s.session.TotalCards())))
	b.WriteString("\n\n")
	b.WriteString(s.mc.View())
	b.WriteString("\n")

	streak := s.session.Streak(e.Card.ID)
	threshold := s.cfg.MasteryThreshold
	if threshold <= 0 {
		threshold = study.DefaultMasteryThreshold
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).
		Render(fmt.Sprintf("Streak: %d/%d", streak, threshold)))
	b.WriteString("\n")

	if s.hint != "" && s.feedback == nil {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).
			Render("Hint: starts with " + s.hint))
		b.WriteString("\n")
	}

	if s.feedback != nil {
		if s.feedback.Correct {
			line := "Correct!"
			if s.feedback.Mastered {
				line = "Correct — card mastered!"
			}
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render(line))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Bold(true).
				Render("The answer was: " + s.feedback.CorrectAnswer))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	bar := components.NewProgressBar("", s.progress(), true, min(width-8, 40))
	b.WriteString(bar.View())

	return center.Render(b.String())
}

func (s *TestScreen) progress() float64 {
	total := s.session.TotalCards()
	if total == 0 {
		return 1
	}
	return float64(s.session.MasteredCount()) / float64(total)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
