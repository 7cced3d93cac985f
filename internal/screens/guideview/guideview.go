package guideview

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rsinha/flashdown/internal/deck"
	"github.com/rsinha/flashdown/internal/guide"
	"github.com/rsinha/flashdown/internal/profile"
	"github.com/rsinha/flashdown/internal/screen"
	"github.com/rsinha/flashdown/internal/store"
	"github.com/rsinha/flashdown/internal/ui/layout"
	"github.com/rsinha/flashdown/internal/ui/theme"
)

// pollTickMsg checks whether the async generation has finished.
type pollTickMsg struct{}

const pollInterval = 250 * time.Millisecond

// GuideScreen requests a study guide for a set and renders it once the
// generation service delivers it.
type GuideScreen struct {
	svc     *guide.Service
	profile *profile.Service
	events  store.EventRepo
	set     *deck.StudySet

	guide  *guide.Guide
	errMsg string
	scroll int
}

var _ screen.Screen = (*GuideScreen)(nil)
var _ screen.KeyHintProvider = (*GuideScreen)(nil)

// New creates a guide screen for the given set.
func New(svc *guide.Service, profileSvc *profile.Service, events store.EventRepo, set *deck.StudySet) *GuideScreen {
	return &GuideScreen{
		svc:     svc,
		profile: profileSvc,
		events:  events,
		set:     set,
	}
}

func (s *GuideScreen) Init() tea.Cmd {
	s.svc.RequestGuide(context.Background(), s.buildInput())
	return pollTick()
}

// buildInput gathers the set's cards, current progress, and the terms
// the learner keeps missing.
func (s *GuideScreen) buildInput() guide.GuideInput {
	cards := make([]guide.CardSummary, 0, len(s.set.Cards))
	for _, c := range s.set.Cards {
		cards = append(cards, guide.CardSummary{Term: c.Term, Definition: c.Definition})
	}

	var weak []string
	if s.events != nil {
		ids, _ := s.events.RecentMisses(context.Background(), s.set.ID, 5)
		for _, id := range ids {
			if card := s.set.CardByID(id); card != nil {
				weak = append(weak, card.Term)
			}
		}
	}

	return guide.GuideInput{
		SetID:     s.set.ID,
		SetTitle:  s.set.Title,
		Language:  s.set.Language(),
		Cards:     cards,
		WeakTerms: weak,
		Progress:  float64(s.profile.Profile().SetProgress(s.set.ID)) / 100,
	}
}

func (s *GuideScreen) Title() string {
	return s.set.Title + " — Guide"
}

func (s *GuideScreen) KeyHints() []layout.KeyHint {
	if s.guide == nil {
		return nil
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *GuideScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case pollTickMsg:
		if s.guide != nil || s.errMsg != "" {
			return s, nil
		}
		if g, ok := s.svc.ConsumeGuide(); ok {
			s.guide = g
			return s, nil
		}
		if err := s.svc.Err(); err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		return s, pollTick()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.scroll > 0 {
				s.scroll--
			}
		case "down", "j":
			s.scroll++
		}
	}
	return s, nil
}

func (s *GuideScreen) View(width, height int) string {
	center := lipgloss.NewStyle().
		Width(width).Height(height).
		Align(lipgloss.Center, lipgloss.Center)

	if s.errMsg != "" {
		return center.Render(lipgloss.NewStyle().Foreground(theme.Error).
			Render("Could not generate the guide: " + s.errMsg))
	}
	if s.guide == nil {
		return center.Render(lipgloss.NewStyle().Foreground(theme.TextDim).
			Render("Writing your study guide..."))
	}

	lines := s.renderLines(min(width-8, 76))

	// Clamp the scroll window to the rendered text.
	maxScroll := len(lines) - height
	if maxScroll < 0 {
		maxScroll = 0
	}
	if s.scroll > maxScroll {
		s.scroll = maxScroll
	}
	end := s.scroll + height
	if end > len(lines) {
		end = len(lines)
	}

	body := strings.Join(lines[s.scroll:end], "\n")
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(body)
}

// renderLines lays the guide out as wrapped styled lines.
func (s *GuideScreen) renderLines(width int) []string {
	g := s.guide
	wrap := lipgloss.NewStyle().Width(width)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(g.Title))
	b.WriteString("\n\n")
	b.WriteString(wrap.Foreground(theme.Text).Render(g.Overview))
	b.WriteString("\n")

	for _, sec := range g.Sections {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(sec.Heading))
		b.WriteString("\n")
		b.WriteString(wrap.Foreground(theme.Text).Render(sec.Explanation))
		b.WriteString("\n")
		if len(sec.Terms) > 0 {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
				Render("Terms: " + strings.Join(sec.Terms, ", ")))
			b.WriteString("\n")
		}
	}

	if len(g.Tips) > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("Tips"))
		b.WriteString("\n")
		for _, tip := range g.Tips {
			b.WriteString(wrap.Foreground(theme.Text).Render("• " + tip))
			b.WriteString("\n")
		}
	}

	return strings.Split(b.String(), "\n")
}

func pollTick() tea.Cmd {
	return tea.Tick(pollInterval, func(time.Time) tea.Msg {
		return pollTickMsg{}
	})
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
