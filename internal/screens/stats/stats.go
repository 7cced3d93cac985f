package stats

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rsinha/flashdown/internal/deck"
	"github.com/rsinha/flashdown/internal/profile"
	"github.com/rsinha/flashdown/internal/router"
	"github.com/rsinha/flashdown/internal/screen"
	"github.com/rsinha/flashdown/internal/store"
	"github.com/rsinha/flashdown/internal/ui/components"
	"github.com/rsinha/flashdown/internal/ui/layout"
	"github.com/rsinha/flashdown/internal/ui/theme"
)

// StatsScreen shows per-set progress, and per-card accuracy for a
// selected set.
type StatsScreen struct {
	profile *profile.Service
	events  store.EventRepo

	menu   components.Menu
	detail *deck.StudySet

	// detail data, loaded when a set is selected
	lastStudied time.Time
	accuracy    []store.CardAccuracy
	misses      []string
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates a stats screen over the profile's sets.
func New(profileSvc *profile.Service, events store.EventRepo) *StatsScreen {
	s := &StatsScreen{
		profile: profileSvc,
		events:  events,
	}
	s.menu = components.NewMenu(s.setItems())
	return s
}

func (s *StatsScreen) setItems() []components.MenuItem {
	p := s.profile.Profile()
	items := make([]components.MenuItem, 0, len(p.Sets))
	for i := range p.Sets {
		set := &p.Sets[i]
		items = append(items, components.MenuItem{
			Label: set.Title,
			Action: func() tea.Cmd {
				s.openDetail(set)
				return nil
			},
		})
	}
	return items
}

// openDetail loads the event-derived numbers for one set.
func (s *StatsScreen) openDetail(set *deck.StudySet) {
	s.detail = set
	s.lastStudied = time.Time{}
	s.accuracy = nil
	s.misses = nil

	if s.events == nil {
		return
	}
	ctx := context.Background()
	s.lastStudied, _ = s.events.LastStudied(ctx, set.ID)
	s.accuracy, _ = s.events.SetAccuracy(ctx, set.ID)
	s.misses, _ = s.events.RecentMisses(ctx, set.ID, 5)
}

func (s *StatsScreen) Init() tea.Cmd {
	return nil
}

func (s *StatsScreen) Title() string {
	if s.detail != nil {
		return s.detail.Title + " — Stats"
	}
	return "Statistics"
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	if s.detail != nil {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Details"},
		{Key: "Esc", Description: "Back"},
	}
}

// HandlesEsc keeps the esc key local so detail steps back to the list.
func (s *StatsScreen) HandlesEsc() {}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "esc" {
		if s.detail != nil {
			s.detail = nil
			return s, nil
		}
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.detail != nil {
		return s, nil
	}
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *StatsScreen) View(width, height int) string {
	center := lipgloss.NewStyle().
		Width(width).Height(height).
		Align(lipgloss.Center, lipgloss.Center)

	if s.detail != nil {
		return center.Render(s.renderDetail(width))
	}

	p := s.profile.Profile()
	if len(p.Sets) == 0 {
		return center.Render(lipgloss.NewStyle().Foreground(theme.TextDim).
			Render("Nothing to show yet. Study a set first."))
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Render("Your sets"))
	b.WriteString("\n\n")

	barWidth := min(width-8, 50)
	for i := range p.Sets {
		set := &p.Sets[i]
		progress := float64(p.SetProgress(set.ID)) / 100
		bar := components.NewProgressBar(pad(set.Title, 20), progress, true, barWidth)
		b.WriteString(bar.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.menu.View())

	return center.Render(b.String())
}

func (s *StatsScreen) renderDetail(width int) string {
	var b strings.Builder
	set := s.detail

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).
		Render(set.Title))
	b.WriteString("\n\n")

	learned := 0
	for _, c := range set.Cards {
		if rec, ok := s.profile.Mastery(set.ID, c.ID); ok && rec.Learned() {
			learned++
		}
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).
		Render(fmt.Sprintf("Learned: %d of %d cards    Average mastery: %d%%",
			learned, len(set.Cards), s.profile.Profile().SetProgress(set.ID))))
	b.WriteString("\n")

	if !s.lastStudied.IsZero() {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
			Render("Last studied: " + s.lastStudied.Format("Jan 2, 2006")))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(s.accuracy) > 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
			Render("Card accuracy"))
		b.WriteString("\n")
		shown := 0
		for _, ca := range s.accuracy {
			card := set.CardByID(ca.CardID)
			if card == nil || ca.Answered == 0 {
				continue
			}
			pct := 100 * ca.Correct / ca.Answered
			line := fmt.Sprintf("  %s  %d/%d (%d%%)", pad(card.Term, 24), ca.Correct, ca.Answered, pct)
			style := lipgloss.NewStyle().Foreground(theme.Text)
			if pct < 50 {
				style = style.Foreground(theme.Error)
			}
			b.WriteString(style.Render(line))
			b.WriteString("\n")
			shown++
			if shown >= 10 {
				break
			}
		}
		b.WriteString("\n")
	}

	if len(s.misses) > 0 {
		var terms []string
		for _, id := range s.misses {
			if card := set.CardByID(id); card != nil {
				terms = append(terms, card.Term)
			}
		}
		if len(terms) > 0 {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).
				Render("Recently missed: " + strings.Join(terms, ", ")))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// pad right-pads or truncates a label to a fixed width so bars line up.
func pad(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		return string(r[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(r))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
