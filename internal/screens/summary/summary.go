package summary

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rsinha/flashdown/internal/router"
	"github.com/rsinha/flashdown/internal/screen"
	"github.com/rsinha/flashdown/internal/ui/components"
	"github.com/rsinha/flashdown/internal/ui/layout"
	"github.com/rsinha/flashdown/internal/ui/theme"
)

// Stats holds the numbers a finished study session reports.
type Stats struct {
	Answered int
	Correct  int

	// Mastered and Total are the per-card completion counts for modes
	// that track them (memorise, test). Zero Total hides the line.
	Mastered int
	Total    int

	Duration time.Duration
}

// SummaryScreen displays the session summary.
type SummaryScreen struct {
	setTitle string
	mode     string
	stats    Stats
	done     components.Button
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(setTitle, mode string, stats Stats) *SummaryScreen {
	s := &SummaryScreen{
		setTitle: setTitle,
		mode:     mode,
		stats:    stats,
	}
	s.done = components.NewButton("Done", true, func() tea.Cmd {
		return func() tea.Msg { return router.PopToRootMsg{} }
	})
	return s
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Done"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "esc" {
		return s, func() tea.Msg { return router.PopToRootMsg{} }
	}
	var cmd tea.Cmd
	s.done, cmd = s.done.Update(msg)
	return s, cmd
}

// HandlesEsc keeps esc from popping back into the finished session.
func (s *SummaryScreen) HandlesEsc() {}

func (s *SummaryScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("Session complete!"))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s — %s", s.setTitle, s.mode)))
	b.WriteString("\n\n")

	mins := int(s.stats.Duration.Minutes())
	secs := int(s.stats.Duration.Seconds()) % 60
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Duration: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	accuracy := 0.0
	if s.stats.Answered > 0 {
		accuracy = float64(s.stats.Correct) / float64(s.stats.Answered)
	}
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Text).
		Render(fmt.Sprintf("Answered: %d    Correct: %d    Accuracy: %.0f%%",
			s.stats.Answered, s.stats.Correct, accuracy*100)))
	b.WriteString("\n")

	if s.stats.Total > 0 {
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.Success).
			Render(fmt.Sprintf("Cards mastered: %d of %d", s.stats.Mastered, s.stats.Total)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.done.View())

	return lipgloss.NewStyle().
		Width(width).Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(b.String())
}
