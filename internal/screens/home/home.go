package home

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rsinha/flashdown/internal/cardgen"
	"github.com/rsinha/flashdown/internal/guide"
	"github.com/rsinha/flashdown/internal/profile"
	"github.com/rsinha/flashdown/internal/router"
	"github.com/rsinha/flashdown/internal/screen"
	"github.com/rsinha/flashdown/internal/screens/generate"
	"github.com/rsinha/flashdown/internal/screens/picker"
	"github.com/rsinha/flashdown/internal/screens/placeholder"
	"github.com/rsinha/flashdown/internal/screens/stats"
	"github.com/rsinha/flashdown/internal/store"
	"github.com/rsinha/flashdown/internal/study"
	"github.com/rsinha/flashdown/internal/ui/components"
	"github.com/rsinha/flashdown/internal/ui/theme"
)

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	menu    components.Menu
	profile *profile.Service
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(profileSvc *profile.Service, events store.EventRepo, distractors study.DistractorProvider, generator cardgen.Generator, guideSvc *guide.Service) *HomeScreen {
	items := []components.MenuItem{
		{Label: "STUDY", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: picker.New(profileSvc, events, distractors, guideSvc),
				}
			}
		}},
		{Label: "NEW SET", Action: func() tea.Cmd {
			if generator == nil {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: placeholder.New("New Set")}
				}
			}
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: generate.New(generator, profileSvc)}
			}
		}},
		{Label: "STATISTICS", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: stats.New(profileSvc, events)}
			}
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu:    components.NewMenu(items),
		profile: profileSvc,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("F L A S H D O W N"))
	sections = append(sections, lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("terminal flashcards"))

	sections = append(sections, "")
	sections = append(sections, h.renderStats())
	sections = append(sections, "")
	sections = append(sections, h.menu.View())

	content := strings.Join(sections, "\n")

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

// renderStats summarizes the profile: set count, learned cards, streak.
func (h *HomeScreen) renderStats() string {
	if h.profile == nil {
		return ""
	}
	p := h.profile.Profile()

	var cards, learned int
	for _, set := range p.Sets {
		cards += len(set.Cards)
		for _, c := range set.Cards {
			if rec, ok := h.profile.Mastery(set.ID, c.ID); ok && rec.Learned() {
				learned++
			}
		}
	}
	line := fmt.Sprintf("Sets: %d   Cards learned: %d/%d   Streak: %d days",
		len(p.Sets), learned, cards, p.Streak.Current(time.Now()))
	return lipgloss.NewStyle().Foreground(theme.Text).Render(line)
}
