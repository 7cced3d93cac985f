package picker

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rsinha/flashdown/internal/deck"
	"github.com/rsinha/flashdown/internal/guide"
	"github.com/rsinha/flashdown/internal/profile"
	"github.com/rsinha/flashdown/internal/router"
	"github.com/rsinha/flashdown/internal/screen"
	"github.com/rsinha/flashdown/internal/screens/flashcards"
	guidescreen "github.com/rsinha/flashdown/internal/screens/guideview"
	"github.com/rsinha/flashdown/internal/screens/memorise"
	"github.com/rsinha/flashdown/internal/screens/testmode"
	"github.com/rsinha/flashdown/internal/store"
	"github.com/rsinha/flashdown/internal/study"
	"github.com/rsinha/flashdown/internal/ui/components"
	"github.com/rsinha/flashdown/internal/ui/layout"
	"github.com/rsinha/flashdown/internal/ui/theme"
)

type phase int

const (
	pickSet phase = iota
	pickMode
)

// PickerScreen selects a set and a study mode, then pushes the matching
// study screen.
type PickerScreen struct {
	profile     *profile.Service
	events      store.EventRepo
	distractors study.DistractorProvider
	guide       *guide.Service

	phase   phase
	setMenu components.Menu
	modes   components.Menu
	chosen  *deck.StudySet
}

var _ screen.Screen = (*PickerScreen)(nil)
var _ screen.KeyHintProvider = (*PickerScreen)(nil)

// New creates a picker over the profile's sets.
func New(profileSvc *profile.Service, events store.EventRepo, distractors study.DistractorProvider, guideSvc *guide.Service) *PickerScreen {
	s := &PickerScreen{
		profile:     profileSvc,
		events:      events,
		distractors: distractors,
		guide:       guideSvc,
	}
	s.setMenu = components.NewMenu(s.setItems())
	return s
}

func (s *PickerScreen) setItems() []components.MenuItem {
	p := s.profile.Profile()
	items := make([]components.MenuItem, 0, len(p.Sets))
	for i := range p.Sets {
		set := &p.Sets[i]
		items = append(items, components.MenuItem{
			Label: fmt.Sprintf("%s (%d cards, %d%%)", set.Title, len(set.Cards), p.SetProgress(set.ID)),
			Action: func() tea.Cmd {
				s.chosen = set
				s.modes = components.NewMenu(s.modeItems(set))
				s.phase = pickMode
				return nil
			},
		})
	}
	return items
}

func (s *PickerScreen) modeItems(set *deck.StudySet) []components.MenuItem {
	cfg := s.profile.Profile().Settings

	// Sessions are built on selection, not up front, so re-entering a
	// mode always starts fresh.
	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: build()}
			}
		}
	}

	items := []components.MenuItem{
		{Label: "Flashcards", Action: push(func() screen.Screen {
			return flashcards.New(set, s.profile, s.events, cfg, study.ModeStandard)
		})},
		{Label: "Flashcards (memorise all)", Action: push(func() screen.Screen {
			return flashcards.New(set, s.profile, s.events, cfg, study.ModeMemoriseAll)
		})},
		{Label: "Memorise", Action: push(func() screen.Screen {
			return memorise.New(set, s.profile, s.events, cfg)
		})},
		{Label: "Test", Action: push(func() screen.Screen {
			return testmode.New(set, s.profile, s.events, s.distractors, cfg)
		})},
	}
	items = append(items, components.MenuItem{
		Label:    "Study guide",
		Disabled: s.guide == nil,
		Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: guidescreen.New(s.guide, s.profile, s.events, set),
				}
			}
		},
	})
	return items
}

func (s *PickerScreen) Init() tea.Cmd {
	return nil
}

func (s *PickerScreen) Title() string {
	if s.phase == pickMode && s.chosen != nil {
		return s.chosen.Title
	}
	return "Pick a Set"
}

func (s *PickerScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *PickerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "esc" {
		if s.phase == pickMode {
			// Step back to set selection instead of leaving the screen.
			s.phase = pickSet
			s.chosen = nil
			return s, nil
		}
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	var cmd tea.Cmd
	switch s.phase {
	case pickSet:
		s.setMenu, cmd = s.setMenu.Update(msg)
	case pickMode:
		s.modes, cmd = s.modes.Update(msg)
	}
	return s, cmd
}

// HandlesEsc keeps the esc key local so mode selection can step back to
// set selection.
func (s *PickerScreen) HandlesEsc() {}

func (s *PickerScreen) View(width, height int) string {
	var b strings.Builder

	switch s.phase {
	case pickSet:
		if len(s.profile.Profile().Sets) == 0 {
			empty := lipgloss.NewStyle().Foreground(theme.TextDim).
				Render("No sets yet. Generate one from the home screen.")
			return lipgloss.NewStyle().
				Width(width).Height(height).
				Align(lipgloss.Center, lipgloss.Center).
				Render(empty)
		}
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
			Render("Which set do you want to study?"))
		b.WriteString("\n\n")
		b.WriteString(s.setMenu.View())

	case pickMode:
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
			Render("How do you want to study?"))
		b.WriteString("\n\n")
		b.WriteString(s.modes.View())
		if s.guide == nil {
			b.WriteString("\n")
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
				Render("Study guides need an LLM provider (set FLASHDOWN_LLM_PROVIDER)."))
		}
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(b.String())
}
