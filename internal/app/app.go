package app

import (
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rsinha/flashdown/internal/cardgen"
	"github.com/rsinha/flashdown/internal/guide"
	"github.com/rsinha/flashdown/internal/profile"
	"github.com/rsinha/flashdown/internal/router"
	"github.com/rsinha/flashdown/internal/screen"
	"github.com/rsinha/flashdown/internal/screens/home"
	"github.com/rsinha/flashdown/internal/store"
	"github.com/rsinha/flashdown/internal/study"
	"github.com/rsinha/flashdown/internal/ui/layout"
)

// Deps holds the services the screens need. Distractors, Generator and
// Guide are nil when no LLM provider is configured; screens fall back to
// local behaviour or a placeholder.
type Deps struct {
	Profile     *profile.Service
	Events      store.EventRepo
	Distractors study.DistractorProvider
	Generator   cardgen.Generator
	Guide       *guide.Service
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	deps   Deps
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(deps Deps) AppModel {
	homeScreen := home.New(deps.Profile, deps.Events, deps.Distractors, deps.Generator, deps.Guide)
	return AppModel{
		router: router.New(homeScreen),
		deps:   deps,
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			// Screens that run their own quit flow keep the key;
			// everything else pops back one level.
			if m.router.Depth() > 1 {
				if _, ok := m.router.Active().(escHandler); !ok {
					return m, func() tea.Msg { return router.PopScreenMsg{} }
				}
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// escHandler marks screens that handle the esc key themselves.
type escHandler interface {
	HandlesEsc()
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	streak := 0
	if m.deps.Profile != nil {
		streak = m.deps.Profile.Profile().Streak.Current(time.Now())
	}

	header := layout.RenderHeader(title, streak, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}
	if footerHints == nil {
		if m.router.Depth() > 1 {
			footerHints = []layout.KeyHint{
				{Key: "Esc", Description: "Back"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		} else {
			footerHints = []layout.KeyHint{
				{Key: "↑↓", Description: "Navigate"},
				{Key: "Enter", Description: "Select"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(deps Deps) error {
	p := tea.NewProgram(newAppModel(deps))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
