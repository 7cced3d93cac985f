package generate

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/rsinha/flashdown/internal/cardgen"
	"github.com/rsinha/flashdown/internal/deck"
	"github.com/rsinha/flashdown/internal/profile"
	"github.com/rsinha/flashdown/internal/router"
	"github.com/rsinha/flashdown/internal/screen"
	"github.com/rsinha/flashdown/internal/ui/components"
	"github.com/rsinha/flashdown/internal/ui/layout"
	"github.com/rsinha/flashdown/internal/ui/theme"
)

const defaultCardCount = 10

type phase int

const (
	enterTopic phase = iota
	enterCount
	generating
	succeeded
	failed
)

// generatedMsg carries the outcome of an async set generation.
type generatedMsg struct {
	Set *deck.StudySet
	Err error
}

// GenerateScreen builds a new card set from a topic via the LLM.
type GenerateScreen struct {
	generator cardgen.Generator
	profile   *profile.Service

	phase phase
	topic components.TextInput
	count components.TextInput

	result *deck.StudySet
	errMsg string
}

var _ screen.Screen = (*GenerateScreen)(nil)
var _ screen.KeyHintProvider = (*GenerateScreen)(nil)

// New creates a generate screen.
func New(generator cardgen.Generator, profileSvc *profile.Service) *GenerateScreen {
	return &GenerateScreen{
		generator: generator,
		profile:   profileSvc,
		topic:     components.NewTextInput("e.g. French verbs, the solar system...", false, 120),
		count:     components.NewTextInput(fmt.Sprintf("%d", defaultCardCount), true, 3),
	}
}

func (s *GenerateScreen) Init() tea.Cmd {
	return s.topic.Init()
}

func (s *GenerateScreen) Title() string {
	return "New Set"
}

func (s *GenerateScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case generating:
		return []layout.KeyHint{}
	case succeeded, failed:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Done"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Next"},
		{Key: "Esc", Description: "Cancel"},
	}
}

func (s *GenerateScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		if msg.Err != nil {
			s.phase = failed
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.phase = succeeded
		s.result = msg.Set
		s.profile.Profile().AddSet(*msg.Set)
		if err := s.profile.Save(context.Background()); err != nil {
			s.phase = failed
			s.errMsg = "could not save the new set: " + err.Error()
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, s.forwardToInput(msg)
}

func (s *GenerateScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch s.phase {
	case enterTopic:
		if key == "enter" {
			if strings.TrimSpace(s.topic.Value()) == "" {
				return s, nil
			}
			s.phase = enterCount
			return s, s.count.Init()
		}

	case enterCount:
		if key == "enter" {
			return s, s.generate()
		}

	case generating:
		return s, nil

	case succeeded, failed:
		if key == "enter" || key == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}

	return s, s.forwardToInput(msg)
}

func (s *GenerateScreen) forwardToInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch s.phase {
	case enterTopic:
		s.topic, cmd = s.topic.Update(msg)
	case enterCount:
		s.count, cmd = s.count.Update(msg)
	}
	return cmd
}

// generate kicks off the async LLM call.
func (s *GenerateScreen) generate() tea.Cmd {
	topic := strings.TrimSpace(s.topic.Value())
	count := defaultCardCount
	if n, err := s.count.NumericValue(); err == nil && n > 0 {
		count = n
	}

	// Existing terms across all sets steer the model away from repeats.
	var existing []string
	for _, set := range s.profile.Profile().Sets {
		for _, c := range set.Cards {
			existing = append(existing, c.Term)
		}
	}

	generator := s.generator
	s.phase = generating
	return func() tea.Msg {
		res, err := generator.Generate(context.Background(), cardgen.GenerateInput{
			Kind:          cardgen.SourceTopic,
			Topic:         topic,
			Count:         count,
			ExistingTerms: existing,
		})
		if err != nil {
			return generatedMsg{Err: err}
		}
		return generatedMsg{Set: &deck.StudySet{
			ID:          uuid.New().String(),
			Title:       res.Title,
			Description: res.Description,
			Cards:       res.Cards,
		}}
	}
}

func (s *GenerateScreen) View(width, height int) string {
	center := lipgloss.NewStyle().
		Width(width).Height(height).
		Align(lipgloss.Center, lipgloss.Center)

	var b strings.Builder

	switch s.phase {
	case enterTopic:
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
			Render("What should the new set cover?"))
		b.WriteString("\n\n")
		b.WriteString(s.topic.View())

	case enterCount:
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
			Render("How many cards?"))
		b.WriteString("\n\n")
		b.WriteString(s.count.View())

	case generating:
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
			Render("Generating cards for \"" + strings.TrimSpace(s.topic.Value()) + "\"..."))

	case succeeded:
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Bold(true).
			Render("Set created!"))
		b.WriteString("\n\n")
		if s.result != nil {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).
				Render(fmt.Sprintf("%s — %d cards", s.result.Title, len(s.result.Cards))))
		}

	case failed:
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Bold(true).
			Render("Generation failed"))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(s.errMsg))
	}

	return center.Render(b.String())
}
