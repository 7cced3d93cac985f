package guide

import (
	"fmt"
	"strings"
)

const guideSystemPrompt = `You are a study coach helping a learner memorize a set of flashcards. Write a short, practical study guide for the set.`

func buildGuideUserMessage(input GuideInput, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Set: %s\n", input.SetTitle)
	if input.Language != "" {
		fmt.Fprintf(&b, "Language: %s\n", input.Language)
	}
	fmt.Fprintf(&b, "Overall progress: %.0f%%\n", input.Progress*100)

	cards := input.Cards
	if cfg.MaxCards > 0 && len(cards) > cfg.MaxCards {
		cards = cards[:cfg.MaxCards]
	}
	b.WriteString("\nCards:\n")
	for _, c := range cards {
		fmt.Fprintf(&b, "- %s: %s\n", c.Term, c.Definition)
	}

	b.WriteString("\nTerms the learner keeps missing:\n")
	if len(input.WeakTerms) == 0 {
		b.WriteString("None\n")
	} else {
		for _, t := range input.WeakTerms {
			fmt.Fprintf(&b, "- %s\n", t)
		}
	}

	b.WriteString(`
Instructions:
Create a study guide that:
1. Opens with a 2-3 sentence overview of what the set covers.
2. Groups the cards into a few themed sections. Each section gets a heading, a short explanation that connects its terms, and the list of terms it covers.
3. Gives special attention to the terms the learner keeps missing: put them early in their sections and explain what distinguishes them from the terms they get confused with.
4. Ends with 2-4 concrete memorization tips specific to this material (mnemonics, contrasts, groupings). No generic advice.`)

	return b.String()
}
