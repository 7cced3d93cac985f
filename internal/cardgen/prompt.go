package cardgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an educator creating flashcard sets for self-study.

Rules:
- Generate a set of term/definition flashcards for the given request.
- Each term must be short and specific. Each definition must be a single clear sentence or phrase that identifies the term unambiguously.
- Terms must be unique within the set. Do not repeat any term from the "already in the set" list.
- When source text is given, extract terms only from that text. Do not invent material the text does not support.
- When a language is given, write the terms in that language and the definitions in the same language unless the request says otherwise.
- Match the requested difficulty: beginner sets use common, foundational terms; advanced sets use specialized ones.
- Give the set a short descriptive title and a one-sentence description.
- Produce exactly the requested number of cards.`

// buildUserMessage constructs the user message from GenerateInput and Config limits.
func buildUserMessage(input GenerateInput, cfg Config) string {
	var b strings.Builder

	switch input.Kind {
	case SourceText:
		b.WriteString("Extract flashcards from this source text:\n")
		b.WriteString(truncate(input.Text, cfg.MaxSourceChars))
		b.WriteString("\n")
	default:
		fmt.Fprintf(&b, "Topic: %s\n", input.Topic)
	}

	fmt.Fprintf(&b, "Number of cards: %d\n", input.Count)
	if input.Language != "" {
		fmt.Fprintf(&b, "Language: %s\n", input.Language)
	}
	if input.Difficulty != "" {
		fmt.Fprintf(&b, "Difficulty: %s\n", input.Difficulty)
	}

	b.WriteString("\nAlready in the set:\n")
	b.WriteString(buildExisting(input.ExistingTerms, cfg.MaxExistingTerms))

	return b.String()
}

// buildExisting formats existing terms for the prompt, respecting the max limit.
// Returns "None" if the set is empty.
func buildExisting(terms []string, max int) string {
	if len(terms) == 0 {
		return "None"
	}

	if max > 0 && len(terms) > max {
		terms = terms[len(terms)-max:]
	}

	var b strings.Builder
	for i, t := range terms {
		fmt.Fprintf(&b, "%d. %s\n", i+1, t)
	}
	return strings.TrimRight(b.String(), "\n")
}

func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max]
}
