package deck

import (
	"math/rand/v2"
	"strings"
)

// Card is a single immutable study unit. Cards are created when a set is
// authored (or generated) and are never mutated by study sessions.
type Card struct {
	ID         string `json:"id"`
	Term       string `json:"term"`
	Definition string `json:"definition"`

	// ImageURL is an optional illustration for the term.
	ImageURL string `json:"image_url,omitempty"`

	// TermLang and DefinitionLang are ISO-ish language tags. They are
	// passed through to the distractor generator for better wrong answers
	// but carry no meaning for the scheduling algorithms.
	TermLang       string `json:"term_lang,omitempty"`
	DefinitionLang string `json:"definition_lang,omitempty"`
}

// StudySet is an ordered collection of cards. Card order is irrelevant to
// the study engines, which shuffle their own working queues.
type StudySet struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Cards       []Card `json:"cards"`
}

// CardByID returns the card with the given ID, or nil.
func (s *StudySet) CardByID(id string) *Card {
	for i := range s.Cards {
		if s.Cards[i].ID == id {
			return &s.Cards[i]
		}
	}
	return nil
}

// Language returns the definition language of the set's cards, taken from
// the first card that declares one. Empty when the set is untagged.
func (s *StudySet) Language() string {
	for i := range s.Cards {
		if l := s.Cards[i].DefinitionLang; l != "" {
			return l
		}
	}
	return ""
}

// FindByTerm returns the first card whose term matches, ignoring case and
// surrounding whitespace.
func (s *StudySet) FindByTerm(term string) *Card {
	for i := range s.Cards {
		if strings.EqualFold(strings.TrimSpace(s.Cards[i].Term), strings.TrimSpace(term)) {
			return &s.Cards[i]
		}
	}
	return nil
}

// Shuffled returns a uniformly shuffled copy of cards (Fisher-Yates via
// rand.Shuffle). The input slice is not modified.
func Shuffled(cards []Card) []Card {
	out := make([]Card, len(cards))
	copy(out, cards)
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// ShuffleStrings uniformly shuffles a string slice in place.
func ShuffleStrings(vals []string) {
	rand.Shuffle(len(vals), func(i, j int) {
		vals[i], vals[j] = vals[j], vals[i]
	})
}
