package profile

import "github.com/rsinha/flashdown/internal/deck"

// StarterSet returns the built-in set seeded on first run so the app is
// usable before the learner creates or generates anything.
func StarterSet() deck.StudySet {
	return deck.StudySet{
		ID:          "starter-capitals",
		Title:       "World Capitals",
		Description: "Capitals of twelve countries to get you started.",
		Cards: []deck.Card{
			{ID: "cap-fr", Term: "Paris", Definition: "Capital of France"},
			{ID: "cap-jp", Term: "Tokyo", Definition: "Capital of Japan"},
			{ID: "cap-eg", Term: "Cairo", Definition: "Capital of Egypt"},
			{ID: "cap-br", Term: "Brasília", Definition: "Capital of Brazil"},
			{ID: "cap-ca", Term: "Ottawa", Definition: "Capital of Canada"},
			{ID: "cap-au", Term: "Canberra", Definition: "Capital of Australia"},
			{ID: "cap-ke", Term: "Nairobi", Definition: "Capital of Kenya"},
			{ID: "cap-in", Term: "New Delhi", Definition: "Capital of India"},
			{ID: "cap-kr", Term: "Seoul", Definition: "Capital of South Korea"},
			{ID: "cap-tr", Term: "Ankara", Definition: "Capital of Türkiye"},
			{ID: "cap-ar", Term: "Buenos Aires", Definition: "Capital of Argentina"},
			{ID: "cap-no", Term: "Oslo", Definition: "Capital of Norway"},
		},
	}
}
