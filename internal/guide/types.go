package guide

// Guide is an LLM-generated study guide for a flashcard set.
type Guide struct {
	SetID    string
	Title    string
	Overview string
	Sections []Section
	Tips     []string
}

// Section groups related cards with a short explanation connecting them.
type Section struct {
	Heading     string
	Explanation string
	Terms       []string
}

// GuideInput holds all context needed to generate a study guide.
type GuideInput struct {
	SetID     string
	SetTitle  string
	Language  string
	Cards     []CardSummary
	WeakTerms []string // terms the learner keeps missing, most recent last
	Progress  float64  // overall mastery, 0.0 - 1.0
}

// CardSummary is the per-card material sent to the model.
type CardSummary struct {
	Term       string
	Definition string
}
