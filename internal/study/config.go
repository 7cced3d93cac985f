package study

import "time"

// Defaults for session configuration.
const (
	DefaultWordsPerLevel      = 7
	DefaultInputQuestionRatio = 0.3
	DefaultMasteryThreshold   = 3
	DefaultNumberOfChoices    = 4

	// Feedback display delays before auto-advance. Wrong answers get
	// longer so the correct answer can be read.
	DefaultCorrectDelay   = 1 * time.Second
	DefaultIncorrectDelay = 2500 * time.Millisecond
)

// Config holds the user-tunable study settings shared by the engines.
// All sessions receive a value copy at construction; changing settings
// mid-session has no effect.
type Config struct {
	// ShuffleCards shuffles the working order at session start.
	ShuffleCards bool

	// ShuffleOptions shuffles multiple-choice options per question.
	ShuffleOptions bool

	// AutoSave flushes mastery updates to the store after each answer.
	// When disabled a session leaves persisted mastery untouched.
	AutoSave bool

	// MixQuestionTypes enables typed-input questions in memorise mode.
	MixQuestionTypes bool

	// RetryMissed enables the level-1 retry pass over missed cards.
	RetryMissed bool

	// WordsPerLevel is the memorise-mode level size.
	WordsPerLevel int

	// InputQuestionRatio is the per-entry probability of a typed-input
	// question when MixQuestionTypes is on.
	InputQuestionRatio float64

	// MasteryThreshold is the consecutive-correct count that completes a
	// card in test mode.
	MasteryThreshold int

	// NumberOfChoices is the option count for test-mode questions.
	NumberOfChoices int

	// CorrectDelay and IncorrectDelay are the feedback display times
	// before the timed auto-advance.
	CorrectDelay   time.Duration
	IncorrectDelay time.Duration
}

// DefaultConfig returns the settings a fresh profile starts with.
func DefaultConfig() Config {
	return Config{
		ShuffleCards:       true,
		ShuffleOptions:     true,
		AutoSave:           true,
		MixQuestionTypes:   true,
		RetryMissed:        true,
		WordsPerLevel:      DefaultWordsPerLevel,
		InputQuestionRatio: DefaultInputQuestionRatio,
		MasteryThreshold:   DefaultMasteryThreshold,
		NumberOfChoices:    DefaultNumberOfChoices,
		CorrectDelay:       DefaultCorrectDelay,
		IncorrectDelay:     DefaultIncorrectDelay,
	}
}

// normalized fills zero values with defaults so a partially populated
// settings document can't wedge an engine.
func (c Config) normalized() Config {
	if c.WordsPerLevel <= 0 {
		c.WordsPerLevel = DefaultWordsPerLevel
	}
	if c.InputQuestionRatio <= 0 || c.InputQuestionRatio > 1 {
		c.InputQuestionRatio = DefaultInputQuestionRatio
	}
	if c.MasteryThreshold <= 0 {
		c.MasteryThreshold = DefaultMasteryThreshold
	}
	if c.NumberOfChoices < 2 {
		c.NumberOfChoices = DefaultNumberOfChoices
	}
	if c.CorrectDelay <= 0 {
		c.CorrectDelay = DefaultCorrectDelay
	}
	if c.IncorrectDelay <= 0 {
		c.IncorrectDelay = DefaultIncorrectDelay
	}
	return c
}

// FeedbackDelay returns how long feedback stays on screen before the
// engine auto-advances.
func (c Config) FeedbackDelay(correct bool) time.Duration {
	if correct {
		return c.CorrectDelay
	}
	return c.IncorrectDelay
}
