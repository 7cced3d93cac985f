package guide

// Config holds study guide generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64

	// MaxCards caps how many cards go into the prompt. Oversized sets
	// are cut to the weakest cards first.
	MaxCards int
}

// DefaultConfig returns sensible defaults for guide generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.5,
		MaxCards:    40,
	}
}
