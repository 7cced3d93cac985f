package cardgen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators is the ordered list of validators to run on every
	// generated set. They execute in order; the first failure stops
	// the pipeline.
	Validators []Validator

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MinCards and MaxCards bound the requested set size.
	MinCards int
	MaxCards int

	// MaxSourceChars caps how much source text goes into the prompt.
	MaxSourceChars int

	// MaxExistingTerms is the maximum number of existing terms to
	// include in the prompt for deduplication.
	MaxExistingTerms int
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&UniquenessValidator{},
			&CountValidator{},
		},
		MaxTokens:        2048,
		Temperature:      0.7,
		MinCards:         3,
		MaxCards:         50,
		MaxSourceChars:   12000,
		MaxExistingTerms: 50,
	}
}

// clampInput applies the count bounds to a request.
func (c Config) clampInput(in GenerateInput) GenerateInput {
	if in.Count < c.MinCards {
		in.Count = c.MinCards
	}
	if c.MaxCards > 0 && in.Count > c.MaxCards {
		in.Count = c.MaxCards
	}
	return in
}
