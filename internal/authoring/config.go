package authoring

// Config controls the behavior of the Drafter.
type Config struct {
	// Count is how many problems to ask for.
	Count int

	// Validators run in order on every drafted problem; the first
	// failure rejects it.
	Validators []Validator

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxExisting is the maximum number of existing questions included
	// in the prompt for deduplication.
	MaxExisting int
}

// DefaultConfig returns a Config with the standard validator chain and
// recommended defaults.
func DefaultConfig() Config {
	return Config{
		Count: 3,
		Validators: []Validator{
			&StructuralValidator{},
			&AnswerFormValidator{},
			&NotationValidator{},
		},
		MaxTokens:   2048,
		Temperature: 0.7,
		MaxExisting: 12,
	}
}
