package coach

// Config controls study note generation.
type Config struct {
	MaxTokens   int
	Temperature float64
	// MaxWords bounds each note; the model is asked to respect it.
	MaxWords int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.4,
		MaxWords:    30,
	}
}
