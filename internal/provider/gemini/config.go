package gemini

// Config contains Gemini completion provider configuration.
type Config struct {
	APIKey      string  `env:"GEMINI_API_KEY"`
	BaseURL     string  `env:"GEMINI_BASE_URL"`
	Model       string  `env:"GEMINI_COMPLETION_MODEL" envDefault:"gemini-2.0-flash"`
	Temperature float64 `env:"GEMINI_TEMPERATURE"      envDefault:"0.2"`
	MaxTokens   int     `env:"GEMINI_MAX_TOKENS"       envDefault:"400"`
}
