package gemini

// Config holds configuration for the Gemini embedding provider.
type Config struct {
	APIKey     string `env:"GEMINI_API_KEY"`
	BaseURL    string `env:"GEMINI_BASE_URL"`
	Model      string `env:"GEMINI_EMBEDDING_MODEL"      envDefault:"text-embedding-004"`
	Dimensions int    `env:"GEMINI_EMBEDDING_DIMENSIONS"`
}
