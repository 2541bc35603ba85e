package compat

// Config holds configuration for an OpenAI-compatible embedding service such as a
// local model server.
type Config struct {
	BaseURL    string `env:"COMPAT_EMBEDDING_BASE_URL"`
	APIKey     string `env:"COMPAT_EMBEDDING_API_KEY"    envDefault:"none"`
	Model      string `env:"COMPAT_EMBEDDING_MODEL"      envDefault:"nomic-embed-text"`
	Dimensions int    `env:"COMPAT_EMBEDDING_DIMENSIONS" envDefault:"768"`
}
