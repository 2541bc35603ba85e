package openai

// Config contains OpenAI completion provider configuration.
// All fields map to OpenAI SDK options or request parameters:
//   - APIKey: Maps to option.WithAPIKey()
//   - BaseURL: Maps to option.WithBaseURL()
//   - Timeout: Maps to option.WithRequestTimeout() (in seconds)
//   - MaxRetries: Maps to option.WithMaxRetries()
//   - Model, Temperature, MaxTokens: sent with every chat completion
type Config struct {
	APIKey      string  `env:"OPENAI_API_KEY"`
	BaseURL     string  `env:"OPENAI_BASE_URL"         envDefault:"https://api.openai.com/v1"`
	Timeout     int     `env:"OPENAI_TIMEOUT"          envDefault:"60"`
	MaxRetries  int     `env:"OPENAI_MAX_RETRIES"      envDefault:"3"`
	Model       string  `env:"OPENAI_COMPLETION_MODEL" envDefault:"gpt-4o-mini"`
	Temperature float64 `env:"OPENAI_TEMPERATURE"      envDefault:"0.2"`
	MaxTokens   int     `env:"OPENAI_MAX_TOKENS"       envDefault:"400"`
}
