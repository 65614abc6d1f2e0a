package embedding

import (
	"fmt"
	"os"
)

// Config holds embedding provider configuration.
type Config struct {
	// Provider selects which embedding backend to use.
	// Values: "openai", "gemini", "mock"
	Provider string

	OpenAI OpenAIConfig
	Gemini GeminiConfig
}

// OpenAIConfig holds OpenAI-specific embedding configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "text-embedding-3-small"
	BaseURL string // Optional. Override for OpenAI-compatible APIs.
}

// GeminiConfig holds Gemini-specific embedding configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-embedding-001"
}

// DefaultConfig returns a Config with sensible defaults. The default
// models are multilingual, which question banks require.
func DefaultConfig() Config {
	return Config{
		Provider: "openai",
		OpenAI: OpenAIConfig{
			Model: "text-embedding-3-small",
		},
		Gemini: GeminiConfig{
			Model: "gemini-embedding-001",
		},
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("QUIZBENCH_EMBEDDING_PROVIDER"); p != "" {
		cfg.Provider = p
	}

	if k := os.Getenv("QUIZBENCH_OPENAI_API_KEY"); k != "" {
		cfg.OpenAI.APIKey = k
	}
	if m := os.Getenv("QUIZBENCH_EMBEDDING_OPENAI_MODEL"); m != "" {
		cfg.OpenAI.Model = m
	}
	if u := os.Getenv("QUIZBENCH_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}

	if k := os.Getenv("QUIZBENCH_GEMINI_API_KEY"); k != "" {
		cfg.Gemini.APIKey = k
	}
	if m := os.Getenv("QUIZBENCH_EMBEDDING_GEMINI_MODEL"); m != "" {
		cfg.Gemini.Model = m
	}

	return cfg
}

// DiscoverConfig probes standard API key env vars (OpenAI, then Gemini) and
// returns a Config for the first backend whose key is found.
// Returns (Config{}, false) if none found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// Validate checks that the selected backend has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("QUIZBENCH_OPENAI_API_KEY is required for the openai embedding provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("QUIZBENCH_GEMINI_API_KEY is required for the gemini embedding provider")
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown embedding provider: %q", c.Provider)
	}
	return nil
}
