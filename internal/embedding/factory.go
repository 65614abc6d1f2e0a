package embedding

import (
	"context"
	"fmt"
)

// NewProvider creates a Provider from configuration.
func NewProvider(ctx context.Context, cfg Config) (Provider, error) {
	switch cfg.Provider {
	case "openai":
		return NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		return NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		return NewMockProvider(nil), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider: %q", cfg.Provider)
	}
}

// NewProviderFromEnv builds a Provider from QUIZBENCH_EMBEDDING_* env
// vars, falling back to probing standard vendor API keys.
func NewProviderFromEnv(ctx context.Context) (Provider, error) {
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, err
		}
		cfg = discovered
	}
	return NewProvider(ctx, cfg)
}
