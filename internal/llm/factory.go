package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/linguiz/internal/store"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with retry, circuit breaker and
// logging middleware.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → retry → breaker → logging → base.
	// The breaker sits inside the retry loop so retries observe open-circuit
	// rejections and stop early via ErrProviderUnavailable.
	logged := WithLogging(base, eventRepo)
	guarded := WithBreaker(logged, cfg.Breaker)
	retried := WithRetry(guarded, cfg.Retry)

	return retried, nil
}

// NewProviderFromEnv builds a provider from LINGUIZ_* env configuration,
// falling back to DiscoverConfig probing when no provider is explicitly
// configured.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo) (Provider, error) {
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, fmt.Errorf("no LLM provider configured: %w", err)
		}
		cfg = discovered
	}
	return NewProvider(ctx, cfg, eventRepo)
}
