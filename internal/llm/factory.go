package llm

import (
	"context"
	"fmt"

	"github.com/alevelmaths/alevel/internal/store"
)

// NewProvider builds the provider cfg selects. Requests pass through the
// retry policy, then the journal (when non-nil), then the provider, so
// every attempt is journaled.
func NewProvider(ctx context.Context, cfg Config, journal store.EventRepo) (Provider, error) {
	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = newAnthropicProvider(cfg)
	case ProviderOpenAI:
		base, err = newOpenAIProvider(cfg)
	case ProviderOpenRouter:
		base, err = newOpenRouterProvider(cfg)
	case ProviderGemini:
		base, err = newGeminiProvider(ctx, cfg)
	case ProviderMock:
		base = NewFake()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("%s provider: %w", cfg.Provider, err)
	}
	if journal != nil {
		base = WithJournal(base, cfg.Provider, journal)
	}
	return WithRetry(base, cfg.Retry), nil
}

// NewProviderFromEnv resolves the environment configuration and builds
// its provider.
func NewProviderFromEnv(ctx context.Context, journal store.EventRepo) (Provider, Config, error) {
	cfg, err := ResolveConfig()
	if err != nil {
		return nil, Config{}, err
	}
	p, err := NewProvider(ctx, cfg, journal)
	if err != nil {
		return nil, Config{}, err
	}
	return p, cfg, nil
}
