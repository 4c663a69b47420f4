package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// EnvPrefix prefixes the variables read by ResolveConfig.
const EnvPrefix = "ALEVEL_"

// Provider names accepted in ALEVEL_LLM_PROVIDER.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// discoveryOrder is the order providers are tried when
// ALEVEL_LLM_PROVIDER is unset.
var discoveryOrder = []string{ProviderGemini, ProviderOpenAI, ProviderAnthropic, ProviderOpenRouter}

// Config selects one provider and how to reach it.
type Config struct {
	Provider string
	APIKey   string

	// Model is a short alias from the model table or a concrete model ID.
	Model string

	// BaseURL overrides the provider endpoint. Empty means the default.
	BaseURL string

	Retry RetryPolicy

	// Timeout bounds one draft request including retries.
	Timeout time.Duration
}

// DefaultConfig returns the defaults for the named provider.
func DefaultConfig(provider string) Config {
	return Config{
		Provider: provider,
		Model:    defaultModel(provider),
		Retry:    DefaultRetryPolicy(),
		// A draft asks for several worked problems in one reply.
		Timeout: 60 * time.Second,
	}
}

// Validate checks that the provider is known and has a key.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderMock:
		return nil
	case ProviderAnthropic, ProviderOpenAI, ProviderGemini, ProviderOpenRouter:
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if c.APIKey == "" {
		return fmt.Errorf("%s is required for the %s provider", envName(c.Provider, "API_KEY"), c.Provider)
	}
	return nil
}

// ResolveConfig reads the provider configuration from the environment.
//
// ALEVEL_LLM_PROVIDER picks the provider explicitly, and its key, model and
// endpoint come from ALEVEL_<PROVIDER>_API_KEY, _MODEL and _BASE_URL. When
// ALEVEL_LLM_PROVIDER is unset, the first provider with a key in either its
// ALEVEL_ variable or the vendor's own variable (GEMINI_API_KEY and so on)
// is used.
func ResolveConfig() (Config, error) {
	return resolveConfig(os.Getenv)
}

func resolveConfig(getenv func(string) string) (Config, error) {
	if name := getenv(EnvPrefix + "LLM_PROVIDER"); name != "" {
		cfg := prefixedConfig(name, getenv)
		return cfg, cfg.Validate()
	}
	for _, name := range discoveryOrder {
		cfg := prefixedConfig(name, getenv)
		if cfg.APIKey == "" {
			cfg.APIKey = getenv(strings.ToUpper(name) + "_API_KEY")
		}
		if cfg.APIKey != "" {
			return cfg, nil
		}
	}
	return Config{}, fmt.Errorf("no LLM provider configured: set %sLLM_PROVIDER or one of %s",
		EnvPrefix, strings.Join(vendorKeys(), ", "))
}

func prefixedConfig(name string, getenv func(string) string) Config {
	cfg := DefaultConfig(name)
	cfg.APIKey = getenv(envName(name, "API_KEY"))
	if m := getenv(envName(name, "MODEL")); m != "" {
		cfg.Model = m
	}
	cfg.BaseURL = getenv(envName(name, "BASE_URL"))
	return cfg
}

func envName(provider, suffix string) string {
	return EnvPrefix + strings.ToUpper(provider) + "_" + suffix
}

func vendorKeys() []string {
	keys := make([]string, len(discoveryOrder))
	for i, name := range discoveryOrder {
		keys[i] = strings.ToUpper(name) + "_API_KEY"
	}
	return keys
}
