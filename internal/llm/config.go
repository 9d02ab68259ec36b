package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
	ProviderMock      = "mock"
)

// defaultModels is the alias used when Config.Model is empty.
var defaultModels = map[string]string{
	ProviderAnthropic: "claude-haiku",
	ProviderOpenAI:    "gpt-4o-mini",
	ProviderGemini:    "gemini-flash",
}

// vendorKeyEnv is the vendor's own API key variable, read after the
// STUDYPLAN_ one.
var vendorKeyEnv = map[string]string{
	ProviderAnthropic: "ANTHROPIC_API_KEY",
	ProviderOpenAI:    "OPENAI_API_KEY",
	ProviderGemini:    "GEMINI_API_KEY",
}

// Config selects and configures one provider.
type Config struct {
	Provider string
	Model    string
	APIKey   string
	// BaseURL points the openai provider at a compatible API.
	BaseURL string
	Retry   RetryConfig
	// Timeout bounds one Generate call including retries.
	Timeout time.Duration
}

// RetryConfig configures backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultRetry is the backoff used when a Config leaves Retry empty.
var DefaultRetry = RetryConfig{
	MaxAttempts: 3,
	InitialWait: time.Second,
	MaxWait:     10 * time.Second,
	Multiplier:  2,
}

// DefaultConfig returns the anthropic provider with default settings.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderAnthropic,
		Retry:    DefaultRetry,
		Timeout:  30 * time.Second,
	}
}

// ConfigFromEnv completes a config for provider from the environment:
// STUDYPLAN_<PROVIDER>_API_KEY, then the vendor variable, plus
// STUDYPLAN_<PROVIDER>_MODEL and STUDYPLAN_OPENAI_BASE_URL. An empty
// provider is taken from STUDYPLAN_LLM_PROVIDER, else discovered from
// whichever vendor key is set.
func ConfigFromEnv(provider, model string) Config {
	cfg := DefaultConfig()
	if provider == "" {
		provider = os.Getenv("STUDYPLAN_LLM_PROVIDER")
	}
	if provider == "" {
		if found, ok := discoverProvider(); ok {
			provider = found
		}
	}
	if provider != "" {
		cfg.Provider = provider
	}

	prefix := "STUDYPLAN_" + strings.ToUpper(cfg.Provider) + "_"
	cfg.APIKey = firstEnv(prefix+"API_KEY", vendorKeyEnv[cfg.Provider])
	cfg.Model = model
	if cfg.Model == "" {
		cfg.Model = os.Getenv(prefix + "MODEL")
	}
	if cfg.Model == "" {
		cfg.Model = defaultModels[cfg.Provider]
	}
	if cfg.Provider == ProviderOpenAI {
		cfg.BaseURL = os.Getenv("STUDYPLAN_OPENAI_BASE_URL")
	}
	return cfg
}

// discoverProvider returns the first provider whose vendor key is set,
// probing anthropic, openai, then gemini.
func discoverProvider() (string, bool) {
	for _, p := range []string{ProviderAnthropic, ProviderOpenAI, ProviderGemini} {
		if os.Getenv(vendorKeyEnv[p]) != "" {
			return p, true
		}
	}
	return "", false
}

func firstEnv(names ...string) string {
	for _, n := range names {
		if n == "" {
			continue
		}
		if v := os.Getenv(n); v != "" {
			return v
		}
	}
	return ""
}

// Validate checks the provider is known and has a key.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderAnthropic, ProviderOpenAI, ProviderGemini:
		if c.APIKey == "" {
			return fmt.Errorf("no API key for the %s provider: set STUDYPLAN_%s_API_KEY or %s",
				c.Provider, strings.ToUpper(c.Provider), vendorKeyEnv[c.Provider])
		}
	case ProviderMock:
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
