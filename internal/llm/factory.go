package llm

import (
	"fmt"

	"github.com/skillpath/skillpath/internal/config"
)

// NewProvider builds the configured provider wrapped with retry logic.
func NewProvider(cfg *config.Config) (Provider, error) {
	var p Provider
	switch cfg.Provider {
	case "", "gemini":
		if cfg.Gemini.APIKey == "" {
			return nil, fmt.Errorf("%w: set gemini.api_key or GEMINI_API_KEY", ErrNoAPIKey)
		}
		p = NewGeminiProvider(cfg.Gemini.APIKey, cfg.Gemini.Model)
	case "mock":
		p = NewMockProvider("mock").WithFallback(EchoFallback)
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}

	retry := DefaultRetryConfig()
	if cfg.Retry.MaxAttempts > 0 {
		retry.MaxAttempts = cfg.Retry.MaxAttempts
	}
	if cfg.Retry.BaseBackoff > 0 {
		retry.BaseBackoff = cfg.Retry.BaseBackoff
	}
	if cfg.Retry.MaxBackoff > 0 {
		retry.MaxBackoff = cfg.Retry.MaxBackoff
	}
	return WrapWithRetry(p, retry), nil
}
