package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/mgatere/termfolio/internal/config"
)

// ErrMissingCredential is returned at startup when the active profile has no API key.
var ErrMissingCredential = errors.New("missing provider credential")

// Provider sends one fully built prompt to a hosted model and returns its text.
type Provider interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}

// NewProvider builds the provider selected by the active profile. A profile without
// an API key fails with ErrMissingCredential wrapping the config error.
func NewProvider(ctx context.Context, cfg *config.Config) (Provider, error) {
	if err := cfg.RequireCredential(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingCredential, err)
	}

	switch cfg.GetProvider() {
	case config.ProviderGemini:
		return NewGeminiProvider(ctx, cfg.GetAPIKey(), cfg.GetModel())
	case config.ProviderOpenAI:
		return NewOpenAIProvider(cfg.GetAPIKey(), cfg.GetBaseURL(), cfg.GetModel()), nil
	case config.ProviderAnthropic:
		return NewAnthropicProvider(cfg.GetAPIKey(), cfg.GetBaseURL(), cfg.GetModel()), nil
	}
	return nil, &config.ConfigError{Field: "provider", Reason: fmt.Sprintf("unknown provider %q", cfg.GetProvider())}
}
