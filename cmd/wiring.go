package cmd

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/mgatere/termfolio/internal/chat"
	"github.com/mgatere/termfolio/internal/config"
	"github.com/mgatere/termfolio/internal/registry"
	"github.com/mgatere/termfolio/internal/server"
)

// loadPortfolio reads the --portfolio flag, then the config, then the built-in data.
func loadPortfolio(cfg *config.Config) (*registry.Portfolio, error) {
	path := portfolioFlag
	if path == "" {
		path = cfg.Portfolio
	}
	if path == "" {
		return registry.Default()
	}
	return registry.LoadFile(path)
}

// newResponder builds the responder for the active profile. A missing credential
// is logged once and leaves the responder unconfigured.
func newResponder(ctx context.Context, cfg *config.Config, portfolio *registry.Portfolio, logger *zap.Logger) *server.Responder {
	provider, err := server.NewProvider(ctx, cfg)
	switch {
	case errors.Is(err, server.ErrMissingCredential):
		logger.Warn("Chat provider has no credential, answering with the canned reply",
			zap.String("profile", cfg.ActiveProfile),
			zap.String("provider", cfg.GetProvider()),
			zap.Error(err))
		provider = nil
	case err != nil:
		logger.Error("Failed to create chat provider", zap.String("provider", cfg.GetProvider()), zap.Error(err))
		provider = nil
	default:
		logger.Info("Chat provider ready",
			zap.String("provider", provider.Name()),
			zap.String("model", cfg.GetModel()))
	}
	return server.NewResponder(provider, portfolio, logger.Named("responder"))
}

// newSender talks to the configured endpoint, or answers in process without one.
func newSender(ctx context.Context, cfg *config.Config, portfolio *registry.Portfolio, logger *zap.Logger) chat.Sender {
	if endpoint := cfg.GetEndpoint(); endpoint != "" {
		client := chat.NewHTTPClient(endpoint, cfg.RequestTimeout())
		logger.Info("Using remote chat endpoint", zap.String("endpoint", client.Endpoint()))
		return client
	}
	return chat.NewLocalSender(newResponder(ctx, cfg, portfolio, logger))
}
