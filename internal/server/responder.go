package server

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"go.uber.org/zap"

	"github.com/mgatere/termfolio/internal/registry"
)

// ErrPromptRequired is the only error a Responder returns.
var ErrPromptRequired = errors.New("Prompt is required")

var contextTemplate = template.Must(template.New("context").Parse(
	`You are an AI assistant integrated into {{.Owner.Name}}'s portfolio terminal.
You should respond as if you are providing information about {{.Owner.Name}}, a {{.Owner.Title}}.

Key information about {{.Owner.Name}}:
{{- range .Facts}}
- {{.}}
{{- end}}

When answering questions:
1. Keep responses concise and terminal-friendly
2. Focus on {{.Owner.Name}}'s professional experience and skills
3. If asked about something not related to the portfolio, politely redirect to relevant commands
4. Maintain a professional but friendly tone

User query: {{.Query}}`))

// Responder turns a visitor's prompt into the text shown in the terminal. Provider
// trouble never surfaces as an error: it becomes a canned reply instead.
type Responder struct {
	provider  Provider
	portfolio *registry.Portfolio
	logger    *zap.Logger
}

// NewResponder wraps provider. A nil provider means no credential was configured
// and every prompt gets the unconfigured reply.
func NewResponder(provider Provider, portfolio *registry.Portfolio, logger *zap.Logger) *Responder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Responder{provider: provider, portfolio: portfolio, logger: logger}
}

// Configured reports whether a provider is wired in.
func (r *Responder) Configured() bool {
	return r.provider != nil
}

// UnconfiguredMessage is returned when no provider credential is set.
func (r *Responder) UnconfiguredMessage() string {
	return fmt.Sprintf("I can only provide information about %s from this portfolio. "+
		"Please configure an API key for the chat provider for full AI functionality.", r.portfolio.Owner.Name)
}

// ApologyMessage is returned when the provider fails.
func (r *Responder) ApologyMessage() string {
	return "I apologize, but I'm having trouble processing that request. " +
		"Please try using one of the available commands like 'help', 'about', 'projects', or 'skills'."
}

// BuildPrompt embeds the query in the portfolio context.
func (r *Responder) BuildPrompt(query string) (string, error) {
	var b strings.Builder
	err := contextTemplate.Execute(&b, struct {
		Owner registry.Owner
		Facts []string
		Query string
	}{
		Owner: r.portfolio.Owner,
		Facts: r.portfolio.Facts,
		Query: query,
	})
	if err != nil {
		return "", fmt.Errorf("failed to build prompt: %w", err)
	}
	return b.String(), nil
}

func (r *Responder) Respond(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", ErrPromptRequired
	}

	if r.provider == nil {
		r.logger.Warn("Chat provider not configured, returning fallback response")
		return r.UnconfiguredMessage(), nil
	}

	full, err := r.BuildPrompt(prompt)
	if err != nil {
		r.logger.Error("Failed to build prompt", zap.Error(err))
		return r.ApologyMessage(), nil
	}

	text, err := r.provider.Complete(ctx, full)
	if err != nil {
		r.logger.Error("Chat provider failed",
			zap.String("provider", r.provider.Name()),
			zap.Error(err))
		return r.ApologyMessage(), nil
	}
	if strings.TrimSpace(text) == "" {
		r.logger.Warn("Chat provider returned empty text", zap.String("provider", r.provider.Name()))
		return r.ApologyMessage(), nil
	}

	r.logger.Debug("Chat provider answered",
		zap.String("provider", r.provider.Name()),
		zap.Int("length", len(text)))
	return text, nil
}
