package models

import (
	"time"

	"github.com/mgatere/termfolio/internal/format"
	"github.com/mgatere/termfolio/internal/history"
	"github.com/mgatere/termfolio/internal/input"
	"github.com/mgatere/termfolio/internal/registry"
	"github.com/mgatere/termfolio/internal/typewriter"
)

// WelcomeCommand is the command line shown above the greeting.
const WelcomeCommand = "welcome"

// AppModel represents the UI state - only local UI concerns
type AppModel struct {
	Portfolio *registry.Portfolio
	Registry  *registry.Registry
	History   *history.Store       // Terminal transcript
	Editor    *input.Editor        // Input line buffer and cursor
	Recall    *input.RecallLog     // Previously submitted lines for Up/Down
	Animator  *typewriter.Animator // Reveals the newest response

	IsProcessing bool            // A fallback request is pending or its answer is still animating
	PendingID    history.EntryID // Entry waiting on the fallback request
	Status       string          // Status bar text
	LoadingDots  int             // Animation counter for loading dots
	Width        int             // Terminal width
	Height       int             // Terminal height
	Now          time.Time       // Footer clock
}

// NewAppModel builds the initial UI state and seeds the transcript with the
// welcome entry.
func NewAppModel(portfolio *registry.Portfolio, reg *registry.Registry, typingInterval time.Duration) *AppModel {
	m := &AppModel{
		Portfolio: portfolio,
		Registry:  reg,
		History:   history.NewStore(),
		Editor:    input.NewEditor(),
		Recall:    input.NewRecallLog(),
		Animator:  typewriter.NewAnimator(typingInterval),
		Status:    "Ready",
		Now:       time.Now(),
	}
	if len(portfolio.Welcome) > 0 {
		m.History.Append(WelcomeCommand, format.FormatResponse(portfolio.Welcome.Text()))
	}
	return m
}

// IsTyping reports whether a response is being revealed.
func (m *AppModel) IsTyping() bool {
	return m.Animator.IsTyping()
}

// AcceptsInput reports whether key presses may edit or submit the input line.
func (m *AppModel) AcceptsInput() bool {
	return !m.IsTyping() && !m.IsProcessing
}
