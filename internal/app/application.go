package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/mgatere/termfolio/internal/chat"
	"github.com/mgatere/termfolio/internal/config"
	"github.com/mgatere/termfolio/internal/core"
	"github.com/mgatere/termfolio/internal/dispatcher"
	"github.com/mgatere/termfolio/internal/eventbus"
	"github.com/mgatere/termfolio/internal/models"
	"github.com/mgatere/termfolio/internal/registry"
)

// Application manages the complete application lifecycle
type Application struct {
	config     *config.Config
	logger     *zap.Logger
	eventBus   *eventbus.EventBus
	dispatcher *dispatcher.EventDispatcher
	service    *core.FallbackService
	model      *AppModel
}

// NewApplication wires the terminal UI to sender, which answers unknown commands.
func NewApplication(cfg *config.Config, portfolio *registry.Portfolio, sender chat.Sender, logger *zap.Logger) (*Application, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	reg, err := registry.New(portfolio.Commands)
	if err != nil {
		return nil, fmt.Errorf("invalid portfolio commands: %w", err)
	}

	eb := eventbus.NewEventBus()
	eb.SetErrorCallback(func(e eventbus.EventBusError) {
		logger.Warn("Event bus error", zap.String("operation", e.Operation), zap.Error(e.Err))
	})

	disp := dispatcher.NewEventDispatcher(eb)
	service := core.NewFallbackService(sender, eb, cfg.RequestTimeout(), logger.Named("fallback"))

	appModel := models.NewAppModel(portfolio, reg, cfg.TypingInterval())

	return &Application{
		config:     cfg,
		logger:     logger,
		eventBus:   eb,
		dispatcher: disp,
		service:    service,
		model:      newModel(appModel, disp),
	}, nil
}

func (app *Application) Start() error {
	app.service.Start()
	app.logger.Info("Terminal started", zap.Int("commands", len(app.model.appModel.Registry.Names())))

	p := tea.NewProgram(app.model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()

	return err
}

func (app *Application) Stop() {
	app.model.appModel.Animator.Stop()
	app.dispatcher.Stop()
	app.service.Stop()
	app.eventBus.Close()

	served, failed := app.service.State().Counts()
	app.logger.Info("Terminal stopped", zap.Int("fallbacks_served", served), zap.Int("fallbacks_failed", failed))
}
