package update

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mgatere/termfolio/internal/dispatcher"
	"github.com/mgatere/termfolio/internal/eventbus"
	"github.com/mgatere/termfolio/internal/history"
	"github.com/mgatere/termfolio/internal/models"
	"github.com/mgatere/termfolio/internal/typewriter"
)

// HandleUpdate routes one message to its handler.
func HandleUpdate(appModel *models.AppModel, msg tea.Msg, d Dispatcher) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return HandleKeyMsg(appModel, msg, d)
	case tea.WindowSizeMsg:
		HandleWindowSizeMsg(appModel, msg)
		return nil
	case TickMsg:
		return HandleTickMsg(appModel, msg)
	case typewriter.TickMsg:
		return HandleTypewriterTick(appModel, msg)
	case dispatcher.CoreEventMsg:
		return HandleCoreEvent(appModel, msg)
	}
	return nil
}

// HandleCoreEvent processes events from the core
func HandleCoreEvent(appModel *models.AppModel, coreEventMsg dispatcher.CoreEventMsg) tea.Cmd {
	switch event := coreEventMsg.Event.(type) {
	case eventbus.FallbackResolvedEvent:
		return HandleFallbackResolved(appModel, event)
	}
	return nil
}

// HandleTypewriterTick reveals the next character of the animated entry.
func HandleTypewriterTick(appModel *models.AppModel, msg typewriter.TickMsg) tea.Cmd {
	frame, cmd, ok := appModel.Animator.Advance(msg)
	if !ok {
		return nil
	}

	appModel.History.Amend(frame.EntryID, func(e *history.Entry) {
		e.Response = frame.Response
	})

	if frame.Done {
		finishProcessing(appModel)
		appModel.Status = "Ready"
	}
	return cmd
}

// TickMsg drives the loading dots and the footer clock.
type TickMsg time.Time

func TickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func HandleWindowSizeMsg(appModel *models.AppModel, sizeMsg tea.WindowSizeMsg) {
	appModel.Width = sizeMsg.Width
	appModel.Height = sizeMsg.Height
}

func HandleTickMsg(appModel *models.AppModel, tick TickMsg) tea.Cmd {
	appModel.Now = time.Time(tick)
	if appModel.PendingID != "" {
		if entry, ok := appModel.History.Get(appModel.PendingID); ok && entry.IsLoading {
			appModel.LoadingDots = (appModel.LoadingDots + 1) % 4
		}
	}
	return TickCmd()
}
