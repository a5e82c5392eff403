package dispatcher

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mgatere/termfolio/internal/eventbus"
)

// CoreEventMsg carries a core event into the Bubble Tea update loop.
type CoreEventMsg struct {
	Event eventbus.CoreEvent
}

// StoppedMsg is delivered once the dispatcher stops or the bus closes.
type StoppedMsg struct{}

// EventDispatcher handles routing events between core and UI
type EventDispatcher struct {
	eventBus *eventbus.EventBus
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewEventDispatcher(eventBus *eventbus.EventBus) *EventDispatcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &EventDispatcher{
		eventBus: eventBus,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// ListenForCoreEvents waits for the next core event. The update loop must
// re-issue the command after every CoreEventMsg to keep listening.
func (ed *EventDispatcher) ListenForCoreEvents() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ed.ctx.Done():
			return StoppedMsg{}
		case event, ok := <-ed.eventBus.CoreToUI():
			if !ok {
				return StoppedMsg{}
			}
			return CoreEventMsg{Event: event}
		}
	}
}

// Dispatch hands a UI event to the core.
func (ed *EventDispatcher) Dispatch(event eventbus.UIEvent) error {
	return ed.eventBus.SendToCore(event)
}

func (ed *EventDispatcher) Stop() {
	ed.cancel()
}

func (ed *EventDispatcher) GetEventBus() *eventbus.EventBus {
	return ed.eventBus
}
