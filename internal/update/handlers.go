package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mgatere/termfolio/internal/eventbus"
	"github.com/mgatere/termfolio/internal/format"
	"github.com/mgatere/termfolio/internal/history"
	"github.com/mgatere/termfolio/internal/models"
	"github.com/mgatere/termfolio/internal/registry"
)

// Dispatcher hands UI events to the core.
type Dispatcher interface {
	Dispatch(event eventbus.UIEvent) error
}

// NotFound is the shell's reply to an unknown command.
func NotFound(cmd string) string {
	return fmt.Sprintf("bash: %s: command not found", cmd)
}

// LoadingText is shown while the fallback answer is fetched.
func LoadingText(cmd string) string {
	return NotFound(cmd) + "\nFetching information from AI assistant"
}

// AIFraming precedes a fallback answer. It is shown whole, only the answer is typed out.
func AIFraming(cmd string) string {
	return NotFound(cmd) + "\n\n"
}

// ErrorText replaces the loading entry when the fallback answer could not be fetched.
func ErrorText(cmd string) string {
	return NotFound(cmd) + "\n\nSorry, I couldn't process that request."
}

// HandleKeyMsg handles keyboard input. Apart from quitting, keys are ignored
// while a response is being revealed or a fallback answer is pending.
func HandleKeyMsg(appModel *models.AppModel, keyMsg tea.KeyMsg, d Dispatcher) tea.Cmd {
	switch keyMsg.Type {
	case tea.KeyCtrlC, tea.KeyCtrlD:
		return tea.Quit
	}

	if !appModel.AcceptsInput() {
		return nil
	}

	editor := appModel.Editor
	switch keyMsg.Type {
	case tea.KeyEnter:
		return HandleSubmit(appModel, d)
	case tea.KeyUp:
		if line, ok := appModel.Recall.Older(); ok {
			editor.Set(line)
		}
	case tea.KeyDown:
		if line, ok := appModel.Recall.Newer(); ok {
			editor.Set(line)
		}
	case tea.KeyTab:
		if !editor.IsEmpty() {
			if name, ok := appModel.Registry.Complete(editor.Get()); ok {
				editor.Set(name)
			}
		}
	case tea.KeyLeft:
		editor.Left()
	case tea.KeyRight:
		editor.Right()
	case tea.KeyHome, tea.KeyCtrlA:
		editor.Home()
	case tea.KeyEnd, tea.KeyCtrlE:
		editor.End()
	case tea.KeyBackspace:
		editor.Backspace()
	case tea.KeyDelete:
		editor.Delete()
	case tea.KeyCtrlU:
		editor.KillToStart()
	case tea.KeyCtrlK:
		editor.KillToEnd()
	case tea.KeySpace:
		editor.Insert(" ")
	case tea.KeyRunes:
		editor.Insert(string(keyMsg.Runes))
	}
	return nil
}

// HandleSubmit consumes the input line: it is recorded for recall and dispatched.
func HandleSubmit(appModel *models.AppModel, d Dispatcher) tea.Cmd {
	line := strings.TrimSpace(appModel.Editor.Get())
	appModel.Editor.Clear()
	appModel.Recall.Add(line)
	appModel.Recall.Reset()
	return Dispatch(appModel, line, d)
}

// Dispatch runs one command line: clear, a registered command, or the AI fallback.
func Dispatch(appModel *models.AppModel, line string, d Dispatcher) tea.Cmd {
	cmd := registry.Normalize(line)
	if cmd == "" {
		return nil
	}

	if cmd == registry.ClearCommand {
		appModel.History.Clear()
		appModel.Editor.Clear()
		appModel.Status = "Ready"
		return nil
	}

	if command, ok := appModel.Registry.Lookup(cmd); ok {
		id := appModel.History.Append(cmd, format.Plain(""))
		return appModel.Animator.Start(id, command.Response.Text(), "")
	}

	id := appModel.History.AppendLoading(cmd, format.Plain(LoadingText(cmd)))
	appModel.IsProcessing = true
	appModel.PendingID = id
	appModel.LoadingDots = 0
	appModel.Status = "Asking AI assistant"

	if err := d.Dispatch(eventbus.FallbackRequestEvent{EntryID: id, Prompt: cmd}); err != nil {
		resolveWithError(appModel, id)
		appModel.Status = "Error: " + err.Error()
	}
	return nil
}

// HandleFallbackResolved applies the fallback outcome to the pending entry.
func HandleFallbackResolved(appModel *models.AppModel, event eventbus.FallbackResolvedEvent) tea.Cmd {
	if event.EntryID != appModel.PendingID {
		return nil
	}

	if event.Err != nil {
		resolveWithError(appModel, event.EntryID)
		appModel.Status = "Error: " + event.Err.Error()
		return nil
	}

	entry, ok := appModel.History.Get(event.EntryID)
	if !ok {
		finishProcessing(appModel)
		return nil
	}

	framing := AIFraming(entry.Command)
	appModel.History.Amend(event.EntryID, func(e *history.Entry) {
		e.IsLoading = false
		e.IsAIResponse = true
		e.Response = format.Plain(framing)
	})
	appModel.Status = "Typing"
	return appModel.Animator.Start(event.EntryID, event.Message, framing)
}

func resolveWithError(appModel *models.AppModel, id history.EntryID) {
	appModel.History.Amend(id, func(e *history.Entry) {
		e.IsLoading = false
		e.IsError = true
		e.Response = format.Plain(ErrorText(e.Command))
	})
	finishProcessing(appModel)
}

func finishProcessing(appModel *models.AppModel) {
	appModel.IsProcessing = false
	appModel.PendingID = ""
	appModel.LoadingDots = 0
}
