package app

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mgatere/termfolio/internal/dispatcher"
	"github.com/mgatere/termfolio/internal/models"
	"github.com/mgatere/termfolio/internal/update"
	"github.com/mgatere/termfolio/ui/components"
)

// AppModel is the tea.Model around the UI state. The transcript and the input
// line scroll together in a viewport pinned to the bottom.
type AppModel struct {
	appModel   *models.AppModel
	dispatcher *dispatcher.EventDispatcher
	viewport   viewport.Model
	location   *time.Location
}

func newModel(appModel *models.AppModel, disp *dispatcher.EventDispatcher) *AppModel {
	m := &AppModel{
		appModel:   appModel,
		dispatcher: disp,
		viewport:   viewport.New(80, 20),
		location:   components.Location(appModel.Portfolio.Owner.Timezone),
	}
	m.refresh()
	return m
}

func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(
		update.TickCmd(),
		m.dispatcher.ListenForCoreEvents(),
	)
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case dispatcher.CoreEventMsg:
		// keep listening after every core event
		cmd = tea.Batch(update.HandleCoreEvent(m.appModel, msg), m.dispatcher.ListenForCoreEvents())
	case dispatcher.StoppedMsg:
		return m, nil
	case tea.MouseMsg:
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		update.HandleWindowSizeMsg(m.appModel, msg)
		m.resize()
	default:
		cmd = update.HandleUpdate(m.appModel, msg, m.dispatcher)
	}

	m.refresh()
	return m, cmd
}

func (m *AppModel) View() string {
	var b strings.Builder

	b.WriteString(m.header())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.footer())

	return b.String()
}

func (m *AppModel) header() string {
	return components.RenderHeader(m.appModel.Registry.Names(), m.appModel.Width)
}

func (m *AppModel) footer() string {
	loading := m.appModel.IsProcessing && !m.appModel.IsTyping()
	clock := components.Clock(m.appModel.Now, m.location)
	return components.RenderStatus(m.appModel.Status, loading, m.appModel.LoadingDots, clock, m.appModel.Width)
}

func (m *AppModel) resize() {
	height := m.appModel.Height - lipgloss.Height(m.header()) - lipgloss.Height(m.footer())
	if height < 1 {
		height = 1
	}
	m.viewport.Width = m.appModel.Width
	m.viewport.Height = height
}

// refresh re-renders the transcript and follows the newest output.
func (m *AppModel) refresh() {
	prompt := m.appModel.Portfolio.Owner.Prompt()
	before, after := m.appModel.Editor.Split()

	content := components.RenderHistory(m.appModel.History.Entries(), prompt, m.appModel.LoadingDots) +
		components.RenderInput(prompt, before, after, m.appModel.AcceptsInput())

	m.viewport.SetContent(lipgloss.NewStyle().Width(m.viewport.Width).Render(content))
	m.viewport.GotoBottom()
}
