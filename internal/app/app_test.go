package app

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/mgatere/termfolio/internal/config"
	"github.com/mgatere/termfolio/internal/dispatcher"
	"github.com/mgatere/termfolio/internal/registry"
	"github.com/mgatere/termfolio/internal/typewriter"
)

type staticSender struct {
	reply string
	err   error
}

func (s staticSender) Send(ctx context.Context, prompt string) (string, error) {
	return s.reply, s.err
}

func newTestApplication(t *testing.T, sender staticSender) *Application {
	t.Helper()
	t.Setenv("TERMFOLIO_HOME", t.TempDir())
	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	p, err := registry.Default()
	require.NoError(t, err)

	app, err := NewApplication(cfg, p, sender, nil)
	require.NoError(t, err)
	return app
}

func press(m *AppModel, text string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
}

func settle(t *testing.T, m *AppModel) {
	t.Helper()
	for i := 0; m.appModel.IsTyping(); i++ {
		require.Less(t, i, 100000)
		m.Update(typewriter.TickMsg{Generation: m.appModel.Animator.Generation()})
	}
}

func nextCoreEvent(t *testing.T, app *Application) tea.Msg {
	t.Helper()
	done := make(chan tea.Msg, 1)
	go func() { done <- app.dispatcher.ListenForCoreEvents()() }()
	select {
	case msg := <-done:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("no core event")
		return nil
	}
}

func TestApplication_FallbackRoundTrip(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	app := newTestApplication(t, staticSender{reply: "Gatere writes Go."})
	app.service.Start()
	defer app.Stop()

	m := app.model
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	press(m, "whoami")
	assert.Contains(t, m.View(), "Fetching information from AI assistant")

	msg := nextCoreEvent(t, app)
	require.IsType(t, dispatcher.CoreEventMsg{}, msg)
	_, cmd := m.Update(msg)
	assert.NotNil(t, cmd)

	settle(t, m)
	view := m.View()
	assert.Contains(t, view, "bash: whoami: command not found")
	assert.Contains(t, view, "Gatere writes Go.")
	assert.False(t, m.appModel.IsProcessing)
}

func TestApplication_FallbackTransportError(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	app := newTestApplication(t, staticSender{err: errors.New("connection refused")})
	app.service.Start()
	defer app.Stop()

	m := app.model
	press(m, "whoami")
	m.Update(nextCoreEvent(t, app))

	assert.Contains(t, m.View(), "Sorry, I couldn't process that request.")
	assert.True(t, m.appModel.AcceptsInput())
}

func TestAppModel_ViewShowsHeaderWelcomeAndPrompt(t *testing.T) {
	app := newTestApplication(t, staticSender{})
	defer app.Stop()

	m := app.model
	m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	view := m.View()

	assert.Contains(t, view, "help | about | experience")
	assert.Contains(t, view, "Welcome to my interactive")
	assert.Contains(t, view, "gatere@portfolio:~$")
	assert.Equal(t, 40, m.appModel.Height)
}

func TestAppModel_ClearAndStoppedMsg(t *testing.T) {
	app := newTestApplication(t, staticSender{})
	defer app.Stop()

	m := app.model
	press(m, "clear")
	assert.Equal(t, 0, m.appModel.History.Len())
	assert.NotContains(t, m.View(), "Welcome to my interactive")

	_, cmd := m.Update(dispatcher.StoppedMsg{})
	assert.Nil(t, cmd)
}

func TestNewApplication_RejectsReservedCommand(t *testing.T) {
	t.Setenv("TERMFOLIO_HOME", t.TempDir())
	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	p := &registry.Portfolio{Commands: []registry.Command{{Name: "clear"}}}
	_, err = NewApplication(cfg, p, staticSender{}, nil)
	assert.Error(t, err)
}
