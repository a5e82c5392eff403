package typewriter

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mgatere/termfolio/internal/format"
	"github.com/mgatere/termfolio/internal/history"
)

// DefaultInterval is the delay between two revealed characters.
const DefaultInterval = 10 * time.Millisecond

type State int

const (
	Idle State = iota
	Revealing
)

// TickMsg asks the animator to reveal the next character. Ticks from a superseded
// or stopped animation carry an old generation and are dropped.
type TickMsg struct {
	Generation uint64
}

// Frame is what one tick produced for the entry being revealed.
type Frame struct {
	EntryID  history.EntryID
	Response format.Response
	Done     bool
}

// Animator reveals a target text into one history entry, one rune per tick.
// It owns the only live tick stream: starting a new animation or stopping the
// current one invalidates every tick already scheduled.
type Animator struct {
	interval   time.Duration
	state      State
	entryID    history.EntryID
	target     []rune
	revealed   int
	framing    string
	generation uint64
}

func NewAnimator(interval time.Duration) *Animator {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Animator{interval: interval}
}

func (a *Animator) State() State {
	return a.state
}

func (a *Animator) IsTyping() bool {
	return a.state == Revealing
}

func (a *Animator) EntryID() history.EntryID {
	return a.entryID
}

// Revealed returns how many runes of the target are visible.
func (a *Animator) Revealed() int {
	return a.revealed
}

// Start begins revealing target into the entry. framing is shown in front of the
// revealed text on every frame without being animated itself.
func (a *Animator) Start(id history.EntryID, target, framing string) tea.Cmd {
	a.generation++
	a.state = Revealing
	a.entryID = id
	a.target = []rune(target)
	a.revealed = 0
	a.framing = framing
	return a.tick()
}

// Advance handles a tick. ok is false for stale ticks, which must be ignored.
// Otherwise the returned frame holds the entry's new response and, unless the
// reveal finished, cmd schedules the next tick.
func (a *Animator) Advance(msg TickMsg) (frame Frame, cmd tea.Cmd, ok bool) {
	if a.state != Revealing || msg.Generation != a.generation {
		return Frame{}, nil, false
	}
	if a.revealed < len(a.target) {
		a.revealed++
	}
	frame = Frame{
		EntryID:  a.entryID,
		Response: format.FormatResponse(string(a.target[:a.revealed])).Prepend(a.framing),
	}
	if a.revealed >= len(a.target) {
		frame.Done = true
		a.Stop()
		return frame, nil, true
	}
	return frame, a.tick(), true
}

// Stop returns to idle and invalidates pending ticks. Calling it when idle is a no-op.
func (a *Animator) Stop() {
	if a.state == Idle {
		return
	}
	a.state = Idle
	a.generation++
	a.target = nil
	a.framing = ""
}

func (a *Animator) tick() tea.Cmd {
	gen := a.generation
	return tea.Tick(a.interval, func(time.Time) tea.Msg {
		return TickMsg{Generation: gen}
	})
}

// Generation identifies the current tick stream.
func (a *Animator) Generation() uint64 {
	return a.generation
}
