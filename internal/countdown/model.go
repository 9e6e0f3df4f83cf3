package countdown

import (
	"fmt"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickInterval is the wall-clock spacing between countdown ticks.
const TickInterval = time.Second

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// TickMsg advances a running Model by one second.
type TickMsg struct {
	ID  int
	tag int
}

// ExpiredMsg is sent once when a Model reaches zero.
type ExpiredMsg struct {
	ID int
}

// Model is a Bubble Tea component around Countdown.
type Model struct {
	countdown Countdown
	id        int
	tag       int
	running   bool
	interval  time.Duration
}

// NewModel returns a stopped Model. Call Reset to start it.
func NewModel() Model {
	return Model{
		id:       nextID(),
		interval: TickInterval,
		countdown: Countdown{
			expired: true,
		},
	}
}

// ID identifies this Model in TickMsg and ExpiredMsg.
func (m Model) ID() int { return m.id }

// Running reports whether ticks are being scheduled.
func (m Model) Running() bool { return m.running && !m.countdown.Expired() }

// Remaining returns seconds left.
func (m Model) Remaining() int64 { return m.countdown.Remaining() }

// Duration returns the value of the last Reset.
func (m Model) Duration() int64 { return m.countdown.Duration() }

// Expired reports whether the countdown hit zero.
func (m Model) Expired() bool { return m.countdown.Expired() }

// Reset restarts the countdown at seconds. Ticks scheduled by earlier runs
// are ignored from now on.
func (m Model) Reset(seconds int64) (Model, tea.Cmd) {
	m.countdown.Reset(seconds)
	m.tag++
	m.running = true
	return m, m.tick()
}

// Stop halts the countdown without emitting ExpiredMsg.
func (m Model) Stop() Model {
	m.tag++
	m.running = false
	return m
}

// WithInterval returns a copy of m that ticks every d. A non-positive d
// keeps TickInterval.
func (m Model) WithInterval(d time.Duration) Model {
	if d > 0 {
		m.interval = d
	}
	return m
}

// Init implements tea.Model. A Model only ticks after Reset.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles TickMsg values addressed to this Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	tick, ok := msg.(TickMsg)
	if !ok || tick.ID != m.id || tick.tag != m.tag || !m.Running() {
		return m, nil
	}
	if m.countdown.Tick() {
		m.running = false
		id := m.id
		return m, func() tea.Msg { return ExpiredMsg{ID: id} }
	}
	return m, m.tick()
}

// View renders the remaining time.
func (m Model) View() string {
	if m.countdown.Expired() {
		return "Time's up! Now submit your snippet."
	}
	return fmt.Sprintf("Time Remaining: %ds", m.countdown.Remaining())
}

func (m Model) tick() tea.Cmd {
	id, tag := m.id, m.tag
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return TickMsg{ID: id, tag: tag}
	})
}
