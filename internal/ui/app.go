package ui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/snipday/internal/countdown"
	"github.com/five82/snipday/internal/prefs"
	"github.com/five82/snipday/internal/snippet"
	"github.com/five82/snipday/internal/state"
)

// submitErrorText is shown for every failed submission regardless of cause.
const submitErrorText = "An error occurred while submitting your snippet."

// Phase is the screen the UI is in.
type Phase int

const (
	// PhaseNoSnippet shows the submission form; nothing is active.
	PhaseNoSnippet Phase = iota
	// PhaseShowingCountdown shows the snippet and its countdown.
	PhaseShowingCountdown
	// PhaseAwaitingSubmission shows the form after the countdown elapsed.
	PhaseAwaitingSubmission
)

func (p Phase) String() string {
	switch p {
	case PhaseShowingCountdown:
		return "showing"
	case PhaseAwaitingSubmission:
		return "awaiting"
	default:
		return "empty"
	}
}

// Refresher forces an immediate fetch and returns the resulting snapshot.
type Refresher interface {
	Refresh(ctx context.Context) state.Snapshot
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	API       snippet.API
	Store     *state.Store
	Refresher Refresher
	APIBase   string
	LogPath   string
	ThemeName string
	PrefsPath string

	// RefreshEvery is how often the store is read. Defaults to 1s.
	RefreshEvery time.Duration
	// TickInterval is the countdown step. Defaults to countdown.TickInterval.
	TickInterval time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx          context.Context
	api          snippet.API
	store        *state.Store
	refresher    Refresher
	apiBase      string
	logPath      string
	prefsPath    string
	refreshEvery time.Duration

	// UI state
	keys     keyMap
	help     help.Model
	theme    Theme
	width    int
	height   int
	ready    bool
	showHelp bool

	// Data state
	snapshot    state.Snapshot
	lastVersion uint64
	current     snippet.Snippet
	hasSnippet  bool
	timeUp      bool
	countdown   countdown.Model

	// Form state
	name       textinput.Model
	code       textarea.Model
	focus      formField
	submitting bool
	errMsg     string

	// Log panel
	showLogs bool
	logView  viewport.Model
	logLines []string
	logErr   error
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	refreshEvery := opts.RefreshEvery
	if refreshEvery <= 0 {
		refreshEvery = time.Second
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	m := Model{
		ctx:          ctx,
		api:          opts.API,
		store:        opts.Store,
		refresher:    opts.Refresher,
		apiBase:      opts.APIBase,
		logPath:      opts.LogPath,
		prefsPath:    prefsPath,
		refreshEvery: refreshEvery,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		theme:        GetTheme(opts.ThemeName),
		countdown:    countdown.NewModel().WithInterval(opts.TickInterval),
		name:         newNameInput(),
		code:         newCodeInput(),
		logView:      viewport.New(0, 0),
	}
	m.applyFocus()
	return m
}

// Phase reports which screen is active.
func (m Model) Phase() Phase {
	switch {
	case m.timeUp:
		return PhaseAwaitingSubmission
	case !m.hasSnippet:
		return PhaseNoSnippet
	default:
		return PhaseShowingCountdown
	}
}

func (m Model) formVisible() bool {
	return m.Phase() != PhaseShowingCountdown
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tickCmd(m.refreshEvery),
		textinput.Blink,
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		return m.applySnapshot(state.Snapshot(msg))

	case countdown.TickMsg:
		var cmd tea.Cmd
		m.countdown, cmd = m.countdown.Update(msg)
		return m, cmd

	case countdown.ExpiredMsg:
		if msg.ID != m.countdown.ID() {
			return m, nil
		}
		slog.Debug("countdown elapsed", slog.String("author", m.current.Name))
		m.timeUp = true
		m.hasSnippet = false
		m.current = snippet.Snippet{}
		return m, nil

	case submitResultMsg:
		return m.handleSubmitResult(msg)

	case logLinesMsg:
		m.handleLogLines(msg)
		return m, nil
	}

	return m.updateFocused(msg)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help) && (msg.String() == "f1" || !m.typing()):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if m.prefsPath != "" {
			if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name}); err != nil {
				slog.Warn("save prefs failed", slog.String("error", err.Error()))
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.ToggleLogs):
		m.showLogs = !m.showLogs
		m.resize()
		if m.showLogs {
			return m, m.refreshLogs()
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, refreshCmd(m.ctx, m.refresher)

	case m.showLogs && (key.Matches(msg, m.keys.Up) || key.Matches(msg, m.keys.Down)):
		var cmd tea.Cmd
		m.logView, cmd = m.logView.Update(msg)
		return m, cmd
	}

	if !m.formVisible() {
		return m, nil
	}
	return m.handleFormKey(msg)
}

// handleTick reads the store and schedules the next read.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.showLogs {
		if cmd := m.refreshLogs(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	cmds = append(cmds, tickCmd(m.refreshEvery))
	return m, tea.Batch(cmds...)
}

// applySnapshot folds a store snapshot into the UI. Only a new version
// changes the displayed snippet.
func (m Model) applySnapshot(snap state.Snapshot) (Model, tea.Cmd) {
	if m.lastVersion != 0 && snap.Version == m.lastVersion {
		return m, nil
	}
	m.snapshot = snap
	m.lastVersion = snap.Version

	if !snap.HasSnippet {
		m.hasSnippet = false
		m.current = snippet.Snippet{}
		m.countdown = m.countdown.Stop()
		return m, nil
	}

	previous := m.current
	m.current = snap.Snippet
	m.hasSnippet = true
	if m.timeUp {
		return m, nil
	}
	if m.countdown.Running() && previous.Duration == snap.Snippet.Duration {
		return m, nil
	}

	var cmd tea.Cmd
	m.countdown, cmd = m.countdown.Reset(snap.Snippet.Duration)
	return m, cmd
}

func (m Model) handleSubmitResult(msg submitResultMsg) (Model, tea.Cmd) {
	m.submitting = false
	if msg.err != nil {
		if errors.Is(msg.err, context.Canceled) {
			return m, nil
		}
		slog.Error("snippet submit failed",
			slog.Int("status", snippet.StatusCode(msg.err)),
			slog.String("error", msg.err.Error()),
		)
		m.errMsg = submitErrorText
		return m, nil
	}

	slog.Info("snippet submitted")
	m.name.Reset()
	m.code.Reset()
	m.errMsg = ""
	m.timeUp = false
	m.focus = fieldName
	focusCmd := m.applyFocus()

	// The poller may have stored a newer version while the submit was in flight.
	if msg.snapshot.Version < m.lastVersion {
		return m, focusCmd
	}
	m, snapCmd := m.applySnapshot(msg.snapshot)
	return m, tea.Batch(focusCmd, snapCmd)
}

// resize lays out components for the current window size.
func (m *Model) resize() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	m.help.Width = m.width

	inner := m.width - 6
	if inner > 80 {
		inner = 80
	}
	if inner < 10 {
		inner = 10
	}
	m.name.Width = inner - len(m.name.Prompt) - 1
	m.code.SetWidth(inner)
	m.code.SetHeight(codeInputHeight)

	m.logView.Width = m.width - 4
	m.logView.Height = m.logPanelHeight()
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type submitResultMsg struct {
	snapshot state.Snapshot
	err      error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func refreshCmd(ctx context.Context, refresher Refresher) tea.Cmd {
	if refresher == nil {
		return nil
	}
	return func() tea.Msg {
		return snapshotMsg(refresher.Refresh(ctx))
	}
}

// submitCmd posts sub and, on success, re-fetches so the new snippet shows
// up without waiting for the next poll.
func submitCmd(ctx context.Context, api snippet.API, refresher Refresher, store *state.Store, sub snippet.Submission) tea.Cmd {
	return func() tea.Msg {
		if api == nil {
			return submitResultMsg{err: errors.New("no snippet API configured")}
		}
		if err := api.Submit(ctx, sub); err != nil {
			return submitResultMsg{err: err}
		}
		switch {
		case refresher != nil:
			return submitResultMsg{snapshot: refresher.Refresh(ctx)}
		case store != nil:
			return submitResultMsg{snapshot: store.Snapshot()}
		default:
			return submitResultMsg{}
		}
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
