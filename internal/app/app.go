package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/snipday/internal/config"
	"github.com/five82/snipday/internal/prefs"
	"github.com/five82/snipday/internal/snippet"
	"github.com/five82/snipday/internal/state"
	"github.com/five82/snipday/internal/ui"
)

// Options configure the snipday application. Zero values defer to the
// config file.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/snipday/prefs.toml
	APIBase    string
	PollEvery  int    // seconds; zero uses config/default
	LogFile    string // "-" disables logging
	Debug      bool
}

// Run boots the snipday TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	closeLog, err := setupLogging(cfg.LogFile, opts.Debug)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer closeLog()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		slog.Warn("prefs unreadable, using defaults", slog.String("error", err.Error()))
	}

	client, err := snippet.NewClient(cfg.APIBase, snippet.WithTimeout(cfg.RequestTimeout))
	if err != nil {
		return fmt.Errorf("init snippet client: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	store := &state.Store{}
	poller := NewPoller(store, client, cfg.PollInterval, slog.Default())
	poller.Start(ctx)

	slog.Info("snipday started",
		slog.String("api", client.BaseURL()),
		slog.Duration("poll", poller.Interval()),
	)

	return ui.Run(ui.Options{
		Context:   ctx,
		API:       client,
		Store:     store,
		Refresher: poller,
		APIBase:   client.BaseURL(),
		LogPath:   cfg.LogFile,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
	})
}

// PrintCurrent fetches the snippet once and writes it to w.
func PrintCurrent(ctx context.Context, opts Options, w io.Writer) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	client, err := snippet.NewClient(cfg.APIBase, snippet.WithTimeout(cfg.RequestTimeout))
	if err != nil {
		return fmt.Errorf("init snippet client: %w", err)
	}

	var store state.Store
	snap := NewPoller(&store, client, cfg.PollInterval, slog.Default()).Refresh(ctx)
	if snap.LastError != nil {
		return fmt.Errorf("fetch snippet: %w", snap.LastError)
	}
	if !snap.HasSnippet {
		_, err = fmt.Fprintln(w, "No snippet available. Submit one with snipday.")
		return err
	}
	s := snap.Snippet
	_, err = fmt.Fprintf(w, "%s (%s remaining)\n\n%s\n", s.Title(), s.Countdown(), strings.TrimRight(s.Code, "\n"))
	return err
}

func loadConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load snipday config: %w", err)
	}
	if base := strings.TrimSpace(opts.APIBase); base != "" {
		cfg.APIBase = base
	}
	if opts.PollEvery > 0 {
		cfg.PollInterval = time.Duration(opts.PollEvery) * time.Second
	}
	switch logFile := strings.TrimSpace(opts.LogFile); logFile {
	case "":
	case "-":
		cfg.LogFile = ""
	default:
		expanded, err := config.ExpandPath(logFile)
		if err != nil {
			return config.Config{}, fmt.Errorf("resolve log file: %w", err)
		}
		cfg.LogFile = expanded
	}
	return cfg, nil
}

// setupLogging routes log and slog output to path so nothing writes over the
// alt screen. An empty path discards all output.
func setupLogging(path string, debug bool) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := tea.LogToFile(path, "snipday")
	if err != nil {
		return nil, err
	}
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})))
	return func() { _ = f.Close() }, nil
}
