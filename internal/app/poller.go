package app

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/five82/snipday/internal/snippet"
	"github.com/five82/snipday/internal/state"
)

const defaultPollInterval = 60 * time.Second

// Poller keeps the store in sync with GET /snippet.
type Poller struct {
	store    *state.Store
	api      snippet.API
	interval time.Duration
	logger   *slog.Logger
}

// NewPoller builds a Poller. A non-positive interval uses the 60s default.
func NewPoller(store *state.Store, api snippet.API, interval time.Duration, logger *slog.Logger) *Poller {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller{store: store, api: api, interval: interval, logger: logger}
}

// Interval returns the poll cadence.
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// Start launches a background goroutine that fetches immediately and then
// at every interval until ctx is cancelled. It returns immediately.
func (p *Poller) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for ctx.Err() == nil {
			p.Refresh(ctx)
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

// Refresh fetches the current snippet once and records the result.
func (p *Poller) Refresh(ctx context.Context) state.Snapshot {
	current, err := p.api.FetchSnippet(ctx)
	if err != nil {
		if ctx.Err() != nil {
			// Shutting down; keep whatever the UI already shows.
			return p.store.Snapshot()
		}
		if snippet.StatusCode(err) == http.StatusNotFound {
			p.logger.Debug("no active snippet")
			return p.store.Update(snippet.Snippet{}, nil)
		}
		p.logger.Warn("snippet fetch failed", slog.String("error", err.Error()))
		return p.store.Update(snippet.Snippet{}, err)
	}
	if !current.Valid() {
		p.logger.Debug("ignoring snippet without name or code")
	}
	return p.store.Update(current, nil)
}
