// Package board holds the single active snippet served by snipdayd.
//
// A submission occupies the board for its expiration window. While it is
// active further submissions are refused with ErrSnippetActive. Once the
// window passes the entry is invisible to Current and is removed by Sweep.
package board

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/five82/snipday/internal/snippet"
)

const (
	// DefaultExpiration is how long a snippet stays active.
	DefaultExpiration = 10 * time.Second
	// DefaultMaxCodeLength bounds the code body in bytes.
	DefaultMaxCodeLength = 500
)

var (
	ErrSnippetActive = errors.New("snippet active")
	ErrCodeTooLong   = errors.New("code too long")
	ErrInvalidInput  = errors.New("invalid input")
	ErrNoSnippet     = errors.New("no snippet available")
)

// Entry is the active snippet.
type Entry struct {
	Name        string
	Code        string
	SubmittedAt time.Time
	Expiration  time.Duration
}

// Remaining returns time left at now, clamped at zero.
func (e Entry) Remaining(now time.Time) time.Duration {
	left := e.Expiration - now.Sub(e.SubmittedAt)
	if left < 0 {
		return 0
	}
	return left
}

// Expired reports whether the entry's window has passed at now.
func (e Entry) Expired(now time.Time) bool {
	return now.Sub(e.SubmittedAt) >= e.Expiration
}

// Option configures a Board.
type Option func(*Board)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(b *Board) {
		if now != nil {
			b.now = now
		}
	}
}

// WithLogger sets the logger used by Run.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Board) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// Board stores at most one active snippet.
type Board struct {
	mu            sync.Mutex
	active        *Entry
	expiration    time.Duration
	maxCodeLength int
	now           func() time.Time
	logger        *slog.Logger
}

// New returns an empty Board. Non-positive limits use the defaults.
func New(expiration time.Duration, maxCodeLength int, opts ...Option) *Board {
	if expiration <= 0 {
		expiration = DefaultExpiration
	}
	if maxCodeLength <= 0 {
		maxCodeLength = DefaultMaxCodeLength
	}
	b := &Board{
		expiration:    expiration,
		maxCodeLength: maxCodeLength,
		now:           time.Now,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// MaxCodeLength returns the code size limit in bytes.
func (b *Board) MaxCodeLength() int {
	return b.maxCodeLength
}

// Now returns the board's current time.
func (b *Board) Now() time.Time {
	return b.now()
}

// Active reports whether an unexpired snippet occupies the board.
func (b *Board) Active() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.activeLocked(b.now())
}

// Submit stores a new snippet. A non-positive expiration uses the board
// default. It fails with ErrSnippetActive while another snippet is active,
// ErrInvalidInput when name or code is blank or carries terminal control
// characters and ErrCodeTooLong when code exceeds the limit.
func (b *Board) Submit(name, code string, expiration time.Duration) (Entry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	if b.activeLocked(now) {
		return Entry{}, ErrSnippetActive
	}
	b.active = nil

	if strings.TrimSpace(name) == "" || strings.TrimSpace(code) == "" {
		return Entry{}, ErrInvalidInput
	}
	if snippet.HasControl(name) || snippet.HasControl(code) {
		return Entry{}, ErrInvalidInput
	}
	if len(code) > b.maxCodeLength {
		return Entry{}, ErrCodeTooLong
	}
	if expiration <= 0 {
		expiration = b.expiration
	}

	entry := Entry{
		Name:        name,
		Code:        code,
		SubmittedAt: now,
		Expiration:  expiration,
	}
	b.active = &entry
	return entry, nil
}

// Current returns the active snippet, or ErrNoSnippet.
func (b *Board) Current() (Entry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.activeLocked(b.now()) {
		return Entry{}, ErrNoSnippet
	}
	return *b.active, nil
}

// Sweep drops an expired entry and reports whether it did.
func (b *Board) Sweep() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.active == nil || !b.active.Expired(b.now()) {
		return false
	}
	b.active = nil
	return true
}

// Run sweeps every interval until ctx is cancelled.
func (b *Board) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if b.Sweep() {
				b.logger.Debug("expired snippet removed")
			}
		}
	}
}

func (b *Board) activeLocked(now time.Time) bool {
	return b.active != nil && !b.active.Expired(now)
}
