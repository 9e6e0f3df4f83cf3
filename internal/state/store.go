package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/snipday/internal/snippet"
)

// Snapshot represents the latest fetch result available to the UI.
type Snapshot struct {
	Snippet             snippet.Snippet
	HasSnippet          bool // false when the fetch failed or the snippet was malformed
	Version             uint64
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive poll failures
}

// IsOffline returns true when the API has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update records the outcome of a fetch. A failed fetch or a snippet
// missing its name or code both leave the store without a snippet. Terminal
// control sequences are stripped before the snippet is stored.
func (s *Store) Update(current snippet.Snippet, err error) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Version++
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.Snippet = snippet.Snippet{}
	s.snapshot.HasSnippet = false

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return s.copyLocked()
	}

	current = current.Sanitized()
	if current.Valid() {
		s.snapshot.Snippet = current
		s.snapshot.HasSnippet = true
	}
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
	return s.copyLocked()
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyLocked()
}

func (s *Store) copyLocked() Snapshot {
	snap := s.snapshot
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
