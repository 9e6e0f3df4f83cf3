// Package state provides thread-safe state sharing for the snipday client.
//
// # Overview
//
// The background poller and the Bubble Tea program run on different
// goroutines. Store is the hand-off point between them: the poller writes
// the outcome of every GET /snippet, the UI reads a Snapshot once per
// second and reacts when Version changes.
//
//	Producer (Poller):             Consumer (UI):
//	┌────────────────┐            ┌─────────────────┐
//	│ FetchSnippet() │            │                 │
//	│      ↓         │            │                 │
//	│ store.Update() │───────────→│ store.Snapshot()│
//	│      ↓         │  (mutex)   │      ↓          │
//	│  wait 60s...   │            │  render UI      │
//	└────────────────┘            └─────────────────┘
//
// # Update Semantics
//
// Every Update bumps Version, even when the result matches the previous
// one. The UI relies on this to resynchronize its countdown with the
// remaining time the server reports on each poll.
//
//	store.Update(s, nil)   // valid s → HasSnippet, failures reset
//	store.Update(s, nil)   // s missing name/code → no snippet, not an error
//	store.Update(_, err)   // no snippet, LastError set, failures++
//
// Unlike a cache, a failed fetch does not keep stale data: the client shows
// the submission form whenever the current snippet is unknown.
//
// # Offline Detection
//
// IsOffline reports two or more consecutive failures. The header uses it to
// switch from a transient error hint to an "offline" badge.
package state
