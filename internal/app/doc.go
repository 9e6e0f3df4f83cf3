// Package app is the composition root for the snipday client.
//
// # Overview
//
// Run wires configuration, logging, the snippet client, the shared state
// store, the background poller and the Bubble Tea UI together, then blocks
// until the user quits or the context is cancelled.
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> config.Load()        client TOML + flag overrides
//	       ├─────> setupLogging()       slog to the log file (never the screen)
//	       ├─────> prefs.Load()         remembered theme
//	       ├─────> snippet.NewClient()  HTTP client for the backend
//	       ├─────> Poller.Start()       GET /snippet now, then every interval
//	       └─────> ui.Run()             TUI (blocks)
//
// # Polling Behavior
//
// The poller fetches once at startup and then every poll interval (60s by
// default). A 404 from the backend means no snippet is active and is recorded
// as an absent snippet, not as a failure. Other errors are logged and stored
// so the UI can show an offline hint; polling continues. The UI reads the
// store once a second and can force an immediate Refresh after a submission.
//
// PrintCurrent performs a single fetch without the TUI, for --once.
package app
