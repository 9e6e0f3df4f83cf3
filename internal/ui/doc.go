// Package ui implements the snipday terminal interface on Bubble Tea.
//
// # Screens
//
// The model is always in one of three phases:
//
//   - PhaseNoSnippet: nothing is active; the submission form is shown.
//   - PhaseShowingCountdown: the current snippet is shown with a
//     countdown initialized to its duration.
//   - PhaseAwaitingSubmission: the countdown elapsed; the form is shown
//     again (with the snippet if a later poll brought one back).
//
// # Data Flow
//
// The app poller writes fetch results into a state.Store. The UI reads a
// snapshot every second and applies it only when its version changed, so a
// countdown keeps running between polls. A new version resets the countdown
// when the snippet's duration changed or no countdown is running.
//
// Countdown expiry sets the time-up flag and clears the snippet. A
// submission posts the form; on success the fields are cleared and the UI
// re-fetches immediately through the Refresher. Failures keep the input and
// show a fixed error line. Only one submission runs at a time.
//
// # Key Bindings
//
//   - tab/shift+tab: move focus between name, code and the submit button
//   - enter: submit (from name or button), ctrl+s: submit from anywhere
//   - ctrl+r: re-fetch now
//   - ctrl+l: toggle the log panel (tails the client log file)
//   - ctrl+t: cycle theme (saved to prefs)
//   - ?/f1: help, ctrl+c: quit
//
// Snippet code is highlighted with chroma using the theme's code style.
package ui
