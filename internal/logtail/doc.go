// Package logtail reads the tail of the snipday client log.
//
// The TUI owns the terminal, so the client writes its slog records to a
// file instead of stderr. The log panel (ctrl+l) calls Read to show the most
// recent lines and Level to color them.
//
// Read keeps a ring buffer of maxLines entries, so memory stays bounded no
// matter how large the file grows:
//
//	lines, err := logtail.Read("~/.local/state/snipday/snipday.log", 200)
//
// A missing file returns no lines and no error; logging may simply be
// disabled.
package logtail
