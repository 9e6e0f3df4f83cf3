package snippet

import (
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

// Snippet mirrors the payload returned by GET /snippet.
type Snippet struct {
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Duration  int64     `json:"duration"`
	Timestamp time.Time `json:"timestamp,omitzero"`
}

// Valid reports whether the snippet carries both an author and a body.
// Anything else is treated as "no snippet".
func (s Snippet) Valid() bool {
	return s.Name != "" && s.Code != ""
}

// Title returns the heading shown above the code, e.g. "Ada's Snippet".
func (s Snippet) Title() string {
	return strings.TrimSpace(s.Name) + "'s Snippet"
}

// Countdown returns the duration as a time.Duration.
func (s Snippet) Countdown() time.Duration {
	if s.Duration <= 0 {
		return 0
	}
	return time.Duration(s.Duration) * time.Second
}

// Submission is the body of POST /submit.
type Submission struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// Sanitized returns s with terminal control sequences removed from the
// author and code. Snippets come from anonymous submitters and are written
// straight to every viewer's terminal.
func (s Snippet) Sanitized() Snippet {
	s.Name = SanitizeText(s.Name)
	s.Code = SanitizeText(s.Code)
	return s
}

// SanitizeText strips ANSI escape sequences and drops control characters
// other than newline and tab. CRLF line endings become LF.
func SanitizeText(text string) string {
	text = ansi.Strip(strings.ReplaceAll(text, "\r\n", "\n"))
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, text)
}

// HasControl reports whether text contains a control character other than
// newline, tab or carriage return. Escape sequences always start with one.
func HasControl(text string) bool {
	return strings.ContainsFunc(text, func(r rune) bool {
		return unicode.IsControl(r) && r != '\n' && r != '\t' && r != '\r'
	})
}
