package ui

import (
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/quick"
)

const plainLanguage = "plaintext"

// detectLanguage guesses the lexer for code, falling back to plain text.
func detectLanguage(code string) string {
	lexer := lexers.Analyse(code)
	if lexer == nil {
		return plainLanguage
	}
	return strings.ToLower(lexer.Config().Name)
}

// highlightCode renders code as ANSI text with the given chroma style.
// Returns the input unchanged when chroma cannot highlight it.
func highlightCode(code, language, style string) string {
	if code == "" {
		return ""
	}
	if language == "" {
		language = plainLanguage
	}
	var buffer strings.Builder
	if err := quick.Highlight(&buffer, code, language, "terminal256", style); err != nil {
		return code
	}
	return strings.TrimRight(buffer.String(), "\n")
}
