package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const appTitle = "Code Snippet of the Day"

// renderMain renders header, body and footer.
func (m Model) renderMain() string {
	parts := []string{m.renderHeader()}

	body := m.renderBody()
	if m.showLogs {
		body = lipgloss.JoinVertical(lipgloss.Left, body, m.renderLogs())
	}
	parts = append(parts,
		lipgloss.NewStyle().
			Width(m.width).
			Height(m.bodyHeight()).
			MaxHeight(m.bodyHeight()).
			Render(body),
		m.renderFooter(),
	)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// bodyHeight is the space between header and footer.
func (m Model) bodyHeight() int {
	h := m.height - 2
	if h < 1 {
		return 1
	}
	return h
}

func (m Model) renderBody() string {
	styles := m.theme.Styles()

	var sections []string
	sections = append(sections, styles.Title.Render(appTitle), "")

	if m.hasSnippet {
		sections = append(sections, m.renderSnippet(styles), "")
	}

	switch m.Phase() {
	case PhaseShowingCountdown:
		sections = append(sections, styles.WarningText.Bold(true).Render(m.countdown.View()))
	case PhaseAwaitingSubmission, PhaseNoSnippet:
		if m.timeUp {
			sections = append(sections, styles.WarningText.Render(m.countdown.View()), "")
		}
		sections = append(sections, m.renderForm(styles))
	}

	if m.errMsg != "" {
		sections = append(sections, "", styles.DangerText.Render(m.errMsg))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(sections, "\n"))
}

func (m Model) renderSnippet(styles Styles) string {
	language := detectLanguage(m.current.Code)
	code := highlightCode(m.current.Code, language, m.theme.CodeStyle)

	title := styles.Text.Bold(true).Render(m.current.Title())
	lang := styles.FaintText.Render(language)
	return lipgloss.JoinVertical(lipgloss.Left,
		title+"  "+lang,
		styles.Panel.Render(code),
	)
}

func (m Model) renderForm(styles Styles) string {
	nameStyle := ternaryStyle(m.focus == fieldName, styles.FocusedPanel, styles.Panel)
	codeStyle := ternaryStyle(m.focus == fieldCode, styles.FocusedPanel, styles.Panel)

	button := ternaryStyle(m.focus == fieldSubmit, styles.FocusedButton, styles.Button).
		Render(ternary(m.submitting, "Submitting...", "Submit"))

	return lipgloss.JoinVertical(lipgloss.Left,
		nameStyle.Render(m.name.View()),
		codeStyle.Render(m.code.View()),
		button,
	)
}

func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	return styles.Footer.Width(m.width).Render(m.help.ShortHelpView(m.keys.ShortHelp()))
}

func ternaryStyle(cond bool, a, b lipgloss.Style) lipgloss.Style {
	if cond {
		return a
	}
	return b
}
