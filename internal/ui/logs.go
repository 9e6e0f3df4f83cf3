package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/snipday/internal/logtail"
)

const logPanelLines = 200

type logLinesMsg struct {
	lines []string
	err   error
}

// refreshLogs tails the client log file in the background.
func (m Model) refreshLogs() tea.Cmd {
	if m.logPath == "" {
		return nil
	}
	path := m.logPath
	return func() tea.Msg {
		lines, err := logtail.Read(path, logPanelLines)
		return logLinesMsg{lines: lines, err: err}
	}
}

func (m *Model) handleLogLines(msg logLinesMsg) {
	m.logErr = msg.err
	if msg.err != nil {
		return
	}
	follow := m.logView.AtBottom() || len(m.logLines) == 0
	m.logLines = msg.lines
	m.logView.SetContent(m.formatLogLines())
	if follow {
		m.logView.GotoBottom()
	}
}

func (m Model) formatLogLines() string {
	styles := m.theme.Styles()
	out := make([]string, 0, len(m.logLines))
	for _, line := range m.logLines {
		out = append(out, styles.LevelStyle(logtail.Level(line)).Render(truncate(line, m.logView.Width)))
	}
	return strings.Join(out, "\n")
}

func (m Model) logPanelHeight() int {
	h := m.bodyHeight() / 3
	if h < 3 {
		h = 3
	}
	return h
}

// renderLogs renders the log panel below the main content.
func (m Model) renderLogs() string {
	styles := m.theme.Styles()
	title := styles.AccentText.Bold(true).Render("Logs")

	var content string
	switch {
	case m.logPath == "":
		content = styles.FaintText.Render("Logging disabled. Start with --log-file to capture logs.")
	case m.logErr != nil:
		content = styles.DangerText.Render("Unable to read " + m.logPath + ": " + m.logErr.Error())
	case len(m.logLines) == 0:
		content = styles.FaintText.Render("No log entries yet.")
	default:
		content = m.logView.View()
	}

	return styles.Panel.Width(m.width - 2).Render(title + "  " + styles.FaintText.Render(truncateMiddle(m.logPath, 60)) + "\n" + content)
}
