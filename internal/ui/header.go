package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the one-line status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{
		bg.Render("snipday", styles.Logo),
		m.connectionBadge(styles, bg),
	}

	if m.apiBase != "" {
		limit := m.width / 3
		if limit < 16 {
			limit = 16
		}
		parts = append(parts,
			bg.Render("api", styles.FaintText)+bg.Space()+
				bg.Render(truncateMiddle(m.apiBase, limit), styles.MutedText))
	}

	if !m.snapshot.LastUpdated.IsZero() {
		parts = append(parts,
			bg.Render("updated", styles.FaintText)+bg.Space()+
				bg.Render(m.snapshot.LastUpdated.Format("15:04:05"), styles.MutedText))
	}

	if m.width >= 100 {
		parts = append(parts, bg.Render(m.theme.Name, styles.FaintText))
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		Render(styles.Header.Render(bg.Join(parts, "  ")))
}

func (m Model) connectionBadge(styles Styles, bg BgStyle) string {
	snap := m.snapshot
	switch {
	case snap.IsOffline():
		return bg.Render(fmt.Sprintf("● OFFLINE (%d failed polls)", snap.ConsecutiveFailures), styles.DangerText)
	case snap.LastError != nil:
		return bg.Render("● Retrying...", styles.WarningText.Bold(true))
	case snap.Version == 0:
		return bg.Render("Connecting...", styles.WarningText)
	case m.hasSnippet:
		return bg.Render("● LIVE", styles.SuccessText)
	default:
		return bg.Render("● IDLE", styles.MutedText)
	}
}
