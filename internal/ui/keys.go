package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	ToggleLogs key.Binding
	Refresh    key.Binding

	// Form
	NextField key.Binding
	PrevField key.Binding
	Submit    key.Binding
	Confirm   key.Binding

	// Log panel
	Up   key.Binding
	Down key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?", "f1"),
			key.WithHelp("?/f1", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "Cycle theme"),
		),
		ToggleLogs: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "Toggle logs"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "Refresh"),
		),

		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "Submit"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Submit (name/button)"),
		),

		Up: key.NewBinding(
			key.WithKeys("up", "pgup"),
			key.WithHelp("up/pgup", "Scroll logs up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "pgdown"),
			key.WithHelp("down/pgdown", "Scroll logs down"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.NextField, k.Refresh, k.ToggleLogs, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Form
		{k.NextField, k.PrevField, k.Confirm, k.Submit},
		// Logs
		{k.ToggleLogs, k.Up, k.Down},
		// General
		{k.Refresh, k.CycleTheme, k.Help, k.Quit},
	}
}
