package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/snipday/internal/snippet"
)

const (
	nameCharLimit   = 64
	codeCharLimit   = 500
	codeInputHeight = 8
)

// formField is the focused element of the submission form.
type formField int

const (
	fieldName formField = iota
	fieldCode
	fieldSubmit
	fieldCount
)

func newNameInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Your Name"
	ti.Prompt = "Name: "
	ti.CharLimit = nameCharLimit
	return ti
}

func newCodeInput() textarea.Model {
	ta := textarea.New()
	ta.Placeholder = "Your Code"
	ta.ShowLineNumbers = true
	ta.CharLimit = codeCharLimit
	ta.SetHeight(codeInputHeight)
	return ta
}

// typing reports whether keystrokes currently go into a text field.
func (m Model) typing() bool {
	return m.formVisible() && m.focus != fieldSubmit
}

// applyFocus focuses the selected field and blurs the others.
func (m *Model) applyFocus() tea.Cmd {
	m.name.Blur()
	m.code.Blur()
	switch m.focus {
	case fieldName:
		return m.name.Focus()
	case fieldCode:
		return m.code.Focus()
	}
	return nil
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.NextField):
		m.focus = (m.focus + 1) % fieldCount
		cmd := m.applyFocus()
		return m, cmd

	case key.Matches(msg, m.keys.PrevField):
		m.focus = (m.focus + fieldCount - 1) % fieldCount
		cmd := m.applyFocus()
		return m, cmd

	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.Confirm) && m.focus != fieldCode:
		return m.submit()
	}

	return m.updateFocused(msg)
}

// updateFocused forwards msg to the focused input.
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !m.formVisible() {
		return m, nil
	}
	var cmd tea.Cmd
	switch m.focus {
	case fieldName:
		m.name, cmd = m.name.Update(msg)
	case fieldCode:
		m.code, cmd = m.code.Update(msg)
	}
	return m, cmd
}

// submit posts the form contents. A submission already in flight blocks
// another one.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.submitting || !m.formVisible() {
		return m, nil
	}
	m.submitting = true
	sub := snippet.Submission{
		Name: m.name.Value(),
		Code: m.code.Value(),
	}
	return m, submitCmd(m.ctx, m.api, m.refresher, m.store, sub)
}
