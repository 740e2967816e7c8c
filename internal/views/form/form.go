// Package form provides the small modal forms of the console: login,
// signup, create user and create team.
package form

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/musheet/admin/internal/theme"
)

// Field describes one input.
type Field struct {
	Key         string
	Label       string
	Placeholder string
	Secret      bool
	// Toggle makes the field a checkbox; its value is "true" or "".
	Toggle   bool
	Required bool
}

// Values maps field keys to their entered text.
type Values map[string]string

// Bool reports whether a toggle field is checked.
func (v Values) Bool(key string) bool { return v[key] == "true" }

// SubmitMsg is emitted when the form is submitted with all required fields.
type SubmitMsg struct {
	ID     string
	Values Values
}

// CancelMsg is emitted when the form is dismissed.
type CancelMsg struct {
	ID string
}

// KeyMap holds the form bindings.
type KeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Toggle key.Binding
	Submit key.Binding
	Cancel key.Binding
}

// DefaultKeyMap returns the default form bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "prev field"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// Model is a form.
type Model struct {
	ID    string
	Title string
	// Hint is shown under the title, e.g. the first-run notice.
	Hint string
	// Err is the inline error, cleared on the next submit.
	Err string
	// Busy disables input while the submission is in flight.
	Busy bool

	fields  []Field
	inputs  []textinput.Model
	toggles []bool
	focus   int
	keys    KeyMap
	// Cancelable is false for the login screen, where esc does nothing.
	Cancelable bool
}

// New creates a form with the given fields; the first one is focused.
func New(id, title string, fields ...Field) Model {
	m := Model{
		ID:         id,
		Title:      title,
		fields:     fields,
		inputs:     make([]textinput.Model, len(fields)),
		toggles:    make([]bool, len(fields)),
		keys:       DefaultKeyMap(),
		Cancelable: true,
	}
	for i, f := range fields {
		ti := textinput.New()
		ti.Placeholder = f.Placeholder
		ti.Prompt = ""
		ti.CharLimit = 128
		if f.Secret {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		m.inputs[i] = ti
	}
	m.setFocus(0)
	return m
}

func (m *Model) setFocus(i int) {
	if len(m.fields) == 0 {
		return
	}
	m.focus = (i + len(m.fields)) % len(m.fields)
	for j := range m.inputs {
		if j == m.focus && !m.fields[j].Toggle {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
}

// Focused returns the key of the focused field.
func (m Model) Focused() string {
	if len(m.fields) == 0 {
		return ""
	}
	return m.fields[m.focus].Key
}

// Values returns the current values, text trimmed except for secrets.
func (m Model) Values() Values {
	v := make(Values, len(m.fields))
	for i, f := range m.fields {
		switch {
		case f.Toggle:
			if m.toggles[i] {
				v[f.Key] = "true"
			} else {
				v[f.Key] = ""
			}
		case f.Secret:
			v[f.Key] = m.inputs[i].Value()
		default:
			v[f.Key] = strings.TrimSpace(m.inputs[i].Value())
		}
	}
	return v
}

// SetValue fills a text field or checks a toggle ("true").
func (m *Model) SetValue(key, value string) {
	for i, f := range m.fields {
		if f.Key != key {
			continue
		}
		if f.Toggle {
			m.toggles[i] = value == "true"
		} else {
			m.inputs[i].SetValue(value)
		}
	}
}

// Reset clears every field, the error and the busy flag.
func (m *Model) Reset() {
	for i := range m.fields {
		m.inputs[i].SetValue("")
		m.toggles[i] = false
	}
	m.Err = ""
	m.Busy = false
	m.setFocus(0)
}

// Update handles key input.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if len(m.inputs) == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	if m.Busy {
		return m, nil
	}

	switch {
	case key.Matches(kmsg, m.keys.Cancel):
		if !m.Cancelable {
			return m, nil
		}
		id := m.ID
		return m, func() tea.Msg { return CancelMsg{ID: id} }
	case key.Matches(kmsg, m.keys.Next):
		m.setFocus(m.focus + 1)
		return m, nil
	case key.Matches(kmsg, m.keys.Prev):
		m.setFocus(m.focus - 1)
		return m, nil
	case key.Matches(kmsg, m.keys.Submit):
		return m.submit()
	}

	if len(m.fields) == 0 {
		return m, nil
	}
	if m.fields[m.focus].Toggle {
		if key.Matches(kmsg, m.keys.Toggle) {
			m.toggles[m.focus] = !m.toggles[m.focus]
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(kmsg)
	return m, cmd
}

func (m Model) submit() (Model, tea.Cmd) {
	vals := m.Values()
	for i, f := range m.fields {
		if f.Required && vals[f.Key] == "" {
			m.Err = f.Label + " is required"
			m.setFocus(i)
			return m, nil
		}
	}
	m.Err = ""
	m.Busy = true
	id := m.ID
	return m, func() tea.Msg { return SubmitMsg{ID: id, Values: vals} }
}

// View renders the form.
func (m Model) View(width int) string {
	innerW := width / 2
	if innerW < 44 {
		innerW = 44
	}

	lines := []string{theme.StyleHeader.Render(m.Title)}
	if m.Hint != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.ColorInfo).Width(innerW-4).Render(m.Hint))
	}
	lines = append(lines, "")

	for i, f := range m.fields {
		marker := "  "
		if i == m.focus {
			marker = lipgloss.NewStyle().Foreground(theme.ColorPrimary).Render("> ")
		}
		if f.Toggle {
			box := "[ ]"
			if m.toggles[i] {
				box = "[x]"
			}
			lines = append(lines, marker+box+" "+f.Label)
			continue
		}
		label := f.Label
		if f.Required {
			label += " *"
		}
		lines = append(lines, marker+theme.StyleDimmed.Render(label))
		lines = append(lines, "  "+m.inputs[i].View())
	}

	lines = append(lines, "")
	if m.Err != "" {
		lines = append(lines, theme.StyleError.Width(innerW-4).Render(m.Err))
	}
	if m.Busy {
		lines = append(lines, theme.StyleDimmed.Render("Working..."))
	}
	help := "tab:next  enter:submit"
	if m.Cancelable {
		help += "  esc:cancel"
	}
	lines = append(lines, theme.StyleDimmed.Render(help))

	return theme.Panel(innerW).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
