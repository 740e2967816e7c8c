package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/musheet/admin/internal/avatar"
	"github.com/musheet/admin/internal/theme"
)

// Model holds the status bar state.
type Model struct {
	ServerURL   string
	DisplayName string
	Avatar      *avatar.Resource
	Sections    []string
	Active      int
	InFlight    int
	Width       int
}

// New creates a status bar model.
func New(serverURL string, sections ...string) Model {
	return Model{ServerURL: serverURL, Sections: sections}
}

// SetAvatar replaces the avatar and releases the one it supersedes.
func (m *Model) SetAvatar(r *avatar.Resource) {
	if m.Avatar != nil && m.Avatar != r {
		_ = m.Avatar.Release()
	}
	m.Avatar = r
}

// identity renders the admin badge: the initials, marked when a real
// avatar image has been resolved.
func (m Model) identity() string {
	if m.DisplayName == "" {
		return theme.StyleDimmed.Render("not signed in")
	}
	badge := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorBright).
		Background(theme.ColorPrimary).
		Padding(0, 1).
		Render(avatar.Initials(m.DisplayName))
	if m.Avatar != nil {
		badge += lipgloss.NewStyle().Foreground(theme.ColorAccent).Render("◉")
	}
	return badge + " " + m.DisplayName
}

// View renders the status bar.
func (m Model) View() string {
	width := m.Width
	if width < 40 {
		width = 40
	}

	var tabs []string
	for i, s := range m.Sections {
		label := fmt.Sprintf("%d:%s", i+1, s)
		if i == m.Active {
			tabs = append(tabs, lipgloss.NewStyle().Bold(true).Foreground(theme.ColorPrimary).Render("["+label+"]"))
		} else {
			tabs = append(tabs, theme.StyleDimmed.Render(" "+label+" "))
		}
	}

	var connStr string
	if m.InFlight > 0 {
		connStr = lipgloss.NewStyle().Foreground(theme.ColorWarning).Render("● " + m.ServerURL)
	} else {
		connStr = lipgloss.NewStyle().Foreground(theme.ColorHealthy).Render("● " + m.ServerURL)
	}

	sep := lipgloss.NewStyle().Foreground(theme.ColorBorder).Render(" | ")
	content := m.identity() + sep + connStr
	if len(tabs) > 0 {
		content += sep + strings.Join(tabs, "")
	}

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(theme.ColorBorder).
		Render(content)
}
