// Package members provides the team members overlay and the user picker
// used to add a member.
package members

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/musheet/admin/internal/client"
	"github.com/musheet/admin/internal/format"
	"github.com/musheet/admin/internal/theme"
)

// Source lists team members. *client.API satisfies it.
type Source interface {
	TeamMembers(ctx context.Context, teamID int64) ([]client.TeamMember, error)
}

// LoadedMsg is returned after fetching the members of a team.
type LoadedMsg struct {
	TeamID  int64
	Members []client.TeamMember
	Err     error
}

// Fetch returns the command loading the members of teamID.
func Fetch(ctx context.Context, src Source, teamID int64) tea.Cmd {
	return func() tea.Msg {
		ms, err := src.TeamMembers(ctx, teamID)
		return LoadedMsg{TeamID: teamID, Members: ms, Err: err}
	}
}

// KeyMap holds the navigation bindings shared by the overlay and picker.
type KeyMap struct {
	Up   key.Binding
	Down key.Binding
}

// DefaultKeyMap returns the default navigation bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
	}
}

// Model is the members overlay of one team.
type Model struct {
	TeamID   int64
	TeamName string

	keys    KeyMap
	members []client.TeamMember
	cursor  int
	loading bool
	err     error
}

// New creates the overlay for a team. It starts loading.
func New(teamID int64, teamName string) Model {
	return Model{TeamID: teamID, TeamName: teamName, keys: DefaultKeyMap(), loading: true}
}

// SetLoading marks a reload as in flight.
func (m *Model) SetLoading() { m.loading = true }

// Apply records a load result for this team; results for other teams are
// ignored. It returns the load error, if any.
func (m *Model) Apply(msg LoadedMsg) error {
	if msg.TeamID != m.TeamID {
		return nil
	}
	m.loading = false
	if msg.Err != nil {
		m.err = msg.Err
		return msg.Err
	}
	m.err = nil
	m.members = msg.Members
	if m.cursor >= len(m.members) {
		m.cursor = max(0, len(m.members)-1)
	}
	return nil
}

// Members returns the loaded members.
func (m Model) Members() []client.TeamMember { return m.members }

// Selected returns the highlighted member.
func (m Model) Selected() (client.TeamMember, bool) {
	if m.cursor < 0 || m.cursor >= len(m.members) {
		return client.TeamMember{}, false
	}
	return m.members[m.cursor], true
}

// Update moves the cursor.
func (m Model) Update(msg tea.KeyMsg) Model {
	m.cursor = move(m.keys, msg, m.cursor, len(m.members))
	return m
}

func move(keys KeyMap, msg tea.KeyMsg, cursor, n int) int {
	switch {
	case key.Matches(msg, keys.Down):
		if cursor < n-1 {
			cursor++
		}
	case key.Matches(msg, keys.Up):
		if cursor > 0 {
			cursor--
		}
	}
	return cursor
}

// View renders the overlay.
func (m Model) View(width int) string {
	innerW := width * 2 / 3
	if innerW < 50 {
		innerW = 50
	}
	title := theme.StyleHeader.Render(fmt.Sprintf("%s - Members", m.TeamName))
	help := theme.StyleDimmed.Render("j/k:move  a:add member  x:remove  esc:close")

	var body string
	switch {
	case m.loading && len(m.members) == 0:
		body = theme.StyleDimmed.Render("Loading members...")
	case m.err != nil && len(m.members) == 0:
		body = theme.StyleError.Render("Failed to load team members")
	case len(m.members) == 0:
		body = theme.StyleDimmed.Render("No members in this team")
	default:
		body = m.renderRows()
	}
	return theme.Panel(innerW).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", help))
}

func (m Model) renderRows() string {
	dim := theme.StyleDimmed
	lines := []string{dim.Render(fmt.Sprintf("  %-16s %-16s %-8s %s", "Username", "Display name", "Role", "Joined"))}
	for i, mem := range m.members {
		prefix := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			prefix = "> "
			style = theme.StyleSelected
		}
		display := mem.DisplayName
		if display == "" {
			display = "-"
		}
		lines = append(lines, style.Render(fmt.Sprintf("%s%-16s %-16s %-8s %s",
			prefix, truncate(mem.Username, 16), truncate(display, 16), "Member", format.Date(mem.JoinedAt))))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
