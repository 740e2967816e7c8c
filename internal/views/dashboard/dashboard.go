// Package dashboard provides the stats summary row and per-team table of
// the console's landing section.
package dashboard

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/musheet/admin/internal/client"
	"github.com/musheet/admin/internal/format"
	"github.com/musheet/admin/internal/theme"
)

// StatsLoadedMsg is returned after fetching stats from the backend.
type StatsLoadedMsg struct {
	Stats *client.DashboardStats
	Err   error
}

// StatsSource fetches dashboard numbers. *client.API satisfies it.
type StatsSource interface {
	DashboardStats(ctx context.Context) (*client.DashboardStats, error)
}

// Fetch returns the command loading the stats.
func Fetch(ctx context.Context, src StatsSource) tea.Cmd {
	return func() tea.Msg {
		st, err := src.DashboardStats(ctx)
		return StatsLoadedMsg{Stats: st, Err: err}
	}
}

// Model holds the dashboard state.
type Model struct {
	Width   int
	stats   *client.DashboardStats
	loading bool
	err     error
}

// New creates a dashboard model.
func New() Model {
	return Model{}
}

// SetLoading marks a fetch as in flight.
func (m *Model) SetLoading() { m.loading = true }

// Apply records a fetch result. A failed fetch keeps the last stats.
func (m *Model) Apply(msg StatsLoadedMsg) {
	m.loading = false
	if msg.Err != nil {
		m.err = msg.Err
		return
	}
	m.err = nil
	m.stats = msg.Stats
}

// Stats returns the last loaded stats, if any.
func (m Model) Stats() *client.DashboardStats { return m.stats }

// View renders the full dashboard: stats row + teams table.
func (m Model) View() string {
	width := m.Width
	if width < 40 {
		width = 40
	}
	if m.stats == nil {
		switch {
		case m.err != nil:
			return theme.StyleError.Render("  Failed to load dashboard data: " + m.err.Error())
		default:
			return theme.StyleDimmed.Render("  Loading dashboard...")
		}
	}

	sections := []string{
		m.renderStatsRow(width),
		m.renderTeams(width),
	}
	if m.err != nil {
		sections = append(sections, theme.StyleError.Render("  "+m.err.Error()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderStatsRow shows aggregate counts in a single row.
func (m Model) renderStatsRow(width int) string {
	st := m.stats
	statStyle := lipgloss.NewStyle().Padding(0, 1)

	stats := []string{
		statStyle.Foreground(theme.ColorBright).Render(
			fmt.Sprintf("Users: %d", st.TotalMembers)),
		statStyle.Foreground(theme.ColorHealthy).Render(
			fmt.Sprintf("Active (7d): %d", st.ActiveMembers7d)),
		statStyle.Foreground(theme.ColorPrimary).Render(
			fmt.Sprintf("Teams: %d", st.TotalTeams)),
		statStyle.Foreground(theme.ColorAccent).Render(
			fmt.Sprintf("Scores: %d", st.TotalScores)),
		statStyle.Foreground(theme.ColorWarning).Render(
			fmt.Sprintf("Storage: %s", format.Bytes(st.TotalStorageUsed))),
	}

	content := strings.Join(stats, lipgloss.NewStyle().Foreground(theme.ColorBorder).Render(" | "))

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.ColorBorder).
		Render(content)
}

// renderTeams renders the per-team member and shared-score counts.
func (m Model) renderTeams(width int) string {
	header := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorBright).
		Render("  Teams")
	if m.loading {
		header += theme.StyleDimmed.Render("  refreshing...")
	}

	if len(m.stats.Teams) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			header,
			theme.StyleDimmed.Render("  No teams yet"),
		)
	}

	colName := 32
	colMembers := 10
	colScores := 14

	dimStyle := lipgloss.NewStyle().Foreground(theme.ColorDimmed)
	brightStyle := lipgloss.NewStyle().Foreground(theme.ColorBright).Bold(true)

	tableHeader := fmt.Sprintf("  %-*s %*s %*s",
		colName, "Name",
		colMembers, "Members",
		colScores, "Shared scores",
	)
	lines := []string{
		header,
		dimStyle.Render(tableHeader),
		dimStyle.Render("  " + strings.Repeat("─", min(width-4, colName+colMembers+colScores+2))),
	}

	for _, t := range m.stats.Teams {
		name := t.Name
		if len([]rune(name)) > colName-1 {
			name = string([]rune(name)[:colName-2]) + "…"
		}
		nameStr := lipgloss.NewStyle().Foreground(theme.ColorBright).Width(colName).Render(name)
		memStr := brightStyle.Width(colMembers).Align(lipgloss.Right).
			Render(fmt.Sprintf("%d", t.MemberCount))
		scoreStr := dimStyle.Width(colScores).Align(lipgloss.Right).
			Render(fmt.Sprintf("%d", t.SharedScores))
		lines = append(lines, fmt.Sprintf("  %s %s %s", nameStr, memStr, scoreStr))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
