// Package debug provides a scrollable overlay listing recent RPC calls and
// console events.
package debug

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/musheet/admin/internal/rpc"
	"github.com/musheet/admin/internal/theme"
)

const maxEntries = 200

// Kind tags an entry.
type Kind string

const (
	KindRPC  Kind = "rpc"
	KindErr  Kind = "err"
	KindNav  Kind = "nav"
	KindAuth Kind = "auth"
)

func (k Kind) color() lipgloss.Color {
	switch k {
	case KindRPC:
		return theme.ColorInfo
	case KindErr:
		return theme.ColorError
	case KindNav:
		return theme.ColorPrimary
	case KindAuth:
		return theme.ColorWarning
	}
	return theme.ColorDimmed
}

// Entry is one line of the log.
type Entry struct {
	At   time.Time
	Kind Kind
	Text string
}

// Stats summarizes the calls recorded since start.
type Stats struct {
	Calls    int
	Failures int
	Total    time.Duration
}

// Average is the mean call duration.
func (s Stats) Average() time.Duration {
	if s.Calls == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Calls)
}

// Model is the bounded event log behind the overlay.
type Model struct {
	entries []Entry
	// back is how many lines the view is scrolled up from the newest.
	back       int
	errorsOnly bool
	stats      Stats
	now        func() time.Time
}

// New creates an empty log.
func New() Model {
	return Model{now: time.Now}
}

// Add appends an entry, dropping the oldest beyond the cap. The view jumps
// back to the newest line.
func (m *Model) Add(kind Kind, text string) {
	if m.now == nil {
		m.now = time.Now
	}
	m.entries = append(m.entries, Entry{At: m.now(), Kind: kind, Text: text})
	if over := len(m.entries) - maxEntries; over > 0 {
		m.entries = append(m.entries[:0:0], m.entries[over:]...)
	}
	m.back = 0
}

// Record logs a finished call and folds it into the stats.
func (m *Model) Record(c rpc.Call) {
	m.stats.Calls++
	m.stats.Total += c.Duration
	took := c.Duration.Round(time.Millisecond)
	if !c.Outcome.OK() {
		m.stats.Failures++
		m.Add(KindErr, fmt.Sprintf("%s.%s failed in %s: %s", c.Endpoint, c.Method, took, c.Outcome.Message()))
		return
	}
	m.Add(KindRPC, fmt.Sprintf("%s.%s ok in %s", c.Endpoint, c.Method, took))
}

// Stats returns the call summary.
func (m Model) Stats() Stats { return m.stats }

// ToggleErrors switches between all entries and failures only.
func (m *Model) ToggleErrors() {
	m.errorsOnly = !m.errorsOnly
	m.back = 0
}

// Visible returns the entries passing the current filter, oldest first.
func (m Model) Visible() []Entry {
	if !m.errorsOnly {
		return m.entries
	}
	var out []Entry
	for _, e := range m.entries {
		if e.Kind == KindErr {
			out = append(out, e)
		}
	}
	return out
}

// ScrollUp moves towards older entries, at most to the first one.
func (m *Model) ScrollUp(n int) {
	m.back = min(m.back+n, max(len(m.Visible())-1, 0))
}

// ScrollDown moves towards the newest entry.
func (m *Model) ScrollDown(n int) {
	m.back = max(m.back-n, 0)
}

// View renders the log as an overlay panel.
func (m Model) View(width, height int) string {
	innerW := max(width-4, 20)
	rows := max(height-7, 3)

	title := theme.StyleHeader.Render(" DEBUG LOG ")
	summary := theme.StyleDimmed.Render(fmt.Sprintf("%d calls, %d failed, avg %s",
		m.stats.Calls, m.stats.Failures, m.stats.Average().Round(time.Millisecond)))
	filter := "all"
	if m.errorsOnly {
		filter = "errors"
	}
	help := theme.StyleDimmed.Render(fmt.Sprintf("j/k:scroll  e:%s  esc:close", filter))

	vis := m.Visible()
	if len(vis) == 0 {
		body := theme.StyleDimmed.Render("  No events recorded yet.")
		return theme.Panel(innerW).Render(lipgloss.JoinVertical(lipgloss.Left, title, summary, "", body, "", help))
	}

	end := len(vis) - m.back
	start := max(end-rows, 0)
	textW := innerW - 22
	lines := make([]string, 0, end-start)
	for _, e := range vis[start:end] {
		text := e.Text
		if textW > 3 && len(text) > textW {
			text = text[:textW-3] + "..."
		}
		lines = append(lines, theme.StyleDimmed.Render(e.At.Format("15:04:05.000"))+" "+
			lipgloss.NewStyle().Foreground(e.Kind.color()).Width(5).Render(string(e.Kind))+text)
	}

	more := ""
	if m.back > 0 {
		more = theme.StyleDimmed.Render(fmt.Sprintf(" ↓ %d newer", m.back))
	}
	return theme.Panel(innerW).Render(lipgloss.JoinVertical(lipgloss.Left,
		title, summary, strings.Join(lines, "\n"), more, help))
}
