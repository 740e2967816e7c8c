// Package list renders a paginated table backed by a pager.Controller.
package list

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/musheet/admin/internal/pager"
	"github.com/musheet/admin/internal/theme"
)

// Column is a table column whose width is a share of the available space.
type Column struct {
	Title string
	// Weight is the relative width; 0 means 1.
	Weight int
	// Min is the minimum width in cells.
	Min int
}

// RowFunc renders one item as table cells.
type RowFunc[T any] func(item T) []string

// Model is a paginated table.
type Model[T any] struct {
	ctrl    *pager.Controller[T]
	columns []Column
	row     RowFunc[T]
	table   table.Model
	spin    spinner.Model
	empty   string
	width   int
	height  int
}

// New creates a list over ctrl. empty is shown when a page has no items.
func New[T any](ctrl *pager.Controller[T], columns []Column, row RowFunc[T], empty string) Model[T] {
	t := table.New(table.WithFocused(true), table.WithHeight(10))
	st := table.DefaultStyles()
	st.Header = st.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.ColorBorder).
		BorderBottom(true).
		Bold(true)
	st.Selected = st.Selected.
		Foreground(theme.ColorBright).
		Background(theme.ColorPrimary).
		Bold(false)
	t.SetStyles(st)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(theme.ColorAccent)

	m := Model[T]{ctrl: ctrl, columns: columns, row: row, table: t, spin: s, empty: empty}
	m.SetSize(80, 16)
	return m
}

// Controller returns the backing controller.
func (m Model[T]) Controller() *pager.Controller[T] { return m.ctrl }

// SetSize lays the table out in width x height cells.
func (m *Model[T]) SetSize(width, height int) {
	m.width, m.height = width, height
	m.table.SetColumns(layout(m.columns, width-2))
	h := height - 4
	if h < 3 {
		h = 3
	}
	m.table.SetHeight(h)
}

func layout(cols []Column, width int) []table.Column {
	total := 0
	for _, c := range cols {
		total += weight(c)
	}
	// Each cell carries one cell of padding on both sides.
	avail := width - 2*len(cols)
	out := make([]table.Column, len(cols))
	for i, c := range cols {
		w := 0
		if total > 0 {
			w = avail * weight(c) / total
		}
		if w < c.Min {
			w = c.Min
		}
		out[i] = table.Column{Title: c.Title, Width: w}
	}
	return out
}

func weight(c Column) int {
	if c.Weight <= 0 {
		return 1
	}
	return c.Weight
}

// Load starts loading page and the spinner.
func (m Model[T]) Load(ctx context.Context, page int) tea.Cmd {
	return tea.Batch(m.ctrl.Load(ctx, page), m.spin.Tick)
}

// Reload reloads the current page.
func (m Model[T]) Reload(ctx context.Context) tea.Cmd {
	return m.Load(ctx, m.ctrl.State().PageIndex)
}

// Next loads the next page when there is one.
func (m Model[T]) Next(ctx context.Context) tea.Cmd {
	cmd := m.ctrl.Next(ctx)
	if cmd == nil {
		return nil
	}
	return tea.Batch(cmd, m.spin.Tick)
}

// Prev loads the previous page unless on the first.
func (m Model[T]) Prev(ctx context.Context) tea.Cmd {
	cmd := m.ctrl.Prev(ctx)
	if cmd == nil {
		return nil
	}
	return tea.Batch(cmd, m.spin.Tick)
}

// Selected returns the highlighted item.
func (m Model[T]) Selected() (T, bool) {
	var zero T
	items := m.ctrl.State().Items
	i := m.table.Cursor()
	if i < 0 || i >= len(items) {
		return zero, false
	}
	return items[i], true
}

// Update applies load results for this list and forwards keys and spinner
// ticks. Results for other lists are ignored. The returned error is the
// load failure, if this message carried one.
func (m Model[T]) Update(msg tea.Msg) (Model[T], tea.Cmd, error) {
	switch msg := msg.(type) {
	case pager.Result[T]:
		if msg.View != m.ctrl.View() {
			return m, nil, nil
		}
		if err := m.ctrl.Apply(msg); err != nil {
			if errors.Is(err, pager.ErrStale) {
				return m, nil, nil
			}
			return m, nil, err
		}
		m.refreshRows()
		return m, nil, nil

	case spinner.TickMsg:
		if !m.ctrl.Loading() {
			return m, nil, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd, nil

	case tea.KeyMsg:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd, nil
	}
	return m, nil, nil
}

func (m *Model[T]) refreshRows() {
	items := m.ctrl.State().Items
	rows := make([]table.Row, len(items))
	for i, it := range items {
		rows[i] = table.Row(m.row(it))
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(0)
	}
}

// View renders the table with its pagination footer.
func (m Model[T]) View() string {
	st := m.ctrl.State()
	var body string
	switch {
	case m.ctrl.Loading() && len(st.Items) == 0:
		body = m.spin.View() + " Loading..."
	case len(st.Items) == 0 && m.ctrl.Err() != nil:
		body = theme.StyleError.Render(m.ctrl.Err().Error())
	case len(st.Items) == 0:
		body = theme.StyleDimmed.Render(m.empty)
	default:
		body = m.table.View()
	}

	footer := ""
	if m.ctrl.ShowPagination() {
		prev := theme.StyleDimmed.Render("[ Prev")
		if st.PageIndex > 0 {
			prev = "[ Prev"
		}
		next := theme.StyleDimmed.Render("Next ]")
		if st.HasMore {
			next = "Next ]"
		}
		footer = fmt.Sprintf("%s  Page %d  %s", prev, st.PageIndex+1, next)
	}
	if m.ctrl.Loading() && len(st.Items) > 0 {
		footer += "  " + m.spin.View()
	}
	if footer == "" {
		return body
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, footer)
}
