// Package help renders the key reference overlay from the console's action
// table.
package help

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/musheet/admin/internal/theme"
)

// Entry is one documented action.
type Entry struct {
	Keys        string
	Description string
	Scope       string
}

// Markdown builds the reference grouped by scope, in first-seen order.
func Markdown(entries []Entry) string {
	var order []string
	groups := make(map[string][]Entry)
	for _, e := range entries {
		if _, ok := groups[e.Scope]; !ok {
			order = append(order, e.Scope)
		}
		groups[e.Scope] = append(groups[e.Scope], e)
	}

	var b strings.Builder
	b.WriteString("# Keys\n")
	for _, scope := range order {
		fmt.Fprintf(&b, "\n## %s\n\n| Key | Action |\n|---|---|\n", scope)
		for _, e := range groups[scope] {
			fmt.Fprintf(&b, "| `%s` | %s |\n", e.Keys, e.Description)
		}
	}
	return b.String()
}

// Model caches the rendered overlay per width.
type Model struct {
	entries  []Entry
	width    int
	rendered string
}

// New creates the overlay for entries.
func New(entries []Entry) Model {
	return Model{entries: entries}
}

// View renders the overlay at width.
func (m *Model) View(width int) string {
	innerW := width - 8
	if innerW < 40 {
		innerW = 40
	}
	if m.rendered == "" || m.width != innerW {
		m.width = innerW
		m.rendered = render(Markdown(m.entries), innerW)
	}
	footer := theme.StyleDimmed.Render("esc:close")
	return theme.Panel(innerW+4).Render(strings.TrimRight(m.rendered, "\n") + "\n\n" + footer)
}

func render(md string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
