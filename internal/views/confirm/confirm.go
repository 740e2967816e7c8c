// Package confirm provides the confirmation dialog that guards destructive
// actions. At most one request is pending; a new request replaces it.
package confirm

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/musheet/admin/internal/theme"
	"github.com/musheet/admin/internal/views/toast"
)

// Action is the guarded operation. The returned message, if any, is
// delivered to the program once the action succeeds.
type Action func(ctx context.Context) (tea.Msg, error)

// Request describes one confirmation.
type Request struct {
	Title        string
	Message      string
	ConfirmLabel string
	// Variant is one of theme.VariantDanger (default), VariantSuccess or
	// VariantPrimary.
	Variant   string
	OnConfirm Action
	// FailureText is shown when the action fails with an empty message.
	FailureText string
}

// KeyMap holds the dialog bindings.
type KeyMap struct {
	Accept  key.Binding
	Decline key.Binding
}

// DefaultKeyMap returns the default dialog bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Accept: key.NewBinding(
			key.WithKeys("y", "enter"),
			key.WithHelp("y/enter", "confirm"),
		),
		Decline: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n/esc", "cancel"),
		),
	}
}

// Gate holds the pending request, if any.
type Gate struct {
	keys    KeyMap
	pending *Request
}

// New creates an idle gate.
func New() Gate {
	return Gate{keys: DefaultKeyMap()}
}

// Request shows r, discarding any request still pending.
func (g *Gate) Request(r Request) {
	g.pending = &r
}

// Active reports whether a request is awaiting an answer.
func (g Gate) Active() bool { return g.pending != nil }

// Pending returns the request awaiting an answer.
func (g Gate) Pending() (Request, bool) {
	if g.pending == nil {
		return Request{}, false
	}
	return *g.pending, true
}

// Decline dismisses the pending request without running it.
func (g *Gate) Decline() {
	g.pending = nil
}

// Accept dismisses the pending request and returns a command running its
// action. Errors and panics inside the action come back as an error toast.
func (g *Gate) Accept(ctx context.Context) tea.Cmd {
	if g.pending == nil {
		return nil
	}
	r := *g.pending
	g.pending = nil
	if r.OnConfirm == nil {
		return nil
	}
	return func() tea.Msg {
		return run(ctx, r)
	}
}

func run(ctx context.Context, r Request) (msg tea.Msg) {
	defer func() {
		if p := recover(); p != nil {
			msg = failure(r, fmt.Errorf("%v", p))
		}
	}()
	out, err := r.OnConfirm(ctx)
	if err != nil {
		return failure(r, err)
	}
	return out
}

func failure(r Request, err error) toast.NotifyMsg {
	text := err.Error()
	if text == "" {
		text = r.FailureText
	}
	if text == "" {
		text = r.Title + " failed"
	}
	return toast.NotifyMsg{Kind: toast.Error, Title: "Error", Message: text}
}

// Update answers the pending request from a key press.
func (g *Gate) Update(ctx context.Context, msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, g.keys.Accept):
		return g.Accept(ctx)
	case key.Matches(msg, g.keys.Decline):
		g.Decline()
	}
	return nil
}

// View renders the dialog, or nothing when idle.
func (g Gate) View(width int) string {
	if g.pending == nil {
		return ""
	}
	r := g.pending
	innerW := width / 2
	if innerW < 40 {
		innerW = 40
	}
	label := r.ConfirmLabel
	if label == "" {
		label = "Confirm"
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(theme.VariantColor(r.Variant)).Render(r.Title)
	body := lipgloss.NewStyle().Width(innerW - 4).Render(r.Message)
	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		theme.Button(label, r.Variant), "  ", theme.StyleDimmed.Render("[n] Cancel"))
	help := theme.StyleDimmed.Render("y/enter:confirm  n/esc:cancel")

	content := lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", buttons, "", help)
	return theme.Panel(innerW).Render(content)
}
