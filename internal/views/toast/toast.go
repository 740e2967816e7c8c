// Package toast provides transient success/error/info notifications that
// stack in insertion order and expire on their own.
package toast

import (
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/musheet/admin/internal/theme"
)

// Kind selects the color and icon of a toast.
type Kind int

const (
	Success Kind = iota
	Error
	Info
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "info"
	}
}

const (
	// DefaultDuration is how long a toast stays before it starts leaving.
	DefaultDuration = 4 * time.Second
	// ExitDuration is the slide-out time after which the toast is removed.
	ExitDuration = 300 * time.Millisecond

	fps           = 60
	slideDistance = 12.0
	settled       = 0.05
)

// NotifyMsg asks the notifier to show a toast. Any component may return it
// from a command.
type NotifyMsg struct {
	Kind    Kind
	Title   string
	Message string
}

// Notify returns a command that emits NotifyMsg.
func Notify(kind Kind, title, message string) tea.Cmd {
	return func() tea.Msg {
		return NotifyMsg{Kind: kind, Title: title, Message: message}
	}
}

// Toast is one visible notification.
type Toast struct {
	ID      string
	Kind    Kind
	Title   string
	Message string
	Leaving bool

	offset   float64
	velocity float64
}

type expireMsg struct{ id string }

type removeMsg struct{ id string }

type frameMsg struct{}

// Model holds every visible toast.
type Model struct {
	toasts    []Toast
	duration  time.Duration
	spring    harmonica.Spring
	animating bool
}

// New creates a notifier whose toasts stay for d (DefaultDuration if d <= 0).
func New(d time.Duration) Model {
	if d <= 0 {
		d = DefaultDuration
	}
	return Model{
		duration: d,
		spring:   harmonica.NewSpring(harmonica.FPS(fps), 8.0, 0.7),
	}
}

// Toasts returns the visible toasts, oldest first.
func (m Model) Toasts() []Toast {
	out := make([]Toast, len(m.toasts))
	copy(out, m.toasts)
	return out
}

// Push shows a new toast. Identical toasts are not merged.
func (m *Model) Push(kind Kind, title, message string) tea.Cmd {
	t := Toast{
		ID:      uuid.NewString(),
		Kind:    kind,
		Title:   title,
		Message: message,
		offset:  slideDistance,
	}
	m.toasts = append(m.toasts, t)
	id := t.ID
	return tea.Batch(
		tea.Tick(m.duration, func(time.Time) tea.Msg { return expireMsg{id: id} }),
		m.startFrames(),
	)
}

func (m *Model) startFrames() tea.Cmd {
	if m.animating {
		return nil
	}
	m.animating = true
	return frame()
}

func frame() tea.Cmd {
	return tea.Tick(time.Second/fps, func(time.Time) tea.Msg { return frameMsg{} })
}

// Update handles NotifyMsg and the notifier's internal timers.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case NotifyMsg:
		cmd := m.Push(msg.Kind, msg.Title, msg.Message)
		return m, cmd

	case expireMsg:
		i := m.index(msg.id)
		if i < 0 {
			return m, nil
		}
		m.toasts[i].Leaving = true
		id := msg.id
		return m, tea.Batch(
			tea.Tick(ExitDuration, func(time.Time) tea.Msg { return removeMsg{id: id} }),
			m.startFrames(),
		)

	case removeMsg:
		if i := m.index(msg.id); i >= 0 {
			m.toasts = append(m.toasts[:i:i], m.toasts[i+1:]...)
		}
		return m, nil

	case frameMsg:
		if m.step() {
			return m, frame()
		}
		m.animating = false
		return m, nil
	}
	return m, nil
}

// step advances every spring by one frame and reports whether any is still
// moving.
func (m *Model) step() bool {
	moving := false
	for i := range m.toasts {
		t := &m.toasts[i]
		target := 0.0
		if t.Leaving {
			target = slideDistance
		}
		t.offset, t.velocity = m.spring.Update(t.offset, t.velocity, target)
		if math.Abs(t.offset-target) < settled && math.Abs(t.velocity) < settled {
			t.offset, t.velocity = target, 0
			continue
		}
		moving = true
	}
	return moving
}

func (m Model) index(id string) int {
	for i, t := range m.toasts {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func kindStyle(k Kind) (lipgloss.Color, string) {
	switch k {
	case Success:
		return theme.ColorSuccess, "✓"
	case Error:
		return theme.ColorError, "⚠"
	default:
		return theme.ColorInfo, "ℹ"
	}
}

// View renders the toast stack. It is empty when there is nothing to show.
func (m Model) View(width int) string {
	if len(m.toasts) == 0 {
		return ""
	}
	boxW := width / 3
	if boxW < 28 {
		boxW = 28
	}

	var boxes []string
	for _, t := range m.toasts {
		color, icon := kindStyle(t.Kind)
		title := lipgloss.NewStyle().Bold(true).Foreground(color).Render(icon + " " + t.Title)
		body := lipgloss.NewStyle().Foreground(theme.ColorBright).Width(boxW - 4).Render(t.Message)
		box := lipgloss.NewStyle().
			Width(boxW).
			Padding(0, 1).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(color).
			Render(lipgloss.JoinVertical(lipgloss.Left, title, body))

		pad := int(math.Round(t.offset))
		if pad > 0 {
			box = indent(box, pad)
		}
		boxes = append(boxes, box)
	}
	return lipgloss.JoinVertical(lipgloss.Right, boxes...)
}

func indent(s string, n int) string {
	prefix := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = prefix + lines[i]
	}
	return strings.Join(lines, "\n")
}
