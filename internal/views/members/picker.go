package members

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/musheet/admin/internal/client"
	"github.com/musheet/admin/internal/theme"
)

// PickerLimit is how many users the picker offers.
const PickerLimit = 1000

// UserSource lists users. *client.API satisfies it.
type UserSource interface {
	Users(ctx context.Context, page, pageSize int) ([]client.User, error)
}

// CandidatesMsg is returned after fetching the users to pick from.
type CandidatesMsg struct {
	TeamID int64
	Users  []client.User
	Err    error
}

// FetchCandidates returns the command loading the first PickerLimit users.
func FetchCandidates(ctx context.Context, src UserSource, teamID int64) tea.Cmd {
	return func() tea.Msg {
		us, err := src.Users(ctx, 0, PickerLimit)
		return CandidatesMsg{TeamID: teamID, Users: us, Err: err}
	}
}

// PickedMsg is emitted when a user is chosen.
type PickedMsg struct {
	TeamID int64
	User   client.User
}

// Picker selects a user to add to a team.
type Picker struct {
	TeamID   int64
	TeamName string
	// Err is the inline error line.
	Err string

	keys   KeyMap
	pick   key.Binding
	users  []client.User
	cursor int
	ready  bool
}

// NewPicker creates a picker for the team.
func NewPicker(teamID int64, teamName string) Picker {
	return Picker{
		TeamID:   teamID,
		TeamName: teamName,
		keys:     DefaultKeyMap(),
		pick: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "add"),
		),
	}
}

// Apply records the candidate list.
func (p *Picker) Apply(msg CandidatesMsg) error {
	if msg.TeamID != p.TeamID {
		return nil
	}
	if msg.Err != nil {
		return msg.Err
	}
	p.users = msg.Users
	p.cursor = 0
	p.ready = true
	return nil
}

// Ready reports whether the candidates have been loaded.
func (p Picker) Ready() bool { return p.ready }

// Update moves the cursor or picks the highlighted user.
func (p Picker) Update(msg tea.KeyMsg) (Picker, tea.Cmd) {
	if key.Matches(msg, p.pick) {
		if p.cursor >= len(p.users) {
			p.Err = "Please select a user"
			return p, nil
		}
		picked := PickedMsg{TeamID: p.TeamID, User: p.users[p.cursor]}
		p.Err = ""
		return p, func() tea.Msg { return picked }
	}
	p.cursor = move(p.keys, msg, p.cursor, len(p.users))
	return p, nil
}

// Label is the picker's text for a user.
func Label(u client.User) string {
	name := u.DisplayName
	if name == "" {
		name = "No name"
	}
	return fmt.Sprintf("%s (%s)", u.Username, name)
}

// View renders at most visible rows around the cursor.
func (p Picker) View(width, visible int) string {
	innerW := width / 2
	if innerW < 44 {
		innerW = 44
	}
	if visible < 3 {
		visible = 3
	}
	title := theme.StyleHeader.Render("Add member to " + p.TeamName)
	help := theme.StyleDimmed.Render("j/k:move  enter:add  esc:cancel")

	var body string
	switch {
	case !p.ready:
		body = theme.StyleDimmed.Render("Loading users...")
	case len(p.users) == 0:
		body = theme.StyleDimmed.Render("-- No users --")
	default:
		start := p.cursor - visible + 1
		if start < 0 {
			start = 0
		}
		end := min(len(p.users), start+visible)
		var lines []string
		for i := start; i < end; i++ {
			line := "  " + Label(p.users[i])
			if i == p.cursor {
				line = theme.StyleSelected.Render("> " + Label(p.users[i]))
			}
			lines = append(lines, line)
		}
		body = lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	parts := []string{title, "", body, ""}
	if p.Err != "" {
		parts = append(parts, theme.StyleError.Render(p.Err))
	}
	parts = append(parts, help)
	return theme.Panel(innerW).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
