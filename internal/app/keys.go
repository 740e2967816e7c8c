package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard bindings for the console.
type KeyMap struct {
	Quit       key.Binding
	ForceQuit  key.Binding
	Help       key.Binding
	Debug      key.Binding
	Refresh    key.Binding
	Logout     key.Binding
	Dashboard  key.Binding
	Users      key.Binding
	Teams      key.Binding
	NextPage   key.Binding
	PrevPage   key.Binding
	Create     key.Binding
	Toggle     key.Binding
	Role       key.Binding
	Reset      key.Binding
	Delete     key.Binding
	Members    key.Binding
	AddMember  key.Binding
	Escape     key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	SwitchAuth key.Binding
	ErrorsOnly key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Debug: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "debug log"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Logout: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "log out"),
		),
		Dashboard: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "dashboard"),
		),
		Users: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "users"),
		),
		Teams: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "teams"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("n", "right"),
			key.WithHelp("n/→", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("p", "left"),
			key.WithHelp("p/←", "prev page"),
		),
		Create: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "create"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "activate / deactivate"),
		),
		Role: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "promote / demote"),
		),
		Reset: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "reset password"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete / remove"),
		),
		Members: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "members"),
		),
		AddMember: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add member"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close overlay"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "scroll down"),
		),
		SwitchAuth: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "switch login / sign up"),
		),
		ErrorsOnly: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "errors only"),
		),
	}
}
