package app

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/musheet/admin/internal/client"
	"github.com/musheet/admin/internal/theme"
	"github.com/musheet/admin/internal/views/confirm"
	"github.com/musheet/admin/internal/views/help"
	"github.com/musheet/admin/internal/views/members"
	"github.com/musheet/admin/internal/views/toast"
)

// ActionID names a user-triggered operation.
type ActionID string

const (
	ActionQuit          ActionID = "quit"
	ActionHelp          ActionID = "help"
	ActionDebug         ActionID = "debug"
	ActionRefresh       ActionID = "refresh"
	ActionLogout        ActionID = "logout"
	ActionShowDashboard ActionID = "show-dashboard"
	ActionShowUsers     ActionID = "show-users"
	ActionShowTeams     ActionID = "show-teams"
	ActionNextPage      ActionID = "next-page"
	ActionPrevPage      ActionID = "prev-page"
	ActionCreateUser    ActionID = "create-user"
	ActionToggleActive  ActionID = "toggle-active"
	ActionToggleAdmin   ActionID = "toggle-admin"
	ActionResetPassword ActionID = "reset-password"
	ActionDeleteUser    ActionID = "delete-user"
	ActionCreateTeam    ActionID = "create-team"
	ActionViewMembers   ActionID = "view-members"
	ActionDeleteTeam    ActionID = "delete-team"
	ActionAddMember     ActionID = "add-member"
	ActionRemoveMember  ActionID = "remove-member"
)

// Scope is where an action's binding is live.
type Scope string

const (
	ScopeGlobal  Scope = "Global"
	ScopeLists   Scope = "Lists"
	ScopeUsers   Scope = "Users"
	ScopeTeams   Scope = "Teams"
	ScopeMembers Scope = "Members"
)

// Action binds a key to an operation on the console.
type Action struct {
	ID      ActionID
	Scope   Scope
	Binding key.Binding
	Run     func(m *Model) tea.Cmd
}

// Actions returns every action the console dispatches, in help order.
func Actions(keys KeyMap) []Action {
	return []Action{
		{ActionQuit, ScopeGlobal, keys.Quit, (*Model).quit},
		{ActionHelp, ScopeGlobal, keys.Help, func(m *Model) tea.Cmd { return m.open(OverlayHelp) }},
		{ActionDebug, ScopeGlobal, keys.Debug, func(m *Model) tea.Cmd { return m.open(OverlayDebug) }},
		{ActionRefresh, ScopeGlobal, keys.Refresh, (*Model).refresh},
		{ActionLogout, ScopeGlobal, keys.Logout, (*Model).logout},
		{ActionShowDashboard, ScopeGlobal, keys.Dashboard, func(m *Model) tea.Cmd { return m.show(SectionDashboard) }},
		{ActionShowUsers, ScopeGlobal, keys.Users, func(m *Model) tea.Cmd { return m.show(SectionUsers) }},
		{ActionShowTeams, ScopeGlobal, keys.Teams, func(m *Model) tea.Cmd { return m.show(SectionTeams) }},
		{ActionNextPage, ScopeLists, keys.NextPage, (*Model).nextPage},
		{ActionPrevPage, ScopeLists, keys.PrevPage, (*Model).prevPage},
		{ActionCreateUser, ScopeUsers, withHelp(keys.Create, "create user"), (*Model).openCreateUser},
		{ActionToggleActive, ScopeUsers, keys.Toggle, (*Model).toggleActive},
		{ActionToggleAdmin, ScopeUsers, keys.Role, (*Model).toggleAdmin},
		{ActionResetPassword, ScopeUsers, keys.Reset, (*Model).resetPassword},
		{ActionDeleteUser, ScopeUsers, withHelp(keys.Delete, "delete user"), (*Model).deleteUser},
		{ActionCreateTeam, ScopeTeams, withHelp(keys.Create, "create team"), (*Model).openCreateTeam},
		{ActionViewMembers, ScopeTeams, keys.Members, (*Model).viewMembers},
		{ActionDeleteTeam, ScopeTeams, withHelp(keys.Delete, "delete team"), (*Model).deleteTeam},
		{ActionAddMember, ScopeMembers, keys.AddMember, (*Model).openPicker},
		{ActionRemoveMember, ScopeMembers, withHelp(keys.Delete, "remove member"), (*Model).removeMember},
	}
}

func withHelp(b key.Binding, desc string) key.Binding {
	b.SetHelp(b.Help().Key, desc)
	return b
}

// HelpEntries documents actions for the help overlay.
func HelpEntries(actions []Action) []help.Entry {
	out := make([]help.Entry, 0, len(actions))
	for _, a := range actions {
		h := a.Binding.Help()
		out = append(out, help.Entry{Keys: h.Key, Description: h.Desc, Scope: string(a.Scope)})
	}
	return out
}

// actionDoneMsg reports a finished mutation.
type actionDoneMsg struct {
	notice toast.NotifyMsg
	reload []Section
	// members re-fetches the open members overlay.
	members bool
	// password is the temporary password of a reset, kept on screen.
	password string
}

func (m *Model) quit() tea.Cmd {
	m.cancel()
	return tea.Quit
}

func (m *Model) refresh() tea.Cmd {
	return tea.Batch(
		m.reloadSection(m.section),
		toast.Notify(toast.Info, "Refreshed", "Data has been refreshed"),
	)
}

func (m *Model) nextPage() tea.Cmd {
	switch m.section {
	case SectionUsers:
		return m.users.Next(m.ctx)
	case SectionTeams:
		return m.teams.Next(m.ctx)
	}
	return nil
}

func (m *Model) prevPage() tea.Cmd {
	switch m.section {
	case SectionUsers:
		return m.users.Prev(m.ctx)
	case SectionTeams:
		return m.teams.Prev(m.ctx)
	}
	return nil
}

// targetUser returns the highlighted user unless it is the signed-in admin,
// whose own row carries no actions.
func (m *Model) targetUser() (client.User, bool) {
	u, ok := m.users.Selected()
	if !ok || u.ID == m.deps.Session.Current().UserID {
		return client.User{}, false
	}
	return u, true
}

func (m *Model) toggleActive() tea.Cmd {
	u, ok := m.targetUser()
	if !ok {
		return nil
	}
	api, id := m.deps.API, u.ID
	if u.IsDisabled {
		m.gate.Request(confirm.Request{
			Title:        "Activate User",
			Message:      "Are you sure you want to activate this user?",
			ConfirmLabel: "Activate",
			Variant:      theme.VariantSuccess,
			FailureText:  "Failed to activate user",
			OnConfirm: func(ctx context.Context) (tea.Msg, error) {
				if err := api.ReactivateUser(ctx, id); err != nil {
					return nil, err
				}
				return done("User activated", SectionUsers), nil
			},
		})
		return nil
	}
	m.gate.Request(confirm.Request{
		Title:        "Deactivate User",
		Message:      "Are you sure you want to deactivate this user?",
		ConfirmLabel: "Deactivate",
		Variant:      theme.VariantDanger,
		FailureText:  "Failed to deactivate user",
		OnConfirm: func(ctx context.Context) (tea.Msg, error) {
			if err := api.DeactivateUser(ctx, id); err != nil {
				return nil, err
			}
			return done("User deactivated", SectionUsers), nil
		},
	})
	return nil
}

func (m *Model) toggleAdmin() tea.Cmd {
	u, ok := m.targetUser()
	if !ok {
		return nil
	}
	api, id := m.deps.API, u.ID
	if u.IsAdmin {
		m.gate.Request(confirm.Request{
			Title:        "Demote from Admin",
			Message:      "Are you sure you want to remove admin privileges from this user?",
			ConfirmLabel: "Demote",
			Variant:      theme.VariantDanger,
			FailureText:  "Failed to demote user",
			OnConfirm: func(ctx context.Context) (tea.Msg, error) {
				if err := api.DemoteFromAdmin(ctx, id); err != nil {
					return nil, err
				}
				return done("User demoted", SectionUsers), nil
			},
		})
		return nil
	}
	m.gate.Request(confirm.Request{
		Title:        "Promote to Admin",
		Message:      "Are you sure you want to give this user admin privileges?",
		ConfirmLabel: "Promote",
		Variant:      theme.VariantPrimary,
		FailureText:  "Failed to promote user",
		OnConfirm: func(ctx context.Context) (tea.Msg, error) {
			if err := api.PromoteToAdmin(ctx, id); err != nil {
				return nil, err
			}
			return done("User promoted to admin", SectionUsers), nil
		},
	})
	return nil
}

func (m *Model) resetPassword() tea.Cmd {
	u, ok := m.targetUser()
	if !ok {
		return nil
	}
	api, id := m.deps.API, u.ID
	m.gate.Request(confirm.Request{
		Title:        "Reset Password",
		Message:      "This will generate a new temporary password. Continue?",
		ConfirmLabel: "Reset",
		Variant:      theme.VariantPrimary,
		FailureText:  "Failed to reset password",
		OnConfirm: func(ctx context.Context) (tea.Msg, error) {
			pw, err := api.ResetUserPassword(ctx, id)
			if err != nil {
				return nil, err
			}
			return actionDoneMsg{
				notice:   toast.NotifyMsg{Kind: toast.Success, Title: "Password Reset", Message: "Temporary password: " + pw},
				password: pw,
			}, nil
		},
	})
	return nil
}

func (m *Model) deleteUser() tea.Cmd {
	u, ok := m.targetUser()
	if !ok {
		return nil
	}
	api, id := m.deps.API, u.ID
	m.gate.Request(confirm.Request{
		Title:        "Delete User",
		Message:      fmt.Sprintf("Are you sure you want to permanently delete user %q? This action cannot be undone.", u.Username),
		ConfirmLabel: "Delete",
		Variant:      theme.VariantDanger,
		FailureText:  "Failed to delete user",
		OnConfirm: func(ctx context.Context) (tea.Msg, error) {
			if err := api.DeleteUser(ctx, id); err != nil {
				return nil, err
			}
			return done("User deleted", SectionUsers, SectionDashboard), nil
		},
	})
	return nil
}

func (m *Model) deleteTeam() tea.Cmd {
	t, ok := m.teams.Selected()
	if !ok {
		return nil
	}
	api, id := m.deps.API, t.ID
	m.gate.Request(confirm.Request{
		Title:        "Delete Team",
		Message:      fmt.Sprintf("Are you sure you want to permanently delete team %q? All shared scores and members will be removed.", t.Name),
		ConfirmLabel: "Delete",
		Variant:      theme.VariantDanger,
		FailureText:  "Failed to delete team",
		OnConfirm: func(ctx context.Context) (tea.Msg, error) {
			if err := api.DeleteTeam(ctx, id); err != nil {
				return nil, err
			}
			return done("Team deleted", SectionTeams, SectionDashboard), nil
		},
	})
	return nil
}

func (m *Model) viewMembers() tea.Cmd {
	t, ok := m.teams.Selected()
	if !ok {
		return nil
	}
	m.members = members.New(t.ID, t.Name)
	m.members.SetLoading()
	m.overlay = OverlayMembers
	return members.Fetch(m.ctx, m.deps.API, t.ID)
}

func (m *Model) removeMember() tea.Cmd {
	mem, ok := m.members.Selected()
	if !ok {
		return nil
	}
	api, teamID, userID := m.deps.API, m.members.TeamID, mem.UserID
	name := mem.DisplayName
	if name == "" {
		name = mem.Username
	}
	m.gate.Request(confirm.Request{
		Title:        "Remove Member",
		Message:      fmt.Sprintf("Remove %q from this team?", name),
		ConfirmLabel: "Remove",
		Variant:      theme.VariantDanger,
		FailureText:  "Failed to remove member",
		OnConfirm: func(ctx context.Context) (tea.Msg, error) {
			if err := api.RemoveMember(ctx, teamID, userID); err != nil {
				return nil, err
			}
			msg := done("Member removed", SectionTeams, SectionDashboard)
			msg.members = true
			return msg, nil
		},
	})
	return nil
}

func (m *Model) openPicker() tea.Cmd {
	m.picker = members.NewPicker(m.members.TeamID, m.members.TeamName)
	m.overlay = OverlayPicker
	return members.FetchCandidates(m.ctx, m.deps.API, m.members.TeamID)
}

func (m *Model) openCreateUser() tea.Cmd {
	m.createUser.Reset()
	m.overlay = OverlayCreateUser
	return nil
}

func (m *Model) openCreateTeam() tea.Cmd {
	m.createTeam.Reset()
	m.overlay = OverlayCreateTeam
	return nil
}

func done(message string, reload ...Section) actionDoneMsg {
	return actionDoneMsg{
		notice: toast.NotifyMsg{Kind: toast.Success, Title: "Success", Message: message},
		reload: reload,
	}
}
