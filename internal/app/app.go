package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/musheet/admin/internal/avatar"
	"github.com/musheet/admin/internal/client"
	"github.com/musheet/admin/internal/format"
	"github.com/musheet/admin/internal/pager"
	"github.com/musheet/admin/internal/session"
	"github.com/musheet/admin/internal/theme"
	"github.com/musheet/admin/internal/views/confirm"
	"github.com/musheet/admin/internal/views/dashboard"
	"github.com/musheet/admin/internal/views/debug"
	"github.com/musheet/admin/internal/views/form"
	"github.com/musheet/admin/internal/views/help"
	"github.com/musheet/admin/internal/views/list"
	"github.com/musheet/admin/internal/views/members"
	"github.com/musheet/admin/internal/views/status"
	"github.com/musheet/admin/internal/views/toast"
	"go.uber.org/zap"
)

// Screen is the top-level page.
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenSignup
	ScreenConsole
)

// Section is a console tab.
type Section int

const (
	SectionDashboard Section = iota
	SectionUsers
	SectionTeams
)

var sectionNames = []string{"Dashboard", "Users", "Teams"}

func (s Section) String() string {
	if int(s) < len(sectionNames) {
		return sectionNames[s]
	}
	return "unknown"
}

// Overlay identifies which modal is active.
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayHelp
	OverlayDebug
	OverlayCreateUser
	OverlayCreateTeam
	OverlayMembers
	OverlayPicker
)

// Form ids.
const (
	formLogin      = "login"
	formSignup     = "signup"
	formCreateUser = "create-user"
	formCreateTeam = "create-team"
)

// Deps are the collaborators of the console.
type Deps struct {
	API     *client.API
	Session *session.Store
	// Avatars may be nil, in which case no avatar is fetched.
	Avatars *avatar.Resolver
	// Feed may be nil, in which case the debug log shows no RPC traffic.
	Feed          *debug.Feed
	ServerURL     string
	PageSize      int
	ToastDuration time.Duration
	Logger        *zap.Logger
}

type needsAdminMsg struct {
	needs bool
	err   error
}

type authDoneMsg struct {
	form string
	err  error
}

type avatarMsg struct {
	userID int64
	res    *avatar.Resource
}

type createdMsg struct {
	form string
	err  error
}

type memberAddedMsg struct {
	teamID int64
	err    error
}

// Model is the root Bubble Tea model.
type Model struct {
	deps   Deps
	ctx    context.Context
	cancel context.CancelFunc

	keys    KeyMap
	actions []Action
	width   int
	height  int

	screen  Screen
	section Section
	overlay Overlay

	needsAdmin bool
	login      form.Model
	signup     form.Model
	createUser form.Model
	createTeam form.Model

	gate      confirm.Gate
	toasts    toast.Model
	users     list.Model[client.User]
	teams     list.Model[client.Team]
	dashboard dashboard.Model
	members   members.Model
	picker    members.Picker
	statusBar status.Model
	debugLog  debug.Model
	help      *help.Model

	// lastPassword is the most recent temporary password.
	lastPassword string
}

// New creates the root model. A session restored from disk opens the
// console directly.
func New(deps Deps) Model {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.PageSize <= 0 {
		deps.PageSize = pager.DefaultPageSize
	}
	if deps.ToastDuration <= 0 {
		deps.ToastDuration = toast.DefaultDuration
	}
	ctx, cancel := context.WithCancel(context.Background())
	keys := DefaultKeyMap()
	actions := Actions(keys)
	ref := help.New(HelpEntries(actions))

	m := Model{
		deps:       deps,
		ctx:        ctx,
		cancel:     cancel,
		keys:       keys,
		actions:    actions,
		login:      newLoginForm(),
		signup:     newSignupForm(),
		createUser: newCreateUserForm(),
		createTeam: newCreateTeamForm(),
		gate:       confirm.New(),
		toasts:     toast.New(deps.ToastDuration),
		dashboard:  dashboard.New(),
		statusBar:  status.New(deps.ServerURL, sectionNames...),
		debugLog:   debug.New(),
		help:       &ref,
	}
	m.users = list.New(
		pager.New("users", deps.PageSize, deps.API.Users),
		userColumns,
		userRow(deps.Session),
		"No users found",
	)
	m.teams = list.New(
		pager.New("teams", deps.PageSize, deps.API.Teams),
		teamColumns,
		teamRow,
		"No teams found",
	)
	if deps.Session.Current().Authenticated() {
		m.beginConsole()
	}
	return m
}

func newLoginForm() form.Model {
	f := form.New(formLogin, "MuSheet Admin",
		form.Field{Key: "username", Label: "Username", Placeholder: "admin", Required: true},
		form.Field{Key: "password", Label: "Password", Secret: true, Required: true},
	)
	f.Hint = loginHint(false)
	f.Cancelable = false
	return f
}

func newSignupForm() form.Model {
	f := form.New(formSignup, "Create Account",
		form.Field{Key: "username", Label: "Username", Required: true},
		form.Field{Key: "password", Label: "Password", Secret: true, Required: true},
		form.Field{Key: "displayName", Label: "Display name", Placeholder: "optional"},
	)
	f.Hint = signupHint(false)
	f.Cancelable = false
	return f
}

func newCreateUserForm() form.Model {
	return form.New(formCreateUser, "Create User",
		form.Field{Key: "username", Label: "Username", Required: true},
		form.Field{Key: "password", Label: "Password", Secret: true, Required: true},
		form.Field{Key: "displayName", Label: "Display name", Placeholder: "optional"},
		form.Field{Key: "isAdmin", Label: "Administrator", Toggle: true},
	)
}

func newCreateTeamForm() form.Model {
	return form.New(formCreateTeam, "Create Team",
		form.Field{Key: "name", Label: "Name", Required: true},
		form.Field{Key: "description", Label: "Description", Placeholder: "optional"},
	)
}

func loginHint(needsAdmin bool) string {
	if needsAdmin {
		return "No administrator exists yet. Press ctrl+n to create one."
	}
	return "Sign in with an administrator account."
}

func signupHint(needsAdmin bool) string {
	if needsAdmin {
		return "First user will automatically become admin."
	}
	return "Only admins can access this console."
}

var userColumns = []list.Column{
	{Title: "ID", Weight: 1, Min: 4},
	{Title: "Username", Weight: 3, Min: 10},
	{Title: "Display name", Weight: 3, Min: 10},
	{Title: "Role", Weight: 1, Min: 6},
	{Title: "Status", Weight: 1, Min: 8},
	{Title: "Created", Weight: 2, Min: 10},
	{Title: "Actions", Weight: 2, Min: 12},
}

var teamColumns = []list.Column{
	{Title: "ID", Weight: 1, Min: 4},
	{Title: "Name", Weight: 3, Min: 10},
	{Title: "Description", Weight: 5, Min: 12},
	{Title: "Members", Weight: 1, Min: 7},
	{Title: "Shared scores", Weight: 1, Min: 13},
}

// userRow renders a user; the signed-in admin's row shows no actions.
func userRow(store *session.Store) list.RowFunc[client.User] {
	return func(u client.User) []string {
		return userCells(u, u.ID == store.Current().UserID)
	}
}

func userCells(u client.User, self bool) []string {
	role := "User"
	if u.IsAdmin {
		role = "Admin"
	}
	state := "Active"
	if u.IsDisabled {
		state = "Disabled"
	}
	name := u.DisplayName
	if name == "" {
		name = "-"
	}
	actions := "s m w x"
	if self {
		actions = "Current User"
	}
	return []string{
		fmt.Sprint(u.ID), u.Username, name, role, state, format.Date(u.CreatedAt), actions,
	}
}

func teamRow(t client.Team) []string {
	desc := t.Description
	if desc == "" {
		desc = "-"
	}
	return []string{
		fmt.Sprint(t.ID), t.Name, desc, fmt.Sprint(t.MemberCount), fmt.Sprint(t.SharedScores),
	}
}

// Init starts the debug feed and either the console loads or the
// registration check of the login screen.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.waitFeed()}
	if m.screen == ScreenConsole {
		cmds = append(cmds, m.consoleCmds())
	} else {
		cmds = append(cmds, m.checkRegistration(), textinput.Blink)
	}
	return tea.Batch(cmds...)
}

func (m Model) waitFeed() tea.Cmd {
	if m.deps.Feed == nil {
		return nil
	}
	return m.deps.Feed.Wait()
}

func (m Model) checkRegistration() tea.Cmd {
	api, ctx := m.deps.API, m.ctx
	return func() tea.Msg {
		needs, err := api.NeedsAdminRegistration(ctx)
		return needsAdminMsg{needs: needs, err: err}
	}
}

// beginConsole switches to the console on the dashboard.
func (m *Model) beginConsole() {
	cur := m.deps.Session.Current()
	m.screen = ScreenConsole
	m.overlay = OverlayNone
	m.section = SectionDashboard
	m.statusBar.DisplayName = cur.DisplayName
	m.statusBar.Active = int(SectionDashboard)
	m.lastPassword = ""
	m.dashboard.SetLoading()
	m.debugLog.Add(debug.KindAuth, "signed in as "+cur.DisplayName)
}

func (m Model) consoleCmds() tea.Cmd {
	return tea.Batch(dashboard.Fetch(m.ctx, m.deps.API), m.fetchAvatar())
}

func (m Model) fetchAvatar() tea.Cmd {
	if m.deps.Avatars == nil {
		return nil
	}
	api, res, ctx := m.deps.API, m.deps.Avatars, m.ctx
	userID := m.deps.Session.Current().UserID
	return func() tea.Msg {
		v, err := api.Avatar(ctx, userID)
		if err != nil {
			return avatarMsg{userID: userID}
		}
		return avatarMsg{userID: userID, res: res.Resolve(v)}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.statusBar.Width = msg.Width
		m.dashboard.Width = msg.Width
		m.users.SetSize(msg.Width, m.bodyHeight()-2)
		m.teams.SetSize(msg.Width, m.bodyHeight()-2)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case debug.CallMsg:
		m.debugLog.Record(msg.Call)
		return m, m.waitFeed()

	case needsAdminMsg:
		if msg.err != nil {
			m.deps.Logger.Warn("registration check failed", zap.Error(msg.err))
			return m, nil
		}
		m.needsAdmin = msg.needs
		m.signup.Hint = signupHint(msg.needs)
		m.login.Hint = loginHint(msg.needs)
		return m, nil

	case authDoneMsg:
		return m.handleAuth(msg)

	case avatarMsg:
		if !m.deps.Session.Current().Authenticated() || msg.userID != m.deps.Session.Current().UserID {
			if msg.res != nil {
				_ = msg.res.Release()
			}
			return m, nil
		}
		m.statusBar.SetAvatar(msg.res)
		return m, nil

	case dashboard.StatsLoadedMsg:
		m.dashboard.Apply(msg)
		if msg.Err != nil {
			return m, m.loadFailed("Failed to load dashboard data", msg.Err)
		}
		return m, nil

	case pager.Result[client.User]:
		var cmd tea.Cmd
		var err error
		m.users, cmd, err = m.users.Update(msg)
		if err != nil {
			return m, m.loadFailed("Failed to load users", err)
		}
		return m, cmd

	case pager.Result[client.Team]:
		var cmd tea.Cmd
		var err error
		m.teams, cmd, err = m.teams.Update(msg)
		if err != nil {
			return m, m.loadFailed("Failed to load teams", err)
		}
		return m, cmd

	case spinner.TickMsg:
		var ucmd, tcmd tea.Cmd
		m.users, ucmd, _ = m.users.Update(msg)
		m.teams, tcmd, _ = m.teams.Update(msg)
		return m, tea.Batch(ucmd, tcmd)

	case members.LoadedMsg:
		if err := m.members.Apply(msg); err != nil {
			return m, m.loadFailed("Failed to load team members", err)
		}
		return m, nil

	case members.CandidatesMsg:
		if err := m.picker.Apply(msg); err != nil {
			if m.overlay == OverlayPicker {
				m.overlay = OverlayMembers
			}
			return m, m.loadFailed("Failed to load users", err)
		}
		return m, nil

	case members.PickedMsg:
		api, ctx := m.deps.API, m.ctx
		return m, func() tea.Msg {
			return memberAddedMsg{teamID: msg.TeamID, err: api.AddMember(ctx, msg.TeamID, msg.User.ID)}
		}

	case memberAddedMsg:
		if msg.err != nil {
			m.picker.Err = errorText(msg.err, "Failed to add member")
			return m, nil
		}
		if m.overlay == OverlayPicker {
			m.overlay = OverlayMembers
		}
		return m, tea.Batch(
			m.reloadMembers(msg.teamID),
			m.reloadSection(SectionTeams),
			m.reloadSection(SectionDashboard),
			toast.Notify(toast.Success, "Success", "Member added successfully"),
		)

	case form.SubmitMsg:
		return m.handleSubmit(msg)

	case form.CancelMsg:
		if msg.ID == formCreateUser || msg.ID == formCreateTeam {
			m.overlay = OverlayNone
		}
		return m, nil

	case createdMsg:
		return m.handleCreated(msg)

	case actionDoneMsg:
		return m.handleDone(msg)

	case toast.NotifyMsg:
		if msg.Kind == toast.Error {
			m.debugLog.Add(debug.KindErr, msg.Message)
		}
	}

	var fcmd tea.Cmd
	if f := m.activeForm(); f != nil {
		*f, fcmd = f.Update(msg)
	}
	var tcmd tea.Cmd
	m.toasts, tcmd = m.toasts.Update(msg)
	return m, tea.Batch(fcmd, tcmd)
}

func (m *Model) loadFailed(text string, err error) tea.Cmd {
	m.deps.Logger.Warn(strings.ToLower(text), zap.Error(err))
	return toast.Notify(toast.Error, "Error", text)
}

func errorText(err error, fallback string) string {
	if err == nil || err.Error() == "" {
		return fallback
	}
	return err.Error()
}

// activeForm returns the form receiving input, if any.
func (m *Model) activeForm() *form.Model {
	switch {
	case m.screen == ScreenLogin:
		return &m.login
	case m.screen == ScreenSignup:
		return &m.signup
	case m.overlay == OverlayCreateUser:
		return &m.createUser
	case m.overlay == OverlayCreateTeam:
		return &m.createTeam
	}
	return nil
}

func (m Model) handleSubmit(msg form.SubmitMsg) (tea.Model, tea.Cmd) {
	api, store, ctx := m.deps.API, m.deps.Session, m.ctx
	v := msg.Values
	switch msg.ID {
	case formLogin:
		return m, func() tea.Msg {
			err := store.Login(api.Login(ctx, v["username"], v["password"]))
			return authDoneMsg{form: formLogin, err: err}
		}
	case formSignup:
		return m, func() tea.Msg {
			err := store.Signup(api.Register(ctx, v["username"], v["password"], v["displayName"]))
			return authDoneMsg{form: formSignup, err: err}
		}
	case formCreateUser:
		nu := client.NewUser{
			Username:    v["username"],
			Password:    v["password"],
			DisplayName: v["displayName"],
			IsAdmin:     v.Bool("isAdmin"),
		}
		return m, func() tea.Msg {
			return createdMsg{form: formCreateUser, err: api.CreateUser(ctx, nu)}
		}
	case formCreateTeam:
		return m, func() tea.Msg {
			return createdMsg{form: formCreateTeam, err: api.CreateTeam(ctx, v["name"], v["description"])}
		}
	}
	return m, nil
}

func (m Model) handleAuth(msg authDoneMsg) (tea.Model, tea.Cmd) {
	f := &m.login
	fallback := "Login failed"
	if msg.form == formSignup {
		f = &m.signup
		fallback = "Sign up failed"
	}
	f.Busy = false
	if msg.err != nil {
		f.Err = errorText(msg.err, fallback)
		if errors.Is(msg.err, session.ErrAdminRequired) {
			m.debugLog.Add(debug.KindAuth, "rejected: not an administrator")
		}
		return m, nil
	}
	f.Reset()
	m.beginConsole()
	cmds := []tea.Cmd{m.consoleCmds()}
	if msg.form == formSignup {
		cmds = append(cmds, toast.Notify(toast.Success, "Welcome!", "Admin account created successfully"))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleCreated(msg createdMsg) (tea.Model, tea.Cmd) {
	f, fallback := &m.createUser, "Failed to create user"
	if msg.form == formCreateTeam {
		f, fallback = &m.createTeam, "Failed to create team"
	}
	f.Busy = false
	if msg.err != nil {
		f.Err = errorText(msg.err, fallback)
		return m, nil
	}
	m.overlay = OverlayNone
	f.Reset()
	if msg.form == formCreateTeam {
		return m, tea.Batch(
			m.reloadSection(SectionTeams),
			m.reloadSection(SectionDashboard),
			toast.Notify(toast.Success, "Success", "Team created successfully"),
		)
	}
	return m, tea.Batch(
		m.reloadSection(SectionUsers),
		toast.Notify(toast.Success, "Success", "User created successfully"),
	)
}

func (m Model) handleDone(msg actionDoneMsg) (tea.Model, tea.Cmd) {
	if msg.password != "" {
		m.lastPassword = msg.password
	}
	notice := msg.notice
	cmds := []tea.Cmd{func() tea.Msg { return notice }}
	for _, s := range msg.reload {
		cmds = append(cmds, m.reloadSection(s))
	}
	if msg.members && m.overlay == OverlayMembers {
		cmds = append(cmds, m.reloadMembers(m.members.TeamID))
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) reloadMembers(teamID int64) tea.Cmd {
	if m.members.TeamID != teamID {
		return nil
	}
	m.members.SetLoading()
	return members.Fetch(m.ctx, m.deps.API, teamID)
}

// reloadSection refetches the data behind s.
func (m *Model) reloadSection(s Section) tea.Cmd {
	switch s {
	case SectionUsers:
		return m.users.Reload(m.ctx)
	case SectionTeams:
		return m.teams.Reload(m.ctx)
	default:
		m.dashboard.SetLoading()
		return dashboard.Fetch(m.ctx, m.deps.API)
	}
}

func (m *Model) show(s Section) tea.Cmd {
	m.section = s
	m.statusBar.Active = int(s)
	m.debugLog.Add(debug.KindNav, s.String())
	return m.reloadSection(s)
}

func (m *Model) open(o Overlay) tea.Cmd {
	m.overlay = o
	return nil
}

func (m *Model) logout() tea.Cmd {
	if err := m.deps.Session.Logout(); err != nil {
		m.deps.Logger.Warn("logout failed", zap.Error(err))
		return toast.Notify(toast.Error, "Error", err.Error())
	}
	m.statusBar.SetAvatar(nil)
	m.statusBar.DisplayName = ""
	m.screen = ScreenLogin
	m.overlay = OverlayNone
	m.lastPassword = ""
	m.gate.Decline()
	m.login.Reset()
	m.debugLog.Add(debug.KindAuth, "signed out")
	return m.checkRegistration()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, m.quit()
	}
	if m.gate.Active() {
		return m, m.gate.Update(m.ctx, msg)
	}

	if m.screen != ScreenConsole {
		if key.Matches(msg, m.keys.SwitchAuth) {
			if m.screen == ScreenLogin {
				m.screen = ScreenSignup
				m.signup.Reset()
				return m, m.checkRegistration()
			}
			m.screen = ScreenLogin
			m.login.Reset()
			return m, nil
		}
		var cmd tea.Cmd
		f := m.activeForm()
		*f, cmd = f.Update(msg)
		return m, cmd
	}

	switch m.overlay {
	case OverlayCreateUser, OverlayCreateTeam:
		var cmd tea.Cmd
		f := m.activeForm()
		*f, cmd = f.Update(msg)
		return m, cmd

	case OverlayHelp:
		if key.Matches(msg, m.keys.Escape, m.keys.Help) {
			m.overlay = OverlayNone
		}
		return m, nil

	case OverlayDebug:
		switch {
		case key.Matches(msg, m.keys.Escape, m.keys.Debug):
			m.overlay = OverlayNone
		case key.Matches(msg, m.keys.ScrollUp):
			m.debugLog.ScrollUp(1)
		case key.Matches(msg, m.keys.ScrollDown):
			m.debugLog.ScrollDown(1)
		case key.Matches(msg, m.keys.ErrorsOnly):
			m.debugLog.ToggleErrors()
		}
		return m, nil

	case OverlayMembers:
		if key.Matches(msg, m.keys.Escape) {
			m.overlay = OverlayNone
			return m, nil
		}
		if a, ok := m.match(msg, ScopeMembers); ok {
			return m, a.Run(&m)
		}
		m.members = m.members.Update(msg)
		return m, nil

	case OverlayPicker:
		if key.Matches(msg, m.keys.Escape) {
			m.overlay = OverlayMembers
			return m, nil
		}
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}

	if a, ok := m.match(msg, m.scopes()...); ok {
		return m, a.Run(&m)
	}

	var cmd tea.Cmd
	switch m.section {
	case SectionUsers:
		m.users, cmd, _ = m.users.Update(msg)
	case SectionTeams:
		m.teams, cmd, _ = m.teams.Update(msg)
	}
	return m, cmd
}

// scopes returns the scopes live on the current section.
func (m Model) scopes() []Scope {
	switch m.section {
	case SectionUsers:
		return []Scope{ScopeGlobal, ScopeLists, ScopeUsers}
	case SectionTeams:
		return []Scope{ScopeGlobal, ScopeLists, ScopeTeams}
	}
	return []Scope{ScopeGlobal}
}

// match returns the first action in scopes bound to msg.
func (m Model) match(msg tea.KeyMsg, scopes ...Scope) (Action, bool) {
	for _, a := range m.actions {
		if !hasScope(scopes, a.Scope) {
			continue
		}
		if key.Matches(msg, a.Binding) {
			return a, true
		}
	}
	return Action{}, false
}

func hasScope(scopes []Scope, s Scope) bool {
	for _, x := range scopes {
		if x == s {
			return true
		}
	}
	return false
}

// inFlight counts loads still awaiting a response.
func (m Model) inFlight() int {
	n := 0
	if m.users.Controller().Loading() {
		n++
	}
	if m.teams.Controller().Loading() {
		n++
	}
	return n
}

func (m Model) bodyHeight() int {
	h := m.height - 5
	if h < 6 {
		h = 6
	}
	return h
}

// View renders the full TUI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	if m.screen != ScreenConsole {
		return m.authView()
	}

	bar := m.statusBar
	bar.InFlight = m.inFlight()

	body := m.sectionView()
	if m.gate.Active() {
		body = lipgloss.Place(m.width, m.bodyHeight(), lipgloss.Center, lipgloss.Center, m.gate.View(m.width))
	} else if ov := m.overlayView(); ov != "" {
		body = lipgloss.Place(m.width, m.bodyHeight(), lipgloss.Center, lipgloss.Center, ov)
	}

	parts := []string{bar.View(), body}
	if t := m.toasts.View(m.width); t != "" {
		parts = append(parts, lipgloss.PlaceHorizontal(m.width, lipgloss.Right, t))
	}
	parts = append(parts, m.footer())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) authView() string {
	f := m.login
	hint := "ctrl+n: create an account  ctrl+c: quit"
	if m.screen == ScreenSignup {
		f = m.signup
		hint = "ctrl+n: back to sign in  ctrl+c: quit"
	}
	content := lipgloss.JoinVertical(lipgloss.Center,
		f.View(m.width),
		theme.StyleDimmed.Render(hint),
	)
	page := lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, content)
	if t := m.toasts.View(m.width); t != "" {
		page = lipgloss.JoinVertical(lipgloss.Left, page, lipgloss.PlaceHorizontal(m.width, lipgloss.Right, t))
	}
	return page
}

func (m Model) sectionView() string {
	switch m.section {
	case SectionUsers:
		v := m.users.View()
		if m.lastPassword != "" {
			v += "\n" + theme.StyleDimmed.Render("Last temporary password: ") + m.lastPassword
		}
		return v
	case SectionTeams:
		return m.teams.View()
	}
	return m.dashboard.View()
}

func (m Model) overlayView() string {
	switch m.overlay {
	case OverlayHelp:
		return m.help.View(m.width)
	case OverlayDebug:
		return m.debugLog.View(m.width, m.bodyHeight())
	case OverlayCreateUser:
		return m.createUser.View(m.width)
	case OverlayCreateTeam:
		return m.createTeam.View(m.width)
	case OverlayMembers:
		return m.members.View(m.width)
	case OverlayPicker:
		return m.picker.View(m.width, m.bodyHeight()-8)
	}
	return ""
}

// footer lists the bindings live in the current context.
func (m Model) footer() string {
	scopes := m.scopes()
	if m.overlay == OverlayMembers {
		scopes = []Scope{ScopeMembers}
	}
	var hints []string
	for _, a := range m.actions {
		if !hasScope(scopes, a.Scope) {
			continue
		}
		h := a.Binding.Help()
		hints = append(hints, h.Key+":"+h.Desc)
	}
	if m.overlay != OverlayNone {
		hints = append(hints, "esc:close")
	}
	return theme.StyleDimmed.Render("  " + strings.Join(hints, "  "))
}
