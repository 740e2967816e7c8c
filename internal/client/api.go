package client

import (
	"context"
	"encoding/json"

	"github.com/musheet/admin/internal/rpc"
	"github.com/musheet/admin/internal/session"
)

// Invoker performs one RPC call. *rpc.Client satisfies it.
type Invoker interface {
	Invoke(ctx context.Context, endpoint, method string, params map[string]any) rpc.Outcome
}

// Identity exposes the acting administrator. *session.Store satisfies it.
type Identity interface {
	Current() session.Session
}

// API wraps every remote method the console uses.
type API struct {
	rpc Invoker
	id  Identity
}

// New creates an API that acts as the administrator described by id.
func New(inv Invoker, id Identity) *API {
	return &API{rpc: inv, id: id}
}

func (a *API) adminID() int64 {
	if a.id == nil {
		return 0
	}
	return a.id.Current().UserID
}

// adminParams returns params with adminUserId filled in.
func (a *API) adminParams(kv ...any) map[string]any {
	p := map[string]any{"adminUserId": a.adminID()}
	for i := 0; i+1 < len(kv); i += 2 {
		p[kv[i].(string)] = kv[i+1]
	}
	return p
}

func optional(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// NeedsAdminRegistration reports whether the backend has no admin yet, in
// which case the first user to sign up becomes one.
func (a *API) NeedsAdminRegistration(ctx context.Context) (bool, error) {
	out := a.rpc.Invoke(ctx, EndpointAdminUser, "needsAdminRegistration", map[string]any{})
	if err := out.Err(); err != nil {
		return false, err
	}
	var needs bool
	if json.Unmarshal(out.Value(), &needs) != nil {
		return false, nil
	}
	return needs, nil
}

// Login calls auth.login. The outcome is handed to session.Store.Login.
func (a *API) Login(ctx context.Context, username, password string) rpc.Outcome {
	return a.rpc.Invoke(ctx, EndpointAuth, "login", map[string]any{
		"username": username,
		"password": password,
	})
}

// Register calls auth.register. The outcome is handed to
// session.Store.Signup.
func (a *API) Register(ctx context.Context, username, password, displayName string) rpc.Outcome {
	return a.rpc.Invoke(ctx, EndpointAuth, "register", map[string]any{
		"username":    username,
		"password":    password,
		"displayName": optional(displayName),
	})
}

// DashboardStats fetches the aggregate numbers for the dashboard.
func (a *API) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	var st DashboardStats
	out := a.rpc.Invoke(ctx, EndpointAdmin, "getDashboardStats", a.adminParams())
	if err := out.Decode(&st); err != nil {
		return nil, err
	}
	return &st, nil
}

// Users fetches one page of users.
func (a *API) Users(ctx context.Context, page, pageSize int) ([]User, error) {
	var users []User
	out := a.rpc.Invoke(ctx, EndpointAdmin, "getAllUsers", a.adminParams("page", page, "pageSize", pageSize))
	if err := out.Decode(&users); err != nil {
		return nil, err
	}
	return users, nil
}

// Teams fetches one page of teams.
func (a *API) Teams(ctx context.Context, page, pageSize int) ([]Team, error) {
	var teams []Team
	out := a.rpc.Invoke(ctx, EndpointAdmin, "getAllTeams", a.adminParams("page", page, "pageSize", pageSize))
	if err := out.Decode(&teams); err != nil {
		return nil, err
	}
	return teams, nil
}

// CreateUser creates an account with an initial password.
func (a *API) CreateUser(ctx context.Context, u NewUser) error {
	return a.rpc.Invoke(ctx, EndpointAdminUser, "createUser", a.adminParams(
		"username", u.Username,
		"initialPassword", u.Password,
		"displayName", optional(u.DisplayName),
		"isAdmin", u.IsAdmin,
	)).Err()
}

func (a *API) targetUser(ctx context.Context, method string, userID int64) error {
	return a.rpc.Invoke(ctx, EndpointAdmin, method, a.adminParams("targetUserId", userID)).Err()
}

// DeactivateUser disables a user's account.
func (a *API) DeactivateUser(ctx context.Context, userID int64) error {
	return a.targetUser(ctx, "deactivateUser", userID)
}

// ReactivateUser re-enables a disabled account.
func (a *API) ReactivateUser(ctx context.Context, userID int64) error {
	return a.targetUser(ctx, "reactivateUser", userID)
}

// DeleteUser permanently removes a user.
func (a *API) DeleteUser(ctx context.Context, userID int64) error {
	return a.targetUser(ctx, "deleteUser", userID)
}

// PromoteToAdmin grants admin privileges.
func (a *API) PromoteToAdmin(ctx context.Context, userID int64) error {
	return a.targetUser(ctx, "promoteToAdmin", userID)
}

// DemoteFromAdmin revokes admin privileges.
func (a *API) DemoteFromAdmin(ctx context.Context, userID int64) error {
	return a.targetUser(ctx, "demoteFromAdmin", userID)
}

// ResetUserPassword generates a temporary password and returns it.
func (a *API) ResetUserPassword(ctx context.Context, userID int64) (string, error) {
	out := a.rpc.Invoke(ctx, EndpointAdminUser, "resetUserPassword", a.adminParams("userId", userID))
	if err := out.Err(); err != nil {
		return "", err
	}
	var pw string
	if json.Unmarshal(out.Value(), &pw) != nil {
		return string(out.Value()), nil
	}
	return pw, nil
}

// CreateTeam creates a team.
func (a *API) CreateTeam(ctx context.Context, name, description string) error {
	return a.rpc.Invoke(ctx, EndpointTeam, "createTeam", a.adminParams(
		"name", name,
		"description", optional(description),
	)).Err()
}

// DeleteTeam removes a team with its shared scores and memberships.
func (a *API) DeleteTeam(ctx context.Context, teamID int64) error {
	return a.rpc.Invoke(ctx, EndpointAdmin, "deleteTeam", a.adminParams("teamId", teamID)).Err()
}

// TeamMembers lists the members of a team. Roles are normalized to
// RoleMember.
func (a *API) TeamMembers(ctx context.Context, teamID int64) ([]TeamMember, error) {
	var members []TeamMember
	out := a.rpc.Invoke(ctx, EndpointTeam, "getTeamMembers", a.adminParams("teamId", teamID))
	if err := out.Decode(&members); err != nil {
		return nil, err
	}
	for i := range members {
		members[i].Role = RoleMember
	}
	return members, nil
}

// AddMember adds a user to a team as a member.
func (a *API) AddMember(ctx context.Context, teamID, userID int64) error {
	return a.rpc.Invoke(ctx, EndpointTeam, "addMemberToTeam", a.adminParams("teamId", teamID, "userId", userID)).Err()
}

// RemoveMember removes a user from a team.
func (a *API) RemoveMember(ctx context.Context, teamID, userID int64) error {
	return a.rpc.Invoke(ctx, EndpointTeam, "removeMemberFromTeam", a.adminParams("teamId", teamID, "userId", userID)).Err()
}

// Avatar fetches the raw avatar value of a user, normally an envelope
// string understood by the avatar package.
func (a *API) Avatar(ctx context.Context, userID int64) (any, error) {
	out := a.rpc.Invoke(ctx, EndpointProfile, "getAvatar", map[string]any{"userId": userID})
	var v any
	if err := out.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
