// Package client provides the typed admin API of the MuSheet backend on top
// of the rpc package. Types mirror the server's JSON without importing any
// server code.
package client

import "time"

// RoleMember is the only team role: all members are equal.
const RoleMember = "member"

// Endpoints exposed by the backend.
const (
	EndpointAuth      = "auth"
	EndpointAdmin     = "admin"
	EndpointAdminUser = "adminUser"
	EndpointTeam      = "team"
	EndpointProfile   = "profile"
)

// User is a row of admin.getAllUsers.
type User struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	DisplayName string     `json:"displayName,omitempty"`
	IsAdmin     bool       `json:"isAdmin"`
	IsDisabled  bool       `json:"isDisabled"`
	AvatarPath  string     `json:"avatarPath,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
}

// Team is a row of admin.getAllTeams.
type Team struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	MemberCount  int    `json:"memberCount"`
	SharedScores int    `json:"sharedScores"`
}

// TeamMember is a row of team.getTeamMembers.
type TeamMember struct {
	UserID      int64      `json:"userId"`
	Username    string     `json:"username"`
	DisplayName string     `json:"displayName,omitempty"`
	Role        string     `json:"role,omitempty"`
	JoinedAt    *time.Time `json:"joinedAt,omitempty"`
}

// TeamSummary is the per-team line of the dashboard.
type TeamSummary struct {
	Name         string `json:"name"`
	MemberCount  int    `json:"memberCount"`
	SharedScores int    `json:"sharedScores"`
}

// DashboardStats is returned by admin.getDashboardStats.
type DashboardStats struct {
	TotalMembers     int           `json:"totalMembers"`
	ActiveMembers7d  int           `json:"activeMembers7d"`
	TotalTeams       int           `json:"totalTeams"`
	TotalScores      int           `json:"totalScores"`
	TotalStorageUsed int64         `json:"totalStorageUsed"`
	Teams            []TeamSummary `json:"teams"`
}

// NewUser holds the fields of adminUser.createUser.
type NewUser struct {
	Username    string
	Password    string
	DisplayName string
	IsAdmin     bool
}
