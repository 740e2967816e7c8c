package mockserver

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/musheet/admin/internal/avatar"
)

// wire shapes, matching the real backend's JSON.

type wireUser struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	DisplayName *string    `json:"displayName"`
	IsAdmin     bool       `json:"isAdmin"`
	IsDisabled  bool       `json:"isDisabled"`
	AvatarPath  *string    `json:"avatarPath"`
	CreatedAt   *time.Time `json:"createdAt"`
}

type wireTeam struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Description  *string `json:"description"`
	MemberCount  int     `json:"memberCount"`
	SharedScores int     `json:"sharedScores"`
}

type wireMember struct {
	UserID      int64     `json:"userId"`
	Username    string    `json:"username"`
	DisplayName *string   `json:"displayName"`
	Role        string    `json:"role"`
	JoinedAt    time.Time `json:"joinedAt"`
}

type authResponse struct {
	Success      bool      `json:"success"`
	Token        string    `json:"token,omitempty"`
	User         *wireUser `json:"user,omitempty"`
	ErrorMessage string    `json:"errorMessage,omitempty"`
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (u *user) wire() wireUser {
	created := u.CreatedAt
	w := wireUser{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: strPtr(u.DisplayName),
		IsAdmin:     u.IsAdmin,
		IsDisabled:  u.IsDisabled,
		CreatedAt:   &created,
	}
	if len(u.Avatar) > 0 {
		w.AvatarPath = strPtr("avatars/" + uuid.NewSHA1(uuid.NameSpaceURL, []byte(u.Username)).String() + ".png")
	}
	return w
}

func (t *team) wire() wireTeam {
	return wireTeam{
		ID:           t.ID,
		Name:         t.Name,
		Description:  strPtr(t.Description),
		MemberCount:  len(t.Members),
		SharedScores: t.SharedScores,
	}
}

func (s *Server) methodTable() map[string]method {
	return map[string]method{
		"auth.login":                       {public: true, fn: login},
		"auth.register":                    {public: true, fn: register},
		"adminUser.needsAdminRegistration": {public: true, fn: needsAdminRegistration},
		"adminUser.createUser":             {admin: true, fn: createUser},
		"adminUser.resetUserPassword":      {admin: true, fn: resetUserPassword},
		"admin.getDashboardStats":          {admin: true, fn: dashboardStats},
		"admin.getAllUsers":                {admin: true, fn: allUsers},
		"admin.getAllTeams":                {admin: true, fn: allTeams},
		"admin.deactivateUser":             {admin: true, fn: modifyUser(func(u *user) { u.IsDisabled = true })},
		"admin.reactivateUser":             {admin: true, fn: modifyUser(func(u *user) { u.IsDisabled = false })},
		"admin.promoteToAdmin":             {admin: true, fn: modifyUser(func(u *user) { u.IsAdmin = true })},
		"admin.demoteFromAdmin":            {admin: true, fn: modifyUser(func(u *user) { u.IsAdmin = false })},
		"admin.deleteUser":                 {admin: true, fn: deleteUser},
		"admin.deleteTeam":                 {admin: true, fn: deleteTeam},
		"team.createTeam":                  {admin: true, fn: createTeam},
		"team.getTeamMembers":              {admin: true, fn: teamMembers},
		"team.addMemberToTeam":             {admin: true, fn: addMember},
		"team.removeMemberFromTeam":        {admin: true, fn: removeMember},
		"profile.getAvatar":                {fn: getAvatar},
	}
}

func login(s *store, c call) (any, error) {
	u, err := s.authenticate(c.params.str("username"), c.params.str("password"))
	if err != nil {
		return authResponse{Success: false, ErrorMessage: err.Error()}, nil
	}
	w := u.wire()
	return authResponse{Success: true, Token: s.issueToken(u), User: &w}, nil
}

func register(s *store, c call) (any, error) {
	password := c.params.str("password")
	if len(password) < 6 {
		return authResponse{Success: false, ErrorMessage: "Password must be at least 6 characters"}, nil
	}
	first := !s.hasAdmin()
	u, err := s.addUser(c.params.str("username"), password, c.params.str("displayName"), first)
	if err != nil {
		return authResponse{Success: false, ErrorMessage: err.Error()}, nil
	}
	w := u.wire()
	return authResponse{Success: true, Token: s.issueToken(u), User: &w}, nil
}

func needsAdminRegistration(s *store, _ call) (any, error) {
	return !s.hasAdmin(), nil
}

func createUser(s *store, c call) (any, error) {
	u, err := s.addUser(c.params.str("username"), c.params.str("initialPassword"),
		c.params.str("displayName"), c.params.bool("isAdmin"))
	if err != nil {
		return nil, err
	}
	return u.wire(), nil
}

func resetUserPassword(s *store, c call) (any, error) {
	u := s.users[c.params.int64("userId")]
	if u == nil {
		return nil, errNotFound
	}
	temp := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	hash, err := bcrypt.GenerateFromPassword([]byte(temp), s.cost)
	if err != nil {
		return nil, err
	}
	u.Hash = hash
	return temp, nil
}

func dashboardStats(s *store, _ call) (any, error) {
	weekAgo := s.now().Add(-7 * 24 * time.Hour)
	active := 0
	for _, u := range s.users {
		if u.LastSeen.After(weekAgo) {
			active++
		}
	}
	type summary struct {
		Name         string `json:"name"`
		MemberCount  int    `json:"memberCount"`
		SharedScores int    `json:"sharedScores"`
	}
	teams := make([]summary, 0, len(s.teams))
	shared := 0
	for _, t := range s.sortedTeams() {
		teams = append(teams, summary{Name: t.Name, MemberCount: len(t.Members), SharedScores: t.SharedScores})
		shared += t.SharedScores
	}
	return map[string]any{
		"totalMembers":     len(s.users),
		"activeMembers7d":  active,
		"totalTeams":       len(s.teams),
		"totalScores":      s.scores + shared,
		"totalStorageUsed": int64(s.scores+shared) * 384 * 1024,
		"teams":            teams,
	}, nil
}

func allUsers(s *store, c call) (any, error) {
	users := s.sortedUsers()
	start, end := page(len(users), c.params.int("page"), c.params.int("pageSize"))
	out := make([]wireUser, 0, end-start)
	for _, u := range users[start:end] {
		out = append(out, u.wire())
	}
	return out, nil
}

func allTeams(s *store, c call) (any, error) {
	teams := s.sortedTeams()
	start, end := page(len(teams), c.params.int("page"), c.params.int("pageSize"))
	out := make([]wireTeam, 0, end-start)
	for _, t := range teams[start:end] {
		out = append(out, t.wire())
	}
	return out, nil
}

func modifyUser(apply func(u *user)) handlerFunc {
	return func(s *store, c call) (any, error) {
		id := c.params.int64("targetUserId")
		if id == c.caller.ID {
			return nil, errSelf
		}
		u := s.users[id]
		if u == nil {
			return nil, errNotFound
		}
		apply(u)
		return true, nil
	}
}

func deleteUser(s *store, c call) (any, error) {
	id := c.params.int64("targetUserId")
	if id == c.caller.ID {
		return nil, errSelf
	}
	if s.users[id] == nil {
		return nil, errNotFound
	}
	s.deleteUser(id)
	return true, nil
}

func createTeam(s *store, c call) (any, error) {
	t, err := s.addTeam(c.params.str("name"), c.params.str("description"))
	if err != nil {
		return nil, err
	}
	return t.wire(), nil
}

func deleteTeam(s *store, c call) (any, error) {
	id := c.params.int64("teamId")
	if s.teams[id] == nil {
		return nil, errNotFound
	}
	delete(s.teams, id)
	return true, nil
}

func teamMembers(s *store, c call) (any, error) {
	t := s.teams[c.params.int64("teamId")]
	if t == nil {
		return nil, errNotFound
	}
	out := make([]wireMember, 0, len(t.Members))
	for _, u := range s.sortedUsers() {
		joined, ok := t.Members[u.ID]
		if !ok {
			continue
		}
		out = append(out, wireMember{
			UserID:      u.ID,
			Username:    u.Username,
			DisplayName: strPtr(u.DisplayName),
			Role:        "member",
			JoinedAt:    joined,
		})
	}
	return out, nil
}

func addMember(s *store, c call) (any, error) {
	t := s.teams[c.params.int64("teamId")]
	u := s.users[c.params.int64("userId")]
	if t == nil || u == nil {
		return nil, errNotFound
	}
	if _, ok := t.Members[u.ID]; ok {
		return nil, errAlreadyIn
	}
	t.Members[u.ID] = s.now().UTC()
	return true, nil
}

func removeMember(s *store, c call) (any, error) {
	t := s.teams[c.params.int64("teamId")]
	if t == nil {
		return nil, errNotFound
	}
	id := c.params.int64("userId")
	if _, ok := t.Members[id]; !ok {
		return nil, errNotFound
	}
	delete(t.Members, id)
	return true, nil
}

func getAvatar(s *store, c call) (any, error) {
	u := s.users[c.params.int64("userId")]
	if u == nil || len(u.Avatar) == 0 {
		return nil, nil
	}
	return avatar.Encode(u.Avatar), nil
}
