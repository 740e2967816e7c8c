package mockserver

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	errNotFound     = errors.New("Not found")
	errUsernameUsed = errors.New("Username already taken")
	errSelf         = errors.New("You cannot modify your own account")
	errBadLogin     = errors.New("Invalid username or password")
	errDisabled     = errors.New("Account is disabled")
	errAlreadyIn    = errors.New("User is already a member of this team")
	errEmptyName    = errors.New("Name must not be empty")
)

type user struct {
	ID          int64
	Username    string
	DisplayName string
	IsAdmin     bool
	IsDisabled  bool
	CreatedAt   time.Time
	LastSeen    time.Time
	Hash        []byte
	Avatar      []byte
}

type team struct {
	ID           int64
	Name         string
	Description  string
	SharedScores int
	Members      map[int64]time.Time // user id -> joined
}

// store is the in-memory state behind the mock backend.
type store struct {
	mu         sync.Mutex
	cost       int
	users      map[int64]*user
	teams      map[int64]*team
	tokens     map[string]int64
	nextUserID int64
	nextTeamID int64
	scores     int
	now        func() time.Time
}

func newStore(cost int) *store {
	return &store{
		cost:       cost,
		users:      make(map[int64]*user),
		teams:      make(map[int64]*team),
		tokens:     make(map[string]int64),
		nextUserID: 1,
		nextTeamID: 1,
		now:        time.Now,
	}
}

func (s *store) addUser(username, password, displayName string, isAdmin bool) (*user, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errEmptyName
	}
	for _, u := range s.users {
		if strings.EqualFold(u.Username, username) {
			return nil, errUsernameUsed
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, err
	}
	u := &user{
		ID:          s.nextUserID,
		Username:    username,
		DisplayName: displayName,
		IsAdmin:     isAdmin,
		CreatedAt:   s.now().UTC(),
		Hash:        hash,
	}
	s.nextUserID++
	s.users[u.ID] = u
	return u, nil
}

func (s *store) findUser(username string) *user {
	for _, u := range s.users {
		if strings.EqualFold(u.Username, username) {
			return u
		}
	}
	return nil
}

func (s *store) authenticate(username, password string) (*user, error) {
	u := s.findUser(username)
	if u == nil || bcrypt.CompareHashAndPassword(u.Hash, []byte(password)) != nil {
		return nil, errBadLogin
	}
	if u.IsDisabled {
		return nil, errDisabled
	}
	u.LastSeen = s.now()
	return u, nil
}

func (s *store) issueToken(u *user) string {
	tok := uuid.NewString()
	s.tokens[tok] = u.ID
	return tok
}

func (s *store) userByToken(tok string) *user {
	id, ok := s.tokens[tok]
	if !ok {
		return nil
	}
	return s.users[id]
}

func (s *store) hasAdmin() bool {
	for _, u := range s.users {
		if u.IsAdmin {
			return true
		}
	}
	return false
}

func (s *store) sortedUsers() []*user {
	out := make([]*user, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *store) sortedTeams() []*team {
	out := make([]*team, 0, len(s.teams))
	for _, t := range s.teams {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *store) addTeam(name, description string) (*team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errEmptyName
	}
	t := &team{
		ID:          s.nextTeamID,
		Name:        name,
		Description: description,
		Members:     make(map[int64]time.Time),
	}
	s.nextTeamID++
	s.teams[t.ID] = t
	return t, nil
}

func (s *store) deleteUser(id int64) {
	delete(s.users, id)
	for tok, uid := range s.tokens {
		if uid == id {
			delete(s.tokens, tok)
		}
	}
	for _, t := range s.teams {
		delete(t.Members, id)
	}
}

// page returns the [page*size, page*size+size) window of n items.
func page(n, pageIdx, size int) (int, int) {
	if size <= 0 {
		size = 20
	}
	if pageIdx < 0 {
		pageIdx = 0
	}
	start := pageIdx * size
	if start > n {
		start = n
	}
	end := start + size
	if end > n {
		end = n
	}
	return start, end
}
