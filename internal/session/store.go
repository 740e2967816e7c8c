// Package session holds the authenticated administrator identity and keeps
// it on disk between runs.
package session

import (
	"errors"
	"sync"

	"github.com/musheet/admin/internal/rpc"
	"go.uber.org/zap"
)

// ErrAdminRequired matches (via errors.Is) every rejection caused by a
// successful login of a non-administrator.
var ErrAdminRequired = errors.New("admin access required")

// AccessError is returned when the backend authenticated a user who may not
// use the console.
type AccessError struct {
	Message string
}

func (e *AccessError) Error() string { return e.Message }

// Is reports whether target is ErrAdminRequired.
func (e *AccessError) Is(target error) bool { return target == ErrAdminRequired }

// Session is the authenticated identity. Zero-valued fields are absent; an
// empty Token alone decides that nobody is logged in.
type Session struct {
	Token       string
	UserID      int64
	DisplayName string
	AvatarRef   string
}

// Authenticated reports whether the session carries a token.
func (s Session) Authenticated() bool { return s.Token != "" }

// IsZero reports whether every field is absent.
func (s Session) IsZero() bool { return s == Session{} }

// AuthUser is the user record embedded in an authentication response.
type AuthUser struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	IsAdmin     bool   `json:"isAdmin"`
	AvatarPath  string `json:"avatarPath"`
}

// AuthResult is the payload of auth.login and auth.register.
type AuthResult struct {
	Success      bool      `json:"success"`
	Token        string    `json:"token"`
	User         *AuthUser `json:"user"`
	ErrorMessage string    `json:"errorMessage"`
}

// messages holds the user-facing texts that differ between login and signup.
type messages struct {
	failed      string
	adminNeeded string
}

var (
	loginMessages = messages{
		failed:      "Login failed",
		adminNeeded: "Admin access required",
	}
	signupMessages = messages{
		failed:      "Sign up failed",
		adminNeeded: "Admin access required. Only admins can access this console.",
	}
)

// Store owns the process-wide Session. Reads return copies, and every
// mutation replaces all four fields under one lock, so no reader ever sees a
// half-updated identity.
type Store struct {
	mu     sync.RWMutex
	cur    Session
	file   *File
	logger *zap.Logger
}

// Open loads the persisted session from file. A nil file keeps the session
// in memory only.
func Open(file *File, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{file: file, logger: logger}
	if file == nil {
		return s, nil
	}
	cur, err := file.Load()
	if err != nil {
		return nil, err
	}
	s.cur = cur
	return s, nil
}

// Current returns a copy of the session.
func (s *Store) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// Token implements rpc.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur.Token
}

// Login applies the outcome of auth.login. On any error the session is left
// untouched.
func (s *Store) Login(out rpc.Outcome) error {
	return s.apply(out, loginMessages)
}

// Signup applies the outcome of auth.register. It differs from Login only
// in the texts of its errors.
func (s *Store) Signup(out rpc.Outcome) error {
	return s.apply(out, signupMessages)
}

func (s *Store) apply(out rpc.Outcome, msgs messages) error {
	var res AuthResult
	if err := out.Decode(&res); err != nil {
		return err
	}
	if !res.Success {
		if res.ErrorMessage != "" {
			return errors.New(res.ErrorMessage)
		}
		return errors.New(msgs.failed)
	}
	if res.User == nil || !res.User.IsAdmin {
		s.logger.Info("rejected non-admin login")
		return &AccessError{Message: msgs.adminNeeded}
	}
	if res.Token == "" {
		return errors.New(msgs.failed)
	}

	next := Session{
		Token:       res.Token,
		UserID:      res.User.ID,
		DisplayName: res.User.DisplayName,
		AvatarRef:   res.User.AvatarPath,
	}
	if next.DisplayName == "" {
		next.DisplayName = res.User.Username
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file != nil {
		if err := s.file.Save(next); err != nil {
			return err
		}
	}
	s.cur = next
	s.logger.Info("admin logged in", zap.Int64("user_id", next.UserID))
	return nil
}

// Logout clears every field. Logging out twice is the same as once.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file != nil {
		if err := s.file.Clear(); err != nil {
			return err
		}
	}
	if !s.cur.IsZero() {
		s.logger.Info("admin logged out", zap.Int64("user_id", s.cur.UserID))
	}
	s.cur = Session{}
	return nil
}
