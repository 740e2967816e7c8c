package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

const (
	sessionFileName = "session.json"
	appDirName      = "musheet-admin"
)

// record is the on-disk shape: four independent entries, each omitted when
// absent.
type record struct {
	Token      string `json:"admin_token,omitempty"`
	UserID     string `json:"admin_user_id,omitempty"`
	Username   string `json:"admin_username,omitempty"`
	AvatarPath string `json:"admin_avatar_path,omitempty"`
}

// File loads and saves a Session as a single JSON document.
type File struct {
	dir string
}

// NewFile creates a File in dir. The directory is created on the first Save.
// Pass an empty string to use the default XDG state path.
func NewFile(dir string) *File {
	if dir == "" {
		dir = DefaultStateDir()
	}
	return &File{dir: dir}
}

// Path returns the full path to the session file.
func (f *File) Path() string {
	return filepath.Join(f.dir, sessionFileName)
}

// Load reads the session. A missing file yields an empty Session.
func (f *File) Load() (Session, error) {
	data, err := os.ReadFile(f.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return Session{}, nil
		}
		return Session{}, fmt.Errorf("reading session: %w", err)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Session{}, fmt.Errorf("parsing session: %w", err)
	}

	s := Session{
		Token:       rec.Token,
		DisplayName: rec.Username,
		AvatarRef:   rec.AvatarPath,
	}
	if rec.UserID != "" {
		id, err := strconv.ParseInt(rec.UserID, 10, 64)
		if err != nil {
			return Session{}, fmt.Errorf("parsing session user id: %w", err)
		}
		s.UserID = id
	}
	return s, nil
}

// Save writes the session using a temp-file-then-rename so that readers
// never see a partially written file.
func (f *File) Save(s Session) error {
	if err := os.MkdirAll(f.dir, 0o700); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}

	rec := record{
		Token:      s.Token,
		Username:   s.DisplayName,
		AvatarPath: s.AvatarRef,
	}
	if s.UserID != 0 {
		rec.UserID = strconv.FormatInt(s.UserID, 10)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(f.dir, ".session-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, f.Path()); err != nil {
		return fmt.Errorf("renaming session file: %w", err)
	}
	committed = true
	return nil
}

// Clear removes the session file. Clearing an absent file is not an error.
func (f *File) Clear() error {
	if err := os.Remove(f.Path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session: %w", err)
	}
	return nil
}

// DefaultStateDir returns ~/.local/state/musheet-admin, respecting
// XDG_STATE_HOME if set.
func DefaultStateDir() string {
	if base := os.Getenv("XDG_STATE_HOME"); base != "" {
		return filepath.Join(base, appDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	return filepath.Join(home, ".local", "state", appDirName)
}
