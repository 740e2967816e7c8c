package main

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/musheet/admin/internal/mockserver"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
}

func TestCommandTree(t *testing.T) {
	root := newRootCmd()
	want := []string{"tui", "login", "signup", "logout", "whoami", "users", "teams", "stats", "mock-server", "config", "version"}
	for _, name := range want {
		if _, _, err := root.Find([]string{name}); err != nil {
			t.Errorf("missing command %q: %v", name, err)
		}
	}
	for _, path := range [][]string{{"users", "list"}, {"teams", "list"}, {"config", "init"}} {
		c, _, err := root.Find(path)
		if err != nil || c.Name() != path[1] {
			t.Errorf("missing command %v", path)
		}
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "musheet-admin ") {
		t.Errorf("version output = %q", out)
	}
}

func TestConfigInitAndShow(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")

	if _, err := execute(t, "", "config", "init", "--config", path); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if _, err := execute(t, "", "config", "init", "--config", path); err == nil {
		t.Error("second init without --force should fail")
	}

	out, err := execute(t, "", "config", "show", "--config", path, "--url", "http://example.test:9000")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, "server.base_url: http://example.test:9000") {
		t.Errorf("flag did not override the file:\n%s", out)
	}
}

func TestSessionCommands(t *testing.T) {
	isolate(t)
	srv := mockserver.New(nil, mockserver.WithBcryptCost(bcrypt.MinCost))
	if err := srv.Seed(mockserver.SeedOptions{
		AdminUsername: "admin", AdminPassword: "admin123", Users: 12, Teams: 2,
	}); err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()
	state := t.TempDir()
	common := []string{"--url", ts.URL, "--state-dir", state}

	if _, err := execute(t, "", append([]string{"whoami"}, common...)...); !errors.Is(err, errNotLoggedIn) {
		t.Fatalf("whoami before login: err = %v", err)
	}
	if _, err := execute(t, "password\n", append([]string{"login", "-u", "clara1", "--password-stdin"}, common...)...); err == nil {
		t.Fatal("a regular user must not be able to log in")
	}

	out, err := execute(t, "admin123\n", append([]string{"login", "-u", "admin", "--password-stdin"}, common...)...)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !strings.Contains(out, "Administrator") {
		t.Errorf("login output = %q", out)
	}
	if _, err := os.Stat(filepath.Join(state, "session.json")); err != nil {
		t.Errorf("session not persisted: %v", err)
	}

	out, err = execute(t, "", append([]string{"users", "list", "--page-size", "5"}, common...)...)
	if err != nil {
		t.Fatalf("users list: %v", err)
	}
	if !strings.Contains(out, "clara1") || !strings.Contains(out, "--page 1") {
		t.Errorf("users list output:\n%s", out)
	}

	out, err = execute(t, "", append([]string{"teams", "list", "--json"}, common...)...)
	if err != nil {
		t.Fatalf("teams list: %v", err)
	}
	if !strings.Contains(out, `"sharedScores"`) {
		t.Errorf("teams json:\n%s", out)
	}

	out, err = execute(t, "", append([]string{"stats"}, common...)...)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if !strings.Contains(out, "Storage") {
		t.Errorf("stats output:\n%s", out)
	}

	if _, err := execute(t, "", append([]string{"logout"}, common...)...); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := execute(t, "", append([]string{"whoami"}, common...)...); !errors.Is(err, errNotLoggedIn) {
		t.Errorf("whoami after logout: err = %v", err)
	}
}
