package help

import (
	"strings"
	"testing"
)

var entries = []Entry{
	{Keys: "q", Description: "Quit", Scope: "Global"},
	{Keys: "?", Description: "Toggle help", Scope: "Global"},
	{Keys: "x", Description: "Delete user", Scope: "Users"},
}

func TestMarkdownGroupsByScope(t *testing.T) {
	md := Markdown(entries)
	global := strings.Index(md, "## Global")
	users := strings.Index(md, "## Users")
	if global < 0 || users < 0 || global > users {
		t.Fatalf("scopes missing or out of order:\n%s", md)
	}
	if !strings.Contains(md, "| `x` | Delete user |") {
		t.Errorf("missing row:\n%s", md)
	}
}

func TestViewRendersEveryAction(t *testing.T) {
	m := New(entries)
	v := m.View(100)
	for _, want := range []string{"Quit", "Toggle", "Delete"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if again := m.View(100); again != v {
		t.Error("same width should reuse the cached render")
	}
}
