package confirm

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/musheet/admin/internal/theme"
	"github.com/musheet/admin/internal/views/toast"
)

type doneMsg struct{}

func TestNewRequestReplacesPending(t *testing.T) {
	g := New()
	var ran string
	g.Request(Request{Title: "Delete User", OnConfirm: func(context.Context) (tea.Msg, error) {
		ran = "first"
		return nil, nil
	}})
	g.Request(Request{Title: "Delete Team", OnConfirm: func(context.Context) (tea.Msg, error) {
		ran = "second"
		return doneMsg{}, nil
	}})

	r, ok := g.Pending()
	if !ok || r.Title != "Delete Team" {
		t.Fatalf("pending = %+v, want the second request", r)
	}
	msg := g.Accept(context.Background())()
	if ran != "second" {
		t.Errorf("ran %q, want second", ran)
	}
	if _, ok := msg.(doneMsg); !ok {
		t.Errorf("msg = %#v, want doneMsg", msg)
	}
	if g.Active() {
		t.Error("gate should be idle after accept")
	}
}

func TestDeclineDiscards(t *testing.T) {
	g := New()
	called := false
	g.Request(Request{Title: "Remove Member", OnConfirm: func(context.Context) (tea.Msg, error) {
		called = true
		return nil, nil
	}})
	g.Update(context.Background(), tea.KeyMsg{Type: tea.KeyEsc})
	if g.Active() {
		t.Error("decline should dismiss the request")
	}
	if cmd := g.Accept(context.Background()); cmd != nil {
		t.Error("accept with nothing pending should be a no-op")
	}
	if called {
		t.Error("declined action must not run")
	}
}

func TestErrorBecomesToast(t *testing.T) {
	g := New()
	g.Request(Request{Title: "Deactivate User", OnConfirm: func(context.Context) (tea.Msg, error) {
		return nil, errors.New("You cannot modify your own account")
	}})
	msg := g.Update(context.Background(), tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})()
	n, ok := msg.(toast.NotifyMsg)
	if !ok {
		t.Fatalf("msg = %#v, want toast.NotifyMsg", msg)
	}
	if n.Kind != toast.Error || n.Message != "You cannot modify your own account" {
		t.Errorf("unexpected toast: %+v", n)
	}
}

func TestPanicIsRecovered(t *testing.T) {
	g := New()
	g.Request(Request{Title: "Delete Team", OnConfirm: func(context.Context) (tea.Msg, error) {
		panic("nil team")
	}})
	msg := g.Accept(context.Background())()
	n, ok := msg.(toast.NotifyMsg)
	if !ok || n.Kind != toast.Error || n.Message != "nil team" {
		t.Errorf("msg = %#v, want error toast with panic value", msg)
	}
}

func TestEmptyErrorUsesFailureText(t *testing.T) {
	g := New()
	g.Request(Request{Title: "Promote to Admin", FailureText: "Failed to promote user",
		OnConfirm: func(context.Context) (tea.Msg, error) { return nil, errors.New("") }})
	n := g.Accept(context.Background())().(toast.NotifyMsg)
	if n.Message != "Failed to promote user" {
		t.Errorf("message = %q", n.Message)
	}
}

func TestView(t *testing.T) {
	g := New()
	if g.View(80) != "" {
		t.Error("idle gate renders nothing")
	}
	g.Request(Request{Title: "Activate User", Message: "Are you sure?", ConfirmLabel: "Activate", Variant: theme.VariantSuccess})
	v := g.View(80)
	for _, want := range []string{"Activate User", "Are you sure?", "Activate"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
