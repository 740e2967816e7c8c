package toast

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestPushKeepsInsertionOrderWithoutDedupe(t *testing.T) {
	m := New(0)
	m.Push(Success, "Success", "User deleted")
	m.Push(Success, "Success", "User deleted")
	m.Push(Error, "Error", "boom")

	got := m.Toasts()
	if len(got) != 3 {
		t.Fatalf("expected 3 toasts, got %d", len(got))
	}
	if got[0].ID == got[1].ID {
		t.Error("identical toasts must have distinct ids")
	}
	if got[2].Kind != Error || got[2].Message != "boom" {
		t.Errorf("unexpected last toast: %+v", got[2])
	}
}

func TestNotifyMsgPushes(t *testing.T) {
	m := New(0)
	m, cmd := m.Update(NotifyMsg{Kind: Info, Title: "Refreshed", Message: "Data has been refreshed"})
	if cmd == nil {
		t.Error("expected expiry command")
	}
	if len(m.Toasts()) != 1 {
		t.Fatalf("expected 1 toast, got %d", len(m.Toasts()))
	}
}

func TestExpireThenRemove(t *testing.T) {
	m := New(0)
	m.Push(Info, "a", "first")
	m.Push(Info, "b", "second")
	first := m.Toasts()[0].ID

	m, cmd := m.Update(expireMsg{id: first})
	if cmd == nil {
		t.Fatal("expected removal to be scheduled")
	}
	if !m.Toasts()[0].Leaving {
		t.Error("expired toast should be leaving")
	}
	if m.Toasts()[1].Leaving {
		t.Error("other toasts are independent")
	}

	m, _ = m.Update(removeMsg{id: first})
	got := m.Toasts()
	if len(got) != 1 || got[0].Title != "b" {
		t.Errorf("expected only second toast to remain, got %+v", got)
	}
}

func TestUnknownIDsIgnored(t *testing.T) {
	m := New(0)
	m.Push(Info, "a", "x")
	m, cmd := m.Update(expireMsg{id: "missing"})
	if cmd != nil {
		t.Error("no command expected for unknown toast")
	}
	m, _ = m.Update(removeMsg{id: "missing"})
	if len(m.Toasts()) != 1 {
		t.Error("unknown removal must not drop toasts")
	}
}

func TestEntranceSettles(t *testing.T) {
	m := New(0)
	m.Push(Success, "Saved", "ok")
	if m.Toasts()[0].offset != slideDistance {
		t.Fatalf("toast should start off to the side")
	}
	for i := 0; i < 10*fps; i++ {
		var cmd tea.Cmd
		m, cmd = m.Update(frameMsg{})
		if cmd == nil {
			break
		}
	}
	if m.Toasts()[0].offset != 0 {
		t.Errorf("offset = %v, want 0 after settling", m.Toasts()[0].offset)
	}
	if m.animating {
		t.Error("animation should stop once settled")
	}
}

func TestView(t *testing.T) {
	m := New(0)
	if m.View(90) != "" {
		t.Error("empty notifier should render nothing")
	}
	m.Push(Error, "Error", "Failed to delete user")
	v := m.View(90)
	if !strings.Contains(v, "Error") || !strings.Contains(v, "Failed to delete user") {
		t.Errorf("view missing toast text:\n%s", v)
	}
}
