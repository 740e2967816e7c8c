package form

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func press(m Model, k tea.KeyType) (Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: k})
}

func newUserForm() Model {
	return New("create-user", "Create User",
		Field{Key: "username", Label: "Username", Required: true},
		Field{Key: "password", Label: "Password", Secret: true, Required: true},
		Field{Key: "admin", Label: "Administrator", Toggle: true},
	)
}

func TestSubmitCollectsValues(t *testing.T) {
	m := newUserForm()
	m = typeText(m, " clara ")
	m, _ = press(m, tea.KeyTab)
	m = typeText(m, " pw 1")
	m, _ = press(m, tea.KeyTab)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})

	m, cmd := press(m, tea.KeyEnter)
	if cmd == nil {
		t.Fatal("expected submit command")
	}
	msg, ok := cmd().(SubmitMsg)
	if !ok {
		t.Fatalf("expected SubmitMsg")
	}
	if msg.ID != "create-user" {
		t.Errorf("id = %q", msg.ID)
	}
	if msg.Values["username"] != "clara" {
		t.Errorf("username = %q, want trimmed", msg.Values["username"])
	}
	if msg.Values["password"] != " pw 1" {
		t.Errorf("password = %q, secrets are not trimmed", msg.Values["password"])
	}
	if !msg.Values.Bool("admin") {
		t.Error("admin toggle should be checked")
	}
	if !m.Busy {
		t.Error("form should be busy after submit")
	}
}

func TestRequiredField(t *testing.T) {
	m := newUserForm()
	m = typeText(m, "clara")
	m, cmd := press(m, tea.KeyEnter)
	if cmd != nil {
		t.Fatal("submit must be blocked while a required field is empty")
	}
	if !strings.Contains(m.Err, "Password") {
		t.Errorf("err = %q", m.Err)
	}
	if m.Focused() != "password" {
		t.Errorf("focus = %q, want password", m.Focused())
	}
}

func TestCancel(t *testing.T) {
	m := newUserForm()
	_, cmd := press(m, tea.KeyEsc)
	if _, ok := cmd().(CancelMsg); !ok {
		t.Error("esc should emit CancelMsg")
	}

	m.Cancelable = false
	_, cmd = press(m, tea.KeyEsc)
	if cmd != nil {
		t.Error("non-cancelable form ignores esc")
	}
}

func TestFocusWraps(t *testing.T) {
	m := newUserForm()
	m, _ = press(m, tea.KeyShiftTab)
	if m.Focused() != "admin" {
		t.Errorf("focus = %q, want last field", m.Focused())
	}
}

func TestResetAndView(t *testing.T) {
	m := newUserForm()
	m.SetValue("username", "felix")
	m.SetValue("admin", "true")
	m.Err = "Username already taken"
	v := m.View(80)
	if !strings.Contains(v, "Username already taken") || !strings.Contains(v, "[x]") {
		t.Errorf("view missing error or toggle:\n%s", v)
	}

	m.Reset()
	if m.Values()["username"] != "" || m.Values().Bool("admin") || m.Err != "" {
		t.Error("reset should clear values and error")
	}
}
