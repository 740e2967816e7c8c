package members

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/musheet/admin/internal/client"
)

type fakeSource struct {
	members []client.TeamMember
	users   []client.User
	err     error
	gotSize int
}

func (f *fakeSource) TeamMembers(context.Context, int64) ([]client.TeamMember, error) {
	return f.members, f.err
}

func (f *fakeSource) Users(_ context.Context, _, size int) ([]client.User, error) {
	f.gotSize = size
	return f.users, f.err
}

var down = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")}

func TestMembersLoadAndSelect(t *testing.T) {
	joined := time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local)
	src := &fakeSource{members: []client.TeamMember{
		{UserID: 2, Username: "clara1", Role: client.RoleMember, JoinedAt: &joined},
		{UserID: 3, Username: "felix4", DisplayName: "Felix", Role: client.RoleMember},
	}}
	m := New(7, "Chamber Choir")
	if err := m.Apply(Fetch(context.Background(), src, 7)().(LoadedMsg)); err != nil {
		t.Fatal(err)
	}
	m = m.Update(down)
	sel, ok := m.Selected()
	if !ok || sel.UserID != 3 {
		t.Errorf("selected = %+v", sel)
	}
	m = m.Update(down)
	if sel, _ := m.Selected(); sel.UserID != 3 {
		t.Error("cursor should stop at the last row")
	}

	v := m.View(90)
	for _, want := range []string{"Chamber Choir - Members", "clara1", "2024/05/01", "Member"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestMembersIgnoresOtherTeam(t *testing.T) {
	m := New(7, "Choir")
	_ = m.Apply(LoadedMsg{TeamID: 8, Members: []client.TeamMember{{UserID: 1}}})
	if len(m.Members()) != 0 {
		t.Error("result for another team must be ignored")
	}
}

func TestMembersEmptyAndFailed(t *testing.T) {
	m := New(1, "Band")
	_ = m.Apply(LoadedMsg{TeamID: 1})
	if !strings.Contains(m.View(80), "No members in this team") {
		t.Error("expected empty text")
	}
	m = New(1, "Band")
	if err := m.Apply(LoadedMsg{TeamID: 1, Err: errors.New("boom")}); err == nil {
		t.Error("expected load error")
	}
	if !strings.Contains(m.View(80), "Failed to load team members") {
		t.Error("expected failure text")
	}
}

func TestPickerLoadsLimitAndPicks(t *testing.T) {
	src := &fakeSource{users: []client.User{{ID: 1, Username: "admin"}, {ID: 2, Username: "clara1", DisplayName: "Clara"}}}
	p := NewPicker(5, "Band")
	if err := p.Apply(FetchCandidates(context.Background(), src, 5)().(CandidatesMsg)); err != nil {
		t.Fatal(err)
	}
	if src.gotSize != PickerLimit {
		t.Errorf("page size = %d, want %d", src.gotSize, PickerLimit)
	}

	p, _ = p.Update(down)
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	picked, ok := cmd().(PickedMsg)
	if !ok || picked.User.ID != 2 || picked.TeamID != 5 {
		t.Errorf("picked = %+v", picked)
	}
	if !strings.Contains(p.View(80, 10), "clara1 (Clara)") {
		t.Error("label should include display name")
	}
}

func TestPickerRequiresSelection(t *testing.T) {
	p := NewPicker(5, "Band")
	_ = p.Apply(CandidatesMsg{TeamID: 5})
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("nothing to pick")
	}
	if p.Err != "Please select a user" {
		t.Errorf("err = %q", p.Err)
	}
}

func TestLabel(t *testing.T) {
	if got := Label(client.User{Username: "bob"}); got != "bob (No name)" {
		t.Errorf("Label = %q", got)
	}
}
