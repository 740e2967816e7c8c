package list

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/musheet/admin/internal/pager"
)

type item struct {
	ID   int
	Name string
}

func fetchN(total int) pager.Fetcher[item] {
	return func(_ context.Context, page, size int) ([]item, error) {
		var out []item
		for i := page * size; i < total && i < (page+1)*size; i++ {
			out = append(out, item{ID: i, Name: fmt.Sprintf("user%d", i)})
		}
		return out, nil
	}
}

func newList(fetch pager.Fetcher[item]) Model[item] {
	ctrl := pager.New("users", 3, fetch)
	return New(ctrl, []Column{{Title: "ID"}, {Title: "Name", Weight: 3}},
		func(it item) []string { return []string{fmt.Sprint(it.ID), it.Name} }, "No users found")
}

// deliver runs cmd and feeds the pager result it produced back into m.
func deliver(t *testing.T, m Model[item], cmd tea.Cmd) (Model[item], error) {
	t.Helper()
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if c == nil {
				continue
			}
			if r, ok := c().(pager.Result[item]); ok {
				msg = r
				break
			}
		}
	}
	m, _, err := m.Update(msg)
	return m, err
}

func TestLoadRendersRowsAndPagination(t *testing.T) {
	m := newList(fetchN(5))
	m, err := deliver(t, m, m.Load(context.Background(), 0))
	if err != nil {
		t.Fatal(err)
	}

	v := m.View()
	if !strings.Contains(v, "user0") || !strings.Contains(v, "user2") {
		t.Errorf("view missing rows:\n%s", v)
	}
	if !strings.Contains(v, "Page 1") {
		t.Errorf("expected pagination footer on a full page:\n%s", v)
	}

	m, err = deliver(t, m, m.Next(context.Background()))
	if err != nil {
		t.Fatal(err)
	}
	if got := m.Controller().State(); got.PageIndex != 1 || got.HasMore {
		t.Errorf("state = %+v, want last page", got)
	}
	if m.Next(context.Background()) != nil {
		t.Error("no next page expected")
	}
}

func TestSelected(t *testing.T) {
	m := newList(fetchN(5))
	if _, ok := m.Selected(); ok {
		t.Error("nothing selected before load")
	}
	m, _ = deliver(t, m, m.Load(context.Background(), 0))
	m, _, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	it, ok := m.Selected()
	if !ok || it.ID != 1 {
		t.Errorf("selected = %+v, %v; want item 1", it, ok)
	}
}

func TestEmptyAndError(t *testing.T) {
	m := newList(fetchN(0))
	m, _ = deliver(t, m, m.Load(context.Background(), 0))
	if !strings.Contains(m.View(), "No users found") {
		t.Errorf("expected empty text:\n%s", m.View())
	}

	boom := errors.New("Failed to load users")
	m = newList(func(context.Context, int, int) ([]item, error) { return nil, boom })
	m, err := deliver(t, m, m.Load(context.Background(), 0))
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want load error", err)
	}
	if !strings.Contains(m.View(), "Failed to load users") {
		t.Errorf("expected error text:\n%s", m.View())
	}
}

func TestOtherViewIgnored(t *testing.T) {
	m := newList(fetchN(5))
	m, _, err := m.Update(pager.Result[item]{Ticket: pager.Ticket{View: "teams", Seq: 1}})
	if err != nil || m.Controller().Loading() {
		t.Errorf("foreign result should be ignored, err=%v", err)
	}
}

func TestLayoutHonorsMinimum(t *testing.T) {
	cols := layout([]Column{{Title: "A", Min: 10}, {Title: "B", Weight: 2}}, 30)
	if cols[0].Width != 10 {
		t.Errorf("A width = %d, want min 10", cols[0].Width)
	}
	if cols[1].Width != 17 {
		t.Errorf("B width = %d, want 17", cols[1].Width)
	}
}
