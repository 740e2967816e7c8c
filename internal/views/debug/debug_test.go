package debug

import (
	"strings"
	"testing"
	"time"

	"github.com/musheet/admin/internal/rpc"
)

func TestAddCapsEntries(t *testing.T) {
	m := New()
	for i := 0; i < maxEntries+50; i++ {
		m.Add(KindNav, "msg")
	}
	if got := len(m.Visible()); got != maxEntries {
		t.Errorf("entries = %d, want %d", got, maxEntries)
	}
}

func TestScroll(t *testing.T) {
	tests := []struct {
		name    string
		entries int
		up      int
		down    int
		want    int
	}{
		{"up", 20, 5, 0, 5},
		{"up then down", 20, 5, 3, 2},
		{"down past newest", 20, 5, 10, 0},
		{"up past oldest", 5, 100, 0, 4},
		{"empty", 0, 3, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			for i := 0; i < tt.entries; i++ {
				m.Add(KindNav, "msg")
			}
			m.ScrollUp(tt.up)
			m.ScrollDown(tt.down)
			if m.back != tt.want {
				t.Errorf("back = %d, want %d", m.back, tt.want)
			}
		})
	}
}

func TestAddResetsScroll(t *testing.T) {
	m := New()
	for i := 0; i < 10; i++ {
		m.Add(KindNav, "msg")
	}
	m.ScrollUp(5)
	m.Add(KindNav, "new")
	if m.back != 0 {
		t.Error("adding an entry should jump to the newest line")
	}
}

func TestRecordCall(t *testing.T) {
	m := New()
	m.Record(rpc.Call{Endpoint: "admin", Method: "getAllUsers", Duration: 10 * time.Millisecond, Outcome: rpc.Ok(nil)})
	m.Record(rpc.Call{Endpoint: "admin", Method: "deleteUser", Duration: 30 * time.Millisecond, Outcome: rpc.Failed(rpc.KindProtocol, "Not found")})

	vis := m.Visible()
	if vis[0].Kind != KindRPC || !strings.Contains(vis[0].Text, "admin.getAllUsers ok") {
		t.Errorf("ok entry = %+v", vis[0])
	}
	if vis[1].Kind != KindErr || !strings.Contains(vis[1].Text, "Not found") {
		t.Errorf("failed entry = %+v", vis[1])
	}
	st := m.Stats()
	if st.Calls != 2 || st.Failures != 1 || st.Average() != 20*time.Millisecond {
		t.Errorf("stats = %+v, avg %s", st, st.Average())
	}
}

func TestToggleErrors(t *testing.T) {
	m := New()
	m.Add(KindAuth, "signed in")
	m.Add(KindErr, "timeout")
	m.ToggleErrors()
	if vis := m.Visible(); len(vis) != 1 || vis[0].Text != "timeout" {
		t.Errorf("errors only = %+v", vis)
	}
	m.ToggleErrors()
	if len(m.Visible()) != 2 {
		t.Error("toggling again should show everything")
	}
}

func TestView(t *testing.T) {
	m := New()
	if v := m.View(80, 20); !strings.Contains(v, "No events") {
		t.Error("empty view should say there are no events")
	}
	m.Add(KindAuth, "signed in")
	m.Add(KindErr, "timeout")
	v := m.View(80, 20)
	for _, want := range []string{"signed in", "timeout", "0 calls"} {
		if !strings.Contains(v, want) {
			t.Errorf("view lacks %q", want)
		}
	}
}

func TestFeedDeliversAndDrops(t *testing.T) {
	f := NewFeed(1)
	f.Observe(rpc.Call{Endpoint: "auth", Method: "login"})
	f.Observe(rpc.Call{Endpoint: "auth", Method: "register"}) // buffer full, dropped

	msg := f.Wait()().(CallMsg)
	if msg.Call.Method != "login" {
		t.Errorf("method = %q, want login", msg.Call.Method)
	}
	select {
	case c := <-f.ch:
		t.Errorf("unexpected buffered call %+v", c)
	default:
	}
}
