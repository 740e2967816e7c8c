package debug

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/musheet/admin/internal/rpc"
)

// CallMsg carries one finished RPC call to the overlay.
type CallMsg struct {
	Call rpc.Call
}

// Feed moves calls from command goroutines into the Update loop. Observe
// never blocks; calls beyond the buffer are dropped.
type Feed struct {
	ch chan rpc.Call
}

// NewFeed creates a feed buffering up to size calls.
func NewFeed(size int) *Feed {
	return &Feed{ch: make(chan rpc.Call, size)}
}

// Observe is an rpc.Observer.
func (f *Feed) Observe(c rpc.Call) {
	select {
	case f.ch <- c:
	default:
	}
}

// Wait returns a command that delivers the next call as a CallMsg. Issue
// it again after each CallMsg.
func (f *Feed) Wait() tea.Cmd {
	return func() tea.Msg {
		return CallMsg{Call: <-f.ch}
	}
}
